package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"rpw/config"
	"rpw/misc"
	"rpw/report"
)

func testValues() *Values {
	return &Values{
		Title:    "Monthly Sales",
		Subject:  "Sales by region",
		Author:   "Accounting",
		Keywords: []string{"sales", "monthly"},
		Name:     "sales",
		RunID:    "0b6c6f5e-1f1e-4c39-9a4b-3f4d2d7c8e11",
		AppName:  "rpw",
		Version:  "1.0.0",
	}
}

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"plain text", "report", "report"},
		{"title", "{{ .Title }}", "Monthly Sales"},
		{"subject and author", "{{ .Author }} - {{ .Subject }}", "Accounting - Sales by region"},
		{"keywords", `{{ join "," .Keywords }}`, "sales,monthly"},
		{"form name", "{{ .Name }}", "sales"},
		{"run id", "{{ .RunID | substr 0 8 }}", "0b6c6f5e"},
		{"creator", "{{ .AppName }} {{ .Version }}", "rpw 1.0.0"},
		{"context", "{{ .Context }}", string(config.OutputNameTemplateFieldName)},
		{"sprig", "{{ .Title | lower | replace \" \" \"_\" }}", "monthly_sales"},
		{"path separators", "{{ .Author }}/{{ .Name }}", "Accounting/sales"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(testValues(), config.OutputNameTemplateFieldName, tt.field)
			if err != nil {
				t.Fatalf("expandTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate_DoesNotModifyValues(t *testing.T) {
	v := testValues()
	if _, err := expandTemplate(v, config.CreatorTemplateFieldName, "{{ .Context }}"); err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if v.Context != "" {
		t.Errorf("Context = %q, want it untouched", v.Context)
	}
}

func TestExpandTemplate_InvalidTemplate(t *testing.T) {
	_, err := expandTemplate(testValues(), config.OutputNameTemplateFieldName, "{{ .Title ")
	if err == nil {
		t.Fatal("Expected error for invalid template")
	}
	if !strings.Contains(err.Error(), string(config.OutputNameTemplateFieldName)) {
		t.Errorf("error %q does not name the field", err)
	}
}

func TestExpandTemplate_InvalidField(t *testing.T) {
	if _, err := expandTemplate(testValues(), config.OutputNameTemplateFieldName, "{{ .Series }}"); err == nil {
		t.Error("Expected error for unknown field")
	}
}

func TestNewValues(t *testing.T) {
	rpt, err := report.Decode(strings.NewReader(`<Report>
  <Title>"Monthly " + "Sales"</Title>
  <Author>"Accounting"</Author>
  <Keywords>["sales", "monthly"]</Keywords>
</Report>`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	got := newValues(rpt, "forms/monthly.rfxml", "run", log)
	want := &Values{
		Title:    "Monthly Sales",
		Author:   "Accounting",
		Keywords: []string{"sales", "monthly"},
		Name:     "monthly",
		RunID:    "run",
		AppName:  misc.GetAppName(),
		Version:  misc.GetVersion(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("newValues() mismatch (-want +got):\n%s", diff)
	}
}
