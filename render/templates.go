package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"rpw/config"
	"rpw/misc"
	"rpw/props"
	"rpw/report"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context  string
	Title    string
	Subject  string
	Author   string
	Keywords []string
	Name     string
	RunID    string
	AppName  string
	Version  string
}

// newValues collects report metadata. Metadata properties are evaluated
// without any record, so forms referring to data there get empty values.
func newValues(rpt *report.Report, src, runID string, log *zap.Logger) *Values {
	res := props.NewResolver(props.NewContext(), log)
	return &Values{
		Title:    res.String(rpt, "Title"),
		Subject:  res.String(rpt, "Subject"),
		Author:   res.String(rpt, "Author"),
		Keywords: res.Strings(rpt, "Keywords"),
		Name:     strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		RunID:    runID,
		AppName:  misc.GetAppName(),
		Version:  misc.GetVersion(),
	}
}

func expandTemplate(v *Values, name config.TemplateFieldName, field string) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := *v
	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
