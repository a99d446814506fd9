package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"rpw/datasource"
	"rpw/props"
	"rpw/report"
	"rpw/surface/record"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func newObject(kind report.ObjectKind, kv ...string) *report.Object {
	obj := &report.Object{Kind: kind}
	for i := 0; i+1 < len(kv); i += 2 {
		obj.Props.Set(kv[i], kv[i+1])
	}
	return obj
}

func newBand(kind report.BandKind, height string, objs ...*report.Object) *report.Band {
	b := &report.Band{Kind: kind, Objects: objs}
	if height != "" {
		b.Props.Set("Height", height)
	}
	return b
}

func newReport(bands ...*report.Band) *report.Report {
	rpt := report.New()
	for _, b := range bands {
		rpt.Bands[b.Kind] = b
	}
	return rpt
}

func newGroup(expr string, header, footer *report.Band, kv ...string) *report.Group {
	g := &report.Group{Header: header, Footer: footer}
	g.Props.Set("expr", expr)
	for i := 0; i+1 < len(kv); i += 2 {
		g.Props.Set(kv[i], kv[i+1])
	}
	return g
}

func newResolver(t *testing.T) *props.Resolver {
	t.Helper()
	return props.NewResolver(props.NewContext(), zaptest.NewLogger(t))
}

func names(n int) datasource.Cursor {
	cur := make(datasource.Cursor, n)
	for i := range cur {
		cur[i] = datasource.Record{"name": fmt.Sprintf("r%d", i+1)}
	}
	return cur
}

func render(t *testing.T, rpt *report.Report, cur datasource.Cursor, opts Options) *record.Recorder {
	t.Helper()
	rec := record.New()
	if err := Write(context.Background(), rpt, cur, rec, opts, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return rec
}

func pageTexts(rec *record.Recorder) [][]string {
	out := make([][]string, len(rec.Pages))
	for i, p := range rec.Pages {
		out[i] = p.Texts()
	}
	return out
}

func TestBandHeight(t *testing.T) {
	res := newResolver(t)
	tests := []struct {
		name    string
		band    *report.Band
		want    float64
		dynamic bool
	}{
		{"explicit", newBand(report.BandKindDetail, "72",
			newObject(report.ObjectKindString, "y", "100")), 72, false},
		{"explicit units", newBand(report.BandKindDetail, `"1 in"`), 72, false},
		{"objects", newBand(report.BandKindDetail, "",
			newObject(report.ObjectKindString, "y", "10", "Height", "20"),
			newObject(report.ObjectKindRectangle, "y", "5", "Height", "8")), 30, true},
		{"growable contributes position", newBand(report.BandKindDetail, "",
			newObject(report.ObjectKindString, "y", "10", "Height", "20"),
			newObject(report.ObjectKindParagraph, "y", "12", "Height", "None")), 30, true},
		{"hidden objects", newBand(report.BandKindDetail, "",
			newObject(report.ObjectKindString, "y", "10", "Height", "20"),
			newObject(report.ObjectKindString, "y", "100", "Show", "false")), 30, true},
		{"empty", newBand(report.BandKindDetail, ""), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BandHeight(res, tt.band); !near(got, tt.want) {
				t.Errorf("BandHeight() = %f, want %f", got, tt.want)
			}
			if got := Dynamic(res, tt.band); got != tt.dynamic {
				t.Errorf("Dynamic() = %v, want %v", got, tt.dynamic)
			}
		})
	}
}

func TestPagination(t *testing.T) {
	// letter with half inch margins leaves 720pt, two details per page
	rpt := newReport(newBand(report.BandKindDetail, "360",
		newObject(report.ObjectKindString, "expr", "name")))
	rec := render(t, rpt, names(5), Options{})

	want := [][]string{{"r1", "r2"}, {"r3", "r4"}, {"r5"}}
	if diff := cmp.Diff(want, pageTexts(rec)); diff != "" {
		t.Errorf("page texts mismatch (-want +got):\n%s", diff)
	}
	for _, p := range rec.Pages {
		if p.Width != 612 || p.Height != 792 {
			t.Errorf("page size = %vx%v, want letter", p.Width, p.Height)
		}
	}
}

func TestPageBands(t *testing.T) {
	rpt := newReport(
		newBand(report.BandKindPageHeader, "20",
			newObject(report.ObjectKindString, "expr", `"Page " + str(PageNumber)`)),
		newBand(report.BandKindPageFooter, "20",
			newObject(report.ObjectKindString, "expr", `"footer"`)),
		newBand(report.BandKindDetail, "300",
			newObject(report.ObjectKindString, "expr", "name")),
	)
	rec := render(t, rpt, names(3), Options{})

	// 720 - 40 leaves room for two details
	want := [][]string{{"Page 1", "footer", "r1", "r2"}, {"Page 2", "footer", "r3"}}
	if diff := cmp.Diff(want, pageTexts(rec)); diff != "" {
		t.Errorf("page texts mismatch (-want +got):\n%s", diff)
	}

	var header, detail float64
	for _, op := range rec.Pages[0].Ops {
		switch op.Text {
		case "Page 1":
			header = op.Y
		case "r1":
			detail = op.Y
		}
	}
	if !near(header, 792-36-20) {
		t.Errorf("page header y = %f, want %f", header, 792.0-36-20)
	}
	if !near(detail, 792-36-20-300) {
		t.Errorf("first detail y = %f, want %f", detail, 792.0-36-20-300)
	}
}

func TestColumns(t *testing.T) {
	rpt := newReport(newBand(report.BandKindDetail, "360",
		newObject(report.ObjectKindString, "expr", "name")))
	rpt.Props.Set("ColumnCount", "2")
	rec := render(t, rpt, names(5), Options{})

	want := [][]string{{"r1", "r2", "r3", "r4"}, {"r5"}}
	if diff := cmp.Diff(want, pageTexts(rec)); diff != "" {
		t.Fatalf("page texts mismatch (-want +got):\n%s", diff)
	}
	for _, op := range rec.Pages[0].Ops {
		if op.Text == "r3" && !near(op.X, 36+270) {
			t.Errorf("second column x = %f, want %f", op.X, 36.0+270)
		}
	}
}

func categories(cats ...string) datasource.Cursor {
	cur := make(datasource.Cursor, len(cats))
	for i, c := range cats {
		cur[i] = datasource.Record{"name": fmt.Sprintf("r%d", i+1), "cat": c, "amount": i + 1}
	}
	return cur
}

func TestGroups(t *testing.T) {
	rpt := newReport(newBand(report.BandKindDetail, "",
		newObject(report.ObjectKindString, "expr", "name")))
	rpt.Groups = []*report.Group{newGroup("cat",
		newBand(report.BandKindGroupHeader, "", newObject(report.ObjectKindString, "expr", `"H:" + cat`)),
		// footer is printed while previous record is current
		newBand(report.BandKindGroupFooter, "", newObject(report.ObjectKindString, "expr", `"F:" + name`)),
	)}
	rec := render(t, rpt, categories("A", "A", "B", "B", "A"), Options{})

	want := [][]string{{"H:A", "r1", "r2", "F:r2", "H:B", "r3", "r4", "F:r4", "H:A", "r5", "F:r5"}}
	if diff := cmp.Diff(want, pageTexts(rec)); diff != "" {
		t.Errorf("page texts mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedGroups(t *testing.T) {
	header := func(s string) *report.Band {
		return newBand(report.BandKindGroupHeader, "", newObject(report.ObjectKindString, "expr", s))
	}
	footer := func(s string) *report.Band {
		return newBand(report.BandKindGroupFooter, "", newObject(report.ObjectKindString, "expr", s))
	}
	rpt := newReport(newBand(report.BandKindDetail, "",
		newObject(report.ObjectKindString, "expr", "name")))
	rpt.Groups = []*report.Group{
		newGroup("outer", header(`"O:" + outer`), footer(`"/O"`)),
		newGroup("inner", header(`"I:" + inner`), footer(`"/I"`)),
	}
	cur := datasource.Cursor{
		{"name": "r1", "outer": "x", "inner": "1"},
		{"name": "r2", "outer": "y", "inner": "1"},
	}
	rec := render(t, rpt, cur, Options{})

	// outer change restarts inner group even with the same value
	want := [][]string{{"O:x", "I:1", "r1", "/I", "/O", "O:y", "I:1", "r2", "/I", "/O"}}
	if diff := cmp.Diff(want, pageTexts(rec)); diff != "" {
		t.Errorf("page texts mismatch (-want +got):\n%s", diff)
	}
}

func TestVariables(t *testing.T) {
	v := &report.Variable{}
	v.Props.Set("Name", `"total"`)
	v.Props.Set("expr", "total + amount")
	v.Props.Set("InitialValue", "0")
	v.Props.Set("ResetAt", "cat")

	count := &report.Variable{}
	count.Props.Set("Name", "count")
	count.Props.Set("expr", "count + 1")
	count.Props.Set("InitialValue", "0")

	rpt := newReport(newBand(report.BandKindDetail, "",
		newObject(report.ObjectKindString, "expr", `str(total) + "/" + str(count)`)))
	rpt.Variables = []*report.Variable{v, count}
	rec := render(t, rpt, categories("A", "A", "B", "B", "A"), Options{})

	want := [][]string{{"1/1", "3/2", "3/3", "7/4", "5/5"}}
	if diff := cmp.Diff(want, pageTexts(rec)); diff != "" {
		t.Errorf("page texts mismatch (-want +got):\n%s", diff)
	}
}

func TestSpanningLine(t *testing.T) {
	span := newObject(report.ObjectKindSpanningLine, "x", "10", "xFooter", "10", "yFooter", "0")

	t.Run("page", func(t *testing.T) {
		rpt := newReport(newBand(report.BandKindDetail, "",
			span, newObject(report.ObjectKindString, "expr", "name")))
		rec := render(t, rpt, names(3), Options{})
		if got := rec.Pages[0].Count(record.KindLine); got != 1 {
			t.Fatalf("lines = %d, want 1", got)
		}
		for _, op := range rec.Pages[0].Ops {
			if op.Kind != record.KindLine {
				continue
			}
			// starts at first detail, ends at bottom margin
			if want := []float64{46, 756 - 18, 46, 36}; !cmp.Equal(want, op.Args) {
				t.Errorf("line = %v, want %v", op.Args, want)
			}
		}
	})

	t.Run("group", func(t *testing.T) {
		rpt := newReport(newBand(report.BandKindDetail, "",
			newObject(report.ObjectKindString, "expr", "name")))
		rpt.Groups = []*report.Group{newGroup("cat",
			newBand(report.BandKindGroupHeader, "", span),
			newBand(report.BandKindGroupFooter, "", newObject(report.ObjectKindString, "expr", `"end"`)),
		)}
		rec := render(t, rpt, categories("A", "A", "B"), Options{})
		if got := rec.Pages[0].Count(record.KindLine); got != 2 {
			t.Errorf("lines = %d, want one per group", got)
		}
	})

	t.Run("group across pages", func(t *testing.T) {
		rpt := newReport(newBand(report.BandKindDetail, "300",
			newObject(report.ObjectKindString, "expr", "name")))
		rpt.Groups = []*report.Group{newGroup("cat",
			newBand(report.BandKindGroupHeader, "20", span),
			newBand(report.BandKindGroupFooter, "20", newObject(report.ObjectKindString, "expr", `"end"`)),
		)}
		rec := render(t, rpt, categories("A", "A", "A", "A", "A"), Options{})

		// two details per page, line is continued from the top of every page
		want := [][]float64{
			{46, 736, 46, 36},
			{46, 756, 46, 36},
			{46, 756, 46, 436},
		}
		if len(rec.Pages) != len(want) {
			t.Fatalf("pages = %d, want %d", len(rec.Pages), len(want))
		}
		for i, p := range rec.Pages {
			var got [][]float64
			for _, op := range p.Ops {
				if op.Kind == record.KindLine {
					got = append(got, op.Args)
				}
			}
			if diff := cmp.Diff(want[i:i+1], got); diff != "" {
				t.Errorf("page %d lines mismatch (-want +got):\n%s", i+1, diff)
			}
		}
	})
}

func TestDeferredContent(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	rpt := newReport(newBand(report.BandKindDetail, "",
		newObject(report.ObjectKindParagraph, "expr", "text", "Height", "None", "Width", "500")))
	cur := datasource.Cursor{{"text": strings.Join(lines, "\n")}}
	rec := render(t, rpt, cur, Options{})

	if len(rec.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(rec.Pages))
	}
	// 720pt with 12pt leading
	if got := len(rec.Pages[0].Texts()); got != 60 {
		t.Errorf("first page lines = %d, want 60", got)
	}
	var all []string
	for _, p := range rec.Pages {
		all = append(all, p.Texts()...)
	}
	if diff := cmp.Diff(lines, all); diff != "" {
		t.Errorf("continued content mismatch (-want +got):\n%s", diff)
	}
}

func TestDeferredContentFollowedByBands(t *testing.T) {
	rpt := newReport(
		newBand(report.BandKindDetail, "",
			newObject(report.ObjectKindParagraph, "expr", "text", "Height", "None", "Width", "500")),
		newBand(report.BandKindReportEnd, "", newObject(report.ObjectKindString, "expr", `"the end"`)),
	)
	cur := datasource.Cursor{{"text": strings.Repeat("x\n", 70)}}
	rec := render(t, rpt, cur, Options{})

	if len(rec.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(rec.Pages))
	}
	texts := rec.Pages[1].Texts()
	if len(texts) != 11 || texts[10] != "the end" {
		t.Fatalf("second page = %v, want 10 lines and the end", texts)
	}
	for _, op := range rec.Pages[1].Ops {
		// 10 lines and flush below the top
		if op.Text == "the end" && !near(op.Y, 756-11*12-18) {
			t.Errorf("report end y = %f, want %f", op.Y, 756.0-11*12-18)
		}
	}
}

func TestFixedBandTruncates(t *testing.T) {
	rpt := newReport(newBand(report.BandKindDetail, "30",
		newObject(report.ObjectKindParagraph, "expr", `"a\nb\nc\nd"`, "y", "30", "Height", "None")))
	rec := render(t, rpt, names(1), Options{})
	if diff := cmp.Diff([][]string{{"a", "b"}}, pageTexts(rec)); diff != "" {
		t.Errorf("page texts mismatch (-want +got):\n%s", diff)
	}
}

func TestFatalErrors(t *testing.T) {
	t.Run("dynamic page footer", func(t *testing.T) {
		rpt := newReport(newBand(report.BandKindPageFooter, "",
			newObject(report.ObjectKindString, "expr", `"f"`)))
		rec := record.New()
		err := Write(context.Background(), rpt, names(1), rec, Options{}, zaptest.NewLogger(t))
		var cfgErr *report.ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Where != "PageFooter" {
			t.Fatalf("Write() error = %v, want page footer configuration error", err)
		}
		if len(rec.Pages) != 0 {
			t.Errorf("pages = %d, want none", len(rec.Pages))
		}
	})

	t.Run("band taller than page", func(t *testing.T) {
		rpt := newReport(newBand(report.BandKindDetail, "800"))
		err := Write(context.Background(), rpt, names(1), record.New(), Options{}, zaptest.NewLogger(t))
		var layoutErr *LayoutError
		if !errors.As(err, &layoutErr) || layoutErr.Band != "Detail" {
			t.Fatalf("Write() error = %v, want layout error", err)
		}
	})

	t.Run("line taller than page", func(t *testing.T) {
		rpt := newReport(newBand(report.BandKindDetail, "",
			newObject(report.ObjectKindParagraph, "expr", `"a\nb"`, "Height", "None", "Leading", "1000")))
		err := Write(context.Background(), rpt, names(1), record.New(), Options{}, zaptest.NewLogger(t))
		var layoutErr *LayoutError
		if !errors.As(err, &layoutErr) {
			t.Fatalf("Write() error = %v, want layout error", err)
		}
	})

	t.Run("unknown property", func(t *testing.T) {
		rpt := newReport(newBand(report.BandKindDetail, "",
			newObject(report.ObjectKindString, "Colour", `"red"`)))
		err := Write(context.Background(), rpt, names(1), record.New(), Options{}, zaptest.NewLogger(t))
		if !errors.Is(err, report.ErrUnknownProperty) {
			t.Fatalf("Write() error = %v, want unknown property", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		rpt := newReport(newBand(report.BandKindDetail, "10"))
		err := Write(ctx, rpt, names(1), record.New(), Options{}, zaptest.NewLogger(t))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Write() error = %v, want context.Canceled", err)
		}
	})
}

func TestPageBreaks(t *testing.T) {
	t.Run("report begin and end", func(t *testing.T) {
		begin := newBand(report.BandKindReportBegin, "", newObject(report.ObjectKindString, "expr", `"begin"`))
		begin.Props.Set("PageBreakAfter", "true")
		end := newBand(report.BandKindReportEnd, "", newObject(report.ObjectKindString, "expr", `"end"`))
		end.Props.Set("PageBreakBefore", "true")
		rpt := newReport(begin, end, newBand(report.BandKindDetail, "",
			newObject(report.ObjectKindString, "expr", "name")))

		rec := render(t, rpt, names(2), Options{})
		want := [][]string{{"begin"}, {"r1", "r2"}, {"end"}}
		if diff := cmp.Diff(want, pageTexts(rec)); diff != "" {
			t.Errorf("page texts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("start group on new page", func(t *testing.T) {
		rpt := newReport(newBand(report.BandKindDetail, "",
			newObject(report.ObjectKindString, "expr", "name")))
		rpt.Groups = []*report.Group{newGroup("cat",
			newBand(report.BandKindGroupHeader, "", newObject(report.ObjectKindString, "expr", "cat")),
			nil,
			"StartOnNewPage", "true", "ResetPageNumber", "true",
		)}
		rpt.Bands[report.BandKindPageFooter] = newBand(report.BandKindPageFooter, "20",
			newObject(report.ObjectKindString, "expr", `"p" + str(PageNumber)`))

		rec := render(t, rpt, categories("A", "A", "B"), Options{})
		want := [][]string{{"p1", "A", "r1", "r2"}, {"p1", "B", "r3"}}
		if diff := cmp.Diff(want, pageTexts(rec)); diff != "" {
			t.Errorf("page texts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("reprint header", func(t *testing.T) {
		rpt := newReport(newBand(report.BandKindDetail, "300",
			newObject(report.ObjectKindString, "expr", "name")))
		rpt.Groups = []*report.Group{newGroup("cat",
			newBand(report.BandKindGroupHeader, "20", newObject(report.ObjectKindString, "expr", `"H:" + cat`)),
			nil,
			"ReprintHeaderOnNewPage", "true",
		)}
		rec := render(t, rpt, categories("A", "A", "A"), Options{})
		want := [][]string{{"H:A", "r1", "r2"}, {"H:A", "r3"}}
		if diff := cmp.Diff(want, pageTexts(rec)); diff != "" {
			t.Errorf("page texts mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("reprint header for continued detail", func(t *testing.T) {
		lines := make([]string, 150)
		for i := range lines {
			lines[i] = fmt.Sprintf("line %d", i+1)
		}
		rpt := newReport(newBand(report.BandKindDetail, "",
			newObject(report.ObjectKindParagraph, "expr", "text", "Height", "None", "Width", "500")))
		rpt.Groups = []*report.Group{newGroup("cat",
			newBand(report.BandKindGroupHeader, "20", newObject(report.ObjectKindString, "expr", `"H:" + cat`)),
			nil,
			"ReprintHeaderOnNewPage", "true",
		)}
		cur := datasource.Cursor{{"cat": "A", "text": strings.Join(lines, "\n")}}
		rec := render(t, rpt, cur, Options{})

		if len(rec.Pages) != 3 {
			t.Fatalf("pages = %d, want 3", len(rec.Pages))
		}
		var body []string
		for i, p := range rec.Pages {
			texts := p.Texts()
			if len(texts) == 0 || texts[0] != "H:A" {
				t.Fatalf("page %d does not start with group header: %v", i+1, texts)
			}
			body = append(body, texts[1:]...)
		}
		if diff := cmp.Diff(lines, body); diff != "" {
			t.Errorf("continued content mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestDesignAids(t *testing.T) {
	rpt := newReport(newBand(report.BandKindDetail, "",
		newObject(report.ObjectKindString, "expr", "name")))
	rpt.TestCursor = []report.TestRecord{
		{Fields: []report.Field{{Name: "name", Expr: `"fixture"`}}},
	}
	var out bytes.Buffer
	rec := render(t, rpt, names(3), Options{ShowBandOutlines: true, UseTestCursor: true, Output: &out})

	want := [][]string{{"Detail (record 0)", "fixture"}}
	if diff := cmp.Diff(want, pageTexts(rec)); diff != "" {
		t.Errorf("page texts mismatch (-want +got):\n%s", diff)
	}
	if out.Len() == 0 {
		t.Error("finished document was not written")
	}

	rpt.TestCursor[0].Fields[0].Expr = `"unterminated`
	err := Write(context.Background(), rpt, nil, record.New(), Options{UseTestCursor: true}, zaptest.NewLogger(t))
	var cfgErr *report.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Prop != "name" {
		t.Errorf("Write() error = %v, want test cursor configuration error", err)
	}
}

func TestLeaveOpen(t *testing.T) {
	rpt := newReport(newBand(report.BandKindDetail, "",
		newObject(report.ObjectKindString, "expr", "name")))
	rpt.Props.Set("Title", `"Inventory"`)
	rpt.Props.Set("Keywords", `["stock", "2024"]`)

	var out bytes.Buffer
	rec := record.New()
	for range 2 {
		err := Write(context.Background(), rpt, names(1), rec, Options{LeaveOpen: true, Output: &out, Creator: "rpw"}, zaptest.NewLogger(t))
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if out.Len() != 0 {
		t.Error("document finished although left open")
	}
	if len(rec.Pages) != 2 {
		t.Errorf("pages = %d, want one per run", len(rec.Pages))
	}
	if diff := cmp.Diff([]string{"stock", "2024"}, rec.Info.Keywords); diff != "" || rec.Info.Title != "Inventory" || rec.Info.Creator != "rpw" {
		t.Errorf("document info = %+v", rec.Info)
	}
}
