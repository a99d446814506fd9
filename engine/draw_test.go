package engine

import (
	"slices"
	"testing"

	"go.uber.org/zap/zaptest"

	"rpw/datasource"
	"rpw/report"
	"rpw/story"
	"rpw/surface/record"
)

func newTestDrawer(t *testing.T) (*drawer, *record.Recorder) {
	t.Helper()
	rec := record.New()
	if err := rec.BeginPage(612, 792); err != nil {
		t.Fatal(err)
	}
	log := zaptest.NewLogger(t)
	res := newResolver(t)
	return newDrawer(rec, res, nil, log), rec
}

func finish(t *testing.T, rec *record.Recorder) *record.Page {
	t.Helper()
	if err := rec.EndPage(); err != nil {
		t.Fatalf("EndPage() error = %v", err)
	}
	return rec.Pages[len(rec.Pages)-1]
}

func TestDrawRestoresState(t *testing.T) {
	d, rec := newTestDrawer(t)
	for _, kind := range []report.ObjectKind{
		report.ObjectKindRectangle,
		report.ObjectKindLine,
		report.ObjectKindString,
		report.ObjectKindParagraph,
		report.ObjectKindBarGraph,
		report.ObjectKindFrameset,
		report.ObjectKindSpanningLine,
	} {
		d.Draw(newObject(kind, "Rotation", "30"), 10, 10, 100, nil)
	}
	// EndPage fails on unbalanced save
	finish(t, rec)
}

func TestDrawFontFallback(t *testing.T) {
	d, rec := newTestDrawer(t)
	d.Draw(newObject(report.ObjectKindString, "expr", `"hello"`, "FontName", `"NoSuchFont"`), 0, 0, 0, nil)
	page := finish(t, rec)

	for _, op := range page.Ops {
		if op.Kind == record.KindText {
			if op.Text != "hello" || op.Font != "Helvetica" {
				t.Errorf("text = %q in %q, want hello in Helvetica", op.Text, op.Font)
			}
			return
		}
	}
	t.Error("text was not drawn")
}

func TestDrawAlignment(t *testing.T) {
	tests := []struct {
		align string
		want  float64
	}{
		{`"left"`, 10},
		{`"center"`, 10 + (100-20)/2},
		{`"right"`, 10 + 100 - 20},
	}
	for _, tt := range tests {
		d, rec := newTestDrawer(t)
		// recorder measures 5pt per rune at size 10
		d.Draw(newObject(report.ObjectKindString, "expr", `"abcd"`, "Width", "100", "Align", tt.align), 10, 0, 0, nil)
		page := finish(t, rec)
		for _, op := range page.Ops {
			if op.Kind == record.KindText && !near(op.X, tt.want) {
				t.Errorf("%s: text x = %f, want %f", tt.align, op.X, tt.want)
			}
		}
	}
}

func TestDrawAnchors(t *testing.T) {
	d, rec := newTestDrawer(t)
	d.Draw(newObject(report.ObjectKindRectangle, "Width", "40", "Height", "20",
		"hAnchor", `"right"`, "vAnchor", `"top"`), 100, 100, 0, nil)
	page := finish(t, rec)
	for _, op := range page.Ops {
		if op.Kind == record.KindRect && (!near(op.X, 60) || !near(op.Y, 80)) {
			t.Errorf("rectangle origin = (%f, %f), want (60, 80)", op.X, op.Y)
		}
	}
}

func TestDrawImageFailure(t *testing.T) {
	rpt := newReport(newBand(report.BandKindDetail, "",
		newObject(report.ObjectKindImage, "expr", `"missing.png"`, "Width", "300", "Height", "100")))
	rpt.HomeDir = t.TempDir()
	rec := render(t, rpt, names(1), Options{})

	if !slices.Contains(rec.Pages[0].Texts(), imageMarker) {
		t.Errorf("texts = %v, want image marker", rec.Pages[0].Texts())
	}
	if got := rec.Pages[0].Count(record.KindImage); got != 0 {
		t.Errorf("images = %d, want none", got)
	}
}

func TestDrawFrame(t *testing.T) {
	t.Run("dynamic split", func(t *testing.T) {
		d, rec := newTestDrawer(t)
		obj := newObject(report.ObjectKindParagraph, "expr", `"a\nb\nc"`, "Height", "None")
		next, used := d.Draw(obj, 0, 500, 30, nil)
		if next == nil || !near(used, 24) {
			t.Fatalf("Draw() = %v, %f, want continuation after 24pt", next, used)
		}
		next, used = d.Draw(obj, 0, 500, 100, next)
		if next != nil || !near(used, 24) {
			t.Errorf("Draw() continuation = %v, %f, want done after 24pt", next, used)
		}
		page := finish(t, rec)
		if !slices.Equal(page.Texts(), []string{"a", "b", "c"}) {
			t.Errorf("texts = %v", page.Texts())
		}
	})

	t.Run("fixed frame drops overflow", func(t *testing.T) {
		d, rec := newTestDrawer(t)
		obj := newObject(report.ObjectKindFrameset, "Height", "30", "Width", "200", "BorderWidth", "1")
		obj.Objects = []*report.Object{newObject(report.ObjectKindParagraph, "expr", `"a\nb\nc"`)}
		next, used := d.Draw(obj, 0, 500, 0, nil)
		if next != nil || !near(used, 30) {
			t.Errorf("Draw() = %v, %f, want nil, 30", next, used)
		}
		page := finish(t, rec)
		if !slices.Equal(page.Texts(), []string{"a", "b"}) {
			t.Errorf("texts = %v", page.Texts())
		}
		if page.Count(record.KindRect) != 1 {
			t.Error("frame border was not drawn")
		}
	})

	t.Run("story is measured once", func(t *testing.T) {
		d, _ := newTestDrawer(t)
		obj := newObject(report.ObjectKindParagraph, "expr", `"a"`, "Height", "None")
		if d.story(obj) != d.story(obj) {
			t.Error("story rebuilt without reset")
		}
		st := d.story(obj)
		d.reset()
		if d.story(obj) == st {
			t.Error("story kept after reset")
		}
	})
}

func TestExtent(t *testing.T) {
	res := newResolver(t)
	rec := record.New()
	build := func(obj *report.Object) *story.Story { return story.Build(res, obj, rec) }

	para := newObject(report.ObjectKindParagraph, "expr", `"a\nb"`, "y", "10", "Height", "None")
	band := newBand(report.BandKindDetail, "", para,
		newObject(report.ObjectKindString, "y", "12", "Height", "18"))

	height := BandHeight(res, band)
	// two lines and flush hang 36pt from y
	if got := Extent(res, band, height, build); !near(got, 36+height-10) {
		t.Errorf("Extent() = %f, want %f", got, 36+height-10)
	}
	band.Props.Set("Height", "30")
	if got := Extent(res, band, 30, build); !near(got, 30) {
		t.Errorf("Extent() of fixed band = %f, want 30", got)
	}
}

func TestTracker(t *testing.T) {
	res := newResolver(t)
	rpt := report.New()
	rpt.Groups = []*report.Group{newGroup("outer", nil, nil), newGroup("inner", nil, nil)}
	tr := newTracker(rpt, res, zaptest.NewLogger(t))

	records := []datasource.Record{
		{"outer": 1, "inner": "a"},
		{"outer": int64(1), "inner": "a"},
		{"outer": 1.0, "inner": "b"},
		{"outer": 2, "inner": "b"},
	}
	want := [][]bool{{true, true}, {false, false}, {false, true}, {true, true}}
	for i, rec := range records {
		res.Context().Record = rec
		got := tr.DetectChanges()
		if !slices.Equal(got, want[i]) {
			t.Errorf("record %d: DetectChanges() = %v, want %v", i, got, want[i])
		}
		for g := range rpt.Groups {
			if tr.Pending(g) != got[g] {
				t.Errorf("record %d: Pending(%d) = %v, want %v", i, g, tr.Pending(g), got[g])
			}
			tr.Enter(g)
		}
	}
}

func TestTrackerForceReset(t *testing.T) {
	res := newResolver(t)
	v := &report.Variable{}
	v.Props.Set("Name", "n")
	v.Props.Set("expr", "n + 1")
	v.Props.Set("InitialValue", "0")
	v.Props.Set("ResetAt", "key")
	rpt := report.New()
	rpt.Variables = []*report.Variable{v}
	tr := newTracker(rpt, res, zaptest.NewLogger(t))
	vars := res.Context().Variables

	res.Context().Record = map[string]any{"key": "a"}
	tr.Refresh(false)
	tr.Refresh(false)
	if vars["n"] != 2 {
		t.Fatalf("n = %v, want 2", vars["n"])
	}

	// forced refresh does not remember new trigger, so it fires again
	res.Context().Record = map[string]any{"key": "b"}
	tr.Refresh(true)
	tr.Refresh(false)
	if vars["n"] != 1 {
		t.Errorf("n = %v, want 1", vars["n"])
	}
	tr.Refresh(false)
	if vars["n"] != 2 {
		t.Errorf("n = %v, want 2", vars["n"])
	}

	// failed expression keeps the value
	v.Props.Set("expr", "n +")
	tr.Refresh(false)
	if vars["n"] != 2 {
		t.Errorf("n = %v, want 2 after failed expression", vars["n"])
	}
}

func TestSame(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{1, int64(1), true},
		{1, 1.0, true},
		{1, 2, false},
		{"a", "a", true},
		{"1", 1, false},
		{nil, nil, true},
		{nil, 0, false},
		{[]any{1, "a"}, []any{1, "a"}, true},
	}
	for _, tt := range tests {
		if got := same(tt.a, tt.b); got != tt.want {
			t.Errorf("same(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSpans(t *testing.T) {
	s := newSpans()
	line := newObject(report.ObjectKindSpanningLine)
	g := newGroup("cat", nil, nil)

	s.store(line, nil, 0, 1, 2)
	s.store(line, nil, 0, 3, 4)
	s.store(line, g, 0, 5, 6)
	if s.pending() != 2 {
		t.Fatalf("pending() = %d, want 2", s.pending())
	}

	page := s.take(nil)
	if len(page) != 1 || page[0].x != 1 || page[0].y != 2 {
		t.Errorf("take(nil) = %+v, want first start only", page)
	}
	if got := s.take(g); len(got) != 1 || got[0].x != 5 {
		t.Errorf("take(group) = %+v", got)
	}
	if s.pending() != 0 || s.take(g) != nil {
		t.Error("spans were not removed")
	}
}

func TestBarGraph(t *testing.T) {
	t.Run("linear", func(t *testing.T) {
		d, rec := newTestDrawer(t)
		d.Draw(newObject(report.ObjectKindBarGraph, "expr", "[1, 2, 3]", "Labels", `["a", "b", "c"]`,
			"Width", "300", "Height", "200", "Error", "[0.5, 0, 0]", "YGrid", "true"), 0, 0, 0, nil)
		page := finish(t, rec)

		// background and three bars
		if got := page.Count(record.KindRect); got != 4 {
			t.Errorf("rectangles = %d, want 4", got)
		}
		texts := page.Texts()
		for _, want := range []string{"a", "b", "c", "0", "3", "Title", "X-Label", "Y-Label"} {
			if !slices.Contains(texts, want) {
				t.Errorf("texts = %v, missing %q", texts, want)
			}
		}
	})

	t.Run("logarithmic", func(t *testing.T) {
		d, rec := newTestDrawer(t)
		d.Draw(newObject(report.ObjectKindBarGraph, "expr", "[1, 10, 100]", "Log", "true",
			"Orientation", `"vertical"`, "Width", "300", "Height", "200", "Title", `""`), 0, 0, 0, nil)
		page := finish(t, rec)
		texts := page.Texts()
		for _, want := range []string{"1", "10", "100"} {
			if !slices.Contains(texts, want) {
				t.Errorf("texts = %v, missing tick %q", texts, want)
			}
		}
		if slices.Contains(texts, "Title") {
			t.Error("empty title was drawn")
		}
	})

	t.Run("no data", func(t *testing.T) {
		d, rec := newTestDrawer(t)
		d.Draw(newObject(report.ObjectKindBarGraph), 0, 0, 0, nil)
		if page := finish(t, rec); page.Count(record.KindText) != 0 {
			t.Errorf("texts = %v, want none", page.Texts())
		}
	})

	t.Run("nice range", func(t *testing.T) {
		lo, hi, step := niceRange(0, 7.3, 5)
		if lo != 0 || hi != 8 || step != 2 {
			t.Errorf("niceRange() = %v, %v, %v, want 0, 8, 2", lo, hi, step)
		}
	})
}
