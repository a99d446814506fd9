package record

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"rpw/surface"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTransforms(t *testing.T) {
	r := New()
	if err := r.BeginPage(100, 200); err != nil {
		t.Fatal(err)
	}

	r.Save()
	r.Translate(10, 20)
	r.Rotate(90)
	r.Text(5, 0, "rotated", surface.Black)
	r.Restore()

	r.Save()
	r.Translate(1, 1)
	r.Scale(2, 3)
	r.Rect(1, 1, 4, 4, nil, nil)
	r.Restore()

	r.Text(7, 8, "plain", surface.Black)
	if err := r.EndPage(); err != nil {
		t.Fatal(err)
	}

	ops := r.Pages[0].Ops
	var texts, rects []Op
	for _, op := range ops {
		switch op.Kind {
		case KindText:
			texts = append(texts, op)
		case KindRect:
			rects = append(rects, op)
		}
	}
	if len(texts) != 2 || len(rects) != 1 {
		t.Fatalf("unexpected ops: %+v", ops)
	}
	if !near(texts[0].X, 10) || !near(texts[0].Y, 25) {
		t.Errorf("rotated text at (%v, %v), want (10, 25)", texts[0].X, texts[0].Y)
	}
	if texts[0].Depth != 1 {
		t.Errorf("rotated text depth = %d, want 1", texts[0].Depth)
	}
	if !near(rects[0].X, 3) || !near(rects[0].Y, 4) {
		t.Errorf("scaled rect at (%v, %v), want (3, 4)", rects[0].X, rects[0].Y)
	}
	if !near(texts[1].X, 7) || !near(texts[1].Y, 8) {
		t.Errorf("state was not restored, text at (%v, %v)", texts[1].X, texts[1].Y)
	}
}

func TestPageErrors(t *testing.T) {
	r := New()
	if err := r.EndPage(); err == nil {
		t.Error("EndPage() without page should fail")
	}
	if err := r.BeginPage(10, 10); err != nil {
		t.Fatal(err)
	}
	if err := r.BeginPage(10, 10); err == nil {
		t.Error("nested BeginPage() should fail")
	}
	r.Save()
	if err := r.EndPage(); err == nil || !strings.Contains(err.Error(), "unbalanced") {
		t.Errorf("EndPage() error = %v, want unbalanced state", err)
	}
}

func TestFonts(t *testing.T) {
	r := New()
	if err := r.SetFont("Comic Sans", 10); err == nil {
		t.Error("SetFont() of unknown font should fail")
	}
	if err := r.SetFont("times-bold", 10); err != nil {
		t.Errorf("SetFont() error = %v", err)
	}
	if w := r.StringWidth("abcd", "Helvetica", 10); w != 20 {
		t.Errorf("StringWidth() = %v, want 20", w)
	}
	if w := r.StringWidth("abcd", "Courier-Bold", 10); !near(w, 24) {
		t.Errorf("StringWidth() of Courier = %v, want 24", w)
	}
}

func TestFinish(t *testing.T) {
	r := New()
	r.SetInfo(surface.Info{Title: "Sales"})
	_ = r.BeginPage(612, 792)
	_ = r.SetFont("Helvetica", 10)
	r.Text(36, 700, "hello", surface.Black)
	_ = r.EndPage()
	_ = r.BeginPage(612, 792)
	_ = r.SetFont("Courier", 8)
	r.Line(0, 0, 10, 10, surface.Stroke{Width: 1})

	var buf bytes.Buffer
	if err := r.Finish(&buf); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if len(r.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(r.Pages))
	}

	out := buf.String()
	for _, want := range []string{
		`document title="Sales" author="" pages=2`,
		"  page 1 width=612.00 height=792.00",
		`    text at=[36.00 700.00] font="Helvetica" size=10.00 text="hello"`,
		"    line at=[0.00 0.00] args=[0.00 0.00 10.00 10.00]",
		"fonts: Courier, Helvetica",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump does not contain %q:\n%s", want, out)
		}
	}
	if got := r.Pages[0].Texts(); len(got) != 1 || got[0] != "hello" {
		t.Errorf("Texts() = %v", got)
	}
	if n := r.Pages[1].Count(KindLine); n != 1 {
		t.Errorf("Count(line) = %d, want 1", n)
	}
}
