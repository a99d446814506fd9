// Package record implements drawing surface which keeps every operation in
// memory. It is used by tests and to produce textual layout dumps.
package record

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/maruel/natural"

	"rpw/images"
	"rpw/surface"
	"rpw/utils/debug"
)

// Kind of recorded operation.
type Kind string

const (
	KindSave      Kind = "save"
	KindRestore   Kind = "restore"
	KindTranslate Kind = "translate"
	KindRotate    Kind = "rotate"
	KindScale     Kind = "scale"
	KindClip      Kind = "clip"
	KindRect      Kind = "rect"
	KindLine      Kind = "line"
	KindFont      Kind = "font"
	KindText      Kind = "text"
	KindImage     Kind = "image"
)

// Op is a single drawing call. X and Y hold the point of the call mapped to
// page coordinates: origin of rectangles, images and text, start of lines.
type Op struct {
	Kind   Kind
	Args   []float64
	X, Y   float64
	Text   string
	Font   string
	Size   float64
	Color  surface.Color
	Stroke *surface.Stroke
	Fill   *surface.Color
	Depth  int
}

// Page is a finished page.
type Page struct {
	Width  float64
	Height float64
	Ops    []Op
}

// Texts returns text drawn on the page in drawing order.
func (p *Page) Texts() []string {
	var out []string
	for _, op := range p.Ops {
		if op.Kind == KindText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Count returns number of operations of the kind.
func (p *Page) Count(kind Kind) int {
	n := 0
	for _, op := range p.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

type state struct {
	m    matrix
	font string
	size float64
}

// Recorder is a surface.Surface.
type Recorder struct {
	Info  surface.Info
	Pages []*Page

	cur   *Page
	stack []state
	st    state
	fonts map[string]struct{}
}

// New returns empty recorder.
func New() *Recorder {
	return &Recorder{fonts: make(map[string]struct{})}
}

var _ surface.Surface = (*Recorder)(nil)

func (r *Recorder) add(op Op) {
	if r.cur == nil {
		return
	}
	op.Depth = len(r.stack)
	r.cur.Ops = append(r.cur.Ops, op)
}

func (r *Recorder) SetInfo(info surface.Info) {
	r.Info = info
}

func (r *Recorder) BeginPage(width, height float64) error {
	if r.cur != nil {
		return errors.New("page already started")
	}
	r.cur = &Page{Width: width, Height: height}
	r.stack = r.stack[:0]
	r.st = state{m: identity}
	return nil
}

func (r *Recorder) EndPage() error {
	if r.cur == nil {
		return errors.New("no page to end")
	}
	if len(r.stack) != 0 {
		return fmt.Errorf("unbalanced graphics state on page %d: %d saves not restored", len(r.Pages)+1, len(r.stack))
	}
	r.Pages = append(r.Pages, r.cur)
	r.cur = nil
	return nil
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.st)
	r.add(Op{Kind: KindSave})
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.add(Op{Kind: KindRestore})
	r.st = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(dx, dy float64) {
	r.st.m = r.st.m.translate(dx, dy)
	r.add(Op{Kind: KindTranslate, Args: []float64{dx, dy}})
}

func (r *Recorder) Rotate(degrees float64) {
	r.st.m = r.st.m.rotate(degrees)
	r.add(Op{Kind: KindRotate, Args: []float64{degrees}})
}

func (r *Recorder) Scale(sx, sy float64) {
	r.st.m = r.st.m.scale(sx, sy)
	r.add(Op{Kind: KindScale, Args: []float64{sx, sy}})
}

func (r *Recorder) ClipRect(x, y, w, h float64) {
	px, py := r.st.m.apply(x, y)
	r.add(Op{Kind: KindClip, Args: []float64{x, y, w, h}, X: px, Y: py})
}

func (r *Recorder) Rect(x, y, w, h float64, stroke *surface.Stroke, fill *surface.Color) {
	px, py := r.st.m.apply(x, y)
	r.add(Op{Kind: KindRect, Args: []float64{x, y, w, h}, X: px, Y: py, Stroke: stroke, Fill: fill})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, stroke surface.Stroke) {
	px, py := r.st.m.apply(x1, y1)
	r.add(Op{Kind: KindLine, Args: []float64{x1, y1, x2, y2}, X: px, Y: py, Stroke: &stroke})
}

func (r *Recorder) SetFont(name string, size float64) error {
	if _, _, ok := surface.CoreFont(name); !ok {
		return fmt.Errorf("unknown font %q", name)
	}
	r.st.font, r.st.size = name, size
	r.fonts[name] = struct{}{}
	r.add(Op{Kind: KindFont, Font: name, Size: size})
	return nil
}

func (r *Recorder) Text(x, y float64, text string, color surface.Color) {
	px, py := r.st.m.apply(x, y)
	r.add(Op{Kind: KindText, Args: []float64{x, y}, X: px, Y: py, Text: text, Font: r.st.font, Size: r.st.size, Color: color})
}

func (r *Recorder) Image(img *images.Image, x, y, w, h float64) error {
	if img == nil {
		return errors.New("nil image")
	}
	px, py := r.st.m.apply(x, y)
	r.add(Op{Kind: KindImage, Args: []float64{x, y, w, h}, X: px, Y: py, Text: img.ID})
	return nil
}

// StringWidth approximates font metrics: half of the font size per
// character, monospaced fonts 0.6.
func (r *Recorder) StringWidth(text, font string, size float64) float64 {
	k := 0.5
	if family, _, _ := surface.CoreFont(font); family == "Courier" {
		k = 0.6
	}
	return float64(utf8.RuneCountInString(text)) * size * k
}

// Finish writes textual dump of the recorded document.
func (r *Recorder) Finish(w io.Writer) error {
	if r.cur != nil {
		if err := r.EndPage(); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, r.Dump())
	return err
}

// Dump returns indented listing of all pages.
func (r *Recorder) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Fields(0, "document", "title", r.Info.Title, "author", r.Info.Author, "pages", len(r.Pages))
	for i, p := range r.Pages {
		tw.Fields(1, fmt.Sprintf("page %d", i+1), "width", p.Width, "height", p.Height)
		for _, op := range p.Ops {
			depth := 2 + op.Depth
			switch op.Kind {
			case KindText:
				tw.Fields(depth, string(op.Kind), "at", []float64{op.X, op.Y}, "font", op.Font, "size", op.Size, "text", op.Text)
			case KindFont:
				tw.Fields(depth, string(op.Kind), "name", op.Font, "size", op.Size)
			case KindImage:
				tw.Fields(depth, string(op.Kind), "at", []float64{op.X, op.Y}, "box", op.Args[2:], "id", op.Text)
			case KindSave, KindRestore:
				tw.Line(depth, "%s", op.Kind)
			default:
				tw.Fields(depth, string(op.Kind), "at", []float64{op.X, op.Y}, "args", op.Args)
			}
		}
	}
	fonts := make([]string, 0, len(r.fonts))
	for f := range r.fonts {
		fonts = append(fonts, f)
	}
	slices.SortFunc(fonts, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	tw.Line(0, "fonts: %s", strings.Join(fonts, ", "))
	return tw.String()
}

type matrix struct {
	a, b, c, d, e, f float64
}

var identity = matrix{a: 1, d: 1}

func (m matrix) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

func (m matrix) translate(dx, dy float64) matrix {
	m.e += m.a*dx + m.c*dy
	m.f += m.b*dx + m.d*dy
	return m
}

func (m matrix) rotate(degrees float64) matrix {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return matrix{
		a: m.a*cos + m.c*sin,
		b: m.b*cos + m.d*sin,
		c: m.c*cos - m.a*sin,
		d: m.d*cos - m.b*sin,
		e: m.e,
		f: m.f,
	}
}

func (m matrix) scale(sx, sy float64) matrix {
	m.a *= sx
	m.b *= sx
	m.c *= sy
	m.d *= sy
	return m
}
