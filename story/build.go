// Package story turns Paragraph content into measured chunks which can be
// flowed over columns and continued on following pages.
package story

import (
	"strings"

	"rpw/common"
	"rpw/props"
	"rpw/report"
	"rpw/surface"
)

// Frame is geometry of the container content flows in.
type Frame struct {
	Width     float64
	Columns   int
	PadLeft   float64
	PadRight  float64
	PadTop    float64
	PadBottom float64
}

// ColumnWidth includes horizontal padding.
func (f Frame) ColumnWidth() float64 {
	return f.Width / float64(max(f.Columns, 1))
}

func (f Frame) padding() float64 {
	return f.PadTop + f.PadBottom
}

// Story is content of a container ready for layout.
type Story struct {
	Frame  Frame
	Chunks []Chunk
	// Height is sum of chunk heights plus vertical padding.
	Height float64
}

// FrameOf returns geometry of Frameset or standalone Paragraph.
func FrameOf(res *props.Resolver, obj *report.Object) Frame {
	f := Frame{
		Width:   res.Points(obj, "Width"),
		Columns: 1,
	}
	if obj.Kind == report.ObjectKindFrameset {
		f.Columns = max(res.Int(obj, "ColumnCount"), 1)
		f.PadLeft = res.Points(obj, "PadLeft")
		f.PadRight = res.Points(obj, "PadRight")
		f.PadTop = res.Points(obj, "PadTop")
		f.PadBottom = res.Points(obj, "PadBottom")
	}
	return f
}

// Build measures content of Frameset children or of a standalone Paragraph.
func Build(res *props.Resolver, obj *report.Object, m surface.Measurer) *Story {
	frame := FrameOf(res, obj)
	_, fixed := res.Dimension(obj, "Height")

	children := obj.Objects
	if obj.Kind == report.ObjectKindParagraph {
		children = []*report.Object{obj}
	}

	width := frame.ColumnWidth() - frame.PadLeft - frame.PadRight
	st := &Story{Frame: frame}
	for _, child := range children {
		if child.Kind != report.ObjectKindParagraph {
			continue
		}
		style := ResolveStyle(res, child)
		paras := splitLines(res.Text(child, "expr"))
		for _, para := range paras {
			if strings.TrimSpace(para) == "" {
				st.Chunks = append(st.Chunks, &Spacer{H: style.Leading})
				continue
			}
			st.Chunks = append(st.Chunks, &Paragraph{
				Style: style,
				Lines: wrap(para, style, width, m),
				Width: width,
			})
		}
		if !fixed && len(paras) > 0 {
			st.Chunks = append(st.Chunks, &Flush{H: style.Leading})
		}
	}

	for _, c := range st.Chunks {
		st.Height += c.Height()
	}
	st.Height += frame.padding()
	return st
}

// ResolveStyle returns named style of the paragraph with explicitly set
// properties applied on top.
func ResolveStyle(res *props.Resolver, obj *report.Object) Style {
	style, _ := Lookup(res.String(obj, "Style"))
	p := &obj.Props
	if p.Has("FontName") {
		style.FontName = res.String(obj, "FontName")
	}
	if p.Has("FontSize") {
		style.FontSize = res.Float(obj, "FontSize")
	}
	if p.Has("FontColor") {
		if c, ok := res.Color(obj, "FontColor"); ok {
			style.TextColor = c
		}
	}
	if p.Has("Leading") {
		style.Leading = res.Points(obj, "Leading")
	}
	if p.Has("SpaceBefore") {
		style.SpaceBefore = res.Points(obj, "SpaceBefore")
	}
	if p.Has("SpaceAfter") {
		style.SpaceAfter = res.Points(obj, "SpaceAfter")
	}
	if p.Has("LeftIndent") {
		style.LeftIndent = res.Points(obj, "LeftIndent")
	}
	if p.Has("RightIndent") {
		style.RightIndent = res.Points(obj, "RightIndent")
	}
	if p.Has("FirstLineIndent") {
		style.FirstLineIndent = res.Points(obj, "FirstLineIndent")
	}
	if p.Has("Align") {
		if a, err := common.ParseTextAlign(res.String(obj, "Align")); err == nil {
			style.Align = a
		}
	}
	if style.Leading <= 0 {
		style.Leading = style.FontSize * 1.2
	}
	return style
}

// splitLines breaks text on line boundaries, trailing line break does not
// produce empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func wrap(text string, st Style, width float64, m surface.Measurer) []Line {
	space := m.StringWidth(" ", st.FontName, st.FontSize)

	var (
		lines []Line
		words []string
		cur   float64
	)
	indent := func() float64 {
		if len(lines) == 0 {
			return st.FirstLineIndent
		}
		return 0
	}
	flush := func() {
		lines = append(lines, Line{Text: strings.Join(words, " "), Width: cur, Indent: indent()})
		words, cur = words[:0], 0
	}

	for _, w := range strings.Fields(text) {
		ww := m.StringWidth(w, st.FontName, st.FontSize)
		avail := width - st.LeftIndent - st.RightIndent - indent()
		if len(words) > 0 && cur+space+ww > avail {
			flush()
		}
		if len(words) > 0 {
			cur += space
		}
		words = append(words, w)
		cur += ww
	}
	if len(words) > 0 {
		flush()
	}
	return lines
}
