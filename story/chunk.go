package story

import (
	"strings"

	"rpw/common"
	"rpw/surface"
)

// Chunk is a measured piece of flowing content.
type Chunk interface {
	Height() float64
	// Draw renders chunk with its top edge at yTop. Returned error reports
	// a font problem, content is still drawn with the fallback font.
	Draw(s surface.Surface, x, yTop float64) error
}

// Splitter is implemented by chunks which may be broken between columns.
type Splitter interface {
	// Split returns head which fits into height and the rest, ok is false
	// when not even a part of the chunk fits.
	Split(height float64) (head, tail Chunk, ok bool)
}

// Line is a single wrapped line of paragraph text.
type Line struct {
	Text   string
	Width  float64
	Indent float64
}

// Paragraph is a text line of the source wrapped to the column width.
type Paragraph struct {
	Style Style
	Lines []Line
	// Width is the width text was wrapped to.
	Width float64

	// continued paragraphs lose space before, split heads lose space after
	noBefore, noAfter bool
}

func (p *Paragraph) spaceBefore() float64 {
	if p.noBefore {
		return 0
	}
	return p.Style.SpaceBefore
}

func (p *Paragraph) spaceAfter() float64 {
	if p.noAfter {
		return 0
	}
	return p.Style.SpaceAfter
}

func (p *Paragraph) Height() float64 {
	return p.spaceBefore() + float64(len(p.Lines))*p.Style.Leading + p.spaceAfter()
}

// Text returns paragraph lines joined with spaces.
func (p *Paragraph) Text() string {
	parts := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, " ")
}

func (p *Paragraph) Split(height float64) (Chunk, Chunk, bool) {
	n := int((height - p.spaceBefore()) / p.Style.Leading)
	if n <= 0 {
		return nil, nil, false
	}
	head := *p
	head.noAfter = true
	if n >= len(p.Lines) {
		// only space after did not fit
		return &head, nil, true
	}
	head.Lines = p.Lines[:n]
	tail := *p
	tail.Lines = p.Lines[n:]
	tail.noBefore = true
	return &head, &tail, true
}

func (p *Paragraph) Draw(s surface.Surface, x, yTop float64) error {
	st := p.Style
	err := s.SetFont(st.FontName, st.FontSize)
	if err != nil {
		_ = s.SetFont("Helvetica", st.FontSize)
	}
	y := yTop - p.spaceBefore()
	for _, l := range p.Lines {
		// baseline sits font size below line top, rest of leading is below
		baseline := y - st.FontSize
		var lx float64
		switch st.Align {
		case common.TextAlignCenter:
			lx = x + st.LeftIndent + l.Indent + (p.Width-st.LeftIndent-st.RightIndent-l.Indent-l.Width)/2
		case common.TextAlignRight:
			lx = x + p.Width - st.RightIndent - l.Width
		default:
			lx = x + st.LeftIndent + l.Indent
		}
		s.Text(lx, baseline, l.Text, st.TextColor)
		y -= st.Leading
	}
	return err
}

// Spacer stands for an empty source line.
type Spacer struct {
	H float64
}

func (sp *Spacer) Height() float64 { return sp.H }
func (sp *Spacer) Draw(surface.Surface, float64, float64) error { return nil }

// Flush terminates content of dynamically sized containers so the last real
// line is never the one left over when content is continued in the next
// column or page.
type Flush struct {
	H float64
}

func (f *Flush) Height() float64 { return f.H }
func (f *Flush) Draw(surface.Surface, float64, float64) error { return nil }
