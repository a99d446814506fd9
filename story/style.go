package story

import (
	"strings"

	"rpw/common"
	"rpw/surface"
)

// Style describes paragraph typography.
type Style struct {
	Name            string
	FontName        string
	FontSize        float64
	Leading         float64
	SpaceBefore     float64
	SpaceAfter      float64
	LeftIndent      float64
	RightIndent     float64
	FirstLineIndent float64
	Align           common.TextAlign
	TextColor       surface.Color
}

var stylesheet = func() map[string]Style {
	normal := Style{Name: "Normal", FontName: "Helvetica", FontSize: 10, Leading: 12}

	body := normal
	body.Name, body.SpaceBefore = "BodyText", 6

	italic := body
	italic.Name, italic.FontName = "Italic", "Helvetica-Oblique"

	heading := func(name, font string, size, leading, before float64) Style {
		s := normal
		s.Name, s.FontName, s.FontSize, s.Leading = name, font, size, leading
		s.SpaceBefore, s.SpaceAfter = before, 6
		return s
	}
	title := heading("Title", "Helvetica-Bold", 18, 22, 0)
	title.Align = common.TextAlignCenter

	bullet := normal
	bullet.Name, bullet.SpaceBefore, bullet.LeftIndent = "Bullet", 3, 18

	code := normal
	code.Name, code.FontName, code.FontSize, code.Leading, code.LeftIndent = "Code", "Courier", 8, 8.8, 36

	all := []Style{
		normal, body, italic, title, bullet, code,
		heading("Heading1", "Helvetica-Bold", 18, 22, 0),
		heading("Heading2", "Helvetica-Bold", 14, 18, 12),
		heading("Heading3", "Helvetica-BoldOblique", 12, 14, 12),
	}
	m := make(map[string]Style, len(all))
	for _, s := range all {
		m[strings.ToLower(s.Name)] = s
	}
	return m
}()

// Lookup returns named style, unknown names resolve to Normal with ok set to
// false.
func Lookup(name string) (Style, bool) {
	s, ok := stylesheet[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return stylesheet["normal"], false
	}
	return s, true
}
