package report

import "strings"

// Decl declares a property an element class understands together with the
// value used when the property is absent or its expression fails.
type Decl struct {
	Name    string
	Default any
	Doc     string
}

var black = []any{0.0, 0.0, 0.0}

var (
	baseDecls = []Decl{
		{"Comment", "", "Free text, ignored when rendering."},
	}

	drawableDecls = []Decl{
		{"DesignerLock", false, "Designer hint, ignored when rendering."},
		{"x", 0.0, "Horizontal position relative to the band origin."},
		{"y", 0.0, "Vertical position relative to the band bottom."},
		{"Width", 55.0, "Width of the object."},
		{"Height", 18.0, "Height of the object, None lets content decide."},
		{"Rotation", 0.0, "Rotation in degrees, counterclockwise."},
		{"hAnchor", "left", "Horizontal anchor: left, center or right."},
		{"vAnchor", "bottom", "Vertical anchor: bottom, middle or top."},
		{"Show", true, "Whether object is drawn."},
	}

	strokeDecls = []Decl{
		{"StrokeWidth", 1.0, "Line width."},
		{"StrokeColor", black, "Line color."},
		{"StrokeDashArray", nil, "Dash pattern, None for solid."},
	}

	bandDecls = []Decl{
		{"Height", nil, "Band height, None derives height from objects."},
		{"DesignerLock", false, "Designer hint, ignored when rendering."},
		{"Show", true, "Whether band is printed."},
	}
)

var declarations = map[string][]Decl{}

func declare(class string, sets ...[]Decl) {
	var all []Decl
	for _, set := range sets {
		for _, d := range set {
			// later sets override earlier ones
			replaced := false
			for i := range all {
				if strings.EqualFold(all[i].Name, d.Name) {
					all[i] = d
					replaced = true
					break
				}
			}
			if !replaced {
				all = append(all, d)
			}
		}
	}
	declarations[strings.ToLower(class)] = all
}

func init() {
	declare("Report", baseDecls, []Decl{
		{"Author", "", "Document author."},
		{"Subject", "", "Document subject."},
		{"Keywords", []any{}, "Document keywords."},
		{"Title", "", "Document title."},
		{"ColumnCount", 1, "Number of detail columns per page."},
		{"Encoding", "", "Character set for standard fonts, empty uses configuration."},
	})
	declare("Page", baseDecls, []Decl{
		{"MarginBottom", ".5 in", "Bottom margin."},
		{"MarginLeft", ".5 in", "Left margin."},
		{"MarginTop", ".5 in", "Top margin."},
		{"MarginRight", ".5 in", "Right margin."},
		{"Orientation", "portrait", "portrait or landscape."},
		{"Size", "letter", "Paper name or (width, height)."},
	})
	declare("Group", baseDecls, []Decl{
		{"expr", nil, "Group breaks when value of this expression changes."},
		{"StartOnNewPage", false, "Start every group on a new page."},
		{"ReprintHeaderOnNewPage", false, "Repeat group header after page break."},
		{"ResetPageNumber", false, "Restart page numbering with every group."},
	})
	declare("Variable", baseDecls, []Decl{
		{"InitialValue", nil, "Value after reset."},
		{"expr", nil, "Evaluated for every record, result becomes the value."},
		{"Name", nil, "Name used in expressions."},
		{"ResetAt", nil, "Variable resets when value of this expression changes."},
	})

	for _, kind := range BandKindNames() {
		declare(kind, baseDecls, bandDecls)
	}
	declare(BandKindReportBegin.String(), baseDecls, bandDecls, []Decl{
		{"PageBreakAfter", false, "Start new page after the band."},
	})
	declare(BandKindReportEnd.String(), baseDecls, bandDecls, []Decl{
		{"PageBreakBefore", false, "Start new page before the band."},
	})

	declare(ObjectKindRectangle.String(), baseDecls, drawableDecls, strokeDecls, []Decl{
		{"FillColor", nil, "Fill color, None for transparent."},
	})
	declare(ObjectKindLine.String(), baseDecls, drawableDecls, strokeDecls, []Decl{
		{"LineSlant", "-", "One of -, |, / or \\."},
	})
	declare(ObjectKindSpanningLine.String(), baseDecls, drawableDecls, strokeDecls, []Decl{
		{"xFooter", 0.0, "Horizontal end position relative to the closing band."},
		{"yFooter", 0.0, "Vertical end position relative to the closing band."},
	})
	declare(ObjectKindString.String(), baseDecls, drawableDecls, []Decl{
		{"expr", "", "Text to print."},
		{"BorderWidth", 0.0, "Border width, 0 for no border."},
		{"BorderColor", black, "Border color."},
		{"Align", "left", "left, center or right."},
		{"FontName", "Helvetica", "Font name."},
		{"FontSize", 10.0, "Font size."},
		{"FontColor", black, "Text color."},
		{"ScalePercent", []any{100.0, 100.0}, "Horizontal and vertical scaling."},
	})
	declare(ObjectKindParagraph.String(), baseDecls, drawableDecls, []Decl{
		{"expr", "", "Text, every line becomes a paragraph."},
		{"Style", "Normal", "Named paragraph style."},
		{"FontName", "Helvetica", "Overrides style font."},
		{"FontSize", 10.0, "Overrides style font size."},
		{"FontColor", black, "Overrides style text color."},
		{"Leading", 0.0, "Overrides style leading."},
		{"SpaceBefore", 0.0, "Overrides style space before."},
		{"SpaceAfter", 0.0, "Overrides style space after."},
		{"LeftIndent", 0.0, "Overrides style left indent."},
		{"RightIndent", 0.0, "Overrides style right indent."},
		{"FirstLineIndent", 0.0, "Overrides style first line indent."},
		{"Align", "left", "Overrides style alignment."},
	})
	declare(ObjectKindImage.String(), baseDecls, drawableDecls, []Decl{
		{"expr", "", "Path to image file or image data."},
		{"BorderWidth", 0.0, "Border width, 0 for no border."},
		{"BorderColor", black, "Border color."},
		{"ImageMask", nil, "Transparent color range, ignored by PDF output."},
		{"ScaleMode", "scale", "scale, clip or proportional."},
	})
	declare(ObjectKindBarGraph.String(), baseDecls, drawableDecls, []Decl{
		{"expr", []any{}, "Bar values."},
		{"Labels", []any{}, "Bar labels."},
		{"Title", "Title", "Graph title."},
		{"XLabel", "X-Label", "Label of the category axis."},
		{"YLabel", "Y-Label", "Label of the value axis."},
		{"XGrid", false, "Draw category grid lines."},
		{"YGrid", false, "Draw value grid lines."},
		{"Orientation", "horizontal", "horizontal lays bars out along x axis, vertical along y axis."},
		{"Log", false, "Logarithmic value axis."},
		{"LabelTextSize", "x-small", "Label font size, named or numeric."},
		{"BarColor", "blue", "Bar fill color."},
		{"BarBorder", 0.0, "Bar border width."},
		{"BarBorderColor", "black", "Bar border color."},
		{"Error", []any{}, "Error bar sizes."},
		{"CapSize", 3.0, "Error bar cap size."},
		{"ErrorBarColor", "black", "Error bar color."},
		{"BorderWidth", 0.0, "Border width, 0 for no border."},
		{"BorderColor", black, "Border color."},
		{"BackgroundColor", "white", "Graph background."},
		{"ScaleMode", "scale", "Accepted for compatibility, graph always fills its box."},
	})
	declare(ObjectKindFrameset.String(), baseDecls, drawableDecls, []Decl{
		{"FrameId", nil, "Frame identifier, informational."},
		{"BorderWidth", 0.0, "Border width, 0 for no border."},
		{"BorderColor", black, "Border color."},
		{"FillColor", nil, "Background, None for transparent."},
		{"PadLeft", 0.0, "Left padding."},
		{"PadRight", 0.0, "Right padding."},
		{"PadTop", 0.0, "Top padding."},
		{"PadBottom", 0.0, "Bottom padding."},
		{"ColumnCount", 1, "Number of columns inside the frame."},
	})
}

// Lookup returns declaration of the named property for the element class.
func Lookup(class, name string) (Decl, bool) {
	for _, d := range declarations[strings.ToLower(class)] {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Decl{}, false
}

// Declared returns all properties of the class in declaration order.
func Declared(class string) []Decl {
	decls := declarations[strings.ToLower(class)]
	out := make([]Decl, len(decls))
	copy(out, decls)
	return out
}
