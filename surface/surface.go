// Package surface defines drawing primitives the report engine renders
// through. Coordinates are in points with origin at the bottom-left corner of
// the page and y growing up.
package surface

import (
	"io"

	"rpw/images"
)

// Color is an RGB color with components in 0..1 range.
type Color struct {
	R, G, B float64
}

var (
	Black = Color{}
	White = Color{1, 1, 1}
)

// Stroke describes how lines are drawn. Empty Dash means solid line.
type Stroke struct {
	Width float64
	Color Color
	Dash  []float64
}

// Info is document metadata.
type Info struct {
	Title    string
	Subject  string
	Author   string
	Keywords []string
	Creator  string
}

// Measurer measures text set in one of the surface fonts.
type Measurer interface {
	// StringWidth returns width of the text in points. Unknown fonts are
	// measured as Helvetica.
	StringWidth(text, font string, size float64) float64
}

// Surface is a page oriented drawing target. State changing calls (Translate,
// Rotate, Scale, ClipRect, SetFont) are undone by the matching Restore.
type Surface interface {
	Measurer

	SetInfo(info Info)

	// BeginPage starts new page of the given size, EndPage finishes it.
	BeginPage(width, height float64) error
	EndPage() error

	Save()
	Restore()
	Translate(dx, dy float64)
	// Rotate rotates coordinate system counterclockwise around current
	// origin.
	Rotate(degrees float64)
	Scale(sx, sy float64)
	ClipRect(x, y, w, h float64)

	// Rect draws rectangle, nil stroke or fill skips that part.
	Rect(x, y, w, h float64, stroke *Stroke, fill *Color)
	Line(x1, y1, x2, y2 float64, stroke Stroke)

	// SetFont selects font for following Text calls, error is returned for
	// fonts surface does not know.
	SetFont(name string, size float64) error
	// Text draws string with its baseline starting at (x, y).
	Text(x, y float64, text string, color Color)

	// Image draws prepared image scaled into the box.
	Image(img *images.Image, x, y, w, h float64) error

	// Finish completes the document and writes it out.
	Finish(w io.Writer) error
}
