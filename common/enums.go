// Package common keeps enumerations shared by the report model, the engine
// and configuration. Keeping them here avoids import cycles between report
// and config packages.
package common

//go:generate go tool go-enum --marshal --nocase

// Page orientation.
// ENUM(portrait, landscape)
type PageOrientation int

// Horizontal anchor of a drawable object relative to its x position.
// ENUM(left, center, right)
type HAnchor int

// Vertical anchor of a drawable object relative to its y position.
// ENUM(bottom, middle, top)
type VAnchor int

// Text alignment inside a String box or a paragraph line.
// ENUM(left, center, right)
type TextAlign int

// How image is fitted into its box.
// ENUM(scale, clip, proportional)
type ScaleMode int

// Offset returns horizontal shift to apply to x for an object of width w.
func (a HAnchor) Offset(w float64) float64 {
	switch a {
	case HAnchorCenter:
		return -w / 2
	case HAnchorRight:
		return -w
	default:
		return 0
	}
}

// Offset returns vertical shift to apply to y for an object of height h.
func (a VAnchor) Offset(h float64) float64 {
	switch a {
	case VAnchorMiddle:
		return -h / 2
	case VAnchorTop:
		return -h
	default:
		return 0
	}
}
