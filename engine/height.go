package engine

import (
	"rpw/props"
	"rpw/report"
	"rpw/story"
)

// BandHeight returns explicit band height. When height is None it is the
// highest extent of visible objects, growable objects contribute their
// position only.
func BandHeight(res *props.Resolver, band *report.Band) float64 {
	if h, ok := res.Dimension(band, "Height"); ok {
		return h
	}
	var height float64
	for _, obj := range band.Objects {
		if res.ExplicitlyFalse(obj, "Show") {
			continue
		}
		h, ok := res.Dimension(obj, "Height")
		if !ok {
			h = 0
		}
		height = max(height, res.Points(obj, "y")+h)
	}
	return height
}

// Dynamic reports whether band height is derived from its objects.
func Dynamic(res *props.Resolver, band *report.Band) bool {
	_, ok := res.Dimension(band, "Height")
	return !ok
}

// growable objects have content driven height and hang down from their y.
func growable(res *props.Resolver, obj *report.Object) bool {
	switch obj.Kind {
	case report.ObjectKindFrameset, report.ObjectKindParagraph:
		_, ok := res.Dimension(obj, "Height")
		return !ok
	}
	return false
}

// Extent returns height band occupies once growable objects are laid out,
// never less than height. Bands of fixed height do not grow.
func Extent(res *props.Resolver, band *report.Band, height float64, build func(*report.Object) *story.Story) float64 {
	if !Dynamic(res, band) {
		return height
	}
	total := height
	for _, obj := range band.Objects {
		if res.ExplicitlyFalse(obj, "Show") || !growable(res, obj) {
			continue
		}
		total = max(total, build(obj).Height+height-res.Points(obj, "y"))
	}
	return total
}
