package engine

import (
	"go.uber.org/zap"

	"rpw/report"
	"rpw/surface"
)

func (d *drawer) rect(obj *report.Object, g geometry, x, y float64) {
	d.s.Translate(x, y)
	d.s.Rotate(g.rotation)

	var fill *surface.Color
	if c, ok := d.res.Color(obj, "FillColor"); ok {
		fill = &c
	}
	d.s.Rect(0, 0, g.width, g.height, d.stroke(obj), fill)
}

func (d *drawer) line(obj *report.Object, g geometry, x, y float64) {
	st := d.stroke(obj)
	if st == nil {
		return
	}
	d.s.Translate(x, y)
	d.s.Rotate(g.rotation)

	w, h := g.width, g.height
	switch slant := d.res.String(obj, "LineSlant"); slant {
	case "-":
		d.s.Line(0, h/2, w, h/2, *st)
	case "|":
		d.s.Line(w/2, 0, w/2, h, *st)
	case "\\":
		d.s.Line(w, 0, 0, h, *st)
	case "/":
		d.s.Line(0, 0, w, h, *st)
	default:
		d.log.Debug("Unknown line slant, line skipped", zap.String("slant", slant))
	}
}

// drawSpan draws SpanningLine from its recorded start to (x, y).
func (d *drawer) drawSpan(sp span, x, y float64) {
	st := d.stroke(sp.obj)
	if st == nil {
		return
	}
	d.s.Save()
	defer d.s.Restore()
	d.s.Line(sp.x, sp.y, x, y, *st)
}
