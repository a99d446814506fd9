package engine

import (
	"go.uber.org/zap"

	"rpw/common"
	"rpw/images"
	"rpw/props"
	"rpw/report"
	"rpw/story"
	"rpw/surface"
)

// geometry shared by every drawable object.
type geometry struct {
	width    float64
	height   float64
	dynamic  bool
	rotation float64
	hAnchor  common.HAnchor
	vAnchor  common.VAnchor
}

// drawer renders single objects. Problems with fonts and images never stop
// rendering, they are logged and drawn with visible fallbacks.
type drawer struct {
	s       surface.Surface
	res     *props.Resolver
	log     *zap.Logger
	images  *images.Loader
	stories map[*report.Object]*story.Story
}

func newDrawer(s surface.Surface, res *props.Resolver, loader *images.Loader, log *zap.Logger) *drawer {
	return &drawer{
		s:       s,
		res:     res,
		log:     log,
		images:  loader,
		stories: make(map[*report.Object]*story.Story),
	}
}

// story returns measured content of Frameset or Paragraph. Stories are kept
// until reset so measuring a band and drawing it builds them once.
func (d *drawer) story(obj *report.Object) *story.Story {
	if st, ok := d.stories[obj]; ok {
		return st
	}
	st := story.Build(d.res, obj, d.s)
	d.stories[obj] = st
	return st
}

// reset forgets measured stories, expressions may evaluate differently now.
func (d *drawer) reset() {
	clear(d.stories)
}

func (d *drawer) geometry(obj *report.Object) geometry {
	g := geometry{
		width:    d.res.Points(obj, "Width"),
		rotation: d.res.Float(obj, "Rotation"),
	}
	g.height, g.dynamic = d.res.Dimension(obj, "Height")
	g.dynamic = !g.dynamic

	var err error
	if g.hAnchor, err = common.ParseHAnchor(d.res.String(obj, "hAnchor")); err != nil {
		d.log.Debug("Bad anchor, using left", zap.Stringer("object", obj.Kind), zap.Error(err))
	}
	if g.vAnchor, err = common.ParseVAnchor(d.res.String(obj, "vAnchor")); err != nil {
		d.log.Debug("Bad anchor, using bottom", zap.Stringer("object", obj.Kind), zap.Error(err))
	}
	return g
}

// Draw renders obj with its anchor point at (x, y). Growable content is
// limited by available height, cont resumes content left over from previous
// page. Returned cursor is not nil when some content did not fit, consumed is
// the height actually printed. Surface state is restored before returning.
func (d *drawer) Draw(obj *report.Object, x, y, available float64, cont *story.Cursor) (next *story.Cursor, consumed float64) {
	d.s.Save()
	defer d.s.Restore()

	g := d.geometry(obj)
	x += g.hAnchor.Offset(g.width)

	switch obj.Kind {
	case report.ObjectKindFrameset, report.ObjectKindParagraph:
		return d.frame(obj, g, x, y, available, cont)
	}

	y += g.vAnchor.Offset(g.height)
	switch obj.Kind {
	case report.ObjectKindRectangle:
		d.rect(obj, g, x, y)
	case report.ObjectKindLine:
		d.line(obj, g, x, y)
	case report.ObjectKindString:
		d.text(obj, g, x, y)
	case report.ObjectKindImage:
		d.image(obj, g, x, y)
	case report.ObjectKindBarGraph:
		d.barGraph(obj, g, x, y)
	case report.ObjectKindSpanningLine:
		// spans are collected by the band and drawn with drawSpan
	}
	return nil, g.height
}

// setFont selects font falling back to Helvetica for fonts surface does not
// know.
func (d *drawer) setFont(name string, size float64) string {
	if err := d.s.SetFont(name, size); err != nil {
		d.log.Warn("Font not available, using Helvetica", zap.String("font", name), zap.Error(err))
		_ = d.s.SetFont("Helvetica", size)
		return "Helvetica"
	}
	return name
}

// stroke returns line style of the object, nil when stroke color is None.
func (d *drawer) stroke(obj *report.Object) *surface.Stroke {
	c, ok := d.res.Color(obj, "StrokeColor")
	if !ok {
		return nil
	}
	return &surface.Stroke{
		Width: d.res.Points(obj, "StrokeWidth"),
		Color: c,
		Dash:  d.res.Floats(obj, "StrokeDashArray"),
	}
}

// border returns border style for objects with BorderWidth, nil when there
// is no border.
func (d *drawer) border(obj *report.Object) *surface.Stroke {
	w := d.res.Points(obj, "BorderWidth")
	if w <= 0 {
		return nil
	}
	c, ok := d.res.Color(obj, "BorderColor")
	if !ok {
		return nil
	}
	return &surface.Stroke{Width: w, Color: c}
}
