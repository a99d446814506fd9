package engine

import (
	"go.uber.org/zap"

	"rpw/common"
	"rpw/report"
	"rpw/surface"
)

// imageMarker replaces images which could not be loaded or drawn.
const imageMarker = "<< Image expr error >>"

func (d *drawer) image(obj *report.Object, g geometry, x, y float64) {
	d.s.Translate(x, y)
	d.s.Rotate(g.rotation)

	if st := d.border(obj); st != nil {
		d.s.Rect(-1, -1, g.width+2, g.height+2, st, nil)
	}
	d.s.ClipRect(-1, -1, g.width+2, g.height+2)

	mode, err := common.ParseScaleMode(d.res.String(obj, "ScaleMode"))
	if err != nil {
		d.log.Debug("Bad scale mode, scaling image", zap.Error(err))
	}

	img, err := d.images.Load(d.res.Value(obj, "expr"))
	if err != nil {
		d.imageFailed(g, err)
		return
	}

	var ox, oy float64
	w, h := g.width, g.height
	switch mode {
	case common.ScaleModeClip:
		// natural size, one pixel per point, anything outside is clipped
		w, h = float64(img.Dim.Width), float64(img.Dim.Height)
	case common.ScaleModeProportional:
		if img.Dim.Width > 0 && img.Dim.Height > 0 {
			k := min(g.width/float64(img.Dim.Width), g.height/float64(img.Dim.Height))
			w, h = float64(img.Dim.Width)*k, float64(img.Dim.Height)*k
			ox, oy = (g.width-w)/2, (g.height-h)/2
		}
	}
	if err := d.s.Image(img, ox, oy, w, h); err != nil {
		d.imageFailed(g, err)
	}
}

func (d *drawer) imageFailed(g geometry, err error) {
	d.log.Warn("Unable to draw image", zap.Error(err))
	const size = 10
	_ = d.s.SetFont("Helvetica", size)
	tw := d.s.StringWidth(imageMarker, "Helvetica", size)
	d.s.Text((g.width-tw)/2, (g.height-size)/2, imageMarker, surface.Black)
}
