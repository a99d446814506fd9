package engine

import (
	"go.uber.org/zap"

	"rpw/common"
	"rpw/report"
)

// baseline clipping is open downwards so descenders are never cut, only
// horizontal overflow is clipped.
const descent = 5000

func (d *drawer) text(obj *report.Object, g geometry, x, y float64) {
	scale := d.res.Floats(obj, "ScalePercent")
	sx, sy := 1.0, 1.0
	if len(scale) > 0 {
		sx, sy = scale[0]/100, scale[0]/100
	}
	if len(scale) > 1 {
		sy = scale[1] / 100
	}

	d.s.Translate(x, y)
	d.s.Rotate(g.rotation)
	d.s.Scale(sx, sy)

	if st := d.border(obj); st != nil {
		d.s.Rect(0, 0, g.width, g.height, st, nil)
	}
	d.s.ClipRect(0, -descent, g.width, g.height+descent)

	size := d.res.Float(obj, "FontSize")
	font := d.setFont(d.res.String(obj, "FontName"), size)
	color, _ := d.res.Color(obj, "FontColor")

	s := d.res.Text(obj, "expr")
	align, err := common.ParseTextAlign(d.res.String(obj, "Align"))
	if err != nil {
		d.log.Debug("Bad alignment, using left", zap.Error(err))
	}

	var pos float64
	switch align {
	case common.TextAlignCenter:
		pos = (g.width - d.s.StringWidth(s, font, size)) / 2
	case common.TextAlignRight:
		pos = g.width - d.s.StringWidth(s, font, size)
	}
	d.s.Text(pos, 0, s, color)
}
