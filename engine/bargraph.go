package engine

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rpw/props"
	"rpw/report"
	"rpw/surface"
)

// labelSizes maps named sizes to points, medium being 10pt.
var labelSizes = map[string]float64{
	"xx-small": 5.79,
	"x-small":  6.94,
	"small":    8.33,
	"medium":   10,
	"large":    12,
	"x-large":  14.4,
	"xx-large": 17.28,
}

const (
	graphFont    = "Helvetica"
	graphPadding = 4.0
	graphTicks   = 5
)

// chart keeps computed layout of a bar graph. Category axis runs along x
// for horizontal graphs and along y for vertical ones.
type chart struct {
	vertical bool
	left     float64
	bottom   float64
	catLen   float64
	valLen   float64
	lo, hi   float64
	step     float64
	log      bool
}

// point maps position along category axis and value axis to graph
// coordinates.
func (c *chart) point(cat, val float64) (float64, float64) {
	if c.vertical {
		return c.left + val, c.bottom + cat
	}
	return c.left + cat, c.bottom + val
}

func (c *chart) scale(v float64) float64 {
	if c.log {
		v = math.Log10(v)
	}
	return (v - c.lo) / (c.hi - c.lo) * c.valLen
}

func (c *chart) ticks() []float64 {
	var out []float64
	for v := c.lo; v <= c.hi+c.step/2; v += c.step {
		t := math.Round(v/c.step) * c.step
		if c.log {
			t = math.Pow(10, t)
		}
		out = append(out, t)
	}
	return out
}

func (c *chart) label(v float64) string {
	if c.log {
		return props.Stringify(v)
	}
	decimals := max(0, int(-math.Floor(math.Log10(c.step))))
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// niceRange widens [lo, hi] to round tick boundaries.
func niceRange(lo, hi float64, n int) (float64, float64, float64) {
	if hi <= lo {
		hi = lo + 1
	}
	raw := (hi - lo) / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	var step float64
	switch r := raw / mag; {
	case r <= 1:
		step = mag
	case r <= 2:
		step = 2 * mag
	case r <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}
	return math.Floor(lo/step) * step, math.Ceil(hi/step) * step, step
}

func (d *drawer) labelSize(obj *report.Object) float64 {
	v := d.res.Value(obj, "LabelTextSize")
	if s, ok := v.(string); ok {
		if size, ok := labelSizes[strings.ToLower(strings.TrimSpace(s))]; ok {
			return size
		}
	}
	if size := d.res.Float(obj, "LabelTextSize"); size > 0 {
		return size
	}
	return labelSizes["x-small"]
}

func (d *drawer) barGraph(obj *report.Object, g geometry, x, y float64) {
	d.s.Translate(x, y)
	d.s.Rotate(g.rotation)

	w, h := g.width, g.height
	var bg *surface.Color
	if c, ok := d.res.Color(obj, "BackgroundColor"); ok {
		bg = &c
	}
	d.s.Rect(0, 0, w, h, d.border(obj), bg)
	d.s.ClipRect(-1, -1, w+2, h+2)

	data := d.res.Floats(obj, "expr")
	if len(data) == 0 {
		d.log.Debug("Bar graph without data")
		return
	}
	labels := d.res.Strings(obj, "Labels")
	errs := d.res.Floats(obj, "Error")
	errAt := func(i int) float64 {
		if i < len(errs) {
			return math.Abs(errs[i])
		}
		return 0
	}

	c := &chart{
		vertical: strings.EqualFold(d.res.String(obj, "Orientation"), "vertical"),
		log:      d.res.Bool(obj, "Log"),
	}
	if c.log {
		for _, v := range data {
			if v <= 0 {
				d.log.Debug("Logarithmic scale needs positive data, using linear", zap.Float64("value", v))
				c.log = false
				break
			}
		}
	}
	if c.log {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i, v := range data {
			lo = min(lo, v-errAt(i))
			hi = max(hi, v+errAt(i))
		}
		if lo <= 0 {
			lo = minimum(data)
		}
		c.lo, c.hi, c.step = math.Floor(math.Log10(lo)), math.Ceil(math.Log10(hi)), 1
		if c.hi == c.lo {
			c.hi++
		}
	} else {
		var lo, hi float64
		for i, v := range data {
			lo = min(lo, v-errAt(i))
			hi = max(hi, v+errAt(i))
		}
		c.lo, c.hi, c.step = niceRange(lo, hi, graphTicks)
	}

	size := d.labelSize(obj)
	ticks := c.ticks()
	var valueLabelWidth, catLabelWidth float64
	for _, t := range ticks {
		valueLabelWidth = max(valueLabelWidth, d.s.StringWidth(c.label(t), graphFont, size))
	}
	for _, l := range labels {
		catLabelWidth = max(catLabelWidth, d.s.StringWidth(l, graphFont, size))
	}

	title := d.res.String(obj, "Title")
	xlabel := d.res.String(obj, "XLabel")
	ylabel := d.res.String(obj, "YLabel")
	titleSize := size * 1.4

	top := h - graphPadding
	if title != "" {
		top -= titleSize * 1.5
	}
	c.bottom = graphPadding + size*1.5
	if xlabel != "" {
		c.bottom += size * 1.5
	}
	c.left = graphPadding + 4
	if c.vertical {
		c.left += catLabelWidth
	} else {
		c.left += valueLabelWidth
	}
	if ylabel != "" {
		c.left += size * 1.5
	}
	right := w - graphPadding - valueLabelWidth/2

	pw, ph := right-c.left, top-c.bottom
	if pw <= 0 || ph <= 0 {
		d.log.Debug("Bar graph too small to draw", zap.Float64("width", w), zap.Float64("height", h))
		return
	}
	c.catLen, c.valLen = pw, ph
	if c.vertical {
		c.catLen, c.valLen = ph, pw
	}

	slot := c.catLen / float64(len(data))
	grid := surface.Stroke{Width: 0.25, Color: surface.Color{R: 0.75, G: 0.75, B: 0.75}, Dash: []float64{1, 2}}
	if d.res.Bool(obj, "XGrid") {
		for i := range data {
			cat := slot * (float64(i) + 0.5)
			x1, y1 := c.point(cat, 0)
			x2, y2 := c.point(cat, c.valLen)
			d.s.Line(x1, y1, x2, y2, grid)
		}
	}
	if d.res.Bool(obj, "YGrid") {
		for _, t := range ticks {
			v := c.scale(t)
			x1, y1 := c.point(0, v)
			x2, y2 := c.point(c.catLen, v)
			d.s.Line(x1, y1, x2, y2, grid)
		}
	}

	barColor, _ := d.res.Color(obj, "BarColor")
	var barStroke *surface.Stroke
	if bw := d.res.Points(obj, "BarBorder"); bw > 0 {
		bc, _ := d.res.Color(obj, "BarBorderColor")
		barStroke = &surface.Stroke{Width: bw, Color: bc}
	}
	errColor, _ := d.res.Color(obj, "ErrorBarColor")
	errStroke := surface.Stroke{Width: 0.5, Color: errColor}
	capSize := d.res.Points(obj, "CapSize")

	base := 0.0
	if c.log {
		base = math.Pow(10, c.lo)
	}
	for i, v := range data {
		from, to := c.scale(base), c.scale(v)
		if from > to {
			from, to = to, from
		}
		cat := slot * (float64(i) + 0.25)
		bx, by := c.point(cat, from)
		bw, bh := slot*0.5, to-from
		if c.vertical {
			bw, bh = bh, bw
		}
		d.s.Rect(bx, by, bw, bh, barStroke, &barColor)

		if e := errAt(i); e > 0 {
			mid := slot * (float64(i) + 0.5)
			vlo, vhi := c.scale(max(v-e, base)), c.scale(v+e)
			x1, y1 := c.point(mid, vlo)
			x2, y2 := c.point(mid, vhi)
			d.s.Line(x1, y1, x2, y2, errStroke)
			for _, cv := range []float64{vlo, vhi} {
				x1, y1 := c.point(mid-capSize, cv)
				x2, y2 := c.point(mid+capSize, cv)
				d.s.Line(x1, y1, x2, y2, errStroke)
			}
		}
	}

	axis := surface.Stroke{Width: 0.75}
	x1, y1 := c.point(0, 0)
	d.s.Line(x1, y1, x1+pw, y1, axis)
	d.s.Line(x1, y1, x1, y1+ph, axis)

	d.setFont(graphFont, size)
	for i := range data {
		if i >= len(labels) {
			break
		}
		lx, ly := c.point(slot*(float64(i)+0.5), 0)
		lw := d.s.StringWidth(labels[i], graphFont, size)
		if c.vertical {
			d.s.Text(lx-lw-3, ly-size/3, labels[i], surface.Black)
		} else {
			d.s.Text(lx-lw/2, ly-size-2, labels[i], surface.Black)
		}
	}
	for _, t := range ticks {
		s := c.label(t)
		lx, ly := c.point(0, c.scale(t))
		lw := d.s.StringWidth(s, graphFont, size)
		if c.vertical {
			d.s.Text(lx-lw/2, ly-size-2, s, surface.Black)
		} else {
			d.s.Text(lx-lw-3, ly-size/3, s, surface.Black)
		}
	}

	if xlabel != "" {
		lw := d.s.StringWidth(xlabel, graphFont, size)
		d.s.Text(c.left+(pw-lw)/2, graphPadding, xlabel, surface.Black)
	}
	if ylabel != "" {
		lw := d.s.StringWidth(ylabel, graphFont, size)
		d.s.Save()
		d.s.Translate(graphPadding+size, c.bottom+(ph-lw)/2)
		d.s.Rotate(90)
		d.s.Text(0, 0, ylabel, surface.Black)
		d.s.Restore()
	}
	if title != "" {
		d.setFont(graphFont, titleSize)
		lw := d.s.StringWidth(title, graphFont, titleSize)
		d.s.Text((w-lw)/2, h-graphPadding-titleSize, title, surface.Black)
	}
}

func minimum(data []float64) float64 {
	m := math.Inf(1)
	for _, v := range data {
		m = min(m, v)
	}
	return m
}
