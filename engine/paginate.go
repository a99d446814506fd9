package engine

import (
	"fmt"

	"go.uber.org/zap"

	"rpw/report"
	"rpw/story"
	"rpw/surface"
)

// deferred is growable content which continues in the next column or page.
type deferred struct {
	obj *report.Object
	dx  float64
	cur *story.Cursor
}

func (w *writer) top() float64 {
	return w.page.Height - w.mt - w.headerHeight
}

func (w *writer) floor() float64 {
	return w.mb + w.footHeight
}

func (w *writer) columnWidth() float64 {
	return (w.page.Width - w.ml - w.mr) / float64(w.columns)
}

func (w *writer) columnX() float64 {
	return w.ml + float64(w.column)*w.columnWidth()
}

// atTop reports whether nothing was printed in the current column yet.
func (w *writer) atTop() bool {
	return w.y >= w.top()-epsilon
}

func (w *writer) beginPage() error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	w.env.PageNumber++
	w.column = 0
	if err := w.s.BeginPage(w.page.Width, w.page.Height); err != nil {
		return fmt.Errorf("unable to begin page %d: %w", w.env.PageNumber, err)
	}
	w.env.Bands = make(map[string]map[string]any)

	w.headerHeight, w.footHeight = 0, 0
	if b := w.rpt.Band(report.BandKindPageHeader); b != nil && !w.res.ExplicitlyFalse(b, "Show") {
		w.headerHeight = BandHeight(w.res, b)
	}
	if b := w.rpt.Band(report.BandKindPageFooter); b != nil && !w.res.ExplicitlyFalse(b, "Show") {
		w.footHeight = BandHeight(w.res, b)
	}

	w.printStatic(report.BandKindPageBackground, 0, 0, w.page.Width)
	w.printStatic(report.BandKindPageHeader, w.ml, w.page.Height-w.mt-w.headerHeight, w.page.Width-w.ml-w.mr)
	w.printStatic(report.BandKindPageFooter, w.ml, w.mb, w.page.Width-w.ml-w.mr)

	w.y = w.top()
	w.resumeSpans()
	w.log.Debug("Page started", zap.Int("page", w.env.PageNumber))
	return nil
}

func (w *writer) endPage() error {
	w.breakSpans()
	w.column = 0
	for _, sp := range w.spans.take(nil) {
		w.draw.drawSpan(sp, w.ml+w.res.Points(sp.obj, "xFooter"), w.mb+w.res.Points(sp.obj, "yFooter"))
	}
	w.printStatic(report.BandKindPageForeground, 0, 0, w.page.Width)
	if err := w.s.EndPage(); err != nil {
		return fmt.Errorf("unable to end page %d: %w", w.env.PageNumber, err)
	}
	return nil
}

// breakSpans draws open group spans down to the floor of the current column,
// they continue from the top of the next column or page.
func (w *writer) breakSpans() {
	x := w.columnX()
	w.spans.groups(func(sp *span) {
		if sp.carried {
			return
		}
		w.draw.drawSpan(*sp, x+w.res.Points(sp.obj, "xFooter"), w.floor())
		sp.carried = true
	})
}

func (w *writer) resumeSpans() {
	x, y := w.columnX(), w.top()
	w.spans.groups(func(sp *span) {
		if sp.carried {
			sp.x, sp.y, sp.carried = x+sp.dx, y, false
		}
	})
}

// advance moves to the next column, or to the next page after the last one.
func (w *writer) advance() error {
	if w.column < w.columns-1 {
		w.breakSpans()
		w.column++
		w.y = w.top()
		w.resumeSpans()
		return nil
	}
	return w.newPage()
}

// snapshot makes band geometry visible to expressions.
func (w *writer) snapshot(kind report.BandKind, x, y, width, height, total float64) {
	w.env.Bands[kind.String()] = map[string]any{
		"x":           x,
		"y":           y,
		"Width":       width,
		"Height":      height,
		"TotalHeight": total,
	}
}

func (w *writer) outline(kind report.BandKind, x, y, width, height float64) {
	if !w.opts.ShowBandOutlines {
		return
	}
	w.s.Save()
	defer w.s.Restore()
	w.s.Rect(x, y, width, height, &surface.Stroke{
		Width: 0.75,
		Color: surface.Color{R: 0.8, G: 0.5, B: 0.7},
		Dash:  []float64{1, 2},
	}, nil)
	_ = w.s.SetFont("Helvetica", 8)
	w.s.Text(x, y, fmt.Sprintf("%s (record %d)", kind, w.env.RecordNumber), surface.Color{R: 0.6, G: 0.8, B: 0.7})
}

// printStatic prints page level band at fixed position. Static bands never
// grow, content which does not fit is dropped.
func (w *writer) printStatic(kind report.BandKind, x, y, width float64) {
	band := w.rpt.Band(kind)
	if band == nil || w.res.ExplicitlyFalse(band, "Show") {
		return
	}
	w.draw.reset()
	height := BandHeight(w.res, band)
	w.snapshot(kind, x, y, width, height, height)
	switch kind {
	case report.BandKindPageBackground, report.BandKindPageForeground:
		w.outline(kind, x, y, w.page.Width, w.page.Height)
	default:
		w.outline(kind, x, y, width, height)
	}
	w.drawObjects(band, nil, x, y, height, true)
}

// printBand prints flowing band at the current position moving to the next
// column or page when it does not fit.
func (w *writer) printBand(band *report.Band, kind report.BandKind, g *report.Group) error {
	if band == nil || w.res.ExplicitlyFalse(band, "Show") {
		return nil
	}
	w.draw.reset()

	height := BandHeight(w.res, band)
	fixed := !Dynamic(w.res, band)
	var extra float64
	if kind == report.BandKindGroupHeader {
		if detail := w.rpt.Band(report.BandKindDetail); detail != nil {
			extra = BandHeight(w.res, detail)
		}
	}

	total := Extent(w.res, band, height, w.draw.story)
	if !w.atTop() && (w.y-height < w.floor()+extra-epsilon || w.y-total < w.floor()-epsilon) {
		if err := w.advance(); err != nil {
			return err
		}
		if kind == report.BandKindDetail {
			if err := w.reprintHeaders(); err != nil {
				return err
			}
		}
	}
	if w.y-height < w.floor()-epsilon {
		return &LayoutError{Band: kind.String(), Need: height, Available: w.y - w.floor()}
	}

	x, width := w.columnX(), w.columnWidth()
	top, bottom := w.y, w.y-height
	w.snapshot(kind, x, bottom, width, height, total)
	w.outline(kind, x, bottom, width, height)

	pending, lowest := w.drawObjects(band, g, x, bottom, height, fixed)
	w.y = min(bottom, lowest)
	w.env.Bands[kind.String()]["TotalHeight"] = top - w.y

	if kind == report.BandKindGroupFooter {
		for _, sp := range w.spans.take(g) {
			w.draw.drawSpan(sp, x+w.res.Points(sp.obj, "xFooter"), bottom+w.res.Points(sp.obj, "yFooter"))
		}
	}
	return w.drain(kind, pending)
}

// reprintHeaders repeats headers of groups which ask for it after a page or
// column break.
func (w *writer) reprintHeaders() error {
	for i, g := range w.rpt.Groups {
		if w.tracker.Pending(i) || !w.res.Bool(g, "ReprintHeaderOnNewPage") {
			continue
		}
		if err := w.printBand(g.Header, report.BandKindGroupHeader, g); err != nil {
			return err
		}
	}
	return nil
}

// drawObjects draws band objects with band bottom at y and returns growable
// content which did not fit together with the lowest point content reached.
func (w *writer) drawObjects(band *report.Band, g *report.Group, x, y, height float64, fixed bool) ([]deferred, float64) {
	var pending []deferred
	lowest := y
	for _, obj := range band.Objects {
		if w.res.ExplicitlyFalse(obj, "Show") {
			continue
		}
		dx, dy := w.res.Points(obj, "x"), w.res.Points(obj, "y")
		ox, oy := x+dx, y+dy

		if obj.Kind == report.ObjectKindSpanningLine {
			w.spans.store(obj, g, dx, ox, oy)
			continue
		}
		if !growable(w.res, obj) {
			w.draw.Draw(obj, ox, oy, 0, nil)
			continue
		}

		// content of fixed bands may not cross band bottom
		available := oy - w.floor()
		if fixed {
			available = dy
		}
		next, used := w.draw.Draw(obj, ox, oy, available, nil)
		lowest = min(lowest, oy-used)
		if next == nil {
			continue
		}
		if fixed {
			w.log.Debug("Band height is fixed, content dropped", zap.Stringer("band", band.Kind), zap.Stringer("object", obj.Kind))
			continue
		}
		pending = append(pending, deferred{obj: obj, dx: dx, cur: next})
	}
	return pending, lowest
}

// drain prints deferred content in following columns and pages until all
// of it is placed. Every round has to place something, otherwise content
// would never fit.
func (w *writer) drain(kind report.BandKind, pending []deferred) error {
	for len(pending) > 0 {
		if err := w.advance(); err != nil {
			return err
		}
		if kind == report.BandKindDetail {
			if err := w.reprintHeaders(); err != nil {
				return err
			}
		}
		top, x := w.y, w.columnX()
		available := top - w.floor()
		lowest := top

		kept := pending[:0]
		for _, it := range pending {
			before := it.cur.Height()
			next, used := w.draw.Draw(it.obj, x+it.dx, top, available, it.cur)
			lowest = min(lowest, top-used)
			if next == nil {
				continue
			}
			if next.Height() >= before-epsilon {
				return &LayoutError{Band: kind.String(), Need: before, Available: available}
			}
			kept = append(kept, deferred{obj: it.obj, dx: it.dx, cur: next})
		}
		pending = kept
		w.y = lowest
		w.snapshot(kind, x, lowest, w.columnWidth(), 0, top-lowest)
	}
	return nil
}
