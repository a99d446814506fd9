package engine

import (
	"go.uber.org/zap"

	"rpw/report"
	"rpw/story"
	"rpw/surface"
)

// frame draws Frameset or standalone Paragraph. Content of frames with
// dynamic height hangs down from y and is split when taller than available,
// fixed frames are anchored as any other object and drop what does not fit.
func (d *drawer) frame(obj *report.Object, g geometry, x, y, available float64, cont *story.Cursor) (*story.Cursor, float64) {
	cur := cont
	if cur == nil {
		cur = story.NewCursor(d.story(obj))
	}
	frame := cur.Frame

	var (
		cols   [][]story.Chunk
		height float64
		bottom float64
	)
	switch {
	case !g.dynamic:
		cols, _ = cur.Split(g.height)
		if !cur.Done() {
			d.log.Debug("Content does not fit into fixed frame", zap.Int("dropped", len(cur.Chunks)))
		}
		cur, height = nil, g.height
		bottom = y + g.vAnchor.Offset(height)
	case cur.Height() > available:
		cols, height = cur.Split(available)
		bottom = y - height
	default:
		cols, height = cur.Split(cur.Height())
		bottom = y - height
	}

	d.s.Translate(x, bottom)
	d.s.Rotate(g.rotation)

	if obj.Kind == report.ObjectKindFrameset {
		var fill *surface.Color
		if c, ok := d.res.Color(obj, "FillColor"); ok {
			fill = &c
		}
		if st := d.border(obj); st != nil || fill != nil {
			d.s.Rect(0, 0, g.width, height, st, fill)
		}
	}
	if err := story.Draw(d.s, cols, frame, 0, height); err != nil {
		d.log.Warn("Font not available, using Helvetica", zap.Error(err))
	}

	if cur == nil || cur.Done() {
		return nil, height
	}
	return cur, height
}
