package engine

import "rpw/report"

// pageKey owns spans started outside of group bands.
const pageKey = "\x00page"

type span struct {
	obj  *report.Object
	x, y float64
	// dx is offset of the start from the band, used when the span continues
	// in another column.
	dx      float64
	carried bool
}

// spans keeps SpanningLine objects waiting for their end point. Spans are
// keyed by expression of the owning group.
type spans struct {
	open map[string][]span
}

func newSpans() *spans {
	return &spans{open: make(map[string][]span)}
}

func spanKey(g *report.Group) string {
	if g == nil {
		return pageKey
	}
	return g.Expr()
}

// store remembers start of the span. Start is fixed at first encounter,
// reprinted bands do not move it.
func (s *spans) store(obj *report.Object, g *report.Group, dx, x, y float64) {
	key := spanKey(g)
	list := s.open[key]
	for _, sp := range list {
		if sp.obj == obj {
			return
		}
	}
	s.open[key] = append(list, span{obj: obj, x: x, y: y, dx: dx})
}

// take removes and returns spans of the group, nil group means page level
// spans.
func (s *spans) take(g *report.Group) []span {
	key := spanKey(g)
	list := s.open[key]
	delete(s.open, key)
	return list
}

// groups calls fn for every open span owned by a group.
func (s *spans) groups(fn func(sp *span)) {
	for key, list := range s.open {
		if key == pageKey {
			continue
		}
		for i := range list {
			fn(&list[i])
		}
	}
}

// pending returns number of spans not yet drawn.
func (s *spans) pending() int {
	n := 0
	for _, list := range s.open {
		n += len(list)
	}
	return n
}
