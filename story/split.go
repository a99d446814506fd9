package story

import "rpw/surface"

const epsilon = 1e-9

// Split places chunks greedily into frame columns no taller than height,
// vertical padding included. Chunks that do not fit are returned as rest,
// splittable chunks are broken between lines. Concatenated placed columns of
// successive splits reproduce the original sequence. Used is the height of
// the tallest placed column including padding.
func Split(chunks []Chunk, frame Frame, height float64) (cols [][]Chunk, rest []Chunk, used float64) {
	capacity := height - frame.padding()
	pending := append([]Chunk(nil), chunks...)

	for col := 0; col < max(frame.Columns, 1) && len(pending) > 0; col++ {
		var (
			placed []Chunk
			total  float64
		)
		for len(pending) > 0 {
			c := pending[0]
			if total+c.Height() <= capacity+epsilon {
				placed = append(placed, c)
				total += c.Height()
				pending = pending[1:]
				continue
			}
			if sp, ok := c.(Splitter); ok {
				if head, tail, ok := sp.Split(capacity - total); ok {
					placed = append(placed, head)
					total += head.Height()
					if tail == nil {
						pending = pending[1:]
					} else {
						pending[0] = tail
					}
				}
			}
			break
		}
		cols = append(cols, placed)
		used = max(used, total)
	}
	return cols, pending, used + frame.padding()
}

// Draw renders placed columns with top left corner of the frame at
// (x, yTop). First font error is returned after everything is drawn.
func Draw(s surface.Surface, cols [][]Chunk, frame Frame, x, yTop float64) error {
	var first error
	for i, col := range cols {
		cx := x + float64(i)*frame.ColumnWidth() + frame.PadLeft
		y := yTop - frame.PadTop
		for _, c := range col {
			if err := c.Draw(s, cx, y); err != nil && first == nil {
				first = err
			}
			y -= c.Height()
		}
	}
	return first
}

// Cursor is a resumable position inside a story. Every Split consumes
// content which fit, the rest stays for the next container.
type Cursor struct {
	Frame  Frame
	Chunks []Chunk
}

// NewCursor positions cursor at the start of the story.
func NewCursor(st *Story) *Cursor {
	return &Cursor{Frame: st.Frame, Chunks: st.Chunks}
}

// Done reports whether anything printable is left. Trailing flush chunks do
// not count, they only reserve space after content.
func (c *Cursor) Done() bool {
	for _, ch := range c.Chunks {
		if _, ok := ch.(*Flush); !ok {
			return false
		}
	}
	return true
}

// Height of the remaining content including vertical padding.
func (c *Cursor) Height() float64 {
	h := c.Frame.padding()
	for _, ch := range c.Chunks {
		h += ch.Height()
	}
	return h
}

// Split places as much of the remaining content as fits into height and
// advances the cursor past it.
func (c *Cursor) Split(height float64) (cols [][]Chunk, used float64) {
	cols, c.Chunks, used = Split(c.Chunks, c.Frame, height)
	if c.Done() {
		c.Chunks = nil
	}
	return cols, used
}
