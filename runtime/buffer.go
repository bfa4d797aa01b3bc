package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-menu/backend"
)

// Cell is a single character cell in the buffer.
type Cell = backend.Cell

// Buffer is the frame widgets render into.
//
// Dirty cells are found by comparing against the last flushed frame, so a
// widget can clear and redraw freely without causing spurious writes.
type Buffer struct {
	cells   []Cell
	flushed []Cell
	width   int
	height  int
	forced  bool
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the dimensions and forces a full flush.
func (b *Buffer) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.width, b.height = w, h
	b.cells = make([]Cell, w*h)
	b.flushed = make([]Cell, w*h)
	b.Clear()
	b.forced = true
}

// Clear fills the buffer with blanks in the default style.
func (b *Buffer) Clear() {
	blank := Cell{Rune: ' ', Style: backend.DefaultStyle()}
	for i := range b.cells {
		b.cells[i] = blank
	}
}

// Get returns the cell at (x, y), or a blank when out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes one cell. Out-of-bounds writes are dropped.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: s}
}

// SetString writes s starting at (x, y) and returns the cells consumed.
// Wide runes take two cells.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	px := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.Set(px, y, r, style)
		if w == 2 {
			b.Set(px+1, y, ' ', style)
		}
		px += w
	}
	return px - x
}

// Fill fills r with ch.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	x0 := max(0, r.X)
	y0 := max(0, r.Y)
	x1 := min(b.width, r.X+r.Width)
	y1 := min(b.height, r.Y+r.Height)
	cell := Cell{Rune: ch, Style: s}
	for y := y0; y < y1; y++ {
		row := y * b.width
		for x := x0; x < x1; x++ {
			b.cells[row+x] = cell
		}
	}
}

// DrawBox draws a single-line border around r.
func (b *Buffer) DrawBox(r Rect, s backend.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right := r.X + r.Width - 1
	bottom := r.Y + r.Height - 1
	b.Set(r.X, r.Y, '┌', s)
	b.Set(right, r.Y, '┐', s)
	b.Set(r.X, bottom, '└', s)
	b.Set(right, bottom, '┘', s)
	for x := r.X + 1; x < right; x++ {
		b.Set(x, r.Y, '─', s)
		b.Set(x, bottom, '─', s)
	}
	for y := r.Y + 1; y < bottom; y++ {
		b.Set(r.X, y, '│', s)
		b.Set(right, y, '│', s)
	}
}

// MarkAllDirty forces the next flush to write every cell.
func (b *Buffer) MarkAllDirty() {
	b.forced = true
}

// IsDirty reports whether any cell differs from the last flush.
func (b *Buffer) IsDirty() bool {
	return b.DirtyCount() > 0
}

// DirtyCount returns the number of cells that differ from the last flush.
func (b *Buffer) DirtyCount() int {
	if b.forced {
		return len(b.cells)
	}
	count := 0
	for i := range b.cells {
		if b.cells[i] != b.flushed[i] {
			count++
		}
	}
	return count
}

// ForEachDirtyCell calls fn for every cell that changed since the last flush.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	for i, cell := range b.cells {
		if !b.forced && cell == b.flushed[i] {
			continue
		}
		fn(i%b.width, i/b.width, cell)
	}
}

// ClearDirty records the current frame as flushed.
func (b *Buffer) ClearDirty() {
	copy(b.flushed, b.cells)
	b.forced = false
}

// Text returns the buffer runes, one line per row.
func (b *Buffer) Text() string {
	out := make([]rune, 0, (b.width+1)*b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			r := b.cells[y*b.width+x].Rune
			if r == 0 {
				r = ' '
			}
			out = append(out, r)
		}
		if y < b.height-1 {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// Cells returns the backing cell slice in row-major order.
func (b *Buffer) Cells() []Cell {
	return b.cells
}
