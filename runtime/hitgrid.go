package runtime

// HitGrid maps screen cells to the innermost widget drawn there.
type HitGrid struct {
	width, height int
	cells         []Widget
}

// NewHitGrid creates an empty grid.
func NewHitGrid(w, h int) *HitGrid {
	g := &HitGrid{}
	g.Resize(w, h)
	return g
}

// Resize changes the grid size and clears it.
func (g *HitGrid) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == g.width && h == g.height && g.cells != nil {
		g.Clear()
		return
	}
	g.width, g.height = w, h
	g.cells = make([]Widget, w*h)
}

// Clear removes every entry.
func (g *HitGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = nil
	}
}

// Add records w over bounds. Later additions win.
// Widgets implementing HitTester only claim the cells they accept.
func (g *HitGrid) Add(w Widget, bounds Rect) {
	if w == nil {
		return
	}
	tester, _ := w.(HitTester)
	x0 := max(0, bounds.X)
	y0 := max(0, bounds.Y)
	x1 := min(g.width, bounds.X+bounds.Width)
	y1 := min(g.height, bounds.Y+bounds.Height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if tester != nil && !tester.HitTest(x, y) {
				continue
			}
			g.cells[y*g.width+x] = w
		}
	}
}

// WidgetAt returns the widget at (x, y), or nil.
func (g *HitGrid) WidgetAt(x, y int) Widget {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil
	}
	return g.cells[y*g.width+x]
}
