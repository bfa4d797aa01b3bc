package widgets

import "github.com/odvcencio/furry-menu/runtime"

// Column stacks children top to bottom, one measured height each.
// Keyboard and other untargeted messages are offered to children in order.
type Column struct {
	Base
	children []runtime.Widget
	gap      int
}

// NewColumn creates a column of children.
func NewColumn(children ...runtime.Widget) *Column {
	return &Column{children: children}
}

// SetGap sets the number of blank rows between children.
func (c *Column) SetGap(gap int) {
	if gap < 0 {
		gap = 0
	}
	c.gap = gap
}

// ChildWidgets returns the column's children.
func (c *Column) ChildWidgets() []runtime.Widget {
	return c.children
}

// Measure sums child heights.
func (c *Column) Measure(constraints runtime.Constraints) runtime.Size {
	var size runtime.Size
	for i, child := range c.children {
		s := child.Measure(runtime.Constraints{MaxWidth: constraints.MaxWidth, MaxHeight: constraints.MaxHeight})
		size.Width = max(size.Width, s.Width)
		size.Height += s.Height
		if i > 0 {
			size.Height += c.gap
		}
	}
	return constraints.Constrain(size)
}

// Layout assigns each child a full-width row band.
func (c *Column) Layout(bounds runtime.Rect) {
	c.Base.Layout(bounds)
	y := bounds.Y
	bottom := bounds.Y + bounds.Height
	for _, child := range c.children {
		remaining := max(0, bottom-y)
		s := child.Measure(runtime.Constraints{MaxWidth: bounds.Width, MaxHeight: remaining})
		h := min(s.Height, remaining)
		child.Layout(runtime.Rect{X: bounds.X, Y: y, Width: bounds.Width, Height: h})
		y += h + c.gap
	}
}

// Render draws each child.
func (c *Column) Render(ctx runtime.RenderContext) {
	for _, child := range c.children {
		if bp, ok := child.(runtime.BoundsProvider); ok {
			child.Render(ctx.Sub(bp.Bounds()))
			continue
		}
		child.Render(ctx)
	}
}

// HandleMessage offers untargeted messages to children. Pointer messages
// already reach children through the screen.
func (c *Column) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch msg.(type) {
	case runtime.MouseMsg, runtime.TouchMsg:
		return runtime.Unhandled()
	}
	for _, child := range c.children {
		if result := child.HandleMessage(msg); result.Handled {
			return result
		}
	}
	return runtime.Unhandled()
}
