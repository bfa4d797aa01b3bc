package runtime

// Rect is a cell rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Size is a width and height in cells.
type Size struct {
	Width, Height int
}

// Constraints bound the size a widget may measure to.
type Constraints struct {
	MinWidth, MinHeight int
	MaxWidth, MaxHeight int
}

const unbounded = 1 << 30

// Unbounded returns constraints with no upper limit.
func Unbounded() Constraints {
	return Constraints{MaxWidth: unbounded, MaxHeight: unbounded}
}

// Tight returns constraints that only admit size.
func Tight(size Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MinHeight: size.Height,
		MaxWidth:  size.Width,
		MaxHeight: size.Height,
	}
}

// Constrain clamps size into the constraints.
func (c Constraints) Constrain(size Size) Size {
	return Size{
		Width:  clamp(size.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(size.Height, c.MinHeight, c.MaxHeight),
	}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Widget is a node in the UI tree.
type Widget interface {
	Measure(constraints Constraints) Size
	Layout(bounds Rect)
	Render(ctx RenderContext)
	HandleMessage(msg Message) HandleResult
}

// HandleResult reports whether a widget consumed a message.
// A handled message stops propagating and suppresses its default action.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled returns a consumed result.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled returns a result that lets the message keep propagating.
func Unhandled() HandleResult {
	return HandleResult{}
}

// WithCommand returns a consumed result carrying cmd.
func WithCommand(cmd Command) HandleResult {
	return HandleResult{Handled: true, Commands: []Command{cmd}}
}

// ChildProvider exposes a widget's children.
type ChildProvider interface {
	ChildWidgets() []Widget
}

// BoundsProvider exposes a widget's laid-out bounds.
type BoundsProvider interface {
	Bounds() Rect
}

// HitTester lets a widget decline hits inside its bounds.
type HitTester interface {
	HitTest(x, y int) bool
}

// Contains reports whether w is root or one of its descendants.
func Contains(root, w Widget) bool {
	if root == nil || w == nil {
		return false
	}
	if root == w {
		return true
	}
	children, ok := root.(ChildProvider)
	if !ok {
		return false
	}
	for _, child := range children.ChildWidgets() {
		if Contains(child, w) {
			return true
		}
	}
	return false
}
