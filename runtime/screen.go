package runtime

import (
	"github.com/odvcencio/furry-menu/backend"
)

// Layer represents a layer in the overlay stack.
type Layer struct {
	Root  Widget
	Modal bool // If true, blocks input to layers below
}

// Screen manages the widget tree, overlay stack, and rendering.
//
// Pointer messages are routed the way a document routes them: the screen
// resolves the innermost widget under the pointer, offers the message to
// overlays stacked above that widget's layer, and then bubbles it from the
// widget up through its ancestors until one handles it.
type Screen struct {
	width, height int
	layers        []*Layer
	buffer        *Buffer
	hitGrid       *HitGrid
	hitGridDirty  bool
	services      Services
	scroll        *scrollListeners

	hover Widget
	touch touchTrack
}

type touchTrack struct {
	active bool
	target Widget
	startX int
	startY int
	moved  bool
}

// NewScreen creates a new screen with the given dimensions.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:        w,
		height:       h,
		buffer:       NewBuffer(w, h),
		hitGrid:      NewHitGrid(w, h),
		hitGridDirty: true,
		scroll:       &scrollListeners{},
	}
}

// SetServices configures app services for bindable widgets.
func (s *Screen) SetServices(services Services) {
	s.services = services
}

// OnScroll registers fn to observe scrolls before they are dispatched.
func (s *Screen) OnScroll(fn func(ScrollNotice)) func() {
	return s.scroll.add(fn)
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the screen dimensions.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
	s.hitGrid.Resize(w, h)
	s.hitGridDirty = true

	bounds := Rect{0, 0, w, h}
	for _, layer := range s.layers {
		if layer.Root != nil {
			layer.Root.Layout(bounds)
		}
	}
}

// Buffer returns the screen's render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// SetRoot sets the root widget of the base layer.
// Creates the base layer if it doesn't exist.
func (s *Screen) SetRoot(root Widget) {
	var oldRoot Widget
	if len(s.layers) == 0 {
		s.layers = append(s.layers, &Layer{Root: root})
	} else {
		oldRoot = s.layers[0].Root
		s.layers[0].Root = root
	}

	if oldRoot != nil {
		s.detach(oldRoot)
	}
	s.hitGridDirty = true

	if root != nil {
		s.attach(root)
	}
}

// Root returns the base layer's root widget.
func (s *Screen) Root() Widget {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0].Root
}

// PushLayer adds a new layer on top of the stack.
// If modal is true, input won't pass to layers below.
func (s *Screen) PushLayer(root Widget, modal bool) {
	s.layers = append(s.layers, &Layer{Root: root, Modal: modal})
	s.hitGridDirty = true
	if root != nil {
		s.attach(root)
	}
}

// PopLayer removes the top layer from the stack.
// Returns false if only the base layer remains (can't pop it).
func (s *Screen) PopLayer() bool {
	if len(s.layers) <= 1 {
		return false
	}
	top := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]
	s.hitGridDirty = true
	if top.Root != nil {
		s.detach(top.Root)
	}
	return true
}

// TopLayer returns the topmost layer.
func (s *Screen) TopLayer() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// Layer returns layer i counted from the base, or nil.
func (s *Screen) Layer(i int) *Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// LayerCount returns the number of layers.
func (s *Screen) LayerCount() int {
	return len(s.layers)
}

func (s *Screen) attach(root Widget) {
	BindTree(root, s.services)
	root.Layout(Rect{0, 0, s.width, s.height})
	MountTree(root)
}

func (s *Screen) detach(root Widget) {
	UnmountTree(root)
	UnbindTree(root)
	if s.hover != nil && Contains(root, s.hover) {
		s.hover = nil
	}
	if s.touch.target != nil && Contains(root, s.touch.target) {
		s.touch = touchTrack{}
	}
}

// Render draws all layers to the buffer.
func (s *Screen) Render() {
	s.buffer.Clear()
	ctx := RenderContext{
		Buffer: s.buffer,
		Bounds: Rect{0, 0, s.width, s.height},
	}
	for i, layer := range s.layers {
		if layer.Root == nil {
			continue
		}
		ctx.Focused = i == len(s.layers)-1
		layer.Root.Render(ctx)
	}
	// Layout and visibility may have changed while rendering.
	s.hitGridDirty = true
	s.buildHitGrid()
}

// WidgetAt returns the innermost hit-testable widget at (x, y).
func (s *Screen) WidgetAt(x, y int) Widget {
	if s.hitGridDirty {
		s.buildHitGrid()
	}
	return s.hitGrid.WidgetAt(x, y)
}

// HandleMessage dispatches a message to the appropriate layer.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	switch m := msg.(type) {
	case MouseMsg:
		return s.handleMouse(m)
	case TouchMsg:
		return s.handleTouch(m)
	case ScrollMsg:
		s.scroll.notify(ScrollNotice{X: m.X, Y: m.Y, Origin: s.WidgetAt(m.X, m.Y)})
		return s.broadcast(msg)
	default:
		return s.broadcast(msg)
	}
}

func (s *Screen) handleMouse(m MouseMsg) HandleResult {
	if m.Target == nil {
		m.Target = s.WidgetAt(m.X, m.Y)
	}
	if s.hover != nil && s.hover != m.Target && m.Action != MouseOut {
		out := MouseMsg{
			X: m.X, Y: m.Y,
			Button: m.Button,
			Action: MouseOut,
			Alt:    m.Alt, Ctrl: m.Ctrl, Shift: m.Shift,
			Target: s.hover,
		}
		s.hover = nil
		s.dispatchTargeted(out, out.Target)
	}
	if m.Action != MouseOut {
		s.hover = m.Target
	}
	if m.Button.IsWheel() && m.Action == MousePress {
		s.scroll.notify(ScrollNotice{X: m.X, Y: m.Y, Origin: m.Target})
	}
	return s.dispatchTargeted(m, m.Target)
}

func (s *Screen) handleTouch(m TouchMsg) HandleResult {
	switch m.Action {
	case TouchStart:
		if len(m.Touches) == 0 {
			return Unhandled()
		}
		first := m.Touches[0]
		if m.Target == nil {
			m.Target = s.WidgetAt(first.PageX, first.PageY)
		}
		s.touch = touchTrack{
			active: true,
			target: m.Target,
			startX: first.PageX,
			startY: first.PageY,
		}
		return s.dispatchTargeted(m, m.Target)
	case TouchMove:
		if m.Target == nil {
			m.Target = s.touch.target
		}
		if len(m.Touches) > 0 && s.touch.active {
			p := m.Touches[0]
			if p.PageX != s.touch.startX || p.PageY != s.touch.startY {
				s.touch.moved = true
				s.scroll.notify(ScrollNotice{X: p.PageX, Y: p.PageY, Origin: m.Target})
			}
		}
		return s.dispatchTargeted(m, m.Target)
	case TouchEnd:
		track := s.touch
		s.touch = touchTrack{}
		if m.Target == nil {
			m.Target = track.target
		}
		result := s.dispatchTargeted(m, m.Target)
		if result.Handled || !track.active || track.moved {
			return result
		}
		click := MouseMsg{
			X: track.startX, Y: track.startY,
			Button: MouseLeft,
			Action: MouseClick,
			Shift:  m.Shift,
			Target: m.Target,
		}
		clickResult := s.dispatchTargeted(click, click.Target)
		clickResult.Commands = append(result.Commands, clickResult.Commands...)
		return clickResult
	default:
		if m.Target == nil {
			m.Target = s.touch.target
		}
		s.touch = touchTrack{}
		return s.dispatchTargeted(m, m.Target)
	}
}

// dispatchTargeted offers msg to the layers above target's layer and then
// bubbles it from target to its layer root. Without a target the message
// is broadcast.
func (s *Screen) dispatchTargeted(msg Message, target Widget) HandleResult {
	if target == nil {
		return s.broadcast(msg)
	}
	owner := -1
	var path []Widget
	for i := len(s.layers) - 1; i >= 0; i-- {
		root := s.layers[i].Root
		if root == nil {
			continue
		}
		if p := pathTo(root, target); p != nil {
			owner = i
			path = p
			break
		}
	}
	if owner < 0 {
		return s.broadcast(msg)
	}

	for i := len(s.layers) - 1; i > owner; i-- {
		layer := s.layers[i]
		if layer.Root == nil {
			continue
		}
		result := layer.Root.HandleMessage(msg)
		s.handleCommands(result.Commands)
		if result.Handled || layer.Modal {
			return result
		}
	}

	var commands []Command
	for i := len(path) - 1; i >= 0; i-- {
		result := path[i].HandleMessage(msg)
		s.handleCommands(result.Commands)
		commands = append(commands, result.Commands...)
		if result.Handled {
			result.Commands = commands
			return result
		}
	}
	return HandleResult{Commands: commands}
}

// broadcast processes layers from top to bottom until one handles msg.
// Unhandled messages pass below non-modal layers.
func (s *Screen) broadcast(msg Message) HandleResult {
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		if layer.Root == nil {
			continue
		}
		result := layer.Root.HandleMessage(msg)
		s.handleCommands(result.Commands)
		if result.Handled {
			return result
		}
		if layer.Modal {
			break
		}
	}
	return Unhandled()
}

func (s *Screen) handleCommands(cmds []Command) {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case PopOverlay:
			s.PopLayer()
		case PushOverlay:
			s.PushLayer(c.Widget, c.Modal)
		}
		// Other commands bubble up to App
	}
}

func pathTo(root, target Widget) []Widget {
	if root == nil {
		return nil
	}
	if root == target {
		return []Widget{root}
	}
	children, ok := root.(ChildProvider)
	if !ok {
		return nil
	}
	for _, child := range children.ChildWidgets() {
		if p := pathTo(child, target); p != nil {
			return append([]Widget{root}, p...)
		}
	}
	return nil
}

func (s *Screen) buildHitGrid() {
	s.hitGrid.Resize(s.width, s.height)
	s.hitGridDirty = false
	if len(s.layers) == 0 {
		return
	}

	start := 0
	if top := s.layers[len(s.layers)-1]; top != nil && top.Modal {
		start = len(s.layers) - 1
	}
	for i := start; i < len(s.layers); i++ {
		layer := s.layers[i]
		if layer == nil || layer.Root == nil {
			continue
		}
		s.addHitWidgets(layer.Root)
	}
}

// addHitWidgets records containers before their children so the innermost
// widget wins each cell.
func (s *Screen) addHitWidgets(widget Widget) {
	if widget == nil {
		return
	}
	if boundsProvider, ok := widget.(BoundsProvider); ok {
		if bounds := boundsProvider.Bounds(); !bounds.Empty() {
			s.hitGrid.Add(widget, bounds)
		}
	}
	if container, ok := widget.(ChildProvider); ok {
		for _, child := range container.ChildWidgets() {
			s.addHitWidgets(child)
		}
	}
}

// RenderContext provides context to widgets during rendering.
type RenderContext struct {
	Buffer  *Buffer
	Focused bool // Is the containing layer focused?
	Bounds  Rect // Widget's allocated bounds
}

// Sub creates a new context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{
		Buffer:  ctx.Buffer,
		Focused: ctx.Focused,
		Bounds:  bounds,
	}
}

// Clear fills the context bounds with spaces using the provided style.
func (ctx RenderContext) Clear(style backend.Style) {
	if ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Fill(ctx.Bounds, ' ', style)
}
