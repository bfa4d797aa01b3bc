package contextmenu

import (
	"github.com/odvcencio/furry-menu/backend"
	"github.com/odvcencio/furry-menu/runtime"
	"github.com/odvcencio/furry-menu/state"
	"github.com/odvcencio/furry-menu/terminal"
	"github.com/odvcencio/furry-menu/widgets"
)

// SelectFunc receives the chosen item and the request that opened the menu.
type SelectFunc func(item *widgets.MenuItem, req ShowRequest)

// MenuHost is a full-screen, non-modal overlay that draws one menu while the
// store shows it. Only the menu box takes hits, so everything else on the
// screen stays interactive. A press outside the box, a scroll, or Escape
// hides the menu; Enter or a click on a row selects.
type MenuHost struct {
	widgets.Component
	store    *Store
	menuID   string
	menu     *widgets.Menu
	onSelect SelectFunc
	style    backend.Style

	visible *state.Computed[*ShowRequest]
	request *ShowRequest
	// pressed is set by a press inside the box. A click only selects when
	// the press that started it was inside too.
	pressed bool
}

// NewMenuHost creates a host for the menu with menuID.
func NewMenuHost(store *Store, menuID string, items ...*widgets.MenuItem) *MenuHost {
	h := &MenuHost{
		store:  store,
		menuID: menuID,
		menu:   widgets.NewMenu(items...),
		style:  backend.DefaultStyle(),
	}
	h.menu.SetOnActivate(h.selected)
	return h
}

// SetOnSelect registers the selection handler.
func (h *MenuHost) SetOnSelect(fn SelectFunc) {
	h.onSelect = fn
}

// SetStyle sets the border and background style.
func (h *MenuHost) SetStyle(style backend.Style) {
	h.style = style
}

// Menu returns the menu widget the host draws.
func (h *MenuHost) Menu() *widgets.Menu {
	return h.menu
}

// Request returns the request the host is showing, or nil.
func (h *MenuHost) Request() *ShowRequest {
	return h.request
}

// Mount starts following the store.
func (h *MenuHost) Mount() {
	h.visible = state.NewComputed(func() *ShowRequest {
		if req := h.store.Current(); req != nil && req.MenuID == h.menuID {
			return req
		}
		return nil
	}, h.store.Signal())
	h.visible.SetEqualFunc(state.EqualComparable[*ShowRequest])
	h.apply()
	h.Observe(h.visible, h.apply)
}

// Unmount stops following the store.
func (h *MenuHost) Unmount() {
	h.Subs.Clear()
	if h.visible != nil {
		h.visible.Stop()
		h.visible = nil
	}
	h.request = nil
}

func (h *MenuHost) apply() {
	if h.visible == nil {
		return
	}
	req := h.visible.Get()
	if req == h.request {
		return
	}
	h.request = req
	h.pressed = false
	h.menu.Reset()
	h.Invalidate()
}

// Measure fills the available space.
func (h *MenuHost) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight})
}

// Box returns the menu's frame in screen cells, or an empty rect while
// hidden. The box opens at the request position and is shifted back inside
// the host when it would overflow.
func (h *MenuHost) Box() runtime.Rect {
	if h.request == nil {
		return runtime.Rect{}
	}
	bounds := h.Bounds()
	w := h.menu.PreferredWidth() + 2
	ht := len(h.menu.Items) + 2
	x, y := h.request.Position.X, h.request.Position.Y
	if right := bounds.X + bounds.Width; x+w > right {
		x = right - w
	}
	if bottom := bounds.Y + bounds.Height; y+ht > bottom {
		y = bottom - ht
	}
	x = max(x, bounds.X)
	y = max(y, bounds.Y)
	return runtime.Rect{X: x, Y: y, Width: w, Height: ht}
}

// HitTest claims only the menu box.
func (h *MenuHost) HitTest(x, y int) bool {
	return h.Box().Contains(x, y)
}

// Render draws the menu box.
func (h *MenuHost) Render(ctx runtime.RenderContext) {
	box := h.Box()
	if box.Empty() {
		return
	}
	ctx.Buffer.Fill(box, ' ', h.style)
	ctx.Buffer.DrawBox(box, h.style)
	inner := runtime.Rect{X: box.X + 1, Y: box.Y + 1, Width: box.Width - 2, Height: box.Height - 2}
	h.menu.Layout(inner)
	h.menu.Render(ctx.Sub(inner))
}

// HandleMessage drives the visible menu.
func (h *MenuHost) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if h.request == nil {
		return runtime.Unhandled()
	}
	switch m := msg.(type) {
	case runtime.KeyMsg:
		if m.Key == terminal.KeyEscape {
			h.dismiss()
			return runtime.Handled()
		}
		return h.menu.HandleMessage(msg)
	case runtime.MouseMsg:
		return h.handleMouse(m)
	case runtime.ScrollMsg:
		h.dismiss()
	}
	return runtime.Unhandled()
}

func (h *MenuHost) handleMouse(m runtime.MouseMsg) runtime.HandleResult {
	box := h.Box()
	inner := runtime.Rect{X: box.X + 1, Y: box.Y + 1, Width: box.Width - 2, Height: box.Height - 2}
	h.menu.Layout(inner)
	if !box.Contains(m.X, m.Y) {
		if m.Action == runtime.MousePress {
			h.dismiss()
		}
		return runtime.Unhandled()
	}
	switch m.Action {
	case runtime.MousePress:
		if m.Button.IsWheel() {
			h.menu.HandleMessage(m)
		} else {
			h.pressed = true
		}
	case runtime.MouseMove:
		if row := h.menu.RowAt(m.Y); row >= 0 && inner.Contains(m.X, m.Y) {
			h.menu.ScrollTo(0, row)
			h.Invalidate()
		}
	case runtime.MouseClick:
		pressed := h.pressed
		h.pressed = false
		if row := h.menu.RowAt(m.Y); pressed && row >= 0 && inner.Contains(m.X, m.Y) {
			h.menu.SelectAt(row)
		}
	}
	return runtime.Handled()
}

func (h *MenuHost) selected(item *widgets.MenuItem) {
	if h.request == nil {
		return
	}
	req := *h.request
	h.dismiss()
	if h.onSelect != nil {
		h.onSelect(item, req)
	}
}

func (h *MenuHost) dismiss() {
	h.request = nil
	h.pressed = false
	h.store.HideMenu()
	h.Invalidate()
}
