package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-menu/backend"
	"github.com/odvcencio/furry-menu/runtime"
	"github.com/odvcencio/furry-menu/scroll"
	"github.com/odvcencio/furry-menu/terminal"
)

// MenuItem describes a menu entry.
type MenuItem struct {
	ID       string
	Title    string
	Shortcut string
	Disabled bool
	OnSelect func()
}

// Menu renders a vertical list of items with one selected row.
type Menu struct {
	Base
	Items         []*MenuItem
	selectedIndex int
	offset        int
	style         backend.Style
	selectedStyle backend.Style
	disabledStyle backend.Style
	onActivate    func(*MenuItem)
}

// NewMenu creates a new menu.
func NewMenu(items ...*MenuItem) *Menu {
	return &Menu{
		Items:         items,
		style:         backend.DefaultStyle(),
		selectedStyle: backend.DefaultStyle().Reverse(true),
		disabledStyle: backend.DefaultStyle().Dim(true),
	}
}

// SetItems replaces the menu items and resets the selection.
func (m *Menu) SetItems(items ...*MenuItem) {
	m.Items = items
	m.Reset()
}

// SetOnActivate registers fn to run after an enabled item is chosen.
func (m *Menu) SetOnActivate(fn func(*MenuItem)) {
	m.onActivate = fn
}

// Reset moves the selection to the first row.
func (m *Menu) Reset() {
	m.selectedIndex = 0
	m.offset = 0
	m.Invalidate()
}

// Selected returns the selected item, or nil.
func (m *Menu) Selected() *MenuItem {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.Items) {
		return nil
	}
	return m.Items[m.selectedIndex]
}

// SelectedIndex returns the selected row.
func (m *Menu) SelectedIndex() int {
	return m.selectedIndex
}

// PreferredWidth returns the cell width needed to show every row.
func (m *Menu) PreferredWidth() int {
	width := 0
	for _, item := range m.Items {
		if item != nil {
			width = max(width, runewidth.StringWidth(menuLine(item)))
		}
	}
	return width
}

// Measure returns desired size.
func (m *Menu) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: m.PreferredWidth(), Height: len(m.Items)})
}

// Render draws the menu.
func (m *Menu) Render(ctx runtime.RenderContext) {
	bounds := m.bounds
	if bounds.Empty() {
		return
	}
	ctx.Buffer.Fill(bounds, ' ', m.style)
	if len(m.Items) == 0 {
		return
	}
	m.setSelected(m.selectedIndex)
	if m.selectedIndex < m.offset {
		m.offset = m.selectedIndex
	}
	if m.selectedIndex >= m.offset+bounds.Height {
		m.offset = m.selectedIndex - bounds.Height + 1
	}
	for i := 0; i < bounds.Height; i++ {
		row := m.offset + i
		if row >= len(m.Items) {
			break
		}
		item := m.Items[row]
		if item == nil {
			continue
		}
		style := m.style
		switch {
		case row == m.selectedIndex:
			style = m.selectedStyle
		case item.Disabled:
			style = m.disabledStyle
		}
		writePadded(ctx.Buffer, bounds.X, bounds.Y+i, bounds.Width, truncateString(menuLine(item), bounds.Width), style)
	}
}

// RowAt returns the item row under screen row y, or -1.
func (m *Menu) RowAt(y int) int {
	if y < m.bounds.Y || y >= m.bounds.Y+m.bounds.Height {
		return -1
	}
	row := m.offset + y - m.bounds.Y
	if row >= len(m.Items) {
		return -1
	}
	return row
}

// SelectAt selects row and activates it. It reports whether an enabled item
// was activated.
func (m *Menu) SelectAt(row int) bool {
	if row < 0 || row >= len(m.Items) {
		return false
	}
	m.selectedIndex = row
	m.Invalidate()
	return m.activate()
}

// HandleMessage handles navigation and selection keys.
func (m *Menu) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if scroll.Handle(m, msg) {
		return runtime.Handled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	switch key.Key {
	case terminal.KeyUp:
		m.ScrollBy(0, -1)
	case terminal.KeyDown:
		m.ScrollBy(0, 1)
	case terminal.KeyEnter:
		m.activate()
	default:
		return runtime.Unhandled()
	}
	return runtime.Handled()
}

func (m *Menu) activate() bool {
	item := m.Selected()
	if item == nil || item.Disabled {
		return false
	}
	if item.OnSelect != nil {
		item.OnSelect()
	}
	if m.onActivate != nil {
		m.onActivate(item)
	}
	return true
}

func (m *Menu) setSelected(index int) {
	if len(m.Items) == 0 {
		m.selectedIndex = 0
		return
	}
	m.selectedIndex = min(max(index, 0), len(m.Items)-1)
}

func menuLine(item *MenuItem) string {
	line := " " + item.Title
	if item.Shortcut != "" {
		line += "  " + item.Shortcut
	}
	return line + " "
}

// ScrollBy moves the selection by dy rows.
func (m *Menu) ScrollBy(dx, dy int) {
	if dy == 0 {
		return
	}
	m.setSelected(m.selectedIndex + dy)
	m.Invalidate()
}

// ScrollTo selects row y.
func (m *Menu) ScrollTo(x, y int) {
	m.setSelected(y)
	m.Invalidate()
}

// PageBy moves the selection by whole pages.
func (m *Menu) PageBy(pages int) {
	pageSize := max(m.bounds.Height, 1)
	m.setSelected(m.selectedIndex + pages*pageSize)
	m.Invalidate()
}

// ScrollToStart selects the first row.
func (m *Menu) ScrollToStart() {
	m.setSelected(0)
	m.Invalidate()
}

// ScrollToEnd selects the last row.
func (m *Menu) ScrollToEnd() {
	m.setSelected(len(m.Items) - 1)
	m.Invalidate()
}

var _ scroll.Controller = (*Menu)(nil)
