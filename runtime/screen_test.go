package runtime

import "testing"

type boxWidget struct {
	name     string
	bounds   Rect
	children []Widget
	handle   func(Message) HandleResult
	log      *[]string
	msgs     []Message
}

func (b *boxWidget) Measure(c Constraints) Size { return Size{b.bounds.Width, b.bounds.Height} }
func (b *boxWidget) Layout(bounds Rect)         {}
func (b *boxWidget) Render(ctx RenderContext)   {}
func (b *boxWidget) Bounds() Rect               { return b.bounds }
func (b *boxWidget) ChildWidgets() []Widget     { return b.children }

func (b *boxWidget) HandleMessage(msg Message) HandleResult {
	b.msgs = append(b.msgs, msg)
	if b.log != nil {
		*b.log = append(*b.log, b.name)
	}
	if b.handle != nil {
		return b.handle(msg)
	}
	return Unhandled()
}

func mouseActions(msgs []Message) []MouseAction {
	var out []MouseAction
	for _, msg := range msgs {
		if m, ok := msg.(MouseMsg); ok {
			out = append(out, m.Action)
		}
	}
	return out
}

func TestScreen_MouseTargetsInnermost(t *testing.T) {
	var log []string
	leaf := &boxWidget{name: "leaf", bounds: Rect{2, 2, 3, 1}, log: &log}
	root := &boxWidget{name: "root", bounds: Rect{0, 0, 10, 5}, children: []Widget{leaf}, log: &log}
	screen := NewScreen(10, 5)
	screen.SetRoot(root)

	screen.HandleMessage(MouseMsg{X: 3, Y: 2, Button: MouseLeft, Action: MousePress})
	if len(log) != 2 || log[0] != "leaf" || log[1] != "root" {
		t.Fatalf("expected bubble leaf then root, got %v", log)
	}
	got := root.msgs[0].(MouseMsg)
	if got.Target != leaf {
		t.Fatalf("expected target to be the leaf, got %v", got.Target)
	}

	log = nil
	screen.HandleMessage(MouseMsg{X: 8, Y: 4, Button: MouseLeft, Action: MousePress})
	if len(log) < 1 || log[len(log)-1] != "root" {
		t.Fatalf("expected root to receive press outside leaf, got %v", log)
	}
}

func TestScreen_HandledStopsBubbling(t *testing.T) {
	var log []string
	leaf := &boxWidget{name: "leaf", bounds: Rect{0, 0, 2, 2}, log: &log, handle: func(Message) HandleResult {
		return Handled()
	}}
	root := &boxWidget{name: "root", bounds: Rect{0, 0, 10, 5}, children: []Widget{leaf}, log: &log}
	screen := NewScreen(10, 5)
	screen.SetRoot(root)

	if !screen.HandleMessage(MouseMsg{X: 1, Y: 1, Button: MouseLeft, Action: MousePress}).Handled {
		t.Fatalf("expected handled result")
	}
	if len(log) != 1 || log[0] != "leaf" {
		t.Fatalf("expected only leaf to see the press, got %v", log)
	}
}

func TestScreen_MouseOutToPreviousTarget(t *testing.T) {
	a := &boxWidget{name: "a", bounds: Rect{0, 0, 5, 1}}
	b := &boxWidget{name: "b", bounds: Rect{5, 0, 5, 1}}
	root := &boxWidget{name: "root", bounds: Rect{0, 0, 10, 1}, children: []Widget{a, b}}
	screen := NewScreen(10, 1)
	screen.SetRoot(root)

	screen.HandleMessage(MouseMsg{X: 1, Y: 0, Action: MouseMove})
	screen.HandleMessage(MouseMsg{X: 2, Y: 0, Action: MouseMove})
	screen.HandleMessage(MouseMsg{X: 6, Y: 0, Action: MouseMove})

	got := mouseActions(a.msgs)
	want := []MouseAction{MouseMove, MouseMove, MouseOut}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if out := a.msgs[2].(MouseMsg); out.Target != a {
		t.Fatalf("expected mouse out to target the previous widget")
	}
	if acts := mouseActions(b.msgs); len(acts) != 1 || acts[0] != MouseMove {
		t.Fatalf("expected b to see only the move, got %v", acts)
	}
}

func TestScreen_WheelNotifiesBeforeDispatch(t *testing.T) {
	var order []string
	leaf := &boxWidget{name: "leaf", bounds: Rect{0, 0, 4, 4}, log: &order}
	root := &boxWidget{name: "root", bounds: Rect{0, 0, 4, 4}, children: []Widget{leaf}}
	screen := NewScreen(4, 4)
	screen.SetRoot(root)

	var notice ScrollNotice
	unsub := screen.OnScroll(func(n ScrollNotice) {
		notice = n
		order = append(order, "scroll")
	})
	screen.HandleMessage(MouseMsg{X: 1, Y: 2, Button: MouseWheelDown, Action: MousePress})

	if len(order) != 2 || order[0] != "scroll" || order[1] != "leaf" {
		t.Fatalf("expected scroll listener before dispatch, got %v", order)
	}
	if notice.Origin != leaf || notice.X != 1 || notice.Y != 2 {
		t.Fatalf("unexpected notice %+v", notice)
	}

	unsub()
	unsub()
	order = nil
	screen.HandleMessage(ScrollMsg{X: 0, Y: 0})
	if len(order) != 0 {
		t.Fatalf("expected no notification after unsubscribe, got %v", order)
	}
}

func TestScreen_ScrollMsgNotifies(t *testing.T) {
	screen := NewScreen(4, 4)
	screen.SetRoot(&boxWidget{bounds: Rect{0, 0, 4, 4}})
	count := 0
	screen.OnScroll(func(ScrollNotice) { count++ })

	screen.HandleMessage(ScrollMsg{X: 1, Y: 1})
	screen.HandleMessage(MouseMsg{X: 1, Y: 1, Button: MouseLeft, Action: MousePress})
	if count != 1 {
		t.Fatalf("expected only the scroll to notify, got %d", count)
	}
}

func TestScreen_TouchTapSynthesizesClick(t *testing.T) {
	leaf := &boxWidget{name: "leaf", bounds: Rect{0, 0, 4, 4}}
	screen := NewScreen(4, 4)
	screen.SetRoot(leaf)

	screen.HandleMessage(TouchMsg{Action: TouchStart, Touches: []TouchPoint{{PageX: 2, PageY: 1}}})
	screen.HandleMessage(TouchMsg{Action: TouchEnd})

	if len(leaf.msgs) != 3 {
		t.Fatalf("expected start, end and click, got %d messages", len(leaf.msgs))
	}
	end := leaf.msgs[1].(TouchMsg)
	if end.Target != leaf {
		t.Fatalf("expected touch end to keep the start target")
	}
	click, ok := leaf.msgs[2].(MouseMsg)
	if !ok || click.Action != MouseClick || click.Button != MouseLeft || click.X != 2 || click.Y != 1 {
		t.Fatalf("unexpected synthetic click %+v", leaf.msgs[2])
	}
}

func TestScreen_HandledTouchEndSuppressesClick(t *testing.T) {
	leaf := &boxWidget{name: "leaf", bounds: Rect{0, 0, 4, 4}}
	leaf.handle = func(msg Message) HandleResult {
		if m, ok := msg.(TouchMsg); ok && m.Action == TouchEnd {
			return Handled()
		}
		return Unhandled()
	}
	screen := NewScreen(4, 4)
	screen.SetRoot(leaf)

	screen.HandleMessage(TouchMsg{Action: TouchStart, Touches: []TouchPoint{{PageX: 0, PageY: 0}}})
	screen.HandleMessage(TouchMsg{Action: TouchEnd})
	if acts := mouseActions(leaf.msgs); len(acts) != 0 {
		t.Fatalf("expected no synthetic click, got %v", acts)
	}
}

func TestScreen_TouchPanScrollsWithoutClick(t *testing.T) {
	leaf := &boxWidget{name: "leaf", bounds: Rect{0, 0, 4, 4}}
	screen := NewScreen(4, 4)
	screen.SetRoot(leaf)
	scrolls := 0
	screen.OnScroll(func(ScrollNotice) { scrolls++ })

	screen.HandleMessage(TouchMsg{Action: TouchStart, Touches: []TouchPoint{{PageX: 0, PageY: 0}}})
	screen.HandleMessage(TouchMsg{Action: TouchMove, Touches: []TouchPoint{{PageX: 0, PageY: 2}}})
	screen.HandleMessage(TouchMsg{Action: TouchEnd})

	if scrolls != 1 {
		t.Fatalf("expected pan to notify scroll once, got %d", scrolls)
	}
	if acts := mouseActions(leaf.msgs); len(acts) != 0 {
		t.Fatalf("expected no click after a pan, got %v", acts)
	}
}

type hitWindow struct {
	boxWidget
	hit Rect
}

func (h *hitWindow) HitTest(x, y int) bool { return h.hit.Contains(x, y) }

func TestScreen_OverlaySeesOutsidePressFirst(t *testing.T) {
	var log []string
	base := &boxWidget{name: "base", bounds: Rect{0, 0, 10, 5}, log: &log}
	overlay := &hitWindow{
		boxWidget: boxWidget{name: "overlay", bounds: Rect{0, 0, 10, 5}, log: &log},
		hit:       Rect{6, 0, 4, 2},
	}
	screen := NewScreen(10, 5)
	screen.SetRoot(base)
	screen.PushLayer(overlay, false)

	if got := screen.WidgetAt(1, 1); got != base {
		t.Fatalf("expected base under the overlay's empty area, got %v", got)
	}
	if got := screen.WidgetAt(7, 1); got != overlay {
		t.Fatalf("expected overlay inside its hit window, got %v", got)
	}

	screen.HandleMessage(MouseMsg{X: 1, Y: 1, Button: MouseLeft, Action: MousePress})
	if len(log) != 2 || log[0] != "overlay" || log[1] != "base" {
		t.Fatalf("expected overlay then base, got %v", log)
	}
}

func TestScreen_PopLayerClearsHover(t *testing.T) {
	base := &boxWidget{name: "base", bounds: Rect{0, 0, 4, 4}}
	overlay := &boxWidget{name: "overlay", bounds: Rect{0, 0, 4, 4}}
	screen := NewScreen(4, 4)
	screen.SetRoot(base)
	screen.PushLayer(overlay, true)

	screen.HandleMessage(MouseMsg{X: 1, Y: 1, Action: MouseMove})
	screen.PopLayer()
	screen.HandleMessage(MouseMsg{X: 1, Y: 1, Action: MouseMove})

	if acts := mouseActions(overlay.msgs); len(acts) != 1 {
		t.Fatalf("expected removed overlay to get no mouse out, got %v", acts)
	}
}

func TestContains(t *testing.T) {
	leaf := &boxWidget{}
	mid := &boxWidget{children: []Widget{leaf}}
	root := &boxWidget{children: []Widget{mid}}
	if !Contains(root, leaf) || !Contains(root, root) {
		t.Fatalf("expected containment")
	}
	if Contains(leaf, root) || Contains(root, &boxWidget{}) || Contains(nil, leaf) {
		t.Fatalf("unexpected containment")
	}
}

func TestScreen_Layer(t *testing.T) {
	base := &boxWidget{name: "base"}
	overlay := &boxWidget{name: "overlay"}
	screen := NewScreen(4, 4)
	screen.SetRoot(base)
	screen.PushLayer(overlay, true)

	if l := screen.Layer(0); l == nil || l.Root != base || l.Modal {
		t.Fatalf("unexpected base layer %+v", l)
	}
	if l := screen.Layer(1); l == nil || l.Root != overlay || !l.Modal {
		t.Fatalf("unexpected overlay layer %+v", l)
	}
	if screen.Layer(2) != nil || screen.Layer(-1) != nil {
		t.Fatalf("expected nil outside the stack")
	}
}
