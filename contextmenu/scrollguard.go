package contextmenu

import "github.com/odvcencio/furry-menu/runtime"

// scrollGuard cancels a pending touch hold when a scroll starts inside the
// trigger. It holds its subscription only between install and remove.
type scrollGuard struct {
	owner    runtime.Widget
	pending  func() bool
	cancel   func()
	unsub    func()
	installs int
}

// install subscribes to source, replacing any earlier subscription.
func (g *scrollGuard) install(source ScrollSource) {
	g.remove()
	if source == nil {
		return
	}
	g.unsub = source.OnScroll(g.onScroll)
	g.installs++
}

func (g *scrollGuard) remove() {
	if g.unsub == nil {
		return
	}
	g.unsub()
	g.unsub = nil
}

func (g *scrollGuard) active() bool {
	return g.unsub != nil
}

func (g *scrollGuard) onScroll(n runtime.ScrollNotice) {
	if !g.pending() || n.Origin == nil {
		return
	}
	if runtime.Contains(g.owner, n.Origin) {
		g.cancel()
	}
}
