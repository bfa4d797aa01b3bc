package runtime

// Lifecycle is implemented by widgets that need mount/unmount hooks.
type Lifecycle interface {
	Mount()
	Unmount()
}

// Bindable widgets receive app services when attached to a screen.
// Bind runs before Mount.
type Bindable interface {
	Bind(services Services)
}

// Unbindable widgets release app services when removed.
// Unbind runs after Unmount.
type Unbindable interface {
	Unbind()
}

// MountTree calls Mount on widgets that implement Lifecycle, parents first.
func MountTree(root Widget) {
	walk(root, true, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Mount()
		}
	})
}

// UnmountTree calls Unmount on widgets that implement Lifecycle, children first.
func UnmountTree(root Widget) {
	walk(root, false, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Unmount()
		}
	})
}

// BindTree calls Bind on widgets that implement Bindable.
// The zero Services binds nothing.
func BindTree(root Widget, services Services) {
	if services.isZero() {
		return
	}
	walk(root, true, func(w Widget) {
		if b, ok := w.(Bindable); ok {
			b.Bind(services)
		}
	})
}

// UnbindTree calls Unbind on widgets that implement Unbindable.
func UnbindTree(root Widget) {
	walk(root, false, func(w Widget) {
		if u, ok := w.(Unbindable); ok {
			u.Unbind()
		}
	})
}

func walk(w Widget, parentFirst bool, fn func(Widget)) {
	if w == nil {
		return
	}
	if parentFirst {
		fn(w)
	}
	if children, ok := w.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			walk(child, parentFirst, fn)
		}
	}
	if !parentFirst {
		fn(w)
	}
}
