package runtime

import "sync"

// ScrollNotice describes a scroll observed anywhere on the screen.
type ScrollNotice struct {
	X, Y int
	// Origin is the widget under the scroll position, if any.
	Origin Widget
}

type scrollListeners struct {
	mu   sync.Mutex
	fns  map[int]func(ScrollNotice)
	next int
}

func (l *scrollListeners) add(fn func(ScrollNotice)) func() {
	if fn == nil {
		return func() {}
	}
	l.mu.Lock()
	if l.fns == nil {
		l.fns = make(map[int]func(ScrollNotice))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

func (l *scrollListeners) notify(n ScrollNotice) {
	l.mu.Lock()
	fns := make([]func(ScrollNotice), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn(n)
	}
}

func (l *scrollListeners) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}
