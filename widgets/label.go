package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-menu/backend"
	"github.com/odvcencio/furry-menu/runtime"
	"github.com/odvcencio/furry-menu/state"
)

// Alignment controls horizontal text placement.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Label draws one line of text. A label built with NewSignalLabel follows
// its source while mounted.
type Label struct {
	Base
	text      string
	style     backend.Style
	alignment Alignment

	source    state.Readable[string]
	scheduler state.Scheduler
	subs      state.Subscriptions
	mounted   bool
}

// NewLabel creates a static label.
func NewLabel(text string) *Label {
	return &Label{text: text, style: backend.DefaultStyle()}
}

// NewSignalLabel creates a label that tracks source. Updates are delivered
// through scheduler; a nil scheduler applies them immediately.
func NewSignalLabel(source state.Readable[string], scheduler state.Scheduler) *Label {
	l := &Label{
		style:     backend.DefaultStyle(),
		source:    source,
		scheduler: scheduler,
	}
	l.subs.SetScheduler(scheduler)
	if source != nil {
		l.text = source.Get()
	}
	return l
}

// Text returns the current label text.
func (l *Label) Text() string {
	return l.text
}

// SetText replaces the text of a static label.
func (l *Label) SetText(text string) {
	if l.text != text {
		l.text = text
		l.Invalidate()
	}
}

// SetStyle sets the label style.
func (l *Label) SetStyle(style backend.Style) {
	l.style = style
}

// SetAlignment sets text alignment.
func (l *Label) SetAlignment(align Alignment) {
	l.alignment = align
}

// Measure returns the size needed for the label.
func (l *Label) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{
		Width:  runewidth.StringWidth(l.text),
		Height: 1,
	})
}

// Render draws the label.
func (l *Label) Render(ctx runtime.RenderContext) {
	bounds := l.bounds
	if bounds.Empty() {
		return
	}
	text := truncateString(l.text, bounds.Width)
	width := runewidth.StringWidth(text)

	x := bounds.X
	switch l.alignment {
	case AlignCenter:
		x = bounds.X + (bounds.Width-width)/2
	case AlignRight:
		x = bounds.X + bounds.Width - width
	}
	ctx.Buffer.SetString(x, bounds.Y, text, l.style)
}

// Mount subscribes to the source.
func (l *Label) Mount() {
	if l.source == nil {
		return
	}
	l.mounted = true
	l.subs.Clear()
	l.text = l.source.Get()
	l.subs.Observe(l.source, l.onSource)
}

// Unmount drops the source subscription.
func (l *Label) Unmount() {
	l.mounted = false
	l.subs.Clear()
}

func (l *Label) onSource() {
	if !l.mounted || l.source == nil {
		return
	}
	l.text = l.source.Get()
	l.Invalidate()
}
