// Package backend abstracts the terminal the runtime draws on.
package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-menu/terminal"
)

// Style is a cell style. It is tcell's style so backends can pass it through.
type Style = tcell.Style

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return tcell.StyleDefault
}

// Cell is one rendered terminal cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend is a terminal the runtime can drive.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	// PollEvent blocks until an event is available. It returns nil once the
	// backend has been finalized.
	PollEvent() terminal.Event
	SetContent(x, y int, mainc rune, combc []rune, style Style)
	HideCursor()
	Show()
}

// RowWriter is an optional fast path for writing a run of cells in one row.
type RowWriter interface {
	SetRow(y int, startX int, cells []Cell)
}
