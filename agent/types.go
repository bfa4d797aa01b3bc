package agent

import (
	"time"

	"github.com/odvcencio/furry-menu/runtime"
)

// Snapshot captures the screen at one moment.
type Snapshot struct {
	Timestamp  time.Time    `json:"timestamp"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	LayerCount int          `json:"layer_count,omitempty"`
	Text       string       `json:"text,omitempty"`
	Widgets    []WidgetInfo `json:"widgets,omitempty"`
}

// WidgetInfo describes a widget in a layer's tree.
type WidgetInfo struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Bounds   runtime.Rect `json:"bounds"`
	Children []WidgetInfo `json:"children,omitempty"`
}
