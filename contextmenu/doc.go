// Package contextmenu turns pointer and touch gestures into requests to show
// a context menu.
//
// A Trigger wraps any widget. It confirms a gesture when the configured
// button's native context-menu or click event arrives, or when the primary
// button or a touch is held for the configured duration. Each confirmed
// gesture hides whatever menu is visible, collects an optional payload off
// the event loop, and then asks a Controller to show the menu. Store is a
// Controller backed by a signal, and MenuHost is an overlay that renders the
// menu a Store is showing.
package contextmenu
