package terminal

// MouseDecoder turns button-state reports into discrete mouse events.
//
// Terminals report which buttons are down on every motion, not presses and
// releases. The decoder remembers the held button and derives:
//
//   - MousePress when a button goes down, followed by MouseContextMenu for the
//     secondary button
//   - MouseRelease when it comes back up, followed by MouseClick for the
//     primary button
//   - MouseMove for motion, carrying the held button (if any)
//   - MousePress with a wheel button for each wheel step
//
// A MouseDecoder is not safe for concurrent use.
type MouseDecoder struct {
	held   MouseButton
	lastX  int
	lastY  int
	primed bool
}

// Decode converts one report into zero or more events.
func (d *MouseDecoder) Decode(x, y int, held MouseButton, wheel MouseButton, mods Modifiers) []MouseEvent {
	mk := func(button MouseButton, action MouseAction) MouseEvent {
		return MouseEvent{
			X:      x,
			Y:      y,
			Button: button,
			Action: action,
			Alt:    mods.Alt,
			Ctrl:   mods.Ctrl,
			Shift:  mods.Shift,
		}
	}
	moved := !d.primed || x != d.lastX || y != d.lastY
	d.lastX, d.lastY, d.primed = x, y, true

	if wheel.IsWheel() {
		return []MouseEvent{mk(wheel, MousePress)}
	}

	var events []MouseEvent
	if d.held != MouseNone && d.held != held {
		events = append(events, mk(d.held, MouseRelease))
		if d.held == MouseLeft {
			events = append(events, mk(MouseLeft, MouseClick))
		}
		d.held = MouseNone
	}
	if held != MouseNone && d.held == MouseNone {
		d.held = held
		events = append(events, mk(held, MousePress))
		if held == MouseRight {
			events = append(events, mk(MouseRight, MouseContextMenu))
		}
		return events
	}
	if len(events) == 0 && moved {
		events = append(events, mk(d.held, MouseMove))
	}
	return events
}

// Held returns the button the decoder believes is down.
func (d *MouseDecoder) Held() MouseButton {
	return d.held
}

// Reset forgets the held button and last position.
func (d *MouseDecoder) Reset() {
	*d = MouseDecoder{}
}
