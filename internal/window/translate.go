package window

import (
	"github.com/1broseidon/winloop/internal/event"
	"github.com/1broseidon/winloop/internal/keystate"
	"github.com/1broseidon/winloop/internal/platform"
)

// translator turns native messages into events for one window. It runs on
// the window thread only.
type translator struct {
	id   event.WindowID
	keys *keystate.Table

	// Pointer position of the previous motion message. Starts at the
	// window origin.
	lastX int
	lastY int
}

// translate maps msg to at most one event, updating the key table for key,
// char and button messages before the event is returned.
func (t *translator) translate(msg platform.Message) (event.Event, bool) {
	switch msg.Code {
	case platform.MsgKeyDown:
		action := event.Press
		if msg.Repeat {
			action = event.Down
		}
		t.keys.SetKey(msg.Key, action)
		return event.KeyboardEvent{ID: t.id, Kind: event.KeyDown, Key: msg.Key, Action: action}, true

	case platform.MsgKeyUp:
		t.keys.SetKey(msg.Key, event.Release)
		return event.KeyboardEvent{ID: t.id, Kind: event.KeyUp, Key: msg.Key, Action: event.Release}, true

	case platform.MsgChar:
		t.keys.TypeChar(msg.Char)
		return event.KeyboardEvent{ID: t.id, Kind: event.Char, Char: msg.Char}, true

	case platform.MsgButtonDown:
		t.keys.SetButton(msg.Button, event.Press)
		return event.MouseEvent{ID: t.id, Kind: event.ButtonDown, Button: msg.Button, Action: event.Press, X: msg.X, Y: msg.Y}, true

	case platform.MsgButtonUp:
		t.keys.SetButton(msg.Button, event.Release)
		return event.MouseEvent{ID: t.id, Kind: event.ButtonUp, Button: msg.Button, Action: event.Release, X: msg.X, Y: msg.Y}, true

	case platform.MsgMotion:
		ev := event.MouseEvent{
			ID:    t.id,
			Kind:  event.MouseMove,
			X:     msg.X,
			Y:     msg.Y,
			LastX: t.lastX,
			LastY: t.lastY,
			DX:    msg.X - t.lastX,
			DY:    msg.Y - t.lastY,
		}
		t.lastX, t.lastY = msg.X, msg.Y
		return ev, true

	case platform.MsgScroll:
		return event.MouseEvent{ID: t.id, Kind: event.Scroll, Scroll: msg.Scroll, X: msg.X, Y: msg.Y}, true

	case platform.MsgFocusIn:
		return event.WindowEvent{ID: t.id, Kind: event.SetFocus}, true
	case platform.MsgFocusOut:
		return event.WindowEvent{ID: t.id, Kind: event.LostFocus}, true
	case platform.MsgResize:
		return event.WindowEvent{ID: t.id, Kind: event.Resize, Width: msg.Width, Height: msg.Height}, true
	case platform.MsgMove:
		return event.WindowEvent{ID: t.id, Kind: event.Move, X: msg.X, Y: msg.Y}, true
	case platform.MsgMaximize:
		return event.WindowEvent{ID: t.id, Kind: event.Maximized, Width: msg.Width, Height: msg.Height}, true
	case platform.MsgMinimize:
		return event.WindowEvent{ID: t.id, Kind: event.Minimized, Width: msg.Width, Height: msg.Height}, true

	case platform.MsgOther:
		return event.OtherEvent{ID: t.id, Name: msg.Name}, true
	}
	return nil, false
}
