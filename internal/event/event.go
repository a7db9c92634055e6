package event

import "fmt"

// WindowID identifies a window owned by the manager. Zero is never assigned.
type WindowID uint64

// Action is the state transition reported for a key or mouse button.
type Action int

const (
	None Action = iota
	Press
	Release
	// Down is reported for keys that are held and auto-repeating.
	Down
)

func (a Action) String() string {
	switch a {
	case None:
		return "none"
	case Press:
		return "press"
	case Release:
		return "release"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Event is a single piece of window activity. Every event carries the ID of
// the window that produced it.
type Event interface {
	WindowID() WindowID
	isEvent()
}

// WindowKind enumerates window lifecycle and geometry events.
type WindowKind int

const (
	Create WindowKind = iota
	Close
	SetFocus
	LostFocus
	Resize
	Move
	Maximized
	Minimized
)

var windowKindNames = map[WindowKind]string{
	Create:    "create",
	Close:     "close",
	SetFocus:  "set-focus",
	LostFocus: "lost-focus",
	Resize:    "resize",
	Move:      "move",
	Maximized: "maximized",
	Minimized: "minimized",
}

func (k WindowKind) String() string {
	if name, ok := windowKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("window-kind(%d)", int(k))
}

// WindowEvent reports lifecycle, focus and geometry changes.
// X/Y are set for Move; Width/Height for Resize, Maximized and Minimized.
type WindowEvent struct {
	ID     WindowID
	Kind   WindowKind
	X      int
	Y      int
	Width  int
	Height int
}

func (e WindowEvent) WindowID() WindowID { return e.ID }
func (WindowEvent) isEvent()             {}

// MouseKind enumerates pointer events.
type MouseKind int

const (
	MouseMove MouseKind = iota
	ButtonDown
	ButtonUp
	Scroll
)

func (k MouseKind) String() string {
	switch k {
	case MouseMove:
		return "mouse-move"
	case ButtonDown:
		return "button-down"
	case ButtonUp:
		return "button-up"
	case Scroll:
		return "scroll"
	default:
		return fmt.Sprintf("mouse-kind(%d)", int(k))
	}
}

// MouseEvent reports pointer motion, button transitions and wheel scrolling.
type MouseEvent struct {
	ID     WindowID
	Kind   MouseKind
	Button Button
	Action Action
	X      int
	Y      int
	LastX  int
	LastY  int
	DX     int
	DY     int
	// Scroll is the number of wheel notches; positive scrolls up.
	Scroll int
}

func (e MouseEvent) WindowID() WindowID { return e.ID }
func (MouseEvent) isEvent()             {}

// KeyboardKind enumerates keyboard events.
type KeyboardKind int

const (
	KeyDown KeyboardKind = iota
	KeyUp
	Char
)

func (k KeyboardKind) String() string {
	switch k {
	case KeyDown:
		return "key-down"
	case KeyUp:
		return "key-up"
	case Char:
		return "char"
	default:
		return fmt.Sprintf("keyboard-kind(%d)", int(k))
	}
}

// KeyboardEvent reports key transitions and text input. Char is only set for
// the Char kind.
type KeyboardEvent struct {
	ID     WindowID
	Kind   KeyboardKind
	Key    Key
	Action Action
	Char   rune
}

func (e KeyboardEvent) WindowID() WindowID { return e.ID }
func (KeyboardEvent) isEvent()             {}

// OtherEvent carries native messages without a richer mapping.
type OtherEvent struct {
	ID   WindowID
	Name string
}

func (e OtherEvent) WindowID() WindowID { return e.ID }
func (OtherEvent) isEvent()             {}

// Describe renders an event for logs.
func Describe(ev Event) string {
	switch e := ev.(type) {
	case WindowEvent:
		switch e.Kind {
		case Move:
			return fmt.Sprintf("window %d %s x=%d y=%d", e.ID, e.Kind, e.X, e.Y)
		case Resize, Maximized, Minimized:
			return fmt.Sprintf("window %d %s %dx%d", e.ID, e.Kind, e.Width, e.Height)
		default:
			return fmt.Sprintf("window %d %s", e.ID, e.Kind)
		}
	case MouseEvent:
		switch e.Kind {
		case MouseMove:
			return fmt.Sprintf("window %d %s x=%d y=%d dx=%d dy=%d", e.ID, e.Kind, e.X, e.Y, e.DX, e.DY)
		case Scroll:
			return fmt.Sprintf("window %d %s %d", e.ID, e.Kind, e.Scroll)
		default:
			return fmt.Sprintf("window %d %s %s at (%d,%d)", e.ID, e.Kind, e.Button, e.X, e.Y)
		}
	case KeyboardEvent:
		if e.Kind == Char {
			return fmt.Sprintf("window %d %s %q", e.ID, e.Kind, e.Char)
		}
		return fmt.Sprintf("window %d %s %s %s", e.ID, e.Kind, e.Key, e.Action)
	case OtherEvent:
		return fmt.Sprintf("window %d other %s", e.ID, e.Name)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("window %d %T", ev.WindowID(), ev)
	}
}
