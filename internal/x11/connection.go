package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Connection manages one X11 connection and core X resources. Each window
// owns its own Connection so that the connection's event stream is that
// window's private message queue.
type Connection struct {
	XUtil   *xgbutil.XUtil
	Root    xproto.Window
	Display string
}

// NewConnection connects to display, or to $DISPLAY when display is empty.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		if display == "" {
			return nil, fmt.Errorf("failed to connect to X11: %w", err)
		}
		return nil, fmt.Errorf("failed to connect to X11 display %s: %w", display, err)
	}

	// Keyboard mapping is needed to turn keycodes into keysyms.
	keybind.Initialize(xu)

	return &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		Display: display,
	}, nil
}

// WaitForEvent blocks until the next event or error arrives. A nil event and
// nil error means the connection was closed.
func (c *Connection) WaitForEvent() (xgb.Event, error) {
	ev, xerr := c.XUtil.Conn().WaitForEvent()
	if xerr != nil {
		return nil, fmt.Errorf("x11 error: %s", xerr)
	}
	return ev, nil
}

// PollForEvent returns the next already-received event without blocking.
func (c *Connection) PollForEvent() (xgb.Event, error) {
	ev, xerr := c.XUtil.Conn().PollForEvent()
	if xerr != nil {
		return nil, fmt.Errorf("x11 error: %s", xerr)
	}
	return ev, nil
}

// Atom interns name.
func (c *Connection) Atom(name string) (xproto.Atom, error) {
	atom, err := xprop.Atm(c.XUtil, name)
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return atom, nil
}

// AtomName resolves an atom to its name.
func (c *Connection) AtomName(atom xproto.Atom) (string, error) {
	return xprop.AtomName(c.XUtil, atom)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
