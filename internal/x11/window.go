package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// wakeAtomName is the client message type a window posts to itself to wake
// its own event loop.
const wakeAtomName = "_WINLOOP_INSTRUCTION"

const windowEventMask = xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskFocusChange |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskExposure |
	xproto.EventMaskPropertyChange

// Background pixels for the two decoration themes.
const (
	lightBackground = 0xf5f7fa
	darkBackground  = 0x1f2933
)

// WindowOptions are the creation parameters of a top-level window.
type WindowOptions struct {
	Title     string
	X         int
	Y         int
	Width     int
	Height    int
	Resizable bool
	Dark      bool
	Icon      []ewmh.WmIcon
}

// Window is a top-level window created by this process on its own
// connection.
type Window struct {
	conn *Connection
	win  *xwindow.Window

	ID             xproto.Window
	WMProtocols    xproto.Atom
	WMDeleteWindow xproto.Atom
	Wake           xproto.Atom
	NetWMState     xproto.Atom
}

// CreateWindow creates, decorates and maps a window.
func (c *Connection) CreateWindow(opts WindowOptions) (*Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	err = win.CreateChecked(c.Root, opts.X, opts.Y, opts.Width, opts.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		backgroundPixel(opts.Dark), uint32(windowEventMask))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w := &Window{conn: c, win: win, ID: win.Id}
	if err := w.init(opts); err != nil {
		win.Destroy()
		return nil, err
	}

	win.Map()
	return w, nil
}

func (w *Window) init(opts WindowOptions) error {
	var err error
	if w.WMProtocols, err = w.conn.Atom("WM_PROTOCOLS"); err != nil {
		return err
	}
	if w.WMDeleteWindow, err = w.conn.Atom("WM_DELETE_WINDOW"); err != nil {
		return err
	}
	if w.Wake, err = w.conn.Atom(wakeAtomName); err != nil {
		return err
	}
	if w.NetWMState, err = w.conn.Atom("_NET_WM_STATE"); err != nil {
		return err
	}

	xu := w.conn.XUtil
	if err := icccm.WmProtocolsSet(xu, w.ID, []string{"WM_DELETE_WINDOW"}); err != nil {
		return fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}
	if err := icccm.WmClassSet(xu, w.ID, &icccm.WmClass{Instance: "winloop", Class: "Winloop"}); err != nil {
		return fmt.Errorf("failed to set WM_CLASS: %w", err)
	}
	if err := w.SetTitle(opts.Title); err != nil {
		return err
	}
	if err := w.SetSizeHints(opts.X, opts.Y, opts.Width, opts.Height, opts.Resizable); err != nil {
		return err
	}
	if err := w.SetDark(opts.Dark); err != nil {
		return err
	}
	if len(opts.Icon) > 0 {
		if err := w.SetIcon(opts.Icon); err != nil {
			return err
		}
	}
	return nil
}

// SetTitle sets both the EWMH and ICCCM window names.
func (w *Window) SetTitle(title string) error {
	if err := ewmh.WmNameSet(w.conn.XUtil, w.ID, title); err != nil {
		return fmt.Errorf("failed to set _NET_WM_NAME: %w", err)
	}
	if err := icccm.WmNameSet(w.conn.XUtil, w.ID, title); err != nil {
		return fmt.Errorf("failed to set WM_NAME: %w", err)
	}
	return nil
}

// SetSizeHints publishes position and size hints. Fixed-size windows get
// equal minimum and maximum sizes, which window managers honor by disabling
// resizing.
func (w *Window) SetSizeHints(x, y, width, height int, resizable bool) error {
	hints := &icccm.NormalHints{
		Flags:  icccm.SizeHintPPosition | icccm.SizeHintPSize,
		X:      x,
		Y:      y,
		Width:  uint(width),
		Height: uint(height),
	}
	if !resizable {
		hints.Flags |= icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
		hints.MinWidth, hints.MaxWidth = uint(width), uint(width)
		hints.MinHeight, hints.MaxHeight = uint(height), uint(height)
	}
	if err := icccm.WmNormalHintsSet(w.conn.XUtil, w.ID, hints); err != nil {
		return fmt.Errorf("failed to set WM_NORMAL_HINTS: %w", err)
	}
	return nil
}

// SetDark selects the dark or light decoration variant and background.
func (w *Window) SetDark(dark bool) error {
	variant := "light"
	if dark {
		variant = "dark"
	}
	if err := xprop.ChangeProp(w.conn.XUtil, w.ID, 8, "_GTK_THEME_VARIANT", "UTF8_STRING", []byte(variant)); err != nil {
		return fmt.Errorf("failed to set _GTK_THEME_VARIANT: %w", err)
	}

	c := w.conn.XUtil.Conn()
	if err := xproto.ChangeWindowAttributesChecked(c, w.ID, xproto.CwBackPixel, []uint32{backgroundPixel(dark)}).Check(); err != nil {
		return fmt.Errorf("failed to change background: %w", err)
	}
	xproto.ClearArea(c, true, w.ID, 0, 0, 0, 0)
	return nil
}

// SetIcon publishes _NET_WM_ICON.
func (w *Window) SetIcon(icons []ewmh.WmIcon) error {
	if err := ewmh.WmIconSet(w.conn.XUtil, w.ID, icons); err != nil {
		return fmt.Errorf("failed to set _NET_WM_ICON: %w", err)
	}
	return nil
}

// Move moves the window to x, y in root coordinates.
func (w *Window) Move(x, y int) {
	w.win.Move(x, y)
}

// Resize changes the window's inner size.
func (w *Window) Resize(width, height int) {
	w.win.Resize(width, height)
}

// Focus activates and raises the window using _NET_ACTIVE_WINDOW, falling
// back to a plain input focus request when no EWMH window manager runs.
func (w *Window) Focus() error {
	atom, err := w.conn.Atom("_NET_ACTIVE_WINDOW")
	if err != nil {
		return err
	}

	const sourceIndication = 1 // application
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w.ID,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	err = xproto.SendEventChecked(
		w.conn.XUtil.Conn(),
		false,
		w.conn.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
	if err != nil {
		return xproto.SetInputFocusChecked(w.conn.XUtil.Conn(), xproto.InputFocusParent, w.ID, xproto.TimeCurrentTime).Check()
	}
	return nil
}

// PostWake sends a wake client message carrying seq to the window itself.
// The event lands on this window's connection, so the owning thread sees it
// in its regular event stream. Safe to call from any goroutine.
func (w *Window) PostWake(seq uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w.ID,
		Type:   w.Wake,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{seq, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		w.conn.XUtil.Conn(),
		false,
		w.ID,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

// RootPosition returns the window's origin in root coordinates.
func (w *Window) RootPosition() (int, int, error) {
	translate, err := xproto.TranslateCoordinates(w.conn.XUtil.Conn(), w.ID, w.conn.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to translate coordinates: %w", err)
	}
	return int(translate.DstX), int(translate.DstY), nil
}

// States returns the window's current _NET_WM_STATE atoms.
func (w *Window) States() ([]string, error) {
	return ewmh.WmStateGet(w.conn.XUtil, w.ID)
}

// Destroy destroys the window and closes its connection.
func (w *Window) Destroy() error {
	err := xproto.DestroyWindowChecked(w.conn.XUtil.Conn(), w.ID).Check()
	w.conn.Close()
	if err != nil {
		return fmt.Errorf("failed to destroy window: %w", err)
	}
	return nil
}

func backgroundPixel(dark bool) uint32 {
	if dark {
		return darkBackground
	}
	return lightBackground
}
