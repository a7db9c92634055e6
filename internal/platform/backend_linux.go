//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/1broseidon/winloop/internal/event"
	"github.com/1broseidon/winloop/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
)

// X11Backend creates windows on an X11 display. Every window gets its own
// connection.
type X11Backend struct {
	display string
	logger  *slog.Logger
}

var _ Backend = (*X11Backend)(nil)

// NewX11Backend returns a backend for display ("" selects $DISPLAY).
func NewX11Backend(display string, logger *slog.Logger) *X11Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &X11Backend{display: display, logger: logger}
}

// Default returns the X11 backend.
func Default(display string, logger *slog.Logger) Backend {
	return NewX11Backend(display, logger)
}

// Name returns "x11".
func (b *X11Backend) Name() string { return "x11" }

// CreateWindow opens a connection and creates a mapped top-level window.
func (b *X11Backend) CreateWindow(cfg Config) (NativeWindow, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}

	conn, err := x11.NewConnection(b.display)
	if err != nil {
		return nil, err
	}

	x, y := cfg.Position.X, cfg.Position.Y
	if cfg.AutoPosition {
		x, y = x11.CenteredOrigin(conn.PlacementMonitor(), cfg.Width, cfg.Height)
	}

	var icon []ewmh.WmIcon
	if cfg.Icon != "" {
		if icon, err = x11.LoadIcon(cfg.Icon); err != nil {
			conn.Close()
			return nil, err
		}
	}

	win, err := conn.CreateWindow(x11.WindowOptions{
		Title:     cfg.Title,
		X:         x,
		Y:         y,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Resizable: cfg.Resizable,
		Dark:      cfg.Theme == ThemeDark,
		Icon:      icon,
	})
	if err != nil {
		conn.Close()
		return nil, err
	}

	b.logger.Debug("x11 window created", "xid", uint32(win.ID), "x", x, "y", y, "width", cfg.Width, "height", cfg.Height)

	return &x11Window{
		conn:      conn,
		win:       win,
		logger:    b.logger.With("xid", uint32(win.ID)),
		posted:    make(map[uint32]Instruction),
		pressed:   make(map[xproto.Keycode]bool),
		resizable: cfg.Resizable,
		bounds:    Rect{X: x, Y: y, Width: cfg.Width, Height: cfg.Height},
	}, nil
}

type x11Window struct {
	conn   *x11.Connection
	win    *x11.Window
	logger *slog.Logger

	mu        sync.Mutex
	seq       uint32
	posted    map[uint32]Instruction
	destroyed bool

	// Owned by the window thread.
	pending   []Message
	pressed   map[xproto.Keycode]bool
	resizable bool
	bounds    Rect
	maximized bool
	minimized bool
}

func (w *x11Window) RawHandle() RawHandle {
	return RawHandle{Window: uint32(w.win.ID), Display: w.conn.Display}
}

func (w *x11Window) NextMessage() (Message, error) {
	for len(w.pending) == 0 {
		ev, err := w.conn.WaitForEvent()
		if err != nil {
			// Protocol errors from unchecked requests are not fatal.
			w.logger.Debug("x11 request failed", "error", err)
			continue
		}
		if ev == nil {
			return Message{}, ErrWindowDestroyed
		}
		w.decode(ev)
	}

	msg := w.pending[0]
	w.pending = w.pending[1:]
	return msg, nil
}

func (w *x11Window) emit(msg Message) {
	w.pending = append(w.pending, msg)
}

func (w *x11Window) decode(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		w.keyPress(e)

	case xproto.KeyReleaseEvent:
		// X reports auto-repeat as a release immediately followed by a
		// press with the same keycode and timestamp.
		next, xerr := w.conn.PollForEvent()
		if xerr != nil {
			w.logger.Debug("x11 error while checking for key repeat", "error", xerr)
		}
		if press, ok := next.(xproto.KeyPressEvent); ok && press.Detail == e.Detail && press.Time == e.Time {
			w.keyPress(press)
			return
		}
		delete(w.pressed, e.Detail)
		w.emit(Message{Code: MsgKeyUp, Key: w.key(e.Detail)})
		if next != nil {
			w.decode(next)
		}

	case xproto.ButtonPressEvent:
		x, y := int(e.EventX), int(e.EventY)
		switch e.Detail {
		case 4:
			w.emit(Message{Code: MsgScroll, Scroll: 1, X: x, Y: y})
		case 5:
			w.emit(Message{Code: MsgScroll, Scroll: -1, X: x, Y: y})
		default:
			if b := buttonFromDetail(e.Detail); b != event.ButtonNone {
				w.emit(Message{Code: MsgButtonDown, Button: b, X: x, Y: y})
			}
		}

	case xproto.ButtonReleaseEvent:
		if b := buttonFromDetail(e.Detail); b != event.ButtonNone {
			w.emit(Message{Code: MsgButtonUp, Button: b, X: int(e.EventX), Y: int(e.EventY)})
		}

	case xproto.MotionNotifyEvent:
		w.emit(Message{Code: MsgMotion, X: int(e.EventX), Y: int(e.EventY)})

	case xproto.FocusInEvent:
		if e.Mode == xproto.NotifyModeNormal || e.Mode == xproto.NotifyModeWhileGrabbed {
			w.emit(Message{Code: MsgFocusIn})
		}

	case xproto.FocusOutEvent:
		if e.Mode == xproto.NotifyModeNormal || e.Mode == xproto.NotifyModeWhileGrabbed {
			w.emit(Message{Code: MsgFocusOut})
		}

	case xproto.ConfigureNotifyEvent:
		if e.Window != w.win.ID {
			return
		}
		width, height := int(e.Width), int(e.Height)
		if width != w.bounds.Width || height != w.bounds.Height {
			w.bounds.Width, w.bounds.Height = width, height
			w.emit(Message{Code: MsgResize, Width: width, Height: height})
		}
		x, y, err := w.win.RootPosition()
		if err != nil {
			w.logger.Debug("failed to query window position", "error", err)
			return
		}
		if x != w.bounds.X || y != w.bounds.Y {
			w.bounds.X, w.bounds.Y = x, y
			w.emit(Message{Code: MsgMove, X: x, Y: y})
		}

	case xproto.ClientMessageEvent:
		if e.Format != 32 {
			return
		}
		data := e.Data.Data32
		switch {
		case e.Type == w.win.WMProtocols && len(data) > 0 && xproto.Atom(data[0]) == w.win.WMDeleteWindow:
			w.emit(Message{Code: MsgCloseRequest})
		case e.Type == w.win.Wake && len(data) > 0:
			w.mu.Lock()
			instr, ok := w.posted[data[0]]
			delete(w.posted, data[0])
			w.mu.Unlock()
			if ok {
				w.emit(Message{Code: MsgInstruction, Instruction: instr})
			}
		}

	case xproto.PropertyNotifyEvent:
		if e.Atom == w.win.NetWMState {
			w.wmStateChanged()
		}

	case xproto.DestroyNotifyEvent:
		if e.Window == w.win.ID {
			w.mu.Lock()
			w.destroyed = true
			w.mu.Unlock()
			w.emit(Message{Code: MsgDestroyed})
		}

	case xproto.ExposeEvent:
		if e.Count == 0 {
			w.emit(Message{Code: MsgOther, Name: "expose"})
		}
	case xproto.MapNotifyEvent:
		w.emit(Message{Code: MsgOther, Name: "map"})
	case xproto.UnmapNotifyEvent:
		w.emit(Message{Code: MsgOther, Name: "unmap"})
	}
}

func (w *x11Window) keyPress(e xproto.KeyPressEvent) {
	repeat := w.pressed[e.Detail]
	w.pressed[e.Detail] = true
	w.emit(Message{Code: MsgKeyDown, Key: w.key(e.Detail), Repeat: repeat})

	if r, ok := RuneFromKeysym(uint32(w.typedKeysym(e.Detail, e.State))); ok {
		w.emit(Message{Code: MsgChar, Char: r})
	}
}

func (w *x11Window) key(code xproto.Keycode) event.Key {
	return KeyFromKeysym(uint32(keybind.KeysymGet(w.conn.XUtil, code, 0)))
}

// typedKeysym picks the shifted column when Shift (or Caps Lock on a
// letter) is active.
func (w *x11Window) typedKeysym(code xproto.Keycode, state uint16) xproto.Keysym {
	lower := keybind.KeysymGet(w.conn.XUtil, code, 0)
	upper := keybind.KeysymGet(w.conn.XUtil, code, 1)
	if upper == 0 {
		upper = lower
	}

	shift := state&xproto.ModMaskShift != 0
	if state&xproto.ModMaskLock != 0 && lower >= 'a' && lower <= 'z' {
		shift = !shift
	}
	if state&xproto.ModMaskControl != 0 {
		return 0
	}
	if shift {
		return upper
	}
	return lower
}

func (w *x11Window) wmStateChanged() {
	states, err := w.win.States()
	if err != nil {
		w.logger.Debug("failed to read _NET_WM_STATE", "error", err)
		return
	}
	w.applyWMState(states)
}

// applyWMState emits Maximize or Minimize on entering each state, sized to
// the last configured bounds.
func (w *x11Window) applyWMState(states []string) {
	maximized := slices.Contains(states, "_NET_WM_STATE_MAXIMIZED_VERT") &&
		slices.Contains(states, "_NET_WM_STATE_MAXIMIZED_HORZ")
	minimized := slices.Contains(states, "_NET_WM_STATE_HIDDEN")

	if maximized && !w.maximized {
		w.emit(Message{Code: MsgMaximize, Width: w.bounds.Width, Height: w.bounds.Height})
	}
	if minimized && !w.minimized {
		w.emit(Message{Code: MsgMinimize, Width: w.bounds.Width, Height: w.bounds.Height})
	}
	w.maximized, w.minimized = maximized, minimized
}

func (w *x11Window) Post(instr Instruction) error {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return ErrWindowDestroyed
	}
	w.seq++
	seq := w.seq
	w.posted[seq] = instr
	w.mu.Unlock()

	if err := w.win.PostWake(seq); err != nil {
		w.mu.Lock()
		delete(w.posted, seq)
		w.mu.Unlock()
		return fmt.Errorf("failed to post %s: %w", instr.Kind, err)
	}
	return nil
}

func (w *x11Window) Apply(instr Instruction) error {
	switch instr.Kind {
	case InstrClose:
		// The owner destroys the window next.
	case InstrResize:
		if instr.Width <= 0 || instr.Height <= 0 {
			return fmt.Errorf("invalid window size %dx%d", instr.Width, instr.Height)
		}
		if !w.resizable {
			if err := w.win.SetSizeHints(w.bounds.X, w.bounds.Y, instr.Width, instr.Height, false); err != nil {
				return err
			}
		}
		w.win.Resize(instr.Width, instr.Height)
	case InstrMove:
		w.win.Move(instr.X, instr.Y)
	case InstrSetTitle:
		return w.win.SetTitle(instr.Title)
	case InstrSetTheme:
		if !instr.Theme.Valid() {
			return fmt.Errorf("invalid theme %s", instr.Theme)
		}
		return w.win.SetDark(instr.Theme == ThemeDark)
	case InstrSetIcon:
		icon, err := x11.LoadIcon(instr.Icon)
		if err != nil {
			return err
		}
		return w.win.SetIcon(icon)
	case InstrFocus:
		return w.win.Focus()
	default:
		return fmt.Errorf("unsupported instruction %s", instr.Kind)
	}
	return nil
}

func (w *x11Window) Destroy() error {
	w.mu.Lock()
	already := w.destroyed
	w.destroyed = true
	clear(w.posted)
	w.mu.Unlock()

	if already {
		w.conn.Close()
		return nil
	}
	return w.win.Destroy()
}

// buttonFromDetail maps core X button numbers. 4 through 7 are wheel
// events.
func buttonFromDetail(detail xproto.Button) event.Button {
	switch detail {
	case 1:
		return event.ButtonLeft
	case 2:
		return event.ButtonMiddle
	case 3:
		return event.ButtonRight
	case 8:
		return event.ButtonX1
	case 9:
		return event.ButtonX2
	default:
		return event.ButtonNone
	}
}
