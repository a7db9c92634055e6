package platform

import (
	"fmt"
	"sync"
)

// HeadlessDisplay is the display name reported by headless raw handles.
const HeadlessDisplay = "headless"

// Headless is an in-memory backend. Its windows have real per-window message
// queues, so the coordination layer behaves exactly as with a display server;
// tests drive them with Inject and RequestClose.
type Headless struct {
	mu       sync.Mutex
	nextXID  uint32
	windows  map[uint32]*HeadlessWindow
	order    []uint32
	failNext error
	created  chan *HeadlessWindow
}

var _ Backend = (*Headless)(nil)

// NewHeadless creates an empty headless backend.
func NewHeadless() *Headless {
	return &Headless{
		nextXID: 0x400000,
		windows: make(map[uint32]*HeadlessWindow),
		created: make(chan *HeadlessWindow, 64),
	}
}

// Name returns "headless".
func (h *Headless) Name() string { return "headless" }

// FailNext makes the next CreateWindow call fail with err.
func (h *Headless) FailNext(err error) {
	h.mu.Lock()
	h.failNext = err
	h.mu.Unlock()
}

// CreateWindow creates an in-memory window.
func (h *Headless) CreateWindow(cfg Config) (NativeWindow, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.failNext; err != nil {
		h.failNext = nil
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}

	h.nextXID++
	w := &HeadlessWindow{
		xid:   h.nextXID,
		state: newHeadlessState(cfg),
	}
	w.cond = sync.NewCond(&w.mu)
	h.windows[w.xid] = w
	h.order = append(h.order, w.xid)

	select {
	case h.created <- w:
	default:
	}
	return w, nil
}

// Windows returns every window created so far, in creation order.
func (h *Headless) Windows() []*HeadlessWindow {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*HeadlessWindow, 0, len(h.order))
	for _, xid := range h.order {
		out = append(out, h.windows[xid])
	}
	return out
}

// Window looks a window up by its raw handle.
func (h *Headless) Window(xid uint32) (*HeadlessWindow, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.windows[xid]
	return w, ok
}

// Created delivers windows as they are created (best effort, buffered).
func (h *Headless) Created() <-chan *HeadlessWindow {
	return h.created
}

// HeadlessState is a snapshot of a headless window's properties.
type HeadlessState struct {
	Title     string
	Theme     Theme
	Icon      string
	Bounds    Rect
	Resizable bool
	Focused   bool
	Destroyed bool
	// Applied lists every instruction applied on the window's thread.
	Applied []InstructionKind
}

func newHeadlessState(cfg Config) HeadlessState {
	x, y := cfg.Position.X, cfg.Position.Y
	if cfg.AutoPosition {
		x, y = 0, 0
	}
	return HeadlessState{
		Title:     cfg.Title,
		Theme:     cfg.Theme,
		Icon:      cfg.Icon,
		Bounds:    Rect{X: x, Y: y, Width: cfg.Width, Height: cfg.Height},
		Resizable: cfg.Resizable,
	}
}

// HeadlessWindow is a native window of the headless backend.
type HeadlessWindow struct {
	xid uint32

	mu      sync.Mutex
	cond    *sync.Cond
	pending []Message
	state   HeadlessState
}

var _ NativeWindow = (*HeadlessWindow)(nil)

// RawHandle returns the window's synthetic XID.
func (w *HeadlessWindow) RawHandle() RawHandle {
	return RawHandle{Window: w.xid, Display: HeadlessDisplay}
}

// Inject queues a native message as if the platform had produced it.
func (w *HeadlessWindow) Inject(msg Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enqueueLocked(msg)
}

// RequestClose simulates the user closing the window.
func (w *HeadlessWindow) RequestClose() error {
	return w.Inject(Message{Code: MsgCloseRequest})
}

func (w *HeadlessWindow) enqueueLocked(msg Message) error {
	if w.state.Destroyed {
		return ErrWindowDestroyed
	}
	w.pending = append(w.pending, msg)
	w.cond.Signal()
	return nil
}

// NextMessage blocks until a message is queued or the window is destroyed.
func (w *HeadlessWindow) NextMessage() (Message, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for len(w.pending) == 0 && !w.state.Destroyed {
		w.cond.Wait()
	}
	if w.state.Destroyed {
		return Message{}, ErrWindowDestroyed
	}
	msg := w.pending[0]
	w.pending = w.pending[1:]
	return msg, nil
}

// Post queues instr on the window's own queue.
func (w *HeadlessWindow) Post(instr Instruction) error {
	return w.Inject(Message{Code: MsgInstruction, Instruction: instr})
}

// Apply mutates the window and, like a window system, reports resulting
// geometry and focus changes as new messages.
func (w *HeadlessWindow) Apply(instr Instruction) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Destroyed {
		return ErrWindowDestroyed
	}
	w.state.Applied = append(w.state.Applied, instr.Kind)

	switch instr.Kind {
	case InstrClose:
		// Closing is driven by the owner, which destroys the window next.
	case InstrResize:
		if instr.Width <= 0 || instr.Height <= 0 {
			return fmt.Errorf("invalid window size %dx%d", instr.Width, instr.Height)
		}
		w.state.Bounds.Width, w.state.Bounds.Height = instr.Width, instr.Height
		return w.enqueueLocked(Message{Code: MsgResize, Width: instr.Width, Height: instr.Height})
	case InstrMove:
		w.state.Bounds.X, w.state.Bounds.Y = instr.X, instr.Y
		return w.enqueueLocked(Message{Code: MsgMove, X: instr.X, Y: instr.Y})
	case InstrSetTitle:
		w.state.Title = instr.Title
	case InstrSetTheme:
		if !instr.Theme.Valid() {
			return fmt.Errorf("invalid theme %s", instr.Theme)
		}
		w.state.Theme = instr.Theme
	case InstrSetIcon:
		w.state.Icon = instr.Icon
	case InstrFocus:
		if !w.state.Focused {
			w.state.Focused = true
			return w.enqueueLocked(Message{Code: MsgFocusIn})
		}
	default:
		return fmt.Errorf("unsupported instruction %s", instr.Kind)
	}
	return nil
}

// Destroy marks the window destroyed and wakes a blocked NextMessage.
func (w *HeadlessWindow) Destroy() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Destroyed {
		return ErrWindowDestroyed
	}
	w.state.Destroyed = true
	w.pending = nil
	w.cond.Broadcast()
	return nil
}

// State returns a snapshot of the window's properties.
func (w *HeadlessWindow) State() HeadlessState {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.state
	s.Applied = append([]InstructionKind(nil), w.state.Applied...)
	return s
}
