// Package window owns native windows and the OS threads that pump them.
//
// Each Window runs a goroutine locked to its own OS thread. That thread
// creates the native window, translates native messages into events for the
// shared queue, and is the only code that touches the native handle. Other
// goroutines change a window by posting an Instruction to its queue.
package window

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/1broseidon/winloop/internal/event"
	"github.com/1broseidon/winloop/internal/keystate"
	"github.com/1broseidon/winloop/internal/platform"
)

// Sink receives the events a window produces.
type Sink interface {
	Push(ev event.Event) error
}

// Option configures Create.
type Option func(*Window)

// WithTag records the registry tag of a window.
func WithTag(tag string) Option {
	return func(w *Window) { w.tag = tag }
}

// Window is an owned native window plus the thread pumping its messages.
type Window struct {
	id     event.WindowID
	tag    string
	cfg    platform.Config
	sink   Sink
	keys   *keystate.Table
	logger *slog.Logger

	// Set by the window thread before Create returns.
	native platform.NativeWindow
	handle platform.RawHandle

	done chan struct{}

	mu      sync.RWMutex
	title   string
	size    [2]int
	pos     platform.Point
	focused bool
}

// Create spawns the window thread and blocks until the native window exists.
// The first event the window pushes is Create. A platform failure is
// returned as a *WindowCreationError and the thread exits without pumping.
func Create(id event.WindowID, cfg platform.Config, backend platform.Backend, sink Sink, keys *keystate.Table, logger *slog.Logger, opts ...Option) (*Window, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if keys == nil {
		keys = keystate.New()
	}

	w := &Window{
		id:     id,
		cfg:    cfg,
		sink:   sink,
		keys:   keys,
		logger: logger.With("window", uint64(id)),
		done:   make(chan struct{}),
		title:  cfg.Title,
		size:   [2]int{cfg.Width, cfg.Height},
		pos:    cfg.Position,
	}
	for _, opt := range opts {
		opt(w)
	}

	ready := make(chan error, 1)
	go w.run(backend, ready)

	if err := <-ready; err != nil {
		<-w.done
		return nil, &WindowCreationError{ID: id, Err: err}
	}
	return w, nil
}

func (w *Window) run(backend platform.Backend, ready chan<- error) {
	// The thread stays locked until the goroutine exits, which terminates it.
	runtime.LockOSThread()
	defer close(w.done)

	native, err := backend.CreateWindow(w.cfg)
	if err != nil {
		ready <- err
		return
	}
	w.native = native
	w.handle = native.RawHandle()
	ready <- nil

	w.logger.Debug("window thread started", "xid", w.handle.Window, "title", w.cfg.Title)

	if err := w.sink.Push(event.WindowEvent{ID: w.id, Kind: event.Create, Width: w.cfg.Width, Height: w.cfg.Height}); err != nil {
		w.logger.Warn("failed to deliver create event", "error", err)
		w.shutdown(false)
		return
	}

	w.pump()
}

func (w *Window) pump() {
	tr := translator{id: w.id, keys: w.keys}

	for {
		msg, err := w.native.NextMessage()
		if err != nil {
			gone := errors.Is(err, platform.ErrWindowDestroyed)
			if !gone {
				w.logger.Warn("failed to read native message", "error", err)
			}
			w.shutdown(gone)
			return
		}

		switch msg.Code {
		case platform.MsgInstruction:
			if msg.Instruction.Kind == platform.InstrClose {
				w.shutdown(false)
				return
			}
			if err := w.native.Apply(msg.Instruction); err != nil {
				w.logger.Warn("failed to apply instruction", "instruction", msg.Instruction.Kind.String(), "error", err)
				continue
			}
			if msg.Instruction.Kind == platform.InstrSetTitle {
				w.mu.Lock()
				w.title = msg.Instruction.Title
				w.mu.Unlock()
			}
			continue
		case platform.MsgCloseRequest:
			w.shutdown(false)
			return
		case platform.MsgDestroyed:
			w.shutdown(true)
			return
		}

		ev, ok := tr.translate(msg)
		if !ok {
			continue
		}
		if err := w.sink.Push(ev); err != nil {
			w.logger.Warn("failed to deliver event, closing window", "error", err)
			w.shutdown(false)
			return
		}
	}
}

// shutdown destroys the native window on this thread and pushes the single
// final Close event.
func (w *Window) shutdown(alreadyGone bool) {
	if err := w.native.Destroy(); err != nil && !alreadyGone && !errors.Is(err, platform.ErrWindowDestroyed) {
		w.logger.Warn("failed to destroy native window", "error", err)
	}
	if err := w.sink.Push(event.WindowEvent{ID: w.id, Kind: event.Close}); err != nil {
		w.logger.Debug("close event not delivered", "error", err)
	}
	w.logger.Debug("window thread exiting")
}

// SendInstruction posts instr to the window's own message queue. It is safe
// to call from any goroutine; the instruction is applied on the window
// thread.
func (w *Window) SendInstruction(instr platform.Instruction) error {
	select {
	case <-w.done:
		return ErrWindowClosed
	default:
	}
	if err := w.native.Post(instr); err != nil {
		if errors.Is(err, platform.ErrWindowDestroyed) {
			return ErrWindowClosed
		}
		return fmt.Errorf("failed to send %s to window %d: %w", instr.Kind, w.id, err)
	}
	return nil
}

// Close asks the window to close. The window pushes Close and its thread
// exits.
func (w *Window) Close() error {
	return w.SendInstruction(platform.Instruction{Kind: platform.InstrClose})
}

// SetTitle changes the title bar text.
func (w *Window) SetTitle(title string) error {
	return w.SendInstruction(platform.Instruction{Kind: platform.InstrSetTitle, Title: title})
}

// SetSize requests a new client area size. Both dimensions must be positive.
func (w *Window) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return &ConfigError{Field: "size", Reason: fmt.Sprintf("%dx%d is not positive", width, height)}
	}
	return w.SendInstruction(platform.Instruction{Kind: platform.InstrResize, Width: width, Height: height})
}

// SetPos moves the window's top-left corner to x, y.
func (w *Window) SetPos(x, y int) error {
	return w.SendInstruction(platform.Instruction{Kind: platform.InstrMove, X: x, Y: y})
}

// SetTheme switches the decoration theme.
func (w *Window) SetTheme(theme platform.Theme) error {
	if !theme.Valid() {
		return &ConfigError{Field: "theme", Reason: "unknown theme " + theme.String()}
	}
	return w.SendInstruction(platform.Instruction{Kind: platform.InstrSetTheme, Theme: theme})
}

// SetIcon loads the image at path and sets it as the window icon.
func (w *Window) SetIcon(path string) error {
	if _, err := NewBuilder().WithIcon(path).Build(); err != nil {
		return err
	}
	return w.SendInstruction(platform.Instruction{Kind: platform.InstrSetIcon, Icon: path})
}

// Focus asks the window manager to give the window input focus.
func (w *Window) Focus() error {
	return w.SendInstruction(platform.Instruction{Kind: platform.InstrFocus})
}

// ID returns the identifier carried by this window's events.
func (w *Window) ID() event.WindowID { return w.id }

// Tag returns the registry tag; it is empty for the primary window.
func (w *Window) Tag() string { return w.tag }

// Title returns the title most recently applied on the window thread.
func (w *Window) Title() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.title
}

// Config returns the construction config. It does not reflect runtime
// changes.
func (w *Window) Config() platform.Config { return w.cfg }

// RawHandle returns the native window and display for renderer attachment.
// It stays valid until the window's Close event has been delivered.
func (w *Window) RawHandle() platform.RawHandle { return w.handle }

// Size returns the last size reported through a delivered Resize event.
func (w *Window) Size() (int, int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.size[0], w.size[1]
}

// Pos returns the last position reported through a delivered Move event.
func (w *Window) Pos() platform.Point {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pos
}

// Focused reports whether the last delivered focus event gave it focus.
func (w *Window) Focused() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.focused
}

// Observe updates the cached geometry and focus from a delivered event.
func (w *Window) Observe(ev event.WindowEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch ev.Kind {
	case event.Resize:
		w.size = [2]int{ev.Width, ev.Height}
	case event.Move:
		w.pos = platform.Point{X: ev.X, Y: ev.Y}
	case event.SetFocus:
		w.focused = true
	case event.LostFocus, event.Close:
		w.focused = false
	}
}

// Done is closed when the window thread has exited.
func (w *Window) Done() <-chan struct{} {
	return w.done
}

// Closed reports whether the window thread has exited.
func (w *Window) Closed() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the window thread has exited or ctx is done.
func (w *Window) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("window %d did not exit: %w", w.id, ctx.Err())
	}
}
