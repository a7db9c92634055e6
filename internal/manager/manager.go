// Package manager runs the event loop that owns every window.
//
// A Manager owns the primary window, any tagged secondary windows and the
// consumer end of the event queue. Run delivers each event to a callback on
// the caller's goroutine and applies the callback's ControlFlow decision.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/winloop/internal/event"
	"github.com/1broseidon/winloop/internal/keystate"
	"github.com/1broseidon/winloop/internal/platform"
	"github.com/1broseidon/winloop/internal/window"
)

// Callback handles one event. It runs on the goroutine that called Run and
// must not block: every window's events wait behind it.
type Callback func(ev event.Event, cf *ControlFlow, m *Manager)

// Manager coordinates windows and the event loop.
type Manager struct {
	backend         platform.Backend
	logger          *slog.Logger
	keys            *keystate.Table
	queue           *event.Queue
	exitFunc        func(int)
	shutdownTimeout time.Duration
	timer           *Timer

	// pending counts AddWindow calls between their state check and
	// registration. Add only happens under mu while the state allows spawning.
	pending sync.WaitGroup

	mu       sync.RWMutex
	state    State
	lastID   event.WindowID
	primary  event.WindowID
	windows  map[event.WindowID]*window.Window
	order    []event.WindowID
	tags     map[string]event.WindowID
	spawning map[string]struct{}
	stop     context.CancelFunc
	closing  bool
}

// New creates a manager and its primary window. The primary window exists
// when New returns; if it cannot be created New fails.
func New(primary window.Builder, opts ...Option) (*Manager, error) {
	m := &Manager{
		queue:           event.NewQueue(),
		exitFunc:        os.Exit,
		shutdownTimeout: DefaultShutdownTimeout,
		timer:           NewTimer(),
		windows:         make(map[event.WindowID]*window.Window),
		tags:            make(map[string]event.WindowID),
		spawning:        make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if m.keys == nil {
		m.keys = keystate.New()
	}
	if m.backend == nil {
		m.backend = platform.Default("", m.logger)
	}

	w, err := m.spawn("", primary)
	if err != nil {
		m.queue.Close()
		m.state = Terminated
		return nil, fmt.Errorf("failed to create primary window: %w", err)
	}
	m.primary = w.ID()

	m.logger.Info("manager initialized", "backend", m.backend.Name(), "primary", uint64(w.ID()))
	return m, nil
}

// AddWindow creates a secondary window registered under tag. It may be
// called before Run, from the callback or from any other goroutine. A call
// that races with Exit returns ErrNotRunning and leaves no window behind.
func (m *Manager) AddWindow(tag string, b window.Builder) (*window.Window, error) {
	if tag == "" {
		return nil, ErrEmptyTag
	}

	m.mu.Lock()
	if m.state == Exiting || m.state == Terminated {
		m.mu.Unlock()
		return nil, ErrNotRunning
	}
	_, dup := m.tags[tag]
	_, inFlight := m.spawning[tag]
	if dup || inFlight {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	m.spawning[tag] = struct{}{}
	m.pending.Add(1)
	m.mu.Unlock()
	defer m.pending.Done()

	w, err := m.spawn(tag, b)
	if err != nil {
		m.mu.Lock()
		delete(m.spawning, tag)
		m.mu.Unlock()
		return nil, err
	}
	m.logger.Info("window added", "tag", tag, "window", uint64(w.ID()))
	return w, nil
}

func (m *Manager) spawn(tag string, b window.Builder) (*window.Window, error) {
	cfg, err := b.Build()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.lastID++
	id := m.lastID
	m.mu.Unlock()

	w, err := window.Create(id, cfg, m.backend, m.queue, m.keys, m.logger, window.WithTag(tag))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	delete(m.spawning, tag)
	if m.state == Exiting || m.state == Terminated {
		m.mu.Unlock()
		m.discard(w)
		return nil, ErrNotRunning
	}
	m.windows[id] = w
	m.order = append(m.order, id)
	if tag != "" {
		m.tags[tag] = id
	}
	m.mu.Unlock()
	return w, nil
}

// discard closes and joins a window created after shutdown took its
// snapshot.
func (m *Manager) discard(w *window.Window) {
	if err := w.Close(); err != nil && !errors.Is(err, window.ErrWindowClosed) {
		m.logger.Warn("failed to close late window", "window", uint64(w.ID()), "error", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.shutdownTimeout)
	defer cancel()
	if err := w.Wait(ctx); err != nil {
		m.logger.Warn("late window thread did not exit", "window", uint64(w.ID()), "error", err)
		return
	}
	m.logger.Debug("window created during shutdown was closed", "window", uint64(w.ID()), "tag", w.Tag())
}

// Run delivers events to cb until the callback requests Exit or
// ExitWithCode, ctx is cancelled, Close is called, or every window has
// closed. Closing the primary window alone does not end the loop.
//
// Exit and cancellation close every window and join their threads before
// Run returns. ExitWithCode calls the exit function (os.Exit by default)
// without joining; if it returns, Run returns an *ExitCodeError.
func (m *Manager) Run(ctx context.Context, cb Callback) error {
	m.mu.Lock()
	if m.state != Initializing {
		state := m.state
		m.mu.Unlock()
		return fmt.Errorf("%w: cannot run in state %s", ErrNotRunning, state)
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.state = Running
	m.stop = cancel
	closing := m.closing
	m.mu.Unlock()

	m.timer.Reset()
	m.logger.Debug("event loop started")

	if closing {
		return m.shutdown()
	}

	for {
		ev, err := m.queue.Pop(runCtx)
		if err != nil {
			if errors.Is(err, event.ErrClosed) {
				m.setState(Terminated)
				return nil
			}
			m.logger.Info("event loop cancelled, closing windows", "reason", err)
			return m.shutdown()
		}

		closed := m.observe(ev)

		cf := ControlFlow{Kind: Continue}
		cb(ev, &cf, m)
		if ke, ok := ev.(event.KeyboardEvent); ok && ke.Kind == event.Char {
			m.keys.ConsumeChar(ke.Char)
		}

		if closed != nil {
			m.remove(closed)
		}

		m.mu.RLock()
		if m.closing && cf.Kind == Continue {
			cf.Kind = Exit
		}
		state := m.state
		m.mu.RUnlock()

		next, step := Transition(state, cf)
		m.setState(next)

		switch step {
		case StepShutdown:
			return m.shutdown()
		case StepAbort:
			m.logger.Warn("exiting without joining window threads", "code", cf.Code)
			m.exitFunc(cf.Code)
			return &ExitCodeError{Code: cf.Code}
		}

		if m.stopIfEmpty() {
			m.logger.Info("all windows closed, stopping event loop")
			if err := m.awaitSpawns(); err != nil {
				m.logger.Warn("window creation did not finish", "error", err)
			}
			m.queue.Close()
			m.setState(Terminated)
			return nil
		}
	}
}

// observe updates window caches from ev and returns the window a Close
// event retires.
func (m *Manager) observe(ev event.Event) *window.Window {
	we, ok := ev.(event.WindowEvent)
	if !ok {
		return nil
	}

	m.mu.RLock()
	w := m.windows[we.ID]
	m.mu.RUnlock()
	if w == nil {
		return nil
	}

	w.Observe(we)
	if we.Kind == event.Close {
		return w
	}
	return nil
}

// remove drops w from the registry and joins its thread.
func (m *Manager) remove(w *window.Window) {
	m.mu.Lock()
	delete(m.windows, w.ID())
	if w.Tag() != "" && m.tags[w.Tag()] == w.ID() {
		delete(m.tags, w.Tag())
	}
	for i, id := range m.order {
		if id == w.ID() {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), m.shutdownTimeout)
	defer cancel()
	if err := w.Wait(ctx); err != nil {
		m.logger.Warn("window thread did not exit", "window", uint64(w.ID()), "error", err)
		return
	}
	m.logger.Debug("window closed", "window", uint64(w.ID()), "tag", w.Tag())
}

// stopIfEmpty moves a manager with no windows to Exiting so no AddWindow
// can register behind the final check.
func (m *Manager) stopIfEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.windows) != 0 {
		return false
	}
	m.state = Exiting
	return true
}

// awaitSpawns waits for AddWindow calls that passed their state check
// before the manager started exiting. Each one closes and joins its own
// window once it sees the new state.
func (m *Manager) awaitSpawns() error {
	done := make(chan struct{})
	go func() {
		m.pending.Wait()
		close(done)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), m.shutdownTimeout)
	defer cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("window creation still in progress: %w", ctx.Err())
	}
}

// shutdown closes every remaining window, joins the threads and closes the
// queue.
func (m *Manager) shutdown() error {
	m.setState(Exiting)

	windows := m.Windows()
	for _, w := range windows {
		if err := w.Close(); err != nil && !errors.Is(err, window.ErrWindowClosed) {
			m.logger.Warn("failed to close window", "window", uint64(w.ID()), "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.shutdownTimeout)
	defer cancel()

	var errs []error
	for _, w := range windows {
		if err := w.Wait(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := m.awaitSpawns(); err != nil {
		errs = append(errs, err)
	}

	m.queue.Close()
	for {
		if _, ok := m.queue.TryPop(); !ok {
			break
		}
	}

	m.mu.Lock()
	clear(m.windows)
	clear(m.tags)
	m.order = nil
	m.state = Terminated
	m.mu.Unlock()

	if len(errs) > 0 {
		return fmt.Errorf("shutdown incomplete: %w", errors.Join(errs...))
	}
	m.logger.Info("event loop terminated", "windows", len(windows))
	return nil
}

// Close requests Exit from any goroutine. Inside the callback it takes
// effect once the callback returns.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closing = true
	stop := m.stop
	state := m.state
	m.mu.Unlock()

	// A callback in progress sees closing when it returns. Cancelling only
	// wakes a loop blocked in Pop.
	if stop != nil && state == Running {
		stop()
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Window returns the primary window.
func (m *Manager) Window() (*window.Window, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.windows[m.primary]; ok {
		return w, nil
	}
	return nil, &WindowNotFoundError{ID: m.primary, Primary: true}
}

// WindowByTag returns the secondary window registered under tag.
func (m *Manager) WindowByTag(tag string) (*window.Window, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.tags[tag]; ok {
		return m.windows[id], nil
	}
	return nil, &WindowNotFoundError{Tag: tag}
}

// WindowByID returns any owned window.
func (m *Manager) WindowByID(id event.WindowID) (*window.Window, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.windows[id]; ok {
		return w, nil
	}
	return nil, &WindowNotFoundError{ID: id}
}

// Windows returns the owned windows in creation order.
func (m *Manager) Windows() []*window.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*window.Window, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.windows[id])
	}
	return out
}

// Len returns the number of owned windows.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.windows)
}

// GetKey returns the most recent action recorded for key by any window.
func (m *Manager) GetKey(key event.Key) event.Action {
	return m.keys.Key(key)
}

// GetMouseButton returns the most recent action recorded for button.
func (m *Manager) GetMouseButton(button event.Button) event.Action {
	return m.keys.Button(button)
}

// GetChar reports whether r was typed in any window and its Char event has
// not been handled yet. Inside the callback for that event it is true; once
// the callback returns it is false. It is case sensitive.
func (m *Manager) GetChar(r rune) bool {
	return m.keys.Char(r)
}

// Keys returns the shared key table.
func (m *Manager) Keys() *keystate.Table {
	return m.keys
}

// Time returns the time since the previous Time call and the time since
// Run started.
func (m *Manager) Time() (dt, elapsed time.Duration) {
	return m.timer.Frame()
}
