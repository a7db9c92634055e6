package window

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/1broseidon/winloop/internal/event"
	"github.com/1broseidon/winloop/internal/keystate"
	"github.com/1broseidon/winloop/internal/platform"
)

type harness struct {
	backend *platform.Headless
	queue   *event.Queue
	keys    *keystate.Table
}

func newHarness() *harness {
	return &harness{
		backend: platform.NewHeadless(),
		queue:   event.NewQueue(),
		keys:    keystate.New(),
	}
}

func (h *harness) create(t *testing.T, id event.WindowID, b Builder) (*Window, *platform.HeadlessWindow) {
	t.Helper()
	cfg, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	w, err := Create(id, cfg, h.backend, h.queue, h.keys, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	native, ok := h.backend.Window(w.RawHandle().Window)
	if !ok {
		t.Fatalf("native window %d not found", w.RawHandle().Window)
	}
	t.Cleanup(func() {
		w.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		w.Wait(ctx)
	})
	return w, native
}

func (h *harness) next(t *testing.T) event.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ev, err := h.queue.Pop(ctx)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	return ev
}

func (h *harness) expectWindowEvent(t *testing.T, id event.WindowID, kind event.WindowKind) event.WindowEvent {
	t.Helper()
	ev := h.next(t)
	we, ok := ev.(event.WindowEvent)
	if !ok || we.ID != id || we.Kind != kind {
		t.Fatalf("expected %s for window %d, got %s", kind, id, event.Describe(ev))
	}
	return we
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestCreateFailureReturnsWindowCreationError(t *testing.T) {
	h := newHarness()
	boom := errors.New("display refused")
	h.backend.FailNext(boom)

	cfg, _ := NewBuilder().Build()
	w, err := Create(3, cfg, h.backend, h.queue, h.keys, nil)
	if w != nil {
		t.Fatalf("expected no window on failure")
	}
	var createErr *WindowCreationError
	if !errors.As(err, &createErr) {
		t.Fatalf("expected *WindowCreationError, got %T: %v", err, err)
	}
	if createErr.ID != 3 || !errors.Is(err, boom) {
		t.Fatalf("unexpected creation error %+v", createErr)
	}
	if h.queue.Len() != 0 {
		t.Fatalf("expected no events from a failed window, got %d", h.queue.Len())
	}
}

func TestCreateEventPrecedesNativeMessages(t *testing.T) {
	h := newHarness()
	w, native := h.create(t, 1, NewBuilder())

	native.Inject(platform.Message{Code: platform.MsgKeyDown, Key: event.KeyA})
	native.Inject(platform.Message{Code: platform.MsgKeyUp, Key: event.KeyA})
	native.Inject(platform.Message{Code: platform.MsgOther, Name: "expose"})

	created := h.expectWindowEvent(t, w.ID(), event.Create)
	if created.Width != 800 || created.Height != 640 {
		t.Fatalf("expected 800x640 create, got %+v", created)
	}

	down, ok := h.next(t).(event.KeyboardEvent)
	if !ok || down.Kind != event.KeyDown || down.Action != event.Press {
		t.Fatalf("expected key-down press, got %+v", down)
	}
	up, ok := h.next(t).(event.KeyboardEvent)
	if !ok || up.Kind != event.KeyUp || up.Action != event.Release {
		t.Fatalf("expected key-up release, got %+v", up)
	}
	other, ok := h.next(t).(event.OtherEvent)
	if !ok || other.Name != "expose" || other.ID != w.ID() {
		t.Fatalf("expected expose, got %+v", other)
	}
}

func TestInstructionsAppliedOnWindowThread(t *testing.T) {
	h := newHarness()
	w, native := h.create(t, 1, NewBuilder())
	h.expectWindowEvent(t, w.ID(), event.Create)

	if err := w.SetTitle("renamed"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := w.SetTheme(platform.ThemeDark); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if err := w.SetSize(300, 200); err != nil {
		t.Fatalf("set size: %v", err)
	}

	resized := h.expectWindowEvent(t, w.ID(), event.Resize)
	if resized.Width != 300 || resized.Height != 200 {
		t.Fatalf("expected 300x200, got %+v", resized)
	}
	state := native.State()
	if state.Title != "renamed" || state.Theme != platform.ThemeDark {
		t.Fatalf("expected title and theme applied before resize, got %+v", state)
	}

	w.Observe(resized)
	if width, height := w.Size(); width != 300 || height != 200 {
		t.Fatalf("expected cached size 300x200, got %dx%d", width, height)
	}
	if w.Config().Width != 800 {
		t.Fatalf("expected construction config to stay fixed, got %+v", w.Config())
	}
}

func TestTitleTracksAppliedInstruction(t *testing.T) {
	h := newHarness()
	w, native := h.create(t, 1, NewBuilder().WithTitle("start"))
	h.expectWindowEvent(t, w.ID(), event.Create)

	if got := w.Title(); got != "start" {
		t.Fatalf("expected initial title, got %q", got)
	}
	if err := w.SetTitle("live"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	waitFor(t, "title applied", func() bool { return native.State().Title == "live" })
	waitFor(t, "title cached", func() bool { return w.Title() == "live" })
	if w.Config().Title != "start" {
		t.Fatalf("expected construction config to keep the old title, got %q", w.Config().Title)
	}
}

func TestInvalidRuntimeChangesRejected(t *testing.T) {
	h := newHarness()
	w, _ := h.create(t, 1, NewBuilder())

	var cfgErr *ConfigError
	if err := w.SetSize(0, 10); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for zero width, got %v", err)
	}
	if err := w.SetTheme(platform.Theme(5)); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for bad theme, got %v", err)
	}
	if err := w.SetIcon("icon.bmp"); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for bad icon, got %v", err)
	}
}

func TestCloseInstructionYieldsSingleClose(t *testing.T) {
	h := newHarness()
	w, native := h.create(t, 7, NewBuilder())
	h.expectWindowEvent(t, 7, event.Create)

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	h.expectWindowEvent(t, 7, event.Close)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if !native.State().Destroyed {
		t.Fatalf("expected native window destroyed")
	}
	if !w.Closed() {
		t.Fatalf("expected window to report closed")
	}
	if ev, ok := h.queue.TryPop(); ok {
		t.Fatalf("expected no events after close, got %s", event.Describe(ev))
	}
	if err := w.Close(); !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("expected ErrWindowClosed, got %v", err)
	}
}

func TestNativeCloseRequestEndsPump(t *testing.T) {
	h := newHarness()
	w, native := h.create(t, 2, NewBuilder())
	h.expectWindowEvent(t, 2, event.Create)

	native.RequestClose()
	h.expectWindowEvent(t, 2, event.Close)
	waitFor(t, "window thread exit", w.Closed)
}

func TestKeyTableUpdatedBeforeDelivery(t *testing.T) {
	h := newHarness()
	w, native := h.create(t, 1, NewBuilder())
	h.expectWindowEvent(t, w.ID(), event.Create)

	native.Inject(platform.Message{Code: platform.MsgKeyDown, Key: event.KeyW})
	native.Inject(platform.Message{Code: platform.MsgKeyDown, Key: event.KeyW, Repeat: true})
	native.Inject(platform.Message{Code: platform.MsgButtonDown, Button: event.ButtonRight, X: 4, Y: 5})

	h.next(t)
	if got := h.keys.Key(event.KeyW); got != event.Press && got != event.Down {
		t.Fatalf("expected W pressed, got %s", got)
	}
	repeat := h.next(t).(event.KeyboardEvent)
	if repeat.Action != event.Down {
		t.Fatalf("expected repeat to report down, got %s", repeat.Action)
	}
	h.next(t)
	if got := h.keys.Button(event.ButtonRight); got != event.Press {
		t.Fatalf("expected right button pressed, got %s", got)
	}
}

func TestCharRecordedBeforeDelivery(t *testing.T) {
	h := newHarness()
	w, native := h.create(t, 1, NewBuilder())
	h.expectWindowEvent(t, w.ID(), event.Create)

	native.Inject(platform.Message{Code: platform.MsgChar, Char: 'T'})
	ev, ok := h.next(t).(event.KeyboardEvent)
	if !ok || ev.Kind != event.Char || ev.Char != 'T' {
		t.Fatalf("expected char T, got %v", ev)
	}
	if !h.keys.Char('T') || h.keys.Char('t') {
		t.Fatalf("expected only T recorded")
	}
}

func TestMaximizeCarriesSize(t *testing.T) {
	h := newHarness()
	w, native := h.create(t, 1, NewBuilder())
	h.expectWindowEvent(t, w.ID(), event.Create)

	native.Inject(platform.Message{Code: platform.MsgMaximize, Width: 1920, Height: 1080})
	ev := h.expectWindowEvent(t, w.ID(), event.Maximized)
	if ev.Width != 1920 || ev.Height != 1080 {
		t.Fatalf("expected 1920x1080, got %dx%d", ev.Width, ev.Height)
	}
}

func TestMouseMotionTracksLastPosition(t *testing.T) {
	h := newHarness()
	w, native := h.create(t, 1, NewBuilder())
	h.expectWindowEvent(t, w.ID(), event.Create)

	native.Inject(platform.Message{Code: platform.MsgMotion, X: 10, Y: 20})
	native.Inject(platform.Message{Code: platform.MsgMotion, X: 15, Y: 12})

	first := h.next(t).(event.MouseEvent)
	if first.LastX != 0 || first.LastY != 0 || first.DX != 10 || first.DY != 20 {
		t.Fatalf("unexpected first motion %+v", first)
	}
	second := h.next(t).(event.MouseEvent)
	if second.LastX != 10 || second.LastY != 20 || second.DX != 5 || second.DY != -8 {
		t.Fatalf("unexpected second motion %+v", second)
	}
}

func TestClosedQueueForcesWindowClose(t *testing.T) {
	h := newHarness()
	h.queue.Close()

	cfg, _ := NewBuilder().Build()
	w, err := Create(1, cfg, h.backend, h.queue, h.keys, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.Wait(ctx); err != nil {
		t.Fatalf("expected window thread to exit when its events cannot be delivered: %v", err)
	}
	native, _ := h.backend.Window(w.RawHandle().Window)
	if !native.State().Destroyed {
		t.Fatalf("expected native window destroyed")
	}
}

func TestWindowsCloseIndependently(t *testing.T) {
	h := newHarness()
	const n = 5
	windows := make([]*Window, 0, n)
	for i := 1; i <= n; i++ {
		w, _ := h.create(t, event.WindowID(i), NewBuilder().WithDimensions(100*i, 50*i))
		windows = append(windows, w)
	}
	for _, w := range windows {
		if err := w.Close(); err != nil {
			t.Fatalf("close %d: %v", w.ID(), err)
		}
	}

	closes := make(map[event.WindowID]int)
	creates := make(map[event.WindowID]bool)
	for len(closes) < n {
		ev := h.next(t).(event.WindowEvent)
		switch ev.Kind {
		case event.Create:
			if closes[ev.ID] > 0 {
				t.Fatalf("create after close for window %d", ev.ID)
			}
			creates[ev.ID] = true
		case event.Close:
			if !creates[ev.ID] {
				t.Fatalf("close before create for window %d", ev.ID)
			}
			closes[ev.ID]++
		}
	}

	for _, w := range windows {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := w.Wait(ctx); err != nil {
			t.Fatalf("wait %d: %v", w.ID(), err)
		}
		cancel()
		if closes[w.ID()] != 1 {
			t.Fatalf("expected one close for window %d, got %d", w.ID(), closes[w.ID()])
		}
	}
}
