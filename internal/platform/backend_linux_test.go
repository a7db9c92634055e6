//go:build linux

package platform

import "testing"

func TestApplyWMStateReportsBounds(t *testing.T) {
	w := &x11Window{bounds: Rect{X: 3, Y: 4, Width: 1920, Height: 1080}}

	w.applyWMState([]string{"_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ"})
	if len(w.pending) != 1 {
		t.Fatalf("expected one message, got %+v", w.pending)
	}
	if msg := w.pending[0]; msg.Code != MsgMaximize || msg.Width != 1920 || msg.Height != 1080 {
		t.Fatalf("expected maximize at 1920x1080, got %+v", msg)
	}

	// Staying maximized reports nothing new.
	w.applyWMState([]string{"_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ"})
	if len(w.pending) != 1 {
		t.Fatalf("expected no repeat, got %+v", w.pending)
	}

	w.bounds.Width, w.bounds.Height = 800, 600
	w.applyWMState([]string{"_NET_WM_STATE_HIDDEN"})
	if len(w.pending) != 2 {
		t.Fatalf("expected minimize, got %+v", w.pending)
	}
	if msg := w.pending[1]; msg.Code != MsgMinimize || msg.Width != 800 || msg.Height != 600 {
		t.Fatalf("expected minimize at 800x600, got %+v", msg)
	}
	if w.maximized || !w.minimized {
		t.Fatalf("expected state minimized only, got maximized=%v minimized=%v", w.maximized, w.minimized)
	}
}
