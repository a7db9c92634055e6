package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winloop/internal/event"
	"github.com/1broseidon/winloop/internal/platform"
	"github.com/1broseidon/winloop/internal/window"
)

func (s *Server) resolve(id uint64, tag string) (*window.Window, error) {
	switch {
	case id != 0:
		return s.ctrl.WindowByID(event.WindowID(id))
	case tag != "":
		return s.ctrl.WindowByTag(tag)
	default:
		return s.ctrl.Window()
	}
}

func describeWindow(w *window.Window, primary bool) WindowInfo {
	width, height := w.Size()
	pos := w.Pos()
	handle := w.RawHandle()
	return WindowInfo{
		ID:      uint64(w.ID()),
		Tag:     w.Tag(),
		Title:   w.Title(),
		Primary: primary,
		Width:   width,
		Height:  height,
		X:       pos.X,
		Y:       pos.Y,
		Focused: w.Focused(),
		Window:  handle.Window,
		Display: handle.Display,
	}
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	var primaryID event.WindowID
	if p, err := s.ctrl.Window(); err == nil {
		primaryID = p.ID()
	}

	windows := s.ctrl.Windows()
	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(windows))}
	for _, w := range windows {
		out.Windows = append(out.Windows, describeWindow(w, w.ID() == primaryID))
	}
	return nil, out, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTarget) (*mcpsdk.CallToolResult, CloseWindowOutput, error) {
	w, err := s.resolve(args.ID, args.Tag)
	if err != nil {
		return nil, CloseWindowOutput{}, err
	}
	if err := w.Close(); err != nil {
		return nil, CloseWindowOutput{ID: uint64(w.ID())}, fmt.Errorf("close window %d: %w", w.ID(), err)
	}
	s.logger.Info("window close requested", "window", uint64(w.ID()))
	return nil, CloseWindowOutput{ID: uint64(w.ID()), Closed: true}, nil
}

func (s *Server) handleSetTitle(_ context.Context, _ *mcpsdk.CallToolRequest, args SetTitleInput) (*mcpsdk.CallToolResult, InstructionOutput, error) {
	return s.post(args.ID, args.Tag, platform.InstrSetTitle, func(w *window.Window) error {
		return w.SetTitle(args.Title)
	})
}

func (s *Server) handleSetTheme(_ context.Context, _ *mcpsdk.CallToolRequest, args SetThemeInput) (*mcpsdk.CallToolResult, InstructionOutput, error) {
	theme, err := platform.ParseTheme(args.Theme)
	if err != nil {
		return nil, InstructionOutput{}, err
	}
	return s.post(args.ID, args.Tag, platform.InstrSetTheme, func(w *window.Window) error {
		return w.SetTheme(theme)
	})
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, InstructionOutput, error) {
	return s.post(args.ID, args.Tag, platform.InstrResize, func(w *window.Window) error {
		return w.SetSize(args.Width, args.Height)
	})
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, InstructionOutput, error) {
	return s.post(args.ID, args.Tag, platform.InstrMove, func(w *window.Window) error {
		return w.SetPos(args.X, args.Y)
	})
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTarget) (*mcpsdk.CallToolResult, InstructionOutput, error) {
	return s.post(args.ID, args.Tag, platform.InstrFocus, func(w *window.Window) error {
		return w.Focus()
	})
}

// post resolves the target window and sends it one instruction. Delivery is
// asynchronous; the window applies it on its own thread.
func (s *Server) post(id uint64, tag string, kind platform.InstructionKind, send func(*window.Window) error) (*mcpsdk.CallToolResult, InstructionOutput, error) {
	w, err := s.resolve(id, tag)
	if err != nil {
		return nil, InstructionOutput{}, err
	}
	if err := send(w); err != nil {
		return nil, InstructionOutput{ID: uint64(w.ID())}, fmt.Errorf("%s window %d: %w", kind, w.ID(), err)
	}
	s.logger.Debug("instruction posted", "window", uint64(w.ID()), "kind", kind.String())
	return nil, InstructionOutput{ID: uint64(w.ID()), Posted: kind.String()}, nil
}

func (s *Server) handleInputState(_ context.Context, _ *mcpsdk.CallToolRequest, args InputStateInput) (*mcpsdk.CallToolResult, InputStateOutput, error) {
	if args.Key == "" && args.Button == "" {
		return nil, InputStateOutput{}, fmt.Errorf("key or button is required")
	}

	var out InputStateOutput
	if args.Key != "" {
		key, err := event.ParseKey(args.Key)
		if err != nil {
			return nil, InputStateOutput{}, err
		}
		out.Key = key.String()
		out.KeyAction = s.ctrl.GetKey(key).String()
	}
	if args.Button != "" {
		button, err := event.ParseButton(args.Button)
		if err != nil {
			return nil, InputStateOutput{}, err
		}
		out.Button = button.String()
		out.ButtonAction = s.ctrl.GetMouseButton(button).String()
	}
	return nil, out, nil
}
