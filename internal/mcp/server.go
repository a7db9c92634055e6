// Package mcp exposes a running window manager to MCP clients over stdio.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winloop/internal/event"
	"github.com/1broseidon/winloop/internal/window"
)

const (
	ServerName    = "winloop"
	ServerVersion = "0.1.0"
)

// Controller is the part of the manager the server drives.
type Controller interface {
	Window() (*window.Window, error)
	WindowByTag(tag string) (*window.Window, error)
	WindowByID(id event.WindowID) (*window.Window, error)
	Windows() []*window.Window
	GetKey(key event.Key) event.Action
	GetMouseButton(button event.Button) event.Action
}

// Server is the MCP server for a winloop manager.
type Server struct {
	mcpServer *mcpsdk.Server
	ctrl      Controller
	logger    *slog.Logger
}

// NewServer creates a server bound to ctrl.
func NewServer(ctrl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		ctrl:   ctrl,
		logger: logger.With("component", "mcp"),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List every live window with its ID, tag, last reported geometry and focus.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window. Selects by id, then tag; with neither the primary window is closed. Closing the primary does not stop the other windows.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_title",
		Description: "Set the title of a window.",
	}, s.handleSetTitle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_theme",
		Description: "Switch a window between the light and dark decoration theme.",
	}, s.handleSetTheme)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize the client area of a window. Width and height must be positive.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window to the given screen position.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Ask the window system to focus a window.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "input_state",
		Description: "Report the last action seen for a key and/or mouse button across all windows (none, press, release or down).",
	}, s.handleInputState)
}
