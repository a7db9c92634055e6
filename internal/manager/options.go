package manager

import (
	"log/slog"
	"time"

	"github.com/1broseidon/winloop/internal/keystate"
	"github.com/1broseidon/winloop/internal/platform"
)

// DefaultShutdownTimeout bounds how long Exit waits for window threads.
const DefaultShutdownTimeout = 5 * time.Second

// Option configures a Manager.
type Option func(*Manager)

// WithBackend selects the platform backend. The default is the native
// backend for $DISPLAY.
func WithBackend(b platform.Backend) Option {
	return func(m *Manager) { m.backend = b }
}

// WithLogger sets the logger shared with every window. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithKeyTable shares an existing key table with the manager's windows.
func WithKeyTable(keys *keystate.Table) Option {
	return func(m *Manager) { m.keys = keys }
}

// WithExitFunc replaces os.Exit for ExitWithCode.
func WithExitFunc(fn func(code int)) Option {
	return func(m *Manager) { m.exitFunc = fn }
}

// WithShutdownTimeout bounds how long Exit waits for window threads to join.
func WithShutdownTimeout(d time.Duration) Option {
	return func(m *Manager) { m.shutdownTimeout = d }
}
