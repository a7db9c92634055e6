package window

import (
	"errors"
	"fmt"

	"github.com/1broseidon/winloop/internal/event"
)

// ErrWindowClosed is returned when an instruction targets a window whose
// thread has already exited.
var ErrWindowClosed = errors.New("window closed")

// ConfigError reports an invalid builder parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid window config: %s: %s", e.Field, e.Reason)
}

// WindowCreationError reports that the platform refused to create a window.
type WindowCreationError struct {
	ID  event.WindowID
	Err error
}

func (e *WindowCreationError) Error() string {
	return fmt.Sprintf("failed to create window %d: %v", e.ID, e.Err)
}

func (e *WindowCreationError) Unwrap() error {
	return e.Err
}
