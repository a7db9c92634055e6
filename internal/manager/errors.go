package manager

import (
	"errors"
	"fmt"

	"github.com/1broseidon/winloop/internal/event"
)

var (
	// ErrDuplicateTag indicates a window is already registered under the tag.
	ErrDuplicateTag = errors.New("window tag already registered")

	// ErrEmptyTag indicates AddWindow was called without a tag.
	ErrEmptyTag = errors.New("window tag must not be empty")

	// ErrNotRunning indicates the manager has already exited.
	ErrNotRunning = errors.New("manager is not running")
)

// WindowNotFoundError reports a lookup for a window the manager no longer
// owns, or never did.
type WindowNotFoundError struct {
	Tag     string
	ID      event.WindowID
	Primary bool
}

func (e *WindowNotFoundError) Error() string {
	switch {
	case e.Primary:
		return "window not found: primary window is closed"
	case e.Tag != "":
		return fmt.Sprintf("window not found: tag %q", e.Tag)
	default:
		return fmt.Sprintf("window not found: id %d", e.ID)
	}
}

// ExitCodeError is returned by Run when ExitWithCode was requested and the
// exit function returned instead of terminating the process.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit requested with code %d", e.Code)
}
