//go:build !linux

package platform

import (
	"errors"
	"log/slog"
)

// ErrUnsupported is returned when no native backend exists for this OS.
var ErrUnsupported = errors.New("native windows are only supported on linux (use --headless)")

type unsupportedBackend struct{}

// Default returns a backend whose windows always fail to create.
func Default(string, *slog.Logger) Backend { return unsupportedBackend{} }

func (unsupportedBackend) Name() string { return "unsupported" }

func (unsupportedBackend) CreateWindow(Config) (NativeWindow, error) {
	return nil, ErrUnsupported
}
