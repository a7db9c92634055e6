package main

import (
	"context"
	"log/slog"
	"sync"

	"github.com/1broseidon/winloop/internal/config"
	"github.com/1broseidon/winloop/internal/platform"
	"github.com/1broseidon/winloop/internal/window"
)

// windowRegistry is the part of the manager the reloader needs.
type windowRegistry interface {
	Window() (*window.Window, error)
	WindowByTag(tag string) (*window.Window, error)
	AddWindow(tag string, b window.Builder) (*window.Window, error)
}

// reloader applies config file edits to running windows.
type reloader struct {
	windows windowRegistry
	logger  *slog.Logger

	mu      sync.Mutex
	current *config.Config
}

func newReloader(windows windowRegistry, cfg *config.Config, logger *slog.Logger) *reloader {
	return &reloader{windows: windows, current: cfg, logger: logger}
}

func startReloader(ctx context.Context, m windowRegistry, cfg *config.Config, path string, logger *slog.Logger) {
	r := newReloader(m, cfg, logger)
	w := config.NewWatcher(config.WatcherConfig{Path: path, Logger: logger}, r.apply)
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Warn("config watcher unavailable, live reload disabled", "error", err)
		}
	}()
}

// apply diffs next against the last applied config. Windows added to the
// file are opened; windows removed from it are left alone. Runtime knobs
// such as the backend or log level need a restart.
func (r *reloader) apply(next *config.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.current
	r.current = next

	if w, err := r.windows.Window(); err == nil {
		r.update(w, prev.Primary, next.Primary)
	}

	for _, spec := range next.Windows {
		old, existed := prev.Window(spec.Tag)
		w, err := r.windows.WindowByTag(spec.Tag)
		if err != nil {
			if existed {
				// Closed at runtime; do not reopen it.
				continue
			}
			if _, err := r.windows.AddWindow(spec.Tag, spec.Builder()); err != nil {
				r.logger.Warn("failed to open window from reloaded config", "tag", spec.Tag, "error", err)
			} else {
				r.logger.Info("window opened from reloaded config", "tag", spec.Tag)
			}
			continue
		}
		if !existed {
			old = config.DefaultWindowSpec()
		}
		r.update(w, old, spec)
	}
}

func (r *reloader) update(w *window.Window, old, next config.WindowSpec) {
	logger := r.logger.With("window", uint64(w.ID()))
	failed := func(what string, err error) {
		if err != nil {
			logger.Warn("failed to apply reloaded "+what, "error", err)
		}
	}

	if old.Title != next.Title {
		failed("title", w.SetTitle(next.Title))
	}
	if old.Theme != next.Theme {
		if theme, err := platform.ParseTheme(next.Theme); err == nil {
			failed("theme", w.SetTheme(theme))
		}
	}
	if old.Width != next.Width || old.Height != next.Height {
		failed("size", w.SetSize(next.Width, next.Height))
	}
	if next.Position != nil && (old.Position == nil || *old.Position != *next.Position) {
		failed("position", w.SetPos(next.Position.X, next.Position.Y))
	}
	if old.Icon != next.Icon && next.Icon != "" {
		failed("icon", w.SetIcon(next.Icon))
	}
}
