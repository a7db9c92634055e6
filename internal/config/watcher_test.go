package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "primary:\n  title: before\n")

	changes := make(chan *Config, 4)
	w := NewWatcher(WatcherConfig{Path: path, Debounce: 20 * time.Millisecond}, func(cfg *Config) {
		changes <- cfg
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)

	// An invalid edit is skipped.
	writeFile(t, path, "primary:\n  width: -1\n")
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "primary:\n  title: after\n  theme: dark\n")

	deadline := time.After(3 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.Primary.Width <= 0 {
				t.Fatalf("invalid config delivered: %+v", cfg.Primary)
			}
			if cfg.Primary.Title == "after" && cfg.Primary.Theme == "dark" {
				return
			}
		case <-deadline:
			t.Fatalf("expected reload after write")
		}
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "")

	changes := make(chan *Config, 1)
	w := NewWatcher(WatcherConfig{Path: path, Debounce: 10 * time.Millisecond}, func(cfg *Config) {
		changes <- cfg
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-changes:
		t.Fatalf("unexpected reload for unrelated file")
	case <-time.After(150 * time.Millisecond):
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := NewWatcher(WatcherConfig{Path: filepath.Join(t.TempDir(), "missing", "config.yaml")}, func(*Config) {})
	if err := w.Run(context.Background()); err == nil {
		t.Fatalf("expected error watching a missing directory")
	}
}
