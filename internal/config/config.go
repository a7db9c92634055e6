package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/1broseidon/winloop/internal/event"
	"github.com/1broseidon/winloop/internal/platform"
	"github.com/1broseidon/winloop/internal/window"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultExitKey         = "escape"
)

// Position is an explicit window origin. Windows without one are centered
// on the monitor under the pointer.
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// WindowSpec describes one window in the config file.
type WindowSpec struct {
	Tag       string    `yaml:"tag,omitempty"`
	Title     string    `yaml:"title"`
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	Position  *Position `yaml:"position,omitempty"`
	Theme     string    `yaml:"theme"`
	Icon      string    `yaml:"icon,omitempty"`
	Resizable bool      `yaml:"resizable"`
}

// Config is the effective configuration after defaults and includes.
type Config struct {
	LogLevel        string        `yaml:"log_level"`
	Display         string        `yaml:"display"`
	Headless        bool          `yaml:"headless"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// ExitKey ends the demo loop when pressed in any window. Empty disables it.
	ExitKey string       `yaml:"exit_key"`
	Primary WindowSpec   `yaml:"primary"`
	Windows []WindowSpec `yaml:"windows"`
}

// DefaultWindowSpec mirrors the defaults of window.NewBuilder.
func DefaultWindowSpec() WindowSpec {
	return WindowSpec{
		Title:  window.DefaultTitle,
		Width:  window.DefaultWidth,
		Height: window.DefaultHeight,
		Theme:  platform.ThemeLight.String(),
	}
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
		ExitKey:         DefaultExitKey,
		Primary:         DefaultWindowSpec(),
		Windows:         []WindowSpec{},
	}
}

// Builder converts the spec into a window builder. Call Validate first;
// an invalid theme falls back to light here.
func (s WindowSpec) Builder() window.Builder {
	theme, _ := platform.ParseTheme(s.Theme)
	b := window.NewBuilder().
		WithTitle(s.Title).
		WithDimensions(s.Width, s.Height).
		WithTheme(theme).
		WithResizable(s.Resizable).
		WithIcon(s.Icon)
	if s.Position != nil {
		b = b.WithPos(s.Position.X, s.Position.Y)
	}
	return b
}

// Window returns the spec for tag, or the primary spec for an empty tag.
func (c *Config) Window(tag string) (WindowSpec, bool) {
	if tag == "" {
		return c.Primary, true
	}
	for _, w := range c.Windows {
		if w.Tag == tag {
			return w, true
		}
	}
	return WindowSpec{}, false
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ExitKeyCode resolves ExitKey. The second result is false when no exit key
// is configured.
func (c *Config) ExitKeyCode() (event.Key, bool) {
	if strings.TrimSpace(c.ExitKey) == "" {
		return event.KeyUnknown, false
	}
	key, err := event.ParseKey(c.ExitKey)
	if err != nil {
		return event.KeyUnknown, false
	}
	return key, true
}

// Save writes the configuration to path, or the standard location when path
// is empty.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.ShutdownTimeout <= 0 {
		return &ValidationError{Path: "shutdown_timeout", Err: fmt.Errorf("shutdown_timeout must be > 0")}
	}
	if strings.TrimSpace(c.ExitKey) != "" {
		if _, err := event.ParseKey(c.ExitKey); err != nil {
			return &ValidationError{Path: "exit_key", Err: err}
		}
	}

	if c.Primary.Tag != "" {
		return &ValidationError{Path: "primary.tag", Err: fmt.Errorf("the primary window has no tag")}
	}
	if err := validateWindow(c.Primary, "primary"); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(c.Windows))
	for i, w := range c.Windows {
		prefix := fmt.Sprintf("windows[%d]", i)
		if strings.TrimSpace(w.Tag) == "" {
			return &ValidationError{Path: "windows", Err: fmt.Errorf("%s: tag is required", prefix)}
		}
		if _, dup := seen[w.Tag]; dup {
			return &ValidationError{Path: "windows", Err: fmt.Errorf("%s: duplicate tag %q", prefix, w.Tag)}
		}
		seen[w.Tag] = struct{}{}
		if err := validateWindow(w, "windows."+w.Tag); err != nil {
			return err
		}
	}
	return nil
}

func validateWindow(w WindowSpec, path string) error {
	if _, err := platform.ParseTheme(w.Theme); err != nil {
		return &ValidationError{Path: path + ".theme", Err: err}
	}
	if _, err := w.Builder().Build(); err != nil {
		field := ""
		if cfgErr, ok := err.(*window.ConfigError); ok {
			field = "." + cfgErr.Field
		}
		return &ValidationError{Path: path + field, Err: err}
	}
	return nil
}
