package config

import (
	"fmt"
	"time"
)

// ValidationError reports an invalid setting, with the file position that
// set it when known.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw on top of the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.Headless != nil {
		cfg.Headless = *raw.Headless
	}
	if raw.ShutdownTimeout != nil {
		d, err := time.ParseDuration(*raw.ShutdownTimeout)
		if err != nil {
			return nil, &ValidationError{Path: "shutdown_timeout", Err: fmt.Errorf("invalid duration %q", *raw.ShutdownTimeout)}
		}
		cfg.ShutdownTimeout = d
	}
	if raw.ExitKey != nil {
		cfg.ExitKey = *raw.ExitKey
	}
	if raw.Primary != nil {
		cfg.Primary = applyRawWindow(DefaultWindowSpec(), *raw.Primary)
	}
	for _, w := range raw.Windows {
		cfg.Windows = append(cfg.Windows, applyRawWindow(DefaultWindowSpec(), w))
	}
	return cfg, nil
}

func applyRawWindow(spec WindowSpec, raw RawWindow) WindowSpec {
	if raw.Tag != nil {
		spec.Tag = *raw.Tag
	}
	if raw.Title != nil {
		spec.Title = *raw.Title
	}
	if raw.Width != nil {
		spec.Width = *raw.Width
	}
	if raw.Height != nil {
		spec.Height = *raw.Height
	}
	if raw.Position != nil {
		pos := Position{}
		if raw.Position.X != nil {
			pos.X = *raw.Position.X
		}
		if raw.Position.Y != nil {
			pos.Y = *raw.Position.Y
		}
		spec.Position = &pos
	}
	if raw.Theme != nil {
		spec.Theme = *raw.Theme
	}
	if raw.Icon != nil {
		spec.Icon = *raw.Icon
	}
	if raw.Resizable != nil {
		spec.Resizable = *raw.Resizable
	}
	return spec
}
