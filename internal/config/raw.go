package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawPosition struct {
	X *int `yaml:"x"`
	Y *int `yaml:"y"`
}

type RawWindow struct {
	Tag       *string      `yaml:"tag"`
	Title     *string      `yaml:"title"`
	Width     *int         `yaml:"width"`
	Height    *int         `yaml:"height"`
	Position  *RawPosition `yaml:"position"`
	Theme     *string      `yaml:"theme"`
	Icon      *string      `yaml:"icon"`
	Resizable *bool        `yaml:"resizable"`
}

// RawConfig is one file as written. Nil fields were not set and leave the
// value from earlier files or the defaults in place.
type RawConfig struct {
	Include         IncludeList `yaml:"include"`
	LogLevel        *string     `yaml:"log_level"`
	Display         *string     `yaml:"display"`
	Headless        *bool       `yaml:"headless"`
	ShutdownTimeout *string     `yaml:"shutdown_timeout"`
	ExitKey         *string     `yaml:"exit_key"`
	Primary         *RawWindow  `yaml:"primary"`
	Windows         []RawWindow `yaml:"windows"`
}

// merge overlays other onto r. Secondary windows merge by tag; untagged
// entries are appended.
func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r
	out.Include = nil

	if other.LogLevel != nil {
		out.LogLevel = other.LogLevel
	}
	if other.Display != nil {
		out.Display = other.Display
	}
	if other.Headless != nil {
		out.Headless = other.Headless
	}
	if other.ShutdownTimeout != nil {
		out.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.ExitKey != nil {
		out.ExitKey = other.ExitKey
	}
	if other.Primary != nil {
		base := RawWindow{}
		if out.Primary != nil {
			base = *out.Primary
		}
		merged := base.merge(*other.Primary)
		out.Primary = &merged
	}

	if len(other.Windows) > 0 {
		windows := append([]RawWindow(nil), out.Windows...)
		for _, w := range other.Windows {
			idx := -1
			if w.Tag != nil {
				for i, existing := range windows {
					if existing.Tag != nil && *existing.Tag == *w.Tag {
						idx = i
						break
					}
				}
			}
			if idx >= 0 {
				windows[idx] = windows[idx].merge(w)
			} else {
				windows = append(windows, w)
			}
		}
		out.Windows = windows
	}
	return out
}

func (w RawWindow) merge(other RawWindow) RawWindow {
	out := w
	if other.Tag != nil {
		out.Tag = other.Tag
	}
	if other.Title != nil {
		out.Title = other.Title
	}
	if other.Width != nil {
		out.Width = other.Width
	}
	if other.Height != nil {
		out.Height = other.Height
	}
	if other.Position != nil {
		pos := RawPosition{}
		if out.Position != nil {
			pos = *out.Position
		}
		if other.Position.X != nil {
			pos.X = other.Position.X
		}
		if other.Position.Y != nil {
			pos.Y = other.Position.Y
		}
		out.Position = &pos
	}
	if other.Theme != nil {
		out.Theme = other.Theme
	}
	if other.Icon != nil {
		out.Icon = other.Icon
	}
	if other.Resizable != nil {
		out.Resizable = other.Resizable
	}
	return out
}
