package window

import (
	"path/filepath"
	"strings"

	"github.com/1broseidon/winloop/internal/platform"
)

const (
	DefaultTitle  = "winloop"
	DefaultWidth  = 800
	DefaultHeight = 640
)

var iconExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Builder describes a window before it exists. Every With method returns an
// updated copy; the receiver is never modified.
type Builder struct {
	title     string
	width     int
	height    int
	pos       platform.Point
	autoPos   bool
	theme     platform.Theme
	icon      string
	resizable bool
}

// NewBuilder returns a builder with the default configuration: an 800x640
// fixed-size light window titled "winloop", placed by the platform.
func NewBuilder() Builder {
	return Builder{
		title:   DefaultTitle,
		width:   DefaultWidth,
		height:  DefaultHeight,
		autoPos: true,
		theme:   platform.ThemeLight,
	}
}

func (b Builder) WithTitle(title string) Builder {
	b.title = title
	return b
}

func (b Builder) WithDimensions(width, height int) Builder {
	b.width, b.height = width, height
	return b
}

func (b Builder) WithTheme(theme platform.Theme) Builder {
	b.theme = theme
	return b
}

func (b Builder) WithResizable(resizable bool) Builder {
	b.resizable = resizable
	return b
}

// WithPos places the window at x, y and disables automatic placement.
func (b Builder) WithPos(x, y int) Builder {
	b.pos = platform.Point{X: x, Y: y}
	b.autoPos = false
	return b
}

// WithAutoPosition lets the platform center the window on the active monitor.
func (b Builder) WithAutoPosition() Builder {
	b.pos = platform.Point{}
	b.autoPos = true
	return b
}

// WithIcon sets the path of a PNG, JPEG or GIF icon. An empty path clears it.
func (b Builder) WithIcon(path string) Builder {
	b.icon = path
	return b
}

func (b Builder) Title() string            { return b.title }
func (b Builder) Dimensions() (int, int)   { return b.width, b.height }
func (b Builder) Theme() platform.Theme    { return b.theme }
func (b Builder) Resizable() bool          { return b.resizable }
func (b Builder) Icon() string             { return b.icon }
func (b Builder) AutoPosition() bool       { return b.autoPos }
func (b Builder) Position() platform.Point { return b.pos }

// Build validates the builder and returns the immutable window config. It
// performs no I/O; an unreadable icon surfaces at window creation.
func (b Builder) Build() (platform.Config, error) {
	if b.width <= 0 {
		return platform.Config{}, &ConfigError{Field: "width", Reason: "must be positive"}
	}
	if b.height <= 0 {
		return platform.Config{}, &ConfigError{Field: "height", Reason: "must be positive"}
	}
	if !b.theme.Valid() {
		return platform.Config{}, &ConfigError{Field: "theme", Reason: "unknown theme " + b.theme.String()}
	}
	if b.icon != "" {
		if strings.TrimSpace(b.icon) == "" {
			return platform.Config{}, &ConfigError{Field: "icon", Reason: "path is blank"}
		}
		if ext := strings.ToLower(filepath.Ext(b.icon)); !iconExtensions[ext] {
			return platform.Config{}, &ConfigError{Field: "icon", Reason: "unsupported image format " + b.icon}
		}
	}

	return platform.Config{
		Title:        b.title,
		Width:        b.width,
		Height:       b.height,
		Position:     b.pos,
		AutoPosition: b.autoPos,
		Theme:        b.theme,
		Icon:         b.icon,
		Resizable:    b.resizable,
	}, nil
}
