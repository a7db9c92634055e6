package window

import (
	"errors"
	"testing"

	"github.com/1broseidon/winloop/internal/platform"
)

func TestNewBuilderDefaults(t *testing.T) {
	cfg, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := platform.Config{
		Title:        "winloop",
		Width:        800,
		Height:       640,
		AutoPosition: true,
		Theme:        platform.ThemeLight,
	}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestBuilderReturnsCopies(t *testing.T) {
	base := NewBuilder()
	small := base.WithDimensions(400, 300).WithTitle("small")
	placed := small.WithPos(-10, 20).WithResizable(true).WithTheme(platform.ThemeDark).WithIcon("icon.png")

	if base.Title() != "winloop" {
		t.Fatalf("expected base builder unchanged, got title %q", base.Title())
	}
	if w, h := small.Dimensions(); w != 400 || h != 300 {
		t.Fatalf("expected 400x300, got %dx%d", w, h)
	}
	if !small.AutoPosition() {
		t.Fatalf("expected auto position until WithPos")
	}

	cfg, err := placed.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cfg.AutoPosition || cfg.Position != (platform.Point{X: -10, Y: 20}) {
		t.Fatalf("expected explicit position, got %+v", cfg)
	}
	if !cfg.Resizable || cfg.Theme != platform.ThemeDark || cfg.Icon != "icon.png" || cfg.Title != "small" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if !placed.WithAutoPosition().AutoPosition() {
		t.Fatalf("expected WithAutoPosition to restore placement")
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name  string
		b     Builder
		field string
	}{
		{name: "zero width", b: NewBuilder().WithDimensions(0, 10), field: "width"},
		{name: "negative height", b: NewBuilder().WithDimensions(10, -1), field: "height"},
		{name: "unknown theme", b: NewBuilder().WithTheme(platform.Theme(42)), field: "theme"},
		{name: "blank icon", b: NewBuilder().WithIcon("   "), field: "icon"},
		{name: "unsupported icon", b: NewBuilder().WithIcon("/tmp/icon.svg"), field: "icon"},
		{name: "zero value", b: Builder{}, field: "width"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.b.Build()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, cfgErr.Field)
			}
		})
	}
}

func TestBuildKeepsPositiveDimensions(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {800, 640}, {400, 300}, {3840, 2160}} {
		cfg, err := NewBuilder().WithDimensions(dims[0], dims[1]).Build()
		if err != nil {
			t.Fatalf("build %v: %v", dims, err)
		}
		if cfg.Width != dims[0] || cfg.Height != dims[1] {
			t.Fatalf("expected %v, got %dx%d", dims, cfg.Width, cfg.Height)
		}
	}
}

func TestIconExtensionIsCaseInsensitive(t *testing.T) {
	if _, err := NewBuilder().WithIcon("Logo.PNG").Build(); err != nil {
		t.Fatalf("expected upper-case extension accepted: %v", err)
	}
}
