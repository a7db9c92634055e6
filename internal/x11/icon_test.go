package x11

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestIconFromImagePacksARGB(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	img.Set(1, 0, color.NRGBA{B: 0xff, A: 0xff})

	icon := IconFromImage(img)
	if icon.Width != 2 || icon.Height != 1 {
		t.Fatalf("expected 2x1 icon, got %dx%d", icon.Width, icon.Height)
	}
	if icon.Data[0] != 0xffff0000 {
		t.Fatalf("expected opaque red, got %#x", icon.Data[0])
	}
	if icon.Data[1] != 0xff0000ff {
		t.Fatalf("expected opaque blue, got %#x", icon.Data[1])
	}
}

func TestLoadIconDecodesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 16, 16))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	icons, err := LoadIcon(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(icons) != 1 || icons[0].Width != 16 || len(icons[0].Data) != 256 {
		t.Fatalf("unexpected icon %+v", icons)
	}
}

func TestLoadIconMissingFile(t *testing.T) {
	if _, err := LoadIcon(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected error for missing icon")
	}
}

func TestCenteredOrigin(t *testing.T) {
	mon := Monitor{X: 1920, Y: 0, Width: 1920, Height: 1080}
	x, y := CenteredOrigin(mon, 800, 640)
	if x != 1920+560 || y != 220 {
		t.Fatalf("expected (2480,220), got (%d,%d)", x, y)
	}

	x, y = CenteredOrigin(Monitor{Width: 640, Height: 480}, 800, 600)
	if x != 0 || y != 0 {
		t.Fatalf("expected oversized window clamped to origin, got (%d,%d)", x, y)
	}
}

func TestClipToWorkArea(t *testing.T) {
	mon := Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	got := clipToWorkArea(mon, 0, 32, 1920, 1048)
	if got.Y != 32 || got.Height != 1048 || got.Width != 1920 {
		t.Fatalf("unexpected clipped monitor %+v", got)
	}

	untouched := clipToWorkArea(mon, 4000, 0, 100, 100)
	if untouched != mon {
		t.Fatalf("expected disjoint work area to leave monitor unchanged, got %+v", untouched)
	}
}
