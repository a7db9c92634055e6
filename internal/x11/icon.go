package x11

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/BurntSushi/xgbutil/ewmh"
)

// LoadIcon decodes an image file into a _NET_WM_ICON entry.
func LoadIcon(path string) ([]ewmh.WmIcon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open icon: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon %s: %w", path, err)
	}
	return []ewmh.WmIcon{IconFromImage(img)}, nil
}

// IconFromImage converts img into packed ARGB pixels, row by row.
func IconFromImage(img image.Image) ewmh.WmIcon {
	b := img.Bounds()
	data := make([]uint, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			data = append(data, uint(a>>8)<<24|uint(r>>8)<<16|uint(g>>8)<<8|uint(bl>>8))
		}
	}
	return ewmh.WmIcon{
		Width:  uint(b.Dx()),
		Height: uint(b.Dy()),
		Data:   data,
	}
}
