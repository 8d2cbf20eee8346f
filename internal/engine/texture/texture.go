// Package texture turns heightfields and frame buffers into images and
// writes them out as PNG or BMP.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/islegen/internal/terrain/heightmap"
	"github.com/Faultbox/islegen/internal/terrain/palette"
	"github.com/Faultbox/islegen/pkg/math"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// ParseFormat validates a format name, with or without a leading dot.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")); f {
	case FormatPNG, FormatBMP:
		return f, nil
	default:
		return "", fmt.Errorf("texture: unsupported format %q", s)
	}
}

// FromField renders a field as grayscale, 0 black and 1 white. Values are
// clamped to [0,1] first.
func FromField(f *heightmap.Field) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			v := math.Clamp01(f.At(x, y))
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return img
}

// FromColors renders a field through a palette, one pixel per sample.
func FromColors(f *heightmap.Field, p *palette.Palette) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c, err := p.Evaluate(f.At(x, y))
			if err != nil {
				return nil, fmt.Errorf("texture: sample (%d,%d): %w", x, y, err)
			}
			img.SetRGBA(x, y, c.RGBA())
		}
	}
	return img, nil
}

// FromPixels wraps tightly packed RGBA pixels read back from OpenGL. Rows are
// flipped since OpenGL's origin is bottom-left.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("texture: pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}
	return img, nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

// Save writes img to path, choosing the format from the extension and
// creating parent directories as needed.
func Save(path string, img image.Image) error {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return file.Close()
}
