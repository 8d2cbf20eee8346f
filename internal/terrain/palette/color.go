package palette

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("palette: color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("palette: color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// FromFloat converts normalized channels to a Color, clamping and rounding
// each to the nearest 8-bit step.
func FromFloat(r, g, b float64) Color {
	return Color{R: toByte(r), G: toByte(g), B: toByte(b)}
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Hex formats the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Floats returns the channels normalized to [0,1].
func (c Color) Floats() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// RGBA converts to an opaque image/color value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Lerp blends a toward b; t is clamped to [0,1].
func Lerp(a, b Color, t float64) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Color{
		R: lerpByte(a.R, b.R, t),
		G: lerpByte(a.G, b.G, t),
		B: lerpByte(a.B, b.B, t),
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// MarshalYAML writes the color as a hex string.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// UnmarshalYAML reads a hex string.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
