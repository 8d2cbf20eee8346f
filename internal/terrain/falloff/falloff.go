// Package falloff generates square masks that suppress height toward the map
// edges, shaping the heightfield into an island. 0 leaves a cell untouched and
// 1 suppresses it fully.
package falloff

import (
	"errors"
	"fmt"
	stdmath "math"
	"strings"

	"github.com/Faultbox/islegen/internal/terrain/heightmap"
	"github.com/Faultbox/islegen/pkg/math"
)

// Shape constants of the edge curve v^a / (v^a + (b - b*v)^a).
const (
	edgeA = 2.0
	edgeB = 2.2
)

// ErrInvalidSize is returned for a non-positive size.
var ErrInvalidSize = errors.New("falloff: size must be positive")

// Mode selects a mask shape.
type Mode string

const (
	ModeNone   Mode = "none"
	ModeEdge   Mode = "edge"
	ModeRadial Mode = "radial"
)

// Modes lists every mode in cycling order.
var Modes = []Mode{ModeRadial, ModeEdge, ModeNone}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeNone, ModeEdge, ModeRadial:
		return m, nil
	default:
		return "", fmt.Errorf("falloff: unknown mode %q", s)
	}
}

// Next returns the mode after m in Modes.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[0]
}

// Generate builds a size x size mask of the given mode.
func Generate(mode Mode, size int) (*heightmap.Field, error) {
	switch mode {
	case ModeEdge:
		return Edge(size)
	case ModeRadial:
		return Radial(size)
	case ModeNone:
		if size <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
		}
		return heightmap.New(size, size)
	default:
		return nil, fmt.Errorf("falloff: unknown mode %q", mode)
	}
}

// Edge builds a mask from the Chebyshev distance to the centre: ~0 in the
// middle, rising steeply to 1 at the border.
func Edge(size int) (*heightmap.Field, error) {
	f, err := newMask(size)
	if err != nil {
		return nil, err
	}

	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			x := float64(i)/float64(size)*2 - 1
			y := float64(j)/float64(size)*2 - 1
			v := stdmath.Max(stdmath.Abs(x), stdmath.Abs(y))
			f.Set(i, j, edgeCurve(v))
		}
	}
	return f, nil
}

func edgeCurve(v float64) float64 {
	va := stdmath.Pow(v, edgeA)
	return va / (va + stdmath.Pow(edgeB-edgeB*v, edgeA))
}

// Radial builds a circular mask: 0 within size/4 of the centre, then a linear
// ramp that reaches 1 a further size/4 out. Corners beyond the ramp stay at 1.
func Radial(size int) (*heightmap.Field, error) {
	f, err := newMask(size)
	if err != nil {
		return nil, err
	}

	center := float64(size / 2)
	radius := float64(size) / 4
	band := (float64(size) - radius*2) / 2

	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			d := stdmath.Hypot(float64(i)-center, float64(j)-center)
			if d <= radius {
				continue
			}
			f.Set(i, j, math.Clamp01((d-radius)/band))
		}
	}
	return f, nil
}

func newMask(size int) (*heightmap.Field, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return heightmap.New(size, size)
}
