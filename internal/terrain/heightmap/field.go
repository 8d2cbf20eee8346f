// Package heightmap provides the 2D scalar field shared by every stage of the
// terrain pipeline: noise output, falloff masks and their combination.
package heightmap

import (
	"errors"
	"fmt"

	"github.com/Faultbox/islegen/pkg/math"
)

var (
	// ErrDimensionMismatch is returned when two fields must share a size but do not.
	ErrDimensionMismatch = errors.New("heightmap: dimension mismatch")

	// ErrBounds is returned for a sub-region outside the source field.
	ErrBounds = errors.New("heightmap: region out of bounds")

	// ErrInvalidSize is returned for a non-positive width or height.
	ErrInvalidSize = errors.New("heightmap: width and height must be positive")
)

// Field is a row-major grid of float64 samples addressed as [x, y].
// X is the fastest-varying index: Values[y*Width+x].
type Field struct {
	Width  int
	Height int
	Values []float64
}

// New allocates a zeroed field.
func New(width, height int) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Field{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}, nil
}

// Index returns the linear index of cell (x, y).
func (f *Field) Index(x, y int) int {
	return y*f.Width + x
}

// At returns the value at (x, y).
func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.Width+x]
}

// Set stores v at (x, y).
func (f *Field) Set(x, y int, v float64) {
	f.Values[y*f.Width+x] = v
}

// SameSize reports whether both fields have identical dimensions.
func (f *Field) SameSize(other *Field) bool {
	return f.Width == other.Width && f.Height == other.Height
}

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	values := make([]float64, len(f.Values))
	copy(values, f.Values)
	return &Field{Width: f.Width, Height: f.Height, Values: values}
}

// MinMax returns the smallest and largest value in the field.
func (f *Field) MinMax() (lo, hi float64) {
	lo, hi = f.Values[0], f.Values[0]
	for _, v := range f.Values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Clamp01 returns a copy with every value limited to [0,1].
func (f *Field) Clamp01() *Field {
	out := f.Clone()
	for i, v := range out.Values {
		out.Values[i] = math.Clamp01(v)
	}
	return out
}

// Extract copies the inclusive region [startX..endX] x [startY..endY] into a
// new field of size (endX-startX+1) x (endY-startY+1).
func Extract(f *Field, startX, startY, endX, endY int) (*Field, error) {
	if startX < 0 || startY < 0 || endX >= f.Width || endY >= f.Height || startX > endX || startY > endY {
		return nil, fmt.Errorf("%w: [%d,%d]-[%d,%d] in %dx%d",
			ErrBounds, startX, startY, endX, endY, f.Width, f.Height)
	}

	w := endX - startX + 1
	h := endY - startY + 1
	out := &Field{Width: w, Height: h, Values: make([]float64, w*h)}
	for y := 0; y < h; y++ {
		src := f.Index(startX, startY+y)
		copy(out.Values[y*w:(y+1)*w], f.Values[src:src+w])
	}
	return out, nil
}

// Subtract returns clamp01(a - b) element-wise. Both fields must have the
// same dimensions; nothing is computed otherwise.
func Subtract(a, b *Field) (*Field, error) {
	if !a.SameSize(b) {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrDimensionMismatch, a.Width, a.Height, b.Width, b.Height)
	}

	out := &Field{Width: a.Width, Height: a.Height, Values: make([]float64, len(a.Values))}
	for i := range a.Values {
		out.Values[i] = math.Clamp01(a.Values[i] - b.Values[i])
	}
	return out, nil
}
