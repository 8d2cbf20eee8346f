// Package palette maps normalized heights to colors through an ordered set of
// color bands, blending linearly across the gaps between them.
package palette

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidBand is returned for a band whose range is not 0 <= start <= end <= 1.
	ErrInvalidBand = errors.New("palette: invalid band range")

	// ErrOverlap is returned when a band intersects a resident band.
	ErrOverlap = errors.New("palette: band overlaps existing band")

	// ErrOutOfRange is returned when evaluating a value outside [0,1].
	ErrOutOfRange = errors.New("palette: value out of range [0,1]")

	// ErrEmpty is returned when evaluating a palette with no bands.
	ErrEmpty = errors.New("palette: no bands")
)

// Band is a solid color over the inclusive height range [Start, End].
type Band struct {
	Name  string  `yaml:"name"`
	Color Color   `yaml:"color"`
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// NewBand returns a validated band.
func NewBand(c Color, start, end float64, name string) (Band, error) {
	b := Band{Name: name, Color: c, Start: start, End: end}
	if err := b.Validate(); err != nil {
		return Band{}, err
	}
	return b, nil
}

// Validate checks the band's range.
func (b Band) Validate() error {
	if b.Start < 0 || b.Start > 1 || b.End < 0 || b.End > 1 {
		return fmt.Errorf("%w: %q [%g, %g] outside [0,1]", ErrInvalidBand, b.Name, b.Start, b.End)
	}
	if b.Start > b.End {
		return fmt.Errorf("%w: %q start %g > end %g", ErrInvalidBand, b.Name, b.Start, b.End)
	}
	return nil
}

// overlaps reports whether two bands share more than an endpoint. Identical
// ranges always overlap, zero-width ones included.
func (b Band) overlaps(other Band) bool {
	if b.Start == other.Start && b.End == other.End {
		return true
	}
	return b.Start < other.End && other.Start < b.End
}

// Palette is an ordered, non-overlapping sequence of bands. The zero value is
// an empty palette ready for use.
type Palette struct {
	bands []Band
}

// New builds a palette from bands in any order.
func New(bands ...Band) (*Palette, error) {
	p := &Palette{}
	for _, b := range bands {
		if err := p.Insert(b); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Insert adds a band at its sorted position. Bands that are malformed or
// intersect a resident band are rejected; touching endpoints are allowed.
func (p *Palette) Insert(b Band) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for _, existing := range p.bands {
		if b.overlaps(existing) {
			return fmt.Errorf("%w: %q [%g, %g] and %q [%g, %g]",
				ErrOverlap, b.Name, b.Start, b.End, existing.Name, existing.Start, existing.End)
		}
	}

	i := sort.Search(len(p.bands), func(i int) bool {
		cur := p.bands[i]
		return cur.Start > b.Start || (cur.Start == b.Start && cur.End > b.End)
	})
	p.bands = append(p.bands, Band{})
	copy(p.bands[i+1:], p.bands[i:])
	p.bands[i] = b
	return nil
}

// Len returns the number of bands.
func (p *Palette) Len() int {
	return len(p.bands)
}

// Band returns the i-th band in ascending order.
func (p *Palette) Band(i int) Band {
	return p.bands[i]
}

// Bands returns a copy of the ordered bands.
func (p *Palette) Bands() []Band {
	out := make([]Band, len(p.bands))
	copy(out, p.bands)
	return out
}

// Evaluate returns the color for a height in [0,1].
//
// Inside a band the band's color is returned. Between two adjacent bands the
// colors are blended by the position within the gap. Values below the first
// band or above the last band take the nearest band's color.
func (p *Palette) Evaluate(v float64) (Color, error) {
	if v < 0 || v > 1 || v != v {
		return Color{}, fmt.Errorf("%w: %g", ErrOutOfRange, v)
	}
	if len(p.bands) == 0 {
		return Color{}, ErrEmpty
	}

	for i, b := range p.bands {
		if v >= b.Start && v <= b.End {
			return b.Color, nil
		}
		if v < b.Start {
			if i == 0 {
				return b.Color, nil
			}
			prev := p.bands[i-1]
			t := (v - prev.End) / (b.Start - prev.End)
			return Lerp(prev.Color, b.Color, t), nil
		}
	}
	return p.bands[len(p.bands)-1].Color, nil
}

// Default returns the sand, dirt and stone palette.
func Default() *Palette {
	p, err := New(DefaultBands()...)
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultBands returns the bands of Default.
func DefaultBands() []Band {
	return []Band{
		{Name: "sand", Color: FromFloat(0.93, 0.85, 0.68), Start: 0.0, End: 0.3},
		{Name: "dirt", Color: FromFloat(0.52, 0.36, 0.22), Start: 0.5, End: 0.65},
		{Name: "stone", Color: FromFloat(0.36, 0.36, 0.36), Start: 0.85, End: 1.0},
	}
}
