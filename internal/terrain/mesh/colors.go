package mesh

import (
	"fmt"

	"github.com/Faultbox/islegen/internal/terrain/heightmap"
	"github.com/Faultbox/islegen/internal/terrain/palette"
	"github.com/Faultbox/islegen/pkg/math"
)

// DefaultJitter is the per-channel color variation used by the generator.
const DefaultJitter = 0.02

// Jitter perturbs each cell color by up to ±Max per channel. The offset is a
// pure function of Seed and the cell's global coordinate, so chunks sharing
// an edge agree and regeneration with the same seed is reproducible.
type Jitter struct {
	Max     float64
	Seed    int64
	OriginX int
	OriginY int
}

// ColorMap colors a mesh built from f: each cell takes the palette color of
// its top-left height, jittered, repeated over the cell's 6 split vertices.
// Cells are visited in the same row-major order the triangles were emitted.
func ColorMap(f *heightmap.Field, p *palette.Palette, j Jitter) ([]palette.Color, error) {
	if f.Width < 2 || f.Height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooSmall, f.Width, f.Height)
	}

	colors := make([]palette.Color, 0, (f.Width-1)*(f.Height-1)*6)
	for y := 0; y < f.Height-1; y++ {
		for x := 0; x < f.Width-1; x++ {
			c, err := p.Evaluate(f.At(x, y))
			if err != nil {
				return nil, fmt.Errorf("color cell (%d,%d): %w", x, y, err)
			}
			c = j.apply(c, j.OriginX+x, j.OriginY+y)
			for i := 0; i < 6; i++ {
				colors = append(colors, c)
			}
		}
	}
	return colors, nil
}

func (j Jitter) apply(c palette.Color, x, y int) palette.Color {
	if j.Max <= 0 {
		return c
	}
	r, g, b := c.Floats()
	return palette.FromFloat(
		math.Clamp01(r+j.offset(x, y, 0)),
		math.Clamp01(g+j.offset(x, y, 1)),
		math.Clamp01(b+j.offset(x, y, 2)),
	)
}

func (j Jitter) offset(x, y, channel int) float64 {
	return (hashToFloat(hash(x, y, channel, j.Seed))*2 - 1) * j.Max
}

func hash(x, y, z int, seed int64) uint32 {
	h := uint32(int(seed) + x*374761393 + y*668265263 + z*2147483647)
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// hashToFloat maps a hash to [0, 1).
func hashToFloat(h uint32) float64 {
	return float64(h&0xFFFFFF) / 16777216.0
}
