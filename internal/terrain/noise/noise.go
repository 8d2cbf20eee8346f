// Package noise builds normalized heightfields from layered coherent noise.
package noise

import (
	"errors"
	"fmt"
	stdmath "math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/islegen/internal/logger"
	"github.com/Faultbox/islegen/internal/terrain/heightmap"
	"github.com/Faultbox/islegen/pkg/math"
)

// MinScale replaces a non-positive scale.
const MinScale = 0.0001

// offsetRange bounds each random octave offset component to [-offsetRange, offsetRange).
const offsetRange = 100000

// ErrInvalidSize is returned for a non-positive width or height.
var ErrInvalidSize = errors.New("noise: width and height must be positive")

// Offset is a 2D sampling offset in noise space.
type Offset struct {
	X, Y float64
}

// Params controls a noise field.
type Params struct {
	Width, Height int
	Seed          int64
	Scale         float64
	Octaves       int
	Persistence   float64
	Lacunarity    float64
	Offset        Offset
}

// OctaveOffsets derives one offset per octave from seed. The caller's offset
// is added on X and subtracted on Y.
func OctaveOffsets(seed int64, octaves int, offset Offset) []Offset {
	if octaves <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	out := make([]Offset, octaves)
	for i := range out {
		ox := float64(rng.Intn(2*offsetRange)-offsetRange) + offset.X
		oy := float64(rng.Intn(2*offsetRange)-offsetRange) - offset.Y
		out[i] = Offset{X: ox, Y: oy}
	}
	return out
}

// Generate samples a Width x Height field and normalizes it to [0,1] against
// the global minimum and maximum. A field without variation (for example zero
// octaves) comes back all zeros.
func Generate(p Params, s Sampler) (*heightmap.Field, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, p.Width, p.Height)
	}
	field, err := heightmap.New(p.Width, p.Height)
	if err != nil {
		return nil, err
	}

	scale := p.Scale
	if scale <= 0 {
		scale = MinScale
	}
	offsets := OctaveOffsets(p.Seed, p.Octaves, p.Offset)

	halfW := float64(p.Width) / 2
	halfH := float64(p.Height) / 2

	lo := stdmath.Inf(1)
	hi := stdmath.Inf(-1)

	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			amplitude := 1.0
			frequency := 1.0
			height := 0.0

			for _, o := range offsets {
				sx := (float64(x) - halfW + o.X) / scale * frequency
				sy := (float64(y) - halfH + o.Y) / scale * frequency

				height += (s.Sample(sx, sy)*2 - 1) * amplitude

				amplitude *= p.Persistence
				frequency *= p.Lacunarity
			}

			if height < lo {
				lo = height
			}
			if height > hi {
				hi = height
			}
			field.Set(x, y, height)
		}
	}

	for i, v := range field.Values {
		field.Values[i] = math.InverseLerp(lo, hi, v)
	}

	logger.Named("noise").Debug("noise field generated",
		zap.Int("width", p.Width),
		zap.Int("height", p.Height),
		zap.Int64("seed", p.Seed),
		zap.Int("octaves", len(offsets)),
		zap.Float64("rawMin", lo),
		zap.Float64("rawMax", hi),
	)

	return field, nil
}
