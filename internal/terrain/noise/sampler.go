package noise

import (
	"fmt"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Sampler is a 2D coherent noise source returning values in [0,1].
type Sampler interface {
	Sample(x, y float64) float64
}

// Basis names a coherent noise implementation.
type Basis string

const (
	BasisPerlin  Basis = "perlin"
	BasisSimplex Basis = "simplex"
)

// ParseBasis validates a basis name.
func ParseBasis(s string) (Basis, error) {
	switch b := Basis(strings.ToLower(strings.TrimSpace(s))); b {
	case BasisPerlin, BasisSimplex:
		return b, nil
	default:
		return "", fmt.Errorf("noise: unknown basis %q", s)
	}
}

// NewSampler builds the sampler for a basis.
func NewSampler(basis Basis, seed int64) (Sampler, error) {
	switch basis {
	case BasisPerlin:
		return NewPerlin(seed), nil
	case BasisSimplex:
		return NewSimplex(seed), nil
	default:
		return nil, fmt.Errorf("noise: unknown basis %q", basis)
	}
}

// Perlin samples classic gradient noise. Octave layering is done by Generate,
// so the underlying generator runs a single octave.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin creates a single-octave Perlin sampler.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(2, 2, 1, seed)}
}

// Sample implements Sampler.
func (s *Perlin) Sample(x, y float64) float64 {
	v := (s.p.Noise2D(x, y) + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Simplex samples OpenSimplex noise normalized to [0,1).
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex creates an OpenSimplex sampler.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

// Sample implements Sampler.
func (s *Simplex) Sample(x, y float64) float64 {
	return s.n.Eval2(x, y)
}
