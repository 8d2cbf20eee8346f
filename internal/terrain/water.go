package terrain

import (
	"github.com/Faultbox/islegen/internal/config"
	"github.com/Faultbox/islegen/internal/terrain/chunk"
	"github.com/Faultbox/islegen/internal/terrain/mesh"
	"github.com/Faultbox/islegen/pkg/math"
)

// Water is a flat plane covering the terrain at a fixed height.
type Water struct {
	Mesh     *mesh.MeshData
	Position math.Vec3
	Scale    math.Vec3
	Color    [4]float32
}

// BuildWater builds a Resolution x Resolution plane scaled so its grid spans
// the terrain, raised to the configured height.
func BuildWater(cfg config.WaterConfig, layout chunk.Layout) (*Water, error) {
	m, err := mesh.BuildFlatPlane(cfg.Resolution)
	if err != nil {
		return nil, err
	}

	terrainSize := float32(layout.MapSize * layout.ChunkSize)
	s := terrainSize / float32(cfg.Resolution)
	r, g, b := cfg.Color.Floats()

	return &Water{
		Mesh:     m,
		Position: math.Vec3{Y: float32(cfg.Height)},
		Scale:    math.Vec3{X: s, Y: 1, Z: s},
		Color:    [4]float32{float32(r), float32(g), float32(b), cfg.Alpha},
	}, nil
}
