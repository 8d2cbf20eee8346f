// Package mesh builds flat-shaded triangle meshes from heightfields.
//
// Meshes are laid out on a unit grid centred on the origin, with grid x
// running along +X and grid y along -Z. Every triangle owns its three
// vertices (a "split" mesh) so that one normal and one color per face can be
// carried on the vertices without any sharing across faces.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/islegen/internal/terrain/heightmap"
	"github.com/Faultbox/islegen/internal/terrain/palette"
	"github.com/Faultbox/islegen/pkg/math"
)

var (
	// ErrTooSmall is returned when a grid has fewer than 2 points on a side.
	ErrTooSmall = errors.New("mesh: grid needs at least 2 points per side")
	// ErrColorCount is returned by SetColors on a length mismatch.
	ErrColorCount = errors.New("mesh: color count does not match vertex count")
)

// MeshData holds a triangle mesh ready for upload.
type MeshData struct {
	Vertices []math.Vec3
	Indices  []uint32
	Colors   []palette.Color
}

// TriangleCount returns the number of triangles.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsSplit reports whether every index is unique and equal to its position.
func (m *MeshData) IsSplit() bool {
	if len(m.Indices) != len(m.Vertices) {
		return false
	}
	for i, idx := range m.Indices {
		if idx != uint32(i) {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *MeshData) Bounds() (lo, hi math.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return lo, hi
}

// SetColors attaches one color per vertex.
func (m *MeshData) SetColors(colors []palette.Color) error {
	if len(colors) != len(m.Vertices) {
		return fmt.Errorf("%w: %d colors for %d vertices", ErrColorCount, len(colors), len(m.Vertices))
	}
	m.Colors = colors
	return nil
}

// BuildFlatPlane builds a size x size split plane at height 0.
func BuildFlatPlane(size int) (*MeshData, error) {
	m, err := newGrid(size, size)
	if err != nil {
		return nil, err
	}
	m.splitVertices()
	return m, nil
}

// BuildHeightMesh builds a split mesh with one grid point per field cell,
// lifting each point to field value * mult.
func BuildHeightMesh(f *heightmap.Field, mult float64) (*MeshData, error) {
	m, err := newGrid(f.Width, f.Height)
	if err != nil {
		return nil, err
	}
	m.applyHeight(f, mult)
	m.splitVertices()
	return m, nil
}

// newGrid lays out w*h shared vertices and triangulates every cell. Cell
// diagonals alternate in a checkerboard so that no direction dominates.
func newGrid(w, h int) (*MeshData, error) {
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooSmall, w, h)
	}

	m := &MeshData{
		Vertices: make([]math.Vec3, 0, w*h),
		Indices:  make([]uint32, 0, (w-1)*(h-1)*6),
	}

	topLeftX := float32(w-1) / -2
	topLeftZ := float32(h-1) / 2
	stride := uint32(w)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, math.Vec3{X: topLeftX + float32(x), Z: topLeftZ - float32(y)})

			if x == w-1 || y == h-1 {
				continue
			}
			if (x%2 == 0) == (y%2 == 0) {
				m.addTriangle(v, v+stride+1, v+stride)
				m.addTriangle(v+stride+1, v, v+1)
			} else {
				m.addTriangle(v, v+1, v+stride)
				m.addTriangle(v+stride+1, v+stride, v+1)
			}
		}
	}
	return m, nil
}

func (m *MeshData) addTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

func (m *MeshData) applyHeight(f *heightmap.Field, mult float64) {
	for i, h := range f.Values {
		m.Vertices[i].Y = float32(h * mult)
	}
}

// splitVertices gives every index its own vertex copy.
func (m *MeshData) splitVertices() {
	split := make([]math.Vec3, len(m.Indices))
	for i, idx := range m.Indices {
		split[i] = m.Vertices[idx]
		m.Indices[i] = uint32(i)
	}
	m.Vertices = split
}

// FlatNormals returns one face normal per vertex of a split mesh.
func (m *MeshData) FlatNormals() []math.Vec3 {
	normals := make([]math.Vec3, len(m.Vertices))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a := m.Vertices[m.Indices[t]]
		b := m.Vertices[m.Indices[t+1]]
		c := m.Vertices[m.Indices[t+2]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		normals[m.Indices[t]] = n
		normals[m.Indices[t+1]] = n
		normals[m.Indices[t+2]] = n
	}
	return normals
}
