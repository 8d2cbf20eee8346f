// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/islegen/pkg/math"

// BoxVertexCount is the number of vertices in one box wireframe (12 edges × 2).
const BoxVertexCount = 24

// BoxLines returns line-list vertices for the wireframe of the box lo..hi,
// expanded by padding on every side. Format: [x, y, z] per vertex.
func BoxLines(lo, hi math.Vec3, padding float32) []float32 {
	lo, hi = lo.Min(hi), hi.Max(lo)
	lo = lo.Sub(math.Vec3{X: padding, Y: padding, Z: padding})
	hi = hi.Add(math.Vec3{X: padding, Y: padding, Z: padding})

	return []float32{
		// Bottom face
		lo.X, lo.Y, lo.Z, hi.X, lo.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, lo.Y, hi.Z,
		hi.X, lo.Y, hi.Z, lo.X, lo.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, lo.Y, lo.Z,
		// Top face
		lo.X, hi.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, hi.Y, lo.Z, hi.X, hi.Y, hi.Z,
		hi.X, hi.Y, hi.Z, lo.X, hi.Y, hi.Z,
		lo.X, hi.Y, hi.Z, lo.X, hi.Y, lo.Z,
		// Vertical edges
		lo.X, lo.Y, lo.Z, lo.X, hi.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, lo.Y, hi.Z, hi.X, hi.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, hi.Y, hi.Z,
	}
}

// Box is an axis-aligned box in world space.
type Box struct {
	Lo, Hi math.Vec3
}

// BoxesLines concatenates the wireframes of every box.
func BoxesLines(boxes []Box, padding float32) []float32 {
	out := make([]float32, 0, len(boxes)*BoxVertexCount*3)
	for _, b := range boxes {
		out = append(out, BoxLines(b.Lo, b.Hi, padding)...)
	}
	return out
}
