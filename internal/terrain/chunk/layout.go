// Package chunk splits a world heightfield into a square grid of chunks,
// meshes each chunk and hands the results to a Host that realizes them.
package chunk

import (
	"errors"
	"fmt"

	"github.com/Faultbox/islegen/pkg/math"
)

// ErrInvalidLayout is returned for a map or chunk size below 1.
var ErrInvalidLayout = errors.New("chunk: map size and chunk size must be at least 1")

// Coord is a chunk's grid coordinate, centred on the origin with Y up.
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Layout describes a MapSize x MapSize grid of chunks with ChunkSize cells
// per edge. Neighbouring chunks share their boundary row of samples.
type Layout struct {
	MapSize   int
	ChunkSize int
}

// Validate checks both sizes are positive.
func (l Layout) Validate() error {
	if l.MapSize < 1 || l.ChunkSize < 1 {
		return fmt.Errorf("%w: map %d, chunk %d", ErrInvalidLayout, l.MapSize, l.ChunkSize)
	}
	return nil
}

// WorldSize is the edge length in samples of the field covering every chunk.
func (l Layout) WorldSize() int {
	return l.MapSize*l.ChunkSize + 1
}

// Count is the number of chunks in a full grid.
func (l Layout) Count() int {
	return l.MapSize * l.MapSize
}

// CoordAt maps the row-major grid index (x, y) to a centred coordinate.
func (l Layout) CoordAt(x, y int) Coord {
	half := l.MapSize / 2
	return Coord{X: -half + x, Y: half - y}
}

// PositionAt returns the world position of the chunk at grid index (x, y).
// Chunk meshes are centred on their own origin so the grid as a whole is
// centred on the world origin.
func (l Layout) PositionAt(x, y int) math.Vec3 {
	cs := float32(l.ChunkSize)
	offset := float32(l.MapSize)/2 - 0.5
	topLeftX := offset * -cs
	topLeftZ := offset * cs
	return math.Vec3{
		X: topLeftX + float32(x)*cs,
		Z: topLeftZ - float32(y)*cs,
	}
}

// Bounds returns the inclusive sample range of the chunk at (x, y).
func (l Layout) Bounds(x, y int) (startX, startY, endX, endY int) {
	startX = x * l.ChunkSize
	startY = y * l.ChunkSize
	return startX, startY, startX + l.ChunkSize, startY + l.ChunkSize
}

// Extent returns the world-space half width of the whole grid.
func (l Layout) Extent() float32 {
	return float32(l.MapSize*l.ChunkSize) / 2
}
