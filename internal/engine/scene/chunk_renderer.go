// Package scene uploads generated terrain to OpenGL and draws it.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/islegen/internal/engine/debug"
	"github.com/Faultbox/islegen/internal/engine/scene/shaders"
	"github.com/Faultbox/islegen/internal/engine/shader"
	"github.com/Faultbox/islegen/internal/logger"
	"github.com/Faultbox/islegen/internal/terrain/chunk"
	"github.com/Faultbox/islegen/internal/terrain/mesh"
	"github.com/Faultbox/islegen/pkg/math"
)

// MaterialTerrain is the flat-shaded vertex color material.
const MaterialTerrain = chunk.MaterialTerrain

// gpuChunk is one chunk's buffers.
type gpuChunk struct {
	vao      uint32
	vbo      uint32
	count    int32
	position math.Vec3
	program  *shader.Program
	lo, hi   math.Vec3
}

// ChunkRenderer realizes terrain chunks as vertex arrays. It implements
// chunk.Host and must be driven from the thread owning the GL context.
type ChunkRenderer struct {
	materials map[string]*shader.Program
	chunks    map[chunk.Coord]*gpuChunk
	log       *zap.Logger

	LightDir math.Vec3
	Ambient  float32
}

var _ chunk.Host = (*ChunkRenderer)(nil)

// NewChunkRenderer compiles the terrain material.
func NewChunkRenderer() (*ChunkRenderer, error) {
	program, err := shader.NewProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	return &ChunkRenderer{
		materials: map[string]*shader.Program{MaterialTerrain: program},
		chunks:    make(map[chunk.Coord]*gpuChunk),
		log:       logger.Named("scene"),
		LightDir:  math.Vec3{X: -0.4, Y: -1, Z: -0.3}.Normalize(),
		Ambient:   0.35,
	}, nil
}

// Create uploads a new chunk.
func (r *ChunkRenderer) Create(c *chunk.Chunk, material string) error {
	program, ok := r.materials[material]
	if !ok {
		return fmt.Errorf("scene: unknown material %q", material)
	}
	if _, exists := r.chunks[c.Coord]; exists {
		return fmt.Errorf("scene: chunk %s already exists", c.Coord)
	}

	gc := &gpuChunk{program: program}
	gl.GenVertexArrays(1, &gc.vao)
	gl.BindVertexArray(gc.vao)

	gl.GenBuffers(1, &gc.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gc.vbo)

	stride := int32(mesh.FloatsPerVertex * 4)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	// Color (location 2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	r.chunks[c.Coord] = gc
	r.upload(gc, c)
	r.log.Debug("chunk uploaded",
		zap.Stringer("coord", c.Coord),
		zap.Uint32("vao", gc.vao),
		zap.Uint32("vbo", gc.vbo))
	return nil
}

// Update replaces a chunk's mesh and position in place.
func (r *ChunkRenderer) Update(c *chunk.Chunk) error {
	gc, ok := r.chunks[c.Coord]
	if !ok {
		return fmt.Errorf("scene: chunk %s not found", c.Coord)
	}
	r.upload(gc, c)
	return nil
}

// Destroy releases a chunk's buffers.
func (r *ChunkRenderer) Destroy(c *chunk.Chunk) error {
	gc, ok := r.chunks[c.Coord]
	if !ok {
		return fmt.Errorf("scene: chunk %s not found", c.Coord)
	}
	gl.DeleteVertexArrays(1, &gc.vao)
	gl.DeleteBuffers(1, &gc.vbo)
	delete(r.chunks, c.Coord)
	return nil
}

func (r *ChunkRenderer) upload(gc *gpuChunk, c *chunk.Chunk) {
	data := c.Mesh.Interleaved()
	gc.count = int32(len(c.Mesh.Vertices))
	gc.position = c.Position
	lo, hi := c.Mesh.Bounds()
	gc.lo, gc.hi = lo.Add(c.Position), hi.Add(c.Position)

	gl.BindBuffer(gl.ARRAY_BUFFER, gc.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Len returns the number of uploaded chunks.
func (r *ChunkRenderer) Len() int {
	return len(r.chunks)
}

// Bounds returns the world-space bounding box of every chunk.
func (r *ChunkRenderer) Bounds() (lo, hi math.Vec3, ok bool) {
	for _, gc := range r.chunks {
		if !ok {
			lo, hi, ok = gc.lo, gc.hi, true
			continue
		}
		lo = lo.Min(gc.lo)
		hi = hi.Max(gc.hi)
	}
	return lo, hi, ok
}

// Boxes returns the world-space bounding box of each chunk.
func (r *ChunkRenderer) Boxes() []debug.Box {
	boxes := make([]debug.Box, 0, len(r.chunks))
	for _, gc := range r.chunks {
		boxes = append(boxes, debug.Box{Lo: gc.lo, Hi: gc.hi})
	}
	return boxes
}

// Render draws every chunk.
func (r *ChunkRenderer) Render(viewProj math.Mat4) {
	var bound *shader.Program
	for _, gc := range r.chunks {
		if gc.count == 0 {
			continue
		}
		if gc.program != bound {
			bound = gc.program
			bound.Use()
			bound.SetMat4("uViewProj", viewProj)
			bound.SetVec3("uLightDir", r.LightDir)
			bound.SetFloat("uAmbient", r.Ambient)
		}
		bound.SetMat4("uModel", math.Translate(gc.position.X, gc.position.Y, gc.position.Z))

		gl.BindVertexArray(gc.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, gc.count)
	}
	gl.BindVertexArray(0)
}

// Close releases every chunk and the materials.
func (r *ChunkRenderer) Close() {
	for coord, gc := range r.chunks {
		gl.DeleteVertexArrays(1, &gc.vao)
		gl.DeleteBuffers(1, &gc.vbo)
		delete(r.chunks, coord)
	}
	for _, p := range r.materials {
		p.Delete()
	}
}
