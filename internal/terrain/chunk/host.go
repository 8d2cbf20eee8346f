package chunk

import (
	"sync"

	"github.com/Faultbox/islegen/internal/terrain/mesh"
	"github.com/Faultbox/islegen/pkg/math"
)

// MaterialTerrain is the flat-shaded vertex color material. It is the only
// material hosts are required to provide.
const MaterialTerrain = "terrain"

// Chunk is one meshed tile of the world.
type Chunk struct {
	Coord    Coord
	Position math.Vec3
	Mesh     *mesh.MeshData
}

// Host realizes chunks in some scene. Create is called once per coordinate,
// Update whenever a resident chunk gets a new mesh or position, and Destroy
// on teardown. Calls come from a single goroutine.
type Host interface {
	Create(c *Chunk, material string) error
	Update(c *Chunk) error
	Destroy(c *Chunk) error
}

// MemoryHost is a Host that keeps chunks in a map. It backs headless runs.
type MemoryHost struct {
	mu        sync.Mutex
	chunks    map[Coord]*Chunk
	materials map[Coord]string

	Created   int
	Updated   int
	Destroyed int
}

// NewMemoryHost returns an empty host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		chunks:    make(map[Coord]*Chunk),
		materials: make(map[Coord]string),
	}
}

func (h *MemoryHost) Create(c *Chunk, material string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.chunks[c.Coord] = c
	h.materials[c.Coord] = material
	h.Created++
	return nil
}

func (h *MemoryHost) Update(c *Chunk) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.chunks[c.Coord] = c
	h.Updated++
	return nil
}

func (h *MemoryHost) Destroy(c *Chunk) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.chunks, c.Coord)
	delete(h.materials, c.Coord)
	h.Destroyed++
	return nil
}

// Len returns the number of live chunks.
func (h *MemoryHost) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.chunks)
}

// Get returns the live chunk at c and its material.
func (h *MemoryHost) Get(c Coord) (*Chunk, string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.chunks[c]
	return ch, h.materials[c], ok
}
