package chunk

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/islegen/internal/logger"
	"github.com/Faultbox/islegen/internal/terrain/heightmap"
	"github.com/Faultbox/islegen/internal/terrain/mesh"
	"github.com/Faultbox/islegen/internal/terrain/palette"
)

// ErrFieldSize is returned when the world field does not match the layout.
var ErrFieldSize = errors.New("chunk: field size does not match layout")

// Options controls one generation pass.
type Options struct {
	Layout           Layout
	HeightMultiplier float64
	Palette          *palette.Palette
	// Jitter is the maximum per-channel color variation. Seed keys it.
	Jitter float64
	Seed   int64
	// Workers bounds concurrent chunk builds. 0 means GOMAXPROCS.
	Workers int
}

// Stats summarizes a generation pass.
type Stats struct {
	Created   int
	Updated   int
	Destroyed int
	Triangles int
	Elapsed   time.Duration
}

// Grid owns the registry of resident chunks for one Host.
type Grid struct {
	mu       sync.Mutex
	host     Host
	material string
	chunks   map[Coord]*Chunk
	log      *zap.Logger
}

// NewGrid returns an empty grid realizing chunks on host with material.
func NewGrid(host Host, material string) *Grid {
	return &Grid{
		host:     host,
		material: material,
		chunks:   make(map[Coord]*Chunk),
		log:      logger.Named("chunk"),
	}
}

type built struct {
	x, y int
	mesh *mesh.MeshData
}

// Generate meshes every chunk of field and synchronizes the host with the
// result. Chunk meshes are built concurrently over the read-only field; the
// registry and host are only touched after all builds finish. If the
// registry holds more chunks than the layout allows, every resident chunk
// is destroyed first and the grid is rebuilt from scratch.
//
// Calls are serialized. A failed build leaves the registry untouched. If the
// host fails a Create or Update, chunks created earlier in the same pass are
// destroyed again; chunks already updated keep their new mesh.
func (g *Grid) Generate(ctx context.Context, field *heightmap.Field, opts Options) (Stats, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := time.Now()
	var stats Stats

	l := opts.Layout
	if err := l.Validate(); err != nil {
		return stats, err
	}
	if ws := l.WorldSize(); field.Width != ws || field.Height != ws {
		return stats, fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFieldSize, field.Width, field.Height, ws, ws)
	}
	pal := opts.Palette
	if pal == nil {
		pal = palette.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]built, l.Count())
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for y := 0; y < l.MapSize; y++ {
		for x := 0; x < l.MapSize; x++ {
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				m, err := buildChunk(field, l, x, y, pal, opts)
				if err != nil {
					return fmt.Errorf("chunk %s: %w", l.CoordAt(x, y), err)
				}
				results[y*l.MapSize+x] = built{x: x, y: y, mesh: m}
				g.log.Debug("chunk built",
					zap.Int("x", x),
					zap.Int("y", y),
					zap.Int("triangles", m.TriangleCount()))
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return stats, err
	}

	if len(g.chunks) > l.Count() {
		n, err := g.clear()
		stats.Destroyed = n
		if err != nil {
			return stats, err
		}
	}

	var created []*Chunk
	for _, r := range results {
		coord := l.CoordAt(r.x, r.y)
		pos := l.PositionAt(r.x, r.y)
		stats.Triangles += r.mesh.TriangleCount()

		if c, ok := g.chunks[coord]; ok {
			c.Mesh = r.mesh
			c.Position = pos
			if err := g.host.Update(c); err != nil {
				err = fmt.Errorf("update chunk %s: %w", coord, err)
				return g.rollback(stats, created, err)
			}
			stats.Updated++
			continue
		}

		c := &Chunk{Coord: coord, Position: pos, Mesh: r.mesh}
		if err := g.host.Create(c, g.material); err != nil {
			err = fmt.Errorf("create chunk %s: %w", coord, err)
			return g.rollback(stats, created, err)
		}
		g.chunks[coord] = c
		created = append(created, c)
		stats.Created++
	}

	stats.Elapsed = time.Since(start)
	g.log.Info("grid generated",
		zap.Int("mapSize", l.MapSize),
		zap.Int("chunkSize", l.ChunkSize),
		zap.Int("created", stats.Created),
		zap.Int("updated", stats.Updated),
		zap.Int("destroyed", stats.Destroyed),
		zap.Int("triangles", stats.Triangles),
		zap.Duration("elapsed", stats.Elapsed))
	return stats, nil
}

// rollback destroys the chunks created earlier in a failed pass and drops
// them from the registry. Destroy failures are appended to cause.
func (g *Grid) rollback(stats Stats, created []*Chunk, cause error) (Stats, error) {
	errs := cause
	for _, c := range created {
		if err := g.host.Destroy(c); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("destroy chunk %s: %w", c.Coord, err))
		} else {
			stats.Destroyed++
		}
		delete(g.chunks, c.Coord)
	}
	stats.Created = 0
	g.log.Warn("grid pass rolled back",
		zap.Int("rolledBack", len(created)),
		zap.Error(cause))
	return stats, errs
}

func buildChunk(field *heightmap.Field, l Layout, x, y int, pal *palette.Palette, opts Options) (*mesh.MeshData, error) {
	sx, sy, ex, ey := l.Bounds(x, y)
	sub, err := heightmap.Extract(field, sx, sy, ex, ey)
	if err != nil {
		return nil, err
	}

	m, err := mesh.BuildHeightMesh(sub, opts.HeightMultiplier)
	if err != nil {
		return nil, err
	}
	colors, err := mesh.ColorMap(sub, pal, mesh.Jitter{
		Max:     opts.Jitter,
		Seed:    opts.Seed,
		OriginX: sx,
		OriginY: sy,
	})
	if err != nil {
		return nil, err
	}
	if err := m.SetColors(colors); err != nil {
		return nil, err
	}
	return m, nil
}

// Len returns the number of resident chunks.
func (g *Grid) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.chunks)
}

// Get returns the resident chunk at c.
func (g *Grid) Get(c Coord) (*Chunk, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.chunks[c]
	return ch, ok
}

// Chunks returns resident chunks ordered top row first, left to right.
func (g *Grid) Chunks() []*Chunk {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]*Chunk, 0, len(g.chunks))
	for _, c := range g.chunks {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coord.Y != out[j].Coord.Y {
			return out[i].Coord.Y > out[j].Coord.Y
		}
		return out[i].Coord.X < out[j].Coord.X
	})
	return out
}

// Clear destroys every resident chunk.
func (g *Grid) Clear() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clear()
}

// clear destroys every chunk even when some Destroy calls fail, and empties
// the registry either way.
func (g *Grid) clear() (int, error) {
	var errs error
	n := 0
	for coord, c := range g.chunks {
		if err := g.host.Destroy(c); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("destroy chunk %s: %w", coord, err))
			continue
		}
		n++
	}
	if n > 0 {
		g.log.Debug("grid cleared", zap.Int("destroyed", n))
	}
	g.chunks = make(map[Coord]*Chunk)
	return n, errs
}
