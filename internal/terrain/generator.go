// Package terrain runs the island pipeline: layered noise, falloff mask,
// chunk meshing and coloring.
package terrain

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/islegen/internal/config"
	"github.com/Faultbox/islegen/internal/logger"
	"github.com/Faultbox/islegen/internal/terrain/chunk"
	"github.com/Faultbox/islegen/internal/terrain/falloff"
	"github.com/Faultbox/islegen/internal/terrain/heightmap"
	"github.com/Faultbox/islegen/internal/terrain/noise"
	"github.com/Faultbox/islegen/internal/terrain/palette"
)

// Result holds the intermediate and final fields of one generation pass.
type Result struct {
	Layout  chunk.Layout
	Noise   *heightmap.Field
	Falloff *heightmap.Field
	Heights *heightmap.Field
	Palette *palette.Palette
	Stats   chunk.Stats
}

// Generator owns the chunk grid for one host and regenerates it on demand.
type Generator struct {
	cfg  *config.Config
	grid *chunk.Grid
	log  *zap.Logger
	last *Result
}

// New returns a generator for cfg. The config is normalized and validated;
// each clamped value is logged as a warning.
func New(cfg *config.Config, host chunk.Host) (*Generator, error) {
	log := logger.Named("terrain")
	for _, change := range cfg.Normalize() {
		log.Warn("config adjusted", zap.String("change", change))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg:  cfg,
		grid: chunk.NewGrid(host, cfg.Terrain.Material),
		log:  log,
	}, nil
}

// Config returns the live configuration.
func (g *Generator) Config() *config.Config {
	return g.cfg
}

// Grid returns the chunk registry.
func (g *Generator) Grid() *chunk.Grid {
	return g.grid
}

// Last returns the most recent successful result, or nil.
func (g *Generator) Last() *Result {
	return g.last
}

// Generate runs the full pipeline and synchronizes the host.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	layout := g.cfg.Layout()
	size := layout.WorldSize()

	basis, err := noise.ParseBasis(g.cfg.Noise.Basis)
	if err != nil {
		return nil, err
	}
	sampler, err := noise.NewSampler(basis, g.cfg.Noise.Seed)
	if err != nil {
		return nil, err
	}
	noiseField, err := noise.Generate(g.cfg.NoiseParams(size), sampler)
	if err != nil {
		return nil, fmt.Errorf("noise: %w", err)
	}

	mode, err := falloff.ParseMode(g.cfg.Falloff.Mode)
	if err != nil {
		return nil, err
	}
	mask, err := falloff.Generate(mode, size)
	if err != nil {
		return nil, fmt.Errorf("falloff: %w", err)
	}

	heights, err := heightmap.Subtract(noiseField, mask)
	if err != nil {
		g.log.Warn("falloff does not match noise field", zap.Error(err))
		return nil, err
	}

	pal, err := g.cfg.BuildPalette()
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}

	stats, err := g.grid.Generate(ctx, heights, chunk.Options{
		Layout:           layout,
		HeightMultiplier: g.cfg.Terrain.HeightMultiplier,
		Palette:          pal,
		Jitter:           g.cfg.Palette.Jitter,
		Seed:             g.cfg.Noise.Seed,
		Workers:          g.cfg.Terrain.Workers,
	})
	if err != nil {
		g.log.Warn("chunk generation failed", zap.Error(err))
		return nil, err
	}

	g.last = &Result{
		Layout:  layout,
		Noise:   noiseField,
		Falloff: mask,
		Heights: heights,
		Palette: pal,
		Stats:   stats,
	}
	g.log.Info("terrain generated",
		zap.Int64("seed", g.cfg.Noise.Seed),
		zap.String("basis", string(basis)),
		zap.String("falloff", string(mode)),
		zap.Int("worldSize", size),
		zap.Int("chunks", g.grid.Len()))
	return g.last, nil
}

// Reseed sets a new noise seed for the next Generate.
func (g *Generator) Reseed(seed int64) {
	g.cfg.Noise.Seed = seed
}

// SetFalloff selects the falloff mode for the next Generate.
func (g *Generator) SetFalloff(mode falloff.Mode) {
	g.cfg.Falloff.Mode = string(mode)
}

// SetMapSize changes the chunk grid extent for the next Generate. Sizes
// below 1 are raised to 1.
func (g *Generator) SetMapSize(n int) {
	g.cfg.Terrain.MapSize = max(n, 1)
}

// Clear destroys every resident chunk.
func (g *Generator) Clear() error {
	_, err := g.grid.Clear()
	return err
}
