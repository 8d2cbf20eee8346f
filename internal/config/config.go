// Package config handles generator configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/islegen/internal/engine/texture"
	"github.com/Faultbox/islegen/internal/terrain/chunk"
	"github.com/Faultbox/islegen/internal/terrain/falloff"
	"github.com/Faultbox/islegen/internal/terrain/noise"
	"github.com/Faultbox/islegen/internal/terrain/palette"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Config holds all generator settings.
type Config struct {
	Terrain  TerrainConfig  `yaml:"terrain"`
	Noise    NoiseConfig    `yaml:"noise"`
	Falloff  FalloffConfig  `yaml:"falloff"`
	Palette  PaletteConfig  `yaml:"palette"`
	Water    WaterConfig    `yaml:"water"`
	Lighting LightingConfig `yaml:"lighting"`
	Window   WindowConfig   `yaml:"window"`
	Preview  PreviewConfig  `yaml:"preview"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TerrainConfig holds chunk grid settings.
type TerrainConfig struct {
	MapSize          int     `yaml:"map_size"`   // Chunks per side
	ChunkSize        int     `yaml:"chunk_size"` // Cells per chunk side
	HeightMultiplier float64 `yaml:"height_multiplier"`
	Material         string  `yaml:"material"`
	Workers          int     `yaml:"workers"` // 0 = GOMAXPROCS
}

// NoiseConfig holds heightfield noise settings.
type NoiseConfig struct {
	Basis       string  `yaml:"basis"` // perlin | simplex
	Seed        int64   `yaml:"seed"`
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	OffsetX     float64 `yaml:"offset_x"`
	OffsetY     float64 `yaml:"offset_y"`
}

// FalloffConfig selects the island mask.
type FalloffConfig struct {
	Mode string `yaml:"mode"` // none | edge | radial
}

// PaletteConfig holds the height color bands.
type PaletteConfig struct {
	Bands  []palette.Band `yaml:"bands"`
	Jitter float64        `yaml:"jitter"` // Max per-channel color variation
}

// WaterConfig holds the water plane settings.
type WaterConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Height     float64       `yaml:"height"`
	Resolution int           `yaml:"resolution"`
	Color      palette.Color `yaml:"color"`
	Alpha      float32       `yaml:"alpha"`
}

// LightingConfig holds the viewer's directional light.
type LightingConfig struct {
	SunLongitude float64 `yaml:"sun_longitude"` // Degrees around Y
	SunLatitude  float64 `yaml:"sun_latitude"`  // Degrees above the horizon
	Ambient      float32 `yaml:"ambient"`
}

// WindowConfig holds viewer display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// PreviewConfig holds headless texture output settings.
type PreviewConfig struct {
	OutputDir string `yaml:"output_dir"`
	Format    string `yaml:"format"` // png | bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			MapSize:          3,
			ChunkSize:        24,
			HeightMultiplier: 12,
			Material:         chunk.MaterialTerrain,
		},
		Noise: NoiseConfig{
			Basis:       string(noise.BasisPerlin),
			Scale:       40,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2,
		},
		Falloff: FalloffConfig{
			Mode: string(falloff.ModeRadial),
		},
		Palette: PaletteConfig{
			Bands:  palette.DefaultBands(),
			Jitter: 0.02,
		},
		Water: WaterConfig{
			Enabled:    true,
			Height:     1.5,
			Resolution: 8,
			Color:      palette.Color{R: 0x3A, G: 0x7B, B: 0xC8},
			Alpha:      0.6,
		},
		Lighting: LightingConfig{
			SunLongitude: 35,
			SunLatitude:  55,
			Ambient:      0.35,
		},
		Window: WindowConfig{
			Title:  "islegen",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Preview: PreviewConfig{
			OutputDir: "preview",
			Format:    texture.FormatPNG,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Layout returns the chunk grid layout.
func (c *Config) Layout() chunk.Layout {
	return chunk.Layout{MapSize: c.Terrain.MapSize, ChunkSize: c.Terrain.ChunkSize}
}

// NoiseParams returns noise parameters for a field of the given size.
func (c *Config) NoiseParams(size int) noise.Params {
	return noise.Params{
		Width:       size,
		Height:      size,
		Seed:        c.Noise.Seed,
		Scale:       c.Noise.Scale,
		Octaves:     c.Noise.Octaves,
		Persistence: c.Noise.Persistence,
		Lacunarity:  c.Noise.Lacunarity,
		Offset:      noise.Offset{X: c.Noise.OffsetX, Y: c.Noise.OffsetY},
	}
}

// BuildPalette returns a palette of the configured bands.
func (c *Config) BuildPalette() (*palette.Palette, error) {
	return palette.New(c.Palette.Bands...)
}

// Normalize clamps degenerate values to usable ones and describes each
// adjustment made.
func (c *Config) Normalize() []string {
	var changes []string
	clampMin := func(name string, v *int, min int) {
		if *v < min {
			changes = append(changes, fmt.Sprintf("%s %d raised to %d", name, *v, min))
			*v = min
		}
	}

	clampMin("terrain.map_size", &c.Terrain.MapSize, 1)
	clampMin("terrain.chunk_size", &c.Terrain.ChunkSize, 1)
	clampMin("terrain.workers", &c.Terrain.Workers, 0)
	clampMin("noise.octaves", &c.Noise.Octaves, 0)
	clampMin("water.resolution", &c.Water.Resolution, 2)

	if c.Noise.Scale <= 0 {
		changes = append(changes, fmt.Sprintf("noise.scale %g raised to %g", c.Noise.Scale, noise.MinScale))
		c.Noise.Scale = noise.MinScale
	}
	if c.Noise.Lacunarity < 1 {
		changes = append(changes, fmt.Sprintf("noise.lacunarity %g raised to 1", c.Noise.Lacunarity))
		c.Noise.Lacunarity = 1
	}
	if c.Noise.Persistence < 0 || c.Noise.Persistence > 1 {
		p := min(max(c.Noise.Persistence, 0), 1)
		changes = append(changes, fmt.Sprintf("noise.persistence %g clamped to %g", c.Noise.Persistence, p))
		c.Noise.Persistence = p
	}
	if c.Palette.Jitter < 0 {
		changes = append(changes, fmt.Sprintf("palette.jitter %g raised to 0", c.Palette.Jitter))
		c.Palette.Jitter = 0
	}
	if c.Lighting.Ambient < 0 || c.Lighting.Ambient > 1 {
		a := min(max(c.Lighting.Ambient, 0), 1)
		changes = append(changes, fmt.Sprintf("lighting.ambient %g clamped to %g", c.Lighting.Ambient, a))
		c.Lighting.Ambient = a
	}
	return changes
}

// Validate reports settings that cannot be clamped into shape.
func (c *Config) Validate() error {
	if _, err := noise.ParseBasis(c.Noise.Basis); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := falloff.ParseMode(c.Falloff.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Layout().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Terrain.Material != chunk.MaterialTerrain {
		return fmt.Errorf("%w: unknown material %q", ErrInvalid, c.Terrain.Material)
	}
	if len(c.Palette.Bands) == 0 {
		return fmt.Errorf("%w: palette has no bands", ErrInvalid)
	}
	if _, err := c.BuildPalette(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if _, err := texture.ParseFormat(c.Preview.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
