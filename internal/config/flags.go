package config

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagSeed      = flag.String("seed", "", "Noise seed (integer)")
	flagMapSize   = flag.Int("map-size", 0, "Chunks per side")
	flagChunkSize = flag.Int("chunk-size", 0, "Cells per chunk side")
	flagOctaves   = flag.Int("octaves", -1, "Noise octaves")
	flagScale     = flag.Float64("scale", 0, "Noise scale")
	flagFalloff   = flag.String("falloff", "", "Falloff mode (none, edge, radial)")
	flagBasis     = flag.String("basis", "", "Noise basis (perlin, simplex)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != "" {
		seed, err := strconv.ParseInt(*flagSeed, 10, 64)
		if err != nil {
			return fmt.Errorf("--seed: %w", err)
		}
		cfg.Noise.Seed = seed
	}
	if *flagMapSize > 0 {
		cfg.Terrain.MapSize = *flagMapSize
	}
	if *flagChunkSize > 0 {
		cfg.Terrain.ChunkSize = *flagChunkSize
	}
	if *flagOctaves >= 0 {
		cfg.Noise.Octaves = *flagOctaves
	}
	if *flagScale > 0 {
		cfg.Noise.Scale = *flagScale
	}
	if *flagFalloff != "" {
		cfg.Falloff.Mode = *flagFalloff
	}
	if *flagBasis != "" {
		cfg.Noise.Basis = *flagBasis
	}
	return nil
}
