// islegen-map generates an island headlessly and writes preview images of
// the noise, falloff, height and color maps.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/islegen/internal/config"
	"github.com/Faultbox/islegen/internal/engine/texture"
	"github.com/Faultbox/islegen/internal/logger"
	"github.com/Faultbox/islegen/internal/terrain"
	"github.com/Faultbox/islegen/internal/terrain/chunk"
)

var (
	flagOutput = flag.String("output", "", "Output directory (overrides preview.output_dir)")
	flagFormat = flag.String("format", "", "Image format: png or bmp (overrides preview.format)")
	flagSave   = flag.Bool("save-config", false, "Write the effective config next to the images")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *flagOutput != "" {
		cfg.Preview.OutputDir = *flagOutput
	}
	if *flagFormat != "" {
		cfg.Preview.Format = *flagFormat
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	host := chunk.NewMemoryHost()
	gen, err := terrain.New(cfg, host)
	if err != nil {
		return err
	}

	res, err := gen.Generate(context.Background())
	if err != nil {
		return err
	}

	format, err := texture.ParseFormat(cfg.Preview.Format)
	if err != nil {
		return err
	}

	colors, err := texture.FromColors(res.Heights, res.Palette)
	if err != nil {
		return err
	}
	images := []struct {
		name string
		img  image.Image
	}{
		{"noise", texture.FromField(res.Noise)},
		{"falloff", texture.FromField(res.Falloff)},
		{"height", texture.FromField(res.Heights)},
		{"color", colors},
	}

	for _, out := range images {
		path := filepath.Join(cfg.Preview.OutputDir, out.name+"."+format)
		if err := texture.Save(path, out.img); err != nil {
			return fmt.Errorf("write %s: %w", out.name, err)
		}
		logger.Info("image written", zap.String("path", path))
	}

	if *flagSave {
		path := filepath.Join(cfg.Preview.OutputDir, config.FileName)
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		logger.Info("config written", zap.String("path", path))
	}

	fmt.Printf("seed %d, %dx%d chunks of %d, world %d: %d created, %d triangles in %s\n",
		cfg.Noise.Seed, cfg.Terrain.MapSize, cfg.Terrain.MapSize, cfg.Terrain.ChunkSize,
		res.Layout.WorldSize(), res.Stats.Created, res.Stats.Triangles, res.Stats.Elapsed)
	return nil
}
