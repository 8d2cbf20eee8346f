package terrain

import (
	"context"
	"errors"
	"testing"

	"github.com/Faultbox/islegen/internal/config"
	"github.com/Faultbox/islegen/internal/terrain/chunk"
	"github.com/Faultbox/islegen/internal/terrain/falloff"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Terrain.MapSize = 2
	cfg.Terrain.ChunkSize = 8
	cfg.Noise.Scale = 7.3
	cfg.Noise.Seed = 11
	return cfg
}

func TestGeneratePipeline(t *testing.T) {
	host := chunk.NewMemoryHost()
	g, err := New(smallConfig(), host)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	res, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Heights.Width != 17 || res.Noise.Width != 17 || res.Falloff.Width != 17 {
		t.Errorf("field sizes = %d/%d/%d, want 17", res.Heights.Width, res.Noise.Width, res.Falloff.Width)
	}
	if res.Stats.Created != 4 || host.Len() != 4 {
		t.Errorf("created %d chunks, host has %d, want 4", res.Stats.Created, host.Len())
	}
	if g.Last() != res {
		t.Error("Last() should return the latest result")
	}

	for i, v := range res.Heights.Values {
		want := res.Noise.Values[i] - res.Falloff.Values[i]
		if want < 0 {
			want = 0
		}
		if v != want {
			t.Fatalf("height %d = %v, want %v", i, v, want)
		}
	}

	// Radial falloff suppresses the corners completely.
	if v := res.Heights.At(0, 0); v != 0 {
		t.Errorf("corner height = %v, want 0", v)
	}
}

func TestGenerateReproducible(t *testing.T) {
	a, _ := New(smallConfig(), chunk.NewMemoryHost())
	b, _ := New(smallConfig(), chunk.NewMemoryHost())

	ra, err := a.Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	rb, err := b.Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for i := range ra.Heights.Values {
		if ra.Heights.Values[i] != rb.Heights.Values[i] {
			t.Fatalf("height %d differs", i)
		}
	}

	ca, _ := a.Grid().Get(chunk.Coord{X: 0, Y: 0})
	cb, _ := b.Grid().Get(chunk.Coord{X: 0, Y: 0})
	for i := range ca.Mesh.Colors {
		if ca.Mesh.Colors[i] != cb.Mesh.Colors[i] {
			t.Fatalf("color %d differs between identical runs", i)
		}
	}
}

func TestReseedUpdatesInPlace(t *testing.T) {
	host := chunk.NewMemoryHost()
	g, _ := New(smallConfig(), host)
	first, _ := g.Generate(context.Background())
	before := first.Heights.Clone()

	g.Reseed(12)
	second, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate after reseed failed: %v", err)
	}
	if second.Stats.Updated != 4 || second.Stats.Created != 0 {
		t.Errorf("reseed stats = %+v, want 4 updates", second.Stats)
	}

	same := true
	for i := range before.Values {
		if before.Values[i] != second.Heights.Values[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("reseed produced identical heights")
	}
}

func TestSetMapSizeShrinks(t *testing.T) {
	host := chunk.NewMemoryHost()
	cfg := smallConfig()
	cfg.Terrain.MapSize = 3
	g, _ := New(cfg, host)
	if _, err := g.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}

	g.SetMapSize(1)
	res, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate after shrink failed: %v", err)
	}
	if res.Stats.Destroyed != 9 || res.Stats.Created != 1 || host.Len() != 1 {
		t.Errorf("shrink stats = %+v, host %d", res.Stats, host.Len())
	}

	g.SetMapSize(-4)
	if g.Config().Terrain.MapSize != 1 {
		t.Errorf("map size = %d, want 1", g.Config().Terrain.MapSize)
	}
}

func TestSetFalloffNone(t *testing.T) {
	g, _ := New(smallConfig(), chunk.NewMemoryHost())
	g.SetFalloff(falloff.ModeNone)
	res, err := g.Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := res.Heights.MinMax()
	if lo != 0 || hi != 1 {
		t.Errorf("without falloff heights span [%v, %v], want [0, 1]", lo, hi)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Noise.Basis = "worley"
	if _, err := New(cfg, chunk.NewMemoryHost()); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New error = %v, want config.ErrInvalid", err)
	}
}

func TestNewRejectsUnknownMaterial(t *testing.T) {
	cfg := smallConfig()
	cfg.Terrain.Material = "wireframe"
	host := chunk.NewMemoryHost()
	if _, err := New(cfg, host); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New error = %v, want config.ErrInvalid", err)
	}
	if host.Created != 0 {
		t.Errorf("host saw %d creates before validation failed", host.Created)
	}
}

func TestNewNormalizes(t *testing.T) {
	cfg := smallConfig()
	cfg.Noise.Octaves = -3
	g, err := New(cfg, chunk.NewMemoryHost())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := g.Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := res.Heights.MinMax()
	if lo != 0 || hi != 0 {
		t.Errorf("zero octaves produced [%v, %v], want flat 0", lo, hi)
	}
}

func TestBuildWater(t *testing.T) {
	cfg := config.Default().Water
	cfg.Resolution = 4
	cfg.Height = 2.5
	w, err := BuildWater(cfg, chunk.Layout{MapSize: 2, ChunkSize: 10})
	if err != nil {
		t.Fatalf("BuildWater failed: %v", err)
	}
	if w.Mesh.TriangleCount() != 18 {
		t.Errorf("TriangleCount() = %d, want 18", w.Mesh.TriangleCount())
	}
	if w.Scale.X != 5 || w.Scale.Z != 5 || w.Scale.Y != 1 {
		t.Errorf("Scale = %v, want (5,1,5)", w.Scale)
	}
	if w.Position.Y != 2.5 {
		t.Errorf("Position.Y = %v, want 2.5", w.Position.Y)
	}
	if w.Color[3] != cfg.Alpha {
		t.Errorf("alpha = %v, want %v", w.Color[3], cfg.Alpha)
	}

	cfg.Resolution = 1
	if _, err := BuildWater(cfg, chunk.Layout{MapSize: 1, ChunkSize: 1}); err == nil {
		t.Error("expected error for resolution 1")
	}
}
