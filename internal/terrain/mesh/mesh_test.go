package mesh

import (
	"errors"
	stdmath "math"
	"testing"

	"github.com/Faultbox/islegen/internal/terrain/heightmap"
	"github.com/Faultbox/islegen/internal/terrain/palette"
	"github.com/Faultbox/islegen/pkg/math"
)

func rampField(t *testing.T, w, h int) *heightmap.Field {
	t.Helper()
	f, err := heightmap.New(w, h)
	if err != nil {
		t.Fatalf("heightmap.New failed: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Set(x, y, float64(x+y)/float64(w+h-2))
		}
	}
	return f
}

func TestBuildFlatPlaneCounts(t *testing.T) {
	m, err := BuildFlatPlane(3)
	if err != nil {
		t.Fatalf("BuildFlatPlane failed: %v", err)
	}
	if got := m.TriangleCount(); got != 8 {
		t.Errorf("TriangleCount() = %d, want 8", got)
	}
	if len(m.Vertices) != 24 {
		t.Errorf("len(Vertices) = %d, want 24", len(m.Vertices))
	}
	for i, v := range m.Vertices {
		if v.Y != 0 {
			t.Fatalf("vertex %d height = %v, want 0", i, v.Y)
		}
	}
	if !m.IsSplit() {
		t.Error("flat plane should be split")
	}
}

func TestBuildFlatPlaneCentered(t *testing.T) {
	m, _ := BuildFlatPlane(5)
	lo, hi := m.Bounds()
	want := math.Vec3{X: 2, Y: 0, Z: 2}
	if hi != want || lo != want.Scale(-1) {
		t.Errorf("Bounds() = %v, %v, want ±%v", lo, hi, want)
	}
}

func TestBuildTooSmall(t *testing.T) {
	for _, size := range []int{-1, 0, 1} {
		if _, err := BuildFlatPlane(size); !errors.Is(err, ErrTooSmall) {
			t.Errorf("BuildFlatPlane(%d) error = %v, want ErrTooSmall", size, err)
		}
	}
	f, _ := heightmap.New(1, 4)
	if _, err := BuildHeightMesh(f, 1); !errors.Is(err, ErrTooSmall) {
		t.Errorf("BuildHeightMesh(1x4) error = %v, want ErrTooSmall", err)
	}
}

func TestFlatPlaneNormalsPointUp(t *testing.T) {
	m, _ := BuildFlatPlane(6)
	for i, n := range m.FlatNormals() {
		if n.Y < 0.999 {
			t.Fatalf("normal %d = %v, want +Y", i, n)
		}
	}
}

func TestCheckerboardDiagonals(t *testing.T) {
	m, _ := BuildFlatPlane(3)
	// First triangle of each cell: the diagonal runs from vertex a to b in
	// the first pattern and the second pattern starts along the top edge.
	cells := []struct {
		name  string
		first int
		a, b  math.Vec3
	}{
		{"(0,0)", 0, math.Vec3{X: -1, Z: 1}, math.Vec3{X: 0, Z: 0}},
		{"(1,0)", 6, math.Vec3{X: 0, Z: 1}, math.Vec3{X: 1, Z: 1}},
		{"(0,1)", 12, math.Vec3{X: -1, Z: 0}, math.Vec3{X: 0, Z: 0}},
		{"(1,1)", 18, math.Vec3{X: 0, Z: 0}, math.Vec3{X: 1, Z: -1}},
	}
	for _, c := range cells {
		t.Run(c.name, func(t *testing.T) {
			if got := m.Vertices[c.first]; got != c.a {
				t.Errorf("first vertex = %v, want %v", got, c.a)
			}
			if got := m.Vertices[c.first+1]; got != c.b {
				t.Errorf("second vertex = %v, want %v", got, c.b)
			}
		})
	}
}

func TestBuildHeightMeshAppliesHeights(t *testing.T) {
	f := rampField(t, 4, 4)
	m, err := BuildHeightMesh(f, 10)
	if err != nil {
		t.Fatalf("BuildHeightMesh failed: %v", err)
	}
	if m.TriangleCount() != 18 || len(m.Vertices) != 54 {
		t.Fatalf("got %d triangles / %d vertices, want 18 / 54", m.TriangleCount(), len(m.Vertices))
	}

	// Grid point (x,y) sits at (x-1.5, h, 1.5-y).
	for i, v := range m.Vertices {
		x := int(stdmath.Round(float64(v.X + 1.5)))
		y := int(stdmath.Round(float64(1.5 - v.Z)))
		want := float32(f.At(x, y) * 10)
		if stdmath.Abs(float64(v.Y-want)) > 1e-5 {
			t.Fatalf("vertex %d at grid (%d,%d) height = %v, want %v", i, x, y, v.Y, want)
		}
	}

	lo, hi := m.Bounds()
	if lo.Y != 0 || stdmath.Abs(float64(hi.Y-10)) > 1e-5 {
		t.Errorf("height range = [%v, %v], want [0, 10]", lo.Y, hi.Y)
	}
}

func TestBuildHeightMeshRectangular(t *testing.T) {
	f := rampField(t, 5, 3)
	m, err := BuildHeightMesh(f, 1)
	if err != nil {
		t.Fatalf("BuildHeightMesh failed: %v", err)
	}
	if m.TriangleCount() != 4*2*2 {
		t.Errorf("TriangleCount() = %d, want 16", m.TriangleCount())
	}
	lo, hi := m.Bounds()
	if lo.X != -2 || hi.X != 2 || lo.Z != -1 || hi.Z != 1 {
		t.Errorf("Bounds() = %v, %v", lo, hi)
	}
}

func TestSetColors(t *testing.T) {
	m, _ := BuildFlatPlane(2)
	if err := m.SetColors(make([]palette.Color, 5)); !errors.Is(err, ErrColorCount) {
		t.Errorf("SetColors(5) error = %v, want ErrColorCount", err)
	}
	if err := m.SetColors(make([]palette.Color, 6)); err != nil {
		t.Errorf("SetColors(6) failed: %v", err)
	}
	if len(m.Colors) != 6 {
		t.Errorf("len(Colors) = %d, want 6", len(m.Colors))
	}
}

func TestColorMapMatchesMesh(t *testing.T) {
	f := rampField(t, 6, 6)
	m, _ := BuildHeightMesh(f, 1)
	colors, err := ColorMap(f, palette.Default(), Jitter{})
	if err != nil {
		t.Fatalf("ColorMap failed: %v", err)
	}
	if err := m.SetColors(colors); err != nil {
		t.Fatalf("SetColors failed: %v", err)
	}

	// Without jitter every slot of a cell carries the palette color of the
	// cell's top-left height.
	p := palette.Default()
	cell := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want, _ := p.Evaluate(f.At(x, y))
			for i := 0; i < 6; i++ {
				if got := colors[cell*6+i]; got != want {
					t.Fatalf("cell (%d,%d) slot %d = %v, want %v", x, y, i, got, want)
				}
			}
			cell++
		}
	}
}

func TestColorMapJitter(t *testing.T) {
	f := rampField(t, 8, 8)
	p := palette.Default()
	j := Jitter{Max: DefaultJitter, Seed: 42}

	a, err := ColorMap(f, p, j)
	if err != nil {
		t.Fatalf("ColorMap failed: %v", err)
	}
	b, _ := ColorMap(f, p, j)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}

	plain, _ := ColorMap(f, p, Jitter{})
	limit := int(stdmath.Ceil(DefaultJitter*255)) + 1
	changed := 0
	for i := range a {
		for ch, pair := range [][2]uint8{{a[i].R, plain[i].R}, {a[i].G, plain[i].G}, {a[i].B, plain[i].B}} {
			d := int(pair[0]) - int(pair[1])
			if d < -limit || d > limit {
				t.Fatalf("slot %d channel %d off by %d, limit %d", i, ch, d, limit)
			}
			if d != 0 {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Error("jitter left every channel unchanged")
	}

	other, _ := ColorMap(f, p, Jitter{Max: DefaultJitter, Seed: 43})
	same := true
	for i := range a {
		if a[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical jitter")
	}
}

func TestColorMapSeamlessAcrossOrigins(t *testing.T) {
	world := rampField(t, 9, 9)
	p := palette.Default()
	full, _ := ColorMap(world, p, Jitter{Max: 0.05, Seed: 7})

	right, err := heightmap.Extract(world, 4, 0, 8, 8)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	part, _ := ColorMap(right, p, Jitter{Max: 0.05, Seed: 7, OriginX: 4})

	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			got := part[(y*4+x)*6]
			want := full[(y*8+x+4)*6]
			if got != want {
				t.Fatalf("cell (%d,%d) = %v, want %v", x+4, y, got, want)
			}
		}
	}
}
