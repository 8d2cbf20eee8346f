package texture

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/islegen/internal/terrain/heightmap"
	"github.com/Faultbox/islegen/internal/terrain/palette"
)

func gradient(t *testing.T) *heightmap.Field {
	t.Helper()
	f, err := heightmap.New(5, 2)
	if err != nil {
		t.Fatalf("heightmap.New failed: %v", err)
	}
	for x := 0; x < 5; x++ {
		f.Set(x, 0, float64(x)/4)
		f.Set(x, 1, 1-float64(x)/4)
	}
	return f
}

func TestFromField(t *testing.T) {
	img := FromField(gradient(t))
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 5x2", b)
	}
	if got := img.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("(0,0) = %d, want 0", got)
	}
	if got := img.GrayAt(4, 0).Y; got != 255 {
		t.Errorf("(4,0) = %d, want 255", got)
	}
	if got := img.GrayAt(2, 0).Y; got != 128 {
		t.Errorf("(2,0) = %d, want 128", got)
	}
}

func TestFromColors(t *testing.T) {
	p := palette.Default()
	img, err := FromColors(gradient(t), p)
	if err != nil {
		t.Fatalf("FromColors failed: %v", err)
	}
	want, _ := p.Evaluate(0)
	if got := img.RGBAAt(0, 0); got != want.RGBA() {
		t.Errorf("(0,0) = %v, want %v", got, want.RGBA())
	}

	bad := gradient(t)
	bad.Set(1, 1, 2)
	if _, err := FromColors(bad, p); err == nil {
		t.Error("expected error for value outside [0,1]")
	}
}

func TestFromPixelsFlips(t *testing.T) {
	// Two rows: bottom row red, top row blue, as OpenGL returns them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}
	if img.RGBAAt(0, 0).B != 255 || img.RGBAAt(0, 1).R != 255 {
		t.Errorf("rows not flipped: top %v, bottom %v", img.RGBAAt(0, 0), img.RGBAAt(0, 1))
	}

	if _, err := FromPixels(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestEncodeFormats(t *testing.T) {
	img := FromField(gradient(t))

	var buf bytes.Buffer
	if err := Encode(&buf, img, "png"); err != nil {
		t.Fatalf("Encode png failed: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("png output does not decode: %v", err)
	}

	buf.Reset()
	if err := Encode(&buf, img, "BMP"); err != nil {
		t.Fatalf("Encode bmp failed: %v", err)
	}
	decoded, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("bmp output does not decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bmp bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}

	if err := Encode(&buf, img, "gif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := FromField(gradient(t))

	for _, name := range []string{"height.png", filepath.Join("sub", "height.bmp")} {
		path := filepath.Join(dir, name)
		if err := Save(path, img); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
		file, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		_, format, err := image.DecodeConfig(file)
		file.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if filepath.Ext(name) != "."+format {
			t.Errorf("%s decoded as %s", name, format)
		}
	}

	if err := Save(filepath.Join(dir, "height.jpg"), img); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{"png": "png", ".BMP": "bmp", " png ": "png"} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
}
