package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/islegen/pkg/math"
)

func TestOrbitCameraPosition(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 10, Y: 0, Z: -5}
	c.Distance = 50
	c.RotationX = 0
	c.RotationY = 0

	pos := c.Position()
	if gomath.Abs(float64(pos.X-10)) > 1e-4 || gomath.Abs(float64(pos.Y)) > 1e-4 || gomath.Abs(float64(pos.Z-45)) > 1e-4 {
		t.Errorf("Position() = %v, want (10, 0, 45)", pos)
	}
	if d := pos.Distance(c.Center); gomath.Abs(float64(d-50)) > 1e-3 {
		t.Errorf("distance to center = %v, want 50", d)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %v, want MaxPitch %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -10000)
	if c.RotationX != c.MinPitch {
		t.Errorf("RotationX = %v, want MinPitch %v", c.RotationX, c.MinPitch)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want MinDistance %v", c.Distance, c.MinDistance)
	}
	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want MaxDistance %v", c.Distance, c.MaxDistance)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.Vec3{X: -36, Y: 0, Z: -36}, math.Vec3{X: 36, Y: 12, Z: 36})

	if c.Center != (math.Vec3{X: 0, Y: 6, Z: 0}) {
		t.Errorf("Center = %v, want (0, 6, 0)", c.Center)
	}
	if gomath.Abs(float64(c.Distance-86.4)) > 1e-3 {
		t.Errorf("Distance = %v, want 86.4", c.Distance)
	}
}
