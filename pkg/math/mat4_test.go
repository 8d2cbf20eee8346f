package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{6, 12, 18}
	if got != want {
		t.Errorf("Translate: got %v, want %v", got, want)
	}
}

func TestModelScalesThenTranslates(t *testing.T) {
	pos := Vec3{-32, 0, 64}
	scale := Vec3{4, 1, 4}

	got := Model(pos, scale)
	diag := Mat4{
		4, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 4, 0,
		0, 0, 0, 1,
	}
	want := Translate(pos.X, pos.Y, pos.Z).Mul(diag)
	if got != want {
		t.Errorf("Model() = %v, want %v", got, want)
	}

	p := got.TransformVec3(Vec3{1, 2, 3})
	if p != (Vec3{-28, 2, 76}) {
		t.Errorf("Model transform = %v, want (-28, 2, 76)", p)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	p := m.TransformVec3(eye)
	if p.Length() > 1e-5 {
		t.Errorf("LookAt should map eye to origin, got %v", p)
	}
}
