package math

import (
	gomath "math"
	"testing"
)

func almostEqual(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func vecAlmostEqual(a, b Vec3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

func matAlmostEqual(a, b Mat4) bool {
	for i := range a.Data {
		if !almostEqual(a.Data[i], b.Data[i]) {
			return false
		}
	}
	return true
}

func TestVec3Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	if got, want := a.Add(b), NewVec3(5, 7, 9); got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
	if got, want := b.Sub(a), NewVec3(3, 3, 3); got != want {
		t.Errorf("Sub = %v, want %v", got, want)
	}
	if got, want := a.MulScalar(2), NewVec3(2, 4, 6); got != want {
		t.Errorf("MulScalar = %v, want %v", got, want)
	}
	if got, want := a.Dot(b), float32(32); got != want {
		t.Errorf("Dot = %v, want %v", got, want)
	}
	if got, want := NewVec3(3, 4, 0).Length(), float32(5); !almostEqual(got, want) {
		t.Errorf("Length = %v, want %v", got, want)
	}
}

func TestVec3CrossFollowsRightHandRule(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	if got, want := x.Cross(y), NewVec3(0, 0, 1); !vecAlmostEqual(got, want) {
		t.Errorf("x cross y = %v, want %v", got, want)
	}
	if got, want := y.Cross(x), NewVec3(0, 0, -1); !vecAlmostEqual(got, want) {
		t.Errorf("y cross x = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	n := v.Normalized()

	if !vecAlmostEqual(n, NewVec3(0.6, 0.8, 0)) {
		t.Errorf("Normalized = %v, want (0.6, 0.8, 0)", n)
	}
	if !almostEqual(n.Length(), 1) {
		t.Errorf("normalized Length = %v, want 1", n.Length())
	}
	if v != NewVec3(3, 4, 0) {
		t.Errorf("Normalized mutated the receiver: %v", v)
	}

	v.Normalize()
	if !vecAlmostEqual(v, n) {
		t.Errorf("Normalize = %v, want %v", v, n)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %v, want 3", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("Clamp(-1, 0, 3) = %v, want 0", got)
	}
	if got := Clamp(float32(1.5), 0, 3); got != 1.5 {
		t.Errorf("Clamp(1.5, 0, 3) = %v, want 1.5", got)
	}
}

func TestAngleConversions(t *testing.T) {
	if got := DegToRad(180); !almostEqual(got, gomath.Pi) {
		t.Errorf("DegToRad(180) = %v, want pi", got)
	}
	if got := RadToDeg(gomath.Pi / 2); !almostEqual(got, 90) {
		t.Errorf("RadToDeg(pi/2) = %v, want 90", got)
	}
	if got := RadToDeg(DegToRad(37)); !almostEqual(got, 37) {
		t.Errorf("round trip = %v, want 37", got)
	}
}

func TestMat4IdentityIsMulNeutral(t *testing.T) {
	id := NewMat4Identity()
	translation := NewMat4Translation(NewVec3(1, 2, 3))

	if got := id.Mul(id); !matAlmostEqual(got, id) {
		t.Errorf("I * I = %v, want identity", got)
	}
	if got := translation.Mul(id); !matAlmostEqual(got, translation) {
		t.Errorf("T * I = %v, want T", got)
	}
	if got := id.Mul(translation); !matAlmostEqual(got, translation) {
		t.Errorf("I * T = %v, want T", got)
	}
}

func TestMat4TranslationInverse(t *testing.T) {
	translation := NewMat4Translation(NewVec3(1, 2, 3))

	if got, want := translation.Inverse(), NewMat4Translation(NewVec3(-1, -2, -3)); !matAlmostEqual(got, want) {
		t.Errorf("T(1,2,3) inverse = %v, want T(-1,-2,-3)", got)
	}
}

func TestMat4RotationAxes(t *testing.T) {
	rot := NewMat4EulerY(gomath.Pi / 2)

	if got := rot.Forward(); !vecAlmostEqual(got, NewVec3(1, 0, 0)) {
		t.Errorf("Forward = %v, want (1, 0, 0)", got)
	}
	if got, want := rot.Backward(), rot.Forward().MulScalar(-1); !vecAlmostEqual(got, want) {
		t.Errorf("Backward = %v, want %v", got, want)
	}
	if got, want := rot.Left(), rot.Right().MulScalar(-1); !vecAlmostEqual(got, want) {
		t.Errorf("Left = %v, want %v", got, want)
	}
	if got, want := rot.Down(), rot.Up().MulScalar(-1); !vecAlmostEqual(got, want) {
		t.Errorf("Down = %v, want %v", got, want)
	}
}

func TestMat4OrthographicScreenProjection(t *testing.T) {
	// The overlay projection: origin top-left, y growing downward.
	proj := NewMat4Orthographic(0, 800, 600, 0, -1, 1)

	if got := proj.Data[0]; !almostEqual(got, 2.0/800.0) {
		t.Errorf("x scale = %v, want %v", got, 2.0/800.0)
	}
	if got := proj.Data[5]; !almostEqual(got, -2.0/600.0) {
		t.Errorf("y scale = %v, want %v", got, -2.0/600.0)
	}
	if got := proj.Data[12]; !almostEqual(got, -1) {
		t.Errorf("x offset = %v, want -1", got)
	}
	if got := proj.Data[13]; !almostEqual(got, 1) {
		t.Errorf("y offset = %v, want 1", got)
	}
}

func TestMat4Perspective(t *testing.T) {
	// Square aspect with a 90 degree field of view keeps unit focal
	// scales on both axes.
	proj := NewMat4Perspective(gomath.Pi/2, 1, 0.1, 100)

	if got := proj.Data[0]; !almostEqual(got, 1) {
		t.Errorf("x scale = %v, want 1", got)
	}
	if got := proj.Data[5]; !almostEqual(got, 1) {
		t.Errorf("y scale = %v, want 1", got)
	}
	if got := proj.Data[11]; got != -1 {
		t.Errorf("w term = %v, want -1", got)
	}
}
