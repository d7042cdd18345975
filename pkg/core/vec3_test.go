package core

import (
	"math"
	"testing"
)

func TestVec3_Identities(t *testing.T) {
	vectors := []Vec3{
		NewVec3(0, 0, 0),
		NewVec3(1, 2, 3),
		NewVec3(-4.5, 0.25, 1e6),
		NewVec3(1e-9, -1e-9, 7),
	}

	for _, a := range vectors {
		t.Run(a.String(), func(t *testing.T) {
			if sum := a.Add(a.Negate()); sum != (Vec3{}) {
				t.Errorf("a + (-a) = %v, expected zero vector", sum)
			}
			if cross := a.Cross(a); cross != (Vec3{}) {
				t.Errorf("a x a = %v, expected zero vector", cross)
			}
			if a.Dot(a) != a.LengthSquared() {
				t.Errorf("dot(a, a) = %f, length squared = %f", a.Dot(a), a.LengthSquared())
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []Vec3{
		NewVec3(3, 4, 0),
		NewVec3(0, 0, -0.001),
		NewVec3(1e8, 1e8, 1e8),
		NewVec3(-1, 2, -3),
	}

	for _, v := range tests {
		const tolerance = 1e-9
		if length := v.Normalize().Length(); math.Abs(length-1) > tolerance {
			t.Errorf("Normalize(%v) has length %f, expected 1", v, length)
		}
	}
}

func TestVec3_NormalizeZeroIsNaN(t *testing.T) {
	n := Vec3{}.Normalize()
	if !math.IsNaN(n.X) || !math.IsNaN(n.Y) || !math.IsNaN(n.Z) {
		t.Errorf("Expected NaN components for zero vector, got %v", n)
	}
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"cross", a.Cross(b), NewVec3(27, 6, -13)},
		{"clamp", b.Clamp(0, 5), NewVec3(4, 0, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot 12, got %f", dot)
	}
	if length := NewVec3(2, 3, 6).Length(); length != 7 {
		t.Errorf("Expected length 7, got %f", length)
	}
}

func TestVec3_Index(t *testing.T) {
	v := NewVec3(7, 8, 9)
	for i, expected := range []float64{7, 8, 9} {
		if got := v.Index(i); got != expected {
			t.Errorf("Index(%d): expected %f, got %f", i, expected, got)
		}
	}

	for _, bad := range []int{-1, 3, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Index(%d) should panic", bad)
				}
			}()
			v.Index(bad)
		}()
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 2, 0))

	tests := []struct {
		t        float64
		expected Vec3
	}{
		{0, NewVec3(1, 1, 1)},
		{1.5, NewVec3(1, 4, 1)},
		{-1, NewVec3(1, -1, 1)},
	}

	for _, tt := range tests {
		if got := ray.At(tt.t); got != tt.expected {
			t.Errorf("At(%f): expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}
