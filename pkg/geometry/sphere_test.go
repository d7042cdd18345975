package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_PointingAway(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	if hit, isHit := sphere.Hit(ray, 0, math.Inf(1)); isHit {
		t.Errorf("Expected miss for ray pointing away, got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -4),
			expectedT:      0.5,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_NormalOpposesRay(t *testing.T) {
	sampler := core.NewSeededSampler(5)
	spheres := []*Sphere{
		NewSphere(core.NewVec3(0, 0, 0), 1.0),
		NewSphere(core.NewVec3(1, -2, 0.5), 0.3),
		NewSphere(core.NewVec3(0, 0, 0), -1.0), // inverted normals
	}

	for _, sphere := range spheres {
		for i := 0; i < 500; i++ {
			origin := core.RandomVec3(sampler, -3, 3)
			direction := core.RandomUnitVector(sampler)
			ray := core.NewRay(origin, direction)

			hit, isHit := sphere.Hit(ray, 1e-6, math.Inf(1))
			if !isHit {
				continue
			}

			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Fatalf("Normal %v is not unit length", hit.Normal)
			}
			if ray.Direction.Dot(hit.Normal) > 0 {
				t.Fatalf("Normal %v does not oppose direction %v", hit.Normal, ray.Direction)
			}

			outward := hit.Point.Subtract(sphere.Center).Divide(sphere.Radius)
			if hit.FrontFace != (ray.Direction.Dot(outward) < 0) {
				t.Fatalf("FrontFace %t inconsistent with outward normal %v", hit.FrontFace, outward)
			}
		}
	}
}

func TestSphere_Hit_TranslationCovariant(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5)
	ray := core.NewRay(core.NewVec3(0.1, 0.2, 0), core.NewVec3(0, 0, -1))

	base, isHit := sphere.Hit(ray, 0, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit before translation")
	}

	offsets := []core.Vec3{
		core.NewVec3(10, 0, 0),
		core.NewVec3(-3.5, 7, 2),
		core.NewVec3(0.001, -0.002, 100),
	}

	for _, offset := range offsets {
		moved := NewSphere(sphere.Center.Add(offset), sphere.Radius)
		movedRay := core.NewRay(ray.Origin.Add(offset), ray.Direction)

		hit, isHit := moved.Hit(movedRay, 0, math.Inf(1))
		if !isHit {
			t.Fatalf("Expected hit after translating by %v", offset)
		}
		if math.Abs(hit.T-base.T) > 1e-9 {
			t.Errorf("Translation by %v changed t from %f to %f", offset, base.T, hit.T)
		}
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Test tMax bound
	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Test tMin bound
	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Interval is open: a root exactly on tMax is excluded, the far root is next
	hit, isHit = sphere.Hit(ray, 0.001, 1.0)
	if isHit {
		t.Errorf("Expected miss for root on open tMax bound, got t=%f", hit.T)
	}

	// Near root clipped by tMin, far root accepted
	hit, isHit = sphere.Hit(ray, 1.0, 1000.0)
	if !isHit || math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far root at t=3, got hit=%t", isHit)
	}
}

func TestSphere_Hit_ZeroDirection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	// Origin inside and outside the sphere
	for _, origin := range []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 5)} {
		ray := core.NewRay(origin, core.Vec3{})
		if hit, isHit := sphere.Hit(ray, 0, math.Inf(1)); isHit {
			t.Errorf("Expected no hit for zero direction from %v, got t=%f", origin, hit.T)
		}
	}
}
