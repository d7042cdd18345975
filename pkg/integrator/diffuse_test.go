package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
)

// createTestWorld creates the reference two-sphere world
func createTestWorld() *geometry.ShapeList {
	return geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100),
	)
}

func TestDiffuseIntegrator_DepthTermination(t *testing.T) {
	world := createTestWorld()
	sampler := core.NewSeededSampler(42)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	config := DefaultConfig()
	config.MaxDepth = 0
	color := NewDiffuseIntegrator(config).RayColor(ray, world, sampler)
	if color != (core.Vec3{}) {
		t.Errorf("Expected black color for depth 0, got %v", color)
	}

	// A single bounce can never escape after hitting the sphere
	config.MaxDepth = 1
	color = NewDiffuseIntegrator(config).RayColor(ray, world, sampler)
	if color != (core.Vec3{}) {
		t.Errorf("Expected black color after one absorbed bounce, got %v", color)
	}
}

func TestDiffuseIntegrator_Background(t *testing.T) {
	integrator := NewDiffuseIntegrator(DefaultConfig())
	empty := geometry.NewShapeList()
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -5, 0), core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(0, 0, -1), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := integrator.RayColor(core.NewRay(core.Vec3{}, tt.direction), empty, sampler)
			if color.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestDiffuseIntegrator_IterativeMatchesRecursive(t *testing.T) {
	world := createTestWorld()

	for _, policy := range []ScatterPolicy{ScatterNaive, ScatterLambertian, ScatterHemisphere} {
		for _, reflectance := range []float64{0.5, 0.3} {
			config := DefaultConfig()
			config.Policy = policy
			config.Reflectance = reflectance
			integrator := NewDiffuseIntegrator(config)

			iterSampler := core.NewSeededSampler(99)
			recSampler := core.NewSeededSampler(99)

			for i := 0; i < 200; i++ {
				dir := core.NewVec3(iterSampler.Range(-1, 1), iterSampler.Range(-1, 1), -1)
				recSampler.Range(-1, 1)
				recSampler.Range(-1, 1)
				ray := core.NewRay(core.Vec3{}, dir)

				iterative := integrator.RayColor(ray, world, iterSampler)
				recursive := integrator.RayColorRecursive(ray, world, recSampler, config.MaxDepth)

				if reflectance == 0.5 {
					if iterative != recursive {
						t.Fatalf("%s: iterative %v != recursive %v", policy, iterative, recursive)
					}
				} else if iterative.Subtract(recursive).Length() > 1e-12 {
					t.Fatalf("%s r=%f: iterative %v differs from recursive %v", policy, reflectance, iterative, recursive)
				}
			}
		}
	}
}

func TestDiffuseIntegrator_EnergyBounded(t *testing.T) {
	world := createTestWorld()
	sampler := core.NewSeededSampler(7)
	integrator := NewDiffuseIntegrator(DefaultConfig())
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	// One bounce at least: the sphere is hit first, so color is at most half the sky
	for i := 0; i < 500; i++ {
		c := integrator.RayColor(ray, world, sampler)
		if c.X < 0 || c.X > 0.5 || c.Y > 0.5 || c.Z > 0.5 {
			t.Fatalf("Color %v outside [0, 0.5] after a bounce", c)
		}
	}
}

func TestDiffuseIntegrator_ReflectanceFactor(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	sky := core.NewVec3(0.2, 0.4, 0.8)

	for _, reflectance := range []float64{0.5, 0.3} {
		// A flat sky makes the escaped color independent of the bounce direction
		config := DefaultConfig()
		config.Reflectance = reflectance
		config.SkyTop = sky
		config.SkyBottom = sky
		integrator := NewDiffuseIntegrator(config)
		sampler := core.NewSeededSampler(9)

		// The bounce leaves a lone convex sphere, so every path has exactly one hit
		expected := sky.Multiply(reflectance)
		for i := 0; i < 200; i++ {
			c := integrator.RayColor(ray, sphere, sampler)
			if c.Subtract(expected).Length() > 1e-12 {
				t.Fatalf("Reflectance %g: expected %v, got %v", reflectance, expected, c)
			}
		}
	}
}

func TestNewDiffuseIntegrator_InvalidPolicy(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for an undefined scatter policy")
		}
	}()
	config := DefaultConfig()
	config.Policy = ScatterPolicy(7)
	NewDiffuseIntegrator(config)
}

func TestDiffuseIntegrator_PolicyChangesResult(t *testing.T) {
	world := createTestWorld()
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	averages := map[ScatterPolicy]core.Vec3{}
	for _, policy := range []ScatterPolicy{ScatterNaive, ScatterLambertian, ScatterHemisphere} {
		config := DefaultConfig()
		config.Policy = policy
		integrator := NewDiffuseIntegrator(config)
		sampler := core.NewSeededSampler(11)

		var sum core.Vec3
		const samples = 4000
		for i := 0; i < samples; i++ {
			sum = sum.Add(integrator.RayColor(ray, world, sampler))
		}
		averages[policy] = sum.Divide(samples)
	}

	if averages[ScatterNaive] == averages[ScatterLambertian] ||
		averages[ScatterLambertian] == averages[ScatterHemisphere] {
		t.Errorf("Expected scatter policies to produce different estimates: %v", averages)
	}
}

func TestDiffuseIntegrator_BiasAvoidsSelfHit(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1)
	integrator := NewDiffuseIntegrator(DefaultConfig())
	sampler := core.NewSeededSampler(3)

	// Ray starting on the surface heading outward must escape immediately
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	color := integrator.RayColor(ray, sphere, sampler)
	if color.Subtract(core.NewVec3(0.5, 0.7, 1.0)).Length() > 1e-12 {
		t.Errorf("Expected sky color for ray leaving the surface, got %v", color)
	}
	if math.IsNaN(color.X) {
		t.Error("Color should not be NaN")
	}
}
