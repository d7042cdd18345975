package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
)

// Config contains the integrator settings. Bias and Reflectance are empirical;
// changing either changes the rendered image.
type Config struct {
	MaxDepth    int           // Maximum number of bounces; exhausted paths are black
	Bias        float64       // Minimum hit distance, avoids shadow acne
	Reflectance float64       // Fraction of light kept per bounce
	Policy      ScatterPolicy // Diffuse scatter direction policy
	SkyTop      core.Vec3     // Background color straight up
	SkyBottom   core.Vec3     // Background color straight down
}

// DefaultConfig returns the reference settings
func DefaultConfig() Config {
	return Config{
		MaxDepth:    50,
		Bias:        1e-4,
		Reflectance: 0.5,
		Policy:      ScatterLambertian,
		SkyTop:      core.NewVec3(0.5, 0.7, 1.0), // blue sky
		SkyBottom:   core.NewVec3(1.0, 1.0, 1.0), // white horizon
	}
}

// DiffuseIntegrator traces paths that bounce off diffuse surfaces until they
// escape to the sky gradient or run out of depth
type DiffuseIntegrator struct {
	config Config
}

// NewDiffuseIntegrator creates a new diffuse integrator. It panics if
// config.Policy is not one of the defined scatter policies.
func NewDiffuseIntegrator(config Config) *DiffuseIntegrator {
	if !config.Policy.Valid() {
		panic(fmt.Sprintf("integrator: invalid scatter policy %d", int(config.Policy)))
	}
	return &DiffuseIntegrator{config: config}
}

// RayColor computes the color for a ray with an explicit bounce loop so stack
// usage does not depend on MaxDepth
func (d *DiffuseIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	attenuation := 1.0

	for depth := d.config.MaxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, d.config.Bias, math.Inf(1))
		if !isHit {
			return d.backgroundGradient(ray).Multiply(attenuation)
		}

		ray = d.scatter(hit, sampler)
		attenuation *= d.config.Reflectance
	}

	// If we've exceeded the ray bounce limit, no more light is gathered
	return core.Vec3{X: 0, Y: 0, Z: 0}
}

// RayColorRecursive is the recursive form of RayColor. It draws samples in the
// same order and returns the same color.
func (d *DiffuseIntegrator) RayColorRecursive(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, d.config.Bias, math.Inf(1))
	if !isHit {
		return d.backgroundGradient(ray)
	}

	scattered := d.scatter(hit, sampler)
	return d.RayColorRecursive(scattered, world, sampler, depth-1).Multiply(d.config.Reflectance)
}

// scatter builds the bounced ray from the hit point toward the policy target
func (d *DiffuseIntegrator) scatter(hit *geometry.HitRecord, sampler core.Sampler) core.Ray {
	direction := d.config.Policy.Target(hit, sampler).Subtract(hit.Point)
	if direction.LengthSquared() == 0 {
		// Degenerate sample cancelled the offset exactly; a zero direction
		// cannot be normalized for the background lookup
		direction = hit.Normal
	}
	return core.NewRay(hit.Point, direction)
}

// backgroundGradient returns a gradient color based on ray direction
func (d *DiffuseIntegrator) backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return d.config.SkyBottom.Multiply(1.0 - t).Add(d.config.SkyTop.Multiply(t))
}
