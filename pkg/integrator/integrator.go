package integrator

import (
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear-space color carried back along a ray.
	// world and integrator state are read-only, so one integrator may be
	// shared by many goroutines as long as each passes its own sampler.
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3
}
