package scene

import (
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// NewDefaultScene creates the reference scene: one sphere resting on a very
// large ground sphere, seen from the origin
func NewDefaultScene() *Scene {
	s := NewScene(renderer.DefaultCameraConfig(), 400, 100)

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100) // ground

	return s
}
