package scene

import (
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera           *renderer.Camera
	World            *geometry.ShapeList // Spheres in insertion order
	CameraConfig     renderer.CameraConfig
	SamplingConfig   SamplingConfig
	IntegratorConfig integrator.Config
}

// SamplingConfig contains the image size and sample count for a scene
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
}

// NewScene creates an empty scene with the given camera and image width.
// The height follows from the camera aspect ratio.
func NewScene(cameraConfig renderer.CameraConfig, width, samplesPerPixel int) *Scene {
	return &Scene{
		Camera:       renderer.NewCamera(cameraConfig),
		World:        geometry.NewShapeList(),
		CameraConfig: cameraConfig,
		SamplingConfig: SamplingConfig{
			Width:           width,
			Height:          HeightForWidth(width, cameraConfig.AspectRatio),
			SamplesPerPixel: samplesPerPixel,
		},
		IntegratorConfig: integrator.DefaultConfig(),
	}
}

// HeightForWidth returns the image height matching an aspect ratio, at least 1
func HeightForWidth(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return max(width, 1)
	}
	return max(int(float64(width)/aspectRatio), 1)
}

// AddSphere adds a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64) {
	s.World.Add(geometry.NewSphere(center, radius))
}

// SetWidth changes the image width, keeping the aspect ratio
func (s *Scene) SetWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = HeightForWidth(width, s.CameraConfig.AspectRatio)
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}
