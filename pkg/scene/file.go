package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// File is the JSON form of a scene. Zero or missing fields take the
// default scene's values.
type File struct {
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Group       string       `json:"group,omitempty"`
	Width       int          `json:"width,omitempty"`
	Samples     int          `json:"samples,omitempty"`
	MaxDepth    int          `json:"max_depth,omitempty"`
	Camera      *CameraFile  `json:"camera,omitempty"`
	SkyTop      *Color       `json:"sky_top,omitempty"`
	SkyBottom   *Color       `json:"sky_bottom,omitempty"`
	Spheres     []SphereFile `json:"spheres"`
}

// CameraFile holds the camera settings of a scene file
type CameraFile struct {
	Origin         [3]float64 `json:"origin"`
	AspectRatio    float64    `json:"aspect_ratio,omitempty"`
	ViewportHeight float64    `json:"viewport_height,omitempty"`
	FocalLength    float64    `json:"focal_length,omitempty"`
}

// SphereFile is one sphere of a scene file
type SphereFile struct {
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

// LoadFile reads and builds a scene from a JSON file
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from JSON scene file contents
func Parse(data []byte) (*Scene, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return f.Build()
}

// Build creates the scene described by the file
func (f *File) Build() (*Scene, error) {
	defaults := NewDefaultScene()

	cameraConfig := defaults.CameraConfig
	if f.Camera != nil {
		cameraConfig.Origin = vec3(f.Camera.Origin)
		if f.Camera.AspectRatio != 0 {
			cameraConfig.AspectRatio = f.Camera.AspectRatio
		}
		if f.Camera.ViewportHeight != 0 {
			cameraConfig.ViewportHeight = f.Camera.ViewportHeight
		}
		if f.Camera.FocalLength != 0 {
			cameraConfig.FocalLength = f.Camera.FocalLength
		}
	}
	if cameraConfig.AspectRatio < 0 || cameraConfig.ViewportHeight < 0 || cameraConfig.FocalLength < 0 {
		return nil, fmt.Errorf("camera settings must be positive")
	}

	width := defaults.SamplingConfig.Width
	if f.Width < 0 || f.Samples < 0 || f.MaxDepth < 0 {
		return nil, fmt.Errorf("width, samples and max_depth must not be negative")
	}
	if f.Width > 0 {
		width = f.Width
	}
	samples := defaults.SamplingConfig.SamplesPerPixel
	if f.Samples > 0 {
		samples = f.Samples
	}

	s := NewScene(cameraConfig, width, samples)
	if f.MaxDepth > 0 {
		s.IntegratorConfig.MaxDepth = f.MaxDepth
	}
	if f.SkyTop != nil {
		s.IntegratorConfig.SkyTop = f.SkyTop.Vec3()
	}
	if f.SkyBottom != nil {
		s.IntegratorConfig.SkyBottom = f.SkyBottom.Vec3()
	}

	// A negative radius is allowed and turns the normals inward
	for i, sphere := range f.Spheres {
		if sphere.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must not be zero", i)
		}
		s.AddSphere(vec3(sphere.Center), sphere.Radius)
	}

	return s, nil
}

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// cameraFile converts a camera config back to its file form
func cameraFile(c renderer.CameraConfig) *CameraFile {
	return &CameraFile{
		Origin:         [3]float64{c.Origin.X, c.Origin.Y, c.Origin.Z},
		AspectRatio:    c.AspectRatio,
		ViewportHeight: c.ViewportHeight,
		FocalLength:    c.FocalLength,
	}
}

// ToFile describes the scene in its JSON file form
func (s *Scene) ToFile() File {
	skyTop := Color(s.IntegratorConfig.SkyTop)
	skyBottom := Color(s.IntegratorConfig.SkyBottom)
	f := File{
		Width:     s.SamplingConfig.Width,
		Samples:   s.SamplingConfig.SamplesPerPixel,
		MaxDepth:  s.IntegratorConfig.MaxDepth,
		Camera:    cameraFile(s.CameraConfig),
		SkyTop:    &skyTop,
		SkyBottom: &skyBottom,
		Spheres:   []SphereFile{},
	}
	for _, shape := range s.World.Shapes() {
		if sphere, ok := shape.(*geometry.Sphere); ok {
			f.Spheres = append(f.Spheres, SphereFile{
				Center: [3]float64{sphere.Center.X, sphere.Center.Y, sphere.Center.Z},
				Radius: sphere.Radius,
			})
		}
	}
	return f
}
