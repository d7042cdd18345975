package renderer

import (
	"fmt"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	Seed            int64 // Seed for the random stream
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		Seed:            42,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
}

// PixelSink receives each pixel's linear color sum and sample count.
// Averaging, gamma correction and quantization are the sink's job.
type PixelSink interface {
	WritePixel(sum core.Vec3, samples int) error
}

// Raytracer is the sequential reference renderer: one random stream, rows
// from the top, columns left to right
type Raytracer struct {
	scene      Scene
	width      int
	height     int
	config     SamplingConfig
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int, integ integrator.Integrator) *Raytracer {
	return &Raytracer{
		scene:      scene,
		width:      width,
		height:     height,
		config:     DefaultSamplingConfig(),
		integrator: integ,
		logger:     core.NopLogger{},
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SetLogger sets where progress text goes
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// Render traces every pixel and hands its sum to sink in row-major order
func (rt *Raytracer) Render(sink PixelSink) error {
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()
	sampler := core.NewSeededSampler(rt.config.Seed)
	samples := rt.config.SamplesPerPixel

	for j := rt.height - 1; j >= 0; j-- {
		rt.logger.Printf("\rScanlines remaining: %d ", j)
		for i := 0; i < rt.width; i++ {
			sum := samplePixel(rt.integrator, camera, world, sampler, i, j, rt.width, rt.height, samples)
			if err := sink.WritePixel(sum, samples); err != nil {
				return fmt.Errorf("renderer: pixel (%d, %d): %w", i, rt.height-1-j, err)
			}
		}
	}
	rt.logger.Printf("\nDone.\n")

	return nil
}

// samplePixel sums samples jittered rays through pixel (i, j), where j counts
// rows from the bottom of the image
func samplePixel(integ integrator.Integrator, camera *Camera, world geometry.Shape, sampler core.Sampler,
	i, j, width, height, samples int) core.Vec3 {
	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	for s := 0; s < samples; s++ {
		colorAccum = colorAccum.Add(traceSample(integ, camera, world, sampler, i, j, width, height))
	}
	return colorAccum
}

// traceSample traces one jittered ray through pixel (i, j)
func traceSample(integ integrator.Integrator, camera *Camera, world geometry.Shape, sampler core.Sampler,
	i, j, width, height int) core.Vec3 {
	u := (float64(i) + sampler.Float64()) / planeExtent(width)
	v := (float64(j) + sampler.Float64()) / planeExtent(height)
	return integ.RayColor(camera.GetRay(u, v), world, sampler)
}

// planeExtent maps pixel indices so the first and last pixel land on the
// viewport edges. A one pixel wide image keeps the whole viewport.
func planeExtent(n int) float64 {
	return float64(max(n-1, 1))
}
