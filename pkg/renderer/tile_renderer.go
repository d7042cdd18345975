package renderer

import (
	"image"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
)

// TileRenderer renders rectangular regions of a shared frame
type TileRenderer struct {
	scene      Scene
	integrator integrator.Integrator
	width      int
	height     int
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene Scene, integ integrator.Integrator, width, height int) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integ,
		width:      width,
		height:     height,
	}
}

// RenderTileBounds tops up every pixel in bounds to targetSamples.
// Bounds are in image coordinates with row 0 at the top.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, frame *Frame, sampler core.Sampler, targetSamples int) RenderStats {
	camera := tr.scene.GetCamera()
	world := tr.scene.GetWorld()

	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples, // Start with max, will be reduced
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := tr.height - 1 - y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := frame.At(x, y)
			samplesUsed := 0
			for ps.SampleCount < targetSamples {
				ps.AddSample(traceSample(tr.integrator, camera, world, sampler, x, j, tr.width, tr.height))
				samplesUsed++
			}
			stats.TotalSamples += samplesUsed
			stats.MinSamples = min(stats.MinSamples, samplesUsed)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}
