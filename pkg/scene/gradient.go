package scene

import (
	"fmt"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// GradientTestImage is a UV gradient used to check an output pipeline
// without tracing any rays: red grows to the right, green grows upward and
// blue is fixed at 0.25
type GradientTestImage struct {
	Width  int
	Height int
}

// NewGradientTestImage creates the 256x256 test image
func NewGradientTestImage() *GradientTestImage {
	return &GradientTestImage{Width: 256, Height: 256}
}

// gradientScale maps a channel in [0, 1] so the sink's 256 step quantizer
// yields int(255.999 * c)
const gradientScale = 255.999 / 256

// Render writes the gradient to sink, top row first. Colors are scaled and
// squared so they come out of the sink's gamma step as 8-bit values of
// int(255.999 * c).
func (g *GradientTestImage) Render(sink renderer.PixelSink, logger core.Logger) error {
	for j := g.Height - 1; j >= 0; j-- {
		logger.Printf("\rScanlines remaining: %d ", j)
		for i := 0; i < g.Width; i++ {
			c := core.NewVec3(
				float64(i)/float64(max(g.Width-1, 1)),
				float64(j)/float64(max(g.Height-1, 1)),
				0.25,
			).Multiply(gradientScale)
			if err := sink.WritePixel(c.MultiplyVec(c), 1); err != nil {
				return fmt.Errorf("scene: gradient pixel (%d, %d): %w", i, g.Height-1-j, err)
			}
		}
	}
	logger.Printf("\nDone.\n")
	return nil
}
