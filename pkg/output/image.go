package output

import (
	"fmt"
	"image"
	"image/color"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// ImageSink collects pixels into an RGBA image using the same quantization
// as the PPM writer. Pixels arrive in row-major order from the top scanline.
type ImageSink struct {
	img  *image.RGBA
	next int
}

// NewImageSink creates a sink for a width x height image
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// WritePixel quantizes a color sum into the next pixel
func (s *ImageSink) WritePixel(sum core.Vec3, samples int) error {
	width := s.img.Rect.Dx()
	if s.next >= width*s.img.Rect.Dy() {
		return fmt.Errorf("output: image sink full after %d pixels", s.next)
	}
	r, g, b := Quantize(sum, samples)
	s.img.SetRGBA(s.next%width, s.next/width, color.RGBA{R: r, G: g, B: b, A: 255})
	s.next++
	return nil
}

// Image returns the image assembled so far
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}
