package output

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// PPMWriter streams pixels as a plain-text (P3) Netpbm image.
// Pixels must arrive in row-major order starting with the top scanline.
type PPMWriter struct {
	w *bufio.Writer
}

// NewPPMWriter writes the P3 header and returns a writer ready for pixels
func NewPPMWriter(w io.Writer, width, height int) (*PPMWriter, error) {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return nil, fmt.Errorf("output: write ppm header: %w", err)
	}
	return &PPMWriter{w: bw}, nil
}

// WritePixel quantizes a color sum and writes it as one "r g b" line
func (p *PPMWriter) WritePixel(sum core.Vec3, samples int) error {
	r, g, b := Quantize(sum, samples)
	return p.writeRGB(r, g, b)
}

func (p *PPMWriter) writeRGB(r, g, b uint8) error {
	if _, err := fmt.Fprintf(p.w, "%d %d %d\n", r, g, b); err != nil {
		return fmt.Errorf("output: write ppm pixel: %w", err)
	}
	return nil
}

// Flush writes any buffered data to the underlying writer
func (p *PPMWriter) Flush() error {
	if err := p.w.Flush(); err != nil {
		return fmt.Errorf("output: flush ppm: %w", err)
	}
	return nil
}

// EncodePPM writes an already quantized image as P3
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	p, err := NewPPMWriter(w, bounds.Dx(), bounds.Dy())
	if err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit channels
			if err := p.writeRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8)); err != nil {
				return err
			}
		}
	}
	return p.Flush()
}
