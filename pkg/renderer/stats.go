package renderer

import (
	"fmt"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Maximum samples allowed per pixel
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
}

// Summary formats the statistics with grouped digits for log output
func (s RenderStats) Summary() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d pixels, %d samples (%.1f per pixel, range %d - %d)",
		s.TotalPixels, s.TotalSamples, s.AverageSamples, s.MinSamples, s.MaxSamplesUsed)
}

// PixelStats accumulates the samples taken for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // Linear-space RGB sum
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Frame holds per-pixel accumulators in row-major order, row 0 at the top
type Frame struct {
	Width, Height int
	Pixels        []PixelStats
}

// NewFrame creates an empty frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]PixelStats, width*height),
	}
}

// At returns the accumulator for pixel (x, y)
func (f *Frame) At(x, y int) *PixelStats {
	return &f.Pixels[y*f.Width+x]
}

// WriteTo hands every pixel's sum and sample count to sink, top row first
func (f *Frame) WriteTo(sink PixelSink) error {
	for i := range f.Pixels {
		ps := &f.Pixels[i]
		if err := sink.WritePixel(ps.ColorAccum, ps.SampleCount); err != nil {
			return fmt.Errorf("renderer: write pixel (%d, %d): %w", i%f.Width, i/f.Width, err)
		}
	}
	return nil
}

// Stats computes sample statistics over the whole frame
func (f *Frame) Stats(maxSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: len(f.Pixels),
		MaxSamples:  maxSamples,
		MinSamples:  maxSamples, // Start high, will be reduced
	}
	for i := range f.Pixels {
		count := f.Pixels[i].SampleCount
		stats.TotalSamples += count
		stats.MinSamples = min(stats.MinSamples, count)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
	}
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}
