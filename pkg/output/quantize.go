// Package output turns accumulated linear-space pixel sums into display
// values and writes them as PPM text or encoded images.
package output

import (
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// maxChannel is the largest value a channel may reach before scaling to 8 bits
const maxChannel = 0.999

// Quantize averages a color sum over its sample count, applies gamma 2
// correction and maps each channel to [0, 255]. A pixel with no samples is black.
func Quantize(sum core.Vec3, samples int) (r, g, b uint8) {
	if samples <= 0 {
		return 0, 0, 0
	}
	c := sum.Divide(float64(samples)).Sqrt().Clamp(0, maxChannel)
	return quantizeChannel(c.X), quantizeChannel(c.Y), quantizeChannel(c.Z)
}

// quantizeChannel scales a clamped channel to 8 bits. NaN survives the clamp
// (negative sums have no square root) and maps to 0.
func quantizeChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(256 * v)
}
