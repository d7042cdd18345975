package output

import (
	"math"
	"testing"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		sum      core.Vec3
		samples  int
		expected [3]uint8
	}{
		{"black", core.NewVec3(0, 0, 0), 10, [3]uint8{0, 0, 0}},
		{"white clamps to 255", core.NewVec3(100, 100, 100), 100, [3]uint8{255, 255, 255}},
		{"over bright clamps", core.NewVec3(500, 2, 0), 100, [3]uint8{255, 36, 0}},
		{"quarter becomes half", core.NewVec3(25, 25, 25), 100, [3]uint8{128, 128, 128}},
		{"no samples", core.NewVec3(1, 1, 1), 0, [3]uint8{0, 0, 0}},
		{"negative clamps", core.NewVec3(-1, 0.01, 0.04), 1, [3]uint8{0, 25, 51}},
		{"nan is black", core.NewVec3(math.NaN(), 0.25, 1), 1, [3]uint8{0, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := Quantize(tt.sum, tt.samples)
			if got := [3]uint8{r, g, b}; got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
