package output

import (
	"image/color"
	"testing"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

func TestImageSink_RowMajorFromTop(t *testing.T) {
	sink := NewImageSink(2, 2)
	sums := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 1, 1),
	}
	for _, sum := range sums {
		if err := sink.WritePixel(sum, 1); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	expected := map[[2]int]color.RGBA{
		{0, 0}: {R: 255, A: 255},
		{1, 0}: {G: 255, A: 255},
		{0, 1}: {B: 255, A: 255},
		{1, 1}: {R: 255, G: 255, B: 255, A: 255},
	}
	img := sink.Image()
	for pos, want := range expected {
		if got := img.RGBAAt(pos[0], pos[1]); got != want {
			t.Errorf("Pixel %v: expected %v, got %v", pos, want, got)
		}
	}

	if err := sink.WritePixel(core.Vec3{}, 1); err == nil {
		t.Error("Expected error when writing past the last pixel")
	}
}
