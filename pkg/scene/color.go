package scene

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"golang.org/x/image/colornames"
)

// Color is a linear RGB color in scene files. It is written either as
// [r, g, b] with components in [0, 1] or as an SVG color name.
type Color core.Vec3

// Vec3 returns the color as a vector
func (c Color) Vec3() core.Vec3 {
	return core.Vec3(c)
}

// UnmarshalJSON accepts a 3 element array or a color name
func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return fmt.Errorf("scene: unknown color name %q", name)
		}
		*c = Color{
			X: float64(named.R) / 255,
			Y: float64(named.G) / 255,
			Z: float64(named.B) / 255,
		}
		return nil
	}

	var rgb []float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("scene: color must be a name or [r, g, b]: %w", err)
	}
	if len(rgb) != 3 {
		return fmt.Errorf("scene: color must be a name or [r, g, b], got %d components", len(rgb))
	}
	*c = Color{X: rgb[0], Y: rgb[1], Z: rgb[2]}
	return nil
}

// MarshalJSON writes the color as [r, g, b]
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{c.X, c.Y, c.Z})
}
