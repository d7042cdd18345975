package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
)

// Config holds render settings from a JSON file and the command line.
// Zero values for Width, Samples and MaxDepth mean "use the scene's value";
// a zero Bias, Reflectance or Seed in a file takes the default, and only the
// matching flag can set it to zero.
type Config struct {
	Scene  string `json:"scene"`  // "default", "gradient" or a scene file path
	Output string `json:"output"` // Output path, "-" for PPM on stdout

	Width       int     `json:"width"`
	Samples     int     `json:"samples"`
	MaxDepth    int     `json:"max_depth"`
	Scatter     string  `json:"scatter"`
	Bias        float64 `json:"bias"`
	Reflectance float64 `json:"reflectance"`
	Seed        int64   `json:"seed"`

	Workers  int     `json:"workers"` // 1 renders with the sequential driver, -1 uses every CPU
	TileSize int     `json:"tile_size"`
	Passes   int     `json:"passes"`
	Scale    float64 `json:"scale"` // Resize factor applied before encoding images
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file's setting alone, except for the pointer fields,
// where nil means "not given" so an explicit zero can be chosen.
type Flags struct {
	Scene       string
	Output      string
	Width       int
	Samples     int
	MaxDepth    int
	Scatter     string
	Bias        *float64
	Reflectance *float64
	Seed        *int64
	Workers     int
	TileSize    int
	Passes      int
	Scale       float64
}

// Default returns the configuration used when no file is given
func Default() Config {
	var c Config
	c.Resolve(Flags{})
	return c
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI overrides and fills in any empty fields with defaults
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Samples > 0 {
		c.Samples = flags.Samples
	}
	if flags.MaxDepth > 0 {
		c.MaxDepth = flags.MaxDepth
	}
	if flags.Scatter != "" {
		c.Scatter = flags.Scatter
	}
	if flags.Workers != 0 {
		c.Workers = flags.Workers
	}
	if flags.TileSize > 0 {
		c.TileSize = flags.TileSize
	}
	if flags.Passes > 0 {
		c.Passes = flags.Passes
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}

	defaults := integrator.DefaultConfig()
	if c.Scene == "" {
		c.Scene = "default"
	}
	if c.Output == "" {
		c.Output = "-"
	}
	if c.Scatter == "" {
		c.Scatter = defaults.Policy.String()
	}
	if c.Bias == 0 {
		c.Bias = defaults.Bias
	}
	if c.Reflectance == 0 {
		c.Reflectance = defaults.Reflectance
	}
	if c.Seed == 0 {
		c.Seed = 42
	}

	// Explicit flags win over the defaults above, zero included
	if flags.Bias != nil {
		c.Bias = *flags.Bias
	}
	if flags.Reflectance != nil {
		c.Reflectance = *flags.Reflectance
	}
	if flags.Seed != nil {
		c.Seed = *flags.Seed
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Workers < 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.TileSize <= 0 {
		c.TileSize = 64
	}
	if c.Passes <= 0 {
		c.Passes = 5
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
}

// Validate reports settings that cannot be rendered
func (c Config) Validate() error {
	if c.Width < 0 || c.Samples < 0 || c.MaxDepth < 0 {
		return fmt.Errorf("config: width, samples and max_depth must not be negative")
	}
	if c.Bias < 0 {
		return fmt.Errorf("config: bias %g is negative", c.Bias)
	}
	if c.Reflectance < 0 {
		return fmt.Errorf("config: reflectance %g is negative", c.Reflectance)
	}
	if c.Reflectance > 1 {
		return fmt.Errorf("config: reflectance %g is above 1", c.Reflectance)
	}
	if _, err := integrator.ParseScatterPolicy(c.Scatter); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// IntegratorConfig applies the integrator settings on top of base
func (c Config) IntegratorConfig(base integrator.Config) (integrator.Config, error) {
	policy, err := integrator.ParseScatterPolicy(c.Scatter)
	if err != nil {
		return base, fmt.Errorf("config: %w", err)
	}
	base.Policy = policy
	base.Bias = c.Bias
	base.Reflectance = c.Reflectance
	if c.MaxDepth > 0 {
		base.MaxDepth = c.MaxDepth
	}
	return base, nil
}
