package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Scene != "default" || c.Output != "-" {
		t.Errorf("Unexpected scene/output: %q %q", c.Scene, c.Output)
	}
	if c.Scatter != "lambertian" || c.Bias != 1e-4 || c.Reflectance != 0.5 {
		t.Errorf("Unexpected integrator defaults: %+v", c)
	}
	if c.Workers != 1 || c.TileSize != 64 || c.Passes != 5 || c.Scale != 1 || c.Seed != 42 {
		t.Errorf("Unexpected renderer defaults: %+v", c)
	}
	if c.Width != 0 || c.Samples != 0 || c.MaxDepth != 0 {
		t.Errorf("Scene-owned settings should stay zero: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestResolve_AllCPUs(t *testing.T) {
	var c Config
	c.Resolve(Flags{Workers: -1})
	if c.Workers != runtime.NumCPU() {
		t.Errorf("Expected %d workers, got %d", runtime.NumCPU(), c.Workers)
	}
}

func TestResolve_ExplicitZero(t *testing.T) {
	zero := 0.0
	seed := int64(0)
	var c Config
	c.Resolve(Flags{Bias: &zero, Reflectance: &zero, Seed: &seed})
	if c.Bias != 0 || c.Reflectance != 0 || c.Seed != 0 {
		t.Errorf("Explicit zero flags should be kept: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Zero bias and reflectance should be valid: %v", err)
	}
}

func TestResolve_KeepsNegativeBias(t *testing.T) {
	c := Config{Bias: -1}
	c.Resolve(Flags{})
	if c.Bias != -1 {
		t.Fatalf("Negative bias should reach validation, got %g", c.Bias)
	}
	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "bias") {
		t.Errorf("Expected bias error, got %v", err)
	}
}

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.json")
	content := `{"scene": "scenes/dusk.json", "width": 320, "samples": 16, "scatter": "naive", "workers": 2}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c.Resolve(Flags{Samples: 64, Output: "out.png"})

	if c.Scene != "scenes/dusk.json" || c.Width != 320 || c.Workers != 2 {
		t.Errorf("File settings lost: %+v", c)
	}
	if c.Samples != 64 || c.Output != "out.png" {
		t.Errorf("Flags should override the file: %+v", c)
	}
	if c.Scatter != "naive" {
		t.Errorf("Expected naive scatter, got %q", c.Scatter)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil || !strings.HasPrefix(err.Error(), "config: read") {
		t.Errorf("Expected read error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"width": "wide"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.HasPrefix(err.Error(), "config: parse") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"reflectance above one", func(c *Config) { c.Reflectance = 1.5 }},
		{"negative reflectance", func(c *Config) { c.Reflectance = -0.5 }},
		{"negative bias", func(c *Config) { c.Bias = -1e-3 }},
		{"unknown scatter", func(c *Config) { c.Scatter = "mirror" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			if err := c.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestIntegratorConfig(t *testing.T) {
	c := Default()
	c.Scatter = "hemisphere"
	c.Reflectance = 0.3
	c.MaxDepth = 7

	base := integrator.DefaultConfig()
	got, err := c.IntegratorConfig(base)
	if err != nil {
		t.Fatalf("IntegratorConfig failed: %v", err)
	}
	if got.Policy != integrator.ScatterHemisphere || got.Reflectance != 0.3 || got.MaxDepth != 7 {
		t.Errorf("Unexpected integrator config %+v", got)
	}
	if got.SkyTop != base.SkyTop {
		t.Error("Sky colors should come from the base config")
	}

	c.MaxDepth = 0
	if got, _ := c.IntegratorConfig(base); got.MaxDepth != base.MaxDepth {
		t.Errorf("Zero max depth should keep the scene's %d, got %d", base.MaxDepth, got.MaxDepth)
	}
}
