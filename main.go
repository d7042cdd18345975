package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/df07/go-diffuse-raytracer/pkg/config"
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
	"github.com/df07/go-diffuse-raytracer/pkg/output"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

const scenesDir = "scenes"

func main() {
	configPath := flag.String("config", "", "JSON render config file")
	sceneType := flag.String("scene", "", "Scene: 'default', 'gradient' or a path to a .json scene file")
	outputPath := flag.String("out", "", "Output file (.ppm, .png, .webp, .tga) or '-' for PPM on stdout")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	maxDepth := flag.Int("depth", 0, "Maximum bounces per path (0 = scene default)")
	scatter := flag.String("scatter", "", "Diffuse scatter policy: naive, lambertian or hemisphere")
	bias := flag.Float64("bias", 0, "Minimum hit distance for bounced rays (default 1e-4)")
	reflectance := flag.Float64("reflectance", 0, "Fraction of light kept per bounce (default 0.5)")
	seed := flag.Int64("seed", 0, "Random seed (default 42)")
	workers := flag.Int("workers", 0, "Workers; 1 (default) uses the sequential renderer, -1 uses every CPU")
	passes := flag.Int("passes", 0, "Progressive passes (default 5)")
	tileSize := flag.Int("tile", 0, "Tile size for parallel rendering (default 64)")
	scale := flag.Float64("scale", 0, "Resize factor applied to image output (default 1)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Diffuse Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default  - A diffuse sphere on a large ground sphere")
		fmt.Println("  gradient - 256x256 UV gradient test image, no ray tracing")
		fmt.Println("  <file>   - JSON scene file, see scenes/ for examples")
		return
	}

	cfg := config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	flags := config.Flags{
		Scene:    *sceneType,
		Output:   *outputPath,
		Width:    *width,
		Samples:  *samples,
		MaxDepth: *maxDepth,
		Scatter:  *scatter,
		Workers:  *workers,
		TileSize: *tileSize,
		Passes:   *passes,
		Scale:    *scale,
	}
	// Only flags given on the command line override, so zero can be chosen
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bias":
			flags.Bias = bias
		case "reflectance":
			flags.Reflectance = reflectance
		case "seed":
			flags.Seed = seed
		}
	})
	cfg.Resolve(flags)

	if err := run(context.Background(), cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders the configured scene. Progress goes to stderr when the image
// itself is written to stdout.
func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logOut := stdout
	if cfg.Output == "-" {
		logOut = stderr
	}
	logger := renderer.NewWriterLogger(logOut)

	if cfg.Scene == "gradient" {
		gradient := scene.NewGradientTestImage()
		return writeImage(cfg, gradient.Width, gradient.Height, stdout, logger, func(sink renderer.PixelSink) error {
			return gradient.Render(sink, logger)
		})
	}

	selectedScene, err := createScene(cfg.Scene)
	if err != nil {
		return err
	}
	if cfg.Width > 0 {
		selectedScene.SetWidth(cfg.Width)
	}
	if cfg.Samples > 0 {
		selectedScene.SamplingConfig.SamplesPerPixel = cfg.Samples
	}
	integratorConfig, err := cfg.IntegratorConfig(selectedScene.IntegratorConfig)
	if err != nil {
		return err
	}
	selectedScene.IntegratorConfig = integratorConfig

	w, h := selectedScene.SamplingConfig.Width, selectedScene.SamplingConfig.Height
	spp := selectedScene.SamplingConfig.SamplesPerPixel
	integ := integrator.NewDiffuseIntegrator(integratorConfig)

	logger.Printf("Rendering %s at %dx%d, %d samples per pixel, %s scatter, %d workers\n",
		cfg.Scene, w, h, spp, integratorConfig.Policy, cfg.Workers)
	startTime := time.Now()

	err = writeImage(cfg, w, h, stdout, logger, func(sink renderer.PixelSink) error {
		if cfg.Workers == 1 {
			raytracer := renderer.NewRaytracer(selectedScene, w, h, integ)
			raytracer.SetSamplingConfig(renderer.SamplingConfig{SamplesPerPixel: spp, Seed: cfg.Seed})
			raytracer.SetLogger(logger)
			return raytracer.Render(sink)
		}

		progressive := renderer.NewProgressiveRaytracer(selectedScene, w, h, integ, renderer.ProgressiveConfig{
			TileSize:           cfg.TileSize,
			InitialSamples:     1,
			MaxSamplesPerPixel: spp,
			MaxPasses:          cfg.Passes,
			NumWorkers:         cfg.Workers,
			Seed:               cfg.Seed,
		}, logger)
		stats, err := progressive.Render(ctx, sink)
		if err != nil {
			return err
		}
		logger.Printf("Rendered %s\n", stats.Summary())
		return nil
	})
	if err != nil {
		return err
	}

	logger.Printf("Render completed in %v\n", time.Since(startTime))
	return nil
}

// createScene resolves a scene name or scene file path
func createScene(sceneType string) (*scene.Scene, error) {
	return scene.Load(sceneType, scenesDir)
}

// writeImage hands render a sink for the configured output. PPM without
// scaling streams straight to the destination; everything else goes through
// an in-memory image.
func writeImage(cfg config.Config, width, height int, stdout io.Writer, logger core.Logger, render func(renderer.PixelSink) error) error {
	format := output.FormatPPM
	if cfg.Output != "-" {
		var err error
		if format, err = output.FormatFromPath(cfg.Output); err != nil {
			return err
		}
	}

	if format == output.FormatPPM && cfg.Scale == 1 {
		return streamPPM(cfg.Output, width, height, stdout, logger, render)
	}

	sink := output.NewImageSink(width, height)
	if err := render(sink); err != nil {
		return err
	}
	img, err := output.Scale(sink.Image(), cfg.Scale)
	if err != nil {
		return err
	}

	if cfg.Output == "-" {
		return output.EncodePPM(stdout, img)
	}
	if err := output.Save(cfg.Output, img); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", cfg.Output)
	return nil
}

func streamPPM(path string, width, height int, stdout io.Writer, logger core.Logger, render func(renderer.PixelSink) error) (err error) {
	w := stdout
	if path != "-" {
		file, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("output: create %s: %w", path, createErr)
		}
		defer func() {
			if cerr := file.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("output: close %s: %w", path, cerr)
			}
		}()
		w = file
	}

	ppm, err := output.NewPPMWriter(w, width, height)
	if err != nil {
		return err
	}
	if err := render(ppm); err != nil {
		return err
	}
	if err := ppm.Flush(); err != nil {
		return err
	}

	if path != "-" {
		logger.Printf("Render saved as %s\n", path)
	}
	return nil
}
