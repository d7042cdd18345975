package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Format identifies an output encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case FormatPPM, FormatPNG, FormatWebP, FormatTGA:
		return Format(ext), nil
	}
	return "", fmt.Errorf("output: unsupported extension %q (want .ppm, .png, .webp or .tga)", filepath.Ext(path))
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatPPM:
		err = EncodePPM(w, img)
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatTGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("output: unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("output: encode %s: %w", format, err)
	}
	return nil
}

// Save encodes img to path, creating parent directories as needed
func Save(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("output: create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}

	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output: close %s: %w", path, err)
	}
	return nil
}

// Scale resizes img by factor. Downscaling uses CatmullRom, upscaling keeps
// hard pixel edges with NearestNeighbor. A factor of 1 returns img unchanged.
func Scale(img image.Image, factor float64) (image.Image, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("output: scale factor must be positive, got %g", factor)
	}
	if factor == 1 {
		return img, nil
	}

	b := img.Bounds()
	width := max(1, int(float64(b.Dx())*factor+0.5))
	height := max(1, int(float64(b.Dy())*factor+0.5))
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	var scaler draw.Scaler = draw.CatmullRom
	if factor > 1 {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}
