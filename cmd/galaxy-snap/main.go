// galaxy-snap renders the starcalc background to a PNG, for screenshots
// and release notes.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/ellery/starcalc/internal/galaxy"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Caption colours, matching the calculator's accent
var (
	ColorCaption = color.RGBA{189, 147, 249, 255} // #bd93f9
	ColorShadow  = color.RGBA{0, 0, 0, 200}
)

// snapOptions are the flag values
type snapOptions struct {
	Width   int
	Height  int
	Frames  int
	Seed    int64
	Caption string
}

func main() {
	width := flag.Int("w", 960, "Image width in pixels")
	height := flag.Int("h", 540, "Image height in pixels")
	frames := flag.Int("frames", 120, "Frames to step before the snapshot")
	seed := flag.Int64("seed", 1, "Galaxy seed")
	output := flag.String("o", "galaxy.png", "Output PNG file")
	fontPath := flag.String("font", "", "Path to TTF/OTF font file for the caption (default: built-in 7x13)")
	fontSize := flag.Float64("size", 24, "Font size in points")
	caption := flag.String("caption", "starcalc", "Caption drawn in the bottom left corner, empty for none")
	flag.Parse()

	face, err := loadFace(*fontPath, *fontSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading font: %v\n", err)
		os.Exit(1)
	}
	defer face.Close()

	img, err := snapshot(snapOptions{
		Width:   *width,
		Height:  *height,
		Frames:  *frames,
		Seed:    *seed,
		Caption: *caption,
	}, face)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	size, err := writePNG(*output, img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s (%dx%d, %s)\n", *output, img.Bounds().Dx(), img.Bounds().Dy(), humanize.Bytes(uint64(size)))
}

// loadFace opens an opentype face, or the built-in bitmap face when path is empty
func loadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     144, // Retina
		Hinting: font.HintingFull,
	})
}

// snapshot steps a field for the requested number of frames and paints it
func snapshot(opts snapOptions, face font.Face) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Frames < 0 {
		return nil, fmt.Errorf("frames must not be negative, got %d", opts.Frames)
	}

	field := galaxy.NewField(float64(opts.Width), float64(opts.Height), galaxy.Options{Seed: opts.Seed})
	for i := 0; i < opts.Frames; i++ {
		field.Step()
	}

	img := galaxy.RasterPainter{}.Paint(field)
	if opts.Caption != "" {
		drawCaption(img, face, opts.Caption)
	}
	return img, nil
}

// drawCaption writes text in the bottom left corner with a drop shadow
func drawCaption(img *image.RGBA, face font.Face, text string) {
	metrics := face.Metrics()
	pad := metrics.Height.Ceil()
	x := pad
	y := img.Bounds().Dy() - pad + metrics.Ascent.Ceil()/2

	for _, layer := range []struct {
		dx, dy int
		col    color.RGBA
	}{
		{2, 2, ColorShadow},
		{0, 0, ColorCaption},
	} {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(layer.col),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(x + layer.dx), Y: fixed.I(y + layer.dy)},
		}
		d.DrawString(text)
	}
}

func writePNG(path string, img image.Image) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return 0, err
	}
	info, err := out.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
