package galaxy

import (
	"image"
	imgcolor "image/color"
	"math"
)

// RasterPainter draws a field into an RGBA image at one pixel per field unit
type RasterPainter struct{}

// Paint renders the field. The image is allocated at the field's size.
func (RasterPainter) Paint(f *Field) *image.RGBA {
	w, h := int(math.Ceil(f.W)), int(math.Ceil(f.H))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, rgba(f.Shade(float64(x)+0.5, float64(y)+0.5)))
		}
	}

	for _, s := range f.Stars() {
		disc(img, s.X, s.Y, math.Max(s.Radius, 0.5), s.Color, s.Brightness)
	}

	f.EachStreak(func(_ StreakRef, s Streak) {
		ex, ey := s.End()
		steps := int(math.Ceil(s.Length))
		alpha := s.Alpha()
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			// Peak opacity of a ray is 0.3, fading to nothing at either end
			a := alpha * 0.3 * (1 - math.Abs(2*t-1))
			disc(img, s.X+(ex-s.X)*t, s.Y+(ey-s.Y)*t, s.Width/2, s.Color, a)
		}
	})

	return img
}

// disc blends a filled circle into img
func disc(img *image.RGBA, cx, cy, r float64, c RGB, a float64) {
	b := img.Bounds()
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !(image.Point{x, y}.In(b)) {
				continue
			}
			if math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) > r+0.5 {
				continue
			}
			dst := img.RGBAAt(x, y)
			img.SetRGBA(x, y, rgba(RGB{dst.R, dst.G, dst.B}.Over(c, a)))
		}
	}
}

func rgba(c RGB) imgcolor.RGBA {
	return imgcolor.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
