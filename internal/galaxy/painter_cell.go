package galaxy

import (
	"math"

	"github.com/micro-editor/tcell/v2"
)

// CellPainter draws a field onto terminal cells. Each cell covers
// CellW×CellH abstract pixels of the field.
type CellPainter struct {
	CellW, CellH float64

	// Gain brightens the sky so faint gradients survive on a terminal palette
	Gain float64
}

// NewCellPainter returns a painter with roughly square cells
func NewCellPainter() *CellPainter {
	return &CellPainter{CellW: 8, CellH: 16, Gain: 1.6}
}

// FieldSize returns the field size in pixels for a cols×rows screen
func (p *CellPainter) FieldSize(cols, rows int) (float64, float64) {
	return float64(cols) * p.CellW, float64(rows) * p.CellH
}

// Paint fills every cell of the screen with the sky, then draws stars and
// streaks on top
func (p *CellPainter) Paint(screen tcell.Screen, f *Field) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}

	sky := make([]RGB, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := f.Shade((float64(x)+0.5)*p.CellW, (float64(y)+0.5)*p.CellH).Scale(p.Gain)
			sky[y*cols+x] = c
			screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(color(c)))
		}
	}

	cellOf := func(fx, fy float64) (int, int, bool) {
		x, y := int(fx/p.CellW), int(fy/p.CellH)
		return x, y, fx >= 0 && fy >= 0 && x < cols && y < rows
	}

	for _, s := range f.Stars() {
		x, y, ok := cellOf(s.X, s.Y)
		if !ok {
			continue
		}
		bg := sky[y*cols+x]
		fg := bg.Over(s.Color, s.Brightness)
		screen.SetContent(x, y, StarGlyph(s), nil, tcell.StyleDefault.Foreground(color(fg)).Background(color(bg)))
	}

	f.EachStreak(func(_ StreakRef, s Streak) {
		ex, ey := s.End()
		glyph := StreakGlyph((ex-s.X)/p.CellW, (ey-s.Y)/p.CellH)

		// Sample at half-cell steps so the line has no gaps
		steps := int(math.Ceil(s.Length/(math.Min(p.CellW, p.CellH)/2))) + 1
		alpha := s.Alpha()
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			x, y, ok := cellOf(s.X+(ex-s.X)*t, s.Y+(ey-s.Y)*t)
			if !ok {
				continue
			}
			// The ray is brightest in the middle and fades to nothing at both ends
			a := alpha * (1 - math.Abs(2*t-1))
			if a < 0.05 {
				continue
			}
			bg := sky[y*cols+x]
			fg := bg.Over(s.Color, a)
			screen.SetContent(x, y, glyph, nil, tcell.StyleDefault.Foreground(color(fg)).Background(color(bg)))
		}
	})
}

// StarGlyph picks a rune for a star by its apparent brightness
func StarGlyph(s Star) rune {
	switch l := s.Brightness * (0.5 + s.Radius/3); {
	case l < 0.3:
		return '·'
	case l < 0.6:
		return '•'
	default:
		return '*'
	}
}

// StreakGlyph picks a line rune for a direction given in cell units.
// Screen y grows downward.
func StreakGlyph(dx, dy float64) rune {
	deg := math.Atan2(-dy, dx) * 180 / math.Pi
	if deg < 0 {
		deg += 180
	}
	switch {
	case deg < 22.5 || deg >= 157.5:
		return '-'
	case deg < 67.5:
		return '/'
	case deg < 112.5:
		return '|'
	default:
		return '\\'
	}
}

func color(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
