package keypad

import (
	"github.com/ellery/starcalc/internal/config"
	"github.com/micro-editor/tcell/v2"
)

// Neon palette (256-color safe)
var (
	ColorMagenta     = tcell.Color205 // #FF5FAF - Hot pink
	ColorMagentaDark = tcell.Color162 // #D75F87
	ColorCyan        = tcell.Color51  // #00FFFF
	ColorYellow      = tcell.Color226 // #FFFF00
	ColorRed         = tcell.Color203 // #FF5F5F

	ColorTextBright = tcell.ColorWhite
	ColorTextDim    = tcell.Color245 // #8A8A8A
	ColorTextMuted  = tcell.Color240 // #585858
)

// Theme holds the configurable colours and the styles derived from them
type Theme struct {
	Accent     tcell.Color
	Background tcell.Color
}

// NewTheme parses the appearance settings, falling back to the defaults
// for anything that isn't a colour
func NewTheme(a config.AppearanceSettings) Theme {
	return Theme{
		Accent:     config.ColorOr(a.AccentColor, config.DefaultAccentColor),
		Background: config.ColorOr(a.BackgroundColor, config.DefaultBackgroundColor),
	}
}

// All styles have explicit fg AND bg so light terminals don't bleed through

func (t Theme) Panel() tcell.Style {
	return tcell.StyleDefault.Foreground(ColorTextBright).Background(t.Background)
}

func (t Theme) Border() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Accent).Background(t.Background).Bold(true)
}

func (t Theme) Title() tcell.Style {
	return tcell.StyleDefault.Foreground(ColorMagenta).Background(t.Background).Bold(true)
}

func (t Theme) Toggle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Accent).Background(t.Background).Underline(true)
}

func (t Theme) Preview() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Accent).Background(t.Background)
}

func (t Theme) Expression() tcell.Style {
	return tcell.StyleDefault.Foreground(ColorTextBright).Background(t.Background).Bold(true)
}

func (t Theme) Error() tcell.Style {
	return tcell.StyleDefault.Foreground(ColorRed).Background(t.Background).Bold(true)
}

func (t Theme) Dim() tcell.Style {
	return tcell.StyleDefault.Foreground(ColorTextDim).Background(t.Background)
}

func (t Theme) Muted() tcell.Style {
	return tcell.StyleDefault.Foreground(ColorTextMuted).Background(t.Background)
}

func (t Theme) Match() tcell.Style {
	return tcell.StyleDefault.Foreground(ColorYellow).Background(t.Background).Bold(true)
}

func (t Theme) Selected() tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(ColorYellow).Bold(true)
}

// Button returns the style for a button, by what it does
func (t Theme) Button(b Button, focused bool) tcell.Style {
	if focused {
		return t.Selected()
	}
	switch {
	case b.Action == config.ActionEvaluate:
		return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(ColorMagenta).Bold(true)
	case b.Rune >= '0' && b.Rune <= '9', b.Rune == '.':
		return tcell.StyleDefault.Foreground(ColorTextBright).Background(tcell.Color236)
	case b.Rune != 0:
		return tcell.StyleDefault.Foreground(ColorCyan).Background(tcell.Color236).Bold(true)
	case b.Action == config.ActionClear || b.Action == config.ActionDelete:
		return tcell.StyleDefault.Foreground(ColorMagenta).Background(tcell.Color236).Bold(true)
	default:
		return tcell.StyleDefault.Foreground(t.Accent).Background(tcell.Color17)
	}
}
