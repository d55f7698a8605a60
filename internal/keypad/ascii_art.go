package keypad

import "github.com/micro-editor/tcell/v2"

// Logo is drawn above the panel when the screen is tall enough
var Logo = []string{
	`▄▀▀ ▀█▀ ▄▀▄ █▀▄ ▄▀▀ ▄▀▄ █   ▄▀▀`,
	` ▀▄  █  █▀█ █▀▄ █   █▀█ █   █  `,
	`▀▀   ▀  ▀ ▀ ▀ ▀  ▀▀ ▀ ▀ ▀▀▀  ▀▀`,
}

// LogoWidth is the width of the logo
var LogoWidth = 31

// LogoHeight is the height of the logo
var LogoHeight = len(Logo)

// Tagline appears in the panel's top border
var Tagline = " ✦ starcalc ✦ "

// LogoStyleForChar colours the logo: full blocks in pink, half blocks in
// cyan for depth. The background is left to the galaxy underneath.
func LogoStyleForChar(ch rune, bg tcell.Color) tcell.Style {
	switch ch {
	case '█':
		return tcell.StyleDefault.Foreground(ColorMagenta).Background(bg).Bold(true)
	case '▀', '▄':
		return tcell.StyleDefault.Foreground(ColorCyan).Background(bg).Bold(true)
	default:
		return tcell.StyleDefault.Foreground(ColorMagenta).Background(bg)
	}
}
