package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/micro-editor/tcell/v2"
)

// InTmux is true if running inside tmux (needs 256-color safe palette)
var InTmux = os.Getenv("TMUX") != ""

// namedColors are the 16 ANSI colours. "bright" and "light" both pick the
// high-intensity half.
var namedColors = map[string][2]tcell.Color{
	"black":   {tcell.ColorBlack, tcell.ColorGray},
	"red":     {tcell.ColorMaroon, tcell.ColorRed},
	"green":   {tcell.ColorGreen, tcell.ColorLime},
	"yellow":  {tcell.ColorOlive, tcell.ColorYellow},
	"blue":    {tcell.ColorNavy, tcell.ColorBlue},
	"magenta": {tcell.ColorPurple, tcell.ColorFuchsia},
	"cyan":    {tcell.ColorTeal, tcell.ColorAqua},
	"white":   {tcell.ColorSilver, tcell.ColorWhite},
}

// StringToColor returns a tcell color from a colour name, a 256-colour
// palette number or a #rrggbb hex value
func StringToColor(str string) (tcell.Color, bool) {
	name := strings.ToLower(strings.TrimSpace(str))
	if name == "default" {
		return tcell.ColorDefault, true
	}
	bright := 0
	if rest, ok := strings.CutPrefix(name, "bright"); ok {
		name, bright = rest, 1
	} else if rest, ok := strings.CutPrefix(name, "light"); ok {
		name, bright = rest, 1
	}
	if pair, ok := namedColors[name]; ok {
		return pair[bright], true
	}

	if num, err := strconv.Atoi(str); err == nil {
		if num < 0 || num > 255 {
			return tcell.ColorDefault, false
		}
		return GetColor256(num), true
	}

	if isHexColor(str) {
		if InTmux {
			return hexTo256Color(str), true
		}
		return tcell.GetColor(str), true
	}
	return tcell.ColorDefault, false
}

// ColorOr parses str, falling back to def when it is not a colour
func ColorOr(str, def string) tcell.Color {
	if c, ok := StringToColor(str); ok {
		return c
	}
	c, _ := StringToColor(def)
	return c
}

func isHexColor(str string) bool {
	if len(str) != 7 || str[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(str[1:], 16, 32)
	return err == nil
}

// hexTo256Color converts a hex color string to the closest 256-palette color
func hexTo256Color(hex string) tcell.Color {
	var r, g, b int
	fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)

	// 216-colour cube, 16 + 36*r + 6*g + b with each channel in 0-5
	ri := (r * 5) / 255
	gi := (g * 5) / 255
	bi := (b * 5) / 255

	return tcell.PaletteColor(16 + 36*ri + 6*gi + bi)
}

// GetColor256 returns the tcell color for a number between 0 and 255
func GetColor256(color int) tcell.Color {
	if color == 0 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(color)
}
