package config

import (
	"testing"

	"github.com/micro-editor/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestStringToColor(t *testing.T) {
	tests := []struct {
		in   string
		want tcell.Color
		ok   bool
	}{
		{"cyan", tcell.ColorTeal, true},
		{"LightBlue", tcell.ColorBlue, true},
		{"brightmagenta", tcell.ColorFuchsia, true},
		{"128", tcell.Color128, true},
		{"0", tcell.ColorDefault, true},
		{"300", tcell.ColorDefault, false},
		{"#zzzzzz", tcell.ColorDefault, false},
		{"#12345", tcell.ColorDefault, false},
		{"chartreuse-ish", tcell.ColorDefault, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, ok := StringToColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestStringToColor_Hex(t *testing.T) {
	old := InTmux
	defer func() { InTmux = old }()

	InTmux = false
	c, ok := StringToColor("#deadbe")
	assert.True(t, ok)
	assert.Equal(t, tcell.GetColor("#deadbe"), c)

	InTmux = true
	c, ok = StringToColor("#ffffff")
	assert.True(t, ok)
	assert.Equal(t, tcell.PaletteColor(231), c)
}

func TestColorOr(t *testing.T) {
	assert.Equal(t, tcell.ColorTeal, ColorOr("nope", "cyan"))
	assert.Equal(t, tcell.ColorGreen, ColorOr("green", "cyan"))
}
