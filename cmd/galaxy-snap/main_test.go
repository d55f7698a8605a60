package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestSnapshot_Size(t *testing.T) {
	img, err := snapshot(snapOptions{Width: 64, Height: 48, Frames: 5, Seed: 3}, basicfont.Face7x13)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestSnapshot_SameSeedSameImage(t *testing.T) {
	a, err := snapshot(snapOptions{Width: 40, Height: 30, Frames: 10, Seed: 9}, basicfont.Face7x13)
	require.NoError(t, err)
	b, err := snapshot(snapOptions{Width: 40, Height: 30, Frames: 10, Seed: 9}, basicfont.Face7x13)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestSnapshot_CaptionChangesPixels(t *testing.T) {
	plain, err := snapshot(snapOptions{Width: 120, Height: 60, Seed: 2}, basicfont.Face7x13)
	require.NoError(t, err)
	captioned, err := snapshot(snapOptions{Width: 120, Height: 60, Seed: 2, Caption: "starcalc"}, basicfont.Face7x13)
	require.NoError(t, err)
	assert.NotEqual(t, plain.Pix, captioned.Pix)
}

func TestSnapshot_RejectsBadSize(t *testing.T) {
	_, err := snapshot(snapOptions{Width: 0, Height: 10}, basicfont.Face7x13)
	assert.Error(t, err)
	_, err = snapshot(snapOptions{Width: 10, Height: 10, Frames: -1}, basicfont.Face7x13)
	assert.Error(t, err)
}

func TestLoadFace_Default(t *testing.T) {
	face, err := loadFace("", 12)
	require.NoError(t, err)
	assert.Equal(t, basicfont.Face7x13, face)
}

func TestLoadFace_Missing(t *testing.T) {
	_, err := loadFace(filepath.Join(t.TempDir(), "nope.ttf"), 12)
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	img, err := snapshot(snapOptions{Width: 16, Height: 16, Seed: 1}, basicfont.Face7x13)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.png")
	size, err := writePNG(path, img)
	require.NoError(t, err)
	assert.True(t, size > 0)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
