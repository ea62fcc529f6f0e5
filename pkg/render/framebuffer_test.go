package render

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramebufferDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	white := color.RGBA{255, 255, 255, 255}

	fb.DrawLine(0, 0, 9, 9, white)
	for i := range 10 {
		assert.Equal(t, white, fb.GetPixel(i, i))
	}
	assert.Equal(t, 10, fb.CountNot(color.RGBA{}))

	// Out of bounds pixels are ignored.
	fb.DrawLine(-5, 2, 20, 2, white)
	assert.Equal(t, white, fb.GetPixel(0, 2))
	assert.Equal(t, white, fb.GetPixel(9, 2))
	assert.Equal(t, color.RGBA{}, fb.GetPixel(-1, 2))
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Depth.Set(1, 1, 0.5)
	c := color.RGBA{1, 2, 3, 255}
	fb.Clear(c)

	assert.Zero(t, fb.CountNot(c))
	assert.True(t, math.IsInf(fb.Depth.At(1, 1), 1))

	clone := fb.Clone()
	clone.SetPixel(0, 0, color.RGBA{})
	assert.Equal(t, c, fb.GetPixel(0, 0), "clone should not share pixels")
}

func TestDepthMapNormalized(t *testing.T) {
	d := NewDepthMap(2, 2)
	d.Set(0, 0, -0.5)
	d.Set(1, 0, 0.5)
	d.Set(0, 1, 0)

	lo, hi, ok := d.Range()
	require.True(t, ok)
	assert.Equal(t, -0.5, lo)
	assert.Equal(t, 0.5, hi)
	assert.Equal(t, []float64{0, 1, 0.5, 1}, d.Normalized())

	img := d.Image()
	assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), img.GrayAt(1, 1).Y, "empty texels are far")

	scaled := d.ScaledImage(4, 4)
	assert.Equal(t, 4, scaled.Bounds().Dx())

	_, _, ok = NewDepthMap(3, 3).Range()
	assert.False(t, ok)
}

func TestDepthMapSavePNG(t *testing.T) {
	d := NewDepthMap(3, 2)
	d.Set(0, 0, 0.1)
	path := filepath.Join(t.TempDir(), "depth.png")
	require.NoError(t, d.SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestImageSinkPresent(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	red := color.RGBA{255, 0, 0, 255}
	fb.Clear(red)

	path := filepath.Join(t.TempDir(), "frame.png")
	sink := NewImageSink(2, 2, path)
	require.NoError(t, Present(fb, sink))
	assert.Equal(t, 1, sink.Frames)
	assert.Equal(t, red, sink.GetPixel(1, 1))
	_, err := os.Stat(path)
	assert.NoError(t, err)

	// Different sizes are rescaled.
	big := NewImageSink(8, 8, "")
	require.NoError(t, Present(fb, big))
	assert.Equal(t, red, big.GetPixel(4, 4))
	assert.Equal(t, red, big.Image().RGBAAt(7, 7))
}
