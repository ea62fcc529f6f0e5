package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

// twoByTwo returns a texture whose image rows are (red, green) then
// (blue, white).
func twoByTwo() *Texture {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, RGB(1, 0, 0))
	tex.SetPixel(1, 0, RGB(0, 1, 0))
	tex.SetPixel(0, 1, RGB(0, 0, 1))
	tex.SetPixel(1, 1, RGB(1, 1, 1))
	return tex
}

func TestTextureBilinearCorners(t *testing.T) {
	for _, wrap := range []WrapMode{WrapRepeat, WrapClamp} {
		tex := twoByTwo()
		tex.WrapU, tex.WrapV = wrap, wrap

		tests := []struct {
			name string
			u, v float64
			want Color
		}{
			{"bottom left", 0, 0, RGB(0, 0, 1)},
			{"bottom right", 1, 0, RGB(1, 1, 1)},
			{"top left", 0, 1, RGB(1, 0, 0)},
			{"top right", 1, 1, RGB(0, 1, 0)},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				got := tex.Sample(tc.u, tc.v)
				assert.Equal(t, tc.want, got, "wrap %d", wrap)
			})
		}
	}
}

func TestTextureBilinearCenter(t *testing.T) {
	got := twoByTwo().Sample(0.5, 0.5)
	assert.True(t, got.ApproxEqual(RGB(0.5, 0.5, 0.5), 1e-12), "got %v", got)
}

func TestTextureNearest(t *testing.T) {
	tex := twoByTwo()
	tex.Filter = FilterNearest

	assert.Equal(t, RGB(0, 0, 1), tex.Sample(0.1, 0.1))
	assert.Equal(t, RGB(0, 1, 0), tex.Sample(0.9, 0.9))
}

func TestTextureWrap(t *testing.T) {
	tex := twoByTwo()
	tex.Filter = FilterNearest

	assert.Equal(t, tex.Sample(0.25, 0.25), tex.Sample(1.25, 2.25), "repeat")

	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp
	assert.Equal(t, tex.Sample(1, 1), tex.Sample(5, 5), "clamp")
	assert.Equal(t, tex.Sample(0, 0), tex.Sample(-3, -1), "clamp")
}

func TestTextureFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 13, 12))
	img.Set(10, 10, color.RGBA{255, 0, 0, 255})
	img.Set(12, 11, color.RGBA{0, 0, 255, 255})

	tex := TextureFromImage(img)
	assert.Equal(t, 3, tex.Width)
	assert.Equal(t, 2, tex.Height)
	assert.Equal(t, RGB(1, 0, 0), tex.GetPixel(0, 0))
	assert.Equal(t, RGB(0, 0, 1), tex.GetPixel(2, 1))
	assert.Equal(t, Color{}, tex.GetPixel(5, 5))
}

func TestCheckerTexture(t *testing.T) {
	tex := NewCheckerTexture(4, 4, 2, White, Black)
	assert.Equal(t, White, tex.GetPixel(0, 0))
	assert.Equal(t, Black, tex.GetPixel(2, 0))
	assert.Equal(t, White, tex.GetPixel(3, 3))
}
