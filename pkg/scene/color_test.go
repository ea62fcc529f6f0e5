package scene

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 128.0/255, c.G, 1e-9)
	assert.InDelta(t, 0.0, c.B, 1e-9)
	assert.Equal(t, "#ff8000", c.Hex())

	_, err = ParseColor("orange-ish")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want color.RGBA
	}{
		{"black", Black, color.RGBA{0, 0, 0, 255}},
		{"white", White, color.RGBA{255, 255, 255, 255}},
		{"over range", RGB(2, -1, 0.5), color.RGBA{255, 0, 128, 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.RGBA())
		})
	}
}

func TestColorArithmetic(t *testing.T) {
	a := RGB(0.5, 0.25, 1)
	b := RGB(0.5, 0.5, 0.5)

	assert.True(t, a.Add(b).ApproxEqual(RGB(1, 0.75, 1.5), 1e-12))
	assert.True(t, a.Mul(b).ApproxEqual(RGB(0.25, 0.125, 0.5), 1e-12))
	assert.True(t, a.Scale(2).Clamp().ApproxEqual(RGB(1, 0.5, 1), 1e-12))
	assert.True(t, FromColor(color.RGBA{255, 0, 255, 255}).ApproxEqual(RGB(1, 0, 1), 1e-12))
}
