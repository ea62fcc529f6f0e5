// Package scene holds the element tree rendered by umbra: colors, textures,
// vertices, triangles, elements and the world that owns them.
package scene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB color with channels nominally in [0, 1].
// Intermediate lighting results may exceed that range until clamped.
type Color struct {
	R, G, B float64
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Gray  = Color{0.5, 0.5, 0.5}
)

// RGB creates a color from float channels.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// RGB8 creates a color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// ParseColor parses a "#rrggbb" or "#rgb" hex string.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %w", ErrInvalidColor, s, err)
	}
	return Color{c.R, c.G, c.B}, nil
}

// FromColor converts any image color, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{float64(r) / 0xffff, float64(g) / 0xffff, float64(b) / 0xffff}
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the channel-wise product.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Lerp interpolates between c and o.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// Clamp limits every channel to [0, 1]. NaN channels become 0.
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// ApproxEqual reports whether every channel differs by at most tol.
func (c Color) ApproxEqual(o Color, tol float64) bool {
	return math.Abs(c.R-o.R) <= tol && math.Abs(c.G-o.G) <= tol && math.Abs(c.B-o.B) <= tol
}

// RGBA converts to an opaque 8-bit color.
func (c Color) RGBA() color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: 255,
	}
}

// Hex returns the "#rrggbb" form of the clamped color.
func (c Color) Hex() string {
	c = c.Clamp()
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Hex()
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v > 0 {
		return v
	}
	return 0
}
