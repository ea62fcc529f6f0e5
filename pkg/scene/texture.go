package scene

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterBilinear FilterMode = iota // Bilinear interpolation (smooth)
	FilterNearest                    // Nearest-neighbor (pixelated)
)

// Texture is an immutable-by-convention grid of colors.
//
// Texel (0, 0) is the top-left pixel of the source image. Texture space has
// u growing to the right and v growing upwards, so (0, 0) samples the
// bottom-left texel and (1, 1) the top-right one.
type Texture struct {
	Width  int
	Height int
	Pixels []Color // Row-major, top row first
	WrapU  WrapMode
	WrapV  WrapMode
	Filter FilterMode
}

// NewTexture creates a black texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
		WrapU:  WrapRepeat,
		WrapV:  WrapRepeat,
		Filter: FilterBilinear,
	}
}

// LoadTexture decodes an image file into a texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	return DecodeTexture(f)
}

// DecodeTexture decodes any registered image format into a texture.
func DecodeTexture(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies an image into a new texture.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())

	for y := range tex.Height {
		for x := range tex.Width {
			tex.SetPixel(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	tex.Filter = FilterNearest
	checkSize = max(checkSize, 1)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// SetPixel sets the texel at (x, y). Out-of-range writes are ignored.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the texel at (x, y), or black when out of range.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample returns the color at texture coordinates (u, v).
// Corner coordinates map exactly onto corner texel centers.
func (t *Texture) Sample(u, v float64) Color {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	if math.IsNaN(u) || math.IsNaN(v) {
		return t.GetPixel(0, 0)
	}

	u = wrapCoord(u, t.WrapU)
	v = 1 - wrapCoord(v, t.WrapV)

	if t.Filter == FilterNearest {
		return t.sampleNearest(u, v)
	}
	return t.sampleBilinear(u, v)
}

// wrapCoord maps a coordinate into [0, 1]. Repeat keeps 1 as 1 so the far
// edge stays addressable.
func wrapCoord(coord float64, mode WrapMode) float64 {
	switch mode {
	case WrapRepeat:
		f := coord - math.Floor(coord)
		if f == 0 && coord > 0 {
			return 1
		}
		return f
	default:
		return math.Max(0, math.Min(1, coord))
	}
}

func (t *Texture) sampleNearest(u, v float64) Color {
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.GetPixel(x, y)
}

func (t *Texture) sampleBilinear(u, v float64) Color {
	fx := u * float64(t.Width-1)
	fy := v * float64(t.Height-1)

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := wrapPixel(x0+1, t.Width, t.WrapU)
	y1 := wrapPixel(y0+1, t.Height, t.WrapV)

	c00 := t.GetPixel(x0, y0)
	c10 := t.GetPixel(x1, y0)
	c01 := t.GetPixel(x0, y1)
	c11 := t.GetPixel(x1, y1)

	top := c00.Lerp(c10, tx)
	bot := c01.Lerp(c11, tx)
	return top.Lerp(bot, ty)
}

func wrapPixel(x, size int, mode WrapMode) int {
	if mode == WrapRepeat {
		x %= size
		if x < 0 {
			x += size
		}
		return x
	}
	return min(max(x, 0), size-1)
}
