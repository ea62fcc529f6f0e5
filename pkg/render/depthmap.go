package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
)

// DepthMap is a grid of normalized device depths in [-1, 1], smaller is
// nearer. Empty texels hold +Inf.
type DepthMap struct {
	Width  int
	Height int
	Depth  []float64 // Row-major, top row first
}

// NewDepthMap creates an empty depth map.
func NewDepthMap(width, height int) *DepthMap {
	d := &DepthMap{
		Width:  width,
		Height: height,
		Depth:  make([]float64, width*height),
	}
	d.Clear()
	return d
}

// Clear empties every texel.
func (d *DepthMap) Clear() {
	inf := math.Inf(1)
	for i := range d.Depth {
		d.Depth[i] = inf
	}
}

// At returns the depth at (x, y), +Inf when out of range.
func (d *DepthMap) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return math.Inf(1)
	}
	return d.Depth[y*d.Width+x]
}

// Set stores z at (x, y) unconditionally.
func (d *DepthMap) Set(x, y int, z float64) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return
	}
	d.Depth[y*d.Width+x] = z
}

// TestAndSet stores z when it is strictly nearer than the current value
// and reports whether it did. Equal depths keep the first writer.
func (d *DepthMap) TestAndSet(x, y int, z float64) bool {
	idx := y*d.Width + x
	if !(z < d.Depth[idx]) {
		return false
	}
	d.Depth[idx] = z
	return true
}

// Range returns the smallest and largest finite depths. ok is false when
// the map is empty.
func (d *DepthMap) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, z := range d.Depth {
		if math.IsInf(z, 0) || math.IsNaN(z) {
			continue
		}
		lo = min(lo, z)
		hi = max(hi, z)
		ok = true
	}
	return lo, hi, ok
}

// Normalized rescales the finite depths to [0, 1]. Empty texels map to 1.
func (d *DepthMap) Normalized() []float64 {
	out := make([]float64, len(d.Depth))
	lo, hi, ok := d.Range()
	span := hi - lo
	for i, z := range d.Depth {
		switch {
		case !ok || math.IsInf(z, 0) || math.IsNaN(z):
			out[i] = 1
		case span == 0:
			out[i] = 0
		default:
			out[i] = (z - lo) / span
		}
	}
	return out
}

// Image renders the normalized map as grayscale, near texels dark.
func (d *DepthMap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, d.Width, d.Height))
	for i, z := range d.Normalized() {
		img.Pix[(i/d.Width)*img.Stride+i%d.Width] = uint8(math.Round(z * 255))
	}
	return img
}

// ScaledImage renders the map at another size with nearest-neighbor
// sampling, so depth edges stay crisp.
func (d *DepthMap) ScaledImage(width, height int) image.Image {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), d.Image(), image.Rect(0, 0, d.Width, d.Height), draw.Src, nil)
	return dst
}

// SavePNG writes the grayscale image to path.
func (d *DepthMap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create depth image: %w", err)
	}
	defer f.Close()
	return png.Encode(f, d.Image())
}

