package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// PixelSink is a display surface the renderer can present frames to.
type PixelSink interface {
	Size() (width, height int)
	SetPixel(x, y int, c color.RGBA)
	GetPixel(x, y int) color.RGBA
	// Present makes the pixels written so far visible.
	Present() error
}

// Present copies fb into sink, rescaling it when the sizes differ, and
// presents the sink.
func Present(fb *Framebuffer, sink PixelSink) error {
	w, h := sink.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	if w == fb.Width && h == fb.Height {
		for y := range h {
			for x := range w {
				sink.SetPixel(x, y, fb.Pixels[y*fb.Width+x])
			}
		}
		return sink.Present()
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), fb.ToImage(), image.Rect(0, 0, fb.Width, fb.Height), draw.Src, nil)
	for y := range h {
		for x := range w {
			sink.SetPixel(x, y, dst.RGBAAt(x, y))
		}
	}
	return sink.Present()
}

// ImageSink collects frames in memory and optionally writes each
// presented frame to a PNG file.
type ImageSink struct {
	img *image.RGBA

	// Path, when set, receives a PNG on every Present.
	Path string
	// Frames counts successful presents.
	Frames int
}

// NewImageSink creates an in-memory sink.
func NewImageSink(width, height int, path string) *ImageSink {
	return &ImageSink{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		Path: path,
	}
}

// Size implements PixelSink.
func (s *ImageSink) Size() (width, height int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetPixel implements PixelSink.
func (s *ImageSink) SetPixel(x, y int, c color.RGBA) {
	s.img.SetRGBA(x, y, c)
}

// GetPixel implements PixelSink.
func (s *ImageSink) GetPixel(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

// Present implements PixelSink.
func (s *ImageSink) Present() error {
	if s.Path != "" {
		f, err := os.Create(s.Path)
		if err != nil {
			return fmt.Errorf("present: %w", err)
		}
		if err := png.Encode(f, s.img); err != nil {
			f.Close()
			return fmt.Errorf("present: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("present: %w", err)
		}
	}
	s.Frames++
	return nil
}

// Image returns the sink contents.
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}
