package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalSink presents frames on a terminal screen using half blocks: each
// cell shows two vertically stacked pixels, so the sink is twice as tall
// as the area in rows.
type TerminalSink struct {
	scr  uv.Screen
	area uv.Rectangle
	fb   *Framebuffer
}

// NewTerminalSink creates a sink drawing into area of scr.
func NewTerminalSink(scr uv.Screen, area uv.Rectangle) *TerminalSink {
	s := &TerminalSink{scr: scr}
	s.Resize(area)
	return s
}

// Resize changes the target area, discarding the pixels.
func (s *TerminalSink) Resize(area uv.Rectangle) {
	s.area = area
	s.fb = NewFramebuffer(max(area.Dx(), 0), max(area.Dy()*2, 0))
}

// Size implements PixelSink.
func (s *TerminalSink) Size() (width, height int) {
	return s.fb.Size()
}

// SetPixel implements PixelSink.
func (s *TerminalSink) SetPixel(x, y int, c color.RGBA) {
	s.fb.SetPixel(x, y, c)
}

// GetPixel implements PixelSink.
func (s *TerminalSink) GetPixel(x, y int) color.RGBA {
	return s.fb.GetPixel(x, y)
}

// Present draws the cells and, when the screen can flush itself, displays
// them.
func (s *TerminalSink) Present() error {
	s.fb.Draw(s.scr, s.area)
	if d, ok := s.scr.(interface{ Display() error }); ok {
		return d.Display()
	}
	return nil
}

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. The framebuffer height should be 2x the area height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// We use ▀ (upper half block) with fg=top color and bg=bottom color
	for row := 0; row < area.Dy(); row++ {
		topY := row * 2
		botY := topY + 1

		for col := 0; col < area.Dx() && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(col, topY)),
					Bg: cellColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(area.Min.X+col, area.Min.Y+row, cell)
		}
	}
}

// cellColor maps transparent pixels to the terminal default color.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
