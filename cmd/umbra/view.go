package main

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/umbra/pkg/config"
	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/render"
)

// Axis eases a value toward its target with a critically damped spring.
type Axis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

// NewAxis creates an axis at rest on v.
func NewAxis(fps int, v float64) Axis {
	return Axis{
		Position: v,
		Target:   v,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update moves the position one frame toward the target.
func (a *Axis) Update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
}

// Orbit places the camera on a sphere around a fixed center.
type Orbit struct {
	Yaw, Pitch, Distance Axis
	center               math3d.Vec3
	fps                  int
	yaw, pitch, distance float64
}

// NewOrbit starts an orbit matching camera.
func NewOrbit(camera *render.Camera, fps int) *Orbit {
	offset := camera.Eye.Sub(camera.Target)
	dist := camera.Distance()
	o := &Orbit{
		center:   camera.Target,
		fps:      fps,
		yaw:      math.Atan2(offset.Y, offset.X),
		pitch:    math.Asin(clamp(offset.Z/dist, -1, 1)),
		distance: dist,
	}
	o.Reset()
	return o
}

// Reset returns to the starting point of view.
func (o *Orbit) Reset() {
	o.Yaw = NewAxis(o.fps, o.yaw)
	o.Pitch = NewAxis(o.fps, o.pitch)
	o.Distance = NewAxis(o.fps, o.distance)
}

// Turn moves the targets. Pitch stays short of the poles so the Z up
// vector never lines up with the view direction.
func (o *Orbit) Turn(yaw, pitch float64) {
	o.Yaw.Target += yaw
	o.Pitch.Target = clamp(o.Pitch.Target+pitch, -1.4, 1.4)
}

// Zoom scales the target distance.
func (o *Orbit) Zoom(f float64) {
	o.Distance.Target = clamp(o.Distance.Target*f, 0.5, 200)
}

// Update advances the springs and moves camera.
func (o *Orbit) Update(camera *render.Camera) error {
	o.Yaw.Update()
	o.Pitch.Update()
	o.Distance.Update()
	cp := math.Cos(o.Pitch.Position)
	dir := math3d.V3(cp*math.Cos(o.Yaw.Position), cp*math.Sin(o.Yaw.Position), math.Sin(o.Pitch.Position))
	return camera.Update(o.center.Add(dir.Scale(o.Distance.Position)), o.center, math3d.UnitZ())
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// viewProjection fits the projection to a terminal of cols x rows cells,
// two pixels per cell vertically.
func viewProjection(base render.ProjectionConfig, cols, rows int) render.ProjectionConfig {
	p := base
	p.PixelsPerUnit = float64(cols) / p.Width
	p.Height = float64(rows*2) / p.PixelsPerUnit
	return p
}

func runView(ctx context.Context, s *config.Scene, logger *log.Logger) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := render.NewTerminalSink(term, uv.Rectangle(image.Rect(0, 0, width, height)))
	r := render.NewRenderer(render.WithLogger(logger))
	orbit := NewOrbit(s.Camera, *targetFPS)
	cfg := s.Render
	proj := viewProjection(s.Projection, width, height)

	// Events are applied on the render loop so scene state has one owner.
	events := make(chan uv.Event, 16)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	const step = 0.15
	handle := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			sink.Resize(uv.Rectangle(image.Rect(0, 0, width, height)))
			proj = viewProjection(s.Projection, width, height)

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape", "q", "ctrl+c"):
				cancel()
			case ev.MatchString("a", "left"):
				orbit.Turn(-step, 0)
			case ev.MatchString("d", "right"):
				orbit.Turn(step, 0)
			case ev.MatchString("w", "up"):
				orbit.Turn(0, step)
			case ev.MatchString("s", "down"):
				orbit.Turn(0, -step)
			case ev.MatchString("+", "="):
				orbit.Zoom(0.9)
			case ev.MatchString("-", "_"):
				orbit.Zoom(1.1)
			case ev.MatchString("m"):
				cfg.Mode = (cfg.Mode + 1) % (render.Interpolated + 1)
				logger.Debug("render mode", "mode", cfg.Mode)
			case ev.MatchString("t"):
				cfg.Textures = !cfg.Textures
			case ev.MatchString("h"):
				cfg.Shadows = !cfg.Shadows
			case ev.MatchString("r"):
				orbit.Reset()
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				orbit.Zoom(0.9)
			case uv.MouseWheelDown:
				orbit.Zoom(1.1)
			}
		}
	}

	targetDuration := time.Second / time.Duration(max(*targetFPS, 1))
	for {
		now := time.Now()
	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				handle(ev)
			default:
				break drain
			}
		}

		if err := orbit.Update(s.Camera); err != nil {
			return err
		}
		if err := r.Render(s.World, s.Lighting, s.Camera, cfg, proj); err != nil {
			return err
		}
		if err := r.Present(sink); err != nil {
			return fmt.Errorf("present: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
