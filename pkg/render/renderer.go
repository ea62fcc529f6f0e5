package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/scene"
)

// RenderStats counts what happened during the last render.
type RenderStats struct {
	Elements       int // Elements visited
	ElementsCulled int // Elements skipped by frustum culling
	Triangles      int // Triangles submitted
	Discarded      int // Triangles outside the view volume
	Clipped        int // Triangles cut by the near plane
	Culled         int // Back faces skipped
	Degenerate     int // Triangles without area
	Pixels         int // Fragments that passed the depth test
}

// Renderer renders frames into a back buffer and swaps it to the front
// once the frame is complete. A failed render leaves the front buffer
// untouched.
type Renderer struct {
	logger *log.Logger
	front  *Framebuffer
	back   *Framebuffer
	stats  RenderStats
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for warnings and per-frame statistics.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer creates a renderer. It logs nothing unless a logger is set.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Front returns the last completed frame, nil before the first render.
func (r *Renderer) Front() *Framebuffer {
	return r.front
}

// Stats returns the statistics of the last completed frame.
func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// Present copies the last completed frame to sink.
func (r *Renderer) Present(sink PixelSink) error {
	if r.front == nil {
		return ErrNoFrame
	}
	return Present(r.front, sink)
}

// Render draws world as seen by camera. A nil lighting renders every
// surface black.
func (r *Renderer) Render(world *scene.World, lighting *Lighting, camera *Camera, cfg RenderConfig, proj ProjectionConfig) error {
	if world == nil || camera == nil {
		return ErrNilScene
	}
	if lighting == nil {
		lighting = NewLighting()
	}
	if err := proj.Validate(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	width, height := proj.ImageSize()
	back := r.back
	if back == nil || back.Width != width || back.Height != height {
		back = NewFramebuffer(width, height)
	}
	back.Clear(world.Background.RGBA())

	world.Walk(func(e *scene.Element, _ math3d.Mat4) {
		if e.Stale() {
			r.logger.Warn("element changed since last update", "element", e.Name)
		}
	})

	if cfg.Shadows {
		if err := r.shadowMaps(world, lighting, camera, cfg, proj); err != nil {
			return err
		}
	}

	var stats RenderStats
	vp := newViewport(camera.ViewMatrix(), proj.Matrix(), proj.Type == Orthographic, back.Depth)
	lines := &wireframe{vp: vp, fb: back}
	pass := &shadedPass{
		vp:       vp,
		fb:       back,
		mode:     cfg.Mode,
		textures: cfg.Textures,
		shader:   newShader(lighting, camera, proj, cfg.Shadows),
		stats:    &stats,
		lines:    lines,
	}
	if err := traverse(world, vp, pass, &stats, cfg.FrustumCulling); err != nil {
		return err
	}

	if cfg.Landmarks || cfg.Normals {
		radius := world.Bounds().Radius()
		if cfg.Landmarks {
			lines.DrawAxes(max(1, radius))
			lines.DrawLights(lighting, 0.1*max(1, radius))
		}
		if cfg.Normals {
			lines.DrawNormals(world, 0.1*max(radius, 1))
		}
	}

	r.front, r.back = back, r.front
	r.stats = stats
	r.logger.Debug("frame rendered",
		"size", fmt.Sprintf("%dx%d", width, height),
		"mode", cfg.Mode,
		"triangles", stats.Triangles,
		"culled", stats.Culled,
		"clipped", stats.Clipped,
		"pixels", stats.Pixels,
	)
	return nil
}

// shadowMaps regenerates the map of every shadow casting light. Lights
// that cannot frame the scene lose their map and a warning is logged.
func (r *Renderer) shadowMaps(world *scene.World, lighting *Lighting, camera *Camera, cfg RenderConfig, proj ProjectionConfig) error {
	for _, caster := range lighting.Casters() {
		sm, err := GenerateShadowMap(world, caster, camera, proj, cfg.ShadowResolution)
		if errors.Is(err, ErrNoShadowFrame) {
			r.logger.Warn("shadow map skipped", "light", fmt.Sprintf("%T", caster), "err", err)
			caster.SetShadowMap(nil)
			continue
		}
		if err != nil {
			return fmt.Errorf("shadow map: %w", err)
		}
		sm.Bias = cfg.ShadowBias
		caster.SetShadowMap(sm)
	}
	return nil
}

// Render draws a single frame with a throwaway renderer and returns it.
func Render(world *scene.World, lighting *Lighting, camera *Camera, cfg RenderConfig, proj ProjectionConfig) (*Framebuffer, error) {
	r := NewRenderer()
	if err := r.Render(world, lighting, camera, cfg, proj); err != nil {
		return nil, err
	}
	return r.Front(), nil
}
