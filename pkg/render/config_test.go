package render

import (
	"math"
	"testing"

	"github.com/taigrr/umbra/pkg/math3d"
)

func TestProjectionValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *ProjectionConfig)
		ok     bool
	}{
		{"default", func(*ProjectionConfig) {}, true},
		{"orthographic", func(p *ProjectionConfig) { p.Type = Orthographic; p.Near = 0 }, true},
		{"near equals far", func(p *ProjectionConfig) { p.Near = p.Far }, false},
		{"zero near frustum", func(p *ProjectionConfig) { p.Near = 0 }, false},
		{"unknown type", func(p *ProjectionConfig) { p.Type = 7 }, false},
		{"zero width", func(p *ProjectionConfig) { p.Width = 0 }, false},
		{"negative ppu", func(p *ProjectionConfig) { p.PixelsPerUnit = -1 }, false},
		{"nan height", func(p *ProjectionConfig) { p.Height = math.NaN() }, false},
		{"tiny image", func(p *ProjectionConfig) { p.PixelsPerUnit = 0.01 }, false},
		{"huge image", func(p *ProjectionConfig) { p.PixelsPerUnit = 1e9 }, false},
		{"largest image", func(p *ProjectionConfig) { p.PixelsPerUnit = MaxImageSide / math.Max(p.Width, p.Height) }, true},
		{"negative distance", func(p *ProjectionConfig) { p.Distance = -1 }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultProjection()
			tc.modify(&p)
			if err := p.Validate(); (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tc.ok)
			}
		})
	}
}

func TestProjectionWindow(t *testing.T) {
	// A point on the corner of the projection window lands on the corner of
	// the image, whatever the near plane.
	for _, near := range []float64{0.1, 0.5, 2} {
		p := DefaultProjection()
		p.Near = near
		m := p.Matrix()
		clip := m.MulVec4(math3d.Point(math3d.V3(p.Width/2, p.Height/2, -p.Distance)))
		ndc, ok := clip.PerspectiveDivide()
		if !ok {
			t.Fatalf("near %v: point behind the eye", near)
		}
		if math.Abs(ndc.X-1) > 1e-9 || math.Abs(ndc.Y-1) > 1e-9 {
			t.Errorf("near %v: corner at ndc %v, want (1, 1)", near, ndc)
		}
	}

	w, h := DefaultProjection().ImageSize()
	if w != 400 || h != 300 {
		t.Errorf("image size %dx%d, want 400x300", w, h)
	}
}

func TestParseNames(t *testing.T) {
	modes := map[string]RenderMode{
		"wireframe":     Wireframe,
		"Monochrome":    Monochrome,
		"flat":          Monochrome,
		"plain":         Plain,
		"gouraud":       Plain,
		" interpolated": Interpolated,
	}
	for s, want := range modes {
		got, err := ParseRenderMode(s)
		if err != nil || got != want {
			t.Errorf("ParseRenderMode(%q) = %v, %v; want %v", s, got, err, want)
		}
	}
	if _, err := ParseRenderMode("phong"); err == nil {
		t.Error("unknown mode should fail")
	}

	for _, pt := range []ProjectionType{FrustumProjection, Orthographic} {
		b, err := pt.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back ProjectionType
		if err := back.UnmarshalText(b); err != nil || back != pt {
			t.Errorf("round trip of %v gave %v, %v", pt, back, err)
		}
	}
}

func TestRenderConfigValidate(t *testing.T) {
	cfg := DefaultRenderConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
	cfg.Mode = RenderMode(-1)
	if err := cfg.Validate(); err == nil {
		t.Error("negative mode should fail")
	}
	cfg = DefaultRenderConfig()
	cfg.Shadows = true
	cfg.ShadowResolution = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero shadow resolution should fail")
	}
	cfg = DefaultRenderConfig()
	cfg.ShadowBias = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative bias should fail")
	}
}

func TestCamera(t *testing.T) {
	if _, err := NewCamera(math3d.Zero3(), math3d.Zero3(), math3d.UnitZ()); err == nil {
		t.Error("eye on target should fail")
	}
	if _, err := NewCamera(math3d.V3(0, 0, 5), math3d.Zero3(), math3d.UnitZ()); err == nil {
		t.Error("up parallel to the view direction should fail")
	}

	cam, err := NewCamera(math3d.V3(5, 0, 0), math3d.Zero3(), math3d.UnitZ())
	if err != nil {
		t.Fatal(err)
	}
	if err := cam.Update(math3d.Zero3(), math3d.Zero3(), math3d.UnitZ()); err == nil {
		t.Error("invalid update should fail")
	}
	if cam.Eye != math3d.V3(5, 0, 0) {
		t.Errorf("failed update moved the eye to %v", cam.Eye)
	}

	x, y, depth, ok := cam.WorldToScreen(math3d.Zero3(), DefaultProjection())
	if !ok || math.Abs(x-200) > 1e-9 || math.Abs(y-150) > 1e-9 {
		t.Errorf("target projected to (%v, %v) ok=%v, want image center", x, y, ok)
	}
	if depth <= -1 || depth >= 1 {
		t.Errorf("depth %v outside (-1, 1)", depth)
	}
	// World +Z is up on screen.
	if _, y2, _, _ := cam.WorldToScreen(math3d.V3(0, 0, 1), DefaultProjection()); y2 >= y {
		t.Errorf("point above target projected below it: %v >= %v", y2, y)
	}

	if err := cam.MoveForward(10); err != nil {
		t.Fatal(err)
	}
	if d := cam.Distance(); d <= 0 || d >= 5 {
		t.Errorf("distance after moving forward = %v", d)
	}
}
