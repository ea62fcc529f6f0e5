package render

import (
	"fmt"
	"strings"
)

// RenderMode selects how triangles are filled.
type RenderMode int

const (
	Wireframe    RenderMode = iota // Triangle edges only
	Monochrome                     // One shade per triangle
	Plain                          // Lighting per vertex, interpolated (Gouraud)
	Interpolated                   // Lighting per pixel
)

var modeNames = [...]string{"wireframe", "monochrome", "plain", "interpolated"}

func (m RenderMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseRenderMode parses a mode name. "flat" and "gouraud" are accepted as
// aliases of monochrome and plain.
func ParseRenderMode(s string) (RenderMode, error) {
	switch name := strings.ToLower(strings.TrimSpace(s)); name {
	case "flat":
		return Monochrome, nil
	case "gouraud":
		return Plain, nil
	default:
		for i, n := range modeNames {
			if n == name {
				return RenderMode(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRenderMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m RenderMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RenderMode) UnmarshalText(b []byte) error {
	v, err := ParseRenderMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// RenderConfig holds the per-render switches.
type RenderConfig struct {
	Mode      RenderMode `toml:"mode" yaml:"mode"`
	Textures  bool       `toml:"textures" yaml:"textures"`
	Shadows   bool       `toml:"shadows" yaml:"shadows"`
	Landmarks bool       `toml:"landmarks" yaml:"landmarks"` // World axes overlay
	Normals   bool       `toml:"normals" yaml:"normals"`     // Vertex normal overlay

	// ShadowResolution is the side of the square shadow maps in pixels.
	ShadowResolution int `toml:"shadow_resolution" yaml:"shadow_resolution"`
	// ShadowBias is subtracted from a point's light-space depth, in
	// normalized device units, before comparing it with the shadow map.
	ShadowBias float64 `toml:"shadow_bias" yaml:"shadow_bias"`
	// FrustumCulling skips elements whose bounds lie outside the view.
	FrustumCulling bool `toml:"frustum_culling" yaml:"frustum_culling"`
}

// DefaultRenderConfig returns per-pixel shading with textures on and
// shadows off.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Mode:             Interpolated,
		Textures:         true,
		ShadowResolution: 1024,
		ShadowBias:       0.005,
		FrustumCulling:   true,
	}
}

// Validate reports unknown modes and unusable shadow settings.
func (c RenderConfig) Validate() error {
	if c.Mode < Wireframe || c.Mode > Interpolated {
		return fmt.Errorf("%w: %d", ErrInvalidRenderMode, int(c.Mode))
	}
	if c.Shadows && c.ShadowResolution < 1 {
		return fmt.Errorf("%w: shadow resolution %d", ErrInvalidRenderConfig, c.ShadowResolution)
	}
	if c.ShadowBias < 0 {
		return fmt.Errorf("%w: negative shadow bias %v", ErrInvalidRenderConfig, c.ShadowBias)
	}
	return nil
}
