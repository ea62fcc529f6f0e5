package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/umbra/pkg/math3d"
)

// ProjectionType selects between perspective and parallel projection.
type ProjectionType int

const (
	FrustumProjection ProjectionType = iota // Perspective
	Orthographic                            // Parallel
)

func (t ProjectionType) String() string {
	switch t {
	case FrustumProjection:
		return "frustum"
	case Orthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("ProjectionType(%d)", int(t))
	}
}

// ParseProjectionType parses "frustum" (or "perspective") and
// "orthographic" (or "ortho").
func ParseProjectionType(s string) (ProjectionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "frustum", "perspective":
		return FrustumProjection, nil
	case "orthographic", "ortho":
		return Orthographic, nil
	default:
		return 0, fmt.Errorf("%w: unknown type %q", ErrInvalidProjection, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ProjectionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ProjectionType) UnmarshalText(b []byte) error {
	v, err := ParseProjectionType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ProjectionConfig describes the view volume and the output raster.
//
// Width and Height give the size, in world units, of the projection window
// placed Distance units in front of the eye. The output image measures
// round(Width*PixelsPerUnit) by round(Height*PixelsPerUnit) pixels.
type ProjectionConfig struct {
	Type          ProjectionType `toml:"type" yaml:"type"`
	PixelsPerUnit float64        `toml:"pixels_per_unit" yaml:"pixels_per_unit"`
	Near          float64        `toml:"near" yaml:"near"`
	Far           float64        `toml:"far" yaml:"far"`
	Width         float64        `toml:"width" yaml:"width"`
	Height        float64        `toml:"height" yaml:"height"`
	// Distance of the projection window from the eye. Zero places it on
	// the near plane. Ignored by orthographic projections.
	Distance float64 `toml:"distance" yaml:"distance"`
}

// DefaultProjection returns a 400x300 perspective projection.
func DefaultProjection() ProjectionConfig {
	return ProjectionConfig{
		Type:          FrustumProjection,
		PixelsPerUnit: 100,
		Near:          0.5,
		Far:           100,
		Width:         4,
		Height:        3,
		Distance:      4,
	}
}

// MaxImageSide bounds either raster dimension so a framebuffer stays
// allocatable.
const MaxImageSide = 16384

// Validate reports configurations that cannot produce a projection.
func (p ProjectionConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidProjection, fmt.Sprintf(format, args...))
	}
	switch {
	case p.Type != FrustumProjection && p.Type != Orthographic:
		return invalid("unknown type %d", int(p.Type))
	case !(p.PixelsPerUnit > 0) || math.IsInf(p.PixelsPerUnit, 0):
		return invalid("pixels per unit must be positive, got %v", p.PixelsPerUnit)
	case !(p.Width > 0) || !(p.Height > 0):
		return invalid("window must have a positive size, got %vx%v", p.Width, p.Height)
	case !(p.Near < p.Far) || math.IsInf(p.Far, 0):
		return invalid("near (%v) must be smaller than far (%v)", p.Near, p.Far)
	case p.Type == FrustumProjection && !(p.Near > 0):
		return invalid("frustum near must be positive, got %v", p.Near)
	case p.Distance < 0:
		return invalid("distance must not be negative, got %v", p.Distance)
	}
	if w, h := p.ImageSize(); w < 1 || h < 1 || w > MaxImageSide || h > MaxImageSide {
		return invalid("image would be %dx%d pixels, sides must be in [1, %d]", w, h, MaxImageSide)
	}
	return nil
}

// ImageSize returns the raster dimensions in pixels.
func (p ProjectionConfig) ImageSize() (width, height int) {
	return int(math.Round(p.Width * p.PixelsPerUnit)), int(math.Round(p.Height * p.PixelsPerUnit))
}

// Matrix returns the view-to-clip matrix. The configuration must be valid.
func (p ProjectionConfig) Matrix() math3d.Mat4 {
	hw, hh := p.Width/2, p.Height/2
	if p.Type == Orthographic {
		return math3d.Orthographic(-hw, hw, -hh, hh, p.Near, p.Far)
	}
	d := p.Distance
	if d == 0 {
		d = p.Near
	}
	// Scale the window from the projection plane back to the near plane.
	s := p.Near / d
	return math3d.Frustum(-hw*s, hw*s, -hh*s, hh*s, p.Near, p.Far)
}
