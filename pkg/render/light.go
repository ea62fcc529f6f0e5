package render

import (
	"math"

	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/scene"
)

// Illumination is what a light delivers to one world point.
type Illumination struct {
	// Direction is the unit vector from the point towards the light, zero
	// for ambient light.
	Direction math3d.Vec3
	// Intensity reaching the point, attenuation included.
	Intensity float64
	Color     scene.Color
	Ambient   bool
}

// Vector returns the light vector: Direction scaled by Intensity.
func (i Illumination) Vector() math3d.Vec3 {
	return i.Direction.Scale(i.Intensity)
}

// Light is a light source.
type Light interface {
	Illuminate(p math3d.Vec3) Illumination
}

// ShadowCaster is a light that can own a shadow map.
type ShadowCaster interface {
	Light
	// ShadowsEnabled reports whether the light should cast shadows.
	ShadowsEnabled() bool
	// ShadowMap returns the current map, nil before generation.
	ShadowMap() *ShadowMap
	SetShadowMap(m *ShadowMap)
	// frame returns the light camera and projection covering the sphere
	// (center, radius) around poi.
	frame(poi, center math3d.Vec3, radius float64) (view, proj math3d.Mat4, ok bool)
}

// shadowState is embedded by the lights that can cast shadows.
type shadowState struct {
	CastsShadows bool
	shadow       *ShadowMap
}

func (s *shadowState) ShadowsEnabled() bool { return s.CastsShadows }

func (s *shadowState) ShadowMap() *ShadowMap { return s.shadow }

func (s *shadowState) SetShadowMap(m *ShadowMap) { s.shadow = m }

// AmbientLight lights every point equally.
type AmbientLight struct {
	Color     scene.Color
	Intensity float64
}

// NewAmbientLight creates an ambient light.
func NewAmbientLight(c scene.Color, intensity float64) *AmbientLight {
	return &AmbientLight{Color: c, Intensity: intensity}
}

func (l *AmbientLight) Illuminate(math3d.Vec3) Illumination {
	return Illumination{Intensity: l.Intensity, Color: l.Color, Ambient: true}
}

// DirectionalLight is a light at infinity, like the sun.
type DirectionalLight struct {
	// Direction the light travels in.
	Direction math3d.Vec3
	Color     scene.Color
	Intensity float64
	shadowState
}

// NewDirectionalLight creates a directional light travelling along dir.
func NewDirectionalLight(dir math3d.Vec3, c scene.Color, intensity float64) *DirectionalLight {
	return &DirectionalLight{Direction: dir, Color: c, Intensity: intensity}
}

func (l *DirectionalLight) Illuminate(math3d.Vec3) Illumination {
	d, ok := l.Direction.Negate().TryNormalize()
	if !ok {
		return Illumination{}
	}
	return Illumination{Direction: d, Intensity: l.Intensity, Color: l.Color}
}

func (l *DirectionalLight) frame(poi, center math3d.Vec3, radius float64) (view, proj math3d.Mat4, ok bool) {
	dir, ok := l.Direction.TryNormalize()
	if !ok || radius <= 0 {
		return view, proj, false
	}
	// Cover the scene sphere as seen from a window centered on poi.
	r := radius + poi.Distance(center)
	eye := poi.Sub(dir.Scale(2 * r))
	view, ok = math3d.LookAt(eye, poi, upFor(dir))
	if !ok {
		return view, proj, false
	}
	return view, math3d.Orthographic(-r, r, -r, r, r, 3*r), true
}

// PointLight shines in every direction from Position.
type PointLight struct {
	Position  math3d.Vec3
	Color     scene.Color
	Intensity float64
	// MaxDistance is the range of the light. Zero or less means unlimited.
	MaxDistance float64
	shadowState
}

// NewPointLight creates a point light.
func NewPointLight(pos math3d.Vec3, c scene.Color, intensity, maxDistance float64) *PointLight {
	return &PointLight{Position: pos, Color: c, Intensity: intensity, MaxDistance: maxDistance}
}

func (l *PointLight) Illuminate(p math3d.Vec3) Illumination {
	return pointIllumination(l.Position, p, l.Color, l.Intensity, l.MaxDistance)
}

func (l *PointLight) frame(poi, center math3d.Vec3, radius float64) (view, proj math3d.Mat4, ok bool) {
	return perspectiveFrame(l.Position, poi, center, radius)
}

// SpotLight is a point light restricted to a cone.
type SpotLight struct {
	Position math3d.Vec3
	// Direction is the cone axis.
	Direction   math3d.Vec3
	Color       scene.Color
	Intensity   float64
	MaxDistance float64
	// InnerAngle and OuterAngle are half angles in radians. Points inside
	// the inner cone get full intensity, fading to zero at the outer cone.
	InnerAngle float64
	OuterAngle float64
	shadowState
}

// NewSpotLight creates a spot light.
func NewSpotLight(pos, dir math3d.Vec3, c scene.Color, intensity, maxDistance, inner, outer float64) *SpotLight {
	return &SpotLight{
		Position:    pos,
		Direction:   dir,
		Color:       c,
		Intensity:   intensity,
		MaxDistance: maxDistance,
		InnerAngle:  inner,
		OuterAngle:  outer,
	}
}

func (l *SpotLight) Illuminate(p math3d.Vec3) Illumination {
	il := pointIllumination(l.Position, p, l.Color, l.Intensity, l.MaxDistance)
	axis, ok := l.Direction.TryNormalize()
	if !ok || il.Intensity == 0 {
		return il
	}
	cosAngle := il.Direction.Negate().Dot(axis)
	il.Intensity *= smoothstep(math.Cos(l.OuterAngle), math.Cos(l.InnerAngle), cosAngle)
	return il
}

func (l *SpotLight) frame(poi, center math3d.Vec3, radius float64) (view, proj math3d.Mat4, ok bool) {
	return perspectiveFrame(l.Position, poi, center, radius)
}

// pointIllumination applies the linear range falloff
// clamp((max - d) / max, 0, 1).
func pointIllumination(pos, p math3d.Vec3, c scene.Color, intensity, maxDistance float64) Illumination {
	toLight := pos.Sub(p)
	d := toLight.Len()
	dir, ok := toLight.TryNormalize()
	if !ok {
		return Illumination{Color: c}
	}
	att := 1.0
	if maxDistance > 0 {
		att = math.Max(0, math.Min(1, (maxDistance-d)/maxDistance))
	}
	return Illumination{Direction: dir, Intensity: intensity * att, Color: c}
}

// maxShadowHalfAngle bounds the field of view of point and spot shadow
// maps. A light inside the scene cannot see all of it through one map.
const maxShadowHalfAngle = 75 * math.Pi / 180

func perspectiveFrame(eye, poi, center math3d.Vec3, radius float64) (view, proj math3d.Mat4, ok bool) {
	if radius <= 0 {
		return view, proj, false
	}
	target := poi
	if eye.Distance(target) < math3d.Epsilon {
		target = center
	}
	dir, ok := target.Sub(eye).TryNormalize()
	if !ok {
		// The light sits on the scene center; pick any direction.
		dir = math3d.V3(0, 0, -1)
		target = eye.Add(dir)
	}
	view, ok = math3d.LookAt(eye, target, upFor(dir))
	if !ok {
		return view, proj, false
	}

	toCenter := center.Sub(eye)
	dc := toCenter.Len()
	var half, near, far float64
	if dc <= radius {
		half = maxShadowHalfAngle
		near = radius * 1e-3
		far = dc + radius
	} else {
		axisAngle := math.Acos(math.Max(-1, math.Min(1, dir.Dot(toCenter.Scale(1/dc)))))
		half = math.Min(axisAngle+math.Asin(radius/dc), maxShadowHalfAngle)
		near = math.Max(dc-radius, radius*1e-3)
		far = dc + radius
	}
	return view, math3d.Perspective(2*half, 1, near, far), true
}

// upFor returns a world axis usable as the up hint for a camera looking
// along dir.
func upFor(dir math3d.Vec3) math3d.Vec3 {
	for _, up := range []math3d.Vec3{math3d.UnitZ(), math3d.UnitY(), math3d.UnitX()} {
		if math.Abs(dir.Dot(up)) < 0.99 {
			return up
		}
	}
	return math3d.UnitY()
}

func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x >= edge1 {
			return 1
		}
		return 0
	}
	t := math.Max(0, math.Min(1, (x-edge0)/(edge1-edge0)))
	return t * t * (3 - 2*t)
}

// Lighting is the set of lights of a scene.
type Lighting struct {
	Lights []Light
}

// NewLighting creates a lighting aggregate.
func NewLighting(lights ...Light) *Lighting {
	return &Lighting{Lights: lights}
}

// Add appends a light.
func (l *Lighting) Add(light Light) {
	l.Lights = append(l.Lights, light)
}

// Casters returns the lights with shadows enabled.
func (l *Lighting) Casters() []ShadowCaster {
	var out []ShadowCaster
	for _, light := range l.Lights {
		if c, ok := light.(ShadowCaster); ok && c.ShadowsEnabled() {
			out = append(out, c)
		}
	}
	return out
}
