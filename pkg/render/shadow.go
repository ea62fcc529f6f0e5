package render

import (
	"fmt"
	"math"

	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/scene"
)

// DefaultShadowBias is the depth offset of new shadow maps, as a fraction
// of half the light's depth range.
const DefaultShadowBias = 0.005

// ShadowMap is the depth of the scene as seen from a light.
type ShadowMap struct {
	*DepthMap
	View       math3d.Mat4
	Projection math3d.Mat4
	// Bias is subtracted from a point's depth before the comparison, in
	// units of half the depth range between the light's near and far
	// planes. It is scaled up on surfaces lit at grazing angles.
	Bias float64

	viewProj    math3d.Mat4
	perspective bool
}

// NewShadowMap creates an empty square map for the given light camera.
func NewShadowMap(view, proj math3d.Mat4, resolution int) *ShadowMap {
	return &ShadowMap{
		DepthMap:    NewDepthMap(resolution, resolution),
		View:        view,
		Projection:  proj,
		Bias:        DefaultShadowBias,
		viewProj:    proj.Mul(view),
		perspective: !isOrthographic(proj),
	}
}

// Occluded reports whether world point p is hidden from the light. ndl is
// the cosine between the surface normal and the direction to the light.
// Points outside the map are lit.
func (m *ShadowMap) Occluded(p math3d.Vec3, ndl float64) bool {
	clip := m.viewProj.MulVec4(math3d.Point(p))
	if clip.W <= math3d.Epsilon {
		return false
	}
	ndc, ok := clip.PerspectiveDivide()
	if !ok || math.Abs(ndc.X) > 1 || math.Abs(ndc.Y) > 1 || ndc.Z > 1 {
		return false
	}
	x, y := toScreen(ndc, m.Width, m.Height)
	px := min(int(x), m.Width-1)
	py := min(int(y), m.Height-1)
	stored := m.At(px, py)
	if math.IsInf(stored, 1) {
		return false
	}
	slope := math.Min(10, 1/math.Max(ndl, 0.1))
	if !m.perspective {
		return ndc.Z-m.Bias*slope > stored
	}
	// Perspective depth crowds toward 1 when near is small, so compare
	// distances along the light axis instead.
	near, far := m.lightDistance(-1), m.lightDistance(1)
	bias := m.Bias * slope * (far - near) / 2
	return m.lightDistance(ndc.Z)-bias > m.lightDistance(stored)
}

// lightDistance converts a perspective map depth back to the distance in
// front of the light along its view axis.
func (m *ShadowMap) lightDistance(z float64) float64 {
	return m.Projection[14] / (z + m.Projection[10])
}

// GenerateShadowMap renders the depth of world as seen from caster. The
// map is centered on the part of the scene the camera sees, so a nil
// camera frames the whole scene. It returns ErrNoShadowFrame when the
// world is empty or the light cannot frame it.
func GenerateShadowMap(world *scene.World, caster ShadowCaster, camera *Camera, proj ProjectionConfig, resolution int) (*ShadowMap, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: shadow resolution %d", ErrInvalidRenderConfig, resolution)
	}
	bounds := world.Bounds()
	if bounds.IsEmpty() {
		return nil, fmt.Errorf("%w: empty world", ErrNoShadowFrame)
	}
	center, radius := bounds.Center(), bounds.Radius()
	poi := center
	if camera != nil {
		if visible := viewBounds(camera, proj).Intersect(bounds); !visible.IsEmpty() {
			poi = visible.Center()
		}
	}

	view, lightProj, ok := caster.frame(poi, center, radius)
	if !ok {
		return nil, fmt.Errorf("%w: center %v, radius %v", ErrNoShadowFrame, center, radius)
	}
	sm := NewShadowMap(view, lightProj, resolution)
	vp := newViewport(view, lightProj, isOrthographic(lightProj), sm.DepthMap)
	var stats RenderStats
	if err := traverse(world, vp, &depthPass{vp: vp, stats: &stats}, &stats, true); err != nil {
		return nil, err
	}
	return sm, nil
}

// viewBounds returns the world box around the camera's view volume.
func viewBounds(camera *Camera, proj ProjectionConfig) math3d.Box {
	inv, ok := proj.Matrix().Mul(camera.ViewMatrix()).Inverse()
	if !ok {
		return math3d.EmptyBox()
	}
	box := math3d.EmptyBox()
	for _, c := range math3d.BoxOf(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)).Corners() {
		if p, ok := inv.MulVec4(math3d.Point(c)).PerspectiveDivide(); ok {
			box = box.Extend(p)
		}
	}
	return box
}

// isOrthographic reports whether m has no perspective divide.
func isOrthographic(m math3d.Mat4) bool {
	return m[3] == 0 && m[7] == 0 && m[11] == 0
}
