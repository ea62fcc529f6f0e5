package render

import "github.com/taigrr/umbra/pkg/math3d"

// clipVertex is a polygon corner in clip space. Weights are its barycentric
// coordinates in the source triangle, which stay linear in clip space, so
// every vertex attribute can be rebuilt from them after clipping.
type clipVertex struct {
	pos     math3d.Vec4
	weights [3]float64
}

// minW keeps the perspective divide away from zero.
const minW = 1e-6

// Outcode bits, one per clip plane.
const (
	outLeft = 1 << iota
	outRight
	outBottom
	outTop
	outNear
	outFar
)

// outcode returns the clip planes v lies outside of.
func outcode(v math3d.Vec4) int {
	code := 0
	if v.X < -v.W {
		code |= outLeft
	}
	if v.X > v.W {
		code |= outRight
	}
	if v.Y < -v.W {
		code |= outBottom
	}
	if v.Y > v.W {
		code |= outTop
	}
	if v.Z < -v.W || v.W <= minW {
		code |= outNear
	}
	if v.Z > v.W {
		code |= outFar
	}
	return code
}

// Classification of a triangle against the view volume.
type clipClass int

const (
	clipInside   clipClass = iota // All vertices inside
	clipOutside                   // No vertex inside and all share an outside plane
	clipStraddle                  // Anything else
)

// classify sorts a clip-space triangle. A triangle whose vertices are all
// outside one plane cannot cover a pixel; the others are drawn, and only
// the near plane is clipped geometrically.
func classify(a, b, c math3d.Vec4) clipClass {
	ca, cb, cc := outcode(a), outcode(b), outcode(c)
	switch {
	case ca|cb|cc == 0:
		return clipInside
	case ca&cb&cc != 0:
		return clipOutside
	default:
		return clipStraddle
	}
}

// clipNear clips a polygon against z >= -w and w >= minW using
// Sutherland-Hodgman. It returns nil when nothing remains.
func clipNear(poly []clipVertex) []clipVertex {
	poly = clipPlane(poly, func(v math3d.Vec4) float64 { return v.Z + v.W })
	if len(poly) < 3 {
		return nil
	}
	poly = clipPlane(poly, func(v math3d.Vec4) float64 { return v.W - minW })
	if len(poly) < 3 {
		return nil
	}
	return poly
}

// clipPlane keeps the part of poly where dist >= 0.
func clipPlane(poly []clipVertex, dist func(math3d.Vec4) float64) []clipVertex {
	out := make([]clipVertex, 0, len(poly)+1)
	for i, cur := range poly {
		next := poly[(i+1)%len(poly)]
		dc, dn := dist(cur.pos), dist(next.pos)
		if dc >= 0 {
			out = append(out, cur)
		}
		if (dc >= 0) != (dn >= 0) {
			t := dc / (dc - dn)
			out = append(out, lerpClipVertex(cur, next, t))
		}
	}
	return out
}

func lerpClipVertex(a, b clipVertex, t float64) clipVertex {
	return clipVertex{
		pos: a.pos.Lerp(b.pos, t),
		weights: [3]float64{
			a.weights[0] + (b.weights[0]-a.weights[0])*t,
			a.weights[1] + (b.weights[1]-a.weights[1])*t,
			a.weights[2] + (b.weights[2]-a.weights[2])*t,
		},
	}
}
