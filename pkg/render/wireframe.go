package render

import (
	"image/color"
	"math"

	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/scene"
)

// Overlay colors.
var (
	axisX      = color.RGBA{255, 0, 0, 255}
	axisY      = color.RGBA{0, 255, 0, 255}
	axisZ      = color.RGBA{0, 0, 255, 255}
	normalTint = color.RGBA{255, 255, 0, 255}
	lightTint  = color.RGBA{255, 255, 255, 255}
)

// wireframe draws 3D lines over a framebuffer, without depth testing.
type wireframe struct {
	vp *viewport
	fb *Framebuffer
}

// DrawLine3D draws the visible part of the world segment p1-p2.
func (w *wireframe) DrawLine3D(p1, p2 math3d.Vec3, c color.RGBA) {
	a := clipVertex{pos: w.vp.viewProj.MulVec4(math3d.Point(p1))}
	b := clipVertex{pos: w.vp.viewProj.MulVec4(math3d.Point(p2))}
	var ok bool
	if a, b, ok = clipSegmentNear(a, b); !ok {
		return
	}
	w.drawClipEdge(a.pos, b.pos, c)
}

// drawClipEdge draws a clip-space segment whose endpoints lie in front of
// the near plane.
func (w *wireframe) drawClipEdge(a, b math3d.Vec4, c color.RGBA) {
	x0, y0 := toScreen(math3d.V3(a.X/a.W, a.Y/a.W, 0), w.vp.width, w.vp.height)
	x1, y1 := toScreen(math3d.V3(b.X/b.W, b.Y/b.W, 0), w.vp.width, w.vp.height)
	x0, y0, x1, y1, ok := clipLine2D(x0, y0, x1, y1, float64(w.vp.width-1), float64(w.vp.height-1))
	if !ok {
		return
	}
	w.fb.DrawLine(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)), c)
}

// drawPolygon outlines a near-clipped polygon.
func (w *wireframe) drawPolygon(poly []clipVertex, c color.RGBA) {
	for i := range poly {
		w.drawClipEdge(poly[i].pos, poly[(i+1)%len(poly)].pos, c)
	}
}

// DrawAxes draws the world axes from the origin: X red, Y green, Z blue.
func (w *wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), axisX)
	w.DrawLine3D(origin, math3d.V3(0, length, 0), axisY)
	w.DrawLine3D(origin, math3d.V3(0, 0, length), axisZ)
}

// DrawPoint draws a point as a small cross.
func (w *wireframe) DrawPoint(pos math3d.Vec3, size float64, c color.RGBA) {
	h := size / 2
	w.DrawLine3D(pos.Sub(math3d.V3(h, 0, 0)), pos.Add(math3d.V3(h, 0, 0)), c)
	w.DrawLine3D(pos.Sub(math3d.V3(0, h, 0)), pos.Add(math3d.V3(0, h, 0)), c)
	w.DrawLine3D(pos.Sub(math3d.V3(0, 0, h)), pos.Add(math3d.V3(0, 0, h)), c)
}

// DrawNormals draws every vertex normal of the world as a segment of the
// given length.
func (w *wireframe) DrawNormals(world *scene.World, length float64) {
	world.Walk(func(e *scene.Element, model math3d.Mat4) {
		nm := model.NormalMatrix()
		for _, v := range e.Vertices {
			n, ok := nm.MulVec3(v.Normal).TryNormalize()
			if !ok {
				continue
			}
			p := model.MulPoint(v.Point())
			w.DrawLine3D(p, p.Add(n.Scale(length)), normalTint)
		}
	})
}

// DrawLights marks the position of every positional light.
func (w *wireframe) DrawLights(lighting *Lighting, size float64) {
	for _, l := range lighting.Lights {
		switch l := l.(type) {
		case *PointLight:
			w.DrawPoint(l.Position, size, lightTint)
		case *SpotLight:
			w.DrawPoint(l.Position, size, lightTint)
			if dir, ok := l.Direction.TryNormalize(); ok {
				w.DrawLine3D(l.Position, l.Position.Add(dir.Scale(size*2)), lightTint)
			}
		}
	}
}

// clipSegmentNear clips a clip-space segment against the near plane.
func clipSegmentNear(a, b clipVertex) (clipVertex, clipVertex, bool) {
	for _, dist := range []func(math3d.Vec4) float64{
		func(v math3d.Vec4) float64 { return v.Z + v.W },
		func(v math3d.Vec4) float64 { return v.W - minW },
	} {
		da, db := dist(a.pos), dist(b.pos)
		switch {
		case da < 0 && db < 0:
			return a, b, false
		case da < 0:
			a = lerpClipVertex(a, b, da/(da-db))
		case db < 0:
			b = lerpClipVertex(a, b, da/(da-db))
		}
	}
	return a, b, true
}

// clipLine2D clips a segment to [0, maxX] x [0, maxY] (Liang-Barsky).
func clipLine2D(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
