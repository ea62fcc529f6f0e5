package render

import (
	"fmt"

	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/scene"
)

// elementFrame caches the per-vertex transforms of one element for one
// traversal.
type elementFrame struct {
	el        *scene.Element
	model     math3d.Mat4
	normalMat math3d.Mat3
	world     []math3d.Vec3 // World positions
	normals   []math3d.Vec3 // World unit normals
	view      []math3d.Vec3 // View-space positions
	clip      []math3d.Vec4
}

func newElementFrame(e *scene.Element, model math3d.Mat4, vp *viewport) (*elementFrame, error) {
	for i, t := range e.Triangles {
		for _, idx := range t.V {
			if idx < 0 || idx >= len(e.Vertices) {
				return nil, fmt.Errorf("%w: %s triangle %d references vertex %d of %d",
					ErrInvalidGeometry, e.Name, i, idx, len(e.Vertices))
			}
		}
	}

	n := len(e.Vertices)
	f := &elementFrame{
		el:        e,
		model:     model,
		normalMat: model.NormalMatrix(),
		world:     make([]math3d.Vec3, n),
		normals:   make([]math3d.Vec3, n),
		view:      make([]math3d.Vec3, n),
		clip:      make([]math3d.Vec4, n),
	}
	for i, v := range e.Vertices {
		w := model.MulVec4(v.Position)
		if p, ok := w.PerspectiveDivide(); ok {
			f.world[i] = p
		} else {
			f.world[i] = w.Vec3()
		}
		f.normals[i] = f.normalMat.MulVec3(v.Normal).Normalize()
		f.view[i] = vp.view.MulPoint(f.world[i])
		f.clip[i] = vp.viewProj.MulVec4(w)
	}
	return f, nil
}

// faceNormal returns the world unit normal of t.
func (f *elementFrame) faceNormal(t *scene.Triangle) math3d.Vec3 {
	return f.normalMat.MulVec3(t.Normal).Normalize()
}

// facing returns a value that is positive when the front of t faces the
// viewer, negative for its back. It returns false for triangles without
// an orientation.
func (f *elementFrame) facing(t *scene.Triangle, ortho bool) (float64, bool) {
	v0, v1, v2 := f.view[t.V[0]], f.view[t.V[1]], f.view[t.V[2]]
	nv, ok := v1.Sub(v0).Cross(v2.Sub(v0)).TryNormalize()
	if !ok {
		return 0, false
	}
	// The viewer sits at the view-space origin looking down -Z.
	var d float64
	if ortho {
		d = nv.Z
	} else {
		d = nv.Dot(v0.Negate())
	}
	return d, d != 0
}

// strategy is what a traversal does with each visible triangle.
type strategy interface {
	cullBackFaces() bool
	// triangle receives the near-clipped polygon of t. flipped is set when
	// the viewer sees the back of t.
	triangle(f *elementFrame, t *scene.Triangle, poly []clipVertex, flipped bool)
}

// traverse walks the world and feeds every triangle to s. Elements whose
// bounds fall outside the view volume are skipped when cull is set.
func traverse(w *scene.World, vp *viewport, s strategy, stats *RenderStats, cull bool) error {
	var frustum Frustum
	if cull {
		frustum = NewFrustumFromMatrix(vp.viewProj)
	}

	var err error
	w.Walk(func(e *scene.Element, model math3d.Mat4) {
		if err != nil {
			return
		}
		stats.Elements++
		if len(e.Triangles) == 0 {
			return
		}
		if cull && !frustum.IntersectAABB(e.LocalBounds().Transform(model)) {
			stats.ElementsCulled++
			return
		}
		f, ferr := newElementFrame(e, model, vp)
		if ferr != nil {
			err = ferr
			return
		}
		for i := range e.Triangles {
			drawTriangle(vp, f, &e.Triangles[i], s, stats)
		}
	})
	return err
}

func drawTriangle(vp *viewport, f *elementFrame, t *scene.Triangle, s strategy, stats *RenderStats) {
	stats.Triangles++
	a, b, c := f.clip[t.V[0]], f.clip[t.V[1]], f.clip[t.V[2]]
	if classify(a, b, c) == clipOutside {
		stats.Discarded++
		return
	}

	facing, ok := f.facing(t, vp.ortho)
	if !ok {
		stats.Degenerate++
		return
	}
	// The inside of a closed element is never visible, so only open
	// elements honor the recto-verso flag.
	flipped := facing < 0
	if flipped && s.cullBackFaces() && (f.el.Closed || !t.RectoVerso) {
		stats.Culled++
		return
	}

	poly := []clipVertex{
		{pos: a, weights: [3]float64{1, 0, 0}},
		{pos: b, weights: [3]float64{0, 1, 0}},
		{pos: c, weights: [3]float64{0, 0, 1}},
	}
	if (outcode(a)|outcode(b)|outcode(c))&outNear != 0 {
		stats.Clipped++
		if poly = clipNear(poly); poly == nil {
			stats.Discarded++
			return
		}
	}
	s.triangle(f, t, poly, flipped)
}
