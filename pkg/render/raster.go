package render

import (
	"math"

	"github.com/taigrr/umbra/pkg/math3d"
)

// viewport is the target of one traversal: matrices, raster size and the
// depth buffer the pass writes.
type viewport struct {
	view     math3d.Mat4
	proj     math3d.Mat4
	viewProj math3d.Mat4
	ortho    bool
	width    int
	height   int
	depth    *DepthMap
}

func newViewport(view, proj math3d.Mat4, ortho bool, depth *DepthMap) *viewport {
	return &viewport{
		view:     view,
		proj:     proj,
		viewProj: proj.Mul(view),
		ortho:    ortho,
		width:    depth.Width,
		height:   depth.Height,
		depth:    depth,
	}
}

// screenVertex is a polygon corner after the perspective divide.
type screenVertex struct {
	x, y    float64 // Pixel coordinates, y down
	z       float64 // Clip-space z
	invW    float64
	weights [3]float64
}

// fragmentFunc receives each pixel that passed the depth test, with the
// perspective-correct barycentric weights of the source triangle.
type fragmentFunc func(x, y int, weights [3]float64)

// edgeCoeffs returns A, B, C for the edge function A*x + B*y + C of the
// directed edge (x0, y0) -> (x1, y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (a, b, c float64) {
	return y0 - y1, x1 - x0, x0*y1 - x1*y0
}

// rasterizePolygon fan-triangulates a near-clipped polygon and rasterizes
// every piece.
func rasterizePolygon(vp *viewport, poly []clipVertex, stats *RenderStats, frag fragmentFunc) {
	if len(poly) < 3 {
		return
	}
	sv := make([]screenVertex, len(poly))
	for i, v := range poly {
		invW := 1 / v.pos.W
		x, y := toScreen(math3d.V3(v.pos.X*invW, v.pos.Y*invW, 0), vp.width, vp.height)
		sv[i] = screenVertex{x: x, y: y, z: v.pos.Z, invW: invW, weights: v.weights}
	}
	for i := 1; i+1 < len(sv); i++ {
		rasterizeTriangle(vp, sv[0], sv[i], sv[i+1], stats, frag)
	}
}

// rasterizeTriangle fills the pixels whose centers lie inside the
// triangle, edges included, and runs the depth test on each of them.
func rasterizeTriangle(vp *viewport, v0, v1, v2 screenVertex, stats *RenderStats, frag fragmentFunc) {
	area := (v1.x-v0.x)*(v2.y-v0.y) - (v1.y-v0.y)*(v2.x-v0.x)
	if math.Abs(area) < 1e-12 || math.IsNaN(area) {
		stats.Degenerate++
		return
	}

	// Bounding box (clamped to screen)
	minX := int(math.Max(0, math.Floor(min(v0.x, v1.x, v2.x))))
	maxX := int(math.Min(float64(vp.width-1), math.Ceil(max(v0.x, v1.x, v2.x))))
	minY := int(math.Max(0, math.Floor(min(v0.y, v1.y, v2.y))))
	maxY := int(math.Min(float64(vp.height-1), math.Ceil(max(v0.y, v1.y, v2.y))))
	if minX > maxX || minY > maxY {
		return
	}

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	a0, b0, c0 := edgeCoeffs(v1.x, v1.y, v2.x, v2.y)
	a1, b1, c1 := edgeCoeffs(v2.x, v2.y, v0.x, v0.y)
	a2, b2, c2 := edgeCoeffs(v0.x, v0.y, v1.x, v1.y)

	// Orient the edges so that inside is positive for either winding.
	invArea := 1 / area
	if area < 0 {
		a0, b0, c0 = -a0, -b0, -c0
		a1, b1, c1 = -a1, -b1, -c1
		a2, b2, c2 = -a2, -b2, -c2
		invArea = -invArea
	}

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	e0Row := a0*px + b0*py + c0
	e1Row := a1*px + b1*py + c1
	e2Row := a2*px + b2*py + c2

	for y := minY; y <= maxY; y++ {
		e0, e1, e2 := e0Row, e1Row, e2Row

		for x := minX; x <= maxX; x++ {
			if e0 >= 0 && e1 >= 0 && e2 >= 0 {
				// Screen-space barycentrics, then divided by w.
				q0 := e0 * invArea * v0.invW
				q1 := e1 * invArea * v1.invW
				q2 := e2 * invArea * v2.invW
				sum := q0 + q1 + q2

				// Interpolating clip z with the 1/w weights yields the
				// normalized device depth.
				z := q0*v0.z + q1*v1.z + q2*v2.z

				if sum > 0 && z >= -1 && z <= 1 && vp.depth.TestAndSet(x, y, z) {
					stats.Pixels++
					if frag != nil {
						l0, l1, l2 := q0/sum, q1/sum, q2/sum
						frag(x, y, [3]float64{
							l0*v0.weights[0] + l1*v1.weights[0] + l2*v2.weights[0],
							l0*v0.weights[1] + l1*v1.weights[1] + l2*v2.weights[1],
							l0*v0.weights[2] + l1*v1.weights[2] + l2*v2.weights[2],
						})
					}
				}
			}

			// Step in X direction
			e0 += a0
			e1 += a1
			e2 += a2
		}

		// Step in Y direction
		e0Row += b0
		e1Row += b1
		e2Row += b2
	}
}
