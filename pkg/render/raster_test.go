package render

import (
	"math"
	"testing"

	"github.com/taigrr/umbra/pkg/math3d"
)

func identityViewport(width, height int) *viewport {
	return newViewport(math3d.Identity(), math3d.Identity(), true, NewDepthMap(width, height))
}

func cv(x, y, z, w float64, weights [3]float64) clipVertex {
	return clipVertex{pos: math3d.V4(x, y, z, w), weights: weights}
}

func TestRasterizeSharedEdge(t *testing.T) {
	// Two triangles covering the whole screen at the same depth. Pixels on
	// the shared diagonal belong to whichever triangle comes first.
	vp := identityViewport(8, 8)
	var stats RenderStats
	owner := make([]int, 64)
	for i, quad := range [][]clipVertex{
		{cv(-1, -1, 0, 1, [3]float64{1, 0, 0}), cv(1, -1, 0, 1, [3]float64{0, 1, 0}), cv(1, 1, 0, 1, [3]float64{0, 0, 1})},
		{cv(-1, -1, 0, 1, [3]float64{1, 0, 0}), cv(1, 1, 0, 1, [3]float64{0, 1, 0}), cv(-1, 1, 0, 1, [3]float64{0, 0, 1})},
	} {
		rasterizePolygon(vp, quad, &stats, func(x, y int, _ [3]float64) {
			owner[y*8+x] = i + 1
		})
	}

	if stats.Pixels != 64 {
		t.Errorf("pixels = %d, want 64", stats.Pixels)
	}
	for i, o := range owner {
		if o == 0 {
			t.Errorf("pixel %d not covered", i)
		}
	}
	// Pixel (3, 4) has its center on the diagonal, in screen space y down.
	if owner[4*8+3] != 1 {
		t.Errorf("diagonal pixel owned by triangle %d, want 1", owner[4*8+3])
	}
}

func TestRasterizeDepthTest(t *testing.T) {
	vp := identityViewport(4, 4)
	full := func(z float64) []clipVertex {
		return []clipVertex{
			cv(-1, -1, z, 1, [3]float64{1, 0, 0}),
			cv(3, -1, z, 1, [3]float64{0, 1, 0}),
			cv(-1, 3, z, 1, [3]float64{0, 0, 1}),
		}
	}

	tests := []struct {
		name  string
		z     float64
		wants int
	}{
		{"first", 0.5, 16},
		{"behind", 0.7, 0},
		{"equal", 0.5, 0},
		{"in front", -0.2, 16},
		{"outside depth range", -1.5, 0},
	}
	for _, tc := range tests {
		var stats RenderStats
		rasterizePolygon(vp, full(tc.z), &stats, nil)
		if stats.Pixels != tc.wants {
			t.Errorf("%s: pixels = %d, want %d", tc.name, stats.Pixels, tc.wants)
		}
	}
	if got := vp.depth.At(0, 0); math.Abs(got+0.2) > 1e-12 {
		t.Errorf("depth = %v, want -0.2", got)
	}
}

func TestRasterizeDegenerate(t *testing.T) {
	vp := identityViewport(4, 4)
	var stats RenderStats
	rasterizePolygon(vp, []clipVertex{
		cv(-1, -1, 0, 1, [3]float64{1, 0, 0}),
		cv(0, 0, 0, 1, [3]float64{0, 1, 0}),
		cv(1, 1, 0, 1, [3]float64{0, 0, 1}),
	}, &stats, nil)
	if stats.Degenerate != 1 || stats.Pixels != 0 {
		t.Errorf("stats = %+v, want one degenerate triangle and no pixels", stats)
	}
}

func TestRasterizePerspectiveCorrect(t *testing.T) {
	// The same screen triangle with one corner four times further away.
	// Affine weights would put the midpoint of the far edge at 0.5; the
	// perspective-correct weight is biased towards the near corner.
	vp := identityViewport(64, 64)
	poly := []clipVertex{
		cv(-1, -1, 0, 1, [3]float64{1, 0, 0}),
		cv(4, -4, 0, 4, [3]float64{0, 1, 0}), // (1, -1) after the divide
		cv(-1, 1, 0, 1, [3]float64{0, 0, 1}),
	}
	var stats RenderStats
	var got [3]float64
	rasterizePolygon(vp, poly, &stats, func(x, y int, w [3]float64) {
		if sum := w[0] + w[1] + w[2]; math.Abs(sum-1) > 1e-9 {
			t.Fatalf("weights at (%d, %d) sum to %v", x, y, sum)
		}
		if x == 31 && y == 63 {
			got = w
		}
	})
	// Screen midpoint of edge 0-1: screen weight 0.5 each, so the
	// perspective weights are 0.5/1 and 0.5/4 renormalized.
	if math.Abs(got[1]-0.2) > 0.02 {
		t.Errorf("far corner weight = %v, want about 0.2", got[1])
	}
}

func TestClassify(t *testing.T) {
	in := math3d.V4(0, 0, 0, 1)
	tests := []struct {
		name    string
		a, b, c math3d.Vec4
		want    clipClass
	}{
		{"inside", in, math3d.V4(0.5, 0.5, 0.5, 1), math3d.V4(-0.5, 0.2, -0.9, 1), clipInside},
		{"all right", math3d.V4(2, 0, 0, 1), math3d.V4(3, 1, 0, 1), math3d.V4(5, -1, 0, 1), clipOutside},
		{"all behind", math3d.V4(0, 0, 0, -1), math3d.V4(1, 0, 0, -2), math3d.V4(0, 1, 0, -1), clipOutside},
		{"straddle near", in, math3d.V4(0, 0, 0, -1), math3d.V4(0.5, 0, 0, 1), clipStraddle},
		// Outside different planes, yet crossing the view.
		{"spanning", math3d.V4(-2, 0, 0, 1), math3d.V4(2, 0, 0, 1), math3d.V4(0, 2, 0, 1), clipStraddle},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := classify(tc.a, tc.b, tc.c); got != tc.want {
				t.Errorf("classify = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestClipNear(t *testing.T) {
	poly := []clipVertex{
		cv(0, 0, 0, 1, [3]float64{1, 0, 0}),
		cv(1, 0, 0, 1, [3]float64{0, 1, 0}),
		cv(0, 0, -3, -1, [3]float64{0, 0, 1}), // Behind the eye
	}
	out := clipNear(poly)
	if len(out) != 4 {
		t.Fatalf("clipped polygon has %d vertices, want 4", len(out))
	}
	for i, v := range out {
		if v.pos.Z < -v.pos.W-1e-12 || v.pos.W < minW {
			t.Errorf("vertex %d %v outside the near plane", i, v.pos)
		}
		sum := v.weights[0] + v.weights[1] + v.weights[2]
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("vertex %d weights sum to %v", i, sum)
		}
	}

	behind := []clipVertex{
		cv(0, 0, 0, -1, [3]float64{1, 0, 0}),
		cv(1, 0, 0, -1, [3]float64{0, 1, 0}),
		cv(0, 1, 0, -1, [3]float64{0, 0, 1}),
	}
	if out := clipNear(behind); out != nil {
		t.Errorf("polygon behind the eye clipped to %v, want nil", out)
	}
}

func TestClipLine2D(t *testing.T) {
	tests := []struct {
		name               string
		x0, y0, x1, y1     float64
		ok                 bool
		wx0, wy0, wx1, wy1 float64
	}{
		{"inside", 1, 1, 5, 5, true, 1, 1, 5, 5},
		{"crossing left", -5, 5, 5, 5, true, 0, 5, 5, 5},
		{"diagonal through", -2, -2, 12, 12, true, 0, 0, 9, 9},
		{"outside", -5, -5, -1, -1, false, 0, 0, 0, 0},
		{"parallel outside", -1, 3, -1, 8, false, 0, 0, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipLine2D(tc.x0, tc.y0, tc.x1, tc.y1, 9, 9)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			for _, d := range []float64{x0 - tc.wx0, y0 - tc.wy0, x1 - tc.wx1, y1 - tc.wy1} {
				if math.Abs(d) > 1e-9 {
					t.Fatalf("got (%v, %v)-(%v, %v)", x0, y0, x1, y1)
				}
			}
		})
	}
}

func BenchmarkRasterizeTriangle(b *testing.B) {
	vp := identityViewport(320, 240)
	poly := []clipVertex{
		cv(-0.9, -0.9, 0, 1, [3]float64{1, 0, 0}),
		cv(0.9, -0.8, 0, 1, [3]float64{0, 1, 0}),
		cv(0, 0.9, 0, 1, [3]float64{0, 0, 1}),
	}
	var stats RenderStats
	for b.Loop() {
		vp.depth.Clear()
		rasterizePolygon(vp, poly, &stats, func(int, int, [3]float64) {})
	}
}
