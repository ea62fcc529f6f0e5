package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/scene"
)

// BenchmarkCullingScenario renders a field of cubes, half of them behind
// the camera, with and without element culling.
func BenchmarkCullingScenario(b *testing.B) {
	w := scene.NewWorld()
	rng := rand.New(rand.NewSource(42))
	for i := range 100 {
		var x float64
		if i%2 == 0 {
			x = -rng.Float64() * 30 // In front of the camera
		} else {
			x = 25 + rng.Float64()*20 // Behind it
		}
		cube := scene.NewElement("cube", scene.Cube{Size: 1})
		cube.SetTransformation(math3d.Translate(math3d.V3(x, rng.Float64()*20-10, rng.Float64()*10-5)))
		w.AddElement(cube)
	}
	if err := w.Generate(); err != nil {
		b.Fatal(err)
	}

	cam, err := NewCamera(math3d.V3(20, 0, 5), math3d.Zero3(), math3d.UnitZ())
	if err != nil {
		b.Fatal(err)
	}
	lighting := NewLighting(NewAmbientLight(scene.White, 0.2), NewDirectionalLight(math3d.V3(-1, 0.5, -1), scene.White, 1))
	proj := DefaultProjection()
	proj.PixelsPerUnit = 40

	for _, culling := range []bool{true, false} {
		name := "without_culling"
		if culling {
			name = "with_culling"
		}
		b.Run(name, func(b *testing.B) {
			cfg := DefaultRenderConfig()
			cfg.FrustumCulling = culling
			r := NewRenderer()
			for b.Loop() {
				if err := r.Render(w, lighting, cam, cfg, proj); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkShadowMap measures one directional shadow pass over a sphere
// resting on a plane.
func BenchmarkShadowMap(b *testing.B) {
	ground := scene.NewElement("ground", scene.Plane{Width: 10, Height: 10, Divisions: 4})
	ball := scene.NewElement("ball", scene.Sphere{Radius: 1, Rings: 16, Segments: 32})
	ball.SetTransformation(math3d.Translate(math3d.V3(0, 0, 1)))
	w := scene.NewWorld()
	w.AddElement(ground)
	w.AddElement(ball)
	if err := w.Generate(); err != nil {
		b.Fatal(err)
	}
	sun := NewDirectionalLight(math3d.V3(-1, -1, -2), scene.White, 1)

	for b.Loop() {
		if _, err := GenerateShadowMap(w, sun, nil, DefaultProjection(), 512); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWorldToScreen(b *testing.B) {
	cam, _ := NewCamera(math3d.V3(0, -10, 20), math3d.Zero3(), math3d.UnitZ())
	proj := DefaultProjection()
	p := math3d.V3(math.Sqrt2, 1, 0.5)

	for b.Loop() {
		_, _, _, _ = cam.WorldToScreen(p, proj)
	}
}
