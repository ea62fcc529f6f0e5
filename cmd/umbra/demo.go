package main

import (
	"math"

	"github.com/taigrr/umbra/pkg/config"
	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/render"
	"github.com/taigrr/umbra/pkg/scene"
)

// demoScene is a checkered floor with a cube, a sphere and a hill lit by
// the sun and a spot light.
func demoScene() (*config.Scene, error) {
	w := scene.NewWorld()
	w.Background = scene.RGB8(30, 30, 40)

	floor := scene.NewElement("floor", scene.Plane{Width: 8, Height: 8, Divisions: 8})
	floor.Texture = scene.NewCheckerTexture(64, 64, 8, scene.RGB8(200, 200, 200), scene.RGB8(100, 100, 100))
	w.AddElement(floor)

	cube := scene.NewElement("cube", scene.Cube{Size: 1})
	cube.Color = scene.RGB8(220, 60, 50)
	cube.Specular = scene.White
	cube.SetTransformation(math3d.Translate(math3d.V3(-1, -1, 0.5)).Mul(math3d.RotateZ(math.Pi / 6)))
	w.AddElement(cube)

	ball := scene.NewElement("ball", scene.Sphere{Radius: 0.6, Rings: 16, Segments: 24})
	ball.Color = scene.RGB8(60, 120, 220)
	ball.Specular = scene.White
	ball.Shininess = 64
	ball.SetTransformation(math3d.Translate(math3d.V3(1, 0.5, 0.6)))
	w.AddElement(ball)

	heights := make([][]float64, 9)
	for i := range heights {
		heights[i] = make([]float64, 9)
		for j := range heights[i] {
			x, y := float64(i-4)/4, float64(j-4)/4
			heights[i][j] = 0.5 * math.Exp(-2*(x*x+y*y))
		}
	}
	hill := scene.NewElement("hill", scene.HeightMap{Heights: heights, Spacing: 0.25})
	hill.Color = scene.RGB8(80, 180, 90)
	hill.SetTransformation(math3d.Translate(math3d.V3(1, -2.5, 0)))
	w.AddElement(hill)

	if err := w.Generate(); err != nil {
		return nil, err
	}

	sun := render.NewDirectionalLight(math3d.V3(-0.5, -0.3, -1), scene.White, 0.7)
	sun.CastsShadows = true
	spot := render.NewSpotLight(math3d.V3(0, 3, 3), math3d.V3(0, -1, -1), scene.RGB8(255, 220, 160), 0.6, 0, math.Pi/12, math.Pi/6)
	lighting := render.NewLighting(render.NewAmbientLight(scene.White, 0.15), sun, spot)

	cam, err := render.NewCamera(math3d.V3(6, 4, 4), math3d.Zero3(), math3d.UnitZ())
	if err != nil {
		return nil, err
	}
	return &config.Scene{
		World:      w,
		Lighting:   lighting,
		Camera:     cam,
		Render:     render.DefaultRenderConfig(),
		Projection: render.DefaultProjection(),
	}, nil
}
