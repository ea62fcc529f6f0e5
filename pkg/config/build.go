package config

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/render"
	"github.com/taigrr/umbra/pkg/scene"
)

// Scene is everything needed to render a frame.
type Scene struct {
	World      *scene.World
	Lighting   *render.Lighting
	Camera     *render.Camera
	Render     render.RenderConfig
	Projection render.ProjectionConfig
}

// Builder turns decoded files into scenes.
type Builder struct {
	logger *log.Logger
}

// NewBuilder creates a builder. Warnings about missing textures go to
// logger; nil discards them.
func NewBuilder(logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builder{logger: logger}
}

// LoadScene loads and builds the scene file at path.
func LoadScene(path string, logger *log.Logger) (*Scene, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewBuilder(logger).Build(f)
}

// Build creates and generates the world, then the lights and camera.
func (b *Builder) Build(f *File) (*Scene, error) {
	if err := f.Projection.Validate(); err != nil {
		return nil, err
	}
	if err := f.Render.Validate(); err != nil {
		return nil, err
	}

	world := scene.NewWorld()
	if f.Background != "" {
		bg, err := scene.ParseColor(f.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		world.Background = bg
	}
	for i, ec := range f.Elements {
		e, err := b.element(f, ec)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		world.AddElement(e)
	}
	if err := world.Generate(); err != nil {
		return nil, err
	}

	lighting := render.NewLighting()
	for i, lc := range f.Lights {
		l, err := light(lc)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		lighting.Add(l)
	}

	cam, err := render.NewCamera(vec(f.Camera.Eye), vec(f.Camera.Target), vec(f.Camera.Up))
	if err != nil {
		return nil, err
	}

	return &Scene{
		World:      world,
		Lighting:   lighting,
		Camera:     cam,
		Render:     f.Render,
		Projection: f.Projection,
	}, nil
}

func (b *Builder) element(f *File, ec ElementConfig) (*scene.Element, error) {
	var e *scene.Element
	switch strings.ToLower(ec.Shape) {
	case "cube":
		e = scene.NewElement(ec.Name, scene.Cube{Size: ec.Size})
	case "plane":
		e = scene.NewElement(ec.Name, scene.Plane{Width: ec.Width, Height: ec.Height, Divisions: ec.Divisions})
	case "facet":
		if len(ec.Points) != 3 {
			return nil, fmt.Errorf("%w: facet needs 3 points, got %d", ErrInvalidElement, len(ec.Points))
		}
		e = scene.NewElement(ec.Name, scene.Facet{
			A:        vec(ec.Points[0]),
			B:        vec(ec.Points[1]),
			C:        vec(ec.Points[2]),
			TwoSided: ec.TwoSided,
		})
	case "heightmap":
		e = scene.NewElement(ec.Name, scene.HeightMap{Heights: ec.Heights, Spacing: ec.Spacing})
	case "sphere":
		e = scene.NewElement(ec.Name, scene.Sphere{Radius: ec.Radius, Rings: ec.Rings, Segments: ec.Segments})
	case "model":
		loader := scene.NewGLTFLoader()
		loader.Logger = b.logger
		m, err := loader.Load(f.resolve(ec.Model))
		if err != nil {
			return nil, err
		}
		if ec.Name != "" {
			m.Name = ec.Name
		}
		e = m
	case "group", "":
		e = scene.NewElement(ec.Name, nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, ec.Shape)
	}

	m, err := ec.Transform.Matrix4()
	if err != nil {
		return nil, fmt.Errorf("%s transform: %w", ec.Name, err)
	}
	e.SetTransformation(m)

	if ec.Color != "" {
		if e.Color, err = scene.ParseColor(ec.Color); err != nil {
			return nil, fmt.Errorf("%s color: %w", ec.Name, err)
		}
	}
	if ec.Specular != "" {
		if e.Specular, err = scene.ParseColor(ec.Specular); err != nil {
			return nil, fmt.Errorf("%s specular: %w", ec.Name, err)
		}
	}
	if ec.Shininess != nil {
		e.Shininess = *ec.Shininess
	}
	if ec.Texture != "" {
		e.Texture = b.texture(f, ec)
	}

	for _, cc := range ec.Children {
		child, err := b.element(f, cc)
		if err != nil {
			return nil, err
		}
		e.AddChild(child)
	}
	return e, nil
}

// texture loads the element texture. A texture that cannot be loaded is
// reported and the element keeps its flat color.
func (b *Builder) texture(f *File, ec ElementConfig) *scene.Texture {
	if strings.EqualFold(ec.Texture, "checker") {
		return scene.NewCheckerTexture(64, 64, 8, scene.RGB(0.8, 0.8, 0.8), scene.RGB(0.4, 0.4, 0.4))
	}
	tex, err := scene.LoadTexture(f.resolve(ec.Texture))
	if err != nil {
		b.logger.Warn("texture not loaded", "element", ec.Name, "path", ec.Texture, "err", err)
		return nil
	}
	return tex
}

// Matrix4 returns the local transform described by t.
func (t TransformSpec) Matrix4() (math3d.Mat4, error) {
	if len(t.Matrix) > 0 {
		return math3d.Mat4FromRowMajor(t.Matrix)
	}

	scale := math3d.V3(1, 1, 1)
	switch len(t.Scale) {
	case 0:
	case 1:
		scale = math3d.V3(t.Scale[0], t.Scale[0], t.Scale[0])
	case 3:
		scale = math3d.V3(t.Scale[0], t.Scale[1], t.Scale[2])
	default:
		return math3d.Mat4{}, fmt.Errorf("%w: scale wants 1 or 3 values, got %d", math3d.ErrDimension, len(t.Scale))
	}

	var rot math3d.Mat3
	if len(t.RotationMatrix) > 0 {
		m, err := math3d.Mat3FromRows(t.RotationMatrix)
		if err != nil {
			return math3d.Mat4{}, err
		}
		if rot, err = math3d.NewRotation(m); err != nil {
			return math3d.Mat4{}, err
		}
	} else {
		rad := func(deg float64) float64 { return deg * math.Pi / 180 }
		rot = math3d.RotateZ(rad(t.Rotate[2])).
			Mul(math3d.RotateY(rad(t.Rotate[1]))).
			Mul(math3d.RotateX(rad(t.Rotate[0]))).
			Upper3()
	}
	return math3d.Compose(scale, rot, vec(t.Translate)), nil
}

func light(lc LightConfig) (render.Light, error) {
	c := scene.White
	if lc.Color != "" {
		var err error
		if c, err = scene.ParseColor(lc.Color); err != nil {
			return nil, err
		}
	}
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	switch strings.ToLower(lc.Type) {
	case "ambient":
		return render.NewAmbientLight(c, lc.Intensity), nil
	case "directional":
		l := render.NewDirectionalLight(vec(lc.Direction), c, lc.Intensity)
		l.CastsShadows = lc.CastsShadows
		return l, nil
	case "point":
		l := render.NewPointLight(vec(lc.Position), c, lc.Intensity, lc.MaxDistance)
		l.CastsShadows = lc.CastsShadows
		return l, nil
	case "spot":
		outer := lc.OuterAngle
		if outer == 0 {
			outer = 30
		}
		l := render.NewSpotLight(vec(lc.Position), vec(lc.Direction), c, lc.Intensity, lc.MaxDistance, rad(lc.InnerAngle), rad(outer))
		l.CastsShadows = lc.CastsShadows
		return l, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLight, lc.Type)
	}
}

func vec(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}
