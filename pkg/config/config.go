// Package config reads scene description files and builds the world,
// lights, camera and render settings they describe.
//
// Scene files are TOML (.toml) or YAML (.yaml, .yml). Colors are hex
// strings, angles are degrees and relative paths are resolved against the
// directory of the scene file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/umbra/pkg/render"
)

// File is the decoded content of a scene file.
type File struct {
	Background string                  `toml:"background" yaml:"background"`
	Render     render.RenderConfig     `toml:"render" yaml:"render"`
	Projection render.ProjectionConfig `toml:"projection" yaml:"projection"`
	Camera     CameraConfig            `toml:"camera" yaml:"camera"`
	Lights     []LightConfig           `toml:"lights" yaml:"lights"`
	Elements   []ElementConfig         `toml:"elements" yaml:"elements"`

	// dir resolves relative paths.
	dir string
}

// CameraConfig places the camera.
type CameraConfig struct {
	Eye    [3]float64 `toml:"eye" yaml:"eye"`
	Target [3]float64 `toml:"target" yaml:"target"`
	Up     [3]float64 `toml:"up" yaml:"up"`
}

// LightConfig describes one light. Type is ambient, directional, point or
// spot.
type LightConfig struct {
	Type         string     `toml:"type" yaml:"type"`
	Color        string     `toml:"color" yaml:"color"`
	Intensity    float64    `toml:"intensity" yaml:"intensity"`
	Direction    [3]float64 `toml:"direction" yaml:"direction"`
	Position     [3]float64 `toml:"position" yaml:"position"`
	MaxDistance  float64    `toml:"max_distance" yaml:"max_distance"`
	InnerAngle   float64    `toml:"inner_angle" yaml:"inner_angle"`
	OuterAngle   float64    `toml:"outer_angle" yaml:"outer_angle"`
	CastsShadows bool       `toml:"casts_shadows" yaml:"casts_shadows"`
}

// ElementConfig describes an element and its children. Shape selects the
// builder: cube, plane, facet, heightmap, sphere, model or group.
type ElementConfig struct {
	Name  string `toml:"name" yaml:"name"`
	Shape string `toml:"shape" yaml:"shape"`

	Size      float64       `toml:"size" yaml:"size"`           // cube
	Width     float64       `toml:"width" yaml:"width"`         // plane
	Height    float64       `toml:"height" yaml:"height"`       // plane
	Divisions int           `toml:"divisions" yaml:"divisions"` // plane
	Points    [][3]float64  `toml:"points" yaml:"points"`       // facet
	TwoSided  bool          `toml:"two_sided" yaml:"two_sided"` // facet
	Heights   [][]float64   `toml:"heights" yaml:"heights"`     // heightmap
	Spacing   float64       `toml:"spacing" yaml:"spacing"`     // heightmap
	Radius    float64       `toml:"radius" yaml:"radius"`       // sphere
	Rings     int           `toml:"rings" yaml:"rings"`         // sphere
	Segments  int           `toml:"segments" yaml:"segments"`   // sphere
	Model     string        `toml:"model" yaml:"model"`         // model
	Transform TransformSpec `toml:"transform" yaml:"transform"`

	Color     string   `toml:"color" yaml:"color"`
	Specular  string   `toml:"specular" yaml:"specular"`
	Shininess *float64 `toml:"shininess,omitempty" yaml:"shininess,omitempty"`
	// Texture is an image path, or "checker" for a procedural texture.
	Texture string `toml:"texture" yaml:"texture"`

	Children []ElementConfig `toml:"children" yaml:"children"`
}

// TransformSpec is either a full row-major matrix or a scale, rotation
// and translation applied in that order. Rotation is given as Euler angles
// in degrees (X, then Y, then Z) or as a 3x3 row-major matrix.
type TransformSpec struct {
	Matrix         []float64   `toml:"matrix" yaml:"matrix"`
	Scale          []float64   `toml:"scale" yaml:"scale"` // One value for uniform scale
	Rotate         [3]float64  `toml:"rotate" yaml:"rotate"`
	RotationMatrix [][]float64 `toml:"rotation_matrix" yaml:"rotation_matrix"`
	Translate      [3]float64  `toml:"translate" yaml:"translate"`
}

// Default returns the settings used for everything a scene file omits.
func Default() *File {
	return &File{
		Background: "#000000",
		Render:     render.DefaultRenderConfig(),
		Projection: render.DefaultProjection(),
		Camera: CameraConfig{
			Eye: [3]float64{5, 4, 3},
			Up:  [3]float64{0, 0, 1},
		},
	}
}

// Load decodes the scene file at path over the defaults.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	f := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Save writes f to path, TOML or YAML depending on the extension.
func (f *File) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		data, err = toml.Marshal(f)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(f)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// resolve makes p relative to the scene file directory.
func (f *File) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || f.dir == "" {
		return p
	}
	return filepath.Join(f.dir, p)
}
