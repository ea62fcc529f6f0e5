package render

import (
	"math"

	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/scene"
)

// shader evaluates the lighting of world-space points.
type shader struct {
	lights  []Light
	eye     math3d.Vec3
	forward math3d.Vec3 // Viewing direction, used for orthographic views
	ortho   bool
	shadows bool
}

func newShader(lighting *Lighting, camera *Camera, proj ProjectionConfig, shadows bool) *shader {
	return &shader{
		lights:  lighting.Lights,
		eye:     camera.Eye,
		forward: camera.Forward(),
		ortho:   proj.Type == Orthographic,
		shadows: shadows,
	}
}

// toEye returns the unit vector from p towards the viewer.
func (s *shader) toEye(p math3d.Vec3) math3d.Vec3 {
	if s.ortho {
		return s.forward.Negate()
	}
	return s.eye.Sub(p).Normalize()
}

// lightAt returns the diffuse and specular light reaching p on a surface
// with unit normal n. Ambient light ignores the normal and is never
// shadowed.
func (s *shader) lightAt(p, n math3d.Vec3, specular scene.Color, shininess float64) (diffuse, spec scene.Color) {
	withSpecular := shininess > 0 && specular != scene.Black
	for _, light := range s.lights {
		il := light.Illuminate(p)
		if il.Ambient {
			diffuse = diffuse.Add(il.Color.Scale(il.Intensity))
			continue
		}
		if il.Intensity <= 0 {
			continue
		}
		ndl := n.Dot(il.Direction)
		if ndl <= 0 {
			continue
		}
		if s.occluded(light, p, ndl) {
			continue
		}
		diffuse = diffuse.Add(il.Color.Scale(ndl * il.Intensity))

		if withSpecular {
			// Blinn-Phong half vector
			h, ok := il.Direction.Add(s.toEye(p)).TryNormalize()
			if !ok {
				continue
			}
			if ndh := n.Dot(h); ndh > 0 {
				spec = spec.Add(specular.Mul(il.Color).Scale(il.Intensity * math.Pow(ndh, shininess)))
			}
		}
	}
	return diffuse, spec
}

func (s *shader) occluded(light Light, p math3d.Vec3, ndl float64) bool {
	if !s.shadows {
		return false
	}
	caster, ok := light.(ShadowCaster)
	if !ok || !caster.ShadowsEnabled() {
		return false
	}
	m := caster.ShadowMap()
	return m != nil && m.Occluded(p, ndl)
}

// shade combines a base color with the light at p.
func (s *shader) shade(base scene.Color, p, n math3d.Vec3, el *scene.Element) scene.Color {
	diffuse, spec := s.lightAt(p, n, el.Specular, el.Shininess)
	return base.Mul(diffuse).Add(spec).Clamp()
}
