package render

import (
	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/scene"
)

// shadedPass fills triangles into a framebuffer according to the render
// mode.
type shadedPass struct {
	vp       *viewport
	fb       *Framebuffer
	mode     RenderMode
	textures bool
	shader   *shader
	stats    *RenderStats
	lines    *wireframe
}

func (p *shadedPass) cullBackFaces() bool {
	return p.mode != Wireframe
}

func (p *shadedPass) triangle(f *elementFrame, t *scene.Triangle, poly []clipVertex, flipped bool) {
	switch p.mode {
	case Wireframe:
		p.lines.drawPolygon(poly, p.edgeColor(f, t).RGBA())
	case Monochrome:
		p.monochrome(f, t, poly, flipped)
	case Plain:
		p.plain(f, t, poly, flipped)
	default:
		p.interpolated(f, t, poly, flipped)
	}
}

func (p *shadedPass) edgeColor(f *elementFrame, t *scene.Triangle) scene.Color {
	if t.HasColor {
		return t.Color
	}
	return f.el.Color
}

// monochrome lights the whole triangle once, at its centroid.
func (p *shadedPass) monochrome(f *elementFrame, t *scene.Triangle, poly []clipVertex, flipped bool) {
	centroid := [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	pos := interpolate3(f.world, t, centroid)
	c := p.shader.shade(p.baseColor(f, t, centroid), pos, orient(f.faceNormal(t), flipped), f.el).RGBA()
	rasterizePolygon(p.vp, poly, p.stats, func(x, y int, _ [3]float64) {
		p.fb.SetPixel(x, y, c)
	})
}

// plain lights the three corners and interpolates the light across the
// triangle. The base color still varies per pixel.
func (p *shadedPass) plain(f *elementFrame, t *scene.Triangle, poly []clipVertex, flipped bool) {
	var diffuse, spec [3]scene.Color
	for i, idx := range t.V {
		n := p.vertexNormal(f, t, i)
		diffuse[i], spec[i] = p.shader.lightAt(f.world[idx], orient(n, flipped), f.el.Specular, f.el.Shininess)
	}
	rasterizePolygon(p.vp, poly, p.stats, func(x, y int, w [3]float64) {
		d := diffuse[0].Scale(w[0]).Add(diffuse[1].Scale(w[1])).Add(diffuse[2].Scale(w[2]))
		s := spec[0].Scale(w[0]).Add(spec[1].Scale(w[1])).Add(spec[2].Scale(w[2]))
		p.fb.SetPixel(x, y, p.baseColor(f, t, w).Mul(d).Add(s).Clamp().RGBA())
	})
}

// interpolated lights every pixel with its own position and normal.
func (p *shadedPass) interpolated(f *elementFrame, t *scene.Triangle, poly []clipVertex, flipped bool) {
	var normals [3]math3d.Vec3
	for i := range normals {
		normals[i] = p.vertexNormal(f, t, i)
	}
	rasterizePolygon(p.vp, poly, p.stats, func(x, y int, w [3]float64) {
		pos := interpolate3(f.world, t, w)
		n := normals[0].Scale(w[0]).Add(normals[1].Scale(w[1])).Add(normals[2].Scale(w[2])).Normalize()
		p.fb.SetPixel(x, y, p.shader.shade(p.baseColor(f, t, w), pos, orient(n, flipped), f.el).RGBA())
	})
}

// vertexNormal returns the world normal used at corner i of t.
func (p *shadedPass) vertexNormal(f *elementFrame, t *scene.Triangle, i int) math3d.Vec3 {
	if t.Faceted {
		return f.faceNormal(t)
	}
	n := f.normals[t.V[i]]
	if n == (math3d.Vec3{}) {
		return f.faceNormal(t)
	}
	return n
}

// baseColor returns the unlit surface color at barycentric weights w:
// texture, then triangle color, then vertex colors, then element color.
func (p *shadedPass) baseColor(f *elementFrame, t *scene.Triangle, w [3]float64) scene.Color {
	if p.textures && t.Texture != nil && t.Texture.Texture != nil {
		uv := t.Texture.UVAt(0).Scale(w[0]).Add(t.Texture.UVAt(1).Scale(w[1])).Add(t.Texture.UVAt(2).Scale(w[2]))
		return t.Texture.Texture.Sample(uv.X, uv.Y)
	}
	if t.HasColor {
		return t.Color
	}
	v := f.el.Vertices
	a, b, c := v[t.V[0]], v[t.V[1]], v[t.V[2]]
	if a.HasColor && b.HasColor && c.HasColor {
		return a.Color.Scale(w[0]).Add(b.Color.Scale(w[1])).Add(c.Color.Scale(w[2]))
	}
	return f.el.Color
}

func interpolate3(values []math3d.Vec3, t *scene.Triangle, w [3]float64) math3d.Vec3 {
	return values[t.V[0]].Scale(w[0]).Add(values[t.V[1]].Scale(w[1])).Add(values[t.V[2]].Scale(w[2]))
}

func orient(n math3d.Vec3, flipped bool) math3d.Vec3 {
	if flipped {
		return n.Negate()
	}
	return n
}

// depthPass only fills a depth buffer. Both sides of every triangle are
// drawn.
type depthPass struct {
	vp    *viewport
	stats *RenderStats
}

func (p *depthPass) cullBackFaces() bool {
	return false
}

func (p *depthPass) triangle(_ *elementFrame, _ *scene.Triangle, poly []clipVertex, _ bool) {
	rasterizePolygon(p.vp, poly, p.stats, nil)
}
