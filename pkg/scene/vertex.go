package scene

import "github.com/taigrr/umbra/pkg/math3d"

// Vertex is a point of an element's vertex arena. Optional attributes are
// flagged with their Has* field.
type Vertex struct {
	Position math3d.Vec4 // Homogeneous, W is normally 1
	Normal   math3d.Vec3

	UV    math3d.Vec2
	HasUV bool

	Color    Color
	HasColor bool
}

// NewVertex returns a vertex at p.
func NewVertex(p math3d.Vec3) Vertex {
	return Vertex{Position: math3d.Point(p)}
}

// Point returns the position as a Cartesian point.
func (v Vertex) Point() math3d.Vec3 {
	if p, ok := v.Position.PerspectiveDivide(); ok {
		return p
	}
	return v.Position.Vec3()
}

// TextureBinding maps a texture onto the three corners of a triangle.
type TextureBinding struct {
	Texture *Texture
	UV      [3]math3d.Vec2
	FlipV   bool // Images stored bottom row first
}

// UVAt returns the corner coordinate i, honoring FlipV.
func (b *TextureBinding) UVAt(i int) math3d.Vec2 {
	uv := b.UV[i]
	if b.FlipV {
		uv.Y = 1 - uv.Y
	}
	return uv
}

// Triangle references three vertices of its element by index, counter
// clockwise when seen from the front.
type Triangle struct {
	V [3]int

	// Normal is the unit face normal, refreshed by CalculateNormals.
	// Faceted triangles shade with it instead of the vertex normals.
	Normal  math3d.Vec3
	Faceted bool

	Texture *TextureBinding

	Color    Color
	HasColor bool

	// RectoVerso triangles are drawn from both sides.
	RectoVerso bool
}
