package scene

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/taigrr/umbra/pkg/math3d"
)

// Element is a node of the scene tree. It owns a vertex arena, the triangles
// indexing into it, a local-to-parent transform and its appearance.
type Element struct {
	ID   uuid.UUID
	Name string

	Vertices  []Vertex
	Triangles []Triangle
	Children  []*Element

	// Transform maps local coordinates to the parent's coordinates.
	// Replace it with SetTransformation or CombineTransformation.
	Transform math3d.Mat4

	Color     Color
	Specular  Color
	Shininess float64
	// Closed elements have their back faces culled even where a triangle
	// is marked recto-verso.
	Closed bool

	// Texture is bound to every generated triangle whose vertices all carry
	// texture coordinates.
	Texture *Texture

	// KeepNormals preserves imported vertex normals in CalculateNormals.
	KeepNormals bool

	Shape Shape

	stale bool
}

// NewElement creates an element built from shape. A nil shape is allowed
// for elements whose geometry is filled in directly.
func NewElement(name string, shape Shape) *Element {
	return &Element{
		ID:        uuid.New(),
		Name:      name,
		Transform: math3d.Identity(),
		Color:     White,
		Specular:  Black,
		Shininess: 32,
		Shape:     shape,
	}
}

// AddChild attaches child below e.
func (e *Element) AddChild(child *Element) {
	e.Children = append(e.Children, child)
}

// SetTransformation replaces the local transform.
func (e *Element) SetTransformation(m math3d.Mat4) {
	e.Transform = m
}

// CombineTransformation applies m after the current local transform.
func (e *Element) CombineTransformation(m math3d.Mat4) {
	e.Transform = m.Mul(e.Transform)
}

// SetPosition moves vertex i. The element is stale until Update is called.
func (e *Element) SetPosition(i int, p math3d.Vec3) error {
	if i < 0 || i >= len(e.Vertices) {
		return fmt.Errorf("%w: %d of %d", ErrVertexIndex, i, len(e.Vertices))
	}
	e.Vertices[i].Position = math3d.Point(p)
	e.stale = true
	return nil
}

// Stale reports whether vertices changed since the last Generate or Update.
func (e *Element) Stale() bool {
	return e.stale
}

// Generate builds vertices, triangles and normals from the shape, then
// generates the children.
func (e *Element) Generate() error {
	if e.Shape != nil {
		verts, err := e.Shape.Vertices()
		if err != nil {
			return fmt.Errorf("generate %s vertices: %w", e.Name, err)
		}
		e.Vertices = verts
		e.Closed = e.Shape.Closed()
	}
	if err := e.rebuild(); err != nil {
		return err
	}
	for _, c := range e.Children {
		if err := c.Generate(); err != nil {
			return err
		}
	}
	return nil
}

// Update rebuilds triangles and normals from the current vertices,
// without regenerating the vertices, then updates the children.
func (e *Element) Update() error {
	if err := e.rebuild(); err != nil {
		return err
	}
	for _, c := range e.Children {
		if err := c.Update(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Element) rebuild() error {
	if e.Shape != nil {
		tris, err := e.Shape.Triangles(e.Vertices)
		if err != nil {
			return fmt.Errorf("generate %s triangles: %w", e.Name, err)
		}
		e.Triangles = tris
	}
	for i, t := range e.Triangles {
		for _, idx := range t.V {
			if idx < 0 || idx >= len(e.Vertices) {
				return fmt.Errorf("%s triangle %d: %w: %d", e.Name, i, ErrVertexIndex, idx)
			}
		}
	}
	e.bindTexture()
	e.CalculateNormals()
	e.stale = false
	return nil
}

func (e *Element) bindTexture() {
	if e.Texture == nil {
		return
	}
	for i := range e.Triangles {
		t := &e.Triangles[i]
		if t.Texture != nil {
			continue
		}
		a, b, c := e.Vertices[t.V[0]], e.Vertices[t.V[1]], e.Vertices[t.V[2]]
		if !a.HasUV || !b.HasUV || !c.HasUV {
			continue
		}
		t.Texture = &TextureBinding{
			Texture: e.Texture,
			UV:      [3]math3d.Vec2{a.UV, b.UV, c.UV},
		}
	}
}

// CalculateNormals refreshes the face normal of every triangle and sets each
// vertex normal to the area-weighted average of the faces sharing it.
// Zero-area triangles get a zero normal and do not contribute.
func (e *Element) CalculateNormals() {
	var sums []math3d.Vec3
	if !e.KeepNormals {
		sums = make([]math3d.Vec3, len(e.Vertices))
	}

	for i := range e.Triangles {
		t := &e.Triangles[i]
		p0 := e.Vertices[t.V[0]].Point()
		p1 := e.Vertices[t.V[1]].Point()
		p2 := e.Vertices[t.V[2]].Point()

		// The cross product length is twice the area, which weights the sum.
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		t.Normal = n.Normalize()

		if sums != nil {
			for _, idx := range t.V {
				sums[idx] = sums[idx].Add(n)
			}
		}
	}

	for i := range sums {
		e.Vertices[i].Normal = sums[i].Normalize()
	}
}

// Walk visits e and its descendants depth-first. model is the accumulated
// local-to-world matrix of e's parent.
func (e *Element) Walk(model math3d.Mat4, fn func(e *Element, model math3d.Mat4)) {
	m := model.Mul(e.Transform)
	fn(e, m)
	for _, c := range e.Children {
		c.Walk(m, fn)
	}
}

// Bounds returns the world-space box of e and its descendants.
func (e *Element) Bounds(parent math3d.Mat4) math3d.Box {
	b := math3d.EmptyBox()
	e.Walk(parent, func(el *Element, m math3d.Mat4) {
		for _, v := range el.Vertices {
			b = b.Extend(m.MulPoint(v.Point()))
		}
	})
	return b
}

// LocalBounds returns the box of e's own vertices in local coordinates.
func (e *Element) LocalBounds() math3d.Box {
	b := math3d.EmptyBox()
	for _, v := range e.Vertices {
		b = b.Extend(v.Point())
	}
	return b
}
