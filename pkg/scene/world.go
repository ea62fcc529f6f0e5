package scene

import "github.com/taigrr/umbra/pkg/math3d"

// World is the root of a scene.
type World struct {
	Elements   []*Element
	Background Color
}

// NewWorld creates an empty world with a black background.
func NewWorld() *World {
	return &World{Background: Black}
}

// AddElement appends a top-level element.
func (w *World) AddElement(e *Element) {
	w.Elements = append(w.Elements, e)
}

// Generate generates every top-level element and its descendants.
func (w *World) Generate() error {
	for _, e := range w.Elements {
		if err := e.Generate(); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits every element depth-first with its local-to-world matrix.
func (w *World) Walk(fn func(e *Element, model math3d.Mat4)) {
	for _, e := range w.Elements {
		e.Walk(math3d.Identity(), fn)
	}
}

// Bounds returns the world-space box around every vertex, empty when the
// world has no geometry.
func (w *World) Bounds() math3d.Box {
	b := math3d.EmptyBox()
	for _, e := range w.Elements {
		b = b.Union(e.Bounds(math3d.Identity()))
	}
	return b
}

// FlatMesh is the world-space geometry of a whole world.
type FlatMesh struct {
	Positions []math3d.Vec3
	Normals   []math3d.Vec3
	Triangles [][3]int
	Owners    []*Element // Element of each triangle
}

// Flatten transforms every element into world space and concatenates the
// vertex and triangle lists.
func (w *World) Flatten() FlatMesh {
	var fm FlatMesh
	w.Walk(func(e *Element, m math3d.Mat4) {
		base := len(fm.Positions)
		nm := m.NormalMatrix()
		for _, v := range e.Vertices {
			fm.Positions = append(fm.Positions, m.MulPoint(v.Point()))
			fm.Normals = append(fm.Normals, nm.MulVec3(v.Normal).Normalize())
		}
		for _, t := range e.Triangles {
			fm.Triangles = append(fm.Triangles, [3]int{base + t.V[0], base + t.V[1], base + t.V[2]})
			fm.Owners = append(fm.Owners, e)
		}
	})
	return fm
}

// Find returns the first element named name, searching depth-first.
func (w *World) Find(name string) *Element {
	var found *Element
	w.Walk(func(e *Element, _ math3d.Mat4) {
		if found == nil && e.Name == name {
			found = e
		}
	})
	return found
}
