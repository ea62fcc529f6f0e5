package scene

// Shape builds the geometry of an element.
//
// Vertices is called once by Generate. Triangles is called by Generate and
// again by Update, with the element's current vertices, so it must only
// depend on the vertex count and order.
type Shape interface {
	Vertices() ([]Vertex, error)
	Triangles(vertices []Vertex) ([]Triangle, error)
	// Closed reports whether the shape encloses a volume, which allows
	// back faces to be culled.
	Closed() bool
}

// Generable is implemented by nodes whose geometry is derived from a
// builder and can be refreshed.
type Generable interface {
	Generate() error
	Update() error
	CalculateNormals()
}

var _ Generable = (*Element)(nil)
