package scene

import (
	"fmt"
	"math"

	"github.com/taigrr/umbra/pkg/math3d"
)

// Cube is an axis-aligned cube centered on the origin. Each face has its own
// four vertices so that faces stay flat shaded and carry full texture
// coordinates.
type Cube struct {
	Size float64
}

// cubeFaces lists (normal, u, v) with u × v = normal.
var cubeFaces = [6][3]math3d.Vec3{
	{{X: 1}, {Y: 1}, {Z: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {Z: 1}, {X: 1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {Y: 1}, {X: 1}},
}

func (c Cube) Vertices() ([]Vertex, error) {
	if c.Size <= 0 {
		return nil, fmt.Errorf("%w: cube size %v", ErrInvalidShape, c.Size)
	}
	h := c.Size / 2
	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	verts := make([]Vertex, 0, 24)
	for _, f := range cubeFaces {
		n, u, v := f[0], f[1], f[2]
		for _, k := range corners {
			p := n.Add(u.Scale(k[0])).Add(v.Scale(k[1])).Scale(h)
			vert := NewVertex(p)
			vert.UV = math3d.V2((k[0]+1)/2, (k[1]+1)/2)
			vert.HasUV = true
			verts = append(verts, vert)
		}
	}
	return verts, nil
}

func (c Cube) Triangles(vertices []Vertex) ([]Triangle, error) {
	return quadTriangles(len(vertices)/4, true, false), nil
}

func (Cube) Closed() bool { return true }

// quadTriangles splits consecutive groups of four vertices into two
// triangles each.
func quadTriangles(quads int, faceted, rectoVerso bool) []Triangle {
	tris := make([]Triangle, 0, quads*2)
	for q := range quads {
		b := q * 4
		tris = append(tris,
			Triangle{V: [3]int{b, b + 1, b + 2}, Faceted: faceted, RectoVerso: rectoVerso},
			Triangle{V: [3]int{b, b + 2, b + 3}, Faceted: faceted, RectoVerso: rectoVerso},
		)
	}
	return tris
}

// Plane is a flat rectangle in the XY plane facing +Z, subdivided into a
// grid. Planes are open and drawn from both sides.
type Plane struct {
	Width, Height float64
	Divisions     int
}

func (p Plane) Vertices() ([]Vertex, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("%w: plane %vx%v", ErrInvalidShape, p.Width, p.Height)
	}
	n := max(p.Divisions, 1)
	verts := make([]Vertex, 0, (n+1)*(n+1))
	for j := range n + 1 {
		for i := range n + 1 {
			u, v := float64(i)/float64(n), float64(j)/float64(n)
			vert := NewVertex(math3d.V3((u-0.5)*p.Width, (v-0.5)*p.Height, 0))
			vert.UV = math3d.V2(u, v)
			vert.HasUV = true
			verts = append(verts, vert)
		}
	}
	return verts, nil
}

func (p Plane) Triangles(vertices []Vertex) ([]Triangle, error) {
	n := max(p.Divisions, 1)
	return gridTriangles(n+1, n+1, len(vertices))
}

func (Plane) Closed() bool { return false }

// gridTriangles triangulates a cols x rows vertex grid stored row by row,
// counter clockwise around +Z.
func gridTriangles(cols, rows, count int) ([]Triangle, error) {
	if cols*rows != count {
		return nil, fmt.Errorf("%w: grid %dx%d has %d vertices", ErrVertexIndex, cols, rows, count)
	}
	tris := make([]Triangle, 0, (cols-1)*(rows-1)*2)
	for j := range rows - 1 {
		for i := range cols - 1 {
			a := j*cols + i
			b := a + 1
			c := a + cols + 1
			d := a + cols
			tris = append(tris,
				Triangle{V: [3]int{a, b, c}, RectoVerso: true},
				Triangle{V: [3]int{a, c, d}, RectoVerso: true},
			)
		}
	}
	return tris, nil
}

// Facet is a single triangle. It is open, so it is culled from behind
// unless TwoSided is set.
type Facet struct {
	A, B, C  math3d.Vec3
	TwoSided bool
}

func (f Facet) Vertices() ([]Vertex, error) {
	verts := []Vertex{NewVertex(f.A), NewVertex(f.B), NewVertex(f.C)}
	for i, uv := range []math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}} {
		verts[i].UV = uv
		verts[i].HasUV = true
	}
	return verts, nil
}

func (f Facet) Triangles([]Vertex) ([]Triangle, error) {
	return []Triangle{{V: [3]int{0, 1, 2}, Faceted: true, RectoVerso: f.TwoSided}}, nil
}

func (Facet) Closed() bool { return false }

// HeightMap is a terrain patch: Heights[row][col] is the Z of the sample at
// (col*Spacing, row*Spacing), recentred on the origin.
type HeightMap struct {
	Heights [][]float64
	Spacing float64
}

func (h HeightMap) dims() (cols, rows int, err error) {
	rows = len(h.Heights)
	if rows < 2 {
		return 0, 0, fmt.Errorf("%w: %d rows", ErrHeightMapShape, rows)
	}
	cols = len(h.Heights[0])
	if cols < 2 {
		return 0, 0, fmt.Errorf("%w: %d columns", ErrHeightMapShape, cols)
	}
	for r, row := range h.Heights {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: row %d has %d samples, want %d", ErrHeightMapShape, r, len(row), cols)
		}
	}
	return cols, rows, nil
}

func (h HeightMap) Vertices() ([]Vertex, error) {
	cols, rows, err := h.dims()
	if err != nil {
		return nil, err
	}
	s := h.Spacing
	if s <= 0 {
		s = 1
	}
	ox := float64(cols-1) * s / 2
	oy := float64(rows-1) * s / 2

	verts := make([]Vertex, 0, cols*rows)
	for r, row := range h.Heights {
		for c, z := range row {
			vert := NewVertex(math3d.V3(float64(c)*s-ox, float64(r)*s-oy, z))
			vert.UV = math3d.V2(float64(c)/float64(cols-1), float64(r)/float64(rows-1))
			vert.HasUV = true
			verts = append(verts, vert)
		}
	}
	return verts, nil
}

func (h HeightMap) Triangles(vertices []Vertex) ([]Triangle, error) {
	cols, rows, err := h.dims()
	if err != nil {
		return nil, err
	}
	return gridTriangles(cols, rows, len(vertices))
}

func (HeightMap) Closed() bool { return false }

// Sphere is a UV sphere centered on the origin with its poles on the Z axis.
type Sphere struct {
	Radius   float64
	Rings    int
	Segments int
}

func (s Sphere) dims() (rings, segs int) {
	return max(s.Rings, 2), max(s.Segments, 3)
}

func (s Sphere) Vertices() ([]Vertex, error) {
	if s.Radius <= 0 {
		return nil, fmt.Errorf("%w: sphere radius %v", ErrInvalidShape, s.Radius)
	}
	rings, segs := s.dims()
	verts := make([]Vertex, 0, (rings+1)*(segs+1))
	for i := range rings + 1 {
		theta := math.Pi * float64(i) / float64(rings)
		st, ct := math.Sincos(theta)
		for j := range segs + 1 {
			phi := 2 * math.Pi * float64(j) / float64(segs)
			sp, cp := math.Sincos(phi)
			vert := NewVertex(math3d.V3(st*cp, st*sp, ct).Scale(s.Radius))
			vert.UV = math3d.V2(float64(j)/float64(segs), 1-float64(i)/float64(rings))
			vert.HasUV = true
			verts = append(verts, vert)
		}
	}
	return verts, nil
}

func (s Sphere) Triangles(vertices []Vertex) ([]Triangle, error) {
	rings, segs := s.dims()
	cols := segs + 1
	if len(vertices) != (rings+1)*cols {
		return nil, fmt.Errorf("%w: sphere expects %d vertices, has %d", ErrVertexIndex, (rings+1)*cols, len(vertices))
	}
	tris := make([]Triangle, 0, rings*segs*2)
	for i := range rings {
		for j := range segs {
			a := i*cols + j
			b := a + cols
			c := b + 1
			d := a + 1
			// The pole rows collapse one triangle of each quad.
			if i != rings-1 {
				tris = append(tris, Triangle{V: [3]int{a, b, c}})
			}
			if i != 0 {
				tris = append(tris, Triangle{V: [3]int{a, c, d}})
			}
		}
	}
	return tris, nil
}

func (Sphere) Closed() bool { return true }
