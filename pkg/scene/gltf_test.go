package scene

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/umbra/pkg/math3d"
)

func TestLoadGLTFInvalidPath(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.glb")
	assert.Error(t, err)
}

func TestGLTFLoaderDefaults(t *testing.T) {
	l := NewGLTFLoader()
	require.NotNil(t, l.Logger)
	assert.True(t, l.Textures)
}

func TestLoadGLB(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 2, 1, 3})
	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "Root", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "quad.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))

	root, err := LoadGLTF(path)
	require.NoError(t, err)
	assert.Equal(t, "quad.glb", root.Name)
	require.Len(t, root.Children, 1)

	quad := root.Children[0]
	assert.Equal(t, "quad/0", quad.Name)
	assert.Len(t, quad.Vertices, 4)
	require.Len(t, quad.Triangles, 2)
	assert.Equal(t, [3]int{0, 1, 2}, quad.Triangles[0].V)

	// glTF fronts are counter clockwise, so the quad faces +Z.
	for _, tri := range quad.Triangles {
		assert.True(t, tri.Normal.ApproxEqual(math3d.UnitZ(), 1e-6), "normal %v", tri.Normal)
	}
	assert.True(t, quad.Vertices[3].Normal.ApproxEqual(math3d.UnitZ(), 1e-6))
}
