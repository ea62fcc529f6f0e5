package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/umbra/pkg/math3d"
)

// GLTFLoader imports glTF and GLB files as element trees.
type GLTFLoader struct {
	// Logger receives warnings about textures that could not be decoded.
	Logger *log.Logger
	// Textures enables base color texture import.
	Textures bool
}

// NewGLTFLoader creates a loader that imports textures and discards logs.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		Logger:   log.New(io.Discard),
		Textures: true,
	}
}

// LoadGLTF loads a glTF or GLB file with the default loader.
func LoadGLTF(path string) (*Element, error) {
	return NewGLTFLoader().Load(path)
}

// Load reads path and returns a generated element with one child per mesh
// primitive.
func (l *GLTFLoader) Load(path string) (*Element, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	root := NewElement(filepath.Base(path), nil)
	textures := make(map[int]*Texture)

	for mi, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			name := m.Name
			if name == "" {
				name = fmt.Sprintf("mesh%d", mi)
			}
			el, err := l.primitive(doc, prim, fmt.Sprintf("%s/%d", name, pi), filepath.Dir(path), textures)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", name, pi, err)
			}
			if el != nil {
				root.AddChild(el)
			}
		}
	}

	if err := root.Generate(); err != nil {
		return nil, err
	}
	return root, nil
}

func (l *GLTFLoader) primitive(doc *gltf.Document, prim *gltf.Primitive, name, dir string, textures map[int]*Texture) (*Element, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	el := NewElement(name, nil)
	el.Vertices = make([]Vertex, len(positions))
	for i, p := range positions {
		el.Vertices[i] = NewVertex(math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		for i := range min(len(normals), len(el.Vertices)) {
			n := normals[i]
			el.Vertices[i].Normal = math3d.V3(float64(n[0]), float64(n[1]), float64(n[2])).Normalize()
		}
		el.KeepNormals = len(normals) == len(el.Vertices)
	}

	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read uvs: %w", err)
		}
		for i := range min(len(uvs), len(el.Vertices)) {
			// glTF puts v=0 on the top row of the image.
			el.Vertices[i].UV = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
			el.Vertices[i].HasUV = true
		}
	}

	if idx, ok := prim.Attributes[gltf.COLOR_0]; ok {
		colors, err := modeler.ReadColor(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read colors: %w", err)
		}
		for i := range min(len(colors), len(el.Vertices)) {
			c := colors[i]
			el.Vertices[i].Color = RGB8(c[0], c[1], c[2])
			el.Vertices[i].HasColor = true
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for i := 0; i+2 < len(indices); i += 3 {
		el.Triangles = append(el.Triangles, Triangle{
			V: [3]int{int(indices[i]), int(indices[i+1]), int(indices[i+2])},
		})
	}

	if prim.Material != nil {
		l.applyMaterial(doc, doc.Materials[*prim.Material], el, dir, textures)
	}
	return el, nil
}

func (l *GLTFLoader) applyMaterial(doc *gltf.Document, mat *gltf.Material, el *Element, dir string, textures map[int]*Texture) {
	if mat.DoubleSided {
		for i := range el.Triangles {
			el.Triangles[i].RectoVerso = true
		}
	}
	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return
	}
	if f := pbr.BaseColorFactor; f != nil {
		el.Color = RGB(f[0], f[1], f[2])
	}
	if !l.Textures || pbr.BaseColorTexture == nil {
		return
	}
	texIdx := pbr.BaseColorTexture.Index
	if texIdx < 0 || texIdx >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
		return
	}
	imgIdx := *doc.Textures[texIdx].Source
	tex, ok := textures[imgIdx]
	if !ok {
		var err error
		tex, err = l.decodeImage(doc, imgIdx, dir)
		if err != nil {
			l.Logger.Warn("texture unavailable, using flat color", "element", el.Name, "image", imgIdx, "err", err)
		}
		textures[imgIdx] = tex
	}
	if tex != nil {
		el.Texture = tex
		// The texture already carries the material color.
		el.Color = White
	}
}

func (l *GLTFLoader) decodeImage(doc *gltf.Document, idx int, dir string) (*Texture, error) {
	if idx < 0 || idx >= len(doc.Images) {
		return nil, fmt.Errorf("image %d out of range", idx)
	}
	img := doc.Images[idx]

	var data []byte
	switch {
	case img.BufferView != nil:
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		end := bv.ByteOffset + bv.ByteLength
		if end > len(buf.Data) {
			return nil, fmt.Errorf("image %d buffer view out of range", idx)
		}
		data = buf.Data[bv.ByteOffset:end]
	case img.IsEmbeddedResource():
		var err error
		if data, err = img.MarshalData(); err != nil {
			return nil, err
		}
	case img.URI != "":
		var err error
		if data, err = os.ReadFile(filepath.Join(dir, img.URI)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("image %d has no data", idx)
	}
	return DecodeTexture(bytes.NewReader(data))
}
