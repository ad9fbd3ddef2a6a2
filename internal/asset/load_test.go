package asset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// nestedDoc builds a scene with a translated parent and a scaled child holding one triangle.
func nestedDoc() *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "mesh0",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "hemisphere", Translation: [3]float64{10, 0, 0}, Children: []int{1}},
		{Mesh: gltf.Index(0), Scale: [3]float64{2, 2, 2}},
	}
	doc.Scenes[0].Nodes = []int{0}
	return doc
}

func TestFromDocumentBakesHierarchy(t *testing.T) {
	t.Parallel()

	raw, err := FromDocument(nestedDoc())
	require.NoError(t, err)
	require.Len(t, raw.Primitives, 1)
	p := raw.Primitives[0]
	assert.Equal(t, "mesh0", p.Name, "unnamed node falls back to mesh name")
	assert.Equal(t, []uint32{0, 1, 2}, p.Indices)

	m, err := Normalize(raw, 2)
	require.NoError(t, err)
	got := m.Primitives[0].Positions
	assertVecNear(t, r3.Vec{X: -1, Y: -1}, got[0])
	assertVecNear(t, r3.Vec{X: 1, Y: -1}, got[1])
	assertVecNear(t, r3.Vec{X: -1, Y: 1}, got[2])
	assert.InDelta(t, 1.0, m.Transform.Scale, tol)
	assertVecNear(t, r3.Vec{X: -11, Y: -1}, m.Transform.Translation)
}

func TestFromDocumentRejects(t *testing.T) {
	t.Parallel()

	t.Run("no meshes", func(t *testing.T) {
		t.Parallel()
		doc := gltf.NewDocument()
		doc.Nodes = []*gltf.Node{{Name: "empty"}}
		doc.Scenes[0].Nodes = []int{0}
		_, err := FromDocument(doc)
		assert.ErrorIs(t, err, ErrEmptyAsset)
	})

	t.Run("cycle", func(t *testing.T) {
		t.Parallel()
		doc := gltf.NewDocument()
		doc.Nodes = []*gltf.Node{{Children: []int{1}}, {Children: []int{0}}}
		doc.Scenes[0].Nodes = []int{0}
		_, err := FromDocument(doc)
		assert.ErrorIs(t, err, ErrAssetLoad)
	})

	t.Run("bad node index", func(t *testing.T) {
		t.Parallel()
		doc := gltf.NewDocument()
		doc.Scenes[0].Nodes = []int{3}
		_, err := FromDocument(doc)
		assert.ErrorIs(t, err, ErrAssetLoad)
	})
}

func TestFromDocumentPrimitiveModes(t *testing.T) {
	t.Parallel()

	doc := gltf.NewDocument()
	quad := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}})
	doc.Meshes = []*gltf.Mesh{{
		Name: "cortex",
		Primitives: []*gltf.Primitive{
			{Mode: gltf.PrimitivePoints, Attributes: map[string]int{gltf.POSITION: quad}},
			{Mode: gltf.PrimitiveLines, Attributes: map[string]int{gltf.POSITION: quad}},
			{Mode: gltf.PrimitiveTriangleStrip, Attributes: map[string]int{gltf.POSITION: quad}},
		},
	}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}

	raw, err := FromDocument(doc)
	require.NoError(t, err)
	require.Len(t, raw.Primitives, 1, "points and lines are skipped")
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3}, raw.Primitives[0].Indices)

	doc.Meshes[0].Primitives = doc.Meshes[0].Primitives[:2]
	_, err = FromDocument(doc)
	assert.ErrorIs(t, err, ErrEmptyAsset)
}

func TestTriangleList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode gltf.PrimitiveMode
		idx  []uint32
		n    int
		want []uint32
	}{
		{"list unchanged", gltf.PrimitiveTriangles, []uint32{2, 1, 0}, 3, []uint32{2, 1, 0}},
		{"list without indices", gltf.PrimitiveTriangles, nil, 3, nil},
		{"indexed strip", gltf.PrimitiveTriangleStrip, []uint32{4, 5, 6, 7, 8}, 9, []uint32{4, 5, 6, 6, 5, 7, 6, 7, 8}},
		{"implicit fan", gltf.PrimitiveTriangleFan, nil, 5, []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4}},
		{"short strip", gltf.PrimitiveTriangleStrip, []uint32{0, 1}, 2, []uint32{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, triangleList(tt.mode, tt.idx, tt.n))
		})
	}
}

func TestLoadFileGLB(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "brain.glb")
	require.NoError(t, gltf.SaveBinary(nestedDoc(), path))

	m, err := LoadAndNormalize(path, 2)
	require.NoError(t, err)
	assert.Equal(t, path, m.Source)
	require.Len(t, m.Primitives, 1)
	assert.InDelta(t, 2.0, m.Bounds.MaxDim(), tol)
}

func TestLoadFileFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := LoadFile(filepath.Join(dir, "missing.glb"))
	assert.ErrorIs(t, err, ErrAssetLoad)

	stl := filepath.Join(dir, "brain.stl")
	require.NoError(t, os.WriteFile(stl, []byte("solid"), 0o644))
	_, err = LoadFile(stl)
	assert.ErrorIs(t, err, ErrAssetLoad)

	corrupt := filepath.Join(dir, "corrupt.glb")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a glb"), 0o644))
	_, err = LoadFile(corrupt)
	assert.ErrorIs(t, err, ErrAssetLoad)

	empty := filepath.Join(dir, "empty.obj")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\nv 0 0 0\n"), 0o644))
	_, err = LoadAndNormalize(empty, 2)
	assert.ErrorIs(t, err, ErrEmptyAsset)
}

const twoGroupOBJ = `# two lobes
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 5 0 0
v 6 0 0
v 6 1 0
o visual_lobe
f 1 2 3 4
g
f 5/1/1 6//2 -1
`

func TestDecodeOBJ(t *testing.T) {
	t.Parallel()

	raw, err := DecodeOBJ(strings.NewReader(twoGroupOBJ))
	require.NoError(t, err)
	require.Len(t, raw.Primitives, 2)

	quad := raw.Primitives[0]
	assert.Equal(t, "visual_lobe", quad.Name)
	assert.Len(t, quad.Positions, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, quad.Indices)

	tri := raw.Primitives[1]
	assert.Empty(t, tri.Name)
	assert.Equal(t, []r3.Vec{{X: 5}, {X: 6}, {X: 6, Y: 1}}, tri.Positions)
}

func TestDecodeOBJErrors(t *testing.T) {
	t.Parallel()

	for name, src := range map[string]string{
		"short vertex": "v 1 2\n",
		"bad float":    "v 1 x 2\n",
		"zero index":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"range":        "v 0 0 0\nf 1 2 3\n",
		"short face":   "v 0 0 0\nf 1 1\n",
	} {
		_, err := DecodeOBJ(strings.NewReader(src))
		assert.ErrorIs(t, err, ErrAssetLoad, name)
	}
}
