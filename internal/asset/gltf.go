package asset

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"gonum.org/v1/gonum/spatial/r3"
)

// LoadGLTF reads a .glb or .gltf file and flattens its default scene.
func LoadGLTF(path string) (*RawAsset, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetLoad, path, err)
	}
	raw, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	raw.Source = path
	return raw, nil
}

// FromDocument flattens the document's default scene (or every root node when the
// document has no scenes) into raw primitives carrying their world transforms.
func FromDocument(doc *gltf.Document) (*RawAsset, error) {
	roots, err := sceneRoots(doc)
	if err != nil {
		return nil, err
	}
	w := &docWalker{doc: doc, visiting: make(map[int]bool)}
	for _, n := range roots {
		if err := w.walk(n, mgl64.Ident4()); err != nil {
			return nil, err
		}
	}
	if len(w.prims) == 0 {
		return nil, ErrEmptyAsset
	}
	return &RawAsset{Primitives: w.prims}, nil
}

func sceneRoots(doc *gltf.Document) ([]int, error) {
	if len(doc.Scenes) > 0 {
		si := 0
		if doc.Scene != nil {
			si = *doc.Scene
		}
		if si < 0 || si >= len(doc.Scenes) {
			return nil, fmt.Errorf("%w: scene index %d out of range", ErrAssetLoad, si)
		}
		return doc.Scenes[si].Nodes, nil
	}
	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

type docWalker struct {
	doc      *gltf.Document
	visiting map[int]bool
	prims    []RawPrimitive
}

func (w *docWalker) walk(ni int, parent mgl64.Mat4) error {
	if ni < 0 || ni >= len(w.doc.Nodes) {
		return fmt.Errorf("%w: node index %d out of range", ErrAssetLoad, ni)
	}
	if w.visiting[ni] {
		return fmt.Errorf("%w: node %d is its own ancestor", ErrAssetLoad, ni)
	}
	w.visiting[ni] = true
	defer delete(w.visiting, ni)

	node := w.doc.Nodes[ni]
	world := parent.Mul4(localMatrix(node))
	if node.Mesh != nil {
		if err := w.addMesh(node, *node.Mesh, world); err != nil {
			return err
		}
	}
	for _, c := range node.Children {
		if err := w.walk(c, world); err != nil {
			return err
		}
	}
	return nil
}

func (w *docWalker) addMesh(node *gltf.Node, mi int, world mgl64.Mat4) error {
	if mi < 0 || mi >= len(w.doc.Meshes) {
		return fmt.Errorf("%w: mesh index %d out of range", ErrAssetLoad, mi)
	}
	mesh := w.doc.Meshes[mi]
	name := node.Name
	if name == "" {
		name = mesh.Name
	}
	for _, p := range mesh.Primitives {
		if !isSurface(p.Mode) {
			continue
		}
		pi, ok := p.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if pi < 0 || pi >= len(w.doc.Accessors) {
			return fmt.Errorf("%w: accessor %d out of range", ErrAssetLoad, pi)
		}
		pos, err := modeler.ReadPosition(w.doc, w.doc.Accessors[pi], nil)
		if err != nil {
			return fmt.Errorf("%w: mesh %q positions: %v", ErrAssetLoad, name, err)
		}
		rp := RawPrimitive{Name: name, World: world, Positions: make([]r3.Vec, len(pos))}
		for i, v := range pos {
			rp.Positions[i] = r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
		}
		if p.Indices != nil {
			ii := *p.Indices
			if ii < 0 || ii >= len(w.doc.Accessors) {
				return fmt.Errorf("%w: accessor %d out of range", ErrAssetLoad, ii)
			}
			idx, err := modeler.ReadIndices(w.doc, w.doc.Accessors[ii], nil)
			if err != nil {
				return fmt.Errorf("%w: mesh %q indices: %v", ErrAssetLoad, name, err)
			}
			rp.Indices = idx
		}
		rp.Indices = triangleList(p.Mode, rp.Indices, len(rp.Positions))
		w.prims = append(w.prims, rp)
	}
	return nil
}

// isSurface reports whether mode draws triangles. Points and lines have no surface to pick.
func isSurface(mode gltf.PrimitiveMode) bool {
	switch mode {
	case gltf.PrimitiveTriangles, gltf.PrimitiveTriangleStrip, gltf.PrimitiveTriangleFan:
		return true
	}
	return false
}

// triangleList rewrites strip and fan indices as a plain triangle list. Non-indexed strips
// and fans use the implicit 0..n-1 order. Strip winding alternates so every triangle keeps
// the orientation of the first. Triangle lists are returned unchanged.
func triangleList(mode gltf.PrimitiveMode, idx []uint32, n int) []uint32 {
	if mode != gltf.PrimitiveTriangleStrip && mode != gltf.PrimitiveTriangleFan {
		return idx
	}
	if idx == nil {
		idx = make([]uint32, n)
		for i := range idx {
			idx[i] = uint32(i)
		}
	}
	if len(idx) < 3 {
		return []uint32{}
	}
	out := make([]uint32, 0, (len(idx)-2)*3)
	for i := 0; i+2 < len(idx); i++ {
		switch {
		case mode == gltf.PrimitiveTriangleFan:
			out = append(out, idx[0], idx[i+1], idx[i+2])
		case i%2 == 0:
			out = append(out, idx[i], idx[i+1], idx[i+2])
		default:
			out = append(out, idx[i+1], idx[i], idx[i+2])
		}
	}
	return out
}

// localMatrix composes the node's matrix with its T*R*S; glTF nodes carry one or the other,
// and the unused form defaults to identity.
func localMatrix(n *gltf.Node) mgl64.Mat4 {
	m := mgl64.Mat4(n.MatrixOrDefault())
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
	trs := mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
	return m.Mul4(trs)
}
