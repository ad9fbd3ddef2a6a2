package asset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// LoadOBJ reads a Wavefront OBJ file. Each "o" or "g" statement starts a new primitive
// named after it; faces before the first one go into an unnamed primitive.
func LoadOBJ(path string) (*RawAsset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	defer f.Close()
	raw, err := DecodeOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	raw.Source = path
	return raw, nil
}

// objGroup collects the faces of one named group, remapping global vertex ids to local ones.
type objGroup struct {
	name    string
	remap   map[int]uint32
	prim    RawPrimitive
	started bool
}

func newObjGroup(name string) *objGroup {
	return &objGroup{name: name, remap: make(map[int]uint32), prim: RawPrimitive{Name: name, Indices: []uint32{}}}
}

func (g *objGroup) vertex(global int, verts []r3.Vec) uint32 {
	if li, ok := g.remap[global]; ok {
		return li
	}
	li := uint32(len(g.prim.Positions))
	g.prim.Positions = append(g.prim.Positions, verts[global])
	g.remap[global] = li
	return li
}

// DecodeOBJ parses OBJ geometry from r. Only v, f, o and g statements are interpreted.
// Polygons are fan-triangulated.
func DecodeOBJ(r io.Reader) (*RawAsset, error) {
	var (
		verts  []r3.Vec
		groups []*objGroup
		cur    = newObjGroup("")
	)
	flush := func() {
		if cur.started {
			groups = append(groups, cur)
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: obj line %d: vertex needs 3 coordinates", ErrAssetLoad, line)
			}
			var c [3]float64
			for i := range c {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: obj line %d: %v", ErrAssetLoad, line, err)
				}
				c[i] = v
			}
			verts = append(verts, r3.Vec{X: c[0], Y: c[1], Z: c[2]})
		case "o", "g":
			flush()
			cur = newObjGroup(strings.Join(fields[1:], " "))
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: obj line %d: face needs 3 vertices", ErrAssetLoad, line)
			}
			ids := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				gi, err := objIndex(ref, len(verts))
				if err != nil {
					return nil, fmt.Errorf("%w: obj line %d: %v", ErrAssetLoad, line, err)
				}
				ids = append(ids, cur.vertex(gi, verts))
			}
			for i := 1; i+1 < len(ids); i++ {
				cur.prim.Indices = append(cur.prim.Indices, ids[0], ids[i], ids[i+1])
			}
			cur.started = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	flush()
	if len(groups) == 0 {
		return nil, ErrEmptyAsset
	}
	raw := &RawAsset{Primitives: make([]RawPrimitive, len(groups))}
	for i, g := range groups {
		raw.Primitives[i] = g.prim
	}
	return raw, nil
}

// objIndex resolves a face vertex reference ("7", "7/1", "7//3", "-1") to a 0-based index.
func objIndex(ref string, n int) (int, error) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}
	v, err := strconv.Atoi(ref)
	if err != nil {
		return 0, err
	}
	switch {
	case v > 0:
		v--
	case v < 0:
		v += n
	default:
		return 0, errors.New("vertex index 0 is invalid")
	}
	if v < 0 || v >= n {
		return 0, fmt.Errorf("vertex index %s out of range", ref)
	}
	return v, nil
}
