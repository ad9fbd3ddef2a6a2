package primitives

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// meshData flattens a triangle list into raylib vertex and flat-normal arrays, three
// floats per vertex. Trailing vertices that do not form a triangle are dropped.
func meshData(tris []r3.Vec) (vertices, normals []float32) {
	n := len(tris) / 3 * 3
	vertices = make([]float32, 0, n*3)
	normals = make([]float32, 0, n*3)
	for i := 0; i < n; i += 3 {
		a, b, c := tris[i], tris[i+1], tris[i+2]
		nrm := faceNormal(a, b, c)
		for _, v := range [3]r3.Vec{a, b, c} {
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nrm[0], nrm[1], nrm[2])
		}
	}
	return vertices, normals
}

// faceNormal is the unit normal of a counter-clockwise triangle; degenerate faces get +Y
// so they are still lit.
func faceNormal(a, b, c r3.Vec) [3]float32 {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	x, y, z := float32(n.X), float32(n.Y), float32(n.Z)
	l := math32.Sqrt(x*x + y*y + z*z)
	if l == 0 || math32.IsNaN(l) {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{x / l, y / l, z / l}
}

// shade mixes color toward white by amount in [0,1]. Alpha is kept.
func shade(color [4]uint8, amount float32) [4]uint8 {
	amount = math32.Max(0, math32.Min(1, amount))
	out := color
	for i := 0; i < 3; i++ {
		c := float32(color[i])
		out[i] = uint8(c + (255-c)*amount + 0.5)
	}
	return out
}
