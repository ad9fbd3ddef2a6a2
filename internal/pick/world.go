// Package pick casts rays against a normalized model in canonical space.
package pick

import (
	"math"

	"brain-atlas/internal/asset"

	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon rejects rays parallel to a triangle and self-hits at the ray origin.
const epsilon = 1e-9

// Ray is a half-line in canonical space. Dir need not be normalized.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Dir))
}

// Hit is the nearest surface intersection.
type Hit struct {
	Primitive int // NormalizedPrimitive.Index
	Point     r3.Vec
	T         float64 // ray parameter
}

// Body is one primitive's triangles plus its bounding box for the broad phase.
type Body struct {
	Index int
	Box   asset.Box
	Tris  []r3.Vec // three vertices per triangle
}

// World holds the bodies of one model. It is rebuilt when a new model loads.
type World struct {
	Bodies []Body
}

// NewWorld builds a body per primitive of m. Primitives without triangles are skipped.
func NewWorld(m *asset.Model) *World {
	w := &World{}
	if m == nil {
		return w
	}
	for _, p := range m.Primitives {
		tris := p.Triangles()
		if len(tris) == 0 {
			continue
		}
		w.Bodies = append(w.Bodies, Body{Index: p.Index, Box: asset.BoundsOf(tris), Tris: tris})
	}
	return w
}

// Cast returns the nearest hit along r. Bodies whose box the ray misses, or whose box
// starts beyond the best hit so far, are not tested triangle by triangle.
func (w *World) Cast(r Ray) (Hit, bool) {
	best := Hit{T: math.Inf(1)}
	found := false
	for i := range w.Bodies {
		b := &w.Bodies[i]
		near, ok := rayBox(r, b.Box)
		if !ok || near > best.T {
			continue
		}
		for j := 0; j+2 < len(b.Tris); j += 3 {
			t, ok := rayTriangle(r, b.Tris[j], b.Tris[j+1], b.Tris[j+2])
			if ok && t < best.T {
				best = Hit{Primitive: b.Index, T: t}
				found = true
			}
		}
	}
	if !found {
		return Hit{}, false
	}
	best.Point = r.At(best.T)
	return best, true
}

// rayBox is the slab test. It returns the entry parameter (clamped to 0 when the origin
// is inside the box).
func rayBox(r Ray, b asset.Box) (float64, bool) {
	if b.Empty() {
		return 0, false
	}
	tmin, tmax := 0.0, math.Inf(1)
	o := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float64{r.Dir.X, r.Dir.Y, r.Dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	for axis := 0; axis < 3; axis++ {
		if math.Abs(d[axis]) < epsilon {
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[axis]
		t0, t1 := (lo[axis]-o[axis])*inv, (hi[axis]-o[axis])*inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math.Max(tmin, t0)
		tmax = math.Min(tmax, t1)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// rayTriangle is Möller-Trumbore, double sided.
func rayTriangle(r Ray, a, b, c r3.Vec) (float64, bool) {
	e1 := r3.Sub(b, a)
	e2 := r3.Sub(c, a)
	p := r3.Cross(r.Dir, e2)
	det := r3.Dot(e1, p)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	inv := 1 / det
	s := r3.Sub(r.Origin, a)
	u := r3.Dot(s, p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := r3.Cross(s, e1)
	v := r3.Dot(r.Dir, q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := r3.Dot(e2, q) * inv
	if t <= epsilon {
		return 0, false
	}
	return t, true
}
