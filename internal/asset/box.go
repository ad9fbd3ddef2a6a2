package asset

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an axis-aligned bounding box. The zero value is empty.
type Box struct {
	Min, Max r3.Vec
	set      bool
}

// Extend grows b to contain p.
func (b *Box) Extend(p r3.Vec) {
	if !b.set {
		b.Min, b.Max, b.set = p, p, true
		return
	}
	b.Min = r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
	b.Max = r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
}

// Union grows b to contain o.
func (b *Box) Union(o Box) {
	if !o.set {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Empty reports whether no point has been added.
func (b Box) Empty() bool {
	return !b.set
}

// Center returns the midpoint of the box (origin when empty).
func (b Box) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Size returns the box dimensions.
func (b Box) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// MaxDim returns the largest box dimension.
func (b Box) MaxDim() float64 {
	s := b.Size()
	return math.Max(s.X, math.Max(s.Y, s.Z))
}

// BoundsOf returns the bounding box of points.
func BoundsOf(points []r3.Vec) Box {
	var b Box
	for _, p := range points {
		b.Extend(p)
	}
	return b
}
