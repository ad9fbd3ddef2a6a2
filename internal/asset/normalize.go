package asset

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// Normalize flattens raw into canonical space. The raw asset is consumed: its position
// slices are reused by the returned primitives.
//
// characteristicSize <= 0 uses DefaultCharacteristicSize. A zero-size bounding box does
// not fail; it yields Scale 1 and Model.Degenerate. An asset without primitives or
// vertices returns ErrEmptyAsset.
func Normalize(raw *RawAsset, characteristicSize float64) (*Model, error) {
	if raw == nil || len(raw.Primitives) == 0 {
		return nil, ErrEmptyAsset
	}
	if characteristicSize <= 0 {
		characteristicSize = DefaultCharacteristicSize
	}

	prims := make([]*NormalizedPrimitive, len(raw.Primitives))
	var union Box
	for i := range raw.Primitives {
		rp := &raw.Primitives[i]
		bakeWorld(rp.Positions, rp.World)
		prims[i] = &NormalizedPrimitive{
			Index:      i,
			SourceName: rp.Name,
			Positions:  rp.Positions,
			Indices:    rp.Indices,
		}
		union.Union(BoundsOf(rp.Positions))
	}
	if union.Empty() {
		return nil, ErrEmptyAsset
	}

	m := &Model{Source: raw.Source, Primitives: prims}
	m.Transform.Translation = r3.Scale(-1, union.Center())
	m.Transform.Scale = 1
	if d := union.MaxDim(); d > 0 {
		m.Transform.Scale = characteristicSize / d
	} else {
		m.Degenerate = true
	}

	for _, p := range prims {
		for j, v := range p.Positions {
			p.Positions[j] = m.Transform.Apply(v)
		}
		b := BoundsOf(p.Positions)
		if b.Empty() {
			// No vertices: place the primitive where its (now canonical) origin would be.
			p.Center = m.Transform.Apply(r3.Vec{})
		} else {
			p.Center = b.Center()
		}
		m.Bounds.Union(b)
	}
	return m, nil
}

// bakeWorld applies world to every position in place. A zero matrix is treated as identity
// so hand-built raw assets need not set World.
func bakeWorld(positions []r3.Vec, world mgl64.Mat4) {
	if world == (mgl64.Mat4{}) || world == mgl64.Ident4() {
		return
	}
	for i, p := range positions {
		w := world.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
		if w[3] != 0 && w[3] != 1 {
			w = w.Mul(1 / w[3])
		}
		positions[i] = r3.Vec{X: w[0], Y: w[1], Z: w[2]}
	}
}
