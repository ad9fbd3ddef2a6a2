package asset

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func assertVecNear(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
	assert.InDelta(t, want.Z, got.Z, tol, "z")
}

func cube(min, max r3.Vec) []r3.Vec {
	return []r3.Vec{
		min, {X: max.X, Y: min.Y, Z: min.Z}, {X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z}, max,
	}
}

func TestNormalizeCentersAndScales(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size float64
		raw  *RawAsset
	}{
		{
			name: "single offset box",
			size: 2,
			raw: &RawAsset{Primitives: []RawPrimitive{
				{Name: "a", Positions: cube(r3.Vec{X: 10, Y: 5, Z: -3}, r3.Vec{X: 14, Y: 7, Z: -2})},
			}},
		},
		{
			name: "two primitives with world transforms",
			size: 3,
			raw: &RawAsset{Primitives: []RawPrimitive{
				{Name: "left", Positions: cube(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}), World: mgl64.Translate3D(-5, 0, 0)},
				{Name: "right", Positions: cube(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}), World: mgl64.Scale3D(2, 2, 2)},
			}},
		},
		{
			name: "default size",
			size: 0,
			raw: &RawAsset{Primitives: []RawPrimitive{
				{Positions: cube(r3.Vec{X: -100, Y: -1, Z: -1}, r3.Vec{X: 300, Y: 1, Z: 1})},
			}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := Normalize(tt.raw, tt.size)
			require.NoError(t, err)

			want := tt.size
			if want <= 0 {
				want = DefaultCharacteristicSize
			}
			var all Box
			for _, p := range m.Primitives {
				all.Union(BoundsOf(p.Positions))
			}
			assertVecNear(t, r3.Vec{}, all.Center())
			assert.InDelta(t, want, all.MaxDim(), tol)
			assert.InDelta(t, want, m.Bounds.MaxDim(), tol)
			assert.False(t, m.Degenerate)
		})
	}
}

func TestNormalizeBakesWorldTransform(t *testing.T) {
	t.Parallel()

	raw := &RawAsset{Primitives: []RawPrimitive{
		{Name: "moved", Positions: []r3.Vec{{X: 0}, {X: 1}}, World: mgl64.Translate3D(10, 0, 0)},
		{Name: "still", Positions: []r3.Vec{{X: 0}, {X: 1}}},
	}}
	m, err := Normalize(raw, 11)
	require.NoError(t, err)

	// Union spans x in [0, 11]; center 5.5, scale 1.
	assert.InDelta(t, 1.0, m.Transform.Scale, tol)
	assertVecNear(t, r3.Vec{X: -5.5}, m.Transform.Translation)
	assertVecNear(t, r3.Vec{X: 5}, m.Primitives[0].Center)
	assertVecNear(t, r3.Vec{X: -5}, m.Primitives[1].Center)
	assert.Equal(t, "moved", m.Primitives[0].SourceName)
	assert.Equal(t, 1, m.Primitives[1].Index)
}

func TestNormalizeDegenerate(t *testing.T) {
	t.Parallel()

	p := r3.Vec{X: 3, Y: 3, Z: 3}
	raw := &RawAsset{Primitives: []RawPrimitive{
		{Positions: []r3.Vec{p, p, p}},
		{Positions: []r3.Vec{p}},
	}}
	m, err := Normalize(raw, 2)
	require.NoError(t, err)
	assert.True(t, m.Degenerate)
	assert.Equal(t, 1.0, m.Transform.Scale)
	for _, prim := range m.Primitives {
		assertVecNear(t, r3.Vec{}, prim.Center)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	t.Parallel()

	_, err := Normalize(nil, 2)
	assert.ErrorIs(t, err, ErrEmptyAsset)
	_, err = Normalize(&RawAsset{}, 2)
	assert.ErrorIs(t, err, ErrAssetLoad)
	_, err = Normalize(&RawAsset{Primitives: []RawPrimitive{{Name: "hollow"}}}, 2)
	assert.ErrorIs(t, err, ErrEmptyAsset)
}

func TestNormalizeKeepsVertexlessPrimitive(t *testing.T) {
	t.Parallel()

	raw := &RawAsset{Primitives: []RawPrimitive{
		{Positions: cube(r3.Vec{}, r3.Vec{X: 2, Y: 2, Z: 2})},
		{Name: "empty"},
	}}
	m, err := Normalize(raw, 2)
	require.NoError(t, err)
	require.Len(t, m.Primitives, 2)
	assertVecNear(t, r3.Vec{X: -1, Y: -1, Z: -1}, m.Primitives[1].Center)
}

func TestCanonicalTransformInverse(t *testing.T) {
	t.Parallel()

	ct := CanonicalTransform{Translation: r3.Vec{X: 1, Y: -2, Z: 3}, Scale: 0.25}
	p := r3.Vec{X: 7, Y: 8, Z: 9}
	assertVecNear(t, p, ct.Inverse(ct.Apply(p)))
}

func TestAssignOnce(t *testing.T) {
	t.Parallel()

	p := &NormalizedPrimitive{Index: 4}
	assert.Empty(t, p.RegionID())
	require.NoError(t, p.Assign("limbic"))
	assert.ErrorIs(t, p.Assign("visual"), ErrAlreadyAssigned)
	assert.Equal(t, "limbic", p.RegionID())
}

func TestTriangles(t *testing.T) {
	t.Parallel()

	a, b, c, d := r3.Vec{X: 0}, r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}
	p := &NormalizedPrimitive{Positions: []r3.Vec{a, b, c, d}, Indices: []uint32{0, 1, 2, 0, 2, 9, 3}}
	assert.Equal(t, []r3.Vec{a, b, c}, p.Triangles())

	seq := &NormalizedPrimitive{Positions: []r3.Vec{a, b, c, d}}
	assert.Equal(t, []r3.Vec{a, b, c}, seq.Triangles())
}
