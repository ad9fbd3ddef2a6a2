package pick

import (
	"testing"

	"brain-atlas/internal/asset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// quad returns a unit square in the plane z, centered on (cx, cy), as two triangles.
func quad(index int, cx, cy, z float64) *asset.NormalizedPrimitive {
	return &asset.NormalizedPrimitive{
		Index: index,
		Positions: []r3.Vec{
			{X: cx - 0.5, Y: cy - 0.5, Z: z},
			{X: cx + 0.5, Y: cy - 0.5, Z: z},
			{X: cx + 0.5, Y: cy + 0.5, Z: z},
			{X: cx - 0.5, Y: cy + 0.5, Z: z},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestCastNearest(t *testing.T) {
	t.Parallel()

	m := &asset.Model{Primitives: []*asset.NormalizedPrimitive{
		quad(0, 0, 0, -1),
		quad(1, 0, 0, 0.5),
		quad(2, 3, 0, 0.9),
	}}
	w := NewWorld(m)
	require.Len(t, w.Bodies, 3)

	hit, ok := w.Cast(Ray{Origin: r3.Vec{Z: 5}, Dir: r3.Vec{Z: -1}})
	require.True(t, ok)
	assert.Equal(t, 1, hit.Primitive)
	assert.InDelta(t, 4.5, hit.T, 1e-12)
	assert.InDelta(t, 0.5, hit.Point.Z, 1e-12)

	// From behind: the far quad is now nearest.
	hit, ok = w.Cast(Ray{Origin: r3.Vec{Z: -5}, Dir: r3.Vec{Z: 1}})
	require.True(t, ok)
	assert.Equal(t, 0, hit.Primitive)
}

func TestCastMiss(t *testing.T) {
	t.Parallel()

	w := NewWorld(&asset.Model{Primitives: []*asset.NormalizedPrimitive{quad(0, 0, 0, 0)}})
	tests := []struct {
		name string
		ray  Ray
	}{
		{"beside", Ray{Origin: r3.Vec{X: 2, Z: 5}, Dir: r3.Vec{Z: -1}}},
		{"away", Ray{Origin: r3.Vec{Z: 5}, Dir: r3.Vec{Z: 1}}},
		{"parallel", Ray{Origin: r3.Vec{X: -5}, Dir: r3.Vec{X: 1}}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, ok := w.Cast(tt.ray)
			assert.False(t, ok)
		})
	}
}

func TestCastOblique(t *testing.T) {
	t.Parallel()

	w := NewWorld(&asset.Model{Primitives: []*asset.NormalizedPrimitive{quad(7, 0, 0, 0)}})
	hit, ok := w.Cast(Ray{Origin: r3.Vec{X: -2, Y: 0.25, Z: 2}, Dir: r3.Vec{X: 1, Z: -1}})
	require.True(t, ok)
	assert.Equal(t, 7, hit.Primitive)
	assert.InDelta(t, 0, hit.Point.X, 1e-12)
	assert.InDelta(t, 0.25, hit.Point.Y, 1e-12)
}

func TestNewWorldSkipsEmpty(t *testing.T) {
	t.Parallel()

	m := &asset.Model{Primitives: []*asset.NormalizedPrimitive{
		{Index: 0},
		quad(1, 0, 0, 0),
	}}
	w := NewWorld(m)
	require.Len(t, w.Bodies, 1)
	assert.Equal(t, 1, w.Bodies[0].Index)
	assert.Empty(t, NewWorld(nil).Bodies)
}

func TestRayBoxInside(t *testing.T) {
	t.Parallel()

	b := asset.BoundsOf([]r3.Vec{{X: -1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: 1}})
	near, ok := rayBox(Ray{Dir: r3.Vec{Y: 1}}, b)
	require.True(t, ok)
	assert.Zero(t, near)

	_, ok = rayBox(Ray{Dir: r3.Vec{Y: 1}}, asset.Box{})
	assert.False(t, ok)
}
