package viewport

import (
	"testing"

	"brain-atlas/internal/catalog"
	"brain-atlas/internal/pointer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestScaleBands(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	require.NoError(t, p.Validate())

	tests := []struct {
		name string
		w, h int
		want float64
	}{
		{"phone landscape", 700, 400, 0.6},
		{"tablet", 1024, 700, 0.8},
		{"laptop", 1440, 900, 1.0},
		{"desktop", 2560, 1440, 1.15},
		{"ultrawide", 3440, 1200, 1.15 * 0.9},
		{"tall phone", 400, 900, 0.6 * 0.75},
		{"zero", 0, 900, 1.15},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, p.Scale(tt.w, tt.h), 1e-12)
		})
	}
}

func TestScaleUnsortedBands(t *testing.T) {
	t.Parallel()

	p := Policy{Default: 2, Bands: []Band{{MaxMinDim: 1000, Scale: 1}, {MaxMinDim: 500, Scale: 0.5}}}
	assert.Equal(t, 0.5, p.Scale(400, 400))
	assert.Equal(t, 1.0, p.Scale(800, 800))
	assert.Equal(t, 2.0, p.Scale(1200, 1200))
	assert.Equal(t, 0.5, p.Bands[1].Scale, "policy bands are not reordered in place")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	bad := []Policy{
		{Default: 0},
		{Default: 1, Bands: []Band{{MaxMinDim: 0, Scale: 1}}},
		{Default: 1, WideAspect: 0.5},
		{Default: 1, TallFactor: -1},
	}
	for i, p := range bad {
		assert.Error(t, p.Validate(), "policy %d", i)
	}
}

// The display scale must not change which region a surface point resolves to.
func TestHoverIndependentOfDisplayScale(t *testing.T) {
	t.Parallel()

	e := pointer.New(catalog.Default(), 0.3)
	canonical := r3.Vec{X: 0.1, Y: 0.05, Z: -0.8}
	want, ok := e.Resolve(canonical)
	require.True(t, ok)

	p := DefaultPolicy()
	for _, size := range [][2]int{{400, 900}, {1024, 700}, {3440, 1200}} {
		s := p.Scale(size[0], size[1])
		hit := FromCanonical(canonical, s)
		got, ok := e.Resolve(ToCanonical(hit, s))
		require.True(t, ok)
		assert.Equal(t, want.ID, got.ID, "display scale %v", s)
	}
	assert.Equal(t, canonical, ToCanonical(canonical, 0))
}
