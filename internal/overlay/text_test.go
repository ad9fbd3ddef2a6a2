package overlay

import (
	"errors"
	"testing"

	"brain-atlas/internal/catalog"
	"brain-atlas/internal/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBannerText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		view View
		want string
	}{
		{"idle", View{Status: loader.StatusIdle}, "No asset loaded"},
		{"loading", View{Status: loader.StatusLoading, Source: "brain.glb"}, "Loading brain.glb ..."},
		{"failed", View{Status: loader.StatusFailed, Source: "x.obj", Err: errors.New("boom")}, "Failed to load x.obj: boom"},
		{"ready", View{Status: loader.StatusReady}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bannerText(tt.view))
		})
	}
}

func TestTooltipLines(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()
	assert.Nil(t, tooltipLines(nil, cat))

	v1, ok := cat.Lookup("v1")
	require.True(t, ok)
	lines := tooltipLines(&v1, cat)
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, v1.Name, lines[0])
	assert.Equal(t, "part of Visual Network", lines[1])

	plain := catalog.Region{ID: "x", Name: "X"}
	assert.Equal(t, []string{"X"}, tooltipLines(&plain, cat))
}

func TestSelectionText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Click a region to select it", selectionText(nil))
	assert.Equal(t, "Selected: Limbic Network", selectionText(&catalog.Region{Name: "Limbic Network"}))
}

func TestPlaceTooltip(t *testing.T) {
	t.Parallel()

	screen := [2]float32{800, 600}
	size := [2]float32{200, 60}
	tests := []struct {
		name  string
		mouse [2]float32
		want  [2]float32
	}{
		{"below right", [2]float32{100, 100}, [2]float32{116, 116}},
		{"flip left", [2]float32{700, 100}, [2]float32{484, 116}},
		{"flip up", [2]float32{100, 580}, [2]float32{116, 504}},
		{"near origin", [2]float32{5, 5}, [2]float32{21, 21}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, placeTooltip(tt.mouse, size, screen))
		})
	}

	huge := placeTooltip([2]float32{10, 10}, [2]float32{900, 700}, screen)
	assert.Equal(t, [2]float32{0, 0}, huge)
}
