package overlay

import (
	"fmt"

	"brain-atlas/internal/catalog"
	"brain-atlas/internal/loader"

	"github.com/chewxy/math32"
)

// View is everything the overlay needs for one frame.
type View struct {
	Status   loader.Status
	Source   string
	Err      error
	Hovered  *catalog.Region
	Selected *catalog.Region
	// Mouse is the cursor position in screen pixels.
	Mouse [2]float32
}

// bannerText is the load status line, empty once a model is ready.
func bannerText(v View) string {
	switch v.Status {
	case loader.StatusIdle:
		return "No asset loaded"
	case loader.StatusLoading:
		return fmt.Sprintf("Loading %s ...", v.Source)
	case loader.StatusFailed:
		if v.Err != nil {
			return fmt.Sprintf("Failed to load %s: %v", v.Source, v.Err)
		}
		return fmt.Sprintf("Failed to load %s", v.Source)
	}
	return ""
}

// tooltipLines returns the hovered region's name, its parent for sub-parts, and its
// description when present.
func tooltipLines(r *catalog.Region, cat *catalog.Catalog) []string {
	if r == nil {
		return nil
	}
	lines := []string{r.Name}
	if r.IsSubPart() && cat != nil {
		if p, ok := cat.Lookup(r.Parent); ok {
			lines = append(lines, "part of "+p.Name)
		}
	}
	if r.Description != "" {
		lines = append(lines, r.Description)
	}
	return lines
}

func selectionText(r *catalog.Region) string {
	if r == nil {
		return "Click a region to select it"
	}
	return "Selected: " + r.Name
}

// placeTooltip positions a box of the given size next to the mouse, flipped to the
// other side of the cursor when it would leave the screen, and clamped to the screen.
func placeTooltip(mouse, size, screen [2]float32) [2]float32 {
	var out [2]float32
	for i := 0; i < 2; i++ {
		p := mouse[i] + tooltipOffset
		if p+size[i] > screen[i] {
			p = mouse[i] - tooltipOffset - size[i]
		}
		p = math32.Min(p, screen[i]-size[i])
		out[i] = math32.Floor(math32.Max(p, 0))
	}
	return out
}
