package scene

import (
	"brain-atlas/internal/catalog"
	"brain-atlas/internal/pick"
	"brain-atlas/internal/pointer"
	"brain-atlas/internal/primitives"
	"brain-atlas/internal/viewport"

	"gonum.org/v1/gonum/spatial/r3"
)

// canonicalRay maps a display-space ray into canonical space. The display transform is a
// uniform scale about the origin, so dividing origin and direction by it keeps the ray on
// the same surface points.
func canonicalRay(origin, dir [3]float32, displayScale float64) pick.Ray {
	o := r3.Vec{X: float64(origin[0]), Y: float64(origin[1]), Z: float64(origin[2])}
	d := r3.Vec{X: float64(dir[0]), Y: float64(dir[1]), Z: float64(dir[2])}
	return pick.Ray{Origin: viewport.ToCanonical(o, displayScale), Dir: viewport.ToCanonical(d, displayScale)}
}

// surfacePoint casts r against w and returns the canonical hit point, nil on a miss.
func surfacePoint(w *pick.World, r pick.Ray) *r3.Vec {
	if w == nil {
		return nil
	}
	hit, ok := w.Cast(r)
	if !ok {
		return nil
	}
	p := hit.Point
	return &p
}

// highlighter marks primitives whose load-time region is the hovered or selected region,
// or a sub-part of it.
func highlighter(cat *catalog.Catalog, st pointer.State) primitives.Highlight {
	match := func(region, target string) bool {
		if target == "" || region == "" {
			return false
		}
		return region == target || cat.TopLevel(region) == target
	}
	return func(region string) (bool, bool) {
		return match(region, st.Hovered), match(region, st.Selected)
	}
}
