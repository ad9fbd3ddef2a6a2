// Package pointer resolves live surface-intersection points to catalog regions.
//
// Resolution uses catalog anchors directly and ignores per-primitive assignments, so hover
// stays locally accurate even where static coloring is coarse. It is a linear scan over
// the catalog; a spatial index can replace it behind Resolve if the catalog grows large.
package pointer

import (
	"math"

	"brain-atlas/internal/catalog"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultHoverThreshold is the inclusive anchor distance, in canonical units, for a hover hit.
const DefaultHoverThreshold = 0.45

// Engine resolves canonical-space points against a catalog.
type Engine struct {
	cat       *catalog.Catalog
	threshold float64
}

// New returns an engine. threshold <= 0 uses DefaultHoverThreshold.
func New(cat *catalog.Catalog, threshold float64) *Engine {
	if threshold <= 0 {
		threshold = DefaultHoverThreshold
	}
	return &Engine{cat: cat, threshold: threshold}
}

// Threshold returns the hover threshold in canonical units.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Catalog returns the catalog the engine resolves against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Resolve returns the region whose anchor is nearest to p, if that distance is within the
// hover threshold. Equal distances resolve to the region earlier in catalog order.
func (e *Engine) Resolve(p r3.Vec) (catalog.Region, bool) {
	best, bestDist := -1, math.Inf(1)
	for i := 0; i < e.cat.Len(); i++ {
		if d := r3.Norm(r3.Sub(p, e.cat.At(i).Anchor)); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist > e.threshold {
		return catalog.Region{}, false
	}
	return e.cat.At(best), true
}
