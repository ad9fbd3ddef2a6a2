// Package resolver assigns every normalized primitive a best-guess region at load time.
//
// Three tiers are tried in order: the primitive's source name, the nearest catalog anchor
// within MatchThreshold, and finally catalog[index mod len(catalog)]. The fallback has no
// anatomical meaning; it only guarantees every primitive is colored and labeled.
package resolver

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"brain-atlas/internal/asset"
	"brain-atlas/internal/catalog"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultMatchThreshold covers most of a canonical volume of characteristic size 2.
const DefaultMatchThreshold = 1.5

// Tier records which strategy produced an assignment.
type Tier int

const (
	TierName Tier = iota
	TierSpatial
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierName:
		return "name"
	case TierSpatial:
		return "spatial"
	case TierFallback:
		return "fallback"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Options tune the resolver.
type Options struct {
	// MatchThreshold is the exclusive upper bound on anchor distance for the spatial tier.
	// Zero uses DefaultMatchThreshold.
	MatchThreshold float64
	// Logger receives one warning per fallback assignment. Nil disables logging.
	Logger *zap.Logger
}

func (o Options) threshold() float64 {
	if o.MatchThreshold <= 0 {
		return DefaultMatchThreshold
	}
	return o.MatchThreshold
}

// Assignment is the region chosen for one primitive.
type Assignment struct {
	RegionID string
	Tier     Tier
	Distance float64 // anchor distance; NaN for the name tier
}

// Resolve computes one assignment per primitive, in primitive order. It does not modify
// the primitives and is deterministic for identical inputs.
func Resolve(prims []*asset.NormalizedPrimitive, cat *catalog.Catalog, opts Options) []Assignment {
	regions := cat.Regions()
	keys := nameKeys(regions)
	out := make([]Assignment, len(prims))
	for i, p := range prims {
		if r, ok := matchName(p.SourceName, regions, keys); ok {
			out[i] = Assignment{RegionID: r.ID, Tier: TierName, Distance: math.NaN()}
			continue
		}
		if r, d, ok := matchSpatial(p.Center, regions, opts.threshold()); ok {
			out[i] = Assignment{RegionID: r.ID, Tier: TierSpatial, Distance: d}
			continue
		}
		idx := p.Index
		if idx < 0 {
			idx = i
		}
		r := regions[idx%len(regions)]
		out[i] = Assignment{RegionID: r.ID, Tier: TierFallback, Distance: r3.Norm(r3.Sub(p.Center, r.Anchor))}
	}
	return out
}

// ResolveAll runs Resolve and writes each primitive's region once. Fallback assignments
// are logged for asset-quality diagnostics but are never errors; the only error is a
// primitive that was already assigned.
func ResolveAll(prims []*asset.NormalizedPrimitive, cat *catalog.Catalog, opts Options) ([]Assignment, error) {
	out := Resolve(prims, cat, opts)
	for i, p := range prims {
		a := out[i]
		if err := p.Assign(a.RegionID); err != nil {
			return nil, err
		}
		if a.Tier == TierFallback && opts.Logger != nil {
			opts.Logger.Warn("unmatched primitive",
				zap.Int("primitive", p.Index),
				zap.String("name", p.SourceName),
				zap.String("region", a.RegionID),
				zap.Float64("nearest_anchor", a.Distance),
			)
		}
	}
	return out, nil
}

// regionKeys are the lower-cased strings a source name is searched for.
type regionKeys struct {
	id, compact, firstWord string
}

func nameKeys(regions []catalog.Region) []regionKeys {
	keys := make([]regionKeys, len(regions))
	for i, r := range regions {
		name := strings.ToLower(r.Name)
		k := regionKeys{
			id:      strings.ToLower(r.ID),
			compact: strings.Map(dropSpace, name),
		}
		if f := strings.Fields(name); len(f) > 0 {
			k.firstWord = f[0]
		}
		keys[i] = k
	}
	return keys
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}

func matchName(source string, regions []catalog.Region, keys []regionKeys) (catalog.Region, bool) {
	name := strings.ToLower(source)
	if strings.TrimSpace(name) == "" {
		return catalog.Region{}, false
	}
	for i, k := range keys {
		for _, key := range [...]string{k.id, k.compact, k.firstWord} {
			if key != "" && strings.Contains(name, key) {
				return regions[i], true
			}
		}
	}
	return catalog.Region{}, false
}

func matchSpatial(center r3.Vec, regions []catalog.Region, threshold float64) (catalog.Region, float64, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, r := range regions {
		if d := r3.Norm(r3.Sub(center, r.Anchor)); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist >= threshold {
		return catalog.Region{}, 0, false
	}
	return regions[best], bestDist, true
}

// Summary counts assignments per tier.
type Summary struct {
	Name, Spatial, Fallback int
}

// Summarize tallies assignments by tier.
func Summarize(as []Assignment) Summary {
	var s Summary
	for _, a := range as {
		switch a.Tier {
		case TierName:
			s.Name++
		case TierSpatial:
			s.Spatial++
		case TierFallback:
			s.Fallback++
		}
	}
	return s
}
