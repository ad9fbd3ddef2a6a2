// Package asset loads mesh assets and normalizes them into canonical space.
//
// Loading flattens the node hierarchy into RawPrimitives carrying their world transform.
// Normalize bakes those transforms into the vertices, centers the union bounding box on
// the origin and scales it so its longest side equals the characteristic size.
package asset

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultCharacteristicSize is the longest side of a normalized model in canonical units.
const DefaultCharacteristicSize = 2.0

var (
	// ErrAssetLoad marks a load attempt that must not proceed to rendering:
	// missing, corrupt, unsupported or empty assets.
	ErrAssetLoad = errors.New("asset load failed")
	// ErrEmptyAsset is an ErrAssetLoad for assets with no primitives or no vertices.
	ErrEmptyAsset = fmt.Errorf("%w: asset has no geometry", ErrAssetLoad)
	// ErrAlreadyAssigned is returned when a primitive's region is written twice.
	ErrAlreadyAssigned = errors.New("primitive region already assigned")
)

// RawPrimitive is a mesh fragment as loaded, before normalization. Positions are in the
// primitive's local space; World maps them into asset space.
type RawPrimitive struct {
	Name      string
	Positions []r3.Vec
	Indices   []uint32 // triangle list; nil means sequential
	World     mgl64.Mat4
}

// RawAsset is the flattened output of a loader. It is consumed by Normalize.
type RawAsset struct {
	Source     string
	Primitives []RawPrimitive
}

// CanonicalTransform maps asset space to canonical space: p' = (p + Translation) * Scale.
type CanonicalTransform struct {
	Translation r3.Vec
	Scale       float64
}

// Apply maps an asset-space point into canonical space.
func (t CanonicalTransform) Apply(p r3.Vec) r3.Vec {
	return r3.Scale(t.Scale, r3.Add(p, t.Translation))
}

// Inverse maps a canonical-space point back to asset space.
func (t CanonicalTransform) Inverse(p r3.Vec) r3.Vec {
	return r3.Sub(r3.Scale(1/t.Scale, p), t.Translation)
}

// NormalizedPrimitive is a primitive in canonical space with an identity local transform.
// Its region id is written once by the resolver and read-only afterwards.
type NormalizedPrimitive struct {
	Index      int
	SourceName string
	Positions  []r3.Vec
	Indices    []uint32
	Center     r3.Vec // bounding-box center, canonical space

	regionID string
}

// Assign sets the primitive's region id. A second call returns ErrAlreadyAssigned.
func (p *NormalizedPrimitive) Assign(regionID string) error {
	if p.regionID != "" {
		return fmt.Errorf("%w: primitive %d is %q", ErrAlreadyAssigned, p.Index, p.regionID)
	}
	p.regionID = regionID
	return nil
}

// RegionID returns the assigned region id, or "" before assignment.
func (p *NormalizedPrimitive) RegionID() string {
	return p.regionID
}

// Triangles returns the triangle list as vertex positions, three per triangle.
// Trailing indices that do not form a full triangle, and out-of-range indices, are skipped.
func (p *NormalizedPrimitive) Triangles() []r3.Vec {
	if p.Indices == nil {
		n := len(p.Positions) / 3 * 3
		out := make([]r3.Vec, n)
		copy(out, p.Positions[:n])
		return out
	}
	out := make([]r3.Vec, 0, len(p.Indices)/3*3)
	for i := 0; i+2 < len(p.Indices); i += 3 {
		a, b, c := p.Indices[i], p.Indices[i+1], p.Indices[i+2]
		if int(a) >= len(p.Positions) || int(b) >= len(p.Positions) || int(c) >= len(p.Positions) {
			continue
		}
		out = append(out, p.Positions[a], p.Positions[b], p.Positions[c])
	}
	return out
}

// Model is one loaded, normalized asset. It is replaced wholesale when another asset loads.
type Model struct {
	Source     string
	Primitives []*NormalizedPrimitive
	Transform  CanonicalTransform
	Bounds     Box  // canonical space
	Degenerate bool // zero-size bounding box; Transform.Scale fell back to 1
}
