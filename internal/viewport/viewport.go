// Package viewport derives the presentation-only display scale of the model group.
//
// The display scale is applied to the rendered model transform only. Hits coming back
// from the renderer are divided by it (ToCanonical) before any distance comparison, so
// hover and match thresholds never drift with window size.
package viewport

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Band maps viewports whose smaller side is below MaxMinDim pixels to Scale.
type Band struct {
	MaxMinDim int     `json:"max_min_dim"`
	Scale     float64 `json:"scale"`
}

// Policy is the responsive scale configuration.
type Policy struct {
	// Bands are checked in ascending MaxMinDim order; the first band whose MaxMinDim is
	// greater than min(width, height) wins.
	Bands []Band `json:"bands"`
	// Default is used when no band matches.
	Default float64 `json:"default"`
	// WideAspect and TallAspect are the width/height and height/width ratios at which
	// WideFactor and TallFactor multiply the banded scale.
	WideAspect float64 `json:"wide_aspect"`
	WideFactor float64 `json:"wide_factor"`
	TallAspect float64 `json:"tall_aspect"`
	TallFactor float64 `json:"tall_factor"`
}

// DefaultPolicy returns the stock breakpoints: phones, tablets, laptops, large displays.
func DefaultPolicy() Policy {
	return Policy{
		Bands: []Band{
			{MaxMinDim: 480, Scale: 0.6},
			{MaxMinDim: 768, Scale: 0.8},
			{MaxMinDim: 1080, Scale: 1.0},
		},
		Default:    1.15,
		WideAspect: 2.2,
		WideFactor: 0.9,
		TallAspect: 1.6,
		TallFactor: 0.75,
	}
}

// Validate reports configuration errors.
func (p Policy) Validate() error {
	if p.Default <= 0 {
		return fmt.Errorf("viewport: default scale must be positive, got %v", p.Default)
	}
	for i, b := range p.Bands {
		if b.MaxMinDim <= 0 || b.Scale <= 0 {
			return fmt.Errorf("viewport: band %d must have positive max_min_dim and scale", i)
		}
	}
	if (p.WideAspect < 1 && p.WideAspect != 0) || (p.TallAspect < 1 && p.TallAspect != 0) {
		return errors.New("viewport: aspect thresholds must be >= 1 or 0 to disable")
	}
	if p.WideFactor < 0 || p.TallFactor < 0 {
		return errors.New("viewport: aspect factors must not be negative")
	}
	return nil
}

// Scale returns the display scale for a viewport of the given pixel size.
// Non-positive sizes return Default.
func (p Policy) Scale(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return p.Default
	}
	bands := make([]Band, len(p.Bands))
	copy(bands, p.Bands)
	sort.SliceStable(bands, func(i, j int) bool { return bands[i].MaxMinDim < bands[j].MaxMinDim })

	minDim := min(width, height)
	s := p.Default
	for _, b := range bands {
		if minDim < b.MaxMinDim {
			s = b.Scale
			break
		}
	}

	w, h := float64(width), float64(height)
	switch {
	case p.WideAspect > 0 && p.WideFactor > 0 && w/h >= p.WideAspect:
		s *= p.WideFactor
	case p.TallAspect > 0 && p.TallFactor > 0 && h/w >= p.TallAspect:
		s *= p.TallFactor
	}
	return s
}

// ToCanonical removes the display scale from a rendered world-space point.
func ToCanonical(world r3.Vec, displayScale float64) r3.Vec {
	if displayScale == 0 {
		return world
	}
	return r3.Scale(1/displayScale, world)
}

// FromCanonical applies the display scale to a canonical-space point.
func FromCanonical(p r3.Vec, displayScale float64) r3.Vec {
	return r3.Scale(displayScale, p)
}
