package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog is returned when a catalog fails shape validation.
var ErrInvalidCatalog = errors.New("invalid region catalog")

// Catalog is an ordered, read-only table of regions. Iteration order is the order the
// regions were given to New; every tie-break in resolution depends on it.
type Catalog struct {
	regions []Region
	index   map[string]int
}

// New validates regions once and returns a catalog holding a private copy.
func New(regions []Region) (*Catalog, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("%w: no regions", ErrInvalidCatalog)
	}
	c := &Catalog{
		regions: make([]Region, len(regions)),
		index:   make(map[string]int, len(regions)),
	}
	copy(c.regions, regions)
	for i, r := range c.regions {
		if strings.TrimSpace(r.ID) == "" {
			return nil, fmt.Errorf("%w: region %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.index[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, r.ID)
		}
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%w: region %q has no name", ErrInvalidCatalog, r.ID)
		}
		if r.Color != "" {
			if _, ok := ParseHexColor(r.Color); !ok {
				return nil, fmt.Errorf("%w: region %q color %q", ErrInvalidCatalog, r.ID, r.Color)
			}
		}
		c.index[r.ID] = i
	}
	for _, r := range c.regions {
		switch r.Kind {
		case KindRegion:
			if r.Parent != "" {
				return nil, fmt.Errorf("%w: top-level region %q has parent %q", ErrInvalidCatalog, r.ID, r.Parent)
			}
		case KindSubPart:
			pi, ok := c.index[r.Parent]
			if !ok {
				return nil, fmt.Errorf("%w: sub-part %q has unknown parent %q", ErrInvalidCatalog, r.ID, r.Parent)
			}
			if c.regions[pi].Kind != KindRegion {
				return nil, fmt.Errorf("%w: sub-part %q parent %q is not top-level", ErrInvalidCatalog, r.ID, r.Parent)
			}
		default:
			return nil, fmt.Errorf("%w: region %q has %s", ErrInvalidCatalog, r.ID, r.Kind)
		}
	}
	return c, nil
}

// MustNew is New for static tables; it panics on invalid input.
func MustNew(regions []Region) *Catalog {
	c, err := New(regions)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of regions.
func (c *Catalog) Len() int {
	return len(c.regions)
}

// At returns the i-th region in catalog order.
func (c *Catalog) At(i int) Region {
	return c.regions[i]
}

// Regions returns a copy of all regions in catalog order.
func (c *Catalog) Regions() []Region {
	out := make([]Region, len(c.regions))
	copy(out, c.regions)
	return out
}

// Lookup returns the region with the given id.
func (c *Catalog) Lookup(id string) (Region, bool) {
	i, ok := c.index[id]
	if !ok {
		return Region{}, false
	}
	return c.regions[i], true
}

// Children returns the sub-parts of id in catalog order.
func (c *Catalog) Children(id string) []Region {
	var out []Region
	for _, r := range c.regions {
		if r.Kind == KindSubPart && r.Parent == id {
			out = append(out, r)
		}
	}
	return out
}

// TopLevel returns the top-level region id for id: itself for a region, the parent for a sub-part.
// Unknown ids are returned unchanged.
func (c *Catalog) TopLevel(id string) string {
	r, ok := c.Lookup(id)
	if !ok || r.Kind != KindSubPart {
		return id
	}
	return r.Parent
}
