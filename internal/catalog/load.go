package catalog

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// RegionDef is the YAML definition of one region (e.g. assets/catalog/regions.yaml).
type RegionDef struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Color       string     `yaml:"color,omitempty"`
	Anchor      [3]float64 `yaml:"anchor"`
	Kind        string     `yaml:"kind,omitempty"`
	Parent      string     `yaml:"parent,omitempty"`
	Description string     `yaml:"description,omitempty"`
}

// File is the top-level YAML document.
type File struct {
	Regions []RegionDef `yaml:"regions"`
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	regions := make([]Region, 0, len(f.Regions))
	for i, d := range f.Regions {
		kind, err := ParseKind(d.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: region %d: %v", ErrInvalidCatalog, i, err)
		}
		regions = append(regions, Region{
			ID:          d.ID,
			Name:        d.Name,
			Color:       d.Color,
			Anchor:      r3.Vec{X: d.Anchor[0], Y: d.Anchor[1], Z: d.Anchor[2]},
			Kind:        kind,
			Parent:      d.Parent,
			Description: d.Description,
		})
	}
	return New(regions)
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault loads path when it is non-empty, otherwise returns Default().
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Marshal encodes c back into the YAML form accepted by Parse.
func Marshal(c *Catalog) ([]byte, error) {
	f := File{Regions: make([]RegionDef, 0, c.Len())}
	for _, r := range c.regions {
		f.Regions = append(f.Regions, RegionDef{
			ID:          r.ID,
			Name:        r.Name,
			Color:       r.Color,
			Anchor:      [3]float64{r.Anchor.X, r.Anchor.Y, r.Anchor.Z},
			Kind:        r.Kind.String(),
			Parent:      r.Parent,
			Description: r.Description,
		})
	}
	return yaml.Marshal(f)
}
