package catalog

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kind tags a region as a top-level network or a sub-part of one.
type Kind int

const (
	KindRegion Kind = iota
	KindSubPart
)

// String returns the YAML spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindRegion:
		return "region"
	case KindSubPart:
		return "subpart"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses "region" / "subpart" (case-insensitive). Empty means region.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "region", "network":
		return KindRegion, nil
	case "subpart", "sub-part", "part":
		return KindSubPart, nil
	}
	return 0, fmt.Errorf("unknown region kind %q", s)
}

// Region is one entry of the catalog. Anchor is a hand-authored point in canonical space
// approximating the region's centroid; it is never derived from mesh data.
type Region struct {
	ID          string
	Name        string
	Color       string // hex token, used only for tinting
	Anchor      r3.Vec
	Kind        Kind
	Parent      string // set only for KindSubPart
	Description string
}

// IsSubPart reports whether r belongs to a parent region.
func (r Region) IsSubPart() bool {
	return r.Kind == KindSubPart
}

// RGBA returns the region color as 8-bit channels (alpha 255). Invalid tokens yield opaque gray.
func (r Region) RGBA() [4]uint8 {
	c, ok := ParseHexColor(r.Color)
	if !ok {
		return [4]uint8{128, 128, 128, 255}
	}
	return c
}

// ParseHexColor parses #RGB or #RRGGBB into RGBA (alpha 255). Returns false on parse error.
func ParseHexColor(s string) ([4]uint8, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return [4]uint8{}, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexByte(hex[i]); !ok {
			return [4]uint8{}, false
		}
	}
	var r, g, b uint8
	switch len(hex) {
	case 3:
		r = hexVal(hex[0]) * 17
		g = hexVal(hex[1]) * 17
		b = hexVal(hex[2]) * 17
	case 6:
		r = hexVal(hex[0])<<4 + hexVal(hex[1])
		g = hexVal(hex[2])<<4 + hexVal(hex[3])
		b = hexVal(hex[4])<<4 + hexVal(hex[5])
	default:
		return [4]uint8{}, false
	}
	return [4]uint8{r, g, b, 255}, true
}

func hexVal(c byte) uint8 {
	v, _ := hexByte(c)
	return v
}

func hexByte(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
