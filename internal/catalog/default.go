package catalog

import "gonum.org/v1/gonum/spatial/r3"

// defaultRegions are the seven large-scale cortical networks plus a few named sub-parts.
// Anchors live in canonical space (model centered at the origin, longest side 2 units,
// +Y superior, +Z anterior, +X right).
var defaultRegions = []Region{
	{
		ID: "visual", Name: "Visual Network", Color: "#781286",
		Anchor:      r3.Vec{X: 0, Y: 0.05, Z: -0.85},
		Description: "Occipital cortex; processes visual input.",
	},
	{
		ID: "somatomotor", Name: "Somatomotor Network", Color: "#4682b4",
		Anchor:      r3.Vec{X: 0, Y: 0.7, Z: -0.05},
		Description: "Pre- and postcentral gyri; movement and touch.",
	},
	{
		ID: "dorsal_attention", Name: "Dorsal Attention Network", Color: "#00760e",
		Anchor:      r3.Vec{X: 0.45, Y: 0.5, Z: -0.45},
		Description: "Intraparietal sulcus and frontal eye fields; goal-directed attention.",
	},
	{
		ID: "ventral_attention", Name: "Ventral Attention Network", Color: "#c43afa",
		Anchor:      r3.Vec{X: 0.6, Y: 0.1, Z: 0.1},
		Description: "Temporoparietal junction and anterior insula; salience detection.",
	},
	{
		ID: "limbic", Name: "Limbic Network", Color: "#dcf8a4",
		Anchor:      r3.Vec{X: 0, Y: -0.35, Z: 0.35},
		Description: "Orbitofrontal cortex and temporal poles; emotion and memory.",
	},
	{
		ID: "frontoparietal", Name: "Frontoparietal Network", Color: "#e69422",
		Anchor:      r3.Vec{X: 0.45, Y: 0.35, Z: 0.45},
		Description: "Lateral prefrontal and parietal cortex; executive control.",
	},
	{
		ID: "default_mode", Name: "Default Mode Network", Color: "#cd3e4e",
		Anchor:      r3.Vec{X: 0, Y: 0.3, Z: 0.6},
		Description: "Medial prefrontal and posterior cingulate cortex; self-referential thought.",
	},
	{
		ID: "v1", Name: "Primary Visual Cortex", Color: "#9a3aa8",
		Anchor: r3.Vec{X: 0, Y: 0, Z: -0.95},
		Kind:   KindSubPart, Parent: "visual",
		Description: "Calcarine sulcus; first cortical stage of vision.",
	},
	{
		ID: "insula", Name: "Anterior Insula", Color: "#d77cff",
		Anchor: r3.Vec{X: 0.55, Y: 0, Z: 0.15},
		Kind:   KindSubPart, Parent: "ventral_attention",
		Description: "Interoception and salience.",
	},
	{
		ID: "pcc", Name: "Posterior Cingulate", Color: "#e0707c",
		Anchor: r3.Vec{X: 0, Y: 0.35, Z: -0.35},
		Kind:   KindSubPart, Parent: "default_mode",
		Description: "Hub of the default mode network.",
	},
}

var defaultCatalog = MustNew(defaultRegions)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}
