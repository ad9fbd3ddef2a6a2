// Package primitives owns the GPU side of a loaded model: one raylib mesh per normalized
// primitive, drawn with a lit shader and tinted by region.
package primitives

import (
	"runtime"

	"brain-atlas/internal/asset"
	"brain-atlas/internal/catalog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hoverShade    = 0.45
	selectedShade = 0.2
	opaque        = 255

	anchorRadius = 0.04
	anchorRings  = 8
	anchorSlices = 8
)

// cached is one uploaded primitive mesh and its load-time region.
type cached struct {
	region string
	mesh   rl.Mesh
}

// Registry maps primitive indices to meshes. Meshes and the material are created after
// the window/OpenGL context exists: Upload and the first Draw must run on the render thread.
type Registry struct {
	meshes    []cached
	mtl       rl.Material
	mtlReady  bool
	anchor    rl.Mesh
	hasAnchor bool
	viewPos   [3]float32 // camera position, set each frame for lighting
	lightDir  [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		lightDir: [3]float32{0.5, 1, 0.5}, // default: from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// Len returns the number of uploaded meshes.
func (r *Registry) Len() int {
	return len(r.meshes)
}

// Upload replaces the registry's meshes with those of m. Primitives without triangles are
// skipped. Passing nil just unloads.
func (r *Registry) Upload(m *asset.Model) {
	r.Unload()
	if m == nil {
		return
	}
	for _, p := range m.Primitives {
		vertices, normals := meshData(p.Triangles())
		if len(vertices) == 0 {
			continue
		}
		mesh := rl.Mesh{
			VertexCount:   int32(len(vertices) / 3),
			TriangleCount: int32(len(vertices) / 9),
		}
		// raylib copies the arrays into GPU buffers; the Go slices are only pinned for the
		// call and the CPU-side pointers are cleared so UnloadMesh never frees Go memory.
		var pin runtime.Pinner
		pin.Pin(&vertices[0])
		pin.Pin(&normals[0])
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		rl.UploadMesh(&mesh, false)
		mesh.Vertices, mesh.Normals = nil, nil
		pin.Unpin()
		r.meshes = append(r.meshes, cached{region: p.RegionID(), mesh: mesh})
	}
}

// Unload frees every uploaded mesh.
func (r *Registry) Unload() {
	for _, c := range r.meshes {
		rl.UnloadMesh(&c.mesh)
	}
	r.meshes = nil
}

func (r *Registry) ensureMaterial() {
	if r.mtlReady {
		return
	}
	r.mtl = rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		r.mtl.Shader = shader
	}
	r.anchor = rl.GenMeshSphere(anchorRadius, anchorRings, anchorSlices)
	r.hasAnchor = true
	r.mtlReady = true
}

// Highlight reports how a primitive is emphasized this frame.
type Highlight func(region string) (hovered, selected bool)

// Draw draws every mesh scaled uniformly about the origin, tinted with its region color.
// Must be called between BeginMode3D and EndMode3D.
func (r *Registry) Draw(cat *catalog.Catalog, scale float32, hl Highlight) {
	if len(r.meshes) == 0 {
		return
	}
	r.ensureMaterial()
	setLitShaderUniforms(r.mtl.Shader, r.viewPos, r.lightDir)
	transform := rl.MatrixScale(scale, scale, scale)
	for _, c := range r.meshes {
		color := regionColor(cat, c.region)
		if hl != nil {
			switch hovered, selected := hl(c.region); {
			case hovered:
				color = shade(color, hoverShade)
			case selected:
				color = shade(color, selectedShade)
			}
		}
		r.setTint(color)
		rl.DrawMesh(c.mesh, r.mtl, transform)
	}
}

// DrawAnchors draws a small marker at every region anchor, in display space.
func (r *Registry) DrawAnchors(cat *catalog.Catalog, scale float32) {
	r.ensureMaterial()
	setLitShaderUniforms(r.mtl.Shader, r.viewPos, r.lightDir)
	for _, reg := range cat.Regions() {
		a := reg.Anchor
		transform := rl.MatrixTranslate(float32(a.X)*scale, float32(a.Y)*scale, float32(a.Z)*scale)
		r.setTint(shade(reg.RGBA(), 0.3))
		rl.DrawMesh(r.anchor, r.mtl, transform)
	}
}

func (r *Registry) setTint(c [4]uint8) {
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(c[0], c[1], c[2], c[3])
	}
}

// Close frees meshes, the anchor marker and the material.
func (r *Registry) Close() {
	r.Unload()
	if r.hasAnchor {
		rl.UnloadMesh(&r.anchor)
		r.hasAnchor = false
	}
	if r.mtlReady {
		rl.UnloadMaterial(r.mtl)
		r.mtlReady = false
	}
}

// regionColor is the catalog color of region, gray for unknown ids.
func regionColor(cat *catalog.Catalog, region string) [4]uint8 {
	if cat != nil {
		if reg, ok := cat.Lookup(region); ok {
			return reg.RGBA()
		}
	}
	return [4]uint8{128, 128, 128, opaque}
}
