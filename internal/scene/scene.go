package scene

import (
	"brain-atlas/internal/asset"
	"brain-atlas/internal/catalog"
	"brain-atlas/internal/loader"
	"brain-atlas/internal/overlay"
	"brain-atlas/internal/pick"
	"brain-atlas/internal/pointer"
	"brain-atlas/internal/primitives"
	"brain-atlas/internal/viewport"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const (
	gridExtent     = 12
	gridUnit       = 0.25 // world units per grid step
	gridMajorStep  = 4
	gridMinorAlpha = 40
	gridMajorAlpha = 100
	axisLineAlpha  = 200
	gridFloor      = -1.2 // grid sits under the canonical model
)

// Options configure a Scene.
type Options struct {
	Catalog     *catalog.Catalog
	Pointer     *pointer.Engine
	Loader      *loader.Loader
	Viewport    viewport.Policy
	Logger      *zap.Logger
	GridVisible bool
	// Reload is called when the user asks for the asset to be loaded again.
	Reload func()
}

// Scene holds the orbit camera and the current model, and turns mouse input into hover and
// selection. Update and Draw run on the render thread only.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	ShowAnchors bool

	opts     Options
	log      *zap.Logger
	orbit    orbit
	click    clickTracker
	registry *primitives.Registry

	snap         loader.Snapshot
	world        *pick.World
	defaults     []string
	state        pointer.State
	frame        pointer.Frame
	displayScale float64
	mouse        rl.Vector2
}

// New returns a scene with an orbit camera looking at the origin.
func New(opts Options) *Scene {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Pointer == nil {
		opts.Pointer = pointer.New(opts.Catalog, pointer.DefaultHoverThreshold)
	}
	if len(opts.Viewport.Bands) == 0 {
		opts.Viewport = viewport.DefaultPolicy()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{
		GridVisible:  opts.GridVisible,
		opts:         opts,
		log:          log,
		orbit:        newOrbit(),
		registry:     primitives.NewRegistry(),
		displayScale: 1,
	}
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	s.placeCamera()
	return s
}

func (s *Scene) placeCamera() {
	p := s.orbit.position([3]float32{s.Camera.Target.X, s.Camera.Target.Y, s.Camera.Target.Z})
	s.Camera.Position = rl.NewVector3(p[0], p[1], p[2])
}

// Update runs once per frame: picks up a newly published load, moves the camera, and
// resolves the pointer against the current model.
func (s *Scene) Update() {
	s.syncLoad()
	s.displayScale = s.opts.Viewport.Scale(rl.GetScreenWidth(), rl.GetScreenHeight())
	s.handleKeys()

	s.mouse = rl.GetMousePosition()
	delta := rl.GetMouseDelta()
	clicked := false
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		s.click.press()
	}
	s.click.move(delta.X, delta.Y)
	if s.click.dragging() {
		s.orbit.drag(delta.X, delta.Y)
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		clicked = s.click.release()
	}
	s.orbit.zoom(rl.GetMouseWheelMove())
	s.placeCamera()

	ev := pointer.Event{Clicked: clicked}
	if s.world != nil && !s.click.dragging() {
		ray := rl.GetScreenToWorldRay(s.mouse, s.Camera)
		r := canonicalRay(
			[3]float32{ray.Position.X, ray.Position.Y, ray.Position.Z},
			[3]float32{ray.Direction.X, ray.Direction.Y, ray.Direction.Z},
			s.displayScale,
		)
		ev.Point = surfacePoint(s.world, r)
	}
	s.step(ev)
}

// step feeds one event through the pointer engine and applies the resulting frame.
func (s *Scene) step(ev pointer.Event) {
	prev := s.state
	s.state, s.frame = s.opts.Pointer.Step(prev, ev, s.defaults)
	if s.frame.HoverChanged {
		if s.frame.Hovered != nil {
			rl.SetMouseCursor(rl.MouseCursorPointingHand)
			s.log.Debug("hover", zap.String("region", s.frame.Hovered.ID))
		} else {
			rl.SetMouseCursor(rl.MouseCursorDefault)
			s.log.Debug("hover cleared", zap.String("region", prev.Hovered))
		}
	}
	if s.frame.Clicked != nil {
		s.log.Info("region selected", zap.String("region", s.frame.Clicked.ID))
	}
}

// syncLoad swaps in the loader's latest snapshot once the loader signals a change. While a
// load is in flight or has failed nothing is drawn and nothing can be hovered.
func (s *Scene) syncLoad() {
	if s.opts.Loader == nil {
		return
	}
	select {
	case <-s.opts.Loader.Updates():
	default:
		return
	}
	snap := s.opts.Loader.Snapshot()
	if snap.LoadID == s.snap.LoadID && snap.Status == s.snap.Status {
		return
	}
	s.snap = snap
	s.state = pointer.State{}
	s.frame = pointer.Frame{}
	rl.SetMouseCursor(rl.MouseCursorDefault)
	if snap.Status != loader.StatusReady {
		s.setModel(nil, nil)
		return
	}
	s.setModel(snap.Model, snap.Defaults())
	s.log.Info("model ready",
		zap.String("load_id", snap.LoadID),
		zap.Int("meshes", s.registry.Len()),
	)
}

func (s *Scene) setModel(m *asset.Model, defaults []string) {
	s.defaults = defaults
	s.registry.Upload(m)
	if m == nil {
		s.world = nil
		return
	}
	s.world = pick.NewWorld(m)
}

func (s *Scene) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyG):
		s.GridVisible = !s.GridVisible
	case rl.IsKeyPressed(rl.KeyA):
		s.ShowAnchors = !s.ShowAnchors
	case rl.IsKeyPressed(rl.KeyR):
		if s.opts.Reload != nil {
			s.opts.Reload()
		}
	case rl.IsKeyPressed(rl.KeyHome):
		s.orbit = newOrbit()
	}
}

// Draw renders the 3D scene. Call after ClearBackground and before the overlay.
func (s *Scene) Draw() {
	pos := s.Camera.Position
	s.registry.SetView([3]float32{pos.X, pos.Y, pos.Z}, [3]float32{0.4, 1, 0.6})

	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawGrid(float32(s.displayScale))
	}
	scale := float32(s.displayScale)
	s.registry.Draw(s.opts.Catalog, scale, highlighter(s.opts.Catalog, s.state))
	if s.ShowAnchors {
		s.registry.DrawAnchors(s.opts.Catalog, scale)
	}
	rl.EndMode3D()
}

// OverlayView returns what the overlay shows for the current frame.
func (s *Scene) OverlayView() overlay.View {
	v := overlay.View{
		Status:  s.snap.Status,
		Source:  s.snap.Source,
		Err:     s.snap.Err,
		Hovered: s.frame.Hovered,
		Mouse:   [2]float32{s.mouse.X, s.mouse.Y},
	}
	if r, ok := s.opts.Catalog.Lookup(s.state.Selected); ok {
		v.Selected = &r
	}
	return v
}

// Close releases GPU resources. Call before the window closes.
func (s *Scene) Close() {
	s.registry.Close()
}

// gridLayout returns the grid height, half extent and line spacing in display space. All
// three follow the display scale so the grid keeps its size relative to the model.
func gridLayout(scale float32) (y, ext, step float32) {
	step = gridUnit * scale
	return gridFloor * scale, float32(gridExtent) * step, step
}

// drawGrid draws a grid on the XZ plane under the model with major/minor lines and axis
// lines. Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid(scale float32) {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	y, ext, step := gridLayout(scale)
	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i++ {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		v := float32(i) * step
		start.X, start.Y, start.Z = v, y, -ext
		end.X, end.Y, end.Z = v, y, ext
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -ext, y, v
		end.X, end.Y, end.Z = ext, y, v
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = -ext, y, 0
	end.X, end.Y, end.Z = ext, y, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, y, -ext
	end.X, end.Y, end.Z = 0, y, ext
	rl.DrawLine3D(start, end, axisZ)
}
