package pointer

import (
	"brain-atlas/internal/catalog"

	"gonum.org/v1/gonum/spatial/r3"
)

// Event is one interaction frame: the canonical-space surface hit (nil when the pointer is
// not over the mesh) and whether the primary button was clicked this frame.
type Event struct {
	Point   *r3.Vec
	Clicked bool
}

// State is the hover/selection value owned by the render loop. It is replaced wholesale
// by Step on every event.
type State struct {
	Hovered  string // region id, "" for none
	Selected string // last clicked region id, "" for none
}

// Frame is what the presentation adapter consumes for one event.
type Frame struct {
	Hovered *catalog.Region
	Clicked *catalog.Region
	// Defaults holds the load-time region of each primitive, by primitive index.
	Defaults []string
	// HoverChanged reports that Hovered differs from the previous state, so cursor and
	// materials need updating.
	HoverChanged bool
}

// Step resolves ev against prev and returns the next state and the frame to present.
// A click over a region selects it; a click over nothing clears the selection.
// defaults is passed through untouched.
func (e *Engine) Step(prev State, ev Event, defaults []string) (State, Frame) {
	var next State
	fr := Frame{Defaults: defaults}
	if ev.Point != nil {
		if r, ok := e.Resolve(*ev.Point); ok {
			fr.Hovered = &r
			next.Hovered = r.ID
		}
	}
	next.Selected = prev.Selected
	if ev.Clicked {
		fr.Clicked = fr.Hovered
		next.Selected = next.Hovered
	}
	fr.HoverChanged = next.Hovered != prev.Hovered
	return next, fr
}
