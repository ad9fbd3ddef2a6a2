package scene

import "github.com/chewxy/math32"

const (
	orbitMinDistance = 1.5
	orbitMaxDistance = 20
	orbitMaxPitch    = 1.5 // just under pi/2 so the up vector never flips
	orbitDragSpeed   = 0.008
	orbitZoomStep    = 0.1

	// clickSlop is how far the mouse may travel between press and release and still count
	// as a click rather than an orbit drag.
	clickSlop = 4
)

// orbit is a camera on a sphere around the target.
type orbit struct {
	yaw, pitch, distance float32
}

func newOrbit() orbit {
	return orbit{yaw: 0.8, pitch: 0.5, distance: 6}
}

// position returns the camera position for target.
func (o orbit) position(target [3]float32) [3]float32 {
	cp := math32.Cos(o.pitch)
	return [3]float32{
		target[0] + o.distance*cp*math32.Sin(o.yaw),
		target[1] + o.distance*math32.Sin(o.pitch),
		target[2] + o.distance*cp*math32.Cos(o.yaw),
	}
}

func (o *orbit) drag(dx, dy float32) {
	o.yaw -= dx * orbitDragSpeed
	o.pitch = math32.Max(-orbitMaxPitch, math32.Min(orbitMaxPitch, o.pitch+dy*orbitDragSpeed))
}

// zoom scales the distance by wheel notches; positive wheel moves closer.
func (o *orbit) zoom(wheel float32) {
	if wheel == 0 {
		return
	}
	d := o.distance * (1 - wheel*orbitZoomStep)
	o.distance = math32.Max(orbitMinDistance, math32.Min(orbitMaxDistance, d))
}

// clickTracker separates clicks from drags on one mouse button.
type clickTracker struct {
	down   bool
	travel float32
}

func (c *clickTracker) press() {
	c.down, c.travel = true, 0
}

func (c *clickTracker) move(dx, dy float32) {
	if c.down {
		c.travel += math32.Abs(dx) + math32.Abs(dy)
	}
}

// release ends the gesture and reports whether it was a click.
func (c *clickTracker) release() bool {
	click := c.down && c.travel <= clickSlop
	c.down, c.travel = false, 0
	return click
}

func (c *clickTracker) dragging() bool {
	return c.down && c.travel > clickSlop
}
