// Package orientation turns pointer drags into the viewing direction used for
// panoramic (360°) content.
package orientation

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// A drag across the full viewport width turns the view by this many degrees.
	yawRange = 180.0
	// A drag across the full viewport height tilts the view by this many degrees.
	pitchRange = 90.0

	verticalFieldOfView = 50.0
	nearPlane           = 1.0
	farPlane            = 100.0
)

// State is the drag state. Angles are in degrees. Current* hold the deltas of
// the drag in progress and are folded into Base* on release.
type State struct {
	BaseYaw      float32
	BasePitch    float32
	CurrentYaw   float32
	CurrentPitch float32
	Dragging     bool
	Origin       mgl32.Vec2
}

// Press starts a drag at (x, y).
func (s State) Press(x, y float32) State {
	s.Dragging = true
	s.Origin = mgl32.Vec2{x, y}
	s.CurrentYaw = 0
	s.CurrentPitch = 0
	return s
}

// Move updates the drag deltas for a pointer at (x, y) on a viewport of the
// given size. It reports whether the orientation changed; moves outside a drag
// or on an empty viewport are ignored.
func (s State) Move(x, y float32, viewportWidth, viewportHeight int) (State, bool) {
	if !s.Dragging || viewportWidth <= 0 || viewportHeight <= 0 {
		return s, false
	}
	d := mgl32.Vec2{x, y}.Sub(s.Origin)
	s.CurrentYaw = -d[0] / float32(viewportWidth) * yawRange
	s.CurrentPitch = -d[1] / float32(viewportHeight) * pitchRange
	return s, true
}

// Release ends the drag and commits its deltas.
func (s State) Release() State {
	s.Dragging = false
	s.BaseYaw += s.CurrentYaw
	s.BasePitch += s.CurrentPitch
	s.CurrentYaw = 0
	s.CurrentPitch = 0
	return s
}

// Reset returns the zero orientation, abandoning any drag.
func (s State) Reset() State {
	return State{}
}

// Yaw is the effective horizontal angle.
func (s State) Yaw() float32 { return s.BaseYaw + s.CurrentYaw }

// Pitch is the effective vertical angle.
func (s State) Pitch() float32 { return s.BasePitch + s.CurrentPitch }

// ViewMatrix is the world rotation for the current orientation, yaw about Y
// applied first, then pitch about X.
func (s State) ViewMatrix() mgl32.Mat4 {
	q := mgl32.AnglesToQuat(
		mgl32.DegToRad(-s.Yaw()),
		mgl32.DegToRad(-s.Pitch()),
		0,
		mgl32.YXZ)
	return q.Mat4()
}

// Projection is the perspective frustum for panoramic viewing on a viewport of
// the given size.
func Projection(viewportWidth, viewportHeight int) mgl32.Mat4 {
	aspect := float32(1)
	if viewportHeight > 0 && viewportWidth > 0 {
		aspect = float32(viewportWidth) / float32(viewportHeight)
	}
	top := float32(math.Tan(float64(mgl32.DegToRad(verticalFieldOfView)) * 0.5))
	right := top * aspect
	return mgl32.Frustum(-right, right, -top, top, nearPlane, farPlane)
}

// Identity returns the projection and view transforms for flat content.
func Identity() (projection, view mgl32.Mat4) {
	return mgl32.Ident4(), mgl32.Ident4()
}
