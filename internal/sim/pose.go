// Package sim advances the walker's pose from keyboard state and frame time.
package sim

import "github.com/Faultbox/walkabout/pkg/math"

// Pose is the walker's position and orientation plus the gait accumulator.
type Pose struct {
	Position math.Vec3
	Facing   math.Vec3 // not renormalized between ticks
	Tilt     float32   // head tilt in degrees, kept within [-89, 89]
	Gait     float32   // phase of the walk-bob cycle
}

// DefaultPose returns the spawn pose: standing at the origin facing -Z.
func DefaultPose() Pose {
	return Pose{
		Position: math.Vec3{Y: baseHeight},
		Facing:   math.Vec3{Z: -1},
	}
}

// KeyState is the set of held movement keys, updated by key transitions and
// read once per tick. Arrows steer the view, WASD moves.
type KeyState struct {
	Up, Down, Left, Right bool
	W, A, S, D            bool
}

// Key codes recognized by Apply. The values replicate the key mapping the
// mesh viewer has always shipped with, so recorded input streams stay valid.
const (
	KeyLeft  = 37
	KeyUp    = 38
	KeyRight = 39
	KeyDown  = 40
	KeyA     = 65
	KeyD     = 68
	KeyS     = 83
	KeyW     = 87
)

// Apply returns the key state after a single key transition. Unrecognized
// codes leave the state unchanged.
func Apply(ks KeyState, code int, pressed bool) KeyState {
	switch code {
	case KeyUp:
		ks.Up = pressed
	case KeyDown:
		ks.Down = pressed
	case KeyLeft:
		ks.Left = pressed
	case KeyRight:
		ks.Right = pressed
	case KeyW:
		ks.W = pressed
	case KeyA:
		ks.A = pressed
	case KeyS:
		ks.S = pressed
	case KeyD:
		ks.D = pressed
	}
	return ks
}
