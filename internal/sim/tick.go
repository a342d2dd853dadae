package sim

import (
	gomath "math"

	"github.com/Faultbox/walkabout/pkg/math"
)

// Tuning divisors for a dt measured in milliseconds.
const (
	tiltDivisor = 10   // degrees of head tilt
	turnDivisor = 1000 // radians of yaw
	gaitDivisor = 100  // gait phase

	minTilt = -89
	maxTilt = 89

	baseHeight = 0.5
	bobHeight  = 0.05
)

// Tick advances the pose by dt milliseconds of input. It is pure: every
// sub-update reads the pre-tick pose and key snapshot, never a partial
// result, and the caller commits the returned pose atomically.
func Tick(dt float32, keys KeyState, p Pose) Pose {
	next := p
	next.Tilt = clampDelta(p.Tilt, tiltDir(keys)*dt/tiltDivisor, minTilt, maxTilt)
	next.Facing = p.Facing.RotateY(turnDir(keys) * dt / turnDivisor)
	next.Gait = p.Gait + gaitAdvance(keys)*dt/gaitDivisor

	forward := moveDir(keys.W, keys.S) * dt
	strafe := moveDir(keys.D, keys.A) * dt
	right := p.Facing.Cross(math.Up)
	next.Position = p.Position.
		Add(right.Scale(strafe)).
		Add(p.Facing.Scale(forward))

	// Height is a function of gait phase alone; the walker bobs whether or
	// not it covered any ground this tick.
	next.Position.Y = baseHeight + bobHeight*float32(gomath.Sin(float64(next.Gait)))

	return next
}

// clampDelta applies delta to cur, pinning at the bounds. The sum may
// transiently pass a bound within one tick; the returned value never does.
func clampDelta(cur, delta, low, high float32) float32 {
	v := cur + delta
	if v > high {
		return high
	}
	if v < low {
		return low
	}
	return v
}

// tiltDir is +1 looking up, -1 looking down, 0 when the arrows cancel.
func tiltDir(keys KeyState) float32 {
	return moveDir(keys.Up, keys.Down)
}

// turnDir is +1 turning left, -1 turning right, 0 when the arrows cancel.
func turnDir(keys KeyState) float32 {
	return moveDir(keys.Left, keys.Right)
}

// moveDir resolves an opposing key pair: +1 for positive-only, -1 for
// negative-only, 0 when both or neither are held.
func moveDir(pos, neg bool) float32 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	default:
		return 0
	}
}

// gaitAdvance reports whether this key combination drives the walk cycle.
// Exactly four combinations hold the phase still: no movement keys, all four
// at once, A+S alone, and W+D alone. Any other combination advances it,
// including three-key chords whose net motion is zero.
func gaitAdvance(keys KeyState) float32 {
	a, s, w, d := keys.A, keys.S, keys.W, keys.D
	switch {
	case !a && !s && !w && !d:
		return 0
	case a && s && w && d:
		return 0
	case a && s && !w && !d:
		return 0
	case w && d && !a && !s:
		return 0
	default:
		return 1
	}
}
