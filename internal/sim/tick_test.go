package sim

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/walkabout/pkg/math"
)

func TestApplyKeyTransitions(t *testing.T) {
	var ks KeyState

	ks = Apply(ks, KeyW, true)
	if !ks.W {
		t.Error("W should be held after key-down")
	}

	ks = Apply(ks, KeyUp, true)
	ks = Apply(ks, KeyW, false)
	if ks.W {
		t.Error("W should be released after key-up")
	}
	if !ks.Up {
		t.Error("releasing W should not touch Up")
	}
}

func TestApplyUnknownCodeIsNoOp(t *testing.T) {
	ks := KeyState{W: true, Left: true}
	got := Apply(ks, 13, true)
	if got != ks {
		t.Errorf("unknown key code changed state: %+v", got)
	}
}

func TestTiltClampedAtBounds(t *testing.T) {
	p := DefaultPose()
	up := KeyState{Up: true}

	// Push well past the upper bound over many ticks.
	for i := 0; i < 200; i++ {
		p = Tick(100, up, p)
		if p.Tilt < -89 || p.Tilt > 89 {
			t.Fatalf("tilt %v escaped [-89, 89] on tick %d", p.Tilt, i)
		}
	}
	if p.Tilt != 89 {
		t.Errorf("tilt = %v after sustained up, want pinned at 89", p.Tilt)
	}

	// Still pinned while up is held.
	p = Tick(50, up, p)
	if p.Tilt != 89 {
		t.Errorf("tilt = %v, want to stay at 89", p.Tilt)
	}

	// Free to move back toward the interior.
	p = Tick(10, KeyState{Down: true}, p)
	if p.Tilt != 88 {
		t.Errorf("tilt = %v after down tick, want 88", p.Tilt)
	}
}

func TestTiltOpposingArrowsCancel(t *testing.T) {
	p := DefaultPose()
	p.Tilt = 12

	got := Tick(100, KeyState{Up: true, Down: true}, p)
	if got.Tilt != 12 {
		t.Errorf("tilt = %v with both arrows held, want unchanged", got.Tilt)
	}
}

func TestFacingRotation(t *testing.T) {
	p := DefaultPose() // facing (0, 0, -1)

	// A quarter turn left: dt/1000 radians per tick.
	halfPi := float32(gomath.Pi / 2)
	got := Tick(halfPi*1000, KeyState{Left: true}, p)

	want := math.Vec3{X: -1}
	if abs(got.Facing.X-want.X) > 0.001 || abs(got.Facing.Z-want.Z) > 0.001 {
		t.Errorf("facing = %v after quarter turn left, want (-1, 0, 0)", got.Facing)
	}

	// Left and right together cancel.
	got = Tick(500, KeyState{Left: true, Right: true}, p)
	if got.Facing != p.Facing {
		t.Errorf("facing = %v with both arrows held, want unchanged", got.Facing)
	}
}

func TestGaitHeldCombinations(t *testing.T) {
	tests := []struct {
		name string
		keys KeyState
	}{
		{"all released", KeyState{}},
		{"all four held", KeyState{W: true, A: true, S: true, D: true}},
		{"a and s held", KeyState{A: true, S: true}},
		{"w and d held", KeyState{W: true, D: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPose()
			p.Gait = 3.5
			got := Tick(100, tt.keys, p)
			if got.Gait != 3.5 {
				t.Errorf("gait = %v, want held at 3.5", got.Gait)
			}
		})
	}
}

func TestGaitAdvances(t *testing.T) {
	tests := []struct {
		name string
		keys KeyState
	}{
		{"w only", KeyState{W: true}},
		{"a only", KeyState{A: true}},
		{"w and s", KeyState{W: true, S: true}},
		{"three keys", KeyState{W: true, A: true, D: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPose()
			got := Tick(50, tt.keys, p)
			if got.Gait <= p.Gait {
				t.Errorf("gait = %v, want strictly greater than %v", got.Gait, p.Gait)
			}
			if got.Gait != 0.5 {
				t.Errorf("gait = %v after 50ms, want 0.5", got.Gait)
			}
		})
	}
}

func TestHeightTracksGait(t *testing.T) {
	p := DefaultPose()
	p.Position = math.Vec3{X: 7, Y: 42, Z: -3}

	for _, keys := range []KeyState{{}, {W: true}, {A: true, Up: true}} {
		got := Tick(80, keys, p)
		want := float32(0.5 + 0.05*gomath.Sin(float64(got.Gait)))
		if got.Position.Y != want {
			t.Errorf("height = %v with keys %+v, want %v", got.Position.Y, keys, want)
		}
	}
}

func TestMoveForwardAndStrafe(t *testing.T) {
	p := DefaultPose() // at origin, facing (0, 0, -1)

	// W walks along facing.
	got := Tick(10, KeyState{W: true}, p)
	if abs(got.Position.Z+10) > 0.001 || abs(got.Position.X) > 0.001 {
		t.Errorf("position = %v after forward tick, want ~(0, _, -10)", got.Position)
	}

	// S walks backward.
	got = Tick(10, KeyState{S: true}, p)
	if abs(got.Position.Z-10) > 0.001 {
		t.Errorf("position = %v after backward tick, want ~(0, _, 10)", got.Position)
	}

	// D strafes along facing x up; for facing -Z that is +X.
	got = Tick(10, KeyState{D: true}, p)
	if abs(got.Position.X-10) > 0.001 || abs(got.Position.Z) > 0.001 {
		t.Errorf("position = %v after strafe right, want ~(10, _, 0)", got.Position)
	}

	// A strafes the other way.
	got = Tick(10, KeyState{A: true}, p)
	if abs(got.Position.X+10) > 0.001 || abs(got.Position.Z) > 0.001 {
		t.Errorf("position = %v after strafe left, want ~(-10, _, 0)", got.Position)
	}

	// Opposing keys cancel horizontal motion.
	got = Tick(10, KeyState{W: true, S: true, A: true, D: true}, p)
	if abs(got.Position.X) > 0.001 || abs(got.Position.Z) > 0.001 {
		t.Errorf("position = %v with all movement keys held, want no horizontal motion", got.Position)
	}
}

func TestMoveUsesPreTickFacing(t *testing.T) {
	p := DefaultPose()

	// Turning and walking in the same tick must move along the old facing.
	got := Tick(1000, KeyState{W: true, Left: true}, p)
	if abs(got.Position.X) > 0.001 {
		t.Errorf("position.X = %v, want 0: movement must not see the rotated facing", got.Position.X)
	}
	if got.Facing == p.Facing {
		t.Error("facing should have rotated during the tick")
	}
}

func TestTickZeroDt(t *testing.T) {
	p := DefaultPose()
	p.Tilt = 5
	p.Gait = 1

	got := Tick(0, KeyState{W: true, Up: true}, p)
	if got.Tilt != 5 || got.Gait != 1 {
		t.Errorf("tilt/gait changed on zero dt: %+v", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
