// Package app runs the viewer: one state record, pure event transitions, and
// a single-threaded loop that interleaves input, frame ticks, and asset
// completions.
package app

import (
	"image"

	"github.com/Faultbox/walkabout/internal/sim"
	"github.com/Faultbox/walkabout/pkg/formats"
)

// State is the whole application state. It is only ever replaced through
// Reduce on the loop goroutine; nothing mutates it concurrently.
type State struct {
	Mesh        formats.Mesh
	MeshVersion int // bumped on every successful decode, drives GPU re-upload

	TextureImage *image.RGBA // decoded image awaiting upload, nil until loaded
	TextureID    uint32
	TextureReady bool

	Keys sim.KeyState
	Pose sim.Pose
}

// NewState returns the initial placeholder state: empty mesh, no texture,
// spawn pose. This is a valid, renderable (as nothing) state.
func NewState() State {
	return State{Pose: sim.DefaultPose()}
}

// Event is a state transition input. Every external occurrence (key
// transition, frame tick, asset completion) becomes one Event.
type Event interface {
	isEvent()
}

// KeyEvent is a single key transition.
type KeyEvent struct {
	Code    int
	Pressed bool
}

// TickEvent advances the simulation by DT milliseconds.
type TickEvent struct {
	DT float32
}

// MeshEvent is the completion of the mesh text fetch.
type MeshEvent struct {
	Text string
	Err  error
}

// TextureEvent is the completion of the texture fetch and decode.
type TextureEvent struct {
	Img *image.RGBA
	Err error
}

// TextureUploaded records the GL handle after the loop uploads the pending
// texture image.
type TextureUploaded struct {
	ID uint32
}

func (KeyEvent) isEvent()        {}
func (TickEvent) isEvent()       {}
func (MeshEvent) isEvent()       {}
func (TextureEvent) isEvent()    {}
func (TextureUploaded) isEvent() {}

// Reduce returns the state after one event. Failed asset events are identity
// transitions: the placeholder state is kept and nothing crashes.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case KeyEvent:
		s.Keys = sim.Apply(s.Keys, e.Code, e.Pressed)

	case TickEvent:
		s.Pose = sim.Tick(e.DT, s.Keys, s.Pose)

	case MeshEvent:
		if e.Err != nil {
			return s
		}
		s.Mesh = formats.DecodeMesh(e.Text)
		s.MeshVersion++

	case TextureEvent:
		if e.Err != nil || e.Img == nil {
			return s
		}
		s.TextureImage = e.Img

	case TextureUploaded:
		s.TextureID = e.ID
		s.TextureReady = true
		s.TextureImage = nil // upload done, drop the CPU copy
	}
	return s
}
