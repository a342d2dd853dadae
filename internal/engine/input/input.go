// Package input polls SDL2 events and converts them to application events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/walkabout/internal/sim"
)

// Event types consumed by the application loop.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event. Key events carry the viewer's
// numeric key code (see sim.Apply); unmapped keys carry code 0.
type Event struct {
	Type   EventType
	Key    int
	Width  int
	Height int
}

// scancodeMap translates SDL scancodes to the key codes the simulator's
// reducer recognizes.
var scancodeMap = map[sdl.Scancode]int{
	sdl.SCANCODE_UP:    sim.KeyUp,
	sdl.SCANCODE_DOWN:  sim.KeyDown,
	sdl.SCANCODE_LEFT:  sim.KeyLeft,
	sdl.SCANCODE_RIGHT: sim.KeyRight,
	sdl.SCANCODE_W:     sim.KeyW,
	sdl.SCANCODE_A:     sim.KeyA,
	sdl.SCANCODE_S:     sim.KeyS,
	sdl.SCANCODE_D:     sim.KeyD,
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to application events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue // held-key repeats are not transitions
			}
			if e.Type == sdl.KEYDOWN {
				if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					i.events = append(i.events, Event{Type: EventQuit})
					return true
				}
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  scancodeMap[e.Keysym.Scancode],
				})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{
					Type: EventKeyUp,
					Key:  scancodeMap[e.Keysym.Scancode],
				})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
