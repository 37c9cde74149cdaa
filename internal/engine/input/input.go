// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	Button uint8
}

// Input polls SDL events once per frame and keeps held-key state plus the
// accumulated relative mouse motion, which is what a fly camera consumes.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool

	mouseDX float32
	mouseDY float32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.mouseDX = 0
	i.mouseDY = 0

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
			if e.Type == sdl.KEYDOWN {
				i.held[e.Keysym.Scancode] = true
				if e.Repeat == 0 {
					i.events = append(i.events, Event{
						Type: EventKeyDown,
						Key:  e.Keysym.Scancode,
					})
				}
			} else if e.Type == sdl.KEYUP {
				i.held[e.Keysym.Scancode] = false
				i.events = append(i.events, Event{
					Type: EventKeyUp,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseMotionEvent:
			i.mouseDX += float32(e.XRel)
			i.mouseDY += float32(e.YRel)

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.events = append(i.events, Event{
					Type:   EventMouseDown,
					Button: e.Button,
				})
			} else if e.Type == sdl.MOUSEBUTTONUP {
				i.events = append(i.events, Event{
					Type:   EventMouseUp,
					Button: e.Button,
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

// IsHeld reports whether a key is currently held down.
func (i *Input) IsHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// MouseDelta returns the relative mouse motion accumulated during the
// last Update.
func (i *Input) MouseDelta() (dx, dy float32) {
	return i.mouseDX, i.mouseDY
}
