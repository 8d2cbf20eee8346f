// Package input turns SDL2 events into the per-frame state the viewer
// reads: discrete key presses, window resizes, left-button drag and wheel.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Event is a discrete input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Input accumulates one frame of input.
type Input struct {
	events []Event

	dragging     bool
	dragX, dragY float32
	wheel        float32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update drains the SDL event queue. It returns true once the window has
// been asked to close.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.dragX, i.dragY, i.wheel = 0, 0, 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			// Held keys repeat KEYDOWN; only the first press counts.
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				i.dragX += float32(e.XRel)
				i.dragY += float32(e.YRel)
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseWheelEvent:
			i.wheel += float32(e.Y)
		}
	}

	return false
}

// Events returns the discrete events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// DragDelta returns the mouse movement this frame while the left button
// was held.
func (i *Input) DragDelta() (dx, dy float32) {
	return i.dragX, i.dragY
}

// Wheel returns the vertical scroll this frame.
func (i *Input) Wheel() float32 {
	return i.wheel
}
