// Package input translates SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/viewer"
)

// Input polls SDL and implements viewer.Source.
type Input struct {
	keys   KeyMap
	events []viewer.Event
}

// New creates an input handler with the given bindings.
func New(keys KeyMap) *Input {
	return &Input{
		keys:   keys,
		events: make([]viewer.Event, 0, 16),
	}
}

// Poll drains the SDL event queue. The returned slice is reused by the
// next call.
func (i *Input) Poll() []viewer.Event {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, viewer.Event{Kind: viewer.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, viewer.Event{
					Kind:   viewer.EventResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			// Key repeat counts as further presses
			if e.Type != sdl.KEYDOWN {
				continue
			}
			cmd, ok := i.keys.Lookup(e.Keysym.Sym)
			if !ok {
				logger.Debug("unbound key", zap.String("key", sdl.GetKeyName(e.Keysym.Sym)))
				continue
			}
			i.events = append(i.events, viewer.CommandEvent(cmd))

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, viewer.MouseEvent(float64(e.X), float64(e.Y)))
		}
	}

	return i.events
}
