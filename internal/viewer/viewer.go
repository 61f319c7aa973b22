// Package viewer implements the fixed-cadence tick loop that drives the
// scene from input events and hands composed frames to a renderer.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/logger"
)

// EventKind identifies what an Event carries.
type EventKind int

const (
	EventCommand EventKind = iota
	EventMouse
	EventResize
	EventQuit
)

// Event is one input occurrence, already translated from the backend.
type Event struct {
	Kind    EventKind
	Command scene.Command
	X, Y    float64 // cursor position for EventMouse
	Width   int     // viewport size for EventResize
	Height  int
}

// CommandEvent is shorthand for a key command event.
func CommandEvent(cmd scene.Command) Event {
	return Event{Kind: EventCommand, Command: cmd}
}

// MouseEvent is shorthand for a cursor sample.
func MouseEvent(x, y float64) Event {
	return Event{Kind: EventMouse, X: x, Y: y}
}

// Source delivers the events that arrived since the previous poll, in
// arrival order.
type Source interface {
	Poll() []Event
}

// Sink receives one frame per tick.
type Sink interface {
	Draw(frame scene.Frame) error
	Resize(width, height int)
}

// Options configures a Loop.
type Options struct {
	TickRate int // ticks per second
	Width    int
	Height   int
}

// DefaultTickRate is used when Options.TickRate is not positive.
const DefaultTickRate = 60

// Loop owns the scene state for the lifetime of the viewer. Nothing else
// may touch the state while the loop runs.
type Loop struct {
	state    *scene.State
	composer *scene.Composer
	source   Source
	sink     Sink

	interval time.Duration
	width    int
	height   int
	ticks    uint64
	log      *zap.Logger
}

// New creates a loop over an already initialized state.
func New(state *scene.State, composer *scene.Composer, src Source, sink Sink, opts Options) *Loop {
	rate := opts.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &Loop{
		state:    state,
		composer: composer,
		source:   src,
		sink:     sink,
		interval: time.Second / time.Duration(rate),
		width:    opts.Width,
		height:   opts.Height,
		log:      logger.Named("viewer"),
	}
}

// Interval returns the time between ticks.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Ticks returns how many frames have been handed to the sink.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Step runs a single tick: drain input, advance rotation, compose and draw.
// It returns false once a quit was requested, in which case nothing is
// drawn.
func (l *Loop) Step() (bool, error) {
	for _, ev := range l.source.Poll() {
		switch ev.Kind {
		case EventQuit:
			l.log.Info("window closed")
			return false, nil

		case EventCommand:
			switch sig := l.state.Apply(ev.Command); sig {
			case scene.SignalQuit:
				l.log.Info("quit requested")
				return false, nil
			case scene.SignalTogglePrimitive:
				l.composer.Handle(sig)
				l.log.Debug("primitive mode", zap.Stringer("primitive", l.composer.Config().Primitive))
			}

		case EventMouse:
			l.state.MouseMove(ev.X, ev.Y)

		case EventResize:
			l.width, l.height = ev.Width, ev.Height
			l.sink.Resize(ev.Width, ev.Height)
			l.log.Debug("viewport resized", zap.Int("width", ev.Width), zap.Int("height", ev.Height))
		}
	}

	l.state.Tick()

	frame := l.composer.Compose(l.state, l.width, l.height)
	if err := l.sink.Draw(frame); err != nil {
		return false, fmt.Errorf("draw tick %d: %w", l.ticks, err)
	}
	l.ticks++
	return true, nil
}

// Run steps once per tick interval until quit is requested, the sink
// fails, or ctx is cancelled. Cancellation is not an error.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("starting tick loop",
		zap.Duration("interval", l.interval),
		zap.Int("width", l.width),
		zap.Int("height", l.height),
	)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			l.log.Info("tick loop cancelled", zap.Uint64("ticks", l.ticks))
			return nil
		}

		running, err := l.Step()
		if err != nil {
			return err
		}
		if !running {
			l.log.Info("tick loop stopped", zap.Uint64("ticks", l.ticks))
			return nil
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}
}
