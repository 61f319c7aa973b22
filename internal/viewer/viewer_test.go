package viewer

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Faultbox/meshview/internal/engine/scene"
	vmath "github.com/Faultbox/meshview/pkg/math"
)

// scriptSource returns one batch of events per poll, then nothing.
type scriptSource struct {
	batches [][]Event
	polls   int
}

func (s *scriptSource) Poll() []Event {
	s.polls++
	if len(s.batches) == 0 {
		return nil
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch
}

type recordSink struct {
	frames  []scene.Frame
	resizes [][2]int
	err     error
	onDraw  func(n int)
}

func (s *recordSink) Draw(frame scene.Frame) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, frame)
	if s.onDraw != nil {
		s.onDraw(len(s.frames))
	}
	return nil
}

func (s *recordSink) Resize(width, height int) {
	s.resizes = append(s.resizes, [2]int{width, height})
}

func newTestLoop(src Source, sink Sink) (*Loop, *scene.State, *scene.Composer) {
	state := scene.NewState(vmath.Vec3{}, vmath.Vec3{X: 1, Y: 1, Z: 1}, scene.DefaultOptions())
	composer := scene.NewComposer(scene.DefaultRenderConfig())
	loop := New(state, composer, src, sink, Options{TickRate: 1000, Width: 800, Height: 600})
	return loop, state, composer
}

func TestNewDefaultTickRate(t *testing.T) {
	loop := New(nil, nil, &scriptSource{}, &recordSink{}, Options{})
	if got, want := loop.Interval(), time.Second/DefaultTickRate; got != want {
		t.Errorf("Interval() = %v, want %v", got, want)
	}
}

func TestStepAppliesCommandsInOrder(t *testing.T) {
	src := &scriptSource{batches: [][]Event{{
		CommandEvent(scene.CommandSpeedUp),
		CommandEvent(scene.CommandObjectRight),
	}}}
	sink := &recordSink{}
	loop, state, _ := newTestLoop(src, sink)

	running, err := loop.Step()
	if err != nil || !running {
		t.Fatalf("Step() = %v, %v; want true, nil", running, err)
	}

	// Speed changed before the translation used it
	if state.ObjectOffset.X != state.Speed {
		t.Errorf("offset.X = %f, want current speed %f", state.ObjectOffset.X, state.Speed)
	}
	if math.Abs(float64(state.Speed-1.1)) > 1e-6 {
		t.Errorf("speed = %f, want 1.1", state.Speed)
	}
	if len(sink.frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(sink.frames))
	}
}

func TestStepTicksRotation(t *testing.T) {
	sink := &recordSink{}
	loop, state, _ := newTestLoop(&scriptSource{}, sink)

	for i := 0; i < 3; i++ {
		if _, err := loop.Step(); err != nil {
			t.Fatal(err)
		}
	}

	want := 3 * scene.DefaultRotationStep
	if math.Abs(float64(state.RotationAngle-want)) > 1e-6 {
		t.Errorf("rotation angle = %f, want %f", state.RotationAngle, want)
	}
	if loop.Ticks() != 3 {
		t.Errorf("Ticks() = %d, want 3", loop.Ticks())
	}
}

func TestStepFrameMatchesComposer(t *testing.T) {
	sink := &recordSink{}
	loop, state, composer := newTestLoop(&scriptSource{}, sink)

	if _, err := loop.Step(); err != nil {
		t.Fatal(err)
	}

	want := composer.Compose(state, 800, 600)
	got := sink.frames[0]
	if !got.Model.ApproxEqual(want.Model, 1e-6) {
		t.Errorf("model mismatch:\n got %v\nwant %v", got.Model, want.Model)
	}
	if !got.View.ApproxEqual(want.View, 1e-6) {
		t.Errorf("view mismatch:\n got %v\nwant %v", got.View, want.View)
	}
	if !got.Projection.ApproxEqual(want.Projection, 1e-6) {
		t.Errorf("projection mismatch:\n got %v\nwant %v", got.Projection, want.Projection)
	}
}

func TestStepQuit(t *testing.T) {
	tests := []struct {
		name  string
		event Event
	}{
		{"escape command", CommandEvent(scene.CommandQuit)},
		{"window close", Event{Kind: EventQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptSource{batches: [][]Event{{
				tt.event,
				CommandEvent(scene.CommandObjectRight),
			}}}
			sink := &recordSink{}
			loop, state, _ := newTestLoop(src, sink)

			running, err := loop.Step()
			if err != nil {
				t.Fatal(err)
			}
			if running {
				t.Error("expected loop to stop")
			}
			if len(sink.frames) != 0 {
				t.Errorf("expected no frame after quit, got %d", len(sink.frames))
			}
			// Events after the quit are not applied
			if state.ObjectOffset.X != 0 {
				t.Errorf("offset.X = %f, want 0", state.ObjectOffset.X)
			}
		})
	}
}

func TestStepTogglePrimitive(t *testing.T) {
	src := &scriptSource{batches: [][]Event{
		{CommandEvent(scene.CommandTogglePrimitive)},
		{CommandEvent(scene.CommandTogglePrimitive)},
	}}
	sink := &recordSink{}
	loop, _, composer := newTestLoop(src, sink)

	loop.Step()
	if sink.frames[0].Primitive != scene.PrimitiveLines {
		t.Errorf("first frame primitive = %v, want lines", sink.frames[0].Primitive)
	}
	if composer.Config().Primitive != scene.PrimitiveLines {
		t.Errorf("composer primitive = %v, want lines", composer.Config().Primitive)
	}

	loop.Step()
	if sink.frames[1].Primitive != scene.PrimitiveTriangles {
		t.Errorf("second frame primitive = %v, want triangles", sink.frames[1].Primitive)
	}
}

func TestStepResize(t *testing.T) {
	src := &scriptSource{batches: [][]Event{{
		{Kind: EventResize, Width: 200, Height: 100},
	}}}
	sink := &recordSink{}
	loop, _, _ := newTestLoop(src, sink)

	loop.Step()

	if len(sink.resizes) != 1 || sink.resizes[0] != [2]int{200, 100} {
		t.Fatalf("resizes = %v, want [[200 100]]", sink.resizes)
	}

	// Projection [1][1] / [0][0] is the aspect ratio
	p := sink.frames[0].Projection
	aspect := p[1][1] / p[0][0]
	if math.Abs(float64(aspect-2)) > 1e-5 {
		t.Errorf("aspect = %f, want 2", aspect)
	}
}

func TestStepMouse(t *testing.T) {
	src := &scriptSource{batches: [][]Event{
		{MouseEvent(100, 100)},
		{MouseEvent(90, 100)},
	}}
	sink := &recordSink{}
	loop, state, _ := newTestLoop(src, sink)

	loop.Step()
	if state.LastMouse != [2]float64{100, 100} {
		t.Fatalf("LastMouse = %v, want [100 100]", state.LastMouse)
	}
	if state.CameraDirection != (vmath.Vec3{X: 0, Y: 0, Z: 1}) {
		t.Fatalf("first sample should not turn the camera, got %v", state.CameraDirection)
	}

	loop.Step()
	// dx = 100 - 90 = 10; X -= 10 * 1 / 100 * 1
	if math.Abs(float64(state.CameraDirection.X+0.1)) > 1e-6 {
		t.Errorf("direction.X = %f, want -0.1", state.CameraDirection.X)
	}
}

func TestStepDrawError(t *testing.T) {
	errGPU := errors.New("context lost")
	sink := &recordSink{err: errGPU}
	loop, _, _ := newTestLoop(&scriptSource{}, sink)

	running, err := loop.Step()
	if running {
		t.Error("expected loop to stop on draw error")
	}
	if !errors.Is(err, errGPU) {
		t.Errorf("expected wrapped draw error, got %v", err)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	src := &scriptSource{batches: [][]Event{
		nil,
		nil,
		{CommandEvent(scene.CommandQuit)},
	}}
	sink := &recordSink{}
	loop, _, _ := newTestLoop(src, sink)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(sink.frames) != 2 {
		t.Errorf("expected 2 frames before quit, got %d", len(sink.frames))
	}
	if src.polls != 3 {
		t.Errorf("expected 3 polls, got %d", src.polls)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordSink{onDraw: func(n int) {
		if n == 5 {
			cancel()
		}
	}}
	loop, _, _ := newTestLoop(&scriptSource{}, sink)

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(sink.frames) != 5 {
		t.Errorf("expected 5 frames, got %d", len(sink.frames))
	}
}

func TestRunDrawError(t *testing.T) {
	errGPU := errors.New("swap failed")
	loop, _, _ := newTestLoop(&scriptSource{}, &recordSink{err: errGPU})

	if err := loop.Run(context.Background()); !errors.Is(err, errGPU) {
		t.Errorf("expected draw error, got %v", err)
	}
}
