// Package scene holds the viewer's mutable scene state, the input commands
// that change it, and the composer that turns it into per-frame matrices.
package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

// Speed limits. Speed is the distance moved per translation command and
// also scales mouse look.
const (
	SpeedStep float32 = 0.1
	MinSpeed  float32 = 0.1
	MaxSpeed  float32 = 1000.0
)

// ColorStep is the increment of a colour-cycle command.
const ColorStep float32 = 0.1

// DefaultRotationStep is the per-tick rotation increment in radians.
const DefaultRotationStep float32 = 0.005

// Options sets the initial state values that come from configuration.
type Options struct {
	Speed        float32
	RotationStep float32
	Rotating     bool
	Textured     bool
	Lit          bool
	Color        math.Vec3
}

// DefaultOptions returns the viewer defaults.
func DefaultOptions() Options {
	return Options{
		Speed:        1.0,
		RotationStep: DefaultRotationStep,
		Rotating:     true,
		Textured:     false,
		Lit:          true,
		Color:        math.Vec3{X: 0, Y: 1, Z: 0},
	}
}

// State is the single mutable entity of the viewer. It is owned by the tick
// loop and only changed between frames, so it carries no locking.
type State struct {
	ObjectOffset  math.Vec3
	RotationAngle float32
	RotationMode  math.RotationMode
	Rotating      bool

	CameraPosition  math.Vec3
	CameraDirection math.Vec3

	Speed    float32
	Textured bool
	Lit      bool
	Color    math.Vec3

	// LastMouse is the previous cursor position; (0,0) means no sample yet.
	LastMouse [2]float64

	// Center is the mesh's bounding-box center in object space.
	Center math.Vec3

	rotationStep float32
}

// NewState places the object at the origin and the camera in front of it,
// looking down +Z at the mesh center from a distance of twice its largest
// extent.
func NewState(center, extent math.Vec3, opts Options) *State {
	distance := 2 * extent.MaxComponent()
	if distance < 1 {
		distance = 1
	}
	speed := opts.Speed
	if speed < MinSpeed || speed > MaxSpeed {
		speed = DefaultOptions().Speed
	}

	return &State{
		RotationMode:    math.RotateModeY,
		Rotating:        opts.Rotating,
		CameraPosition:  center.Sub(math.Vec3{Z: distance}),
		CameraDirection: math.Vec3{X: 0, Y: 0, Z: 1},
		Speed:           speed,
		Textured:        opts.Textured,
		Lit:             opts.Lit,
		Color:           opts.Color,
		Center:          center,
		rotationStep:    opts.RotationStep,
	}
}

// Tick advances the automatic rotation. Call once per frame before
// composing.
func (s *State) Tick() {
	if s.Rotating {
		s.RotationAngle += s.rotationStep
	}
}

// Apply performs one discrete command. Effects that do not belong to the
// scene state (quitting, primitive mode) are returned as a Signal.
func (s *State) Apply(cmd Command) Signal {
	switch cmd {
	case CommandQuit:
		return SignalQuit
	case CommandTogglePrimitive:
		return SignalTogglePrimitive

	case CommandSpeedUp:
		if s.Speed < MaxSpeed {
			s.Speed = min(s.Speed+SpeedStep, MaxSpeed)
		}
	case CommandSpeedDown:
		if s.Speed-SpeedStep > MinSpeed {
			s.Speed -= SpeedStep
		}

	case CommandCycleRotation:
		s.RotationMode = s.RotationMode.Next()
	case CommandToggleRotation:
		s.Rotating = !s.Rotating

	case CommandObjectRight:
		s.ObjectOffset.X += s.Speed
	case CommandObjectLeft:
		s.ObjectOffset.X -= s.Speed
	case CommandObjectUp:
		s.ObjectOffset.Y += s.Speed
	case CommandObjectDown:
		s.ObjectOffset.Y -= s.Speed
	case CommandObjectForward:
		s.ObjectOffset.Z += s.Speed
	case CommandObjectBackward:
		s.ObjectOffset.Z -= s.Speed

	case CommandCameraRight:
		s.CameraPosition.X += s.Speed
	case CommandCameraLeft:
		s.CameraPosition.X -= s.Speed
	case CommandCameraUp:
		s.CameraPosition.Y += s.Speed
	case CommandCameraDown:
		s.CameraPosition.Y -= s.Speed
	case CommandCameraForward:
		s.CameraPosition.Z += s.Speed
	case CommandCameraBackward:
		s.CameraPosition.Z -= s.Speed

	case CommandToggleTexture:
		s.Textured = !s.Textured
	case CommandToggleLight:
		s.Lit = !s.Lit
	case CommandCycleRed:
		s.Color.X = cycleChannel(s.Color.X)
	case CommandCycleGreen:
		s.Color.Y = cycleChannel(s.Color.Y)
	case CommandCycleBlue:
		s.Color.Z = cycleChannel(s.Color.Z)

	case CommandRecenter:
		s.CameraDirection = s.WorldCenter().Sub(s.CameraPosition)

	default:
		return SignalNone
	}

	logger.Debug("scene command",
		zap.Stringer("command", cmd),
		zap.Float32("speed", s.Speed),
		zap.Stringer("rotation_mode", s.RotationMode),
	)
	return SignalNone
}

// MouseMove turns the camera from an absolute cursor position. The first
// sample only records the position.
func (s *State) MouseMove(x, y float64) {
	if s.LastMouse == [2]float64{0, 0} {
		s.LastMouse = [2]float64{x, y}
		return
	}

	dx := float32(s.LastMouse[0] - x)
	dy := float32(s.LastMouse[1] - y)

	// Keep vertical look consistent whether the camera faces +Z or -Z.
	flip := float32(1)
	if s.CameraDirection.Z > 0 {
		flip = -1
	}

	s.CameraDirection.X -= dx * s.Speed / 100 * s.CameraDirection.Z
	s.CameraDirection.Y -= dy * s.Speed / 100 * s.CameraDirection.Z * flip
	s.LastMouse = [2]float64{x, y}
}

// WorldCenter returns where the mesh center currently is in world space.
func (s *State) WorldCenter() math.Vec3 {
	return s.ObjectOffset.Add(s.Center)
}

func cycleChannel(c float32) float32 {
	c += ColorStep
	if c > 1+ColorStep/2 {
		return 0
	}
	return c
}
