package scene

import (
	gomath "math"

	"github.com/Faultbox/meshview/pkg/math"
)

// Primitive is how the index buffer is drawn.
type Primitive int

const (
	PrimitiveTriangles Primitive = iota
	PrimitiveLines
)

// Toggle switches between triangles and lines.
func (p Primitive) Toggle() Primitive {
	if p == PrimitiveTriangles {
		return PrimitiveLines
	}
	return PrimitiveTriangles
}

func (p Primitive) String() string {
	if p == PrimitiveLines {
		return "lines"
	}
	return "triangles"
}

// Up is the world up vector used for the view matrix.
var Up = math.Vec3{X: 0, Y: 1, Z: 0}

// RenderConfig is the composer's share of render settings. Primitive is
// kept here rather than in State because switching it means rebuilding a
// GPU-side draw setup, which is the renderer's business.
type RenderConfig struct {
	Primitive  Primitive
	FOVDegrees float32
	Near       float32
	Far        float32
	Light      math.Vec3
}

// DefaultRenderConfig returns a 60 degree, 0.1..1024 perspective with the
// classic (-1, 0.4, 0.9) light.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Primitive:  PrimitiveTriangles,
		FOVDegrees: 60,
		Near:       0.1,
		Far:        1024,
		Light:      math.Vec3{X: -1.0, Y: 0.4, Z: 0.9},
	}
}

// Frame is everything the renderer needs for one draw.
type Frame struct {
	Model      math.Mat4
	View       math.Mat4
	Projection math.Mat4
	Light      math.Vec3
	Color      math.Vec3
	Textured   bool
	Lit        bool
	Primitive  Primitive
}

// Composer turns State into a Frame each tick.
type Composer struct {
	config RenderConfig
}

// NewComposer creates a composer with the given render settings.
func NewComposer(cfg RenderConfig) *Composer {
	return &Composer{config: cfg}
}

// Config returns the current render settings.
func (c *Composer) Config() RenderConfig {
	return c.config
}

// Handle reacts to the signals returned by State.Apply.
func (c *Composer) Handle(sig Signal) {
	if sig == SignalTogglePrimitive {
		c.config.Primitive = c.config.Primitive.Toggle()
	}
}

// ModelMatrix spins the mesh about its own center, then places that center
// at ObjectOffset + Center.
func ModelMatrix(s *State) math.Mat4 {
	return math.Translation(s.Center.Neg()).
		Rotate(s.RotationMode, s.RotationAngle).
		Translate(s.WorldCenter())
}

// ViewMatrix looks from the camera position along the camera direction.
func ViewMatrix(s *State) math.Mat4 {
	return math.LookTo(s.CameraPosition, s.CameraDirection, Up)
}

// Compose builds the frame for a viewport of width x height pixels.
func (c *Composer) Compose(s *State, width, height int) Frame {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	fov := c.config.FOVDegrees * gomath.Pi / 180

	return Frame{
		Model:      ModelMatrix(s),
		View:       ViewMatrix(s),
		Projection: math.Perspective(fov, aspect, c.config.Near, c.config.Far),
		Light:      c.config.Light,
		Color:      s.Color,
		Textured:   s.Textured,
		Lit:        s.Lit,
		Primitive:  c.config.Primitive,
	}
}
