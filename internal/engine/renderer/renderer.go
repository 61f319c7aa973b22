// Package renderer draws a parsed mesh with OpenGL from composed frames.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/formats"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
}

// Renderer uploads one mesh and draws it once per frame. It implements
// viewer.Sink together with a presenter that swaps buffers.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	vao       uint32
	vertexVBO uint32 // position + uv, interleaved
	normalVBO uint32
	triEBO    uint32
	lineEBO   uint32

	triCount  int32
	lineCount int32
}

// New creates a renderer. The GL context must already be current.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.New(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create mesh shader: %w", err)
	}

	return r, nil
}

// Upload replaces the GPU copy of the mesh. Slot 0 sentinels are uploaded
// too so face indices can be used unchanged.
func (r *Renderer) Upload(mesh *formats.Mesh) error {
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return errors.New("mesh has nothing to draw")
	}
	r.release()

	vertices := make([]float32, 0, len(mesh.Vertices)*5)
	for _, v := range mesh.Vertices {
		vertices = append(vertices, v.Position[0], v.Position[1], v.Position[2], v.TexCoord[0], v.TexCoord[1])
	}
	normals := mesh.FlatNormals()
	lines := mesh.LineIndices()

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vertexVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vertexVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	// Position (location = 0), uv (location = 2)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, 5*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(2)

	// Normal (location = 1)
	gl.GenBuffers(1, &r.normalVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.normalVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(normals)*4, gl.Ptr(normals), gl.STATIC_DRAW)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &r.triEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.triEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*2, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	r.triCount = int32(len(mesh.Indices))

	gl.GenBuffers(1, &r.lineEBO)
	if len(lines) > 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.lineEBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(lines)*2, gl.Ptr(lines), gl.STATIC_DRAW)
	}
	r.lineCount = int32(len(lines))

	// The VAO keeps the element binding, so rebind the triangle list last.
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.triEBO)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int32("line_indices", r.lineCount),
	)
	return nil
}

// Draw clears the framebuffer and draws the mesh with the frame's
// matrices and flags.
func (r *Renderer) Draw(frame scene.Frame) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.vao == 0 {
		return nil
	}

	r.program.Use()
	r.program.SetMat4("model", frame.Model)
	r.program.SetMat4("view", frame.View)
	r.program.SetMat4("perspective", frame.Projection)
	r.program.SetVec3("u_light", frame.Light)
	r.program.SetVec3("u_color", frame.Color)
	r.program.SetBool("u_textured", frame.Textured)
	r.program.SetBool("u_lit", frame.Lit)

	gl.BindVertexArray(r.vao)
	switch frame.Primitive {
	case scene.PrimitiveLines:
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.lineEBO)
		gl.DrawElements(gl.LINES, r.lineCount, gl.UNSIGNED_SHORT, nil)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.triEBO)
	default:
		gl.DrawElements(gl.TRIANGLES, r.triCount, gl.UNSIGNED_SHORT, nil)
	}
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Close frees all GL resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.release()
	if r.program != nil {
		r.program.Delete()
	}
}

func (r *Renderer) release() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	for _, buf := range []*uint32{&r.vertexVBO, &r.normalVBO, &r.triEBO, &r.lineEBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
	r.triCount, r.lineCount = 0, 0
}
