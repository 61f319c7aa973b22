package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OBJ format errors. A *ParseError wraps exactly one of these.
var (
	ErrInvalidVertexComponent  = errors.New("invalid vertex component")
	ErrInvalidNormalComponent  = errors.New("invalid normal component")
	ErrInvalidTextureComponent = errors.New("invalid texture component")
	ErrWrongComponentCount     = errors.New("wrong component count")
	ErrInvalidFaceIndex        = errors.New("invalid face index")
)

// maxFaceRefs is the number of vertex references read from a face record.
// Anything past the fourth is dropped.
const maxFaceRefs = 4

// ParseError reports the first malformed record of an OBJ file.
type ParseError struct {
	Line   int    // 1-based line number
	Record string // record keyword ("v", "vn", "vt", "f")
	Field  string // offending field, empty for count errors
	Err    error  // one of the ErrInvalid*/ErrWrongComponentCount sentinels
	Cause  error  // underlying strconv error, if any
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("obj line %d: %s record: %v", e.Line, e.Record, e.Err)
	if e.Field != "" {
		msg += fmt.Sprintf(" %q", e.Field)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the sentinel so errors.Is works on the taxonomy.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Vertex is a mesh vertex: position plus texture coordinate.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
}

// Normal is an entry of the normal table.
type Normal struct {
	Direction [3]float32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Extent returns the box size along each axis.
func (b Bounds) Extent() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Mesh is a parsed OBJ model.
//
// Vertices[0] and Normals[0] are unused placeholders so the 1-based indices
// of the file can be used directly. Indices therefore never contain 0.
type Mesh struct {
	Vertices []Vertex
	Normals  []Normal
	Indices  []uint16
	Center   [3]float32
	Bounds   Bounds

	// HasTexCoords is false when the file had no vt records and the
	// texture coordinates were projected from the bounding box.
	HasTexCoords bool
}

// VertexCount returns the number of real vertices (placeholder excluded).
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) - 1
}

// NormalCount returns the number of real normals (placeholder excluded).
func (m *Mesh) NormalCount() int {
	return len(m.Normals) - 1
}

// TriangleCount returns the number of complete triangles in Indices.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// objParser holds the tables being built while reading an OBJ file.
type objParser struct {
	mesh      *Mesh
	texCoords [][2]float32
	line      int
}

// ParseOBJ parses OBJ text. Unknown record types (comments, groups,
// materials...) are skipped. The first malformed record aborts parsing.
func ParseOBJ(data []byte) (*Mesh, error) {
	p := &objParser{
		mesh: &Mesh{
			Vertices: []Vertex{{}},
			Normals:  []Normal{{}},
		},
		texCoords: [][2]float32{{}},
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		p.line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := p.parseRecord(fields[0], fields[1:]); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj data: %w", err)
	}

	p.finish()
	return p.mesh, nil
}

// ParseOBJString is ParseOBJ for string input.
func ParseOBJString(text string) (*Mesh, error) {
	return ParseOBJ([]byte(text))
}

func (p *objParser) parseRecord(kind string, args []string) error {
	switch kind {
	case "v":
		pos, err := p.parseFloats(kind, args, 3, ErrInvalidVertexComponent)
		if err != nil {
			return err
		}
		p.mesh.Vertices = append(p.mesh.Vertices, Vertex{
			Position: [3]float32{pos[0], pos[1], pos[2]},
		})

	case "vn":
		dir, err := p.parseFloats(kind, args, 3, ErrInvalidNormalComponent)
		if err != nil {
			return err
		}
		p.mesh.Normals = append(p.mesh.Normals, Normal{
			Direction: [3]float32{dir[0], dir[1], dir[2]},
		})

	case "vt":
		uv, err := p.parseFloats(kind, args, 2, ErrInvalidTextureComponent)
		if err != nil {
			return err
		}
		p.texCoords = append(p.texCoords, [2]float32{uv[0], uv[1]})
		p.mesh.HasTexCoords = true

	case "f":
		return p.parseFace(args)
	}
	return nil
}

// parseFloats parses every field as float32, then checks the count.
func (p *objParser) parseFloats(kind string, args []string, want int, invalid error) ([]float32, error) {
	values := make([]float32, 0, len(args))
	for _, field := range args {
		f, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return nil, &ParseError{Line: p.line, Record: kind, Field: field, Err: invalid, Cause: err}
		}
		values = append(values, float32(f))
	}
	if len(values) != want {
		return nil, &ParseError{
			Line:   p.line,
			Record: kind,
			Err:    ErrWrongComponentCount,
			Cause:  fmt.Errorf("got %d, want %d", len(values), want),
		}
	}
	return values, nil
}

// parseFace reads up to four "i", "i/t" or "i/t/n" references. A quad is
// split by popping its last index and pushing (first, third, last), which
// yields the triangles (1,2,3) and (1,3,4).
func (p *objParser) parseFace(args []string) error {
	if len(args) > maxFaceRefs {
		args = args[:maxFaceRefs]
	}

	for i, ref := range args {
		parts := strings.Split(ref, "/")

		vi, err := strconv.ParseUint(parts[0], 10, 16)
		if err != nil {
			return p.faceError(parts[0], err)
		}
		if vi == 0 || int(vi) >= len(p.mesh.Vertices) {
			return p.faceError(parts[0], fmt.Errorf("vertex %d not defined (have %d)", vi, p.mesh.VertexCount()))
		}

		if len(parts) > 1 && parts[1] != "" {
			ti, err := strconv.ParseUint(parts[1], 10, 32)
			if err != nil {
				return p.faceError(parts[1], err)
			}
			// Last face to reference a vertex decides its texture coordinate.
			if ti > 0 && int(ti) < len(p.texCoords) {
				p.mesh.Vertices[vi].TexCoord = p.texCoords[ti]
			}
		}

		p.mesh.Indices = append(p.mesh.Indices, uint16(vi))

		if i == 3 {
			idx := p.mesh.Indices
			n := len(idx)
			last := idx[n-1]
			idx = idx[:n-1]
			p.mesh.Indices = append(idx, idx[n-4], idx[n-2], last)
		}
	}
	return nil
}

func (p *objParser) faceError(field string, cause error) error {
	return &ParseError{Line: p.line, Record: "f", Field: field, Err: ErrInvalidFaceIndex, Cause: cause}
}

// finish computes bounds and center, and projects texture coordinates when
// the file had none.
func (p *objParser) finish() {
	m := p.mesh
	m.Bounds = computeBounds(m.Vertices[1:])
	m.Center = m.Bounds.Center()
	if !m.HasTexCoords {
		projectTexCoords(m.Vertices[1:], m.Bounds)
	}
}
