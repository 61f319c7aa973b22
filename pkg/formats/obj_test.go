package formats

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const cubeOBJ = `# unit cube
mtllib cube.mtl
o Cube
v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
vn 0 0 -1
vn 0 0 1
usemtl Material
s off
f 1 2 3
f 1 3 4
f 5 6 7
f 5 7 8
`

func TestParseOBJ_TrianglesOnly(t *testing.T) {
	mesh, err := ParseOBJString(cubeOBJ)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if mesh.VertexCount() != 8 {
		t.Errorf("expected 8 vertices, got %d", mesh.VertexCount())
	}
	if mesh.NormalCount() != 2 {
		t.Errorf("expected 2 normals, got %d", mesh.NormalCount())
	}
	if len(mesh.Indices)%3 != 0 {
		t.Errorf("index count %d is not a multiple of 3", len(mesh.Indices))
	}
	if mesh.TriangleCount() != 4 {
		t.Errorf("expected 4 triangles, got %d", mesh.TriangleCount())
	}
	for i, idx := range mesh.Indices {
		if idx == 0 || int(idx) >= len(mesh.Vertices) {
			t.Errorf("index %d out of range: %d", i, idx)
		}
	}
}

func TestParseOBJ_Placeholders(t *testing.T) {
	mesh, err := ParseOBJString("v 1 2 3\nvn 0 1 0\n")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if len(mesh.Vertices) != 2 || mesh.Vertices[0] != (Vertex{}) {
		t.Errorf("expected placeholder vertex at index 0, got %v", mesh.Vertices)
	}
	if len(mesh.Normals) != 2 || mesh.Normals[0] != (Normal{}) {
		t.Errorf("expected placeholder normal at index 0, got %v", mesh.Normals)
	}
	if mesh.Vertices[1].Position != [3]float32{1, 2, 3} {
		t.Errorf("vertex 1: got %v", mesh.Vertices[1].Position)
	}
	if mesh.Normals[1].Direction != [3]float32{0, 1, 0} {
		t.Errorf("normal 1: got %v", mesh.Normals[1].Direction)
	}
}

func TestParseOBJ_QuadTriangulation(t *testing.T) {
	tests := []struct {
		name string
		face string
		want []uint16
	}{
		{"quad", "f 1 2 3 4", []uint16{1, 2, 3, 1, 3, 4}},
		{"quad with texcoords", "f 1/1 2/2 3/3 4/4", []uint16{1, 2, 3, 1, 3, 4}},
		{"quad with normals", "f 4//1 3//1 2//1 1//1", []uint16{4, 3, 2, 4, 2, 1}},
		{"pentagon truncated", "f 1 2 3 4 5", []uint16{1, 2, 3, 1, 3, 4}},
		{"triangle", "f 3 2 1", []uint16{3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv 0 2 0\nvt 0 0\nvt 1 0\nvt 1 1\nvt 0 1\nvn 0 0 1\n" + tt.face + "\n"
			mesh, err := ParseOBJString(src)
			if err != nil {
				t.Fatalf("ParseOBJ: %v", err)
			}
			if !reflect.DeepEqual(mesh.Indices, tt.want) {
				t.Errorf("indices: got %v, want %v", mesh.Indices, tt.want)
			}
		})
	}
}

func TestParseOBJ_QuadAfterTriangle(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv 2 2 2\nf 5 1 2\nf 1 2 3 4\n"
	mesh, err := ParseOBJString(src)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	want := []uint16{5, 1, 2, 1, 2, 3, 1, 3, 4}
	if !reflect.DeepEqual(mesh.Indices, want) {
		t.Errorf("indices: got %v, want %v", mesh.Indices, want)
	}
}

func TestParseOBJ_Center(t *testing.T) {
	src := `v -2 -1 0
v 2 3 4
v 0 0 1
`
	mesh, err := ParseOBJString(src)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if mesh.Center != [3]float32{0, 1, 2} {
		t.Errorf("center: got %v, want (0, 1, 2)", mesh.Center)
	}
	if mesh.Bounds.Min != [3]float32{-2, -1, 0} || mesh.Bounds.Max != [3]float32{2, 3, 4} {
		t.Errorf("bounds: got %+v", mesh.Bounds)
	}
}

func TestParseOBJ_CenterIgnoresPlaceholder(t *testing.T) {
	// All vertices away from the origin: the zero placeholder must not
	// pull the box towards (0,0,0).
	mesh, err := ParseOBJString("v 10 10 10\nv 12 14 16\n")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.Center != [3]float32{11, 12, 13} {
		t.Errorf("center: got %v, want (11, 12, 13)", mesh.Center)
	}
}

func TestParseOBJ_TextureIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
vt 0.25 0.5
vt 0.75 1
f 1/1 2/2 3
f 3/2 2/1 1
`
	mesh, err := ParseOBJString(src)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if !mesh.HasTexCoords {
		t.Error("expected HasTexCoords")
	}

	// Vertex 1 keeps the first face's coordinate, the second face does not
	// reference a texture for it.
	if got := mesh.Vertices[1].TexCoord; got != [2]float32{0.25, 0.5} {
		t.Errorf("vertex 1 texcoord: got %v", got)
	}
	// Vertex 2 is overwritten by the second face.
	if got := mesh.Vertices[2].TexCoord; got != [2]float32{0.25, 0.5} {
		t.Errorf("vertex 2 texcoord: got %v, want last writer (0.25, 0.5)", got)
	}
	if got := mesh.Vertices[3].TexCoord; got != [2]float32{0.75, 1} {
		t.Errorf("vertex 3 texcoord: got %v", got)
	}
}

func TestParseOBJ_UnresolvedTextureIndex(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nvt 0.5 0.5\nf 1/9 2/0 3/1\n"
	mesh, err := ParseOBJString(src)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.Vertices[1].TexCoord != [2]float32{} || mesh.Vertices[2].TexCoord != [2]float32{} {
		t.Errorf("unresolved texture indices should leave default coords, got %v %v",
			mesh.Vertices[1].TexCoord, mesh.Vertices[2].TexCoord)
	}
	if mesh.Vertices[3].TexCoord != [2]float32{0.5, 0.5} {
		t.Errorf("vertex 3 texcoord: got %v", mesh.Vertices[3].TexCoord)
	}
}

func TestParseOBJ_FallbackTexCoords(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		vertex int
		want   [2]float32
	}{
		{
			name:   "XY widest",
			src:    "v 0 0 0\nv 4 2 1\nv 4 1 0.5\n",
			vertex: 3,
			want:   [2]float32{1, 0.5},
		},
		{
			name:   "YZ widest",
			src:    "v 0 0 0\nv 1 4 8\nv 0.5 1 2\n",
			vertex: 3,
			want:   [2]float32{0.25, 0.25},
		},
		{
			name:   "XZ widest",
			src:    "v 0 0 0\nv 2 0.5 4\nv 1 0.25 3\n",
			vertex: 3,
			want:   [2]float32{0.5, 0.75},
		},
		{
			name:   "cube ties project on XY",
			src:    "v 0 0 0\nv 2 2 2\nv 0.5 1.5 1\n",
			vertex: 3,
			want:   [2]float32{0.25, 0.75},
		},
		{
			name:   "flat axis maps to zero",
			src:    "v 1 1 1\nv 1 1 1\n",
			vertex: 2,
			want:   [2]float32{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := ParseOBJString(tt.src)
			if err != nil {
				t.Fatalf("ParseOBJ: %v", err)
			}
			if mesh.HasTexCoords {
				t.Error("HasTexCoords should be false without vt records")
			}
			got := mesh.Vertices[tt.vertex].TexCoord
			if abs32(got[0]-tt.want[0]) > 1e-6 || abs32(got[1]-tt.want[1]) > 1e-6 {
				t.Errorf("texcoord: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseOBJ_NoFallbackWhenTexCoordsPresent(t *testing.T) {
	// The vt record exists but nothing references it: coordinates stay default.
	mesh, err := ParseOBJString("v 0 0 0\nv 4 4 0\nvt 0.5 0.5\nf 1 2 2\n")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.Vertices[2].TexCoord != [2]float32{} {
		t.Errorf("expected default texcoord, got %v", mesh.Vertices[2].TexCoord)
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		line    int
	}{
		{"non-numeric vertex", "v 1.0 abc 3.0\n", ErrInvalidVertexComponent, 1},
		{"short vertex", "v 1 2\n", ErrWrongComponentCount, 1},
		{"long vertex", "v 1 2 3 4\n", ErrWrongComponentCount, 1},
		{"non-numeric normal", "vn 0 x 1\n", ErrInvalidNormalComponent, 1},
		{"short normal", "vn 0 1\n", ErrWrongComponentCount, 1},
		{"non-numeric texture", "vt 0.5 v\n", ErrInvalidTextureComponent, 1},
		{"long texture", "vt 0.5 0.5 0\n", ErrWrongComponentCount, 1},
		{"face index not a number", "v 0 0 0\nf a 1 1\n", ErrInvalidFaceIndex, 2},
		{"face index zero", "v 0 0 0\nf 0 1 1\n", ErrInvalidFaceIndex, 2},
		{"face index negative", "v 0 0 0\nf -1 1 1\n", ErrInvalidFaceIndex, 2},
		{"face index overflows u16", "v 0 0 0\nf 70000 1 1\n", ErrInvalidFaceIndex, 2},
		{"face index undefined vertex", "v 0 0 0\nf 1 1 2\n", ErrInvalidFaceIndex, 2},
		{"texture index not a number", "v 0 0 0\nf 1/x 1 1\n", ErrInvalidFaceIndex, 2},
		{"first error wins", "v 0 0 0\n\nv 1 q 1\nvn a b c\n", ErrInvalidVertexComponent, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := ParseOBJString(tt.src)
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if mesh != nil {
				t.Error("no mesh should be returned on error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if perr.Line != tt.line {
				t.Errorf("line: got %d, want %d", perr.Line, tt.line)
			}
		})
	}
}

func TestParseOBJ_IgnoresUnknownRecords(t *testing.T) {
	src := "# comment\n\n   \ng group\no object\nusemtl m\ns 1\nl 1 2\nvp 0.1\nv 1 2 3\n"
	mesh, err := ParseOBJString(src)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.VertexCount() != 1 {
		t.Errorf("expected 1 vertex, got %d", mesh.VertexCount())
	}
}

func TestParseOBJ_Whitespace(t *testing.T) {
	src := "v   1\t2    3\r\n  v 4 5 6  \r\nf  1   2 2\r\n"
	mesh, err := ParseOBJString(src)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.VertexCount() != 2 {
		t.Fatalf("expected 2 vertices, got %d", mesh.VertexCount())
	}
	if mesh.Vertices[2].Position != [3]float32{4, 5, 6} {
		t.Errorf("vertex 2: got %v", mesh.Vertices[2].Position)
	}
	if !reflect.DeepEqual(mesh.Indices, []uint16{1, 2, 2}) {
		t.Errorf("indices: got %v", mesh.Indices)
	}
}

func TestParseOBJ_Empty(t *testing.T) {
	mesh, err := ParseOBJ(nil)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.VertexCount() != 0 || len(mesh.Indices) != 0 {
		t.Errorf("expected empty mesh, got %d vertices %d indices", mesh.VertexCount(), len(mesh.Indices))
	}
	if mesh.Center != [3]float32{} {
		t.Errorf("empty mesh center should be zero, got %v", mesh.Center)
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.obj")
	if err := os.WriteFile(path, []byte(cubeOBJ), 0644); err != nil {
		t.Fatalf("failed to write test obj: %v", err)
	}

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.VertexCount() != 8 {
		t.Errorf("expected 8 vertices, got %d", mesh.VertexCount())
	}
	if mesh.Center != [3]float32{0, 0, 0} {
		t.Errorf("center: got %v", mesh.Center)
	}
}

func TestLoadOBJMissing(t *testing.T) {
	_, err := LoadOBJ("/nonexistent/path/model.obj")
	if err == nil {
		t.Fatal("expected error loading missing file, got nil")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		t.Error("I/O errors must not be reported as parse errors")
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestLoadOBJ_Testdata(t *testing.T) {
	tests := []struct {
		file      string
		vertices  int
		triangles int
		hasUV     bool
		wantErr   error
	}{
		{file: "quad.obj", vertices: 4, triangles: 2, hasUV: true},
		{file: "triangle_crlf.obj", vertices: 3, triangles: 1, hasUV: false},
		{file: "broken.obj", wantErr: ErrInvalidVertexComponent},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			mesh, err := LoadOBJ(filepath.Join("testdata", tt.file))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				var perr *ParseError
				if !errors.As(err, &perr) || perr.Line != 3 {
					t.Errorf("expected parse error on line 3, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadOBJ: %v", err)
			}
			if mesh.VertexCount() != tt.vertices {
				t.Errorf("vertices: got %d, want %d", mesh.VertexCount(), tt.vertices)
			}
			if mesh.TriangleCount() != tt.triangles {
				t.Errorf("triangles: got %d, want %d", mesh.TriangleCount(), tt.triangles)
			}
			if mesh.HasTexCoords != tt.hasUV {
				t.Errorf("HasTexCoords: got %v, want %v", mesh.HasTexCoords, tt.hasUV)
			}
		})
	}
}
