package formats

// FlatNormals returns one normal per vertex slot as x,y,z triples, ready
// for a vertex buffer. Normals are paired with vertices by position in the
// file, so a short normal table is padded with zeros and extra normals are
// dropped.
func (m *Mesh) FlatNormals() []float32 {
	out := make([]float32, len(m.Vertices)*3)
	for i := range m.Vertices {
		if i >= len(m.Normals) {
			break
		}
		d := m.Normals[i].Direction
		copy(out[i*3:], d[:])
	}
	return out
}

// LineIndices turns the triangle list into an edge list for wireframe
// drawing. A trailing partial triangle is ignored.
func (m *Mesh) LineIndices() []uint16 {
	n := len(m.Indices) / 3
	out := make([]uint16, 0, n*6)
	for i := 0; i < n; i++ {
		a, b, c := m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
		out = append(out, a, b, b, c, c, a)
	}
	return out
}
