package formats

// computeBounds returns the bounding box of the given vertices, or a zero
// box when there are none.
func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}

	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			if v.Position[axis] < b.Min[axis] {
				b.Min[axis] = v.Position[axis]
			}
			if v.Position[axis] > b.Max[axis] {
				b.Max[axis] = v.Position[axis]
			}
		}
	}
	return b
}

// projectionAxes picks the two axes with the largest extents, in axis order.
// On ties Z is dropped first, then Y, so a cube projects onto XY.
func projectionAxes(extent [3]float32) (u, v int) {
	drop := 2
	for _, axis := range []int{1, 0} {
		if extent[axis] < extent[drop] {
			drop = axis
		}
	}
	switch drop {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// projectTexCoords maps each position onto the widest face of the bounding
// box, normalized to [0,1].
func projectTexCoords(vertices []Vertex, b Bounds) {
	extent := b.Extent()
	u, v := projectionAxes(extent)

	for i := range vertices {
		pos := vertices[i].Position
		vertices[i].TexCoord = [2]float32{
			normalize(pos[u], b.Min[u], extent[u]),
			normalize(pos[v], b.Min[v], extent[v]),
		}
	}
}

func normalize(x, lo, extent float32) float32 {
	if extent == 0 {
		return 0
	}
	return (x - lo) / extent
}
