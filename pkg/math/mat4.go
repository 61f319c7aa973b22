package math

import "math"

// Vec4 is a 4-component row of a matrix or a homogeneous point.
type Vec4 [4]float32

// Mat4 is a 4x4 matrix stored as four row vectors. Points are row vectors
// multiplied on the left (p' = p * M), so translation lives in the last row:
//
//	[x0 x1 x2 0]
//	[y0 y1 y2 0]
//	[z0 z1 z2 0]
//	[tx ty tz 1]
//
// The memory layout is what OpenGL expects for a column-major mat4 with
// column vectors, so a Mat4 can be uploaded without transposing.
type Mat4 [4]Vec4

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns an identity matrix whose last row is (t.X, t.Y, t.Z, 1).
func Translation(t Vec3) Mat4 {
	m := Identity()
	m[3] = Vec4{t.X, t.Y, t.Z, 1}
	return m
}

// RotationAxis returns a right-handed rotation about a principal axis.
// angle is in radians.
func RotationAxis(axis Axis, angle float32) Mat4 {
	switch axis {
	case AxisX:
		return RotateX(angle)
	case AxisY:
		return RotateY(angle)
	case AxisZ:
		return RotateZ(angle)
	default:
		return Identity()
	}
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float32) Mat4 {
	c, s := sincos(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotateY(angle float32) Mat4 {
	c, s := sincos(angle)
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ returns a rotation matrix around the Z axis.
// angle is in radians.
func RotateZ(angle float32) Mat4 {
	c, s := sincos(angle)
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func sincos(angle float32) (c, s float32) {
	sn, cs := math.Sincos(float64(angle))
	return float32(cs), float32(sn)
}

// Mul returns the row-major product m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			result[i][j] = m[i][0]*other[0][j] +
				m[i][1]*other[1][j] +
				m[i][2]*other[2][j] +
				m[i][3]*other[3][j]
		}
	}
	return result
}

// Rotate composes m with the axis rotations of mode, each by angle. Later
// axes are multiplied on the right. An invalid mode returns m unchanged.
func (m Mat4) Rotate(mode RotationMode, angle float32) Mat4 {
	for _, axis := range mode.Axes() {
		m = m.Mul(RotationAxis(axis, angle))
	}
	return m
}

// Translate adds by to the translation row. It does not replace the
// existing translation.
func (m Mat4) Translate(by Vec3) Mat4 {
	m[3] = Vec4{m[3][0] + by.X, m[3][1] + by.Y, m[3][2] + by.Z, 1}
	return m
}

// LookTo returns a view matrix for a camera at eye facing along direction.
// direction is a vector, not a target point. The basis is
// f = normalize(direction), s = normalize(up x f), u = f x s.
func LookTo(eye, direction, up Vec3) Mat4 {
	f := direction.Normalize()
	s := up.Cross(f).Normalize()
	u := f.Cross(s)

	return Mat4{
		{s.X, u.X, f.X, 0},
		{s.Y, u.Y, f.Y, 0},
		{s.Z, u.Z, f.Z, 0},
		{-eye.Dot(s), -eye.Dot(u), -eye.Dot(f), 1},
	}
}

// Perspective returns a projection matrix matching LookTo, where the camera
// looks down +Z. fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(fovY)/2.0))
	depth := far - near

	return Mat4{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, (far + near) / depth, 1},
		{0, 0, -(2 * far * near) / depth, 0},
	}
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := p.X*m[0][0] + p.Y*m[1][0] + p.Z*m[2][0] + m[3][0]
	y := p.X*m[0][1] + p.Y*m[1][1] + p.Z*m[2][1] + m[3][1]
	z := p.X*m[0][2] + p.Y*m[1][2] + p.Z*m[2][2] + m[3][2]
	w := p.X*m[0][3] + p.Y*m[1][3] + p.Z*m[2][3] + m[3][3]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Flat returns the 16 elements row after row.
func (m Mat4) Flat() [16]float32 {
	var out [16]float32
	for i := 0; i < 4; i++ {
		copy(out[i*4:], m[i][:])
	}
	return out
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0][0]
}

// ApproxEqual reports whether every element of m and other differs by at
// most eps.
func (m Mat4) ApproxEqual(other Mat4, eps float32) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			d := m[i][j] - other[i][j]
			if d < -eps || d > eps {
				return false
			}
		}
	}
	return true
}
