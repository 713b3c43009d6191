package math

import "github.com/chewxy/math32"

// Mat4 is a row-major matrix applied to row vectors (v * M). Translation
// lives in row 3, so A.Mul(B) applies A first and then B.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Zero() Mat4 {
	return Mat4{}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	result := Mat4Zero()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return v.MulMat(m)
}

// MulVec3 transforms a point.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec(v.ToVec4(1.0)).ToVec3DivW()
}

// MulDir transforms a direction; translation is ignored.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return m.MulVec(v.ToVec4(0)).ToVec3()
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

// Translation returns the offset stored in row 3.
func (m Mat4) Translation() Vec3 {
	return Vec3{X: m[3][0], Y: m[3][1], Z: m[3][2]}
}

func (m Mat4) ApproxEqual(other Mat4, tol float32) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math32.Abs(m[i][j]-other[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = translation.X
	m[3][1] = translation.Y
	m[3][2] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

// Mat4UniformScale scales all three axes by s.
func Mat4UniformScale(s float32) Mat4 {
	return Mat4Scale(Vec3{s, s, s})
}

func Mat4RotationZ(angle float32) Mat4 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Perspective(fovY, aspect, near, far float32) Mat4 {
	tanHalfFovy := math32.Tan(fovY / 2)

	m := Mat4Zero()
	m[0][0] = 1 / (aspect * tanHalfFovy)
	m[1][1] = 1 / tanHalfFovy
	m[2][2] = -(far + near) / (far - near)
	m[2][3] = -1
	m[3][2] = -(2 * far * near) / (far - near)
	return m
}

func Mat4LookAt(eye, target, up Vec3) Mat4 {
	zAxis := eye.Sub(target).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}

// Inverse returns the inverse of m and false when m is singular, in which
// case the identity is returned. Elimination runs in float64 so composed
// scale/rotate/translate matrices round-trip cleanly.
func (m Mat4) Inverse() (Mat4, bool) {
	var a [4][8]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a[i][j] = float64(m[i][j])
		}
		a[i][4+i] = 1
	}

	for col := 0; col < 4; col++ {
		pivot := col
		for r := col + 1; r < 4; r++ {
			if abs64(a[r][col]) > abs64(a[pivot][col]) {
				pivot = r
			}
		}
		if abs64(a[pivot][col]) < 1e-12 {
			return Mat4Identity(), false
		}
		a[col], a[pivot] = a[pivot], a[col]

		inv := 1 / a[col][col]
		for j := 0; j < 8; j++ {
			a[col][j] *= inv
		}
		for r := 0; r < 4; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			f := a[r][col]
			for j := 0; j < 8; j++ {
				a[r][j] -= f * a[col][j]
			}
		}
	}

	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = float32(a[i][4+j])
		}
	}
	return out, true
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
