package math3d

import (
	"fmt"
	"math"
)

// RotationTolerance bounds the error accepted by NewRotation.
const RotationTolerance = 1e-6

// Mat3 is a 3x3 matrix stored in column-major order, like Mat4.
//
// | 0 3 6 |
// | 1 4 7 |
// | 2 5 8 |
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromColumns builds a matrix from three column vectors.
func Mat3FromColumns(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
	}
}

// Mat3FromRows builds a matrix from row-major nested slices.
// It fails with ErrDimension unless rows is exactly 3x3.
func Mat3FromRows(rows [][]float64) (Mat3, error) {
	if len(rows) != 3 {
		return Mat3{}, fmt.Errorf("%w: want 3 rows, got %d", ErrDimension, len(rows))
	}
	var m Mat3
	for r, row := range rows {
		if len(row) != 3 {
			return Mat3{}, fmt.Errorf("%w: row %d has %d columns, want 3", ErrDimension, r, len(row))
		}
		for c, v := range row {
			m[r+c*3] = v
		}
	}
	return m, nil
}

// Column returns column i.
func (m Mat3) Column(i int) Vec3 {
	return Vec3{m[i*3], m[i*3+1], m[i*3+2]}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			var sum float64
			for k := range 3 {
				sum += a[row+k*3] * b[k+col*3]
			}
			m[row+col*3] = sum
		}
	}
	return m
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant.
func (m Mat3) Determinant() float64 {
	return m.Column(0).Dot(m.Column(1).Cross(m.Column(2)))
}

// Inverse returns the inverse matrix, or false if m is singular.
func (m Mat3) Inverse() (Mat3, bool) {
	c0, c1, c2 := m.Column(0), m.Column(1), m.Column(2)
	r0 := c1.Cross(c2)
	r1 := c2.Cross(c0)
	r2 := c0.Cross(c1)
	det := c0.Dot(r0)
	if math.Abs(det) < Epsilon {
		return Identity3(), false
	}
	inv := 1 / det
	// Rows of the inverse are the cross products scaled by 1/det.
	return Mat3{
		r0.X * inv, r1.X * inv, r2.X * inv,
		r0.Y * inv, r1.Y * inv, r2.Y * inv,
		r0.Z * inv, r1.Z * inv, r2.Z * inv,
	}, true
}

// IsRotation reports whether the columns of m form an orthonormal,
// right-handed basis within RotationTolerance.
func (m Mat3) IsRotation() bool {
	c0, c1, c2 := m.Column(0), m.Column(1), m.Column(2)
	for _, c := range []Vec3{c0, c1, c2} {
		if math.Abs(c.Len()-1) > RotationTolerance {
			return false
		}
	}
	if math.Abs(c0.Dot(c1)) > RotationTolerance ||
		math.Abs(c0.Dot(c2)) > RotationTolerance ||
		math.Abs(c1.Dot(c2)) > RotationTolerance {
		return false
	}
	return c0.Cross(c1).ApproxEqual(c2, RotationTolerance)
}

// NewRotation validates m as a rotation matrix.
func NewRotation(m Mat3) (Mat3, error) {
	if !m.IsRotation() {
		return Mat3{}, ErrNotRotation
	}
	return m, nil
}

// RotationAxisAngle returns the rotation of angle radians around axis.
// The axis does not need to be normalized, but it must not be zero.
func RotationAxisAngle(axis Vec3, angle float64) (Mat3, error) {
	a, ok := axis.TryNormalize()
	if !ok {
		return Mat3{}, ErrZeroAxis
	}
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := a.X, a.Y, a.Z
	return Mat3{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c,
	}, nil
}
