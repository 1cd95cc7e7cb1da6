package geometry

import "math"

// Euler holds rotation angles in radians, applied in X, Y, Z order
// (the combined matrix is Rx·Ry·Rz).
type Euler struct {
	X, Y, Z float64
}

// Matrix3 is a row-major 3x3 matrix
type Matrix3 [3][3]float64

// Identity3 returns the identity matrix
func Identity3() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Matrix returns the rotation matrix for the angles
func (e Euler) Matrix() Matrix3 {
	if e.IsZero() {
		return Identity3()
	}
	a, b := math.Cos(e.X), math.Sin(e.X)
	c, d := math.Cos(e.Y), math.Sin(e.Y)
	ce, f := math.Cos(e.Z), math.Sin(e.Z)

	ae, af := a*ce, a*f
	be, bf := b*ce, b*f

	return Matrix3{
		{c * ce, -c * f, d},
		{af + be*d, ae - bf*d, -b * c},
		{bf - ae*d, be + af*d, a * c},
	}
}

// IsZero reports whether no rotation is applied
func (e Euler) IsZero() bool {
	return e.X == 0 && e.Y == 0 && e.Z == 0
}

// Rotate applies the rotation to v
func (e Euler) Rotate(v Vector3) Vector3 {
	if e.IsZero() {
		return v
	}
	return e.Matrix().MulVec(v)
}

// InverseRotate undoes Rotate
func (e Euler) InverseRotate(v Vector3) Vector3 {
	if e.IsZero() {
		return v
	}
	return e.Matrix().Transpose().MulVec(v)
}

// MulVec multiplies the matrix with a column vector
func (m Matrix3) MulVec(v Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transposed matrix, which is the inverse of a rotation
func (m Matrix3) Transpose() Matrix3 {
	var t Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = m[j][i]
		}
	}
	return t
}
