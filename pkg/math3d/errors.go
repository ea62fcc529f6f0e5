package math3d

import "errors"

// Epsilon is the tolerance used for degenerate-length and orthonormality checks.
const Epsilon = 1e-9

var (
	// ErrDimension is returned when a matrix is built from the wrong number of values.
	ErrDimension = errors.New("math3d: malformed matrix dimensions")
	// ErrNotRotation is returned when a matrix is not an orthonormal, right-handed basis.
	ErrNotRotation = errors.New("math3d: not a rotation matrix")
	// ErrZeroAxis is returned when a rotation axis has no direction.
	ErrZeroAxis = errors.New("math3d: zero-length rotation axis")
)
