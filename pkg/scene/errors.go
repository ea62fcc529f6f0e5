package scene

import "errors"

var (
	// ErrHeightMapShape is returned when a height map is not a rectangular grid
	// of at least 2x2 samples.
	ErrHeightMapShape = errors.New("scene: height map must be a rectangular grid of at least 2x2 samples")
	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("scene: invalid color")
	// ErrVertexIndex is returned when a vertex index is out of range.
	ErrVertexIndex = errors.New("scene: vertex index out of range")
	// ErrInvalidShape is returned when a shape has parameters that cannot
	// produce geometry.
	ErrInvalidShape = errors.New("scene: invalid shape parameters")
)
