package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Compose(V3(2, 2, 2), Identity3(), V3(1, 2, 3)).Mul(RotateY(0.5))

	for b.Loop() {
		_, _ = m.Inverse()
	}
}

func BenchmarkNormalMatrix(b *testing.B) {
	m := Compose(V3(1, 3, 0.5), Identity3(), V3(1, 2, 3)).Mul(RotateX(0.3))

	for b.Loop() {
		_ = m.NormalMatrix()
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkRotationAxisAngle(b *testing.B) {
	axis := V3(1, 1, 0)

	for b.Loop() {
		_, _ = RotationAxisAngle(axis, 0.7)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	view, _ := LookAt(V3(0, 0, 10), V3(0, 0, 0), V3(0, 1, 0))
	proj := Frustum(-1, 1, -0.75, 0.75, 1, 100)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
