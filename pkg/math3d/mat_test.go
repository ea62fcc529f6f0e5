package math3d

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestRotationAxisAngleIsRotation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := range 500 {
		axis := V3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
		if axis.Len() < 1e-3 {
			continue
		}
		angle := (rng.Float64()*2 - 1) * 4 * math.Pi

		r, err := RotationAxisAngle(axis, angle)
		if err != nil {
			t.Fatalf("case %d: RotationAxisAngle() error = %v", i, err)
		}
		c0, c1, c2 := r.Column(0), r.Column(1), r.Column(2)
		for j, c := range []Vec3{c0, c1, c2} {
			if math.Abs(c.Len()-1) > 1e-9 {
				t.Fatalf("case %d: column %d length = %v", i, j, c.Len())
			}
		}
		if math.Abs(c0.Dot(c1)) > 1e-9 || math.Abs(c0.Dot(c2)) > 1e-9 || math.Abs(c1.Dot(c2)) > 1e-9 {
			t.Fatalf("case %d: columns not orthogonal", i)
		}
		if !c0.Cross(c1).ApproxEqual(c2, 1e-9) {
			t.Fatalf("case %d: basis not right-handed", i)
		}
		if _, err := NewRotation(r); err != nil {
			t.Fatalf("case %d: NewRotation() rejected a rotation: %v", i, err)
		}

		// The axis itself is invariant.
		n := axis.Normalize()
		if got := r.MulVec3(n); !got.ApproxEqual(n, 1e-9) {
			t.Fatalf("case %d: axis moved to %v", i, got)
		}
	}
}

func TestNewRotationRejects(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
	}{
		{"scaled", Mat3FromColumns(V3(2, 0, 0), V3(0, 1, 0), V3(0, 0, 1))},
		{"sheared", Mat3FromColumns(V3(1, 0, 0), V3(0.3, 1, 0), V3(0, 0, 1))},
		{"reflection", Mat3FromColumns(V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, -1))},
		{"zero", Mat3{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewRotation(tc.m); !errors.Is(err, ErrNotRotation) {
				t.Errorf("NewRotation() error = %v, want ErrNotRotation", err)
			}
		})
	}
}

func TestRotationAxisAngleZeroAxis(t *testing.T) {
	if _, err := RotationAxisAngle(Zero3(), 1); !errors.Is(err, ErrZeroAxis) {
		t.Errorf("error = %v, want ErrZeroAxis", err)
	}
}

func TestMatrixDimensions(t *testing.T) {
	if _, err := Mat3FromRows([][]float64{{1, 0, 0}, {0, 1}, {0, 0, 1}}); !errors.Is(err, ErrDimension) {
		t.Errorf("Mat3FromRows() error = %v, want ErrDimension", err)
	}
	if _, err := Mat3FromRows([][]float64{{1, 0, 0}}); !errors.Is(err, ErrDimension) {
		t.Errorf("Mat3FromRows() error = %v, want ErrDimension", err)
	}
	if _, err := Mat4FromRowMajor(make([]float64, 15)); !errors.Is(err, ErrDimension) {
		t.Errorf("Mat4FromRowMajor() error = %v, want ErrDimension", err)
	}

	m, err := Mat4FromRowMajor([]float64{
		1, 0, 0, 5,
		0, 1, 0, 6,
		0, 0, 1, 7,
		0, 0, 0, 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !m.ApproxEqual(Translate(V3(5, 6, 7)), tol) {
		t.Errorf("Mat4FromRowMajor() = %v, want translation (5,6,7)", m)
	}
}

func TestTranslationRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for range 100 {
		v := V3(rng.NormFloat64()*10, rng.NormFloat64()*10, rng.NormFloat64()*10)
		p := V3(rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64())

		got := Translate(v.Negate()).Mul(Translate(v)).MulPoint(p)
		if !got.ApproxEqual(p, 1e-9) {
			t.Fatalf("round trip of %v by %v = %v", p, v, got)
		}
	}
}

func TestComposeOrder(t *testing.T) {
	rot, err := RotationAxisAngle(UnitZ(), math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	m := Compose(V3(2, 2, 2), rot, V3(1, 0, 0))

	// Scale to (2,0,0), rotate to (0,2,0), then translate.
	if got := m.MulPoint(V3(1, 0, 0)); !got.ApproxEqual(V3(1, 2, 0), 1e-9) {
		t.Errorf("Compose point = %v, want (1, 2, 0)", got)
	}
	// Directions ignore the translation.
	if got := m.MulDir(V3(1, 0, 0)); !got.ApproxEqual(V3(0, 2, 0), 1e-9) {
		t.Errorf("Compose direction = %v, want (0, 2, 0)", got)
	}
}

func TestMat4Inverse(t *testing.T) {
	rot, _ := RotationAxisAngle(V3(1, 2, 3), 0.8)
	m := Compose(V3(2, 0.5, 3), rot, V3(-4, 1, 9))

	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("Inverse() reported singular matrix")
	}
	if got := m.Mul(inv); !got.ApproxEqual(Identity(), 1e-9) {
		t.Errorf("m * m^-1 = %v, want identity", got)
	}

	if _, ok := Scale(V3(1, 0, 1)).Inverse(); ok {
		t.Error("Inverse() of a singular matrix should fail")
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	m := Scale(V3(2, 1, 1))
	tangent := V3(1, 1, 0)
	normal := V3(1, -1, 0)

	nt := m.MulDir(tangent)
	nn := m.NormalMatrix().MulVec3(normal)
	if math.Abs(nt.Dot(nn)) > 1e-9 {
		t.Errorf("transformed normal %v not perpendicular to %v", nn, nt)
	}
}

func TestLookAt(t *testing.T) {
	view, ok := LookAt(V3(0, 0, 10), Zero3(), UnitY())
	if !ok {
		t.Fatal("LookAt() failed")
	}
	// The target lands on the negative view axis.
	if got := view.MulPoint(Zero3()); !got.ApproxEqual(V3(0, 0, -10), 1e-9) {
		t.Errorf("target in view space = %v, want (0, 0, -10)", got)
	}

	if _, ok := LookAt(V3(1, 1, 1), V3(1, 1, 1), UnitY()); ok {
		t.Error("LookAt() with eye == center should fail")
	}
	if _, ok := LookAt(V3(0, 5, 0), Zero3(), UnitY()); ok {
		t.Error("LookAt() with up parallel to the view direction should fail")
	}
}

func TestFrustumMatchesPerspective(t *testing.T) {
	fovy, aspect, near, far := math.Pi/3, 1.5, 0.5, 50.0
	top := near * math.Tan(fovy/2)
	right := top * aspect

	got := Frustum(-right, right, -top, top, near, far)
	want := Perspective(fovy, aspect, near, far)
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("Frustum() = %v, want %v", got, want)
	}

	// Near and far planes map to -1 and +1.
	for _, tc := range []struct {
		z, want float64
	}{{-near, -1}, {-far, 1}} {
		p, _ := got.MulVec4(V4(0, 0, tc.z, 1)).PerspectiveDivide()
		if math.Abs(p.Z-tc.want) > 1e-9 {
			t.Errorf("ndc z at %v = %v, want %v", tc.z, p.Z, tc.want)
		}
	}
}

func TestOrthographicMapsCorners(t *testing.T) {
	m := Orthographic(-2, 2, -1, 1, 1, 11)
	p, ok := m.MulVec4(V4(2, -1, -11, 1)).PerspectiveDivide()
	if !ok || !p.ApproxEqual(V3(1, -1, 1), 1e-9) {
		t.Errorf("corner = %v, want (1, -1, 1)", p)
	}
}
