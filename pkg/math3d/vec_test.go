package math3d

import (
	"math"
	"testing"
)

const tol = 1e-9

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name   string
		in     Vec3
		want   Vec3
		wantOK bool
	}{
		{"unit x", V3(5, 0, 0), V3(1, 0, 0), true},
		{"3-4-0", V3(3, 4, 0), V3(0.6, 0.8, 0), true},
		{"zero", Zero3(), Zero3(), false},
		{"tiny", V3(1e-12, 0, 0), Zero3(), false},
		{"nan", V3(math.NaN(), 0, 0), Zero3(), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.in.TryNormalize()
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !got.ApproxEqual(tc.want, tol) {
				t.Errorf("TryNormalize() = %v, want %v", got, tc.want)
			}
			if n := tc.in.Normalize(); !n.ApproxEqual(tc.want, tol) {
				t.Errorf("Normalize() = %v, want %v", n, tc.want)
			}
		})
	}
}

func TestVec3CrossRightHanded(t *testing.T) {
	if got := UnitX().Cross(UnitY()); !got.ApproxEqual(UnitZ(), tol) {
		t.Errorf("X × Y = %v, want Z", got)
	}
	if got := UnitY().Cross(UnitZ()); !got.ApproxEqual(UnitX(), tol) {
		t.Errorf("Y × Z = %v, want X", got)
	}
	a, b := V3(1, 2, 3), V3(-4, 0.5, 2)
	c := a.Cross(b)
	if math.Abs(c.Dot(a)) > tol || math.Abs(c.Dot(b)) > tol {
		t.Errorf("cross product %v not perpendicular to operands", c)
	}
}

func TestVec4PerspectiveDivide(t *testing.T) {
	p, ok := V4(2, 4, 6, 2).PerspectiveDivide()
	if !ok || !p.ApproxEqual(V3(1, 2, 3), tol) {
		t.Errorf("PerspectiveDivide() = %v, %v; want (1,2,3), true", p, ok)
	}
	if _, ok := V4(1, 1, 1, 0).PerspectiveDivide(); ok {
		t.Error("PerspectiveDivide() with w=0 should fail")
	}
}

func TestVec4InsideClip(t *testing.T) {
	tests := []struct {
		name string
		v    Vec4
		want bool
	}{
		{"center", V4(0, 0, 0, 1), true},
		{"on boundary", V4(1, -1, 1, 1), true},
		{"outside x", V4(1.5, 0, 0, 1), false},
		{"behind", V4(0, 0, 0, -1), false},
		{"far", V4(0, 0, 2, 1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.InsideClip(); got != tc.want {
				t.Errorf("InsideClip(%v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestBox(t *testing.T) {
	b := BoxOf(V3(-1, 2, 0), V3(1, -2, 4), V3(0, 0, 1))

	if !b.Min.ApproxEqual(V3(-1, -2, 0), tol) || !b.Max.ApproxEqual(V3(1, 2, 4), tol) {
		t.Fatalf("BoxOf = %+v", b)
	}
	if c := b.Center(); !c.ApproxEqual(V3(0, 0, 2), tol) {
		t.Errorf("Center() = %v", c)
	}
	if r := b.Radius(); math.Abs(r-3) > tol {
		t.Errorf("Radius() = %v, want 3", r)
	}
	if !b.Contains(V3(1, 2, 4)) || b.Contains(V3(0, 0, 5)) {
		t.Error("Contains() mismatch")
	}
	if !EmptyBox().IsEmpty() {
		t.Error("EmptyBox() should be empty")
	}
	if got := EmptyBox().Union(b); got != b {
		t.Errorf("empty ∪ b = %+v, want %+v", got, b)
	}

	moved := b.Transform(Translate(V3(10, 0, 0)))
	if !moved.Min.ApproxEqual(V3(9, -2, 0), tol) || !moved.Max.ApproxEqual(V3(11, 2, 4), tol) {
		t.Errorf("Transform() = %+v", moved)
	}

	disjoint := b.Intersect(BoxOf(V3(5, 5, 5), V3(6, 6, 6)))
	if !disjoint.IsEmpty() {
		t.Errorf("Intersect of disjoint boxes = %+v, want empty", disjoint)
	}
}
