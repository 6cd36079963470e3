package vmath

import (
	"math"
	"testing"
)

func TestCrossAndNormalize(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	if got := x.Cross(y); got != (Vec3{Z: 1}) {
		t.Fatalf("x cross y = %+v, want +Z", got)
	}
	n := Vec3{3, 0, 4}.Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Fatalf("normalized length = %v", n.Len())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Fatalf("zero vector should normalize to zero")
	}
}

func TestLerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, -10, 4}
	cases := []struct {
		t    float64
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{5, -5, 2}},
	}
	for _, tc := range cases {
		if got := Lerp(a, b, tc.t); got != tc.want {
			t.Fatalf("Lerp(%v) = %+v, want %+v", tc.t, got, tc.want)
		}
	}
}

func TestDistanceTo(t *testing.T) {
	if d := (Vec3{1, 2, 3}).DistanceTo(Vec3{4, 6, 3}); d != 5 {
		t.Fatalf("distance = %v, want 5", d)
	}
}
