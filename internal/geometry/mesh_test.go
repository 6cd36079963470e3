package geometry

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func TestSphereCounts(t *testing.T) {
	m, err := Sphere(2, 8, 6)
	if err != nil {
		t.Fatalf("Sphere: %v", err)
	}
	if got, want := m.VertexCount(), 9*7; got != want {
		t.Fatalf("vertices = %d, want %d", got, want)
	}
	if got, want := m.FaceCount(), 8*(2*6-2); got != want {
		t.Fatalf("faces = %d, want %d", got, want)
	}
	if math.Abs(m.BoundingRadius()-2) > 1e-9 {
		t.Fatalf("bounding radius = %v, want 2", m.BoundingRadius())
	}
}

func TestIrregularPreservesTopology(t *testing.T) {
	for _, radius := range []float64{0.4, 1, 2.5, 30} {
		base, err := Sphere(radius, 32, 32)
		if err != nil {
			t.Fatalf("Sphere(%v): %v", radius, err)
		}
		m, err := Irregular(radius, 32, 0.6, nil)
		if err != nil {
			t.Fatalf("Irregular(%v): %v", radius, err)
		}
		if m.VertexCount() != base.VertexCount() || m.FaceCount() != base.FaceCount() {
			t.Fatalf("radius %v: topology changed: %d/%d vs %d/%d", radius,
				m.VertexCount(), m.FaceCount(), base.VertexCount(), base.FaceCount())
		}
		if len(m.Normals) != m.VertexCount() {
			t.Fatalf("normals not recomputed for every vertex")
		}
	}
}

func TestIrregularDisplacementBounded(t *testing.T) {
	const radius, strength = 5.0, 0.6
	m, err := Irregular(radius, 16, strength, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Irregular: %v", err)
	}
	for i, p := range m.Positions {
		d := math.Abs(p.Len() - radius)
		if d > strength/2+1e-9 {
			t.Fatalf("vertex %d displaced by %v, limit %v", i, d, strength/2)
		}
	}
}

func TestIrregularUsesSource(t *testing.T) {
	m, err := Irregular(1, 8, 1, constSource(1))
	if err != nil {
		t.Fatalf("Irregular: %v", err)
	}
	for _, p := range m.Positions {
		if math.Abs(p.Len()-1.5) > 1e-9 {
			t.Fatalf("expected every vertex at 1.5, got %v", p.Len())
		}
	}
}

func TestIrregularDiffersBetweenCalls(t *testing.T) {
	a, _ := Irregular(1, 8, 0.6, nil)
	b, _ := Irregular(1, 8, 0.6, nil)
	same := true
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("two unseeded shapes were identical")
	}
}

func TestInvalidInput(t *testing.T) {
	if _, err := Sphere(0, 8, 8); !errors.Is(err, ErrInvalidRadius) {
		t.Fatalf("expected ErrInvalidRadius, got %v", err)
	}
	if _, err := Irregular(1, 2, 0.6, nil); err == nil {
		t.Fatalf("expected error for detail 2")
	}
}
