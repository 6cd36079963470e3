package body

import (
	"testing"
	"time"

	"asteroid-tracker/internal/scene"
	"asteroid-tracker/internal/vmath"
)

func f(v float64) *float64 { return &v }

func TestClassifyDanger(t *testing.T) {
	cases := []struct {
		name     string
		velocity *float64
		size     *float64
		want     DangerLevel
	}{
		{"high", f(4), f(500), DangerHigh},
		{"boundary high is medium", f(3), f(500), DangerMedium},
		{"medium", f(6), f(200), DangerMedium},
		{"boundary medium is low", f(1), f(500), DangerLow},
		{"missing velocity", nil, f(300), DangerLow},
		{"missing size", f(30), nil, DangerLow},
		{"both missing", nil, nil, DangerLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyDanger(tc.velocity, tc.size); got != tc.want {
				t.Fatalf("ClassifyDanger = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDangerColor(t *testing.T) {
	if DangerHigh.Color() != "red" || DangerMedium.Color() != "orange" || DangerLow.Color() != "lime" || DangerUnknown.Color() != "lime" {
		t.Fatalf("unexpected danger colours")
	}
}

func newBody(name string, kind Kind) *Body {
	b := &Body{
		Name:          name,
		Kind:          kind,
		Object:        scene.NewObject(name, nil, &scene.Material{EmissiveIntensity: 1}),
		BaseIntensity: 1,
	}
	if kind == KindAsteroid {
		b.BaseIntensity = AsteroidBaseIntensity
		b.Asteroid = &Asteroid{RealisticScale: 1, ExaggeratedScale: 10, CurrentScale: 10, DangerLevel: DangerUnknown}
	}
	return b
}

func TestRegistryPickableOrder(t *testing.T) {
	r := NewRegistry()
	sun := newBody("Sun", KindStar)
	earth := newBody("Earth", KindPlanet)
	moon := newBody("Moon", KindMoon)
	a1 := newBody("a1", KindAsteroid)
	a2 := newBody("a2", KindAsteroid)
	for _, b := range []*Body{sun, earth, moon, a1, a2} {
		r.Add(b)
	}
	got := r.Pickable()
	want := []*Body{a1, a2, earth, moon, sun}
	if len(got) != len(want) {
		t.Fatalf("pickable len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pickable[%d] = %s, want %s", i, got[i].Name, want[i].Name)
		}
	}
	if b, ok := r.ByObject(a2.Object.ID); !ok || b != a2 {
		t.Fatalf("ByObject did not resolve a2")
	}
	if r.Sun() != sun || r.Earth() != earth || r.Moon() != moon {
		t.Fatalf("celestial bodies not tracked")
	}
}

func TestApplyScaleModeAndRestore(t *testing.T) {
	a := newBody("a", KindAsteroid)
	a.ApplyScaleMode(false)
	if a.Asteroid.CurrentScale != 1 || a.Object.Scale != vmath.Splat(1) {
		t.Fatalf("realistic scale not applied: %+v", a.Object.Scale)
	}
	a.Object.SetScalar(5)
	a.Object.Material.EmissiveIntensity = HoverIntensity
	a.Restore()
	if a.Object.Scale != vmath.Splat(1) || a.Object.Material.EmissiveIntensity != AsteroidBaseIntensity {
		t.Fatalf("restore mismatch: scale %+v intensity %v", a.Object.Scale, a.Object.Material.EmissiveIntensity)
	}
	a.Asteroid.Danger = true
	a.Restore()
	if a.Object.Material.EmissiveIntensity != DangerIntensity {
		t.Fatalf("danger resting intensity = %v", a.Object.Material.EmissiveIntensity)
	}

	earth := newBody("Earth", KindPlanet)
	earth.ApplyScaleMode(true)
	if earth.Object.Scale != vmath.Splat(1) {
		t.Fatalf("scale mode must not touch planets")
	}
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	earth := newBody("Earth", KindPlanet)
	earth.Object.Position = vmath.Vec3{X: 200}
	a := newBody("a", KindAsteroid)
	a.Object.Position = vmath.Vec3{X: 230, Y: 40}
	a.Asteroid.Velocity = f(4.5)
	r.Add(earth)
	r.Add(a)
	ts := time.Unix(0, 0).UTC()
	snap := r.Snapshot(a, ts)
	if len(snap) != 2 {
		t.Fatalf("snapshot len = %d", len(snap))
	}
	st := snap[1]
	if !st.Hovered || st.Kind != "asteroid" || st.DistanceToEarth != 50 || *st.VelocityKmS != 4.5 {
		t.Fatalf("unexpected state %+v", st)
	}
	*a.Asteroid.Velocity = 9
	if *st.VelocityKmS != 4.5 {
		t.Fatalf("snapshot aliases body telemetry")
	}
}
