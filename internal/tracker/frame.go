package tracker

import (
	"math"
	"time"

	"asteroid-tracker/internal/body"
	"asteroid-tracker/internal/scene"
	"asteroid-tracker/internal/vmath"
)

const dangerEmissive scene.Color = 0xff0000

type orbit struct {
	step   float64
	radius float64
	y      float64
}

var (
	earthOrbit = orbit{step: 0.0005, radius: 200}
	moonOrbit  = orbit{step: 0.002, radius: 40}
	tcOrbit    = orbit{step: 0.002, radius: 220, y: 20}
	szOrbit    = orbit{step: 0.001, radius: 600, y: -30}
)

func (o orbit) advance(angle *float64, center vmath.Vec3) vmath.Vec3 {
	*angle += o.step
	return vmath.Vec3{
		X: center.X + math.Cos(*angle)*o.radius,
		Y: o.y,
		Z: center.Z + math.Sin(*angle)*o.radius,
	}
}

// Frame advances the animation by one step. now drives the danger pulse, the
// Sun shader clock and the focus tween.
func (s *Session) Frame(now time.Time) {
	begin := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := now.Sub(s.started)
	if sun := s.registry.Sun(); sun != nil {
		sun.Object.Material.Time = elapsed.Seconds()
	}

	earth := s.registry.Earth()
	earth.Object.Position = earthOrbit.advance(&s.earthAngle, vmath.Vec3{})
	earth.Object.Rotation.Y += 0.002
	for _, o := range s.overlays {
		o.object.Position = earth.Object.Position
		o.object.Rotation.Y += o.spin
	}

	if moon := s.registry.Moon(); moon != nil {
		moon.Object.Position = moonOrbit.advance(&s.moonAngle, earth.Object.Position)
		moon.Object.LookAt(earth.Object.Position)
	}
	s.tc.Object.Position = tcOrbit.advance(&s.tcAngle, vmath.Vec3{})
	s.sz.Object.Position = szOrbit.advance(&s.szAngle, vmath.Vec3{})

	for _, b := range s.registry.Asteroids() {
		b.Object.Rotation = b.Object.Rotation.Add(b.Spin)
	}
	danger := s.updateDanger(float64(elapsed) / float64(time.Millisecond))

	if s.tween != nil {
		target, done := s.tween.Sample(now)
		s.controls.Target = target
		if done {
			s.tween = nil
		}
	}
	s.controls.Update()
	s.metrics.ObserveFrame(time.Since(begin), danger)
}

// updateDanger flags asteroids closer to Earth than the threshold and pulses
// them. The hover target keeps its highlight. It returns the flagged count.
func (s *Session) updateDanger(ms float64) int {
	earth := s.registry.Earth()
	if earth == nil {
		return 0
	}
	count := 0
	for _, b := range s.registry.Asteroids() {
		a := b.Asteroid
		a.Danger = b.Position().DistanceTo(earth.Position()) < s.threshold
		if a.Danger {
			count++
		}
		if b == s.hover {
			continue
		}
		mat := b.Object.Material
		if a.Danger {
			mat.Emissive = dangerEmissive
			mat.EmissiveIntensity = body.DangerIntensity + math.Sin(ms*0.02)
			b.Object.SetScalar(a.CurrentScale * 1.1)
		} else {
			mat.Emissive = b.BaseEmissive
			mat.EmissiveIntensity = b.BaseIntensity
			b.Object.SetScalar(a.CurrentScale)
		}
	}
	return count
}
