// Package body defines the typed records attached to scene objects and the
// registry that tracks them.
package body

import (
	"asteroid-tracker/internal/scene"
	"asteroid-tracker/internal/vmath"
)

// Kind discriminates body variants.
type Kind int

const (
	KindStar Kind = iota
	KindPlanet
	KindMoon
	KindAsteroid
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	case KindMoon:
		return "moon"
	case KindAsteroid:
		return "asteroid"
	default:
		return "unknown"
	}
}

// DangerLevel is the ingestion-time impact classification.
type DangerLevel string

const (
	DangerUnknown DangerLevel = "Unknown"
	DangerLow     DangerLevel = "Low"
	DangerMedium  DangerLevel = "Medium"
	DangerHigh    DangerLevel = "High"
)

// Glow intensities shared by the interaction and frame passes.
const (
	AsteroidBaseIntensity = 0.6
	DangerIntensity       = 2.0
	HoverIntensity        = 3.0
)

// Asteroid carries the telemetry and scale state of an asteroid.
type Asteroid struct {
	RealisticScale   float64
	ExaggeratedScale float64
	// CurrentScale is the last non-hover scale decision.
	CurrentScale float64
	// Danger is the proximity flag, recomputed every frame.
	Danger      bool
	DangerLevel DangerLevel

	// nil means the feed had no data.
	Velocity     *float64 // km/s
	MissDistance *float64 // km
	SizeMeters   *float64
	Hazardous    *bool
	NEOID        string
}

// Body is a trackable object in the scene.
type Body struct {
	Name          string
	Kind          Kind
	Object        *scene.Object
	Spin          vmath.Vec3
	BaseEmissive  scene.Color
	BaseIntensity float64
	Asteroid      *Asteroid
}

// IsAsteroid reports whether b is the asteroid variant.
func (b *Body) IsAsteroid() bool {
	return b != nil && b.Kind == KindAsteroid && b.Asteroid != nil
}

// Position returns the object position.
func (b *Body) Position() vmath.Vec3 {
	return b.Object.Position
}

// RestingIntensity is the glow the body returns to when hover ends.
func (b *Body) RestingIntensity() float64 {
	if b.IsAsteroid() && b.Asteroid.Danger {
		return DangerIntensity
	}
	return b.BaseIntensity
}

func (a *Asteroid) scaleFor(exaggerated bool) float64 {
	if exaggerated {
		return a.ExaggeratedScale
	}
	return a.RealisticScale
}

// ApplyScaleMode records the scale for the given mode and applies it to the
// object. It is a no-op for non-asteroids.
func (b *Body) ApplyScaleMode(exaggerated bool) {
	if !b.IsAsteroid() {
		return
	}
	s := b.Asteroid.scaleFor(exaggerated)
	b.Asteroid.CurrentScale = s
	b.Object.SetScalar(s)
}

// Restore puts the glow and scale back to the resting state.
func (b *Body) Restore() {
	if b.Object.Material.SupportsEmissive() {
		b.Object.Material.EmissiveIntensity = b.RestingIntensity()
	}
	if b.IsAsteroid() {
		b.Object.SetScalar(b.Asteroid.CurrentScale)
	}
}
