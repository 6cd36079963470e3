package body

import "time"

// Registry holds every body in creation order. Bodies are never removed.
type Registry struct {
	bodies   []*Body
	byObject map[string]*Body
	sun      *Body
	earth    *Body
	moon     *Body
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byObject: make(map[string]*Body)}
}

// Add appends a body. The first star, planet and moon become the Sun, Earth
// and Moon.
func (r *Registry) Add(b *Body) {
	r.bodies = append(r.bodies, b)
	r.byObject[b.Object.ID] = b
	switch b.Kind {
	case KindStar:
		if r.sun == nil {
			r.sun = b
		}
	case KindPlanet:
		if r.earth == nil {
			r.earth = b
		}
	case KindMoon:
		if r.moon == nil {
			r.moon = b
		}
	}
}

func (r *Registry) Sun() *Body   { return r.sun }
func (r *Registry) Earth() *Body { return r.earth }
func (r *Registry) Moon() *Body  { return r.moon }

// Len returns the number of bodies.
func (r *Registry) Len() int { return len(r.bodies) }

// All returns every body in creation order.
func (r *Registry) All() []*Body { return r.bodies }

// Asteroids returns the asteroid bodies in creation order.
func (r *Registry) Asteroids() []*Body {
	var out []*Body
	for _, b := range r.bodies {
		if b.IsAsteroid() {
			out = append(out, b)
		}
	}
	return out
}

// Pickable returns the bodies eligible for pointer picking: asteroids, then
// Earth, Moon and Sun.
func (r *Registry) Pickable() []*Body {
	out := r.Asteroids()
	for _, b := range []*Body{r.earth, r.moon, r.sun} {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// ByObject resolves a scene object id to its body.
func (r *Registry) ByObject(id string) (*Body, bool) {
	b, ok := r.byObject[id]
	return b, ok
}

// State is a read-only copy of a body for snapshots and sinks.
type State struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Kind              string      `json:"kind"`
	X                 float64     `json:"x"`
	Y                 float64     `json:"y"`
	Z                 float64     `json:"z"`
	Scale             float64     `json:"scale"`
	CurrentScale      float64     `json:"current_scale,omitempty"`
	EmissiveIntensity float64     `json:"emissive_intensity"`
	Danger            bool        `json:"danger"`
	DangerLevel       DangerLevel `json:"danger_level,omitempty"`
	DistanceToEarth   float64     `json:"distance_to_earth"`
	VelocityKmS       *float64    `json:"velocity_km_s,omitempty"`
	MissDistanceKm    *float64    `json:"miss_distance_km,omitempty"`
	SizeMeters        *float64    `json:"size_m,omitempty"`
	Hovered           bool        `json:"hovered"`
	Timestamp         time.Time   `json:"ts"`
}

// Snapshot copies every body. hover may be nil.
func (r *Registry) Snapshot(hover *Body, ts time.Time) []State {
	out := make([]State, 0, len(r.bodies))
	for _, b := range r.bodies {
		st := State{
			ID:        b.Object.ID,
			Name:      b.Name,
			Kind:      b.Kind.String(),
			X:         b.Object.Position.X,
			Y:         b.Object.Position.Y,
			Z:         b.Object.Position.Z,
			Scale:     b.Object.Scale.MaxComponent(),
			Hovered:   b == hover,
			Timestamp: ts,
		}
		if b.Object.Material.SupportsEmissive() {
			st.EmissiveIntensity = b.Object.Material.EmissiveIntensity
		}
		if r.earth != nil {
			st.DistanceToEarth = b.Position().DistanceTo(r.earth.Position())
		}
		if a := b.Asteroid; a != nil {
			st.CurrentScale = a.CurrentScale
			st.Danger = a.Danger
			st.DangerLevel = a.DangerLevel
			st.VelocityKmS = copyFloat(a.Velocity)
			st.MissDistanceKm = copyFloat(a.MissDistance)
			st.SizeMeters = copyFloat(a.SizeMeters)
		}
		out = append(out, st)
	}
	return out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
