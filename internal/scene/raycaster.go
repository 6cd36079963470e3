package scene

import (
	"math"
	"sort"

	"asteroid-tracker/internal/vmath"
)

// Intersection is one ray hit.
type Intersection struct {
	Distance float64
	Point    vmath.Vec3
	Object   *Object
}

// Raycaster casts rays against object bounding spheres.
type Raycaster struct {
	Origin    vmath.Vec3
	Direction vmath.Vec3
}

// SetFromCamera aims the ray from the camera through an NDC point.
func (r *Raycaster) SetFromCamera(ndcX, ndcY float64, cam *Camera) {
	r.Origin = cam.Position
	r.Direction = cam.RayDirection(ndcX, ndcY)
}

// IntersectObjects returns hits on pickable objects ordered nearest first.
func (r *Raycaster) IntersectObjects(objs []*Object) []Intersection {
	var hits []Intersection
	for _, o := range objs {
		if o == nil || !o.Pickable {
			continue
		}
		t, ok := r.intersectSphere(o.Position, o.Radius())
		if !ok {
			continue
		}
		hits = append(hits, Intersection{
			Distance: t,
			Point:    r.Origin.Add(r.Direction.Scale(t)),
			Object:   o,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func (r *Raycaster) intersectSphere(center vmath.Vec3, radius float64) (float64, bool) {
	if radius <= 0 {
		return 0, false
	}
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.LenSq() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
