package scene

import (
	"math"

	"asteroid-tracker/internal/vmath"
)

// Camera is a perspective camera looking at a target point.
type Camera struct {
	Position vmath.Vec3
	Target   vmath.Vec3
	FOV      float64 // vertical, degrees
	Aspect   float64
	Near     float64
	Far      float64

	forward, right, up vmath.Vec3
	tanHalf            float64
}

// NewCamera creates a camera and computes its projection.
func NewCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{FOV: fov, Aspect: aspect, Near: near, Far: far, Target: vmath.Vec3{}}
	c.Position = vmath.Vec3{Z: 1}
	c.UpdateProjection()
	return c
}

// SetAspect changes the aspect ratio, as on a window resize.
func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return
	}
	c.Aspect = aspect
	c.UpdateProjection()
}

// UpdateProjection recomputes the view basis from position, target and FOV.
func (c *Camera) UpdateProjection() {
	c.tanHalf = math.Tan(vmath.DegToRad(c.FOV) / 2)
	c.forward = c.Target.Sub(c.Position).Normalize()
	if c.forward == (vmath.Vec3{}) {
		c.forward = vmath.Vec3{Z: -1}
	}
	c.right = c.forward.Cross(vmath.Up).Normalize()
	if c.right == (vmath.Vec3{}) {
		c.right = vmath.Vec3{X: 1}
	}
	c.up = c.right.Cross(c.forward)
}

// RayDirection returns the world direction through a normalised device
// coordinate in [-1, 1]^2.
func (c *Camera) RayDirection(ndcX, ndcY float64) vmath.Vec3 {
	d := c.forward.
		Add(c.right.Scale(ndcX * c.tanHalf * c.Aspect)).
		Add(c.up.Scale(ndcY * c.tanHalf))
	return d.Normalize()
}

// Projection is a point mapped to normalised device coordinates.
type Projection struct {
	X, Y  float64
	Depth float64
	// Scale converts a world length at this depth to NDC height units.
	Scale float64
}

// Project maps p to NDC. ok is false outside the near/far range.
func (c *Camera) Project(p vmath.Vec3) (Projection, bool) {
	rel := p.Sub(c.Position)
	z := rel.Dot(c.forward)
	if z < c.Near || z > c.Far {
		return Projection{}, false
	}
	return Projection{
		X:     rel.Dot(c.right) / (z * c.tanHalf * c.Aspect),
		Y:     rel.Dot(c.up) / (z * c.tanHalf),
		Depth: z,
		Scale: 1 / (z * c.tanHalf),
	}, true
}
