package scene

import (
	"math"

	"asteroid-tracker/internal/vmath"
)

const polarEpsilon = 1e-6

// OrbitControls orbits a camera around a mutable target with optional damping.
type OrbitControls struct {
	Camera        *Camera
	Target        vmath.Vec3
	EnableDamping bool
	DampingFactor float64
	EnablePan     bool
	EnableZoom    bool
	EnableRotate  bool
	MinDistance   float64
	MaxDistance   float64

	deltaTheta float64
	deltaPhi   float64
	panOffset  vmath.Vec3
	zoomScale  float64
}

// NewOrbitControls binds controls to cam, keeping the camera's current offset.
func NewOrbitControls(cam *Camera) *OrbitControls {
	return &OrbitControls{
		Camera:        cam,
		Target:        cam.Target,
		DampingFactor: 0.05,
		EnablePan:     true,
		EnableZoom:    true,
		EnableRotate:  true,
		MinDistance:   1,
		MaxDistance:   math.Inf(1),
		zoomScale:     1,
	}
}

// Rotate queues an azimuth/polar rotation in radians.
func (c *OrbitControls) Rotate(azimuth, polar float64) {
	if !c.EnableRotate {
		return
	}
	c.deltaTheta -= azimuth
	c.deltaPhi -= polar
}

// Zoom scales the orbit distance; factors below 1 move closer.
func (c *OrbitControls) Zoom(factor float64) {
	if !c.EnableZoom || factor <= 0 {
		return
	}
	c.zoomScale *= factor
}

// Pan moves the target in the camera plane, in world units.
func (c *OrbitControls) Pan(dx, dy float64) {
	if !c.EnablePan {
		return
	}
	c.panOffset = c.panOffset.Add(c.Camera.right.Scale(dx)).Add(c.Camera.up.Scale(dy))
}

// Update applies queued motion and repositions the camera. With damping on,
// queued motion decays over successive calls.
func (c *OrbitControls) Update() {
	offset := c.Camera.Position.Sub(c.Target)
	radius := offset.Len()
	if radius == 0 {
		radius = c.MinDistance
	}
	theta := math.Atan2(offset.X, offset.Z)
	phi := math.Acos(math.Max(-1, math.Min(1, offset.Y/radius)))

	factor := 1.0
	if c.EnableDamping {
		factor = c.DampingFactor
	}
	theta += c.deltaTheta * factor
	phi += c.deltaPhi * factor
	phi = math.Max(polarEpsilon, math.Min(math.Pi-polarEpsilon, phi))

	radius *= c.zoomScale
	radius = math.Max(c.MinDistance, math.Min(c.MaxDistance, radius))

	c.Target = c.Target.Add(c.panOffset.Scale(factor))

	sinPhi := math.Sin(phi)
	offset = vmath.Vec3{
		X: radius * sinPhi * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Cos(theta),
	}
	c.Camera.Position = c.Target.Add(offset)
	c.Camera.Target = c.Target
	c.Camera.UpdateProjection()

	c.zoomScale = 1
	if c.EnableDamping {
		c.deltaTheta *= 1 - c.DampingFactor
		c.deltaPhi *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Scale(1 - c.DampingFactor)
	} else {
		c.deltaTheta, c.deltaPhi = 0, 0
		c.panOffset = vmath.Vec3{}
	}
}
