// Package scene is the headless scene graph the tracker drives: objects with
// transforms and materials, a perspective camera, ray picking and an orbit
// camera rig. Front ends read it to draw.
package scene

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"asteroid-tracker/internal/geometry"
	"asteroid-tracker/internal/vmath"
)

// Color is a packed 0xRRGGBB value.
type Color uint32

// Hex formats the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Material describes how an object glows.
type Material struct {
	Color             Color
	Emissive          Color
	EmissiveIntensity float64
	// Emissive is ignored for shader materials.
	Shader bool
	// Time is the animation uniform of shader materials, in seconds.
	Time float64
}

// SupportsEmissive reports whether emissive colour and intensity apply.
func (m *Material) SupportsEmissive() bool {
	return m != nil && !m.Shader
}

// Object is a positioned mesh.
type Object struct {
	ID       string
	Name     string
	Position vmath.Vec3
	Rotation vmath.Vec3
	Scale    vmath.Vec3
	Material *Material
	Mesh     *geometry.Mesh
	// Pickable objects take part in ray queries.
	Pickable bool
}

// NewObject creates a unit-scale object with a fresh id.
func NewObject(name string, mesh *geometry.Mesh, mat *Material) *Object {
	return &Object{
		ID:       uuid.New().String(),
		Name:     name,
		Scale:    vmath.Splat(1),
		Material: mat,
		Mesh:     mesh,
		Pickable: true,
	}
}

// SetScalar sets a uniform scale.
func (o *Object) SetScalar(s float64) {
	o.Scale = vmath.Splat(s)
}

// Radius is the world-space bounding radius.
func (o *Object) Radius() float64 {
	if o.Mesh == nil {
		return 0
	}
	return o.Mesh.BoundingRadius() * o.Scale.MaxComponent()
}

// LookAt turns the object about Y so its +Z axis faces target.
func (o *Object) LookAt(target vmath.Vec3) {
	d := target.Sub(o.Position)
	if d.X == 0 && d.Z == 0 {
		return
	}
	o.Rotation.Y = math.Atan2(d.X, d.Z)
}

// Scene is an ordered object container.
type Scene struct {
	objects []*Object
}

// New returns an empty scene.
func New() *Scene { return &Scene{} }

// Add appends objects to the scene.
func (s *Scene) Add(objs ...*Object) {
	s.objects = append(s.objects, objs...)
}

// Objects returns the objects in insertion order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Len returns the number of objects.
func (s *Scene) Len() int { return len(s.objects) }
