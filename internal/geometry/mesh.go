// Package geometry builds the triangle meshes used for bodies in the scene.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"asteroid-tracker/internal/vmath"
)

// ErrInvalidRadius is returned when a mesh is requested with a non-positive radius.
var ErrInvalidRadius = errors.New("geometry: radius must be positive")

// Source supplies uniform random numbers in [0, 1).
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Positions []vmath.Vec3
	Normals   []vmath.Vec3
	// Indices holds three vertex indices per triangle.
	Indices []int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int { return len(m.Indices) / 3 }

// BoundingRadius returns the largest vertex distance from the mesh origin.
func (m *Mesh) BoundingRadius() float64 {
	var r float64
	for _, p := range m.Positions {
		if l := p.Len(); l > r {
			r = l
		}
	}
	return r
}

// Sphere builds a UV sphere. The layout matches the usual latitude/longitude
// construction: (w+1)*(h+1) vertices with the pole triangles left out.
func Sphere(radius float64, widthSegments, heightSegments int) (*Mesh, error) {
	if radius <= 0 || math.IsNaN(radius) {
		return nil, ErrInvalidRadius
	}
	if widthSegments < 3 || heightSegments < 2 {
		return nil, fmt.Errorf("geometry: need at least 3x2 segments, got %dx%d", widthSegments, heightSegments)
	}

	m := &Mesh{
		Positions: make([]vmath.Vec3, 0, (widthSegments+1)*(heightSegments+1)),
	}
	grid := make([][]int, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]int, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			p := vmath.Vec3{
				X: -radius * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				Y: radius * math.Cos(v*math.Pi),
				Z: radius * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			}
			row[ix] = len(m.Positions)
			m.Positions = append(m.Positions, p)
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	m.ComputeVertexNormals()
	return m, nil
}

// Irregular builds a sphere of detail x detail segments and pushes every
// vertex along its radial direction by (U-0.5)*noiseStrength. A nil src uses
// the auto-seeded global generator, so shapes differ between calls.
func Irregular(radius float64, detail int, noiseStrength float64, src Source) (*Mesh, error) {
	m, err := Sphere(radius, detail, detail)
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = globalSource{}
	}
	for i, p := range m.Positions {
		noise := (src.Float64() - 0.5) * noiseStrength
		m.Positions[i] = p.Add(p.Normalize().Scale(noise))
	}
	m.ComputeVertexNormals()
	return m, nil
}

// ComputeVertexNormals accumulates face normals into each vertex and
// normalises the result.
func (m *Mesh) ComputeVertexNormals() {
	normals := make([]vmath.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa, pb, pc := m.Positions[ia], m.Positions[ib], m.Positions[ic]
		n := pc.Sub(pb).Cross(pa.Sub(pb))
		normals[ia] = normals[ia].Add(n)
		normals[ib] = normals[ib].Add(n)
		normals[ic] = normals[ic].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}
