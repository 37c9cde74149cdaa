// Package mesh provides mesh hierarchy types, GL upload, and procedural
// source geometry for baking and near-tier rendering.
package mesh

import (
	"github.com/tibogot/greenwood/pkg/math"
)

// Vertex is a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// Material holds per-submesh shading parameters used both at bake time and
// for near-tier rendering.
type Material struct {
	BaseColor [3]float32
	Tint      [3]float32
	AlphaTest float32 // fragments below this alpha are discarded; 0 disables
	TextureID uint32  // 0 means untextured, base color only
}

// DefaultMaterial returns an untinted opaque material.
func DefaultMaterial() Material {
	return Material{
		BaseColor: [3]float32{1, 1, 1},
		Tint:      [3]float32{1, 1, 1},
	}
}

// Mesh holds geometry ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Material Material
	Bounds   AABB
}

// AABB is an axis-aligned bounding box in the mesh's local space.
type AABB struct {
	Min, Max math.Vec3
}

// Extent returns the box size along each axis.
func (b AABB) Extent() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box center.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns the radius of the sphere through the box corners,
// centered on the box center.
func (b AABB) Radius() float32 {
	return b.Extent().Length() * 0.5
}

// ComputeBounds recomputes the local AABB from the vertex positions.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = AABB{}
		return
	}
	b := AABB{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		b.Min = b.Min.Min(v.Position)
		b.Max = b.Max.Max(v.Position)
	}
	m.Bounds = b
}
