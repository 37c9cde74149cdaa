// Package bounds computes conservative world-space bounding spheres for
// mesh hierarchies. The sphere drives both the bake capture framing and the
// runtime billboard scale, so both must come from the same computation.
package bounds

import (
	"fmt"

	"github.com/tibogot/greenwood/internal/engine/mesh"
	"github.com/tibogot/greenwood/pkg/math"
)

// Sphere is a world-space bounding sphere.
type Sphere struct {
	Center math.Vec3
	Radius float32
}

// Contains reports whether other lies entirely inside s.
func (s Sphere) Contains(other Sphere) bool {
	return s.Center.Distance(other.Center)+other.Radius <= s.Radius
}

// Union returns the smallest sphere enclosing both s and other.
func (s Sphere) Union(other Sphere) Sphere {
	if s.Radius == 0 {
		return other
	}
	if other.Radius == 0 {
		return s
	}
	if s.Contains(other) {
		return s
	}
	if other.Contains(s) {
		return other
	}

	d := s.Center.Distance(other.Center)
	r := (d + s.Radius + other.Radius) * 0.5
	// New center sits on the segment between the two centers, pushed from
	// s.Center toward other by the radius growth.
	t := (r - s.Radius) / d
	return Sphere{
		Center: s.Center.Lerp(other.Center, t),
		Radius: r,
	}
}

// Inflate returns the sphere with its radius scaled by factor.
func (s Sphere) Inflate(factor float32) Sphere {
	return Sphere{Center: s.Center, Radius: s.Radius * factor}
}

// Options configures the degenerate-geometry filter. Both thresholds are
// asset-dependent heuristics; callers with legitimate thin meshes should
// loosen FlatRatio rather than accept a ballooned sphere.
type Options struct {
	// MinVertexCount excludes meshes at or below this vertex count.
	MinVertexCount int
	// FlatRatio excludes meshes whose smallest local extent is under this
	// fraction of the largest extent (catches shadow/LOD cards).
	FlatRatio float32
}

// DefaultOptions returns the standard filter thresholds.
func DefaultOptions() Options {
	return Options{
		MinVertexCount: 16,
		FlatRatio:      0.02,
	}
}

// Eligible reports whether a mesh participates in bounds (and bake)
// computation, i.e. is not a degenerate proxy.
func (o Options) Eligible(m *mesh.Mesh) bool {
	if len(m.Vertices) <= o.MinVertexCount {
		return false
	}
	ext := m.Bounds.Extent()
	minExt := math.Min(ext.X, math.Min(ext.Y, ext.Z))
	maxExt := math.Max(ext.X, math.Max(ext.Y, ext.Z))
	if maxExt <= 0 {
		return false
	}
	return minExt >= o.FlatRatio*maxExt
}

// ComputeSphere unions the transformed bounding sphere of every eligible
// mesh in the hierarchy. This is a union of per-mesh spheres, not a minimal
// enclosing sphere; conservative is what a rendering bound needs.
// Returns an error when no eligible mesh remains after filtering.
func ComputeSphere(root *mesh.Node, opts Options) (Sphere, error) {
	var result Sphere
	found := false

	for _, p := range root.Meshes() {
		if !opts.Eligible(p.Mesh) {
			continue
		}
		s := Sphere{
			Center: p.World.TransformPoint(p.Mesh.Bounds.Center()),
			Radius: p.Mesh.Bounds.Radius() * p.World.MaxScaleOnAxis(),
		}
		if !found {
			result = s
			found = true
		} else {
			result = result.Union(s)
		}
	}

	if !found {
		return Sphere{}, fmt.Errorf("no eligible meshes after degenerate filtering")
	}
	return result, nil
}

// LargestMesh returns the eligible mesh with the most vertices, for bakes
// restricted to a hierarchy's main object. Returns nil if none is eligible.
func LargestMesh(root *mesh.Node, opts Options) *mesh.PlacedMesh {
	var best *mesh.PlacedMesh
	for _, p := range root.Meshes() {
		if !opts.Eligible(p.Mesh) {
			continue
		}
		if best == nil || len(p.Mesh.Vertices) > len(best.Mesh.Vertices) {
			pc := p
			best = &pc
		}
	}
	return best
}
