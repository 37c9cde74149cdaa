package camera

import (
	"github.com/tibogot/greenwood/pkg/math"
)

// Plane is a half-space ax + by + cz + d = 0 with the normal pointing into
// the frustum interior.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// DistanceTo returns the signed distance from a point to the plane.
// Positive means inside (same side as the normal).
func (p Plane) DistanceTo(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum, ordered
// left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromViewProj extracts the six planes from a combined
// view-projection matrix using the Gribb/Hartmann method. Planes are
// normalized so DistanceTo returns world units.
//
// For the column-major Mat4, clip-space row i is (m[i], m[i+4], m[i+8],
// m[i+12]); each plane is row3 +/- rowi.
func FrustumFromViewProj(m math.Mat4) Frustum {
	row := func(i int) math.Vec4 {
		return math.Vec4{X: m[i], Y: m[i+4], Z: m[i+8], W: m[i+12]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	f.Planes[0] = normalizePlane(r3.X+r0.X, r3.Y+r0.Y, r3.Z+r0.Z, r3.W+r0.W) // left
	f.Planes[1] = normalizePlane(r3.X-r0.X, r3.Y-r0.Y, r3.Z-r0.Z, r3.W-r0.W) // right
	f.Planes[2] = normalizePlane(r3.X+r1.X, r3.Y+r1.Y, r3.Z+r1.Z, r3.W+r1.W) // bottom
	f.Planes[3] = normalizePlane(r3.X-r1.X, r3.Y-r1.Y, r3.Z-r1.Z, r3.W-r1.W) // top
	f.Planes[4] = normalizePlane(r3.X+r2.X, r3.Y+r2.Y, r3.Z+r2.Z, r3.W+r2.W) // near
	f.Planes[5] = normalizePlane(r3.X-r2.X, r3.Y-r2.Y, r3.Z-r2.Z, r3.W-r2.W) // far
	return f
}

func normalizePlane(a, b, c, d float32) Plane {
	l := math.Vec3{X: a, Y: b, Z: c}.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: math.Vec3{X: a / l, Y: b / l, Z: c / l}, D: d / l}
}

// IntersectsSphere reports whether a sphere touches the frustum. A sphere
// fully behind any single plane is rejected.
func (f *Frustum) IntersectsSphere(center math.Vec3, radius float32) bool {
	for i := 0; i < 6; i++ {
		if f.Planes[i].DistanceTo(center) < -radius {
			return false
		}
	}
	return true
}
