package camera

import (
	"testing"

	"github.com/tibogot/greenwood/pkg/math"
)

// testFrustum looks down -Z from the origin, 90 degree FOV, square aspect.
func testFrustum() Frustum {
	view := math.LookAt(math.Vec3{}, math.Vec3{Z: -1}, math.Vec3{Y: 1})
	proj := math.Perspective(1.5708, 1, 0.5, 1000)
	return FrustumFromViewProj(proj.Mul(view))
}

func TestSphereInFrontIsInside(t *testing.T) {
	f := testFrustum()
	if !f.IntersectsSphere(math.Vec3{Z: -50}, 1) {
		t.Error("sphere straight ahead must intersect the frustum")
	}
}

func TestSphereBehindCameraIsOutside(t *testing.T) {
	f := testFrustum()
	if f.IntersectsSphere(math.Vec3{Z: 50}, 1) {
		t.Error("sphere behind the camera must not intersect the frustum")
	}
}

func TestSphereFarToTheSideIsOutside(t *testing.T) {
	f := testFrustum()
	// At z=-10 with 90 degree FOV the frustum is ~10 wide half-extent.
	if f.IntersectsSphere(math.Vec3{X: 10000, Z: -10}, 1) {
		t.Error("sphere far to the side must not intersect the frustum")
	}
}

func TestSphereStraddlingPlaneIsInside(t *testing.T) {
	f := testFrustum()
	// Centered outside the left plane but with a radius that reaches in.
	if !f.IntersectsSphere(math.Vec3{X: -12, Z: -10}, 5) {
		t.Error("sphere straddling a plane must intersect the frustum")
	}
}

func TestSphereBeyondFarPlaneIsOutside(t *testing.T) {
	f := testFrustum()
	if f.IntersectsSphere(math.Vec3{Z: -1500}, 10) {
		t.Error("sphere beyond the far plane must not intersect the frustum")
	}
}

func TestPlanesAreNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		l := p.Normal.Length()
		if l < 0.999 || l > 1.001 {
			t.Errorf("plane %d normal length = %v, want 1", i, l)
		}
	}
}

func TestFlyCameraForwardIsUnit(t *testing.T) {
	c := NewFlyCamera(16.0 / 9.0)
	l := c.Forward().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Forward() length = %v, want 1", l)
	}
}

func TestFlyCameraPitchClamp(t *testing.T) {
	c := NewFlyCamera(1)
	c.HandleLook(0, -100000)
	if c.Pitch > 1.56 {
		t.Errorf("pitch = %v, want clamped below vertical", c.Pitch)
	}
	c.HandleLook(0, 100000)
	if c.Pitch < -1.56 {
		t.Errorf("pitch = %v, want clamped above vertical", c.Pitch)
	}
}
