package impostor

import (
	"github.com/tibogot/greenwood/internal/engine/bounds"
	"github.com/tibogot/greenwood/pkg/math"
)

// CellViewport returns the pixel rectangle of grid cell (i, j) in an atlas
// of the given edge size. Cells tile the atlas exactly; the bottom-left
// origin matches both GL viewports and the shader's UV lookup.
func CellViewport(i, j, n, textureSize int) (x, y, w, h int32) {
	cell := int32(textureSize / n)
	return int32(i) * cell, int32(j) * cell, cell, cell
}

// CaptureCamera holds the orthographic camera for one bake direction.
type CaptureCamera struct {
	Eye      math.Vec3
	View     math.Mat4
	Proj     math.Mat4
	ViewProj math.Mat4
}

// captureUp returns the LookAt up vector for a capture direction, switching
// away from world up near the poles where the cross product degenerates.
// The impostor vertex shader rebuilds the identical basis.
func captureUp(dir math.Vec3) math.Vec3 {
	if math.Abs(dir.Y) > 0.99 {
		return math.Vec3{Z: 1}
	}
	return math.Vec3{Y: 1}
}

// NewCaptureCamera places the bake camera at center + dir*2r looking at the
// center, with a symmetric ortho frustum of half-extent r. The sphere passed
// in is the margined bake sphere.
func NewCaptureCamera(sphere bounds.Sphere, dir math.Vec3) CaptureCamera {
	r := sphere.Radius
	eye := sphere.Center.Add(dir.Scale(r * 2))
	view := math.LookAt(eye, sphere.Center, captureUp(dir))
	// Object depth spans [r, 3r] from the eye.
	proj := math.OrthoCentered(r, r*0.1, r*4)

	return CaptureCamera{
		Eye:      eye,
		View:     view,
		Proj:     proj,
		ViewProj: proj.Mul(view),
	}
}
