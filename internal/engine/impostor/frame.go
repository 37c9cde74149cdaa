package impostor

import (
	"github.com/tibogot/greenwood/pkg/math"
)

// FrameUniforms bundles the per-frame state shared by every forest draw
// pass: camera, sun, and the crossfade dither phase. One value is built
// per frame and handed to the billboard and mesh renderers unchanged.
type FrameUniforms struct {
	ViewProj  math.Mat4
	CameraPos math.Vec3

	SunDirection math.Vec3 // normalized, pointing toward the sun
	SunColor     [3]float32
	AmbientColor [3]float32

	AlphaClamp  float32
	DitherPhase float32
}
