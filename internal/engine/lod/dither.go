package lod

// goldenRatioConjugate is the per-frame dither phase increment. An
// irrational step never revisits the same offset, so the grain pattern
// cannot settle into a static visible texture.
const goldenRatioConjugate = 0.61803398875

// bayer4 is the 4x4 ordered dither matrix, normalized to [0,1).
var bayer4 = [16]float32{
	0.0 / 16, 8.0 / 16, 2.0 / 16, 10.0 / 16,
	12.0 / 16, 4.0 / 16, 14.0 / 16, 6.0 / 16,
	3.0 / 16, 11.0 / 16, 1.0 / 16, 9.0 / 16,
	15.0 / 16, 7.0 / 16, 13.0 / 16, 5.0 / 16,
}

// DitherValue returns the screen-space dither threshold for a pixel, with
// the temporal phase folded in. The impostor and mesh fragment shaders
// compute the identical value; this Go mirror exists so coverage behavior
// is testable headless.
func DitherValue(px, py int, phase float32) float32 {
	v := bayer4[(py&3)*4+(px&3)] + phase
	if v >= 1 {
		v -= 1
	}
	return v
}

// Covered applies a signed fade value (see TierBuffer.Fades) to a dither
// threshold: the fading-out side keeps pixels below its coverage, the
// fading-in side keeps the complement.
func Covered(dither, fade float32) bool {
	if fade >= 0 {
		return dither < fade
	}
	return dither >= 1+fade
}

// Coverage returns the fraction of a 4x4 dither tile a fade value keeps
// visible. Used by tests to check crossfade monotonicity.
func Coverage(fade, phase float32) float32 {
	visible := 0
	for py := 0; py < 4; py++ {
		for px := 0; px < 4; px++ {
			if Covered(DitherValue(px, py, phase), fade) {
				visible++
			}
		}
	}
	return float32(visible) / 16
}
