package math

import "math"

// Pi is the float32 circle constant.
const Pi = float32(math.Pi)

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of a and b.
func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Floor returns the largest integer value <= x.
func Floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// Fract returns x - Floor(x), always in [0, 1).
func Fract(x float32) float32 {
	return x - Floor(x)
}

// Sign returns -1 for negative x, 1 otherwise. Sign(0) = 1, matching the
// octahedral fold convention where zero components keep the positive branch.
func Sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Lerp returns a + (b-a)*t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
