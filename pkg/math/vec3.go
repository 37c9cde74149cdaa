package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// LengthSq returns the squared magnitude, avoiding the sqrt.
func (v Vec3) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// NormalizeOr returns a unit vector, or the fallback when v is shorter
// than epsilon. Used wherever a degenerate direction must not produce NaN.
func (v Vec3) NormalizeOr(fallback Vec3, epsilon float32) Vec3 {
	l := v.Length()
	if l < epsilon {
		return fallback
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// DistanceSq returns the squared distance to another point.
func (v Vec3) DistanceSq(other Vec3) float32 {
	return v.Sub(other).LengthSq()
}

// L1Norm returns |x| + |y| + |z|.
func (v Vec3) L1Norm() float32 {
	return Abs(v.X) + Abs(v.Y) + Abs(v.Z)
}

// Abs returns the component-wise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{Abs(v.X), Abs(v.Y), Abs(v.Z)}
}

// Lerp returns the linear interpolation between v and other at t.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return Vec3{
		v.X + (other.X-v.X)*t,
		v.Y + (other.Y-v.Y)*t,
		v.Z + (other.Z-v.Z)*t,
	}
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{Min(v.X, other.X), Min(v.Y, other.Y), Min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{Max(v.X, other.X), Max(v.Y, other.Y), Max(v.Z, other.Z)}
}

// XZ returns the XZ components as Vec2.
func (v Vec3) XZ() Vec2 {
	return Vec2{v.X, v.Z}
}
