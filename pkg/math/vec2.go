// Package math provides float32 math types and functions for rendering.
package math

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// Abs returns the component-wise absolute value.
func (v Vec2) Abs() Vec2 {
	return Vec2{Abs(v.X), Abs(v.Y)}
}

// Floor returns the component-wise floor.
func (v Vec2) Floor() Vec2 {
	return Vec2{Floor(v.X), Floor(v.Y)}
}

// Fract returns the component-wise fractional part.
func (v Vec2) Fract() Vec2 {
	return Vec2{Fract(v.X), Fract(v.Y)}
}
