// Package lighting provides sun lighting utilities for forest rendering.
package lighting

import (
	stdmath "math"

	"github.com/tibogot/greenwood/pkg/math"
)

// SunDirection converts longitude/latitude angles to a light direction.
// Longitude is rotation around the Y axis (0-360), latitude is elevation
// from the horizon (0-90). Returns a normalized vector pointing toward
// the sun, ready for N dot L shading.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * stdmath.Pi / 180.0
	latRad := float64(latitude) * stdmath.Pi / 180.0

	return math.Vec3{
		X: float32(stdmath.Cos(latRad) * stdmath.Sin(lonRad)),
		Y: float32(stdmath.Sin(latRad)),
		Z: float32(stdmath.Cos(latRad) * stdmath.Cos(lonRad)),
	}
}

// Sun bundles the directional light state handed to the render passes.
type Sun struct {
	Direction math.Vec3
	Color     [3]float32
	Ambient   [3]float32
}

// NewSun builds a Sun from angles and colors.
func NewSun(longitude, latitude float32, color, ambient [3]float32) Sun {
	return Sun{
		Direction: SunDirection(longitude, latitude),
		Color:     color,
		Ambient:   ambient,
	}
}
