// Package camera provides the viewer camera and view-frustum extraction.
package camera

import (
	gomath "math"

	"github.com/tibogot/greenwood/pkg/math"
)

// FlyCamera is a free-flying first-person camera.
type FlyCamera struct {
	Position math.Vec3
	Yaw      float32 // radians around Y
	Pitch    float32 // radians, clamped short of the poles

	// Projection
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32

	// Sensitivity
	MoveSpeed       float32
	LookSensitivity float32
}

// NewFlyCamera creates a camera with viewer defaults.
func NewFlyCamera(aspect float32) *FlyCamera {
	return &FlyCamera{
		Position:        math.Vec3{X: 0, Y: 8, Z: 30},
		Yaw:             gomath.Pi,
		Pitch:           -0.1,
		FovY:            0.785398, // 45 degrees
		Aspect:          aspect,
		Near:            0.5,
		Far:             2000,
		MoveSpeed:       25,
		LookSensitivity: 0.0025,
	}
}

// Forward returns the camera's view direction.
func (c *FlyCamera) Forward() math.Vec3 {
	cp := float32(gomath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: cp * float32(gomath.Sin(float64(c.Yaw))),
		Y: float32(gomath.Sin(float64(c.Pitch))),
		Z: cp * float32(gomath.Cos(float64(c.Yaw))),
	}
}

// Right returns the camera's right direction on the XZ plane, the
// horizontal part of forward x world-up.
func (c *FlyCamera) Right() math.Vec3 {
	return math.Vec3{
		X: -float32(gomath.Cos(float64(c.Yaw))),
		Z: float32(gomath.Sin(float64(c.Yaw))),
	}
}

// HandleLook applies a mouse delta to yaw and pitch.
func (c *FlyCamera) HandleLook(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.LookSensitivity
	c.Pitch -= deltaY * c.LookSensitivity

	const maxPitch = 1.55
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// HandleMovement moves the camera in its local frame. dt is in seconds.
func (c *FlyCamera) HandleMovement(forward, right, up, dt float32) {
	step := c.MoveSpeed * dt
	c.Position = c.Position.
		Add(c.Forward().Scale(forward * step)).
		Add(c.Right().Scale(right * step)).
		Add(math.Vec3{Y: up * step})
}

// ViewMatrix returns the view matrix.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), math.Vec3{Y: 1})
}

// ProjMatrix returns the projection matrix.
func (c *FlyCamera) ProjMatrix() math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProj returns projection * view.
func (c *FlyCamera) ViewProj() math.Mat4 {
	return c.ProjMatrix().Mul(c.ViewMatrix())
}
