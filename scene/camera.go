package scene

import (
	"text-creator/math"
)

// Camera is a perspective camera looking at a target. It is only used to
// turn screen positions into picking rays.
type Camera struct {
	Position    math.Vec3
	Target      math.Vec3
	Up          math.Vec3
	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Position:    math.Vec3{X: 0, Y: 0, Z: 100},
		Target:      math.Vec3Zero,
		Up:          math.Vec3Up,
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
	}
}

func (c *Camera) LookAt(target, up math.Vec3) {
	c.Target = target
	c.Up = up
}

func (c *Camera) GetViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Position, c.Target, c.Up)
}

func (c *Camera) GetProjectionMatrix() math.Mat4 {
	return math.Mat4Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}
