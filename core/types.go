package core

import (
	"text-creator/math"
)

// Transform is the per-solid placement, kept as three separate matrices so
// layout edits can change one component without disturbing the others.
type Transform struct {
	Scale     math.Mat4
	Rotate    math.Mat4
	Translate math.Mat4
}

func NewTransform() Transform {
	return Transform{
		Scale:     math.Mat4Identity(),
		Rotate:    math.Mat4Identity(),
		Translate: math.Mat4Identity(),
	}
}

// Total composes the placement: scale first, then rotate, then translate.
func (t Transform) Total() math.Mat4 {
	return t.Scale.Mul(t.Rotate).Mul(t.Translate)
}

// Origin is where the solid's local origin lands after translation alone.
func (t Transform) Origin() math.Vec3 {
	return t.Translate.MulVec3(math.Vec3Zero)
}

// Apply transforms a local-space point into world space.
func (t Transform) Apply(p math.Vec3) math.Vec3 {
	return t.Total().MulVec3(p)
}
