package csg

import (
	stdmath "math"

	"text-creator/math"
)

// vec is a double-precision point; splitting in float32 accumulates too
// much error across deep trees.
type vec struct{ x, y, z float64 }

func fromVec3(v math.Vec3) vec {
	return vec{float64(v.X), float64(v.Y), float64(v.Z)}
}

func (v vec) toVec3() math.Vec3 {
	return math.Vec3{X: float32(v.x), Y: float32(v.y), Z: float32(v.z)}
}

func (v vec) add(o vec) vec {
	return vec{v.x + o.x, v.y + o.y, v.z + o.z}
}

func (v vec) sub(o vec) vec {
	return vec{v.x - o.x, v.y - o.y, v.z - o.z}
}

func (v vec) scale(s float64) vec {
	return vec{v.x * s, v.y * s, v.z * s}
}

func (v vec) dot(o vec) float64 {
	return v.x*o.x + v.y*o.y + v.z*o.z
}

func (v vec) lerp(o vec, t float64) vec {
	return v.add(o.sub(v).scale(t))
}

func (v vec) cross(o vec) vec {
	return vec{
		v.y*o.z - v.z*o.y,
		v.z*o.x - v.x*o.z,
		v.x*o.y - v.y*o.x,
	}
}

func (v vec) length() float64 { return stdmath.Sqrt(v.dot(v)) }

func (v vec) finite() bool {
	for _, c := range [3]float64{v.x, v.y, v.z} {
		if stdmath.IsNaN(c) || stdmath.IsInf(c, 0) {
			return false
		}
	}
	return true
}
