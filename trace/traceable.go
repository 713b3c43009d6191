// Package trace holds the ray-traceable primitives used for picking and the
// bounding-volume hierarchy that accelerates them.
package trace

import "text-creator/math"

// Traceable is anything a ray can be cast against.
type Traceable interface {
	Bounds() math.AABB
	// Intersect returns the closest hit in front of the ray origin.
	Intersect(ray math.Ray) (Hit, bool)
	// Contained appends every leaf primitive whose bounds lie inside box.
	Contained(box math.AABB, out []Traceable) []Traceable
}

// Hit describes a ray intersection. Distance is in units of the ray's
// direction vector, so it is comparable across spaces.
type Hit struct {
	Distance float32
	Point    math.Vec3
	Normal   math.Vec3
	// Object is the leaf primitive that was hit.
	Object Traceable
}

// Empty never reports a hit.
type Empty struct{}

func (Empty) Bounds() math.AABB                                    { return math.EmptyAABB() }
func (Empty) Intersect(math.Ray) (Hit, bool)                       { return Hit{}, false }
func (Empty) Contained(_ math.AABB, out []Traceable) []Traceable { return out }

// Contains reports whether items holds target by identity.
func Contains(items []Traceable, target Traceable) bool {
	for _, it := range items {
		if it == target {
			return true
		}
	}
	return false
}
