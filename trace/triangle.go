package trace

import "text-creator/math"

// Triangle is a leaf primitive.
type Triangle struct {
	V0, V1, V2 math.Vec3
	bounds     math.AABB
}

func NewTriangle(v0, v1, v2 math.Vec3) *Triangle {
	return &Triangle{V0: v0, V1: v1, V2: v2, bounds: math.AABBFromPoints(v0, v1, v2)}
}

func (t *Triangle) Bounds() math.AABB { return t.bounds }

func (t *Triangle) Normal() math.Vec3 {
	return t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0)).Normalize()
}

func (t *Triangle) Intersect(ray math.Ray) (Hit, bool) {
	dist, ok := mollerTrumbore(ray, t.V0, t.V1, t.V2)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Distance: dist,
		Point:    ray.At(dist),
		Normal:   t.Normal(),
		Object:   t,
	}, true
}

func (t *Triangle) Contained(box math.AABB, out []Traceable) []Traceable {
	if box.Contains(t.bounds) {
		out = append(out, t)
	}
	return out
}

// mollerTrumbore implements the Möller–Trumbore ray-triangle intersection.
// Both faces are hit.
func mollerTrumbore(ray math.Ray, v0, v1, v2 math.Vec3) (float32, bool) {
	const epsilon = 0.0000001

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -epsilon && a < epsilon {
		return 0, false // parallel
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	return t, t > epsilon
}
