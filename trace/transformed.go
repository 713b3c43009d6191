package trace

import "text-creator/math"

// Transformed places a local-space child in world space. Rays are mapped into
// the child's space; hits come back in world space with the same distance.
type Transformed struct {
	Child    Traceable
	matrix   math.Mat4
	inverse  math.Mat4
	normalTo math.Mat4
	bounds   math.AABB
	singular bool
}

func NewTransformed(child Traceable, m math.Mat4) *Transformed {
	inv, ok := m.Inverse()
	return &Transformed{
		Child:    child,
		matrix:   m,
		inverse:  inv,
		normalTo: inv.Transpose(),
		bounds:   child.Bounds().Transform(m),
		singular: !ok,
	}
}

func (t *Transformed) Matrix() math.Mat4 { return t.matrix }

func (t *Transformed) Bounds() math.AABB { return t.bounds }

func (t *Transformed) Intersect(ray math.Ray) (Hit, bool) {
	if t.singular {
		return Hit{}, false
	}
	hit, ok := t.Child.Intersect(ray.Transform(t.inverse))
	if !ok {
		return Hit{}, false
	}
	hit.Point = ray.At(hit.Distance)
	hit.Normal = t.normalTo.MulDir(hit.Normal).Normalize()
	return hit, true
}

// Contained maps box into the child's space before querying it.
func (t *Transformed) Contained(box math.AABB, out []Traceable) []Traceable {
	if t.singular {
		return out
	}
	return t.Child.Contained(box.Transform(t.inverse), out)
}
