package math

import "github.com/chewxy/math32"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns an inverted box that any ExpandPoint call will reset.
func EmptyAABB() AABB {
	inf := float32(math32.MaxFloat32)
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// AABBFromPoints returns the tight box around pts.
func AABBFromPoints(pts ...Vec3) AABB {
	box := EmptyAABB()
	for _, p := range pts {
		box = box.ExpandPoint(p)
	}
	return box
}

func (b AABB) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

func (b AABB) ExpandPoint(p Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

func (b AABB) Union(other AABB) AABB {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Intersects reports whether the boxes overlap; touching faces count.
func (b AABB) Intersects(other AABB) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Contains reports whether other lies entirely inside b.
func (b AABB) Contains(other AABB) bool {
	return other.Min.X >= b.Min.X && other.Max.X <= b.Max.X &&
		other.Min.Y >= b.Min.Y && other.Max.Y <= b.Max.Y &&
		other.Min.Z >= b.Min.Z && other.Max.Z <= b.Max.Z
}

// Transform returns the box enclosing the eight transformed corners.
func (b AABB) Transform(m Mat4) AABB {
	if b.IsEmpty() {
		return b
	}
	out := EmptyAABB()
	for i := 0; i < 8; i++ {
		c := Vec3{b.Min.X, b.Min.Y, b.Min.Z}
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out = out.ExpandPoint(m.MulVec3(c))
	}
	return out
}

// IntersectRay runs the slab test and returns the entry distance.
func (b AABB) IntersectRay(ray Ray) (float32, bool) {
	invDir := Vec3{
		X: 1.0 / ray.Direction.X,
		Y: 1.0 / ray.Direction.Y,
		Z: 1.0 / ray.Direction.Z,
	}

	t1 := (b.Min.X - ray.Origin.X) * invDir.X
	t2 := (b.Max.X - ray.Origin.X) * invDir.X
	t3 := (b.Min.Y - ray.Origin.Y) * invDir.Y
	t4 := (b.Max.Y - ray.Origin.Y) * invDir.Y
	t5 := (b.Min.Z - ray.Origin.Z) * invDir.Z
	t6 := (b.Max.Z - ray.Origin.Z) * invDir.Z

	tmin := math32.Max(math32.Max(math32.Min(t1, t2), math32.Min(t3, t4)), math32.Min(t5, t6))
	tmax := math32.Min(math32.Min(math32.Max(t1, t2), math32.Max(t3, t4)), math32.Max(t5, t6))

	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	return tmin, true
}
