package math

// Ray is a half-line. Direction need not be unit length; hit distances are
// expressed in multiples of it.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform maps the ray through m, keeping the parameterization so a hit at
// t in one space is at t in the other.
func (r Ray) Transform(m Mat4) Ray {
	return Ray{Origin: m.MulVec3(r.Origin), Direction: m.MulDir(r.Direction)}
}

// Plane is the set of points p with Normal·p = D.
type Plane struct {
	Normal Vec3
	D      float32
}

// PlaneFromPoint builds the plane through p with the given normal.
func PlaneFromPoint(normal Vec3, p Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: n.Dot(p)}
}

// IntersectRay returns the ray parameter where it crosses the plane. Rays
// parallel to the plane or crossing behind the origin miss.
func (p Plane) IntersectRay(ray Ray) (float32, bool) {
	denom := p.Normal.Dot(ray.Direction)
	if denom > -1e-7 && denom < 1e-7 {
		return 0, false
	}
	t := (p.D - p.Normal.Dot(ray.Origin)) / denom
	return t, t >= 0
}
