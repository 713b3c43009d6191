package trace

import (
	"github.com/chewxy/math32"

	"text-creator/math"
)

// Plane is an unbounded traceable plane, used as the drag surface.
type Plane struct {
	math.Plane
}

func NewPlane(normal, point math.Vec3) *Plane {
	return &Plane{Plane: math.PlaneFromPoint(normal, point)}
}

func (p *Plane) Bounds() math.AABB {
	inf := float32(math32.MaxFloat32)
	return math.AABB{Min: math.Vec3{X: -inf, Y: -inf, Z: -inf}, Max: math.Vec3{X: inf, Y: inf, Z: inf}}
}

func (p *Plane) Intersect(ray math.Ray) (Hit, bool) {
	t, ok := p.IntersectRay(ray)
	if !ok {
		return Hit{}, false
	}
	return Hit{Distance: t, Point: ray.At(t), Normal: p.Normal, Object: p}, true
}

func (p *Plane) Contained(_ math.AABB, out []Traceable) []Traceable { return out }
