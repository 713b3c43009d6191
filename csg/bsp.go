package csg

import stdmath "math"

// epsilon is the thickness of a plane when classifying points.
const epsilon = 1e-5

type plane struct {
	normal vec
	w      float64
}

// planeFromPoints fails for degenerate triangles.
func planeFromPoints(a, b, c vec) (plane, bool) {
	n := b.sub(a).cross(c.sub(a))
	l := n.length()
	if l < 1e-12 {
		return plane{}, false
	}
	n = n.scale(1 / l)
	return plane{normal: n, w: n.dot(a)}, true
}

func (p plane) flip() plane {
	return plane{normal: p.normal.scale(-1), w: -p.w}
}

// polygon is a convex planar polygon.
type polygon struct {
	vertices []vec
	plane    plane
}

func (p *polygon) clone() *polygon {
	return &polygon{vertices: append([]vec(nil), p.vertices...), plane: p.plane}
}

// area assumes p is convex.
func (p *polygon) area() float64 {
	var sum vec
	v0 := p.vertices[0]
	for i := 1; i+1 < len(p.vertices); i++ {
		sum = sum.add(p.vertices[i].sub(v0).cross(p.vertices[i+1].sub(v0)))
	}
	return sum.length() / 2
}

func (p *polygon) bounds() box {
	b := emptyBox()
	for _, v := range p.vertices {
		b = b.expand(v)
	}
	return b
}

func flipAll(polys []*polygon) []*polygon {
	for _, p := range polys {
		p.flip()
	}
	return polys
}

func (p *polygon) flip() {
	for i, j := 0, len(p.vertices)-1; i < j; i, j = i+1, j-1 {
		p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
	}
	p.plane = p.plane.flip()
}

const (
	coplanar = 0
	front    = 1
	back     = 2
	spanning = 3
)

// split sorts poly into the four lists relative to p, cutting it in two
// when it spans the plane.
func (p plane) split(poly *polygon, coplanarFront, coplanarBack, fronts, backs *[]*polygon) {
	kind := 0
	types := make([]int, len(poly.vertices))
	for i, v := range poly.vertices {
		t := p.normal.dot(v) - p.w
		c := coplanar
		if t < -epsilon {
			c = back
		} else if t > epsilon {
			c = front
		}
		kind |= c
		types[i] = c
	}

	switch kind {
	case coplanar:
		if p.normal.dot(poly.plane.normal) > 0 {
			*coplanarFront = append(*coplanarFront, poly)
		} else {
			*coplanarBack = append(*coplanarBack, poly)
		}
	case front:
		*fronts = append(*fronts, poly)
	case back:
		*backs = append(*backs, poly)
	case spanning:
		var f, b []vec
		n := len(poly.vertices)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			ti, tj := types[i], types[j]
			vi, vj := poly.vertices[i], poly.vertices[j]
			if ti != back {
				f = append(f, vi)
			}
			if ti != front {
				b = append(b, vi)
			}
			if ti|tj == spanning {
				t := (p.w - p.normal.dot(vi)) / p.normal.dot(vj.sub(vi))
				v := vi.lerp(vj, t)
				f = append(f, v)
				b = append(b, v)
			}
		}
		if len(f) >= 3 {
			*fronts = append(*fronts, &polygon{vertices: f, plane: poly.plane})
		}
		if len(b) >= 3 {
			*backs = append(*backs, &polygon{vertices: b, plane: poly.plane})
		}
	}
}

// node is a BSP tree node. Polygons coplanar with the splitting plane live
// in the node itself.
type node struct {
	plane    *plane
	front    *node
	back     *node
	polygons []*polygon
}

func newNode(polygons []*polygon) *node {
	n := &node{}
	n.build(polygons)
	return n
}

// clipPolygons removes the parts of polygons inside this tree's solid.
func (n *node) clipPolygons(polygons []*polygon) []*polygon {
	if n.plane == nil {
		return append([]*polygon(nil), polygons...)
	}
	var fronts, backs []*polygon
	for _, p := range polygons {
		n.plane.split(p, &fronts, &backs, &fronts, &backs)
	}
	if n.front != nil {
		fronts = n.front.clipPolygons(fronts)
	}
	if n.back != nil {
		backs = n.back.clipPolygons(backs)
	} else {
		backs = nil
	}
	return append(fronts, backs...)
}

// build inserts polygons, splitting them as they descend.
func (n *node) build(polygons []*polygon) {
	if len(polygons) == 0 {
		return
	}
	if n.plane == nil {
		p := polygons[0].plane
		n.plane = &p
	}
	var fronts, backs []*polygon
	for _, p := range polygons {
		n.plane.split(p, &n.polygons, &n.polygons, &fronts, &backs)
	}
	if len(fronts) > 0 {
		if n.front == nil {
			n.front = &node{}
		}
		n.front.build(fronts)
	}
	if len(backs) > 0 {
		if n.back == nil {
			n.back = &node{}
		}
		n.back.build(backs)
	}
}

// areaTolerance is the relative area a clipped polygon may lose and still
// count as untouched.
const areaTolerance = 1e-7

// unionPolygons merges two closed solids. Polygons clear of the other
// operand's bounds pass through as they are; the rest are clipped against
// the other operand's tree. A polygon that loses none of its area is kept
// whole instead of as the fragments the tree cut it into.
func unionPolygons(a, b []*polygon) []*polygon {
	boxA, boxB := boundsOf(a), boundsOf(b)
	na, nb := newNode(a), newNode(b)

	out := make([]*polygon, 0, len(a)+len(b))
	for _, p := range a {
		if !p.bounds().overlaps(boxB) {
			out = append(out, p)
			continue
		}
		out = append(out, keepWhole(p, nb.clipPolygons([]*polygon{p.clone()}))...)
	}
	for _, p := range b {
		if !p.bounds().overlaps(boxA) {
			out = append(out, p)
			continue
		}
		// Clipping the flipped fragments again drops faces that a already
		// covers with the same orientation.
		frags := na.clipPolygons([]*polygon{p.clone()})
		frags = flipAll(na.clipPolygons(flipAll(frags)))
		out = append(out, keepWhole(p, frags)...)
	}
	return out
}

func keepWhole(p *polygon, frags []*polygon) []*polygon {
	var kept float64
	for _, f := range frags {
		kept += f.area()
	}
	whole := p.area()
	if whole-kept <= areaTolerance*whole {
		return []*polygon{p}
	}
	return frags
}

type box struct{ min, max vec }

func emptyBox() box {
	inf := stdmath.Inf(1)
	return box{min: vec{inf, inf, inf}, max: vec{-inf, -inf, -inf}}
}

func (b box) expand(v vec) box {
	return box{
		min: vec{min(b.min.x, v.x), min(b.min.y, v.y), min(b.min.z, v.z)},
		max: vec{max(b.max.x, v.x), max(b.max.y, v.y), max(b.max.z, v.z)},
	}
}

// overlaps treats boxes closer than epsilon as touching.
func (b box) overlaps(o box) bool {
	return b.min.x <= o.max.x+epsilon && b.max.x >= o.min.x-epsilon &&
		b.min.y <= o.max.y+epsilon && b.max.y >= o.min.y-epsilon &&
		b.min.z <= o.max.z+epsilon && b.max.z >= o.min.z-epsilon
}

func boundsOf(polys []*polygon) box {
	b := emptyBox()
	for _, p := range polys {
		for _, v := range p.vertices {
			b = b.expand(v)
		}
	}
	return b
}
