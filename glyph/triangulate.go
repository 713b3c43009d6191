package glyph

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"

	"text-creator/math"
)

const (
	// Points closer than this are merged.
	weldDistance = 1e-5
	// Corners whose sine is below this are treated as straight.
	collinearSine = 1e-6
)

// Shape is a triangulated planar region.
type Shape struct {
	Points []math.Vec2
	// Triangles are counter-clockwise.
	Triangles [][3]uint32
	// Boundaries are the closed loops of the region: outer loops
	// counter-clockwise, holes clockwise, so the region is on the left.
	Boundaries [][]uint32
}

// Area sums the triangle areas.
func (s Shape) Area() float32 {
	var a float32
	for _, t := range s.Triangles {
		a += orient(s.Points[t[0]], s.Points[t[1]], s.Points[t[2]]) / 2
	}
	return a
}

// Triangulate fills contours with the even-odd rule. Contours nested at an
// even depth are outlines, odd depths are holes of their closest enclosing
// outline.
func Triangulate(contours []Contour) Shape {
	var loops []Contour
	for _, c := range contours {
		c = clean(c)
		if len(c) >= 3 && math32.Abs(c.Area()) > weldDistance {
			loops = append(loops, c)
		}
	}
	if len(loops) == 0 {
		return Shape{}
	}

	depth := make([]int, len(loops))
	for i := range loops {
		for j := range loops {
			if i != j && loops[j].Contains(loops[i][0]) {
				depth[i]++
			}
		}
	}

	var shape Shape
	index := make([][]uint32, len(loops))
	for i, c := range loops {
		hole := depth[i]%2 == 1
		if (c.Area() < 0) != hole {
			c = c.reversed()
			loops[i] = c
		}
		base := uint32(len(shape.Points))
		shape.Points = append(shape.Points, c...)
		idx := make([]uint32, len(c))
		for k := range idx {
			idx[k] = base + uint32(k)
		}
		index[i] = idx
		shape.Boundaries = append(shape.Boundaries, idx)
	}

	holes := make(map[int][]int)
	for h := range loops {
		if depth[h]%2 == 0 {
			continue
		}
		parent := -1
		for o := range loops {
			if depth[o] != depth[h]-1 || !loops[o].Contains(loops[h][0]) {
				continue
			}
			if parent < 0 || math32.Abs(loops[o].Area()) < math32.Abs(loops[parent].Area()) {
				parent = o
			}
		}
		if parent >= 0 {
			holes[parent] = append(holes[parent], h)
		}
	}

	for o := range loops {
		if depth[o]%2 == 1 {
			continue
		}
		hs := holes[o]
		// Rightmost holes first so later bridges never cross earlier ones.
		slices.SortFunc(hs, func(a, b int) int {
			return cmp.Compare(maxX(shape.Points, index[b]), maxX(shape.Points, index[a]))
		})
		poly := append([]uint32(nil), index[o]...)
		for k, h := range hs {
			var pending [][]uint32
			for _, other := range hs[k+1:] {
				pending = append(pending, index[other])
			}
			poly = bridge(shape.Points, poly, index[h], pending)
		}
		shape.Triangles = append(shape.Triangles, earClip(shape.Points, poly)...)
	}
	return shape
}

// clean drops repeated points, the closing duplicate and straight corners.
func clean(c Contour) Contour {
	out := make(Contour, 0, len(c))
	for _, p := range c {
		if len(out) > 0 && out[len(out)-1].Distance(p) < weldDistance {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Distance(out[len(out)-1]) < weldDistance {
		out = out[:len(out)-1]
	}

	for changed := true; changed && len(out) >= 3; {
		changed = false
		for i := 0; i < len(out) && len(out) >= 3; i++ {
			n := len(out)
			a, b, c := out[(i+n-1)%n], out[i], out[(i+1)%n]
			ab, bc := b.Sub(a), c.Sub(b)
			if math32.Abs(ab.Cross(bc)) <= collinearSine*ab.Length()*bc.Length() {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return out
}

// bridge splices hole into poly through the closest vertex of poly that the
// hole's rightmost vertex can see.
func bridge(pts []math.Vec2, poly, hole []uint32, pending [][]uint32) []uint32 {
	m := 0
	for i := range hole {
		if pts[hole[i]].X > pts[hole[m]].X {
			m = i
		}
	}
	mp := pts[hole[m]]
	obstacles := append([][]uint32{poly, hole}, pending...)

	best, fallback := -1, -1
	bestDist, fallbackDist := float32(math32.MaxFloat32), float32(math32.MaxFloat32)
	for i, vi := range poly {
		d := pts[vi].Sub(mp).LengthSqr()
		if d < fallbackDist {
			fallback, fallbackDist = i, d
		}
		if d >= bestDist {
			continue
		}
		if visible(pts, mp, pts[vi], obstacles) {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		best = fallback
	}

	out := make([]uint32, 0, len(poly)+len(hole)+2)
	out = append(out, poly[:best+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(m+k)%len(hole)])
	}
	out = append(out, poly[best])
	return append(out, poly[best+1:]...)
}

// visible reports whether segment a-b crosses no edge of loops. Edges
// touching a or b are ignored.
func visible(pts []math.Vec2, a, b math.Vec2, loops [][]uint32) bool {
	for _, loop := range loops {
		for i := range loop {
			p, q := pts[loop[i]], pts[loop[(i+1)%len(loop)]]
			if p == a || p == b || q == a || q == b {
				continue
			}
			if segmentsCross(a, b, p, q) {
				return false
			}
		}
	}
	return true
}

func segmentsCross(a, b, c, d math.Vec2) bool {
	d1 := orient(c, d, a)
	d2 := orient(c, d, b)
	d3 := orient(a, b, c)
	d4 := orient(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// earClip triangulates a simple counter-clockwise polygon given as indices.
// It always terminates: when no clean ear exists the most convex corner is
// cut, or a degenerate corner dropped.
func earClip(pts []math.Vec2, poly []uint32) [][3]uint32 {
	idx := append([]uint32(nil), poly...)
	tris := make([][3]uint32, 0, len(idx))

	start := 0
	for len(idx) > 3 {
		n := len(idx)
		clipped := false
		for k := 0; k < n; k++ {
			i := (start + k) % n
			prev, cur, next := idx[(i+n-1)%n], idx[i], idx[(i+1)%n]
			if isEar(pts, idx, prev, cur, next) {
				tris = append(tris, [3]uint32{prev, cur, next})
				idx = append(idx[:i], idx[i+1:]...)
				start = i
				clipped = true
				break
			}
		}
		if clipped {
			continue
		}

		i, best := 0, float32(-math32.MaxFloat32)
		for k := 0; k < n; k++ {
			o := orient(pts[idx[(k+n-1)%n]], pts[idx[k]], pts[idx[(k+1)%n]])
			if o > best {
				i, best = k, o
			}
		}
		if best > 0 {
			tris = append(tris, [3]uint32{idx[(i+n-1)%n], idx[i], idx[(i+1)%n]})
		}
		idx = append(idx[:i], idx[i+1:]...)
		start = i
	}

	if len(idx) == 3 && orient(pts[idx[0]], pts[idx[1]], pts[idx[2]]) > 0 {
		tris = append(tris, [3]uint32{idx[0], idx[1], idx[2]})
	}
	return tris
}

func isEar(pts []math.Vec2, idx []uint32, prev, cur, next uint32) bool {
	a, b, c := pts[prev], pts[cur], pts[next]
	if orient(a, b, c) <= 0 {
		return false
	}
	for _, vi := range idx {
		if vi == prev || vi == cur || vi == next {
			continue
		}
		p := pts[vi]
		if p == a || p == b || p == c {
			continue
		}
		if inTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

// inTriangle includes the edges of the counter-clockwise triangle abc.
func inTriangle(p, a, b, c math.Vec2) bool {
	return orient(a, b, p) >= 0 && orient(b, c, p) >= 0 && orient(c, a, p) >= 0
}

// orient is twice the signed area of abc.
func orient(a, b, c math.Vec2) float32 {
	return b.Sub(a).Cross(c.Sub(a))
}

func maxX(pts []math.Vec2, loop []uint32) float32 {
	x := float32(-math32.MaxFloat32)
	for _, i := range loop {
		x = math32.Max(x, pts[i].X)
	}
	return x
}
