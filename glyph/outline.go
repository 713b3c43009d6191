package glyph

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"text-creator/math"
)

// Contour is a closed polygon in the glyph plane, y up, baseline at y = 0.
// The last point connects back to the first.
type Contour []math.Vec2

// Area is the signed shoelace area: positive when counter-clockwise.
func (c Contour) Area() float32 {
	var a float32
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		a += p.Cross(q)
	}
	return a / 2
}

// Contains reports whether p is inside c by the even-odd rule.
func (c Contour) Contains(p math.Vec2) bool {
	inside := false
	for i, j := 0, len(c)-1; i < len(c); j, i = i, i+1 {
		a, b := c[i], c[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func (c Contour) reversed() Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

// flatten turns sfnt segments into polygons, subdividing every curve into
// steps straight lines.
func flatten(segs sfnt.Segments, steps int) []Contour {
	if steps < 1 {
		steps = 1
	}
	var (
		contours []Contour
		cur      Contour
		pen      math.Vec2
	)
	closeContour := func() {
		if len(cur) >= 3 {
			contours = append(contours, cur)
		}
		cur = nil
	}

	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			pen = toVec2(seg.Args[0])
			cur = Contour{pen}
		case sfnt.SegmentOpLineTo:
			pen = toVec2(seg.Args[0])
			cur = append(cur, pen)
		case sfnt.SegmentOpQuadTo:
			ctrl, end := toVec2(seg.Args[0]), toVec2(seg.Args[1])
			for i := 1; i <= steps; i++ {
				cur = append(cur, quadAt(pen, ctrl, end, float32(i)/float32(steps)))
			}
			pen = end
		case sfnt.SegmentOpCubeTo:
			c1, c2, end := toVec2(seg.Args[0]), toVec2(seg.Args[1]), toVec2(seg.Args[2])
			for i := 1; i <= steps; i++ {
				cur = append(cur, cubeAt(pen, c1, c2, end, float32(i)/float32(steps)))
			}
			pen = end
		}
	}
	closeContour()
	return contours
}

// toVec2 converts a y-down 26.6 point into the y-up glyph plane.
func toVec2(p fixed.Point26_6) math.Vec2 {
	return math.Vec2{X: float32(p.X) / 64, Y: -float32(p.Y) / 64}
}

func quadAt(p0, p1, p2 math.Vec2, t float32) math.Vec2 {
	u := 1 - t
	return p0.Mul(u * u).Add(p1.Mul(2 * u * t)).Add(p2.Mul(t * t))
}

func cubeAt(p0, p1, p2, p3 math.Vec2, t float32) math.Vec2 {
	u := 1 - t
	return p0.Mul(u * u * u).
		Add(p1.Mul(3 * u * u * t)).
		Add(p2.Mul(3 * u * t * t)).
		Add(p3.Mul(t * t * t))
}
