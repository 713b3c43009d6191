package trace

import (
	"cmp"
	"slices"

	"text-creator/math"
)

// Hierarchy is an interior node of a bounding-volume hierarchy.
type Hierarchy struct {
	left, right Traceable
	bounds      math.AABB
}

// NewHierarchy builds a binary BVH over items by recursively splitting at the
// median centroid along the longest axis. A single item is returned as is;
// no items yields Empty. The items slice is not modified.
func NewHierarchy(items []Traceable) Traceable {
	if len(items) == 0 {
		return Empty{}
	}
	entries := make([]entry, len(items))
	for i, it := range items {
		b := it.Bounds()
		entries[i] = entry{item: it, bounds: b, center: b.Center()}
	}
	return build(entries)
}

type entry struct {
	item   Traceable
	bounds math.AABB
	center math.Vec3
}

func build(entries []entry) Traceable {
	if len(entries) == 1 {
		return entries[0].item
	}

	bounds := math.EmptyAABB()
	centers := math.EmptyAABB()
	for _, e := range entries {
		bounds = bounds.Union(e.bounds)
		centers = centers.ExpandPoint(e.center)
	}

	size := centers.Size()
	axis := 0
	if size.Y > size.Axis(axis) {
		axis = 1
	}
	if size.Z > size.Axis(axis) {
		axis = 2
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.center.Axis(axis), b.center.Axis(axis))
	})

	mid := len(entries) / 2
	return &Hierarchy{
		left:   build(entries[:mid]),
		right:  build(entries[mid:]),
		bounds: bounds,
	}
}

func (h *Hierarchy) Bounds() math.AABB { return h.bounds }

func (h *Hierarchy) Intersect(ray math.Ray) (Hit, bool) {
	if _, ok := h.bounds.IntersectRay(ray); !ok {
		return Hit{}, false
	}
	best, found := h.left.Intersect(ray)
	if hit, ok := h.right.Intersect(ray); ok && (!found || hit.Distance < best.Distance) {
		best, found = hit, true
	}
	return best, found
}

func (h *Hierarchy) Contained(box math.AABB, out []Traceable) []Traceable {
	if !box.Intersects(h.bounds) {
		return out
	}
	out = h.left.Contained(box, out)
	return h.right.Contained(box, out)
}

// NewMeshHierarchy wraps every face of an indexed triangle mesh as a
// Triangle and builds a hierarchy over them. Faces referencing missing
// vertices are skipped.
func NewMeshHierarchy(positions []math.Vec3, faces [][3]uint32) Traceable {
	items := make([]Traceable, 0, len(faces))
	n := uint32(len(positions))
	for _, f := range faces {
		if f[0] >= n || f[1] >= n || f[2] >= n {
			continue
		}
		items = append(items, NewTriangle(positions[f[0]], positions[f[1]], positions[f[2]]))
	}
	return NewHierarchy(items)
}
