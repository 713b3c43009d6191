// Package csg implements boolean union of closed triangle meshes on a BSP
// tree in double precision.
package csg

import (
	"errors"
	"fmt"
	stdmath "math"

	"text-creator/core"
	"text-creator/scene"
)

// ErrUnionFailed is returned when the union of two meshes cannot be
// computed or produces an unusable mesh.
var ErrUnionFailed = errors.New("csg: union failed")

// weldGrid is the quantization step used to merge output vertices.
const weldGrid = 1e-5

// Union returns a new mesh covering the space of a and b. The inputs are
// left untouched. When the bounding boxes do not touch, the result is the
// plain concatenation of both meshes. Operands with NaN or infinite
// vertices fail with ErrUnionFailed.
func Union(a, b *scene.Mesh) (out *scene.Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrUnionFailed, r)
		}
	}()

	for _, m := range []*scene.Mesh{a, b} {
		if !finite(m) {
			return nil, fmt.Errorf("%w: %q has a non-finite vertex", ErrUnionFailed, m.Name)
		}
	}

	switch {
	case a.FaceCount() == 0 && b.FaceCount() == 0:
		return nil, fmt.Errorf("%w: both operands empty", ErrUnionFailed)
	case a.FaceCount() == 0:
		return b.Clone(), nil
	case b.FaceCount() == 0:
		return a.Clone(), nil
	}

	if !a.Bounds().Intersects(b.Bounds()) {
		core.Logger().Debug("csg: disjoint operands, concatenating",
			"a", a.Name, "b", b.Name)
		out = a.Clone()
		out.Append(b)
		return out, nil
	}

	polys := unionPolygons(toPolygons(a), toPolygons(b))
	out = toMesh(a.Name, polys)
	switch {
	case out == nil:
		return nil, fmt.Errorf("%w: non-finite vertex", ErrUnionFailed)
	case out.FaceCount() == 0:
		return nil, fmt.Errorf("%w: empty result", ErrUnionFailed)
	}
	return out, nil
}

// UnionAll folds Union over meshes in order. The result never has more
// vertices than the inputs together: a step whose union would grow past
// its two operands keeps them as separate shells instead. progress, when
// set, is called after every step with the number of operands consumed.
func UnionAll(meshes []*scene.Mesh, progress func(done, total int)) (*scene.Mesh, error) {
	if len(meshes) == 0 {
		return nil, fmt.Errorf("%w: no operands", ErrUnionFailed)
	}
	if !finite(meshes[0]) {
		return nil, fmt.Errorf("merge operand 0: %w: non-finite vertex", ErrUnionFailed)
	}
	acc := meshes[0].Clone()
	for i := 1; i < len(meshes); i++ {
		next, err := Union(acc, meshes[i])
		if err != nil {
			core.Logger().Warn("csg: union step failed", "index", i, "err", err)
			return nil, fmt.Errorf("merge operand %d: %w", i, err)
		}
		if limit := acc.VertexCount() + meshes[i].VertexCount(); next.VertexCount() > limit {
			core.Logger().Debug("csg: union grows the mesh, keeping separate shells",
				"index", i, "vertices", next.VertexCount(), "limit", limit)
			next = acc
			next.Append(meshes[i])
		}
		acc = next
		if progress != nil {
			progress(i+1, len(meshes))
		}
	}
	return acc, nil
}

func finite(m *scene.Mesh) bool {
	for _, p := range m.Positions {
		if !fromVec3(p).finite() {
			return false
		}
	}
	return true
}

func toPolygons(m *scene.Mesh) []*polygon {
	out := make([]*polygon, 0, m.FaceCount())
	for i := range m.Faces {
		p0, p1, p2 := m.Triangle(i)
		a, b, c := fromVec3(p0), fromVec3(p1), fromVec3(p2)
		pl, ok := planeFromPoints(a, b, c)
		if !ok {
			continue
		}
		out = append(out, &polygon{vertices: []vec{a, b, c}, plane: pl})
	}
	return out
}

type weldKey [3]int64

func quantize(v vec) weldKey {
	return weldKey{
		int64(stdmath.Round(v.x / weldGrid)),
		int64(stdmath.Round(v.y / weldGrid)),
		int64(stdmath.Round(v.z / weldGrid)),
	}
}

// toMesh fans every convex polygon into triangles and welds coincident
// vertices. It returns nil if any vertex is not finite.
func toMesh(name string, polys []*polygon) *scene.Mesh {
	m := scene.NewMesh(name)
	index := make(map[weldKey]uint32)
	vertex := func(v vec) uint32 {
		k := quantize(v)
		if i, ok := index[k]; ok {
			return i
		}
		i := uint32(len(m.Positions))
		index[k] = i
		m.Positions = append(m.Positions, v.toVec3())
		return i
	}

	for _, p := range polys {
		if len(p.vertices) < 3 {
			continue
		}
		ids := make([]uint32, len(p.vertices))
		for i, v := range p.vertices {
			if !v.finite() {
				return nil
			}
			ids[i] = vertex(v)
		}
		for i := 1; i+1 < len(ids); i++ {
			a, b, c := ids[0], ids[i], ids[i+1]
			if a == b || b == c || a == c {
				continue
			}
			m.Faces = append(m.Faces, [3]uint32{a, b, c})
		}
	}
	return m
}
