package glyph

import (
	"text-creator/math"
	"text-creator/scene"
)

// Extrude sweeps shape from z = 0 to z = depth into a closed solid with
// outward-facing triangles. It returns nil when the shape has no triangles.
func Extrude(shape Shape, depth float32) *scene.Mesh {
	if len(shape.Triangles) == 0 {
		return nil
	}
	n := uint32(len(shape.Points))

	positions := make([]math.Vec3, 0, 2*n)
	for _, p := range shape.Points {
		positions = append(positions, p.ToVec3(0))
	}
	for _, p := range shape.Points {
		positions = append(positions, p.ToVec3(depth))
	}

	faces := make([][3]uint32, 0, 2*len(shape.Triangles)+2*int(n))
	for _, t := range shape.Triangles {
		faces = append(faces,
			[3]uint32{t[0], t[2], t[1]},
			[3]uint32{t[0] + n, t[1] + n, t[2] + n},
		)
	}
	// The region lies left of every boundary edge, so the wall quad
	// a, b, b', a' faces outward.
	for _, loop := range shape.Boundaries {
		for k := range loop {
			a, b := loop[k], loop[(k+1)%len(loop)]
			faces = append(faces,
				[3]uint32{a, b, b + n},
				[3]uint32{a, b + n, a + n},
			)
		}
	}
	return scene.CreateMeshFromData("Extrusion", positions, faces)
}
