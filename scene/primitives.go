package scene

import "text-creator/math"

// CreateBox returns a closed box of the given size centred on the origin,
// with 8 shared corners and outward-facing triangles.
func CreateBox(size math.Vec3) *Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2

	// Corner i has +x when bit 0 is set, +y for bit 1, +z for bit 2.
	positions := make([]math.Vec3, 8)
	for i := range positions {
		p := math.Vec3{X: -hx, Y: -hy, Z: -hz}
		if i&1 != 0 {
			p.X = hx
		}
		if i&2 != 0 {
			p.Y = hy
		}
		if i&4 != 0 {
			p.Z = hz
		}
		positions[i] = p
	}

	faces := [][3]uint32{
		{0, 2, 1}, {1, 2, 3}, // -Z
		{4, 5, 6}, {5, 7, 6}, // +Z
		{0, 1, 5}, {0, 5, 4}, // -Y
		{2, 7, 3}, {2, 6, 7}, // +Y
		{0, 4, 6}, {0, 6, 2}, // -X
		{1, 3, 7}, {1, 7, 5}, // +X
	}
	return CreateMeshFromData("Box", positions, faces)
}

// CreateCube returns a box with equal sides.
func CreateCube(size float32) *Mesh {
	m := CreateBox(math.Vec3{X: size, Y: size, Z: size})
	m.Name = "Cube"
	return m
}
