package scene

import (
	"fmt"

	"github.com/jinzhu/copier"

	"text-creator/math"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name      string
	Positions []math.Vec3
	Faces     [][3]uint32
}

func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Positions: make([]math.Vec3, 0),
		Faces:     make([][3]uint32, 0),
	}
}

func CreateMeshFromData(name string, positions []math.Vec3, faces [][3]uint32) *Mesh {
	return &Mesh{Name: name, Positions: positions, Faces: faces}
}

func (m *Mesh) VertexCount() int { return len(m.Positions) }

func (m *Mesh) FaceCount() int { return len(m.Faces) }

// Triangle returns the corner positions of face i.
func (m *Mesh) Triangle(i int) (math.Vec3, math.Vec3, math.Vec3) {
	f := m.Faces[i]
	return m.Positions[f[0]], m.Positions[f[1]], m.Positions[f[2]]
}

// Bounds returns the local-space box of the vertices.
func (m *Mesh) Bounds() math.AABB {
	return math.AABBFromPoints(m.Positions...)
}

// TransformedBounds returns the tight box of the vertices under world.
func (m *Mesh) TransformedBounds(world math.Mat4) math.AABB {
	box := math.EmptyAABB()
	for _, p := range m.Positions {
		box = box.ExpandPoint(world.MulVec3(p))
	}
	return box
}

// Transform bakes world into the vertex positions.
func (m *Mesh) Transform(world math.Mat4) {
	for i, p := range m.Positions {
		m.Positions[i] = world.MulVec3(p)
	}
}

// Append adds other's geometry, re-indexing its faces.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, other.Positions...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, [3]uint32{f[0] + base, f[1] + base, f[2] + base})
	}
}

// Clone returns a deep copy that shares no slices with m.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{}
	if err := copier.CopyWithOption(out, m, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen for
		// identical types.
		panic(fmt.Sprintf("scene: clone mesh %q: %v", m.Name, err))
	}
	return out
}

// Volume returns the signed volume enclosed by the faces. It is positive for
// closed meshes wound counter-clockwise seen from outside.
func (m *Mesh) Volume() float32 {
	var v float64
	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		v += float64(a.Dot(b.Cross(c)))
	}
	return float32(v / 6)
}

// Validate checks that every face references an existing vertex.
func (m *Mesh) Validate() error {
	n := uint32(len(m.Positions))
	for i, f := range m.Faces {
		if f[0] >= n || f[1] >= n || f[2] >= n {
			return fmt.Errorf("mesh %q: face %d references vertex out of range (%d vertices)", m.Name, i, n)
		}
	}
	return nil
}
