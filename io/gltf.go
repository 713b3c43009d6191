package io

import (
	"fmt"
	goio "io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"text-creator/math"
	"text-creator/scene"
)

// GLB writes binary glTF 2.0 files holding one mesh node.
type GLB struct{}

func (GLB) Format() Format { return FormatGLB }

// Encode writes m as a single triangle primitive.
func (GLB) Encode(w goio.Writer, m *scene.Mesh) error {
	doc := gltf.NewDocument()

	positions := make([][3]float32, len(m.Positions))
	for i, p := range m.Positions {
		positions[i] = [3]float32{p.X, p.Y, p.Z}
	}
	indices := make([]uint32, 0, 3*len(m.Faces))
	for _, f := range m.Faces {
		indices = append(indices, f[0], f[1], f[2])
	}

	pos := modeler.WritePosition(doc, positions)
	idx := modeler.WriteIndices(doc, indices)

	doc.Meshes = []*gltf.Mesh{{
		Name: m.Name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: m.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

// LoadGLB reads every triangle primitive of a .glb or .gltf file into one
// mesh. Node transforms are not applied.
func LoadGLB(path string) (*scene.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	out := scene.NewMesh("")
	for mi, gm := range doc.Meshes {
		if out.Name == "" {
			out.Name = gm.Name
		}
		for pi, prim := range gm.Primitives {
			part, err := loadPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("gltf: mesh %d prim %d: %w", mi, pi, err)
			}
			out.Append(part)
		}
	}
	if out.FaceCount() == 0 {
		return nil, fmt.Errorf("gltf %q: no triangles", path)
	}
	return out, nil
}

func loadPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*scene.Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("unsupported primitive mode %v", prim.Mode)
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	raw, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	positions := make([]math.Vec3, len(raw))
	for i, p := range raw {
		positions[i] = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	faces := make([][3]uint32, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		faces = append(faces, [3]uint32{indices[i], indices[i+1], indices[i+2]})
	}
	return scene.CreateMeshFromData("", positions, faces), nil
}
