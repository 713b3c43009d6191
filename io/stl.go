package io

import (
	"bufio"
	"encoding/binary"
	"fmt"
	goio "io"
	stdmath "math"

	"text-creator/math"
	"text-creator/scene"
)

const stlHeaderSize = 80

// STL writes binary stereolithography files.
type STL struct{}

func (STL) Format() Format { return FormatSTL }

// Encode writes m as binary STL with per-face normals.
func (STL) Encode(w goio.Writer, m *scene.Mesh) error {
	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], "text-creator "+m.Name)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(m.FaceCount())); err != nil {
		return err
	}

	var rec [50]byte
	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		for j, v := range [4]math.Vec3{n, a, b, c} {
			off := j * 12
			binary.LittleEndian.PutUint32(rec[off:], stdmath.Float32bits(v.X))
			binary.LittleEndian.PutUint32(rec[off+4:], stdmath.Float32bits(v.Y))
			binary.LittleEndian.PutUint32(rec[off+8:], stdmath.Float32bits(v.Z))
		}
		// attribute byte count stays zero
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadSTL parses a binary STL stream, merging identical corners.
func ReadSTL(r goio.Reader) (*scene.Mesh, error) {
	br := bufio.NewReader(r)

	var header [stlHeaderSize]byte
	if _, err := goio.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("stl header: %w", err)
	}
	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("stl face count: %w", err)
	}

	m := scene.NewMesh("stl")
	index := make(map[math.Vec3]uint32)
	var rec [50]byte
	for i := uint32(0); i < count; i++ {
		if _, err := goio.ReadFull(br, rec[:]); err != nil {
			return nil, fmt.Errorf("stl face %d: %w", i, err)
		}
		var face [3]uint32
		for j := 0; j < 3; j++ {
			off := 12 + j*12
			v := math.Vec3{
				X: stdmath.Float32frombits(binary.LittleEndian.Uint32(rec[off:])),
				Y: stdmath.Float32frombits(binary.LittleEndian.Uint32(rec[off+4:])),
				Z: stdmath.Float32frombits(binary.LittleEndian.Uint32(rec[off+8:])),
			}
			id, ok := index[v]
			if !ok {
				id = uint32(len(m.Positions))
				index[v] = id
				m.Positions = append(m.Positions, v)
			}
			face[j] = id
		}
		m.Faces = append(m.Faces, face)
	}
	return m, nil
}
