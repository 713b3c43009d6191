package io

import (
	"bufio"
	"fmt"
	goio "io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"text-creator/math"
	"text-creator/scene"
)

// OBJ writes Wavefront .obj files.
type OBJ struct{}

func (OBJ) Format() Format { return FormatOBJ }

// Encode writes m as a single object with positions and triangles.
func (OBJ) Encode(w goio.Writer, m *scene.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Exported by text-creator")
	name := m.Name
	if name == "" {
		name = "text"
	}
	fmt.Fprintf(bw, "o %s\n", name)

	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %f %f %f\n", p.X, p.Y, p.Z)
	}
	// OBJ indices are 1-based
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return bw.Flush()
}

// LoadOBJ parses a Wavefront .obj file into one mesh. Every group is merged;
// texture coordinates, normals and materials are ignored.
func LoadOBJ(path string) (*scene.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer f.Close()

	m := scene.NewMesh(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Fields(text)

		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 coordinates", line)
			}
			var xyz [3]float32
			for i := range xyz {
				v, err := strconv.ParseFloat(parts[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", line, err)
				}
				xyz[i] = float32(v)
			}
			m.Positions = append(m.Positions, math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
		case "f":
			ids := make([]uint32, 0, len(parts)-1)
			for _, spec := range parts[1:] {
				id, err := parseFaceIndex(spec, len(m.Positions))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", line, err)
				}
				ids = append(ids, id)
			}
			// fan triangulation for n-gons
			for i := 2; i < len(ids); i++ {
				m.Faces = append(m.Faces, [3]uint32{ids[0], ids[i-1], ids[i]})
			}
		case "o":
			if len(parts) > 1 {
				m.Name = parts[1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if m.FaceCount() == 0 {
		return nil, fmt.Errorf("no mesh data found in OBJ file")
	}
	return m, nil
}

// parseFaceIndex resolves the position part of "v/vt/vn", including
// negative indices relative to the vertices read so far.
func parseFaceIndex(spec string, count int) (uint32, error) {
	pos, _, _ := strings.Cut(spec, "/")
	idx, err := strconv.Atoi(pos)
	if err != nil {
		return 0, fmt.Errorf("face vertex %q: %w", spec, err)
	}
	if idx < 0 {
		idx = count + idx + 1
	}
	if idx <= 0 || idx > count {
		return 0, fmt.Errorf("face vertex %q out of range", spec)
	}
	return uint32(idx - 1), nil
}
