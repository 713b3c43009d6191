// Package io writes finished meshes to disk in the formats accepted by
// slicers and viewers.
package io

import (
	"errors"
	"fmt"
	goio "io"
	"os"
	"path/filepath"
	"strings"

	"text-creator/core"
	"text-creator/scene"
)

// Format names a file format by its extension, without the dot.
type Format string

const (
	FormatSTL Format = "stl"
	FormatOBJ Format = "obj"
	FormatGLB Format = "glb"
)

// ErrUnknownFormat is returned for extensions with no serializer.
var ErrUnknownFormat = errors.New("io: unknown format")

// Serializer encodes a single mesh.
type Serializer interface {
	Format() Format
	Encode(w goio.Writer, m *scene.Mesh) error
}

// ForFormat returns the serializer for a format name such as "stl" or ".glb".
func ForFormat(name string) (Serializer, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(name, "."))) {
	case FormatSTL:
		return STL{}, nil
	case FormatOBJ:
		return OBJ{}, nil
	case FormatGLB:
		return GLB{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ForPath picks the serializer from the extension of path.
func ForPath(path string) (Serializer, error) {
	return ForFormat(filepath.Ext(path))
}

// WriteFile encodes m into path. The data goes to a temporary file in the
// same directory which is renamed over path once complete, so a failed
// write never leaves a partial file behind.
func WriteFile(path string, m *scene.Mesh) (err error) {
	s, err := ForPath(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = s.Encode(tmp, m); err != nil {
		return fmt.Errorf("encode %s: %w", s.Format(), err)
	}
	// CreateTemp makes the file owner-only.
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}

	core.Logger().Debug("io: wrote mesh",
		"path", path, "vertices", m.VertexCount(), "faces", m.FaceCount())
	return nil
}

// ReadFile loads a mesh previously written by WriteFile.
func ReadFile(path string) (*scene.Mesh, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))) {
	case FormatSTL:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadSTL(f)
	case FormatOBJ:
		return LoadOBJ(path)
	case FormatGLB:
		return LoadGLB(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}
