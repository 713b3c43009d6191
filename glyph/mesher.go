// Package glyph turns text into one extruded solid per inked character.
package glyph

import (
	"context"
	"fmt"

	"text-creator/core"
	"text-creator/math"
	"text-creator/scene"
)

// OutlineSource is the font side of the mesher.
type OutlineSource interface {
	Contours(r rune) ([]Contour, error)
	// Size is the advance width and line height of text.
	Size(text string) math.Vec2
	// Offsets is the pen x position of every rune of text.
	Offsets(text string) []float32
}

// Glyph is one meshed character.
type Glyph struct {
	// Index is the rune index within the text.
	Index int
	Rune  rune
	Mesh  *scene.Mesh
	// XSpacing is the pen offset shifted so the text is centred on x = 0.
	XSpacing float32
}

// Mesher extrudes glyph outlines.
type Mesher struct {
	Source OutlineSource
	// Depth is the extrusion of even-indexed glyphs; odd ones get one more
	// unit so that neighbouring caps never share a plane.
	Depth float32
}

func NewMesher(src OutlineSource, depth float32) *Mesher {
	return &Mesher{Source: src, Depth: depth}
}

// MeshGlyph extrudes r. It returns nil when the glyph has no ink.
func (m *Mesher) MeshGlyph(r rune, index int) (*scene.Mesh, error) {
	contours, err := m.Source.Contours(r)
	if err != nil {
		return nil, err
	}
	shape := Triangulate(contours)
	mesh := Extrude(shape, m.Depth+float32(index%2))
	if mesh == nil {
		return nil, nil
	}
	mesh.Name = string(r)
	return mesh, nil
}

// MeshText meshes every rune of text in order, skipping glyphs without ink.
// ctx is checked between glyphs; progress receives the number of runes done.
func (m *Mesher) MeshText(ctx context.Context, text string, progress func(done, total int)) ([]Glyph, error) {
	runes := []rune(text)
	offsets := m.Source.Offsets(text)
	half := m.Source.Size(text).X / 2

	glyphs := make([]Glyph, 0, len(runes))
	for i, r := range runes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mesh, err := m.MeshGlyph(r, i)
		if err != nil {
			return nil, fmt.Errorf("mesh %q at %d: %w", r, i, err)
		}
		if mesh == nil {
			core.Logger().Debug("glyph has no ink", "rune", string(r), "index", i)
		} else {
			var offset float32
			if i < len(offsets) {
				offset = offsets[i]
			}
			glyphs = append(glyphs, Glyph{Index: i, Rune: r, Mesh: mesh, XSpacing: offset - half})
		}
		if progress != nil {
			progress(i+1, len(runes))
		}
	}
	return glyphs, nil
}
