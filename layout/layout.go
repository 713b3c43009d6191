// Package layout places glyph solids on the build plate: horizontal spacing,
// uniform size, extrusion height and the optional underline.
package layout

import (
	"text-creator/scene"
)

// Settings are the user-facing layout controls.
type Settings struct {
	Spacing   float32
	Size      float32
	Height    float32
	Underline bool
}

func DefaultSettings() Settings {
	return Settings{Spacing: 1, Size: 1, Height: 0.25, Underline: true}
}

// Apply brings every glyph solid to s and regenerates the underline so it
// matches the new glyph bounds. Applying the same settings twice leaves
// the set unchanged.
func Apply(set *scene.SolidSet, s Settings) {
	old := RemoveUnderline(set)

	SetWordSize(set, s.Size)
	SetWordSpacing(set, s.Spacing)
	SetWordHeight(set, s.Height)

	if s.Underline {
		recreate(set, old)
	}
}

// RebuildUnderline refits an existing underline to the current glyphs
// without touching them. The underline keeps its ID.
func RebuildUnderline(set *scene.SolidSet) {
	if old := RemoveUnderline(set); old != nil {
		recreate(set, old)
	}
}

func recreate(set *scene.SolidSet, old *scene.Solid) {
	if CreateUnderline(set) && old != nil {
		set.Last().ID = old.ID
	}
}

// SetWordSpacing moves each glyph to its shaped offset scaled by spacing and
// by the glyph's current size.
func SetWordSpacing(set *scene.SolidSet, spacing float32) {
	for i, solid := range set.Solids {
		if solid.Kind != scene.KindGlyph {
			continue
		}
		d := set.Metadata[i]
		set.SetOffsetX(i, d.XSpacing*spacing*d.CurrentSize)
	}
}

// SetWordSize scales each glyph uniformly to size.
func SetWordSize(set *scene.SolidSet, size float32) {
	for i, solid := range set.Solids {
		if solid.Kind == scene.KindGlyph {
			set.SetUniformScale(i, size)
		}
	}
}

// SetWordHeight scales each glyph's extrusion to height.
func SetWordHeight(set *scene.SolidSet, height float32) {
	for i, solid := range set.Solids {
		if solid.Kind == scene.KindGlyph {
			set.SetHeightScale(i, height)
		}
	}
}
