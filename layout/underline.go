package layout

import (
	"text-creator/core"
	"text-creator/math"
	"text-creator/scene"
)

// GlyphBounds is the union of the glyph solids' boxes in world space.
func GlyphBounds(set *scene.SolidSet) math.AABB {
	box := math.EmptyAABB()
	for i, solid := range set.Solids {
		if solid.Kind == scene.KindGlyph {
			box = box.Union(solid.Mesh.TransformedBounds(set.Transforms[i].Total()))
		}
	}
	return box
}

// CreateUnderline appends a bar as wide as the glyphs, a fifth of their
// height and a third of their depth, resting on the plate just below the
// baseline. It reports false when there are no glyphs.
func CreateUnderline(set *scene.SolidSet) bool {
	box := GlyphBounds(set)
	if box.IsEmpty() {
		return false
	}
	size := box.Size()
	y, z := size.Y/5, size.Z/3

	mesh := scene.CreateBox(math.Vec3{X: size.X, Y: y, Z: z})
	mesh.Name = "Underline"

	t := core.NewTransform()
	t.Translate = math.Mat4Translation(math.Vec3{
		X: (box.Max.X + box.Min.X) / 2,
		Y: y/2 - y*2/3,
		Z: z / 2,
	})
	set.Append(scene.NewSolid(scene.KindUnderline, mesh), t, scene.NewPlatingData(mesh, 0))
	return true
}

// RemoveUnderline drops the trailing underline and returns it. Nothing is
// removed unless the last solid is an underline and another solid remains.
func RemoveUnderline(set *scene.SolidSet) *scene.Solid {
	last := set.Last()
	if last == nil || last.Kind != scene.KindUnderline || set.Len() < 2 {
		return nil
	}
	solid, _, _ := set.RemoveAt(set.Len() - 1)
	return solid
}
