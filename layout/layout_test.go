package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-creator/core"
	"text-creator/math"
	"text-creator/scene"
)

// glyphSet builds unit-footprint glyph stand-ins, 10 deep, resting on the
// plate at the given shaped offsets.
func glyphSet(offsets ...float32) *scene.SolidSet {
	set := scene.NewSolidSet()
	for _, off := range offsets {
		mesh := scene.CreateBox(math.NewVec3(1, 8, 10))
		mesh.Transform(math.Mat4Translation(math.NewVec3(0.5, 4, 5)))
		set.Append(scene.NewSolid(scene.KindGlyph, mesh), core.NewTransform(), scene.NewPlatingData(mesh, off))
	}
	return set
}

func origins(set *scene.SolidSet) []float32 {
	var xs []float32
	for i := range set.Solids {
		xs = append(xs, set.Transform(i).Origin().X)
	}
	return xs
}

func TestSetWordSpacing(t *testing.T) {
	set := glyphSet(-10, 0, 10)

	SetWordSpacing(set, 0.5)
	assert.Equal(t, []float32{-5, 0, 5}, origins(set))

	for i := 0; i < 5; i++ {
		SetWordSpacing(set, 0.5)
	}
	assert.Equal(t, []float32{-5, 0, 5}, origins(set), "spacing is idempotent")

	SetWordSpacing(set, 1)
	assert.Equal(t, []float32{-10, 0, 10}, origins(set))
}

func TestSpacingFollowsSize(t *testing.T) {
	set := glyphSet(-10, 10)
	SetWordSize(set, 2)
	SetWordSpacing(set, 1)
	assert.Equal(t, []float32{-20, 20}, origins(set))

	b := set.Solids[1].Mesh.TransformedBounds(set.Transform(1).Total())
	assert.InDelta(t, 2, b.Size().X, 1e-5)
	assert.InDelta(t, 20, b.Size().Z, 1e-4)
}

func TestSetWordHeight(t *testing.T) {
	set := glyphSet(0)
	SetWordHeight(set, 0.25)
	b := set.Bounds()
	assert.InDelta(t, 2.5, b.Max.Z, 1e-5)
	assert.InDelta(t, 0, b.Min.Z, 1e-6, "height scales about the plate")

	SetWordHeight(set, 1)
	assert.InDelta(t, 10, set.Bounds().Max.Z, 1e-5)
}

func TestCreateUnderline(t *testing.T) {
	set := glyphSet(-10, 10)
	SetWordSpacing(set, 1)
	require.True(t, CreateUnderline(set))
	require.Equal(t, 3, set.Len())
	require.NoError(t, set.Validate())

	u := set.Last()
	assert.Equal(t, scene.KindUnderline, u.Kind)

	// Glyphs span x -10..11, y 0..8, z 0..10.
	b := u.Mesh.TransformedBounds(set.Transform(2).Total())
	assert.True(t, b.Size().ApproxEqual(math.NewVec3(21, 1.6, 10.0/3), 1e-5), "size %v", b.Size())
	assert.InDelta(t, 0.5, b.Center().X, 1e-5)
	assert.InDelta(t, 0, b.Min.Z, 1e-5)
	assert.InDelta(t, -1.6*2/3, b.Min.Y, 1e-5)

	assert.False(t, CreateUnderline(scene.NewSolidSet()))
}

func TestRemoveUnderline(t *testing.T) {
	set := glyphSet(0, 5)
	assert.Nil(t, RemoveUnderline(set), "last solid is a glyph")
	assert.Equal(t, 2, set.Len())

	CreateUnderline(set)
	removed := RemoveUnderline(set)
	require.NotNil(t, removed)
	assert.Equal(t, scene.KindUnderline, removed.Kind)
	assert.Equal(t, 2, set.Len())
}

func TestApplyIsIdempotent(t *testing.T) {
	set := glyphSet(-10, 0, 10)
	s := Settings{Spacing: 0.75, Size: 1.5, Height: 0.25, Underline: true}

	Apply(set, s)
	require.Equal(t, 4, set.Len())
	first := append([]core.Transform(nil), set.Transforms...)
	underlineID := set.Last().ID
	underlineBox := set.Bounds()

	Apply(set, s)
	require.Equal(t, 4, set.Len())
	assert.Equal(t, first, set.Transforms)
	assert.Equal(t, underlineID, set.Last().ID, "rebuilt underline keeps its identity")
	assert.Equal(t, underlineBox, set.Bounds())
}

func TestUnderlineToggleRegeneratesSameBox(t *testing.T) {
	set := glyphSet(-10, 10)
	s := DefaultSettings()
	Apply(set, s)
	before := set.Last().Mesh.TransformedBounds(set.Transform(set.Len() - 1).Total())

	s.Underline = false
	Apply(set, s)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 0, set.Count(scene.KindUnderline))

	s.Underline = true
	Apply(set, s)
	require.Equal(t, 3, set.Len())
	after := set.Last().Mesh.TransformedBounds(set.Transform(set.Len() - 1).Total())
	assert.Equal(t, before, after)
}

func TestRebuildUnderlineKeepsGlyphs(t *testing.T) {
	set := glyphSet(-10, 0, 10)
	Apply(set, DefaultSettings())
	id := set.Last().ID

	set.Translate(0, math.NewVec3(-5, 0, 0))
	glyphs := append([]core.Transform(nil), set.Transforms[:3]...)
	RebuildUnderline(set)

	require.Equal(t, 4, set.Len())
	assert.Equal(t, glyphs, set.Transforms[:3])
	assert.Equal(t, id, set.Last().ID)
	assert.InDelta(t, GlyphBounds(set).Min.X, set.Bounds().Min.X, 1e-5)

	plain := glyphSet(0)
	RebuildUnderline(plain)
	assert.Equal(t, 1, plain.Len(), "no underline is created when none existed")
}
