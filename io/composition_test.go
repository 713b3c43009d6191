package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-creator/core"
	"text-creator/math"
	"text-creator/scene"
)

func twoSolids() *scene.SolidSet {
	set := scene.NewSolidSet()
	for _, k := range []scene.Kind{scene.KindGlyph, scene.KindUnderline} {
		m := scene.CreateCube(1)
		set.Append(scene.NewSolid(k, m), core.NewTransform(), scene.NewPlatingData(m, 0))
	}
	return set
}

func TestCompositionRoundTrip(t *testing.T) {
	set := twoSolids()
	set.Translate(0, math.NewVec3(3, 4, 0))
	set.SetUniformScale(0, 1.5)
	set.SetRotationZ(0, 0.5)

	settings := SettingsData{Spacing: .75, Size: 1.5, Height: .25, Underline: true}
	path := filepath.Join(t.TempDir(), "word.tcomp")
	require.NoError(t, SaveComposition(path, NewCompositionFile("AB", "gobold", settings, set)))

	c, err := LoadComposition(path)
	require.NoError(t, err)
	assert.Equal(t, "AB", c.Text)
	assert.Equal(t, settings, c.Settings)

	fresh := twoSolids()
	require.NoError(t, c.Restore(fresh))
	assert.Equal(t, set.Transforms, fresh.Transforms)
	assert.Equal(t, set.Solids[0].ID, fresh.Solids[0].ID)
	assert.Equal(t, float32(1.5), fresh.Metadata[0].CurrentSize)
}

func glyphRow(n int) *scene.SolidSet {
	set := scene.NewSolidSet()
	for i := 0; i < n; i++ {
		m := scene.CreateCube(1)
		d := scene.NewPlatingData(m, float32(i))
		d.RuneIndex = i
		set.Append(scene.NewSolid(scene.KindGlyph, m), core.NewTransform(), d)
		set.Translate(i, math.NewVec3(float32(2*i), 0, 0))
	}
	return set
}

func TestCompositionRestoreDropsDeletedGlyphs(t *testing.T) {
	set := glyphRow(3)
	underline := scene.CreateBox(math.NewVec3(4, 0.2, 0.3))
	set.Append(scene.NewSolid(scene.KindUnderline, underline), core.NewTransform(), scene.NewPlatingData(underline, 0))
	set.RemoveAt(0)
	set.Translate(0, math.NewVec3(0, 5, 0))

	c := NewCompositionFile("ABC", "gobold", SettingsData{Underline: true}, set)

	fresh := glyphRow(3)
	wide := scene.CreateBox(math.NewVec3(6, 0.2, 0.3))
	fresh.Append(scene.NewSolid(scene.KindUnderline, wide), core.NewTransform(), scene.NewPlatingData(wide, 0))
	require.NoError(t, c.Restore(fresh))

	require.Equal(t, 3, fresh.Len())
	require.NoError(t, fresh.Validate())
	for i := range set.Solids {
		assert.Equal(t, set.Solids[i].ID, fresh.Solids[i].ID)
		assert.Equal(t, set.Solids[i].Kind, fresh.Solids[i].Kind)
	}
	assert.Equal(t, set.Transforms, fresh.Transforms)
	assert.Equal(t, 1, fresh.Metadata[0].RuneIndex)
	assert.Equal(t, 2, fresh.Metadata[1].RuneIndex)
	assert.Equal(t, math.NewVec3(4, 0.2, 0.3), fresh.Solids[2].Mesh.Bounds().Size())
}

func TestCompositionRestoreMismatch(t *testing.T) {
	c := NewCompositionFile("AB", "gobold", SettingsData{}, glyphRow(2))
	assert.Error(t, c.Restore(glyphRow(1)), "saved glyph missing from the text")

	bad := NewCompositionFile("A", "gobold", SettingsData{}, glyphRow(1))
	bad.Solids[0].Kind = "sphere"
	assert.Error(t, bad.Restore(glyphRow(1)))

	noBox := NewCompositionFile("A", "gobold", SettingsData{}, twoSolids())
	noBox.Solids[1].Box = nil
	assert.Error(t, noBox.Restore(twoSolids()))
}

func TestLoadCompositionVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.tcomp")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"0.1"}`), 0o644))
	_, err := LoadComposition(path)
	assert.Error(t, err)
}
