package editor

import (
	"context"
	"fmt"

	"text-creator/core"
	"text-creator/glyph"
	meshio "text-creator/io"
	"text-creator/layout"
	"text-creator/scene"
	"text-creator/task"
)

// InsertText replaces the composition with text, meshed in the background.
// The editor stays locked until Await or Poll collects the result. On
// success the layout settings are reset, the first solid is selected and
// history is cleared; on failure the previous composition is kept.
func (e *Editor) InsertText(ctx context.Context, text string) (*task.Task[*scene.SolidSet], error) {
	if err := e.checkUnlocked(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmptyText
	}
	return e.startInsert(ctx, text, defaultSettings(e.cfg), nil), nil
}

// SaveComposition writes the text, settings and transforms to path so
// OpenComposition can rebuild the same composition later.
func (e *Editor) SaveComposition(path string) error {
	if err := e.checkUnlocked(); err != nil {
		return err
	}
	s := e.settings
	c := meshio.NewCompositionFile(e.text, e.cfg.Font.Name, meshio.SettingsData{
		Spacing:   s.Spacing,
		Size:      s.Size,
		Height:    s.Height,
		Underline: s.Underline,
	}, e.live)
	if err := meshio.SaveComposition(path, c); err != nil {
		return saveError(err)
	}
	e.dirty = false
	return nil
}

// OpenComposition re-meshes a saved composition's text in the background
// and restores its transforms. It finishes like InsertText, except that
// the saved settings are kept and the result is not dirty.
func (e *Editor) OpenComposition(ctx context.Context, path string) (*task.Task[*scene.SolidSet], error) {
	if err := e.checkUnlocked(); err != nil {
		return nil, err
	}
	c, err := meshio.LoadComposition(path)
	if err != nil {
		return nil, err
	}
	if c.Text == "" {
		return nil, ErrEmptyText
	}
	if c.Font != e.cfg.Font.Name {
		core.Logger().Warn("composition saved with another font", "saved", c.Font, "current", e.cfg.Font.Name)
	}
	settings := layout.Settings{
		Spacing:   c.Settings.Spacing,
		Size:      c.Settings.Size,
		Height:    c.Settings.Height,
		Underline: c.Settings.Underline,
	}
	return e.startInsert(ctx, c.Text, settings, c.Restore), nil
}

func (e *Editor) startInsert(ctx context.Context, text string, settings layout.Settings, restore func(*scene.SolidSet) error) *task.Task[*scene.SolidSet] {
	mesher := e.mesher
	t := task.Go(ctx, "insert", func(ctx context.Context, report func(int)) (*scene.SolidSet, error) {
		set, err := buildSet(ctx, mesher, text, settings, report)
		if err != nil || restore == nil {
			return set, err
		}
		return set, restore(set)
	})

	e.start(&job{
		name:    "insert",
		done:    t.Done(),
		percent: t.Percent,
		cancel:  t.Cancel,
		finish: func() error {
			set, _, err := t.Poll()
			if err != nil {
				core.Logger().Warn("insert failed", "text", text, "err", err)
				return fmt.Errorf("insert %q: %w", text, err)
			}
			e.live = set
			e.text = text
			e.settings = settings
			e.Selection.Clear()
			e.Selection.SelectIndex(set, 0)
			e.History.Clear()
			e.dirty = restore == nil
			core.Logger().Info("text inserted", "text", text, "solids", set.Len())
			return nil
		},
	})
	return t
}

// buildSet meshes text into a fresh set resting on the plate and laid
// out with settings. Meshing reports up to 95%.
func buildSet(ctx context.Context, m *glyph.Mesher, text string, settings layout.Settings, report func(int)) (*scene.SolidSet, error) {
	glyphs, err := m.MeshText(ctx, text, func(done, total int) {
		report(done * 95 / total)
	})
	if err != nil {
		return nil, err
	}

	set := scene.NewSolidSet()
	for _, g := range glyphs {
		d := scene.NewPlatingData(g.Mesh, g.XSpacing)
		d.RuneIndex = g.Index
		set.Append(scene.NewSolid(scene.KindGlyph, g.Mesh), core.NewTransform(), d)
		set.PlaceOnBed(set.Len() - 1)
	}
	layout.Apply(set, settings)
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}
