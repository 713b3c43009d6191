package editor

import (
	"math"

	"text-creator/config"
	"text-creator/layout"
	"text-creator/scene"
)

// SetSpacing clamps v to the configured range and re-lays the text.
func (e *Editor) SetSpacing(v float32) error {
	return e.relayout(func(s *layout.Settings, r config.Layout) { s.Spacing = r.Spacing.Clamp(v) })
}

func (e *Editor) SetSize(v float32) error {
	return e.relayout(func(s *layout.Settings, r config.Layout) { s.Size = r.Size.Clamp(v) })
}

func (e *Editor) SetHeight(v float32) error {
	return e.relayout(func(s *layout.Settings, r config.Layout) { s.Height = r.Height.Clamp(v) })
}

// SetUnderline adds or removes the underline.
func (e *Editor) SetUnderline(on bool) error {
	return e.relayout(func(s *layout.Settings, _ config.Layout) { s.Underline = on })
}

// relayout applies changed settings. Layout rewrites absolute positions,
// so recorded moves no longer apply and history is dropped.
func (e *Editor) relayout(change func(*layout.Settings, config.Layout)) error {
	if err := e.checkUnlocked(); err != nil {
		return err
	}
	next := e.settings
	change(&next, e.cfg.Layout)
	if next == e.settings {
		return nil
	}
	e.settings = next
	if e.live.Len() == 0 {
		return nil
	}
	layout.Apply(e.live, next)
	if e.Selection.HasSelection() && e.Selection.Index(e.live) < 0 {
		// the selected underline was removed
		e.Selection.SelectIndex(e.live, e.live.Len()-1)
	}
	e.History.Clear()
	e.dirty = true
	return nil
}

// DeleteSelected removes the selected solid. The last remaining solid is
// never removed. The selection moves to the solid that took its place.
func (e *Editor) DeleteSelected() error {
	if err := e.checkUnlocked(); err != nil {
		return err
	}
	i := e.Selected()
	if i < 0 || e.live.Len() <= 1 {
		return nil
	}
	e.History.Do(NewDeleteCommand(e.live, i))
	e.syncAfterEdit(i)
	return nil
}

// RotateSelected turns the selected solid about the plate normal to an
// absolute angle in degrees.
func (e *Editor) RotateSelected(degrees float32) error {
	if err := e.checkUnlocked(); err != nil {
		return err
	}
	i := e.Selected()
	if i < 0 {
		return nil
	}
	e.History.Do(NewRotateCommand(e.live, i, degrees*math.Pi/180))
	e.dirty = true
	return nil
}

// Undo reverts the last move, rotation or deletion.
func (e *Editor) Undo() (bool, error) {
	if err := e.checkUnlocked(); err != nil {
		return false, err
	}
	if !e.History.Undo() {
		return false, nil
	}
	e.syncAfterEdit(e.Selected())
	return true, nil
}

func (e *Editor) Redo() (bool, error) {
	if err := e.checkUnlocked(); err != nil {
		return false, err
	}
	if !e.History.Redo() {
		return false, nil
	}
	e.syncAfterEdit(e.Selected())
	return true, nil
}

// syncAfterEdit fixes state derived from the set after solids came or
// went: a lost selection clamps to index near, and the underline setting
// follows whether an underline exists.
func (e *Editor) syncAfterEdit(near int) {
	if e.Selection.Index(e.live) < 0 {
		e.Selection.SelectIndex(e.live, min(max(near, 0), e.live.Len()-1))
	}
	e.settings.Underline = e.live.Count(scene.KindUnderline) > 0
	e.dirty = true
}
