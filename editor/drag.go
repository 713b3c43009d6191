package editor

import (
	"text-creator/math"
	"text-creator/trace"
)

// Pick selects the solid under ray. A miss leaves the selection alone.
func (e *Editor) Pick(ray math.Ray) (int, bool, error) {
	if err := e.checkUnlocked(); err != nil {
		return -1, false, err
	}
	res, ok := Pick(e.live, ray)
	if !ok {
		return -1, false, nil
	}
	e.Selection.SelectIndex(e.live, res.Index)
	return res.Index, true, nil
}

// PickScreen is Pick for a mouse position on a width x height viewport.
func (e *Editor) PickScreen(x, y, width, height float32) (int, bool, error) {
	ray, ok := ScreenToRay(x, y, width, height, e.camera)
	if !ok {
		return -1, false, nil
	}
	return e.Pick(ray)
}

// BeginDrag picks the solid under ray and starts moving it across the
// horizontal plane through the hit point. It reports false on a miss.
func (e *Editor) BeginDrag(ray math.Ray) (bool, error) {
	if err := e.checkUnlocked(); err != nil {
		return false, err
	}
	res, ok := Pick(e.live, ray)
	if !ok {
		return false, nil
	}
	e.Selection.SelectIndex(e.live, res.Index)
	e.Selection.drag = &dragState{
		id:    e.live.Solids[res.Index].ID,
		plane: trace.NewPlane(math.Vec3Front, res.Hit.Point),
		down:  res.Hit.Point,
		saved: e.live.Transform(res.Index).Translate,
	}
	return true, nil
}

// DragTo moves the dragged solid so the down point follows ray on the drag
// plane. Rays parallel to the plane are ignored.
func (e *Editor) DragTo(ray math.Ray) bool {
	d := e.Selection.drag
	if d == nil || e.job != nil {
		return false
	}
	i := e.live.IndexOf(d.id)
	if i < 0 {
		e.Selection.drag = nil
		return false
	}
	hit, ok := d.plane.Intersect(ray)
	if !ok {
		return false
	}
	delta := hit.Point.Sub(d.down)
	delta.Z = 0

	e.live.Translate(i, d.last.Negate())
	e.live.Translate(i, delta)
	d.last = delta
	return true
}

// EndDrag commits the drag as an undoable move.
func (e *Editor) EndDrag() {
	d := e.Selection.drag
	if d == nil {
		return
	}
	e.Selection.drag = nil
	i := e.live.IndexOf(d.id)
	if i < 0 || d.last == math.Vec3Zero {
		return
	}
	e.History.Record(&MoveCommand{
		Set:    e.live,
		ID:     d.id,
		OldPos: d.saved,
		NewPos: e.live.Transform(i).Translate,
	})
	e.dirty = true
}

// CancelDrag puts the dragged solid back where the drag started.
func (e *Editor) CancelDrag() {
	d := e.Selection.drag
	if d == nil {
		return
	}
	e.Selection.drag = nil
	if i := e.live.IndexOf(d.id); i >= 0 {
		e.live.SetTranslation(i, d.saved)
	}
}
