package editor

import (
	"github.com/google/uuid"

	"text-creator/math"
	"text-creator/scene"
	"text-creator/trace"
)

// Selection tracks the selected solid by ID so it survives deletions of
// other solids, plus the state of a drag in progress.
type Selection struct {
	ID   uuid.UUID
	drag *dragState
}

// dragState is captured when a drag begins.
type dragState struct {
	id    uuid.UUID
	plane *trace.Plane
	// down is where the pick ray first hit the solid.
	down math.Vec3
	// last is the delta currently applied on top of saved.
	last  math.Vec3
	saved math.Mat4
}

// Index returns the selected solid's position in set, or -1.
func (s *Selection) Index(set *scene.SolidSet) int {
	if s.ID == uuid.Nil {
		return -1
	}
	return set.IndexOf(s.ID)
}

// SelectIndex selects entry i of set, or clears the selection when i is
// out of range.
func (s *Selection) SelectIndex(set *scene.SolidSet, i int) {
	if i < 0 || i >= set.Len() {
		s.Clear()
		return
	}
	s.ID = set.Solids[i].ID
}

// Clear removes the selection and forgets any drag.
func (s *Selection) Clear() {
	s.ID = uuid.Nil
	s.drag = nil
}

// HasSelection returns true if anything is selected
func (s *Selection) HasSelection() bool { return s.ID != uuid.Nil }

// Dragging reports whether a drag gesture is active.
func (s *Selection) Dragging() bool { return s.drag != nil }
