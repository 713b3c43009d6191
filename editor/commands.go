package editor

import (
	"github.com/google/uuid"

	"text-creator/core"
	"text-creator/layout"
	"text-creator/math"
	"text-creator/scene"
)

// Command represents an undoable editor action
type Command interface {
	Execute()
	Undo()
	Description() string
}

// History manages undo/redo stacks
type History struct {
	undoStack []Command
	redoStack []Command
	maxDepth  int
}

// NewHistory creates a new history with the given max undo depth
func NewHistory(maxDepth int) *History {
	return &History{
		undoStack: make([]Command, 0, maxDepth),
		redoStack: make([]Command, 0, maxDepth),
		maxDepth:  maxDepth,
	}
}

// Do executes a command and records it.
func (h *History) Do(cmd Command) {
	cmd.Execute()
	h.Record(cmd)
}

// Record pushes a command that has already been applied, such as the end
// of a drag.
func (h *History) Record(cmd Command) {
	if h.maxDepth == 0 {
		return
	}
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	h.redoStack = h.redoStack[:0]
}

// Undo reverts the last action
func (h *History) Undo() bool {
	if len(h.undoStack) == 0 {
		return false
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	cmd.Undo()
	h.redoStack = append(h.redoStack, cmd)
	return true
}

// Redo reapplies the last undone action
func (h *History) Redo() bool {
	if len(h.redoStack) == 0 {
		return false
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	return true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear wipes all undo/redo history
func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}

// --- Concrete Commands ---
//
// Commands address solids by ID: indices shift when solids are deleted.

// MoveCommand records a change of a solid's translate matrix.
type MoveCommand struct {
	Set    *scene.SolidSet
	ID     uuid.UUID
	OldPos math.Mat4
	NewPos math.Mat4
}

func (c *MoveCommand) Execute() { c.set(c.NewPos) }
func (c *MoveCommand) Undo()    { c.set(c.OldPos) }

func (c *MoveCommand) set(m math.Mat4) {
	if i := c.Set.IndexOf(c.ID); i >= 0 {
		c.Set.SetTranslation(i, m)
	}
}

func (c *MoveCommand) Description() string { return "Move " + c.ID.String() }

// RotateCommand records a change of a solid's rotate matrix.
type RotateCommand struct {
	Set    *scene.SolidSet
	ID     uuid.UUID
	OldRot math.Mat4
	NewRot math.Mat4
}

func NewRotateCommand(set *scene.SolidSet, i int, radians float32) *RotateCommand {
	q := math.QuaternionFromAxisAngle(math.Vec3Front, radians)
	return &RotateCommand{
		Set:    set,
		ID:     set.Solids[i].ID,
		OldRot: set.Transform(i).Rotate,
		NewRot: q.ToMat4(),
	}
}

func (c *RotateCommand) Execute() { c.set(c.NewRot) }
func (c *RotateCommand) Undo()    { c.set(c.OldRot) }

func (c *RotateCommand) set(m math.Mat4) {
	if i := c.Set.IndexOf(c.ID); i >= 0 {
		t := c.Set.Transform(i)
		t.Rotate = m
		c.Set.SetTransform(i, t)
	}
}

func (c *RotateCommand) Description() string { return "Rotate " + c.ID.String() }

// DeleteCommand records removing a solid. Undo puts it back at its old
// index and refits the underline to the restored glyphs.
type DeleteCommand struct {
	Set   *scene.SolidSet
	Index int

	solid     *scene.Solid
	transform core.Transform
	metadata  scene.PlatingData
}

func NewDeleteCommand(set *scene.SolidSet, i int) *DeleteCommand {
	return &DeleteCommand{Set: set, Index: i, solid: set.Solids[i]}
}

func (c *DeleteCommand) Execute() {
	i := c.Set.IndexOf(c.solid.ID)
	if i < 0 {
		return
	}
	c.Index = i
	_, c.transform, c.metadata = c.Set.RemoveAt(i)
	if c.solid.Kind == scene.KindGlyph {
		layout.RebuildUnderline(c.Set)
	}
}

func (c *DeleteCommand) Undo() {
	i := min(c.Index, c.Set.Len())
	// a glyph never goes after the underline
	if c.solid.Kind == scene.KindGlyph && i == c.Set.Len() && c.Set.Count(scene.KindUnderline) > 0 {
		i--
	}
	c.Set.Insert(i, c.solid, c.transform, c.metadata)
	if c.solid.Kind == scene.KindGlyph {
		layout.RebuildUnderline(c.Set)
	}
}

func (c *DeleteCommand) Description() string { return "Delete " + c.solid.Mesh.Name }
