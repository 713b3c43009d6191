package scene

import (
	"fmt"

	"github.com/google/uuid"

	"text-creator/core"
	"text-creator/math"
	"text-creator/trace"
)

// Kind tells glyph solids apart from the generated underline.
type Kind int

const (
	KindGlyph Kind = iota
	KindUnderline
)

func (k Kind) String() string {
	switch k {
	case KindGlyph:
		return "glyph"
	case KindUnderline:
		return "underline"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Solid is one closed mesh of the composition. ID stays stable while the
// solid's index changes.
type Solid struct {
	ID   uuid.UUID
	Kind Kind
	Mesh *Mesh
}

func NewSolid(kind Kind, mesh *Mesh) *Solid {
	return &Solid{ID: uuid.New(), Kind: kind, Mesh: mesh}
}

// PlatingData is the per-solid layout bookkeeping.
type PlatingData struct {
	// XSpacing is the shaped left offset of the glyph, already shifted by
	// half the text width so the word is centred.
	XSpacing float32
	// CurrentSize and CurrentHeight are the last applied size and height
	// factors, so the next edit can undo them.
	CurrentSize   float32
	CurrentHeight float32
	// RuneIndex is the position in the text of the rune a glyph solid was
	// meshed from.
	RuneIndex int
	// Trace is the local-space acceleration structure of the mesh.
	Trace trace.Traceable
}

// NewPlatingData builds the acceleration structure for mesh.
func NewPlatingData(mesh *Mesh, xSpacing float32) PlatingData {
	return PlatingData{
		XSpacing:      xSpacing,
		CurrentSize:   1,
		CurrentHeight: 1,
		Trace:         trace.NewMeshHierarchy(mesh.Positions, mesh.Faces),
	}
}

// SolidSet is the ordered composition. Solids, Transforms and Metadata are
// index-aligned; mutate them only through the methods below.
type SolidSet struct {
	Solids     []*Solid
	Transforms []core.Transform
	Metadata   []PlatingData
}

func NewSolidSet() *SolidSet {
	return &SolidSet{}
}

func (s *SolidSet) Len() int { return len(s.Solids) }

func (s *SolidSet) Append(solid *Solid, t core.Transform, d PlatingData) {
	s.Solids = append(s.Solids, solid)
	s.Transforms = append(s.Transforms, t)
	s.Metadata = append(s.Metadata, d)
}

// Insert places an entry at index i, shifting later entries up.
func (s *SolidSet) Insert(i int, solid *Solid, t core.Transform, d PlatingData) {
	s.Solids = insertAt(s.Solids, i, solid)
	s.Transforms = insertAt(s.Transforms, i, t)
	s.Metadata = insertAt(s.Metadata, i, d)
}

// RemoveAt deletes entry i from all three arrays and returns it.
func (s *SolidSet) RemoveAt(i int) (*Solid, core.Transform, PlatingData) {
	solid, t, d := s.Solids[i], s.Transforms[i], s.Metadata[i]
	s.Solids = append(s.Solids[:i], s.Solids[i+1:]...)
	s.Transforms = append(s.Transforms[:i], s.Transforms[i+1:]...)
	s.Metadata = append(s.Metadata[:i], s.Metadata[i+1:]...)
	return solid, t, d
}

func (s *SolidSet) Clear() {
	s.Solids = nil
	s.Transforms = nil
	s.Metadata = nil
}

// Last returns the final solid, or nil when the set is empty.
func (s *SolidSet) Last() *Solid {
	if len(s.Solids) == 0 {
		return nil
	}
	return s.Solids[len(s.Solids)-1]
}

// IndexOf returns the index of the solid with id, or -1.
func (s *SolidSet) IndexOf(id uuid.UUID) int {
	for i, solid := range s.Solids {
		if solid.ID == id {
			return i
		}
	}
	return -1
}

// Count returns how many solids are of kind k.
func (s *SolidSet) Count(k Kind) int {
	n := 0
	for _, solid := range s.Solids {
		if solid.Kind == k {
			n++
		}
	}
	return n
}

// Bounds is the union of every solid's box under its total transform.
func (s *SolidSet) Bounds() math.AABB {
	box := math.EmptyAABB()
	for i, solid := range s.Solids {
		box = box.Union(solid.Mesh.TransformedBounds(s.Transforms[i].Total()))
	}
	return box
}

// Clone deep-copies meshes and solids. Acceleration structures are shared:
// they are immutable once built.
func (s *SolidSet) Clone() *SolidSet {
	out := &SolidSet{
		Solids:     make([]*Solid, len(s.Solids)),
		Transforms: append([]core.Transform(nil), s.Transforms...),
		Metadata:   append([]PlatingData(nil), s.Metadata...),
	}
	for i, solid := range s.Solids {
		out.Solids[i] = &Solid{ID: solid.ID, Kind: solid.Kind, Mesh: solid.Mesh.Clone()}
	}
	return out
}

// Validate checks the index-alignment invariant and every mesh.
func (s *SolidSet) Validate() error {
	if len(s.Transforms) != len(s.Solids) || len(s.Metadata) != len(s.Solids) {
		return fmt.Errorf("solid set misaligned: %d solids, %d transforms, %d metadata",
			len(s.Solids), len(s.Transforms), len(s.Metadata))
	}
	for i, solid := range s.Solids {
		if solid == nil || solid.Mesh == nil {
			return fmt.Errorf("solid %d has no mesh", i)
		}
		if err := solid.Mesh.Validate(); err != nil {
			return fmt.Errorf("solid %d: %w", i, err)
		}
	}
	return nil
}

func insertAt[T any](items []T, i int, v T) []T {
	var zero T
	items = append(items, zero)
	copy(items[i+1:], items[i:])
	items[i] = v
	return items
}
