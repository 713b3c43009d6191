package scene

import (
	"text-creator/core"
	"text-creator/math"
)

// Transform store. Indices must be in range; callers own bounds checks.

func (s *SolidSet) Transform(i int) core.Transform {
	return s.Transforms[i]
}

func (s *SolidSet) SetTransform(i int, t core.Transform) {
	s.Transforms[i] = t
}

// SetUniformScale undoes the solid's last size factor and applies size.
// Repeating the same value is a no-op.
func (s *SolidSet) SetUniformScale(i int, size float32) {
	d := &s.Metadata[i]
	if size <= 0 || size == d.CurrentSize {
		return
	}
	t := &s.Transforms[i]
	t.Scale = t.Scale.
		Mul(math.Mat4UniformScale(1 / d.CurrentSize)).
		Mul(math.Mat4UniformScale(size))
	d.CurrentSize = size
}

// SetHeightScale is SetUniformScale for the z axis alone.
func (s *SolidSet) SetHeightScale(i int, height float32) {
	d := &s.Metadata[i]
	if height <= 0 || height == d.CurrentHeight {
		return
	}
	t := &s.Transforms[i]
	t.Scale = t.Scale.
		Mul(math.Mat4Scale(math.Vec3{X: 1, Y: 1, Z: 1 / d.CurrentHeight})).
		Mul(math.Mat4Scale(math.Vec3{X: 1, Y: 1, Z: height}))
	d.CurrentHeight = height
}

// SetOffsetX moves the solid so its translated origin sits at x, keeping y
// and z.
func (s *SolidSet) SetOffsetX(i int, x float32) {
	t := &s.Transforms[i]
	origin := t.Origin()
	t.Translate = t.Translate.
		Mul(math.Mat4Translation(math.Vec3{X: -origin.X})).
		Mul(math.Mat4Translation(math.Vec3{X: x}))
}

func (s *SolidSet) Translate(i int, delta math.Vec3) {
	t := &s.Transforms[i]
	t.Translate = t.Translate.Mul(math.Mat4Translation(delta))
}

// SetTranslation replaces the translate component verbatim.
func (s *SolidSet) SetTranslation(i int, m math.Mat4) {
	s.Transforms[i].Translate = m
}

// SetRotationZ sets the rotate component to a turn about the build-plate
// normal.
func (s *SolidSet) SetRotationZ(i int, radians float32) {
	q := math.QuaternionFromAxisAngle(math.Vec3Front, radians)
	s.Transforms[i].Rotate = q.ToMat4()
}

// PlaceOnBed translates the solid so its lowest point rests on z = 0.
func (s *SolidSet) PlaceOnBed(i int) {
	solid := s.Solids[i]
	if solid.Mesh.VertexCount() == 0 {
		return
	}
	box := solid.Mesh.TransformedBounds(s.Transforms[i].Total())
	if box.Min.Z != 0 {
		s.Translate(i, math.Vec3{Z: -box.Min.Z})
	}
}
