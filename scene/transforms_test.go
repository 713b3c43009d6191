package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"text-creator/math"
)

func TestSetUniformScaleIsIdempotent(t *testing.T) {
	s := newTestSet(1)

	s.SetUniformScale(0, 1.5)
	once := s.Transform(0).Total()
	for i := 0; i < 10; i++ {
		s.SetUniformScale(0, 1.5)
	}
	assert.Equal(t, once, s.Transform(0).Total())
	assert.Equal(t, float32(1.5), s.Metadata[0].CurrentSize)

	// Changing and returning ends at the same scale within tolerance.
	s.SetUniformScale(0, 0.3)
	s.SetUniformScale(0, 2)
	s.SetUniformScale(0, 1.5)
	assert.True(t, s.Transform(0).Total().ApproxEqual(once, 1e-5))
}

func TestSizeAndHeightAreIndependent(t *testing.T) {
	s := newTestSet(1)

	s.SetHeightScale(0, 0.25)
	s.SetUniformScale(0, 2)
	p := s.Transform(0).Apply(math.NewVec3(1, 1, 1))
	assert.True(t, p.ApproxEqual(math.NewVec3(2, 2, 0.5), 1e-6), "got %v", p)

	s.SetHeightScale(0, 1)
	p = s.Transform(0).Apply(math.NewVec3(1, 1, 1))
	assert.True(t, p.ApproxEqual(math.NewVec3(2, 2, 2), 1e-6), "got %v", p)

	// Invalid factors are ignored.
	s.SetUniformScale(0, 0)
	s.SetHeightScale(0, -1)
	assert.Equal(t, float32(2), s.Metadata[0].CurrentSize)
	assert.Equal(t, float32(1), s.Metadata[0].CurrentHeight)
}

func TestSetOffsetXKeepsYZ(t *testing.T) {
	s := newTestSet(1)
	s.Translate(0, math.NewVec3(3, 4, 5))

	s.SetOffsetX(0, -7)
	assert.Equal(t, math.NewVec3(-7, 4, 5), s.Transform(0).Origin())

	s.SetOffsetX(0, -7)
	assert.Equal(t, math.NewVec3(-7, 4, 5), s.Transform(0).Origin())
}

func TestSetTranslationVerbatim(t *testing.T) {
	s := newTestSet(1)
	saved := s.Transform(0).Translate
	s.Translate(0, math.NewVec3(0.1, 0.2, 0))
	s.Translate(0, math.NewVec3(0.3, -0.7, 0))
	s.SetTranslation(0, saved)
	assert.Equal(t, saved, s.Transform(0).Translate)
}

func TestSetRotationZ(t *testing.T) {
	s := newTestSet(1)
	s.SetRotationZ(0, 3.14159265/2)
	p := s.Transform(0).Apply(math.NewVec3(1, 0, 0))
	assert.True(t, p.ApproxEqual(math.NewVec3(0, 1, 0), 1e-6))
}

func TestPlaceOnBed(t *testing.T) {
	s := newTestSet(1)
	s.Translate(0, math.NewVec3(0, 0, 7))
	s.PlaceOnBed(0)

	b := s.Solids[0].Mesh.TransformedBounds(s.Transform(0).Total())
	assert.InDelta(t, 0, b.Min.Z, 1e-6)
}
