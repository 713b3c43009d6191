package csg

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-creator/math"
	"text-creator/scene"
)

func cubeAt(size float32, offset math.Vec3) *scene.Mesh {
	m := scene.CreateCube(size)
	m.Transform(math.Mat4Translation(offset))
	return m
}

func TestUnionVolume(t *testing.T) {
	tests := []struct {
		name   string
		a, b   *scene.Mesh
		volume float32
	}{
		{"overlapping", cubeAt(1, math.Vec3Zero), cubeAt(1, math.NewVec3(.5, .25, .25)), 1.71875},
		{"shared faces", cubeAt(1, math.Vec3Zero), cubeAt(1, math.NewVec3(.5, 0, 0)), 1.5},
		{"contained", cubeAt(2, math.Vec3Zero), cubeAt(1, math.NewVec3(.2, .1, 0)), 8},
		{"identical", cubeAt(1, math.Vec3Zero), cubeAt(1, math.Vec3Zero), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Union(tt.a, tt.b)
			require.NoError(t, err)
			require.NoError(t, out.Validate())
			assert.InDelta(t, tt.volume, out.Volume(), 1e-3)

			box := tt.a.Bounds().Union(tt.b.Bounds())
			got := out.Bounds()
			assert.True(t, got.Min.ApproxEqual(box.Min, 1e-4))
			assert.True(t, got.Max.ApproxEqual(box.Max, 1e-4))
		})
	}
}

func TestUnionDisjointConcatenates(t *testing.T) {
	a := cubeAt(1, math.Vec3Zero)
	b := cubeAt(1, math.NewVec3(3, 0, 0))

	out, err := Union(a, b)
	require.NoError(t, err)
	assert.Equal(t, a.VertexCount()+b.VertexCount(), out.VertexCount())
	assert.Equal(t, a.FaceCount()+b.FaceCount(), out.FaceCount())
	assert.InDelta(t, 2, out.Volume(), 1e-5)
}

func TestUnionLeavesInputs(t *testing.T) {
	a := cubeAt(1, math.Vec3Zero)
	b := cubeAt(1, math.NewVec3(.5, .5, .5))
	wantA := a.Clone()
	wantB := b.Clone()

	_, err := Union(a, b)
	require.NoError(t, err)
	assert.Equal(t, wantA, a)
	assert.Equal(t, wantB, b)
}

func TestUnionEmptyOperands(t *testing.T) {
	cube := cubeAt(1, math.Vec3Zero)

	out, err := Union(scene.NewMesh("empty"), cube)
	require.NoError(t, err)
	assert.Equal(t, cube.Positions, out.Positions)

	_, err = Union(scene.NewMesh("a"), scene.NewMesh("b"))
	assert.ErrorIs(t, err, ErrUnionFailed)
}

func TestUnionAll(t *testing.T) {
	meshes := []*scene.Mesh{
		cubeAt(2, math.Vec3Zero),
		cubeAt(1, math.NewVec3(.2, .1, 0)),
		cubeAt(1, math.NewVec3(5, 0, 0)),
	}
	var calls []int
	out, err := UnionAll(meshes, func(done, total int) {
		assert.Equal(t, 3, total)
		calls = append(calls, done)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, calls)
	assert.InDelta(t, 9, out.Volume(), 1e-3)
	assert.Equal(t, 16, out.VertexCount(), "the inner cube is absorbed")

	_, err = UnionAll(nil, nil)
	assert.ErrorIs(t, err, ErrUnionFailed)
}

func TestUnionKeepsFacesClearOfOtherOperand(t *testing.T) {
	big := cubeAt(2, math.Vec3Zero)
	out, err := Union(big, cubeAt(1, math.NewVec3(.2, .1, 0)))
	require.NoError(t, err)
	assert.Equal(t, big.VertexCount(), out.VertexCount())
	assert.Equal(t, big.FaceCount(), out.FaceCount())
}

func TestUnionAllVertexBound(t *testing.T) {
	tests := []struct {
		name   string
		meshes []*scene.Mesh
	}{
		{"overlapping", []*scene.Mesh{cubeAt(1, math.Vec3Zero), cubeAt(1, math.NewVec3(.5, .25, .25))}},
		{"shared faces", []*scene.Mesh{cubeAt(1, math.Vec3Zero), cubeAt(1, math.NewVec3(.5, 0, 0))}},
		{"chain", []*scene.Mesh{
			cubeAt(1, math.Vec3Zero),
			cubeAt(1, math.NewVec3(.6, .3, 0)),
			cubeAt(1, math.NewVec3(1.2, 0, .3)),
			cubeAt(1, math.NewVec3(1.8, .3, .3)),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := 0
			box := math.EmptyAABB()
			for _, m := range tt.meshes {
				limit += m.VertexCount()
				box = box.Union(m.Bounds())
			}

			out, err := UnionAll(tt.meshes, nil)
			require.NoError(t, err)
			require.NoError(t, out.Validate())
			assert.LessOrEqual(t, out.VertexCount(), limit)
			assert.True(t, out.Bounds().Min.ApproxEqual(box.Min, 1e-4))
			assert.True(t, out.Bounds().Max.ApproxEqual(box.Max, 1e-4))
		})
	}
}

func TestUnionAllGrowingStepKeepsShells(t *testing.T) {
	// Two cubes offset on every axis gain six concave corners when joined.
	a, b := cubeAt(1, math.Vec3Zero), cubeAt(1, math.NewVec3(.5, .25, .25))
	joined, err := Union(a, b)
	require.NoError(t, err)
	require.Greater(t, joined.VertexCount(), a.VertexCount()+b.VertexCount())

	out, err := UnionAll([]*scene.Mesh{a, b}, nil)
	require.NoError(t, err)
	assert.Equal(t, a.VertexCount()+b.VertexCount(), out.VertexCount())
	assert.Equal(t, a.FaceCount()+b.FaceCount(), out.FaceCount())
	assert.InDelta(t, 2, out.Volume(), 1e-5)
}

func TestUnionNonFinite(t *testing.T) {
	bad := cubeAt(1, math.Vec3Zero)
	bad.Positions[3].X = float32(stdmath.NaN())
	far := cubeAt(1, math.NewVec3(10, 0, 0))

	_, err := Union(far, bad)
	assert.ErrorIs(t, err, ErrUnionFailed)

	inf := cubeAt(1, math.Vec3Zero)
	inf.Positions[0].Y = float32(stdmath.Inf(1))
	_, err = UnionAll([]*scene.Mesh{inf}, nil)
	assert.ErrorIs(t, err, ErrUnionFailed)
	_, err = UnionAll([]*scene.Mesh{far, inf}, nil)
	assert.ErrorIs(t, err, ErrUnionFailed)
}

func TestKeepWhole(t *testing.T) {
	quad := []vec{{0, 0, 0}, {2, 0, 0}, {2, 1, 0}, {0, 1, 0}}
	own, ok := planeFromPoints(quad[0], quad[1], quad[2])
	require.True(t, ok)
	p := &polygon{vertices: quad, plane: own}
	assert.InDelta(t, 2, p.area(), 1e-12)

	var cf, cb, f, b []*polygon
	plane{normal: vec{1, 0, 0}, w: 1}.split(p.clone(), &cf, &cb, &f, &b)
	require.Len(t, f, 1)
	require.Len(t, b, 1)

	assert.Equal(t, []*polygon{p}, keepWhole(p, append(f, b...)), "nothing lost")
	assert.Equal(t, f, keepWhole(p, f), "half clipped away")
}

func TestSplitSpanningPolygon(t *testing.T) {
	pl := plane{normal: vec{1, 0, 0}, w: 0}
	tri := []vec{{-1, 0, 0}, {1, 0, 0}, {1, 1, 0}}
	own, ok := planeFromPoints(tri[0], tri[1], tri[2])
	require.True(t, ok)

	var cf, cb, f, b []*polygon
	pl.split(&polygon{vertices: tri, plane: own}, &cf, &cb, &f, &b)
	assert.Empty(t, cf)
	assert.Empty(t, cb)
	require.Len(t, f, 1)
	require.Len(t, b, 1)
	for _, v := range f[0].vertices {
		assert.GreaterOrEqual(t, v.x, -epsilon)
	}
	for _, v := range b[0].vertices {
		assert.LessOrEqual(t, v.x, epsilon)
	}
}

func TestPlaneFromDegeneratePoints(t *testing.T) {
	_, ok := planeFromPoints(vec{0, 0, 0}, vec{1, 1, 1}, vec{2, 2, 2})
	assert.False(t, ok)
}
