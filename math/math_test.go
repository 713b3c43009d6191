package math

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}

	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}

	dot := v1.Dot(v2)
	if dot != 32 {
		t.Errorf("Dot: expected 32, got %v", dot)
	}

	// Right x Up = Front in a right-handed system
	cross := Vec3Right.Cross(Vec3Up)
	if cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}

	if got := v1.Min(NewVec3(0, 5, 3)); got != NewVec3(0, 2, 3) {
		t.Errorf("Min: got %v", got)
	}
	if got := v1.Max(NewVec3(0, 5, 3)); got != NewVec3(1, 5, 3) {
		t.Errorf("Max: got %v", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	normalized := NewVec3(3, 0, 0).Normalize()
	if normalized != NewVec3(1, 0, 0) {
		t.Errorf("Normalize: got %v", normalized)
	}
	if math.Abs(float64(normalized.Length()-1)) > 0.0001 {
		t.Errorf("Normalize: expected length 1, got %v", normalized.Length())
	}
	if Vec3Zero.Normalize() != Vec3Zero {
		t.Errorf("Normalize of zero vector should stay zero")
	}
}

func TestVec2Cross(t *testing.T) {
	if c := NewVec2(1, 0).Cross(NewVec2(0, 1)); c != 1 {
		t.Errorf("Cross: expected 1, got %v", c)
	}
	if c := NewVec2(0, 1).Cross(NewVec2(1, 0)); c != -1 {
		t.Errorf("Cross: expected -1, got %v", c)
	}
}

func TestMat4Translation(t *testing.T) {
	m := Mat4Translation(NewVec3(10, 20, 30))
	result := m.MulVec3(NewVec3(1, 2, 3))
	if result != NewVec3(11, 22, 33) {
		t.Errorf("Translation: got %v", result)
	}
	if d := m.MulDir(NewVec3(1, 2, 3)); d != NewVec3(1, 2, 3) {
		t.Errorf("MulDir should ignore translation, got %v", d)
	}
	if m.Translation() != NewVec3(10, 20, 30) {
		t.Errorf("Translation(): got %v", m.Translation())
	}
}

func TestMat4MulOrder(t *testing.T) {
	// Row vectors: the left operand applies first.
	s := Mat4UniformScale(2)
	tr := Mat4Translation(NewVec3(1, 0, 0))
	p := s.Mul(tr).MulVec3(NewVec3(1, 0, 0))
	if !p.ApproxEqual(NewVec3(3, 0, 0), 1e-6) {
		t.Errorf("scale then translate: got %v", p)
	}
	p = tr.Mul(s).MulVec3(NewVec3(1, 0, 0))
	if !p.ApproxEqual(NewVec3(4, 0, 0), 1e-6) {
		t.Errorf("translate then scale: got %v", p)
	}
}

func TestMat4RotationZ(t *testing.T) {
	m := Mat4RotationZ(math.Pi / 2)
	p := m.MulVec3(NewVec3(1, 0, 0))
	if !p.ApproxEqual(NewVec3(0, 1, 0), 1e-6) {
		t.Errorf("RotationZ: expected (0,1,0), got %v", p)
	}
	q := QuaternionFromAxisAngle(Vec3Front, math.Pi/2).ToMat4()
	if !q.ApproxEqual(m, 1e-6) {
		t.Errorf("quaternion and matrix rotations disagree: %v vs %v", q, m)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Mat4Scale(NewVec3(2, 3, 0.25)).
		Mul(Mat4RotationZ(0.7)).
		Mul(Mat4Translation(NewVec3(-4, 5, 6)))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("Inverse: matrix reported singular")
	}
	if !m.Mul(inv).ApproxEqual(Mat4Identity(), 1e-5) {
		t.Errorf("M * M^-1 should be identity, got %v", m.Mul(inv))
	}

	p := NewVec3(1, -2, 3)
	back := inv.MulVec3(m.MulVec3(p))
	if !back.ApproxEqual(p, 1e-4) {
		t.Errorf("round trip: expected %v, got %v", p, back)
	}

	if _, ok := Mat4Scale(NewVec3(1, 0, 1)).Inverse(); ok {
		t.Errorf("Inverse: singular matrix should report false")
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	view := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	p := view.MulVec3(eye)
	if !p.ApproxEqual(Vec3Zero, 0.001) {
		t.Errorf("LookAt: eye should map to origin, got %v", p)
	}
	p = view.MulVec3(Vec3Zero)
	if !p.ApproxEqual(NewVec3(0, 0, -5), 0.001) {
		t.Errorf("LookAt: target should map to (0,0,-5), got %v", p)
	}
}

func TestAABB(t *testing.T) {
	box := AABBFromPoints(NewVec3(1, 2, 3), NewVec3(-1, 0, 5))
	if box.Min != NewVec3(-1, 0, 3) || box.Max != NewVec3(1, 2, 5) {
		t.Fatalf("AABBFromPoints: got %v", box)
	}
	if box.Center() != NewVec3(0, 1, 4) {
		t.Errorf("Center: got %v", box.Center())
	}
	if !EmptyAABB().IsEmpty() {
		t.Errorf("EmptyAABB should be empty")
	}
	if e := EmptyAABB(); e.Min.X != float32(math.MaxFloat32) || e.Max.X != -float32(math.MaxFloat32) {
		t.Errorf("EmptyAABB extents: got %v", e)
	}
	if u := EmptyAABB().Union(box); u != box {
		t.Errorf("Union with empty: got %v", u)
	}

	other := AABB{Min: NewVec3(2, 0, 0), Max: NewVec3(3, 1, 1)}
	if box.Intersects(other) {
		t.Errorf("disjoint boxes reported as intersecting")
	}
	if !box.Contains(AABB{Min: NewVec3(0, 1, 4), Max: NewVec3(0.5, 1.5, 4.5)}) {
		t.Errorf("Contains: inner box not contained")
	}

	moved := box.Transform(Mat4Translation(NewVec3(10, 0, 0)))
	if !moved.Min.ApproxEqual(NewVec3(9, 0, 3), 1e-6) || !moved.Max.ApproxEqual(NewVec3(11, 2, 5), 1e-6) {
		t.Errorf("Transform: got %v", moved)
	}
}

func TestAABBIntersectRay(t *testing.T) {
	box := AABB{Min: NewVec3(-1, -1, -1), Max: NewVec3(1, 1, 1)}

	tHit, ok := box.IntersectRay(Ray{Origin: NewVec3(0, 0, 10), Direction: NewVec3(0, 0, -1)})
	if !ok || math.Abs(float64(tHit-9)) > 1e-5 {
		t.Errorf("IntersectRay: expected hit at 9, got %v %v", tHit, ok)
	}
	if _, ok := box.IntersectRay(Ray{Origin: NewVec3(5, 0, 10), Direction: NewVec3(0, 0, -1)}); ok {
		t.Errorf("IntersectRay: expected miss")
	}
}

func TestPlaneIntersectRay(t *testing.T) {
	plane := PlaneFromPoint(Vec3Front, NewVec3(0, 0, 2))
	ray := Ray{Origin: NewVec3(1, 1, 12), Direction: NewVec3(0, 0, -2)}

	tHit, ok := plane.IntersectRay(ray)
	if !ok {
		t.Fatal("IntersectRay: expected hit")
	}
	if p := ray.At(tHit); !p.ApproxEqual(NewVec3(1, 1, 2), 1e-5) {
		t.Errorf("IntersectRay: expected (1,1,2), got %v", p)
	}

	if _, ok := plane.IntersectRay(Ray{Origin: NewVec3(0, 0, 5), Direction: Vec3Right}); ok {
		t.Errorf("parallel ray should miss")
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4RotationZ(0.5)
	m2 := Mat4Translation(NewVec3(1, 2, 3))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Mat4UniformScale(2).Mul(Mat4Translation(NewVec3(1, 2, 3)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Inverse()
	}
}
