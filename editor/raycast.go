package editor

import (
	"text-creator/math"
	"text-creator/scene"
	"text-creator/trace"
)

// ScreenToRay converts a screen-space mouse position to a world-space ray.
// ok is false when the camera matrices cannot be inverted.
func ScreenToRay(mouseX, mouseY float32, screenWidth, screenHeight float32, camera *scene.Camera) (math.Ray, bool) {
	// Convert to normalized device coordinates (-1 to 1)
	ndcX := (2.0*mouseX)/screenWidth - 1.0
	ndcY := 1.0 - (2.0*mouseY)/screenHeight // flip Y

	invProj, ok := camera.GetProjectionMatrix().Inverse()
	if !ok {
		return math.Ray{}, false
	}
	invView, ok := camera.GetViewMatrix().Inverse()
	if !ok {
		return math.Ray{}, false
	}

	// clip -> view -> world
	viewNear := math.NewVec4(ndcX, ndcY, -1, 1).MulMat(invProj).ToVec3DivW()
	worldNear := invView.MulVec3(viewNear)

	return math.Ray{
		Origin:    camera.Position,
		Direction: worldNear.Sub(camera.Position).Normalize(),
	}, true
}

// PickResult is a solid hit by a ray.
type PickResult struct {
	Index int
	Hit   trace.Hit
}

// Pick casts ray against every solid of set under its current transform
// and returns the closest one. A fresh top-level hierarchy is built per
// call since transforms change between picks.
func Pick(set *scene.SolidSet, ray math.Ray) (PickResult, bool) {
	if set.Len() == 0 {
		return PickResult{}, false
	}

	items := make([]trace.Traceable, set.Len())
	for i := range set.Solids {
		items[i] = trace.NewTransformed(set.Metadata[i].Trace, set.Transforms[i].Total())
	}
	hit, ok := trace.NewHierarchy(items).Intersect(ray)
	if !ok {
		return PickResult{}, false
	}

	// The hit triangle lives in exactly one solid's local hierarchy.
	box := hit.Object.Bounds()
	var found []trace.Traceable
	for i := range set.Solids {
		found = set.Metadata[i].Trace.Contained(box, found[:0])
		if trace.Contains(found, hit.Object) {
			return PickResult{Index: i, Hit: hit}, true
		}
	}
	return PickResult{}, false
}
