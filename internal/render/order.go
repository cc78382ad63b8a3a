package render

import "sort"

// DrawOrder returns mesh indices in the order they should be drawn from eye: opaque meshes in
// scene order, then transparent ones from farthest to nearest so blending composes correctly.
func DrawOrder(meshes []Mesh, eye Vec3) []int {
	order := make([]int, 0, len(meshes))
	var transparent []int
	for i, m := range meshes {
		if m.Surface.Transparent {
			transparent = append(transparent, i)
			continue
		}
		order = append(order, i)
	}
	dist := func(i int) float32 {
		p := meshes[i].Position
		dx, dy, dz := p[0]-eye[0], p[1]-eye[1], p[2]-eye[2]
		return dx*dx + dy*dy + dz*dz
	}
	sort.SliceStable(transparent, func(a, b int) bool {
		return dist(transparent[a]) > dist(transparent[b])
	})
	return append(order, transparent...)
}
