package geom

import "math"

// CirclesOverlap reports whether the circles (p1, r1) and (p2, r2) collide.
// Circles collide iff the squared centre distance is strictly less than the
// squared sum of radii, so touching circles do not collide and coincident
// centres always do (for positive radii).
func CirclesOverlap(p1 Vec2, r1 float32, p2 Vec2, r2 float32) bool {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	r := r1 + r2
	return dx*dx+dy*dy < r*r
}

// ClampLength rescales v to length max when it is longer, preserving
// direction. Shorter and zero vectors are returned unchanged, and a clamped
// vector is itself returned unchanged by a second ClampLength with the same max.
func ClampLength(v Vec2, max float32) Vec2 {
	if max < 0 {
		max = 0
	}
	limit := max * max
	if v.LenSq() <= limit {
		return v
	}

	out := v.Normalize().Scale(max)
	// Rounding can leave out a few ulps longer than max; step it toward zero
	// until the length test above accepts it.
	for range 16 {
		if out.LenSq() <= limit {
			return out
		}
		out = Vec2{X: math.Nextafter32(out.X, 0), Y: math.Nextafter32(out.Y, 0)}
	}
	if out.LenSq() <= limit {
		return out
	}
	return Vec2{}
}
