package game

import "math"

// Distance returns the Euclidean distance between (ax,ay) and (bx,by).
func Distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// CirclesOverlap reports whether two circles intersect.
// Tangent circles (distance == ra+rb) do not count as overlapping.
func CirclesOverlap(ax, ay, ra, bx, by, rb float64) bool {
	return Distance(ax, ay, bx, by) < ra+rb
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
