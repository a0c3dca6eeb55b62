// Package systems implements the per-frame agent behaviors and the spatial
// queries they rely on.
package systems

import "math"

// Dist2 returns the squared distance between two points.
func Dist2(ax, ay, bx, by float32) float32 {
	dx := bx - ax
	dy := by - ay
	return dx*dx + dy*dy
}

// Dist returns the distance between two points.
func Dist(ax, ay, bx, by float32) float32 {
	return float32(math.Sqrt(float64(Dist2(ax, ay, bx, by))))
}

// Norm normalizes a vector, returning (0, 0) for near-zero input.
func Norm(x, y float32) (float32, float32) {
	l := float32(math.Sqrt(float64(x*x + y*y)))
	if l < 1e-6 {
		return 0, 0
	}
	return x / l, y / l
}

// DirTo returns the unit vector from (ax, ay) toward (bx, by).
func DirTo(ax, ay, bx, by float32) (float32, float32) {
	return Norm(bx-ax, by-ay)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
