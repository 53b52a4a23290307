// Package math provides the scalar and vector helpers used to evaluate light fields.
// Scalar helpers follow GLSL semantics so field models read like the shaders they replace.
package math

import "github.com/go-gl/mathgl/mgl64"

// Clamp limits x to the range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return mgl64.Clamp(x, lo, hi)
}

// Saturate clamps x to [0, 1].
func Saturate(x float64) float64 {
	return mgl64.Clamp(x, 0, 1)
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep performs Hermite interpolation between edge0 and edge1.
// Degenerate edges behave like a step at edge0.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Saturate((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
