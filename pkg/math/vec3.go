package math

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a 3D vector. Positions are in world units, directions are unit length.
type Vec3 = mgl64.Vec3

// Down is the default aim direction of a ceiling fixture.
var Down = Vec3{0, -1, 0}

// SafeNormalize returns a unit vector, or the zero vector when v has no length.
func SafeNormalize(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Distance returns the distance between two points.
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Len()
}
