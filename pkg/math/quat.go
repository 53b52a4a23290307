package math

import "github.com/go-gl/mathgl/mgl64"

// Quat is a rotation quaternion.
type Quat = mgl64.Quat

// BeamRotation returns the rotation that turns a cone modelled along Down
// so that its axis points along dir. A zero dir yields the identity.
func BeamRotation(dir Vec3) Quat {
	n := SafeNormalize(dir)
	if n.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(Down, n)
}
