package photometry

import (
	"github.com/lucasb-eyer/go-colorful"

	lmath "github.com/Faultbox/lumen/pkg/math"
)

// LightPose is a snapshot of a placed light. The caller owns and mutates it;
// evaluators only read the copy they are given.
type LightPose struct {
	Position      lmath.Vec3
	Direction     lmath.Vec3 // unit aim direction
	ConeHalfAngle float64    // radians
	Intensity     float64    // candela-equivalent
	Color         colorful.Color
}

// VolumetricParams tunes the look of a beam volume.
type VolumetricParams struct {
	Opacity     float64 // [0, inf)
	Attenuation float64 // decay length along the beam axis, > 0
	Noise       float64 // turbulence blend in [0, 1]
}

// DefaultVolumetricParams returns the parameters used when a light has no overrides.
func DefaultVolumetricParams() VolumetricParams {
	return VolumetricParams{
		Opacity:     1,
		Attenuation: 1.5,
		Noise:       0,
	}
}

// Sample is the visual contribution of a light at one queried point.
type Sample struct {
	Color colorful.Color
	Alpha float64
}
