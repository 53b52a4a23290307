package photometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/lumen/pkg/formats"
)

// LightSettings are the photometry-independent defaults of a spot fixture.
type LightSettings struct {
	Angle               float64 // cone half-angle, radians
	Distance            float64 // throw distance
	Penumbra            float64
	PhotometricPenumbra float64 // penumbra used once photometric data is applied
	Decay               float64
	Intensity           float64
	ColorTemp           float64 // Kelvin
}

// DefaultLightSettings returns the base spot light used before any file is applied.
func DefaultLightSettings() LightSettings {
	return LightSettings{
		Angle:               mgl64.DegToRad(38),
		Distance:            35,
		Penumbra:            0.35,
		PhotometricPenumbra: 0.4,
		Decay:               2,
		Intensity:           1500,
		ColorTemp:           3500,
	}
}

// Profile holds the effective operating parameters of a light.
type Profile struct {
	Angle    float64
	Distance float64
	Penumbra float64
	Decay    float64

	// AngleFromData and DistanceFromData report which values came from the photometric file.
	AngleFromData    bool
	DistanceFromData bool
}

// DeriveProfile picks photometric values where present and defaults otherwise.
// A nil or empty Photometry yields the defaults unchanged.
func DeriveProfile(p *formats.Photometry, defaults LightSettings) Profile {
	prof := Profile{
		Angle:    defaults.Angle,
		Distance: defaults.Distance,
		Penumbra: defaults.Penumbra,
		Decay:    defaults.Decay,
	}
	if p.Empty() {
		return prof
	}

	prof.Penumbra = defaults.PhotometricPenumbra
	if p.BeamAngle > 0 {
		prof.Angle = p.BeamAngle
		prof.AngleFromData = true
	}
	if p.SuggestedDistance > 0 {
		prof.Distance = p.SuggestedDistance
		prof.DistanceFromData = true
	}
	return prof
}

// Pose builds a LightPose from the profile for a light at position aimed along dir.
func (p Profile) Pose(position, dir mgl64.Vec3, intensity, kelvin float64) LightPose {
	return LightPose{
		Position:      position,
		Direction:     dir,
		ConeHalfAngle: p.Angle,
		Intensity:     intensity,
		Color:         KelvinToRGB(kelvin),
	}
}
