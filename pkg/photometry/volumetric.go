package photometry

import (
	"math"

	lmath "github.com/Faultbox/lumen/pkg/math"
)

// Beam volume tuning.
const (
	// ReferenceCandela is the intensity at which a beam reads at unit strength.
	ReferenceCandela = 1500.0

	MinBeamLength = 0.25
	MinBeamRadius = 0.05

	maxIntensityFactor = 12.0
	minSpreadFactor    = 0.25
	maxSpreadFactor    = 1.6
	spreadBias         = 0.35
	axialExponent      = 1.2
	minStrength        = 0.001
	minNoise           = 0.001
	minAttenuation     = 1e-4
)

// BeamGeometry is the size of the cone that encloses a beam volume.
type BeamGeometry struct {
	Radius float64
	Length float64
}

// LocalPoint addresses a point inside the beam cone.
// Height runs from 0 at the apex to 1 at the base; Radial is the normalized distance from the axis.
type LocalPoint struct {
	Height float64
	Radial float64
}

// ComputeBeamGeometry sizes a cone from the light to target whose half-angle matches the light's.
func ComputeBeamGeometry(light LightPose, target lmath.Vec3) BeamGeometry {
	length := math.Max(lmath.Distance(light.Position, target), MinBeamLength)
	radius := math.Max(math.Tan(light.ConeHalfAngle)*length, MinBeamRadius)
	return BeamGeometry{Radius: radius, Length: length}
}

// VolumetricStrength scales a beam by intensity and tightness; narrow beams read denser.
func VolumetricStrength(light LightPose) float64 {
	intensityFactor := lmath.Clamp(light.Intensity/ReferenceCandela, 0, maxIntensityFactor)
	spreadFactor := lmath.Clamp((math.Pi/2-light.ConeHalfAngle)/(math.Pi/2)+spreadBias, minSpreadFactor, maxSpreadFactor)
	return intensityFactor * spreadFactor
}

// BeamVisible reports whether a beam is strong enough to be worth drawing.
func BeamVisible(light LightPose) bool {
	return VolumetricStrength(light) > minStrength
}

// EvaluateVolumetric returns the color and opacity of a point inside the beam volume.
// Turbulence is a deterministic function of the point, so results are reproducible.
func EvaluateVolumetric(p LocalPoint, light LightPose, params VolumetricParams) (Sample, bool) {
	rim := lmath.Smoothstep(0.5, 1.0, p.Radial)
	axial := math.Pow(lmath.Saturate(p.Height), axialExponent)
	falloff := math.Exp(-p.Height / math.Max(params.Attenuation, minAttenuation))
	body := (1 - rim) * axial * falloff

	strength := VolumetricStrength(light)
	alpha := lmath.Saturate(body * strength * params.Opacity)

	if params.Noise > minNoise {
		n := math.Sin(p.Radial*25+p.Height*12)*0.5 + 0.5
		alpha *= lmath.Mix(1, n, lmath.Saturate(params.Noise))
	}
	if alpha <= MinAlpha {
		return Sample{}, false
	}

	shade := 0.55 + 0.45*(1-p.Height)
	return Sample{
		Color: scale(light.Color, shade*strength*params.Opacity),
		Alpha: alpha,
	}, true
}
