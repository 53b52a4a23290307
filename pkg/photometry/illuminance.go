package photometry

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	lmath "github.com/Faultbox/lumen/pkg/math"
)

// Illuminance field tuning.
const (
	// ConeEdgeSoftness widens the cone cutoff into a smooth edge (cosine units).
	ConeEdgeSoftness = 0.12

	// MinDistanceSquared keeps the inverse-square law finite near the source.
	MinDistanceSquared = 0.5

	// LuxCompression is the exponent that maps lux onto the gradient.
	LuxCompression = 0.42

	// HeatmapAlphaScale is the opacity of a fully lit point.
	HeatmapAlphaScale = 0.85

	// MinAlpha is the opacity at or below which a point contributes nothing.
	MinAlpha = 0.002

	minConeStrength = 0.001
	minReferenceLux = 1e-4
)

// GradientStop is one control point of a color ramp.
type GradientStop struct {
	T     float64
	Color colorful.Color
}

// HeatmapStops is the illuminance color ramp, dark blue through green and yellow to white.
var HeatmapStops = [4]GradientStop{
	{T: 0, Color: colorful.Color{R: 0, G: 0.1, B: 0.7}},
	{T: 0.33, Color: colorful.Color{R: 0, G: 0.65, B: 0.35}},
	{T: 0.66, Color: colorful.Color{R: 0.95, G: 0.82, B: 0.15}},
	{T: 1, Color: colorful.Color{R: 1, G: 1, B: 1}},
}

// HeatmapGradient maps t in [0, 1] onto HeatmapStops, easing within each segment.
func HeatmapGradient(t float64) colorful.Color {
	stops := HeatmapStops
	last := len(stops) - 1
	i := 0
	for i < last-1 && t >= stops[i+1].T {
		i++
	}
	f := lmath.Smoothstep(stops[i].T, stops[i+1].T, t)
	return stops[i].Color.BlendRgb(stops[i+1].Color, f)
}

// Lux returns the perceptual illuminance a light casts on an upward-facing surface at point.
// The second result is false when the point is outside the light's cone.
func Lux(point lmath.Vec3, light LightPose) (float64, bool) {
	toPoint := point.Sub(light.Position)
	distance := toPoint.Len()

	var lightToPoint lmath.Vec3
	if distance > 0 {
		lightToPoint = toPoint.Mul(1 / distance)
	}

	cosHalfAngle := math.Cos(light.ConeHalfAngle)
	cone := lmath.Smoothstep(cosHalfAngle, cosHalfAngle+ConeEdgeSoftness, lightToPoint.Dot(light.Direction))
	if cone <= minConeStrength {
		return 0, false
	}

	// Only light travelling downwards reaches a floor below the fixture.
	vertical := lmath.Saturate(-lightToPoint.Y())
	lux := light.Intensity * cone * vertical / math.Max(distance*distance, MinDistanceSquared)
	return lux, true
}

// EvaluateIlluminance returns the heatmap color and opacity of a world point.
// Points farther than maxDistance, outside the cone, or too dim report no contribution.
func EvaluateIlluminance(point lmath.Vec3, light LightPose, referenceLux, maxDistance float64) (Sample, bool) {
	if point.Sub(light.Position).Len() > maxDistance {
		return Sample{}, false
	}

	lux, ok := Lux(point, light)
	if !ok {
		return Sample{}, false
	}

	normalized := lmath.Saturate(math.Pow(lux/math.Max(referenceLux, minReferenceLux), LuxCompression))
	alpha := normalized * HeatmapAlphaScale
	if alpha <= MinAlpha {
		return Sample{}, false
	}

	return Sample{Color: HeatmapGradient(normalized), Alpha: alpha}, true
}

// IlluminanceField is a heatmap source that can be switched off.
// A disabled field or one without a light never contributes.
type IlluminanceField struct {
	Enabled      bool
	Light        *LightPose
	ReferenceLux float64
	MaxDistance  float64
}

// Evaluate samples the field at point.
func (f IlluminanceField) Evaluate(point lmath.Vec3) (Sample, bool) {
	if !f.Enabled || f.Light == nil {
		return Sample{}, false
	}
	return EvaluateIlluminance(point, *f.Light, f.ReferenceLux, f.MaxDistance)
}
