// Package lighting places fixtures in the room and derives their field parameters.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Aiming constants.
const (
	// horizontalEpsilon is the |dir.y| below which an aim counts as horizontal.
	horizontalEpsilon = 0.0001

	// HorizontalTargetDistance is the target distance for a level aim.
	HorizontalTargetDistance = 10.0

	// UpwardTargetDistance is the target distance for an aim above the horizon.
	UpwardTargetDistance = 3.0

	// MinTargetDistance keeps the target away from the fixture.
	MinTargetDistance = 0.5

	// MinThrowDistance is the smallest reach given to an aimed light.
	MinThrowDistance = 5.0

	throwMargin = 1.2
)

// AimDirection converts yaw and pitch angles in degrees to a unit aim vector.
// Yaw rotates around the Y axis from +Z, pitch is elevation from the horizon,
// so pitch -90 points straight down.
func AimDirection(yawDeg, pitchDeg float64) mgl64.Vec3 {
	yaw := mgl64.DegToRad(yawDeg)
	pitch := mgl64.DegToRad(pitchDeg)

	cosPitch := math.Cos(pitch)
	dir := mgl64.Vec3{
		math.Sin(yaw) * cosPitch,
		math.Sin(pitch),
		math.Cos(yaw) * cosPitch,
	}
	return dir.Normalize()
}

// TargetDistance returns how far along dir the aim target sits for a fixture at height originY.
// Downward aims hit the floor; level and upward aims use fixed distances.
func TargetDistance(originY float64, dir mgl64.Vec3) float64 {
	var d float64
	switch {
	case dir.Y() < -horizontalEpsilon:
		d = originY / -dir.Y()
	case math.Abs(dir.Y()) < horizontalEpsilon:
		d = HorizontalTargetDistance
	default:
		d = UpwardTargetDistance
	}
	return math.Max(d, MinTargetDistance)
}

// ThrowDistance returns the reach of a light whose target is targetDistance away.
func ThrowDistance(targetDistance float64) float64 {
	return math.Max(targetDistance*throwMargin, MinThrowDistance)
}
