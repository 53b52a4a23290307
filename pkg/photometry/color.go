package photometry

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color temperature range accepted by KelvinToRGB.
const (
	MinKelvin = 1000.0
	MaxKelvin = 40000.0
)

// KelvinToRGB approximates the color of a blackbody radiator (Tanner Helland fit).
// Input is clamped to [MinKelvin, MaxKelvin]; every channel is in [0, 1].
func KelvinToRGB(kelvin float64) colorful.Color {
	t := math.Max(MinKelvin, math.Min(MaxKelvin, kelvin)) / 100

	var r, g, b float64
	if t <= 66 {
		r = 255
		g = 99.4708025861*math.Log(t) - 161.1195681661
		if t <= 19 {
			b = 0
		} else {
			b = 138.5177312231*math.Log(t-10) - 305.0447927307
		}
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
		b = 255
	}

	return colorful.Color{R: r / 255, G: g / 255, B: b / 255}.Clamped()
}

// scale multiplies every channel by s without clamping.
func scale(c colorful.Color, s float64) colorful.Color {
	return colorful.Color{R: c.R * s, G: c.G * s, B: c.B * s}
}
