package config

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/lumen/pkg/photometry"
)

// Settings converts the light section into fixture defaults for profile derivation.
func (c LightConfig) Settings() photometry.LightSettings {
	s := photometry.DefaultLightSettings()
	s.Angle = mgl64.DegToRad(c.DefaultAngleDeg)
	s.Distance = c.DefaultDistance
	s.Penumbra = c.DefaultPenumbra
	s.PhotometricPenumbra = c.IESPenumbra
	s.Intensity = c.Intensity
	s.ColorTemp = c.ColorTemp
	return s
}

// Params converts the volumetric section into model parameters.
func (c VolumetricConfig) Params() photometry.VolumetricParams {
	return photometry.VolumetricParams{
		Opacity:     c.Opacity,
		Attenuation: c.Attenuation,
		Noise:       c.Noise,
	}
}
