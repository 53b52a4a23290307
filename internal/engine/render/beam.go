package render

import (
	"context"
	"image"
	"math"

	"github.com/Faultbox/lumen/pkg/photometry"
)

// BeamSection draws a slice through the axis of light's beam volume.
// The apex sits at the top center of the image and the base spans its bottom edge.
// Pixels outside the cone, and every pixel of a beam too weak to draw, are transparent.
func BeamSection(ctx context.Context, light photometry.LightPose, params photometry.VolumetricParams, width, height int) (*image.NRGBA, error) {
	width, height = max(width, 1), max(height, 1)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if !photometry.BeamVisible(light) {
		return img, nil
	}

	err := rows(ctx, img, func(y int) {
		h := (float64(y) + 0.5) / float64(height)
		for x := 0; x < width; x++ {
			u := math.Abs((float64(x)+0.5)/float64(width)*2 - 1)
			radial := u / h
			if radial > 1 {
				continue
			}
			if s, ok := photometry.EvaluateVolumetric(photometry.LocalPoint{Height: h, Radial: radial}, light, params); ok {
				img.SetNRGBA(x, y, toNRGBA(s))
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}
