package render

import (
	"context"
	"image"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/lumen/pkg/photometry"
)

// HeatmapOptions describes the ground plane the illuminance field is sampled on.
type HeatmapOptions struct {
	Enabled      bool
	Size         float64 // edge length of the square plane, centered on the origin
	Resolution   int     // samples per edge
	Height       float64 // plane elevation
	ReferenceLux float64
	MaxDistance  float64
}

// PlanePoint returns the world position of the center of sample (x, y).
// Image rows run along +Z, columns along +X.
func (o HeatmapOptions) PlanePoint(x, y int) mgl64.Vec3 {
	step := o.Size / float64(o.Resolution)
	half := o.Size / 2
	return mgl64.Vec3{
		-half + (float64(x)+0.5)*step,
		o.Height,
		-half + (float64(y)+0.5)*step,
	}
}

// Heatmap samples the illuminance of light over the plane described by opts.
// A disabled heatmap is fully transparent.
func Heatmap(ctx context.Context, light photometry.LightPose, opts HeatmapOptions) (*image.NRGBA, error) {
	res := max(opts.Resolution, 1)
	img := image.NewNRGBA(image.Rect(0, 0, res, res))
	opts.Resolution = res

	field := photometry.IlluminanceField{
		Enabled:      opts.Enabled,
		Light:        &light,
		ReferenceLux: opts.ReferenceLux,
		MaxDistance:  opts.MaxDistance,
	}
	if !field.Enabled {
		return img, nil
	}

	err := rows(ctx, img, func(y int) {
		for x := 0; x < res; x++ {
			if s, ok := field.Evaluate(opts.PlanePoint(x, y)); ok {
				img.SetNRGBA(x, y, toNRGBA(s))
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}
