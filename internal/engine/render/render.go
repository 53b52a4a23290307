// Package render rasterizes the illuminance and beam volume fields into images.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/lumen/pkg/photometry"
)

// rows evaluates fn for every row of img in parallel, stopping at the first error
// or when ctx is cancelled.
func rows(ctx context.Context, img *image.NRGBA, fn func(y int)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		y := y
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(y)
			return nil
		})
	}
	return g.Wait()
}

// toNRGBA converts a field sample into a non-premultiplied pixel.
func toNRGBA(s photometry.Sample) color.NRGBA {
	r, g, b := s.Color.Clamped().RGB255()
	a := math.Round(math.Max(0, math.Min(1, s.Alpha)) * 255)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}
}

// Upscale enlarges img by factor with Catmull-Rom filtering.
// A factor below 2 returns a plain copy.
func Upscale(img image.Image, factor int) *image.NRGBA {
	b := img.Bounds()
	if factor < 2 {
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img to path, creating parent directories as needed.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}
