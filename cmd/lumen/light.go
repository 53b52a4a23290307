package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/config"
	"github.com/Faultbox/lumen/internal/engine/lighting"
	"github.com/Faultbox/lumen/internal/engine/render"
	"github.com/Faultbox/lumen/internal/fixture"
	"github.com/Faultbox/lumen/internal/logger"
	"github.com/Faultbox/lumen/pkg/formats"
)

// resolveSource loads a photometric file directly, or looks arg up by name in the catalog.
func resolveSource(cfg *config.Config, arg string) (fixture.Fixture, formats.Photometry, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		p, err := fixture.ReadPhotometry(arg)
		if err != nil {
			return fixture.Fixture{}, formats.Photometry{}, err
		}
		name := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		return fixture.Fixture{Name: name, IESPath: arg}, p, nil
	}

	cat, err := fixture.LoadCatalog(cfg.Data.Catalog)
	if err != nil {
		return fixture.Fixture{}, formats.Photometry{}, fmt.Errorf("%q is not a file: %w", arg, err)
	}
	f, err := cat.Find(arg)
	if err != nil {
		return fixture.Fixture{}, formats.Photometry{}, err
	}
	p, err := cat.LoadPhotometry(f)
	if err != nil {
		return fixture.Fixture{}, formats.Photometry{}, err
	}
	return f, p, nil
}

// placeLight mounts a fixture at ceiling height above the origin with the configured defaults.
func placeLight(cfg *config.Config, f fixture.Fixture, p formats.Photometry, yaw, pitch float64) (lighting.Entry, error) {
	rig := lighting.NewRig()
	e, err := rig.Add(f, p, cfg.Light.Settings(), lighting.Placement{
		Position:  mgl64.Vec3{0, cfg.Light.CeilingHeight, 0},
		Yaw:       yaw,
		Pitch:     pitch,
		Intensity: cfg.Light.Intensity,
		ColorTemp: cfg.Light.ColorTemp,
	})
	if err != nil {
		return lighting.Entry{}, err
	}
	return rig.SetVolumetric(e.ID, cfg.Volumetric.Params())
}

// heatmapOptions combines the heatmap config with the light-derived field parameters.
// Non-zero config values override the derived ones.
func heatmapOptions(cfg *config.Config, e lighting.Entry) render.HeatmapOptions {
	params := e.HeatmapParams()
	if cfg.Heatmap.ReferenceLux > 0 {
		params.ReferenceLux = cfg.Heatmap.ReferenceLux
	}
	if cfg.Heatmap.MaxDistance > 0 {
		params.MaxDistance = cfg.Heatmap.MaxDistance
	}
	return render.HeatmapOptions{
		Enabled:      cfg.Heatmap.Enabled,
		Size:         cfg.Heatmap.Size,
		Resolution:   cfg.Heatmap.Resolution,
		Height:       cfg.Heatmap.Height,
		ReferenceLux: params.ReferenceLux,
		MaxDistance:  params.MaxDistance,
	}
}

func renderHeatmap(ctx context.Context, cfg *config.Config, e lighting.Entry, out string) error {
	opts := heatmapOptions(cfg, e)
	img, err := render.Heatmap(ctx, e.Pose(), opts)
	if err != nil {
		return fmt.Errorf("rendering heatmap: %w", err)
	}
	if err := render.WritePNG(out, render.Upscale(img, cfg.Heatmap.OutputScale)); err != nil {
		return err
	}

	logger.Info("heatmap written",
		zap.String("path", out),
		zap.String("fixture", e.Fixture.DisplayName()),
		zap.Float64("reference_lux", opts.ReferenceLux),
		zap.Float64("max_distance", opts.MaxDistance),
		zap.Bool("enabled", opts.Enabled))
	return nil
}
