package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/config"
	"github.com/Faultbox/lumen/internal/engine/render"
	"github.com/Faultbox/lumen/internal/fixture"
	"github.com/Faultbox/lumen/internal/logger"
	"github.com/Faultbox/lumen/pkg/formats"
	"github.com/Faultbox/lumen/pkg/photometry"
)

var errUsage = errors.New("invalid arguments")

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lumen info <file.ies|fixture>")
		return errUsage
	}

	f, p, err := resolveSource(cfg, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Fixture:  %s\n", f.DisplayName())
	fmt.Printf("Mode:     %s\n", f.ModeLabel())
	if p.Empty() {
		fmt.Println("Photometry: none (defaults apply)")
	} else {
		printPhotometry(&p)
	}

	prof := photometry.DeriveProfile(&p, cfg.Light.Settings())
	fmt.Println()
	fmt.Println("Profile:")
	fmt.Printf("  Beam angle: %.1f° %s\n", mgl64.RadToDeg(prof.Angle), origin(prof.AngleFromData))
	fmt.Printf("  Distance:   %.1f %s\n", prof.Distance, origin(prof.DistanceFromData))
	fmt.Printf("  Penumbra:   %.2f\n", prof.Penumbra)
	fmt.Printf("  Decay:      %.1f\n", prof.Decay)
	return nil
}

func printPhotometry(p *formats.Photometry) {
	fmt.Printf("Type:     %s\n", p.PhotometricType)
	fmt.Printf("Lamps:    %g x %g lm (total %g lm)\n", p.LampCount, p.LumensPerLamp, p.TotalLumens())
	fmt.Printf("Grid:     %d vertical x %d horizontal angles\n", len(p.VerticalAngles), len(p.HorizontalAngles))
	fmt.Printf("Peak:     %.1f cd\n", p.PeakCandela)

	if len(p.Keywords) > 0 {
		keys := make([]string, 0, len(p.Keywords))
		for k := range p.Keywords {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Println()
		fmt.Println("Keywords:")
		for _, k := range keys {
			fmt.Printf("  %-12s %s\n", k, p.Keywords[k])
		}
	}
}

func origin(fromData bool) string {
	if fromData {
		return "(photometric)"
	}
	return "(default)"
}

func cmdKelvin(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lumen kelvin <K> [K...]")
		return errUsage
	}

	for _, arg := range args {
		k, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid temperature %q: %w", arg, err)
		}
		fmt.Println(kelvinLine(k))
	}
	return nil
}

// kelvinLine formats the color of one temperature, e.g. "2700 K  #ffa757  rgb(255, 167, 87)".
func kelvinLine(k float64) string {
	c := photometry.KelvinToRGB(k)
	r, g, b := c.RGB255()
	return fmt.Sprintf("%g K  %s  rgb(%d, %d, %d)", k, c.Hex(), r, g, b)
}

func cmdCatalog(cfg *config.Config, args []string) error {
	cat, err := fixture.LoadCatalog(cfg.Data.Catalog)
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	list := fixture.Filter(cat.Fixtures, query)
	for _, f := range list {
		watts := ""
		if f.Wattage != nil {
			watts = fmt.Sprintf("%gW", *f.Wattage)
		}
		fmt.Printf("  %-32s %-16s %6s  %s\n", f.DisplayName(), f.ModeLabel(), watts, f.IESPath)
	}
	fmt.Printf("\n%d of %d fixtures\n", len(list), len(cat.Fixtures))
	return nil
}

func cmdHeatmap(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("heatmap", flag.ExitOnError)
	out := fs.String("o", "heatmap.png", "Output PNG path")
	yaw := fs.Float64("yaw", cfg.Light.Yaw, "Aim yaw in degrees")
	pitch := fs.Float64("pitch", cfg.Light.Pitch, "Aim pitch in degrees (-90 = straight down)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lumen heatmap [-o out.png] [-yaw deg] [-pitch deg] <source>")
		return errUsage
	}

	f, p, err := resolveSource(cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	e, err := placeLight(cfg, f, p, *yaw, *pitch)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := renderHeatmap(ctx, cfg, e, *out); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", *out)
	return nil
}

func cmdBeam(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("beam", flag.ExitOnError)
	out := fs.String("o", "beam.png", "Output PNG path")
	opacity := fs.Float64("opacity", cfg.Volumetric.Opacity, "Beam opacity")
	attenuation := fs.Float64("attenuation", cfg.Volumetric.Attenuation, "Decay length along the beam")
	noise := fs.Float64("noise", cfg.Volumetric.Noise, "Turbulence blend (0-1)")
	width := fs.Int("w", cfg.Volumetric.Width, "Image width")
	height := fs.Int("h", cfg.Volumetric.Height, "Image height")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lumen beam [-o out.png] [-opacity x] [-attenuation x] [-noise x] <source>")
		return errUsage
	}
	if !cfg.Volumetric.Enabled {
		fmt.Println("Volumetric beams are disabled in the config")
		return nil
	}

	f, p, err := resolveSource(cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	e, err := placeLight(cfg, f, p, cfg.Light.Yaw, cfg.Light.Pitch)
	if err != nil {
		return err
	}

	params := photometry.VolumetricParams{Opacity: *opacity, Attenuation: *attenuation, Noise: *noise}
	pose := e.Pose()
	geom, _ := e.Beam()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, err := render.BeamSection(ctx, pose, params, *width, *height)
	if err != nil {
		return fmt.Errorf("rendering beam: %w", err)
	}
	if err := render.WritePNG(*out, img); err != nil {
		return err
	}

	logger.Info("beam written",
		zap.String("path", *out),
		zap.Float64("strength", photometry.VolumetricStrength(pose)),
		zap.Float64("radius", geom.Radius),
		zap.Float64("length", geom.Length))
	fmt.Printf("Beam: radius %.2f, length %.2f, strength %.2f\n", geom.Radius, geom.Length, photometry.VolumetricStrength(pose))
	fmt.Printf("Wrote %s\n", *out)
	return nil
}

func cmdWatch(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	out := fs.String("o", "heatmap.png", "Output PNG path")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lumen watch [-o out.png] <file.ies>")
		return errUsage
	}
	path, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	refresh := func() {
		f, p, err := resolveSource(cfg, path)
		if err != nil {
			logger.Warn("reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		entry, err := placeLight(cfg, f, p, cfg.Light.Yaw, cfg.Light.Pitch)
		if err == nil {
			err = renderHeatmap(ctx, cfg, entry, *out)
		}
		if err != nil {
			logger.Warn("render failed", zap.String("path", path), zap.Error(err))
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files on save, so watch the directory rather than the file.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	refresh()
	fmt.Printf("Watching %s (Ctrl+C to stop)\n", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isUpdate(event, path) {
				logger.Debug("photometric file changed", zap.String("op", event.Op.String()))
				refresh()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// isUpdate reports whether event rewrote the file at path.
func isUpdate(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
