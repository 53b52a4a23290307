package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lumen/internal/config"
	"github.com/Faultbox/lumen/internal/fixture"
	"github.com/Faultbox/lumen/pkg/formats"
)

const spotIES = "[MANUFAC] Acme\nTILT=NONE\n1 2400 1 3 1 1 1 0 0 0\n0 20 40\n0\n1200 900 100\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveSourceFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "spot.ies", spotIES)

	f, p, err := resolveSource(config.Default(), path)
	require.NoError(t, err)
	assert.Equal(t, "spot", f.Name)
	assert.False(t, p.Empty())
	assert.Equal(t, "Acme", p.Keywords["MANUFAC"])
}

func TestResolveSourceCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "spot.ies", spotIES)
	catalog := writeFile(t, dir, "fixtures.json", `{"fixtures": [{"name": "Acme Spot", "mode": "Narrow", "iesPath": "spot.ies"}]}`)

	cfg := config.Default()
	cfg.Data.Catalog = catalog

	f, p, err := resolveSource(cfg, "acme spot")
	require.NoError(t, err)
	assert.Equal(t, "Acme Spot", f.Name)
	assert.Equal(t, 2400.0, p.LumensPerLamp)

	_, _, err = resolveSource(cfg, "Missing")
	assert.ErrorIs(t, err, fixture.ErrFixtureNotFound)
}

func TestPlaceLight(t *testing.T) {
	cfg := config.Default()
	cfg.Volumetric.Noise = 0.25

	e, err := placeLight(cfg, fixture.Fixture{Name: "Spot"}, formats.ParseIES(spotIES), 0, -90)
	require.NoError(t, err)

	assert.InDelta(t, cfg.Light.CeilingHeight, e.Position.Y(), 1e-12)
	assert.InDelta(t, mgl64.DegToRad(40), e.Profile.Angle, 1e-9)
	assert.Equal(t, 0.25, e.Volumetric.Noise)
}

func TestHeatmapOptions(t *testing.T) {
	cfg := config.Default()
	e, err := placeLight(cfg, fixture.Fixture{}, formats.Photometry{}, 0, -90)
	require.NoError(t, err)

	opts := heatmapOptions(cfg, e)
	assert.Equal(t, 125.0, opts.ReferenceLux)
	assert.Equal(t, 15.0, opts.MaxDistance)
	assert.Equal(t, 64, opts.Resolution)

	cfg.Heatmap.ReferenceLux = 300
	cfg.Heatmap.MaxDistance = 40
	opts = heatmapOptions(cfg, e)
	assert.Equal(t, 300.0, opts.ReferenceLux)
	assert.Equal(t, 40.0, opts.MaxDistance)
}

func TestRenderHeatmap(t *testing.T) {
	cfg := config.Default()
	cfg.Heatmap.Resolution = 16
	cfg.Heatmap.OutputScale = 2

	e, err := placeLight(cfg, fixture.Fixture{}, formats.Photometry{}, 0, -90)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "heatmap.png")
	require.NoError(t, renderHeatmap(context.Background(), cfg, e, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestKelvinLine(t *testing.T) {
	assert.Equal(t, "1000 K  #ff4400  rgb(255, 68, 0)", kelvinLine(1000))
	assert.Equal(t, "2700 K  #ffa757  rgb(255, 167, 87)", kelvinLine(2700))
}

func TestIsUpdate(t *testing.T) {
	path := filepath.Join(string(filepath.Separator), "data", "spot.ies")

	assert.True(t, isUpdate(fsnotify.Event{Name: path, Op: fsnotify.Write}, path))
	assert.True(t, isUpdate(fsnotify.Event{Name: path, Op: fsnotify.Create}, path))
	assert.False(t, isUpdate(fsnotify.Event{Name: path, Op: fsnotify.Chmod}, path))
	assert.False(t, isUpdate(fsnotify.Event{Name: path + ".bak", Op: fsnotify.Write}, path))
}
