package lighting

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lumen/internal/fixture"
	"github.com/Faultbox/lumen/pkg/formats"
	"github.com/Faultbox/lumen/pkg/photometry"
)

const narrowIES = "TILT=NONE\n1 3000 1 3 1 1 1 0 0 0\n0 15 30\n0\n1000 800 100\n"

func defaultPlacement() Placement {
	return Placement{
		Position:  mgl64.Vec3{0, 3.25, 0},
		Yaw:       0,
		Pitch:     -90,
		Intensity: 1500,
		ColorTemp: 3500,
	}
}

func TestRigAddDerivesProfile(t *testing.T) {
	rig := NewRig()
	p := formats.ParseIES(narrowIES)

	e, err := rig.Add(fixture.Fixture{Name: "Narrow Spot"}, p, photometry.DefaultLightSettings(), defaultPlacement())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(e.ID, "light-"))
	assert.InDelta(t, mgl64.DegToRad(30), e.Profile.Angle, 1e-9)
	assert.Equal(t, 37.5, e.Profile.Distance)
	assert.InDelta(t, 0, e.Target.Sub(mgl64.Vec3{0, 0, 0}).Len(), 1e-9, "aimed straight down to the floor")
	assert.Equal(t, MinThrowDistance, e.Distance)

	sel, err := rig.Selected()
	require.NoError(t, err)
	assert.Equal(t, e.ID, sel.ID, "new light becomes selected")
}

func TestRigAddWithoutPhotometry(t *testing.T) {
	rig := NewRig()
	defaults := photometry.DefaultLightSettings()

	e, err := rig.Add(fixture.Fixture{Name: "Generic"}, formats.Photometry{}, defaults, defaultPlacement())
	require.NoError(t, err)
	assert.Equal(t, defaults.Angle, e.Profile.Angle)
	assert.Equal(t, defaults.Penumbra, e.Profile.Penumbra)
}

func TestRigSelection(t *testing.T) {
	rig := NewRig()

	_, err := rig.Selected()
	assert.ErrorIs(t, err, ErrNoLightSelected)

	a, _ := rig.Add(fixture.Fixture{Name: "A"}, formats.Photometry{}, photometry.DefaultLightSettings(), defaultPlacement())
	b, _ := rig.Add(fixture.Fixture{Name: "B"}, formats.Photometry{}, photometry.DefaultLightSettings(), defaultPlacement())

	sel, _ := rig.Selected()
	assert.Equal(t, b.ID, sel.ID)

	require.NoError(t, rig.Select(a.ID))
	sel, _ = rig.Selected()
	assert.Equal(t, a.ID, sel.ID)

	assert.ErrorIs(t, rig.Select("light-missing"), ErrLightNotFound)

	label, err := rig.Label(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "B (#2)", label)

	require.NoError(t, rig.Remove(a.ID))
	_, err = rig.Selected()
	assert.ErrorIs(t, err, ErrNoLightSelected)
	assert.Equal(t, 1, rig.Len())
	assert.ErrorIs(t, rig.Remove(a.ID), ErrLightNotFound)
}

func TestRigControls(t *testing.T) {
	rig := NewRig()
	e, err := rig.Add(fixture.Fixture{Name: "Spot"}, formats.Photometry{}, photometry.DefaultLightSettings(), defaultPlacement())
	require.NoError(t, err)

	e, err = rig.SetIntensity(e.ID, 3000)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, e.Intensity)

	e, _ = rig.SetIntensity(e.ID, -5)
	assert.Equal(t, 0.0, e.Intensity)

	e, err = rig.SetColorTemp(e.ID, 2700)
	require.NoError(t, err)
	assert.Equal(t, photometry.KelvinToRGB(2700), e.Pose().Color)

	e, err = rig.SetPitch(e.ID, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1, e.Direction.Z(), 1e-9)
	assert.InDelta(t, HorizontalTargetDistance*1.2, e.Distance, 1e-9)

	e, err = rig.SetYaw(e.ID, 90)
	require.NoError(t, err)
	assert.InDelta(t, 1, e.Direction.X(), 1e-9)
	assert.InDelta(t, HorizontalTargetDistance, e.Target.X(), 1e-9)

	params := photometry.VolumetricParams{Opacity: 0.4, Attenuation: 2, Noise: 0.3}
	e, err = rig.SetVolumetric(e.ID, params)
	require.NoError(t, err)
	assert.Equal(t, params, e.Volumetric)

	_, err = rig.SetYaw("light-missing", 10)
	assert.ErrorIs(t, err, ErrLightNotFound)
}

func TestRigSnapshotsAreCopies(t *testing.T) {
	rig := NewRig()
	e, _ := rig.Add(fixture.Fixture{Name: "Spot"}, formats.Photometry{}, photometry.DefaultLightSettings(), defaultPlacement())

	e.Intensity = 99999
	stored, err := rig.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, stored.Intensity)
}

func TestRigFull(t *testing.T) {
	rig := NewRig()
	for i := 0; i < MaxLights; i++ {
		_, err := rig.Add(fixture.Fixture{}, formats.Photometry{}, photometry.DefaultLightSettings(), defaultPlacement())
		require.NoError(t, err)
	}
	_, err := rig.Add(fixture.Fixture{}, formats.Photometry{}, photometry.DefaultLightSettings(), defaultPlacement())
	assert.ErrorIs(t, err, ErrRigFull)
	assert.Len(t, rig.List(), MaxLights)
}

func TestRigConcurrentUpdates(t *testing.T) {
	rig := NewRig()
	e, _ := rig.Add(fixture.Fixture{Name: "Spot"}, formats.Photometry{}, photometry.DefaultLightSettings(), defaultPlacement())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = rig.SetYaw(e.ID, float64(i*10))
			snap, _ := rig.Get(e.ID)
			_, _ = photometry.EvaluateIlluminance(mgl64.Vec3{}, snap.Pose(), 100, 40)
		}(i)
	}
	wg.Wait()

	final, err := rig.Get(e.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1, final.Direction.Len(), 1e-9)
}

func TestEntryHeatmapParams(t *testing.T) {
	tests := []struct {
		name      string
		intensity float64
		distance  float64
		want      HeatmapParams
	}{
		{"floors", 300, 5, HeatmapParams{ReferenceLux: MinReferenceLux, MaxDistance: MinHeatmapDistance}},
		{"bright and far", 2400, 24, HeatmapParams{ReferenceLux: 200, MaxDistance: 24}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Entry{Intensity: tt.intensity, Distance: tt.distance}
			assert.Equal(t, tt.want, e.HeatmapParams())
		})
	}
}

func TestEntryBeam(t *testing.T) {
	rig := NewRig()
	e, _ := rig.Add(fixture.Fixture{}, formats.Photometry{}, photometry.DefaultLightSettings(), defaultPlacement())

	geom, rot := e.Beam()
	assert.InDelta(t, 3.25, geom.Length, 1e-9)
	assert.InDelta(t, math.Tan(e.Profile.Angle)*3.25, geom.Radius, 1e-9)

	axis := rot.Rotate(mgl64.Vec3{0, -1, 0})
	assert.InDelta(t, 0, axis.Sub(e.Direction).Len(), 1e-9)
}
