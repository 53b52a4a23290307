package lighting

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/fixture"
	"github.com/Faultbox/lumen/internal/logger"
	"github.com/Faultbox/lumen/pkg/formats"
	lmath "github.com/Faultbox/lumen/pkg/math"
	"github.com/Faultbox/lumen/pkg/photometry"
)

// MaxLights is the maximum number of fixtures a rig holds.
const MaxLights = 32

// Heatmap parameter floors.
const (
	MinHeatmapDistance  = 15.0
	MinReferenceLux     = 60.0
	referenceLuxDivisor = 12.0
)

// Rig errors.
var (
	ErrLightNotFound   = errors.New("light not found")
	ErrNoLightSelected = errors.New("no light selected")
	ErrRigFull         = errors.New("rig is full")
)

// Placement is the initial state of a fixture added to the rig.
type Placement struct {
	Position  mgl64.Vec3
	Yaw       float64 // degrees
	Pitch     float64 // degrees
	Intensity float64
	ColorTemp float64 // Kelvin
}

// Entry is one placed fixture.
type Entry struct {
	ID         string
	Fixture    fixture.Fixture
	Photometry formats.Photometry
	Profile    photometry.Profile
	Volumetric photometry.VolumetricParams

	Position  mgl64.Vec3
	Yaw       float64
	Pitch     float64
	Intensity float64
	ColorTemp float64

	// Derived from the aim.
	Direction mgl64.Vec3
	Target    mgl64.Vec3
	Distance  float64 // reach of the light
}

// aim recomputes direction, target and reach from yaw and pitch.
func (e *Entry) aim() {
	e.Direction = AimDirection(e.Yaw, e.Pitch)
	d := TargetDistance(e.Position.Y(), e.Direction)
	e.Target = e.Position.Add(e.Direction.Mul(d))
	e.Distance = ThrowDistance(d)
}

// Pose returns the snapshot handed to the field models.
func (e Entry) Pose() photometry.LightPose {
	return photometry.LightPose{
		Position:      e.Position,
		Direction:     e.Direction,
		ConeHalfAngle: e.Profile.Angle,
		Intensity:     e.Intensity,
		Color:         photometry.KelvinToRGB(e.ColorTemp),
	}
}

// HeatmapParams are the illuminance field inputs derived from a light.
type HeatmapParams struct {
	ReferenceLux float64
	MaxDistance  float64
}

// HeatmapParams scales the heatmap's reference white with intensity and its extent with reach.
func (e Entry) HeatmapParams() HeatmapParams {
	return HeatmapParams{
		ReferenceLux: math.Max(e.Intensity/referenceLuxDivisor, MinReferenceLux),
		MaxDistance:  math.Max(e.Distance, MinHeatmapDistance),
	}
}

// Beam returns the beam volume size and the rotation that orients it along the aim.
func (e Entry) Beam() (photometry.BeamGeometry, lmath.Quat) {
	pose := e.Pose()
	geom := photometry.ComputeBeamGeometry(pose, e.Target)
	return geom, lmath.BeamRotation(e.Target.Sub(e.Position))
}

// Rig is the set of placed fixtures and the current selection. It is safe for concurrent use.
type Rig struct {
	mu       sync.RWMutex
	entries  []*Entry
	selected string
	log      *zap.Logger
}

// NewRig creates an empty rig.
func NewRig() *Rig {
	return &Rig{
		entries: make([]*Entry, 0, MaxLights),
		log:     logger.Named("rig"),
	}
}

// Add places a fixture, derives its profile and selects it.
func (r *Rig) Add(f fixture.Fixture, p formats.Photometry, settings photometry.LightSettings, place Placement) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) >= MaxLights {
		return Entry{}, ErrRigFull
	}

	e := &Entry{
		ID:         "light-" + uuid.NewString(),
		Fixture:    f,
		Photometry: p,
		Profile:    photometry.DeriveProfile(&p, settings),
		Volumetric: photometry.DefaultVolumetricParams(),
		Position:   place.Position,
		Yaw:        place.Yaw,
		Pitch:      place.Pitch,
		Intensity:  place.Intensity,
		ColorTemp:  place.ColorTemp,
	}
	e.aim()

	r.entries = append(r.entries, e)
	r.selected = e.ID

	r.log.Info("light added",
		zap.String("fixture", f.DisplayName()),
		zap.String("id", e.ID),
		zap.Float64("angle_deg", mgl64.RadToDeg(e.Profile.Angle)),
		zap.Float64("distance", e.Distance),
		zap.Bool("photometric", !p.Empty()))

	return *e, nil
}

// Len returns the number of placed lights.
func (r *Rig) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// List returns snapshots of all lights in placement order.
func (r *Rig) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = *e
	}
	return out
}

// Label returns the display label of a light, e.g. "Downlight (#2)".
func (r *Rig) Label(id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, e := range r.entries {
		if e.ID == id {
			name := e.Fixture.Name
			if name == "" {
				name = "Light"
			}
			return fmt.Sprintf("%s (#%d)", name, i+1), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLightNotFound, id)
}

// Get returns a snapshot of one light.
func (r *Rig) Get(id string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e := r.find(id)
	if e == nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrLightNotFound, id)
	}
	return *e, nil
}

// Select makes id the light that control changes apply to.
func (r *Rig) Select(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(id) == nil {
		return fmt.Errorf("%w: %s", ErrLightNotFound, id)
	}
	r.selected = id
	return nil
}

// Selected returns a snapshot of the selected light.
func (r *Rig) Selected() (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.selected == "" {
		return Entry{}, ErrNoLightSelected
	}
	e := r.find(r.selected)
	if e == nil {
		return Entry{}, ErrNoLightSelected
	}
	return *e, nil
}

// Remove deletes a light. Removing the selected light clears the selection.
func (r *Rig) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			if r.selected == id {
				r.selected = ""
			}
			r.log.Debug("light removed", zap.String("id", id))
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrLightNotFound, id)
}

// SetIntensity changes a light's intensity.
func (r *Rig) SetIntensity(id string, intensity float64) (Entry, error) {
	return r.update(id, func(e *Entry) {
		e.Intensity = math.Max(intensity, 0)
	})
}

// SetColorTemp changes a light's color temperature in Kelvin.
func (r *Rig) SetColorTemp(id string, kelvin float64) (Entry, error) {
	return r.update(id, func(e *Entry) {
		e.ColorTemp = kelvin
	})
}

// SetYaw re-aims a light horizontally.
func (r *Rig) SetYaw(id string, yawDeg float64) (Entry, error) {
	return r.update(id, func(e *Entry) {
		e.Yaw = yawDeg
		e.aim()
	})
}

// SetPitch re-aims a light vertically.
func (r *Rig) SetPitch(id string, pitchDeg float64) (Entry, error) {
	return r.update(id, func(e *Entry) {
		e.Pitch = pitchDeg
		e.aim()
	})
}

// SetVolumetric replaces a light's beam volume parameters.
func (r *Rig) SetVolumetric(id string, params photometry.VolumetricParams) (Entry, error) {
	return r.update(id, func(e *Entry) {
		e.Volumetric = params
	})
}

func (r *Rig) update(id string, fn func(*Entry)) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.find(id)
	if e == nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrLightNotFound, id)
	}
	fn(e)
	return *e, nil
}

func (r *Rig) find(id string) *Entry {
	for _, e := range r.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}
