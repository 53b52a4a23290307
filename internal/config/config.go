// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Light      LightConfig      `yaml:"light"`
	Heatmap    HeatmapConfig    `yaml:"heatmap"`
	Volumetric VolumetricConfig `yaml:"volumetric"`
	Data       DataConfig       `yaml:"data"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LightConfig holds the initial state of a newly placed fixture.
type LightConfig struct {
	Intensity       float64 `yaml:"intensity"`         // candela-equivalent
	ColorTemp       float64 `yaml:"color_temp"`        // Kelvin
	Yaw             float64 `yaml:"yaw"`               // degrees
	Pitch           float64 `yaml:"pitch"`             // degrees, -90 aims straight down
	CeilingHeight   float64 `yaml:"ceiling_height"`    // mounting height of new fixtures
	DefaultAngleDeg float64 `yaml:"default_angle_deg"` // used when a file has no beam data
	DefaultDistance float64 `yaml:"default_distance"`
	DefaultPenumbra float64 `yaml:"default_penumbra"`
	IESPenumbra     float64 `yaml:"ies_penumbra"`
}

// HeatmapConfig holds ground-plane illuminance overlay settings.
type HeatmapConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Size         float64 `yaml:"size"`          // plane edge length in world units
	Resolution   int     `yaml:"resolution"`    // samples per edge
	Height       float64 `yaml:"height"`        // plane elevation
	ReferenceLux float64 `yaml:"reference_lux"` // 0 derives from intensity
	MaxDistance  float64 `yaml:"max_distance"`  // 0 derives from throw distance
	OutputScale  int     `yaml:"output_scale"`  // image upscale factor
}

// VolumetricConfig holds beam volume settings.
type VolumetricConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Opacity     float64 `yaml:"opacity"`
	Attenuation float64 `yaml:"attenuation"`
	Noise       float64 `yaml:"noise"`
	Width       int     `yaml:"width"`  // beam section image width
	Height      int     `yaml:"height"` // beam section image height
}

// DataConfig holds fixture data paths.
type DataConfig struct {
	Catalog string `yaml:"catalog"` // fixture catalog (JSON or YAML)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Light: LightConfig{
			Intensity:       1500,
			ColorTemp:       3500,
			Yaw:             0,
			Pitch:           -90,
			CeilingHeight:   3.25,
			DefaultAngleDeg: 38,
			DefaultDistance: 35,
			DefaultPenumbra: 0.35,
			IESPenumbra:     0.4,
		},
		Heatmap: HeatmapConfig{
			Enabled:      true,
			Size:         25,
			Resolution:   64,
			Height:       0.012,
			ReferenceLux: 0,
			MaxDistance:  0,
			OutputScale:  4,
		},
		Volumetric: VolumetricConfig{
			Enabled:     true,
			Opacity:     1,
			Attenuation: 1.5,
			Noise:       0,
			Width:       256,
			Height:      256,
		},
		Data: DataConfig{
			Catalog: "fixtures/fixtures.json",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
