package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagCatalog   = flag.String("catalog", "", "Fixture catalog path")
	flagIntensity = flag.Float64("intensity", 0, "Initial light intensity")
	flagCCT       = flag.Float64("cct", 0, "Initial color temperature in Kelvin")
	flagNoHeatmap = flag.Bool("no-heatmap", false, "Disable the illuminance heatmap")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagCatalog != "" {
		cfg.Data.Catalog = *flagCatalog
	}
	if *flagIntensity > 0 {
		cfg.Light.Intensity = *flagIntensity
	}
	if *flagCCT > 0 {
		cfg.Light.ColorTemp = *flagCCT
	}
	if *flagNoHeatmap {
		cfg.Heatmap.Enabled = false
	}
}
