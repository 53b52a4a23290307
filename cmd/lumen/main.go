// lumen is a CLI for inspecting photometric files and rendering light fields.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/config"
	"github.com/Faultbox/lumen/internal/logger"
)

func main() {
	// Global flags come before the command
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	rest := args[1:]

	switch command {
	case "info":
		err = cmdInfo(cfg, rest)
	case "kelvin", "cct":
		err = cmdKelvin(rest)
	case "catalog", "ls":
		err = cmdCatalog(cfg, rest)
	case "heatmap":
		err = cmdHeatmap(cfg, rest)
	case "beam":
		err = cmdBeam(cfg, rest)
	case "watch":
		err = cmdWatch(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lumen - photometric light inspector

Usage:
  lumen [global options] <command> [options]

Global options:
  -config <file>     Config file (default ./config.yaml or the user config dir)
  -catalog <file>    Fixture catalog
  -intensity <cd>    Initial light intensity
  -cct <kelvin>      Initial color temperature
  -no-heatmap        Disable the illuminance heatmap
  -debug             Enable debug logging

Commands:
  info <file.ies|fixture>             Show photometric data and the derived profile
  kelvin <K> [K...]                   Show the RGB color of color temperatures
  catalog [query]                     List catalog fixtures (optional filter)
  heatmap [-o out.png] <source>       Render the floor illuminance heatmap
  beam [-o out.png] <source>          Render a section of the beam volume
  watch [-o out.png] <file.ies>       Re-render the heatmap whenever the file changes

A source is either a photometric file path or a fixture name from the catalog.

Examples:
  lumen info downlight.ies
  lumen kelvin 2700 4000 6500
  lumen catalog wash
  lumen -cct 2700 heatmap -pitch -60 -o heatmap.png "Par 64"
  lumen beam -opacity 0.6 -noise 0.3 spot.ies`)
}
