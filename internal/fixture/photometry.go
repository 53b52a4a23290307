package fixture

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/logger"
	"github.com/Faultbox/lumen/pkg/encoding"
	"github.com/Faultbox/lumen/pkg/formats"
)

// ReadPhotometry reads and parses a photometric file in any common text encoding.
// Only I/O fails; unusable content yields an empty Photometry and a warning.
func ReadPhotometry(path string) (formats.Photometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return formats.Photometry{}, fmt.Errorf("reading photometric file: %w", err)
	}

	p := formats.ParseIES(encoding.DecodeText(data))
	log := logger.Named("fixture")
	if p.Empty() {
		log.Warn("no usable photometric data, using defaults", zap.String("path", path))
	} else {
		log.Debug("photometry parsed",
			zap.String("path", path),
			zap.Int("vertical", len(p.VerticalAngles)),
			zap.Int("horizontal", len(p.HorizontalAngles)),
			zap.Float64("peak_cd", p.PeakCandela),
			zap.Float64("beam_rad", p.BeamAngle))
	}
	return p, nil
}

// LoadPhotometry reads the photometric file of a catalog fixture.
func (c *Catalog) LoadPhotometry(f Fixture) (formats.Photometry, error) {
	if f.IESPath == "" {
		logger.Named("fixture").Warn("fixture is missing an iesPath", zap.String("fixture", f.DisplayName()))
		return formats.Photometry{}, fmt.Errorf("%s: %w", f.DisplayName(), ErrMissingIESPath)
	}
	return ReadPhotometry(c.Path(f))
}
