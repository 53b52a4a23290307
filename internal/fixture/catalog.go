// Package fixture loads the fixture catalog and the photometric files it references.
package fixture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/lumen/internal/logger"
	"github.com/Faultbox/lumen/pkg/encoding"
)

// Catalog errors.
var (
	ErrMissingIESPath  = errors.New("fixture has no iesPath")
	ErrFixtureNotFound = errors.New("fixture not found")
	ErrInvalidCatalog  = errors.New("catalog must be a list or contain a fixtures list")
)

// Fixture describes one luminaire entry of the catalog.
type Fixture struct {
	Name       string   `yaml:"name" json:"name"`
	Mode       string   `yaml:"mode,omitempty" json:"mode,omitempty"`
	OutputType string   `yaml:"outputType,omitempty" json:"outputType,omitempty"`
	Wattage    *float64 `yaml:"wattage,omitempty" json:"wattage,omitempty"`
	IESPath    string   `yaml:"iesPath" json:"iesPath"`
}

// DisplayName returns the fixture name or a placeholder.
func (f Fixture) DisplayName() string {
	if f.Name == "" {
		return "Unnamed fixture"
	}
	return f.Name
}

// ModeLabel returns the mode, falling back to the output type.
func (f Fixture) ModeLabel() string {
	switch {
	case f.Mode != "":
		return f.Mode
	case f.OutputType != "":
		return f.OutputType
	default:
		return "-"
	}
}

// Catalog is a loaded fixture list. Dir is where relative iesPath values are resolved.
type Catalog struct {
	Fixtures []Fixture
	Dir      string
}

// LoadCatalog reads a catalog file. JSON catalogs are read as YAML, which is a superset.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	fixtures, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	logger.Named("fixture").Debug("catalog loaded",
		zap.String("path", path),
		zap.Int("fixtures", len(fixtures)))

	return &Catalog{Fixtures: fixtures, Dir: filepath.Dir(path)}, nil
}

// ParseCatalog decodes either a bare fixture list or a document with a "fixtures" key.
func ParseCatalog(data []byte) ([]Fixture, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var fixtures []Fixture
		if err := doc.Decode(&fixtures); err != nil {
			return nil, err
		}
		return fixtures, nil
	case yaml.MappingNode:
		var wrapped struct {
			Fixtures []Fixture `yaml:"fixtures"`
		}
		if err := doc.Decode(&wrapped); err != nil {
			return nil, err
		}
		return wrapped.Fixtures, nil
	default:
		return nil, ErrInvalidCatalog
	}
}

// Filter returns fixtures whose name or mode contains query, case-insensitively.
// An empty query returns the list unchanged.
func Filter(list []Fixture, query string) []Fixture {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}

	var out []Fixture
	for _, f := range list {
		mode := f.Mode
		if mode == "" {
			mode = f.OutputType
		}
		if strings.Contains(strings.ToLower(f.Name), q) || strings.Contains(strings.ToLower(mode), q) {
			out = append(out, f)
		}
	}
	return out
}

// Find returns the fixture with the given name, ignoring case.
func (c *Catalog) Find(name string) (Fixture, error) {
	for _, f := range c.Fixtures {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return Fixture{}, fmt.Errorf("%w: %q", ErrFixtureNotFound, name)
}

// Path resolves the fixture's photometric file against the catalog directory.
// Windows separators are accepted.
func (c *Catalog) Path(f Fixture) string {
	p := filepath.FromSlash(encoding.NormalizePath(f.IESPath))
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}
