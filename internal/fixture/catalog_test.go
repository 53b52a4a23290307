package fixture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogJSON = `{
  "fixtures": [
    {"name": "Downlight 12W", "mode": "Spot", "wattage": 12, "outputType": "Direct", "iesPath": "ies/downlight.ies"},
    {"name": "Wall Washer", "outputType": "Asymmetric", "iesPath": "ies/washer.ies"},
    {"name": "Pendant", "mode": "Diffuse"}
  ]
}`

func TestParseCatalogWrapped(t *testing.T) {
	fixtures, err := ParseCatalog([]byte(testCatalogJSON))
	require.NoError(t, err)
	require.Len(t, fixtures, 3)

	assert.Equal(t, "Downlight 12W", fixtures[0].Name)
	require.NotNil(t, fixtures[0].Wattage)
	assert.Equal(t, 12.0, *fixtures[0].Wattage)
	assert.Equal(t, "ies/downlight.ies", fixtures[0].IESPath)
	assert.Nil(t, fixtures[1].Wattage)
}

func TestParseCatalogBareList(t *testing.T) {
	yamlList := `
- name: Track Spot
  mode: Narrow
  iesPath: track.ies
- name: Linear
  outputType: Indirect
  iesPath: linear.ies
`
	fixtures, err := ParseCatalog([]byte(yamlList))
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Equal(t, "Narrow", fixtures[0].Mode)
	assert.Equal(t, "Indirect", fixtures[1].ModeLabel())
}

func TestParseCatalogEdgeCases(t *testing.T) {
	fixtures, err := ParseCatalog(nil)
	assert.NoError(t, err)
	assert.Empty(t, fixtures)

	_, err = ParseCatalog([]byte(`"just a string"`))
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = ParseCatalog([]byte(`{"fixtures": [`))
	assert.Error(t, err)
}

func TestFixtureLabels(t *testing.T) {
	assert.Equal(t, "Unnamed fixture", Fixture{}.DisplayName())
	assert.Equal(t, "-", Fixture{}.ModeLabel())
	assert.Equal(t, "Spot", Fixture{Mode: "Spot", OutputType: "Direct"}.ModeLabel())
}

func TestFilter(t *testing.T) {
	fixtures, err := ParseCatalog([]byte(testCatalogJSON))
	require.NoError(t, err)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Downlight 12W", "Wall Washer", "Pendant"}},
		{"   ", []string{"Downlight 12W", "Wall Washer", "Pendant"}},
		{"DOWN", []string{"Downlight 12W"}},
		{"asym", []string{"Wall Washer"}},
		{"spot", []string{"Downlight 12W"}},
		{"diffuse", []string{"Pendant"}},
		{"direct", nil}, // output type is only a fallback when mode is empty
		{"nothing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var names []string
			for _, f := range Filter(fixtures, tt.query) {
				names = append(names, f.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestLoadCatalogAndPhotometry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ies"), 0755))

	catalogPath := filepath.Join(dir, "fixtures.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalogJSON), 0644))

	ies := "IESNA:LM-63-2002\nTILT=NONE\n1 3000 1 2 1 1 1 0 0 0\n0 90\n0\n1000 400\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ies", "downlight.ies"), []byte(ies), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ies", "washer.ies"), []byte("not photometry"), 0644))

	cat, err := LoadCatalog(catalogPath)
	require.NoError(t, err)
	assert.Equal(t, dir, cat.Dir)

	downlight, err := cat.Find("downlight 12w")
	require.NoError(t, err)
	p, err := cat.LoadPhotometry(downlight)
	require.NoError(t, err)
	assert.False(t, p.Empty())
	assert.Equal(t, 1000.0, p.PeakCandela)

	washer, err := cat.Find("Wall Washer")
	require.NoError(t, err)
	p, err = cat.LoadPhotometry(washer)
	require.NoError(t, err, "unusable content is not an error")
	assert.True(t, p.Empty())

	pendant, err := cat.Find("Pendant")
	require.NoError(t, err)
	_, err = cat.LoadPhotometry(pendant)
	assert.True(t, errors.Is(err, ErrMissingIESPath))

	_, err = cat.Find("Chandelier")
	assert.ErrorIs(t, err, ErrFixtureNotFound)
}

func TestLoadCatalogMissing(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReadPhotometryMissingFile(t *testing.T) {
	_, err := ReadPhotometry(filepath.Join(t.TempDir(), "missing.ies"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCatalogPath(t *testing.T) {
	cat := &Catalog{Dir: "/data/fixtures"}
	assert.Equal(t, filepath.Join("/data/fixtures", "a.ies"), cat.Path(Fixture{IESPath: "a.ies"}))
	assert.Equal(t, "/abs/b.ies", cat.Path(Fixture{IESPath: "/abs/b.ies"}))
	assert.Equal(t, "c.ies", (&Catalog{}).Path(Fixture{IESPath: "c.ies"}))
	assert.Equal(t, filepath.Join("/data/fixtures", "ies", "d.ies"), cat.Path(Fixture{IESPath: "ies\\d.ies"}))
}

func TestReadPhotometryWindows1252(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.ies")
	data := []byte("[MANUFAC] Lumi\xE8re\r\nTILT=NONE\r\n1 1000 1 2 1 1 1 0 0 0\r\n0 90\r\n0\r\n500 100\r\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	p, err := ReadPhotometry(path)
	require.NoError(t, err)
	assert.Equal(t, "Lumière", p.Keywords["MANUFAC"])
	assert.Equal(t, 500.0, p.PeakCandela)
}
