package pollutants

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table := Default()

	expected := map[string]float64{"NO2": 25, "SO2": 40, "PM2.5": 15, "PM10": 45, "CO": 4}
	require.Len(t, table, len(expected))
	for code, ref := range expected {
		p, ok := table.Lookup(code)
		require.True(t, ok, "missing %s", code)
		assert.Equal(t, ref, p.Reference, code)
	}

	co, _ := table.Lookup("CO")
	assert.Equal(t, "mg/m³", co.Unit)
	no2, _ := table.Lookup("NO2")
	assert.Equal(t, "nitrogen dioxide", no2.Name)
	assert.Equal(t, []string{"CO", "NO2", "PM10", "PM2.5", "SO2"}, table.Codes())
}

func TestParseRejectsInvalidTables(t *testing.T) {
	cases := map[string]string{
		"empty":              "pollutants: []",
		"non-positive":       "pollutants:\n  - code: NO2\n    reference: 0\n",
		"duplicate":          "pollutants:\n  - code: NO2\n    reference: 25\n  - code: NO2\n    reference: 30\n",
		"missing code":       "pollutants:\n  - name: foo\n    reference: 3\n",
		"not yaml structure": "pollutants: 12",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pollutants:\n  - code: O3\n    reference: 100\n"), 0644))

	table, err := Load(path)
	require.NoError(t, err)
	o3, ok := table.Lookup("O3")
	require.True(t, ok)
	assert.Equal(t, 100.0, o3.Reference)
	assert.Equal(t, "O3", o3.Name, "name defaults to the code")

	fetched, err := table.FetchReferenceTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, table, fetched)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
