package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleYAML = `
title: Test Hub
divisions: [Entertainment, APS, VPS, BIS]
tools:
  - name: Radio Interview Question Generator
    division: Entertainment
    type: Artist Prep
    description: Generate radio-ready questions.
    url: https://example.com/radio
  - name: Artist Training Planner
    division: [Entertainment, APS, VPS, BIS]
    type: Training
  - name: "  "
    division: []
  - name: Odd Division
    division: {team: ops}
  - name: Outsider
    division: [Production]
`

func TestNewDivisions(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want Divisions
	}{
		{"empty", nil, nil},
		{"blank tags dropped", []string{" ", ""}, nil},
		{"trimmed", []string{" APS "}, Divisions{"APS"}},
		{"dedup ignores case", []string{"APS", "aps", "VPS"}, Divisions{"APS", "VPS"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDivisions(tt.in...))
		})
	}
}

func TestDivisionsContainsIgnoresCase(t *testing.T) {
	d := NewDivisions("Entertainment", "APS")
	assert.True(t, d.Contains("entertainment"))
	assert.True(t, d.Contains("aps"))
	assert.False(t, d.Contains("BIS"))
	assert.Equal(t, "Entertainment APS", d.String())
	assert.Equal(t, "Entertainment, APS", d.Label())
}

func TestRecordDisplayDefaults(t *testing.T) {
	var r Record
	assert.Equal(t, Placeholder, r.DisplayDivision())
	assert.Equal(t, Placeholder, r.DisplayType())
	assert.Equal(t, NoLink, r.LinkURL())
	assert.Equal(t, NoLink, r.LinkRepo())

	r = Record{Division: Divisions{"APS"}, Type: "Ops", URL: "https://x", Repo: "https://y"}
	assert.Equal(t, "APS", r.DisplayDivision())
	assert.Equal(t, "Ops", r.DisplayType())
	assert.Equal(t, "https://x", r.LinkURL())
	assert.Equal(t, "https://y", r.LinkRepo())
}

func TestParseNormalizesRecords(t *testing.T) {
	c, err := Parse([]byte(sampleYAML), "test", nil)
	require.NoError(t, err)

	assert.Equal(t, "Test Hub", c.Title())
	assert.Equal(t, "test", c.Source())
	require.Equal(t, 5, c.Len())

	records := c.Records()
	assert.Equal(t, Divisions{"Entertainment"}, records[0].Division, "legacy string upgraded")
	assert.Equal(t, Divisions{"Entertainment", "APS", "VPS", "BIS"}, records[1].Division)
	assert.Equal(t, UntitledName, records[2].Name)
	assert.Empty(t, records[2].Division)
	assert.Empty(t, records[3].Division, "mapping division ignored, record kept")
	assert.Equal(t, Divisions{"Production"}, records[4].Division)
}

func TestParseLogsRepairs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	_, err := Parse([]byte(sampleYAML), "test", zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("tool has no name").Len())
	assert.Equal(t, 1, logs.FilterMessage("division must be a string or a list of strings").Len())
	assert.Equal(t, 2, logs.FilterMessage("tool has no division").Len())
	outsiders := logs.FilterMessage("division not in enumeration").All()
	require.Len(t, outsiders, 1)
	assert.Equal(t, "Production", outsiders[0].ContextMap()["division"])
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("tools: [unclosed"), "bad", nil)
	assert.Error(t, err)
}

func TestChips(t *testing.T) {
	c, err := Parse([]byte(sampleYAML), "test", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{All, "Entertainment", "APS", "VPS", "BIS"}, c.Chips())

	chip, ok := c.IsChip("vps")
	assert.True(t, ok)
	assert.Equal(t, "VPS", chip)

	chip, ok = c.IsChip("all")
	assert.True(t, ok)
	assert.Equal(t, All, chip)

	_, ok = c.IsChip("Production")
	assert.False(t, ok)
}

func TestDivisionsDerivedWhenOmitted(t *testing.T) {
	c := New("", nil, []Record{
		{Name: "a", Division: Divisions{"VPS"}},
		{Name: "b", Division: Divisions{"APS", "vps"}},
	})
	assert.Equal(t, Divisions{"VPS", "APS"}, c.Divisions())
	assert.Equal(t, DefaultTitle, c.Title())
}

func TestRecordsReturnsCopies(t *testing.T) {
	c := New("t", nil, []Record{{Name: "a", Division: Divisions{"APS"}}})
	records := c.Records()
	records[0].Name = "changed"
	records[0].Division[0] = "changed"

	again := c.Records()
	assert.Equal(t, "a", again[0].Name)
	assert.Equal(t, Divisions{"APS"}, again[0].Division)
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvCatalog, "")

	c, err := Resolve("", []byte(sampleYAML), nil)
	require.NoError(t, err)
	assert.Equal(t, "embedded:catalog.yaml", c.Source())

	_, err = Resolve("", nil, nil)
	assert.ErrorIs(t, err, ErrNoCatalog)

	dir := t.TempDir()
	path := filepath.Join(dir, "tools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tools:\n  - name: From File\n    division: APS\n"), 0644))

	c, err = Resolve(path, []byte(sampleYAML), nil)
	require.NoError(t, err)
	assert.Equal(t, path, c.Source())
	assert.Equal(t, "From File", c.Records()[0].Name)

	t.Setenv(EnvCatalog, path)
	c, err = Resolve("", []byte(sampleYAML), nil)
	require.NoError(t, err)
	assert.Equal(t, path, c.Source())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/catalog.yaml", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCatalog))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
