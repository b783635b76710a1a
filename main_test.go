package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legacycrew/toolshub/internal/catalog"
)

func newTestApp() (*app, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &app{
		stdout:      &stdout,
		stderr:      &stderr,
		interactive: func() bool { return false },
	}, &stdout, &stderr
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(catalog.EnvCatalog, "")
	a, stdout, stderr := newTestApp()
	err := a.run(args)
	return stdout.String(), stderr.String(), err
}

func TestHelpAndVersion(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {"-h"}, {"help"}, {}} {
		out, _, err := runApp(t, args...)
		require.NoError(t, err, "%v", args)
		assert.Contains(t, out, "toolshub - Legacy Crew Tools Hub", "%v", args)
	}
	out, _, err := runApp(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "toolshub dev\n", out)
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := runApp(t, "frobnicate")
	assert.ErrorContains(t, err, `unknown command "frobnicate"`)
}

func TestListEmbeddedCatalog(t *testing.T) {
	out, _, err := runApp(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Radio Interview Question Generator")
	assert.Contains(t, out, "4 tools")
	assert.Contains(t, out, "Open Tool: —", "missing links show the placeholder")
}

func TestListFilters(t *testing.T) {
	out, _, err := runApp(t, "list", "--division", "aps")
	require.NoError(t, err)
	assert.Contains(t, out, "Artist Training Planner")
	assert.NotContains(t, out, "Radio Show Prepper")
	assert.Contains(t, out, "1 tools")

	out, _, err = runApp(t, "list", "--search", "calendar", "--division", "APS")
	require.NoError(t, err)
	assert.Contains(t, out, "No matches.")
	assert.Contains(t, out, "0 tools")
}

func TestListUnknownDivision(t *testing.T) {
	_, _, err := runApp(t, "list", "--division", "Production")
	assert.ErrorContains(t, err, `unknown division "Production"`)
}

func TestListJSON(t *testing.T) {
	out, _, err := runApp(t, "list", "--search", "radio", "--json")
	require.NoError(t, err)

	var got struct {
		Division string `json:"division"`
		Count    int    `json:"count"`
		Tools    []struct {
			Name     string   `json:"name"`
			Division []string `json:"division"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, catalog.All, got.Division)
	assert.Equal(t, 2, got.Count)
	require.Len(t, got.Tools, 2)
	assert.Equal(t, "Radio Interview Question Generator", got.Tools[0].Name)
	assert.Equal(t, []string{"Entertainment"}, got.Tools[0].Division, "legacy string division is normalized")
}

func TestDivisions(t *testing.T) {
	out, _, err := runApp(t, "divisions")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "All")
	assert.Contains(t, lines[0], "4 tools")
	assert.Contains(t, lines[2], "APS")
	assert.Contains(t, lines[2], "1 tools")
}

func TestCatalogFlagAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`title: Other Hub
tools:
  - name: Only Tool
    division: Ops
`), 0644))

	out, _, err := runApp(t, "--catalog", path, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Other Hub")
	assert.Contains(t, out, "Only Tool")

	out, _, err = runApp(t, "divisions", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ops")

	a, stdout, _ := newTestApp()
	t.Setenv(catalog.EnvCatalog, path)
	require.NoError(t, a.run([]string{"list"}))
	assert.Contains(t, stdout.String(), "Only Tool")
}

func TestMissingCatalog(t *testing.T) {
	_, _, err := runApp(t, "list", "--catalog", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, catalog.ErrNoCatalog), "got %v", err)
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := runApp(t, "list", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestCatalogRepairsAreLogged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tools:\n  - division: APS\n"), 0644))
	out, errOut, err := runApp(t, "list", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, catalog.UntitledName)
	assert.Contains(t, errOut, "tool has no name")
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "index.html")
	_, errOut, err := runApp(t, "export", "--division", "VPS", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Wrote")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, `<span id="count">1</span>`)
	assert.Contains(t, page, "Artist Training Planner")
	assert.NotContains(t, page, "<form")
	assert.Contains(t, page, `<span class="chip active" aria-pressed="true">VPS</span>`)
}

func TestExportToStdout(t *testing.T) {
	out, _, err := runApp(t, "export")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `<span id="count">4</span>`)
}

func TestRequest(t *testing.T) {
	out, _, err := runApp(t, "request", "--name", "Setlist Builder", "--description", "pick songs\norder them", "--users", "DJs")
	require.NoError(t, err)
	assert.Equal(t, `TOOL REQUEST — Legacy Crew Tools Hub

Name: Setlist Builder
Target users: DJs

Requirements:
- pick songs
- order them

Notes:
- Must be usable in-browser (GitHub Pages).
- Must include a 'Back to Tools Hub' link.
`, out)
}

func TestUnexpectedArgument(t *testing.T) {
	_, _, err := runApp(t, "list", "extra")
	assert.ErrorContains(t, err, `unexpected argument "extra"`)
}

func TestBrowseFallsBackToList(t *testing.T) {
	out, _, err := runApp(t, "browse")
	require.NoError(t, err)
	assert.Contains(t, out, "4 tools")
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, "localhost:8080", displayAddr(":8080"))
	assert.Equal(t, "127.0.0.1:9000", displayAddr("127.0.0.1:9000"))
}
