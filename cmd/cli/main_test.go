package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/incidentfilter/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(strings.NewReader(""), out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_MissingSourceIsNotAnError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}
	missing := filepath.Join(t.TempDir(), "absent.xml")

	// --- Act ---
	err := run(strings.NewReader("1\n"), out, &bytes.Buffer{}, []string{"--color=never", missing})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "not found")
}

func TestRun_EndToEndExport(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"incidencies.xml": testutil.IncidentXML("3", "1", "3"),
	})
	output := filepath.Join(dir, "out.json")
	args := []string{
		"--color=never",
		"--export",
		"-o", output,
		filepath.Join(dir, "incidencies.xml"),
	}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(strings.NewReader("3\n\n\n"), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Found 2 incidents with priority level 3.")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var records []map[string]string
	require.NoError(t, json.Unmarshal(data, &records))
	require.Equal(t, []map[string]string{
		{"Codi": "INC-1", "Prioritat_de_lincidncia": "3"},
		{"Codi": "INC-3", "Prioritat_de_lincidncia": "3"},
	}, records)
}
