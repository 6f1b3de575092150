package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/depviz/internal/cli"
	"github.com/specialistvlad/depviz/internal/config"
	"github.com/stretchr/testify/require"
)

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(snapshot, []byte(`{
		"A@1.0": {"dependencies": {"B": "1.0", "C": "1.0"}},
		"B@1.0": {"dependencies": {"C": "1.0"}},
		"C@1.0": {}
	}`), 0o600))
	configJSON := `{"package_name": "A", "package_version": "1.0", "repo_mode": "local", "repository_url": ` +
		`"` + filepath.ToSlash(snapshot) + `", "max_depth": 3}`
	configPath := filepath.Join(dir, "depviz.json")
	require.NoError(t, os.WriteFile(configPath, []byte(configJSON), 0o600))

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, []string{"-format", "dot", configPath})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), `"A@1.0" -> "B@1.0";`)
	require.Contains(t, out.String(), `"B@1.0" -> "C@1.0";`)
	require.Contains(t, errOut.String(), "Dependency traversal finished.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, cli.ExitUsage, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_MissingConfigFile(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{filepath.Join(t.TempDir(), "absent.hcl")})

	// --- Assert ---
	var cfgErr *config.Error
	require.True(t, errors.As(err, &cfgErr), "expected *config.Error, got %T: %v", err, err)
}
