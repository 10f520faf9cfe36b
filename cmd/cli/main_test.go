package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pmcore/internal/cli"
)

func TestRunHelp(t *testing.T) {
	var out, logs bytes.Buffer
	err := run(&out, &logs, strings.NewReader(""), []string{"-h"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRunInvalidFlag(t *testing.T) {
	var out, logs bytes.Buffer
	err := run(&out, &logs, strings.NewReader(""), []string{"-log-level", "loud"})
	require.Error(t, err)

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
}

func TestRunScriptedSession(t *testing.T) {
	dir := t.TempDir()
	script := "2\nadmin\n1\n1\n1\nproj1\nroadmap\n17\n"

	var out, logs bytes.Buffer
	err := run(&out, &logs, strings.NewReader(script), []string{"-data-dir", dir, "-log-level", "error"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Registered and logged in as admin (Admin).")
	assert.Contains(t, out.String(), "Result: Ok")

	data, err := os.ReadFile(filepath.Join(dir, "entities.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "proj1")
}

func TestRunNoSave(t *testing.T) {
	dir := t.TempDir()

	var out, logs bytes.Buffer
	err := run(&out, &logs, strings.NewReader("3\n"), []string{"-data-dir", dir, "-no-save"})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "entities.json"))
	assert.True(t, os.IsNotExist(statErr))
}
