package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.AutoSave)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	// Run from an empty directory so no stray pmcore.hcl is picked up.
	wd, err0 := os.Getwd()
	require.NoError(t, err0)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmcore.hcl")
	content := `
data_dir   = "/var/lib/pmcore"
log_level  = "DEBUG"
log_format = "json"
autosave   = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/pmcore", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.AutoSave)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmcore.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "warn"`+"\n"), 0o644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, Defaults().DataDir, cfg.DataDir)
	assert.True(t, cfg.AutoSave)
}

func TestLoadEnvInterpolation(t *testing.T) {
	t.Setenv("PMCORE_TEST_HOME", "/srv/pmcore")

	path := filepath.Join(t.TempDir(), "pmcore.hcl")
	require.NoError(t, os.WriteFile(path,
		[]byte(`data_dir = "${env.PMCORE_TEST_HOME}/data"`+"\n"), 0o644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/pmcore/data", cfg.DataDir)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmcore.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`data_dir = `), 0o644))

	_, err := Load(context.Background(), path)
	assert.Error(t, err)
}
