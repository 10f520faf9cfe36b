// Package config loads the optional pmcore.hcl configuration file. Values
// from the file sit between built-in defaults and command-line flags; a
// missing file is not an error and yields the defaults unchanged.
//
// The file may interpolate environment variables through the env object:
//
//	data_dir   = "${env.HOME}/.pmcore"
//	log_level  = "debug"
//	log_format = "text"
//	autosave   = true
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/pmcore/internal/ctxlog"
)

// DefaultFileName is the config file probed in the working directory when no
// explicit path is given.
const DefaultFileName = "pmcore.hcl"

// Config is the merged configuration the app boots with.
type Config struct {
	// DataDir is the per-user directory holding the four state files.
	DataDir string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is text or json.
	LogFormat string
	// AutoSave flushes state through the persistence adapter on exit.
	AutoSave bool
}

// file is the HCL decoding target; every attribute is optional.
type file struct {
	DataDir   *string `hcl:"data_dir,optional"`
	LogLevel  *string `hcl:"log_level,optional"`
	LogFormat *string `hcl:"log_format,optional"`
	AutoSave  *bool   `hcl:"autosave,optional"`
}

// Defaults returns the built-in configuration: state under the per-user
// config directory, info-level text logging, autosave on.
func Defaults() Config {
	dataDir := ".pmcore"
	if base, err := os.UserConfigDir(); err == nil {
		dataDir = filepath.Join(base, "pmcore")
	}
	return Config{
		DataDir:   dataDir,
		LogLevel:  "info",
		LogFormat: "text",
		AutoSave:  true,
	}
}

// Load reads the config file at path, or probes DefaultFileName when path is
// empty. A missing file degrades to Defaults; a present but unparsable file
// is an error, since running with half-read configuration would be worse
// than failing loudly.
func Load(ctx context.Context, path string) (Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return cfg, fmt.Errorf("config file %s: %w", path, err)
		}
		logger.Debug("No config file found, using defaults.", "probed", path)
		return cfg, nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var decoded file
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &decoded)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	if decoded.DataDir != nil {
		cfg.DataDir = *decoded.DataDir
	}
	if decoded.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(*decoded.LogLevel)
	}
	if decoded.LogFormat != nil {
		cfg.LogFormat = strings.ToLower(*decoded.LogFormat)
	}
	if decoded.AutoSave != nil {
		cfg.AutoSave = *decoded.AutoSave
	}

	logger.Debug("Config file loaded.", "path", path, "data_dir", cfg.DataDir)
	return cfg, nil
}

// evalContext exposes the process environment as the env object so paths can
// be written portably in the file.
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}
