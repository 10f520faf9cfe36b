// Package cli turns command-line arguments into the app's boot options.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/pmcore/internal/app"
)

// ExitError is an error carrying a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns the boot options, a
// boolean indicating the program should exit cleanly (help requested), or an
// ExitError for invalid input.
func Parse(args []string, output io.Writer) (*app.Options, bool, error) {
	flagSet := flag.NewFlagSet("pmcore", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
pmcore - a project/task registry with per-user permissions.

Usage:
  pmcore [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL config file. Defaults to ./pmcore.hcl when present.")
	dataDirFlag := flagSet.String("data-dir", "", "Directory holding the persisted state files. Overrides the config file.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format: 'text' or 'json'. Overrides the config file.")
	logLevelFlag := flagSet.String("log-level", "", "Logging level: 'debug', 'info', 'warn', or 'error'. Overrides the config file.")
	noSaveFlag := flagSet.Bool("no-save", false, "Do not flush state to disk on exit.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument: %s", flagSet.Arg(0))}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	switch logFormat {
	case "", "text", "json":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return &app.Options{
		ConfigPath: *configFlag,
		DataDir:    *dataDirFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		NoSave:     *noSaveFlag,
	}, false, nil
}
