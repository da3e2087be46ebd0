// Package cli resolves the command-line arguments into a configuration file
// path and handles process-level concerns like usage text and exit codes.
package cli

import (
	"flag"
	"fmt"
	"io"
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

// Parse resolves the configuration file path from the argument list. The only
// option is -c/--config; when absent, defaultConfig is returned unchanged.
// The boolean is true when the program should exit cleanly (help requested).
// Unrecognized flags produce an ExitError with code 2.
func Parse(args []string, defaultConfig string, output io.Writer) (string, bool, error) {
	flagSet := flag.NewFlagSet("brainmapper", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
brainmapper - whole-brain cell detection and atlas mapping workflow.

Usage:
  brainmapper [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the workflow config JSON file.")
	cFlag := flagSet.String("c", "", "Path to the workflow config JSON file (shorthand).")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return "", true, nil
		}
		return "", false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() > 0 {
		return "", false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument: %s", flagSet.Arg(0))}
	}

	path := defaultConfig
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	}

	return path, false, nil
}
