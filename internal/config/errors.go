package config

import (
	"errors"
	"fmt"
)

// Error kinds for the configuration taxonomy. Callers match them with
// errors.Is; every kind is fatal to the run.
var (
	ErrParse       = errors.New("malformed configuration")
	ErrSchema      = errors.New("unrecognized configuration field")
	ErrMissingData = errors.New("missing input data")
	ErrFilesystem  = errors.New("filesystem error")
)

// Error wraps a configuration failure with its taxonomy kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func parseErrorf(format string, args ...any) error {
	return &Error{Kind: ErrParse, Msg: fmt.Sprintf(format, args...)}
}

func schemaErrorf(format string, args ...any) error {
	return &Error{Kind: ErrSchema, Msg: fmt.Sprintf(format, args...)}
}

func missingDataErrorf(format string, args ...any) error {
	return &Error{Kind: ErrMissingData, Msg: fmt.Sprintf(format, args...)}
}

func filesystemErrorf(format string, args ...any) error {
	return &Error{Kind: ErrFilesystem, Msg: fmt.Sprintf(format, args...)}
}
