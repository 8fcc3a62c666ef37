package config

import "errors"

var (
	// ErrConfigNotFound is returned by LoadFile when the path does not
	// exist. Resolve treats it as a fallback, not a failure.
	ErrConfigNotFound = errors.New("config: file not found")

	// ErrMalformedConfig indicates file contents that do not decode into
	// the option table's types.
	ErrMalformedConfig = errors.New("config: malformed file")
)
