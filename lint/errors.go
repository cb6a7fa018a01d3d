package lint

import "errors"

// Sentinel errors for the lint package.
var (
	// ErrNoFiles is returned when no query files match the given paths.
	ErrNoFiles = errors.New("lint: no query files found")

	// ErrLintFailed is returned when at least one file has errors or
	// failing assertions.
	ErrLintFailed = errors.New("lint: files contain errors")

	// ErrInvalidAssertion is returned when an assertion does not compile to
	// a boolean expression.
	ErrInvalidAssertion = errors.New("lint: invalid assertion")

	// ErrUnknownFormat is returned for an unrecognized output format name.
	ErrUnknownFormat = errors.New("lint: unknown format")
)
