package cypherparse

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Sentinel errors.
var (
	// ErrConfigNotFound is returned when no .cypherparse.yaml is found.
	ErrConfigNotFound = errors.New("cypherparse: no .cypherparse.yaml found")

	// ErrInvalidAlignment is returned for an unknown context alignment name.
	ErrInvalidAlignment = errors.New("cypherparse: invalid context alignment")

	// ErrSyntax is matched by every error returned from a failed parse.
	ErrSyntax = errors.New("cypherparse: syntax error")
)

// SyntaxError is a grammar violation at a source position. It satisfies
// participle's Error interface.
type SyntaxError struct {
	Pos lexer.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Position returns where the error occurred.
func (e *SyntaxError) Position() lexer.Position { return e.Pos }

// Message returns the error message without position information.
func (e *SyntaxError) Message() string { return e.Msg }

// Unwrap allows errors.Is(err, ErrSyntax).
func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// ParseError is returned by Parse when the input contains errors. The
// outcome is the same value that a successful parse would have returned,
// including any partial AST.
type ParseError struct {
	Outcome *Outcome
}

func (e *ParseError) Error() string {
	errs := e.Outcome.Errors
	if len(errs) == 0 {
		return ErrSyntax.Error()
	}

	first := errs[0]
	if len(errs) == 1 {
		return fmt.Sprintf("cypherparse: %s", first)
	}

	return fmt.Sprintf("cypherparse: %s (and %d more errors)", first, len(errs)-1)
}

// Unwrap allows errors.Is(err, ErrSyntax).
func (e *ParseError) Unwrap() error { return ErrSyntax }

// internalError reports an inconsistency in the parser itself rather than
// in the input.
func internalError(pos lexer.Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: "internal error: " + fmt.Sprintf(format, args...)}
}
