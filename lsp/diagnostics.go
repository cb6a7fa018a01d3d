// Package lsp converts parse outcomes to Language Server Protocol types.
package lsp

import (
	"path/filepath"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/rlch/cypherparse"
)

const (
	// Source is the diagnostic source reported to clients.
	Source = "cypherparse"

	// CodeSyntaxError is the code of every parse diagnostic.
	CodeSyntaxError = "syntax-error"
)

// Diagnostics converts the errors of a parse outcome to LSP diagnostics.
func Diagnostics(out *cypherparse.Outcome) []protocol.Diagnostic {
	if out == nil {
		return nil
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(out.Errors))

	for _, e := range out.Errors {
		diagnostics = append(diagnostics, convertDiagnostic(e))
	}

	return diagnostics
}

// PublishParams builds the publishDiagnostics notification for a file.
func PublishParams(path string, out *cypherparse.Outcome) *protocol.PublishDiagnosticsParams {
	return &protocol.PublishDiagnosticsParams{
		URI:         FileURI(path),
		Diagnostics: Diagnostics(out),
	}
}

// FileURI returns the file:// URI of path, made absolute when possible.
func FileURI(path string) protocol.DocumentURI {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	return protocol.DocumentURI(uri.File(path))
}

// convertDiagnostic converts a parse error to an LSP protocol.Diagnostic.
func convertDiagnostic(e cypherparse.Error) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    positionToRange(e.Position),
		Severity: protocol.DiagnosticSeverityError,
		Code:     CodeSyntaxError,
		Source:   Source,
		Message:  e.Message,
	}
}

// positionToRange converts a 1-based position to a zero-based range one
// character wide.
func positionToRange(p cypherparse.Position) protocol.Range {
	start := protocol.Position{
		Line:      uint32(max(p.Line-1, 0)),   //nolint:gosec // clamped above
		Character: uint32(max(p.Column-1, 0)), //nolint:gosec // clamped above
	}

	end := start
	end.Character++

	return protocol.Range{Start: start, End: end}
}
