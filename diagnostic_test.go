package cypherparse

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWindow(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 60)

	tests := []struct {
		name       string
		input      string
		pos        lexer.Position
		width      int
		align      Alignment
		wantCtx    string
		wantOffset int
	}{
		{
			name:       "single line",
			input:      "RETURN ?",
			pos:        lexer.Position{Offset: 7, Line: 1, Column: 8},
			wantCtx:    "RETURN ?",
			wantOffset: 7,
		},
		{
			name:       "second line",
			input:      "RETURN 1\nMATCH (n) x",
			pos:        lexer.Position{Offset: 19, Line: 2, Column: 11},
			wantCtx:    "MATCH (n) x",
			wantOffset: 10,
		},
		{
			name:       "crlf line endings",
			input:      "a\r\nbc\r\nd",
			pos:        lexer.Position{Offset: 3, Line: 2, Column: 1},
			wantCtx:    "bc",
			wantOffset: 0,
		},
		{
			name:       "end of input",
			input:      "RETURN",
			pos:        lexer.Position{Offset: 6, Line: 1, Column: 7},
			wantCtx:    "RETURN",
			wantOffset: 6,
		},
		{
			name:       "line shorter than width",
			input:      "RETURN ?",
			pos:        lexer.Position{Offset: 7, Line: 1, Column: 8},
			width:      40,
			wantCtx:    "RETURN ?",
			wantOffset: 7,
		},
		{
			name:       "centered window clamped at line start",
			input:      long,
			pos:        lexer.Position{Offset: 3, Line: 1, Column: 4},
			width:      20,
			wantCtx:    long[:20],
			wantOffset: 3,
		},
		{
			name:       "centered window clamped at line end",
			input:      long,
			pos:        lexer.Position{Offset: 58, Line: 1, Column: 59},
			width:      20,
			wantCtx:    long[40:],
			wantOffset: 18,
		},
		{
			name:       "start aligned",
			input:      long,
			pos:        lexer.Position{Offset: 10, Line: 1, Column: 11},
			width:      20,
			align:      AlignStart,
			wantCtx:    long[10:30],
			wantOffset: 0,
		},
		{
			name:       "columns count runes",
			input:      "RETURN 'é' ?",
			pos:        lexer.Position{Offset: 12, Line: 1, Column: 12},
			wantCtx:    "RETURN 'é' ?",
			wantOffset: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, off := contextWindow(tt.input, tt.pos, tt.width, tt.align)
			assert.Equal(t, tt.wantCtx, ctx)
			assert.Equal(t, tt.wantOffset, off)
		})
	}
}

func TestErrorCaret(t *testing.T) {
	t.Parallel()

	e := Error{
		Position:      Position{Line: 1, Column: 8, Offset: 7},
		Message:       "unexpected invalid character '?', expected an expression",
		Context:       "RETURN ?",
		ContextOffset: 7,
	}

	assert.Equal(t, "RETURN ?\n       ^", e.Caret())
	assert.Equal(t, "1:8: unexpected invalid character '?', expected an expression", e.String())
}

func TestAlignmentText(t *testing.T) {
	t.Parallel()

	for text, want := range map[string]Alignment{
		"":       AlignCenter,
		"center": AlignCenter,
		"Centre": AlignCenter,
		"start":  AlignStart,
		"LEFT":   AlignStart,
	} {
		var a Alignment
		require.NoError(t, a.UnmarshalText([]byte(text)), text)
		assert.Equal(t, want, a, text)
	}

	var a Alignment
	require.ErrorIs(t, a.UnmarshalText([]byte("middle")), ErrInvalidAlignment)

	b, err := AlignStart.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "start", string(b))
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want string
	}{
		{"RETURNI", "RETURN"},
		{"retur", "RETURN"},
		{"WERE", "WHERE"},
		{"UNWND", "UNWIND"},
		{"RETRUN", "RETURN"},
		{"MACTH", "MATCH"},
		{"whree", "WHERE"},
		{"RETURN", ""},
		{"xy", ""},
		{"banana", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, suggest(tt.word, suggestionKeywords), "suggest(%q)", tt.word)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tok  lexer.Token
		want string
	}{
		{lexer.Token{Type: tEOF}, "end of input"},
		{lexer.Token{Type: tInvalid, Value: "'abc"}, "unterminated string"},
		{lexer.Token{Type: tInvalid, Value: "/* x"}, "unterminated comment"},
		{lexer.Token{Type: tInvalid, Value: "`x"}, "unterminated quoted identifier"},
		{lexer.Token{Type: tInvalid, Value: "12ab"}, "malformed number '12ab'"},
		{lexer.Token{Type: tInvalid, Value: "?"}, "invalid character '?'"},
		{lexer.Token{Type: tString, Value: "'x'"}, "string 'x'"},
		{lexer.Token{Type: tIdent, Value: "foo"}, "identifier 'foo'"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(tt.tok))
	}
}
