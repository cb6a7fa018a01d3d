package cypherparse

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Token type constants - negative values as per participle convention.
const (
	tEOF          lexer.TokenType = lexer.EOF
	tWhitespace   lexer.TokenType = -(iota + 2) //nolint:mnd // participle convention
	tLineComment                                // // comment
	tBlockComment                               // /* comment */
	tKeyword                                    // reserved words
	tIdent                                      // identifiers
	tQuotedIdent                                // `quoted identifiers`
	tInteger                                    // decimal, hex and octal integers
	tFloat                                      // floats
	tString                                     // quoted strings
	tParam                                      // $name and {name}
	tOp                                         // operators and punctuation
	tInvalid                                    // anything the lexer cannot make sense of
)

var tokenTypeNames = map[lexer.TokenType]string{
	tEOF:          "end of input",
	tWhitespace:   "whitespace",
	tLineComment:  "comment",
	tBlockComment: "comment",
	tKeyword:      "keyword",
	tIdent:        "identifier",
	tQuotedIdent:  "identifier",
	tInteger:      "integer",
	tFloat:        "float",
	tString:       "string",
	tParam:        "parameter",
	tOp:           "symbol",
	tInvalid:      "invalid token",
}

// cypherDefinition implements lexer.Definition for Cypher.
type cypherDefinition struct {
	symbols map[string]lexer.TokenType
}

// NewLexer returns a participle lexer definition for Cypher. Lexing never
// fails: unrecognized input is returned as an "Invalid" token.
func NewLexer() lexer.Definition {
	return newCypherLexer()
}

func newCypherLexer() *cypherDefinition {
	return &cypherDefinition{
		symbols: map[string]lexer.TokenType{
			"EOF":          tEOF,
			"Whitespace":   tWhitespace,
			"LineComment":  tLineComment,
			"BlockComment": tBlockComment,
			"Keyword":      tKeyword,
			"Ident":        tIdent,
			"QuotedIdent":  tQuotedIdent,
			"Integer":      tInteger,
			"Float":        tFloat,
			"String":       tString,
			"Param":        tParam,
			"Op":           tOp,
			"Invalid":      tInvalid,
		},
	}
}

// Symbols returns the mapping of symbol names to token types.
func (d *cypherDefinition) Symbols() map[string]lexer.TokenType {
	return d.symbols
}

// Lex creates a new Lexer for the given reader.
//
//nolint:ireturn // Required by participle's lexer.Definition interface.
func (d *cypherDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return newLexerState(filename, string(data)), nil
}

// LexString implements lexer.StringDefinition.
//
//nolint:ireturn // Required by participle's lexer.StringDefinition interface.
func (d *cypherDefinition) LexString(filename string, input string) (lexer.Lexer, error) {
	return newLexerState(filename, input), nil
}

// lexerState produces tokens on demand.
type lexerState struct {
	filename string
	input    string
	offset   int
	line     int
	col      int
}

func newLexerState(filename, input string) *lexerState {
	return &lexerState{
		filename: filename,
		input:    input,
		line:     1,
		col:      1,
	}
}

// Next returns the next token.
func (l *lexerState) Next() (lexer.Token, error) {
	if l.eof() {
		return lexer.EOFToken(l.pos()), nil
	}

	start := l.pos()
	r := l.peek()

	switch {
	case unicode.IsSpace(r):
		for !l.eof() && unicode.IsSpace(l.peek()) {
			l.advance()
		}

		return l.token(tWhitespace, start), nil

	case r == '/' && l.peekAt(1) == '/':
		for !l.eof() && l.peek() != '\n' && l.peek() != '\r' {
			l.advance()
		}

		return l.token(tLineComment, start), nil

	case r == '/' && l.peekAt(1) == '*':
		return l.scanBlockComment(start), nil

	case r == '\'' || r == '"':
		return l.scanString(start, r), nil

	case r == '`':
		return l.scanQuotedIdent(start), nil

	case isDigit(r), r == '.' && isDigit(l.peekAt(1)):
		return l.scanNumber(start), nil

	case isIdentStart(r):
		l.scanIdentChars()

		typ := tIdent
		if isReserved(l.input[start.Offset:l.offset]) {
			typ = tKeyword
		}

		return l.token(typ, start), nil

	case r == '$':
		return l.scanDollarParam(start), nil

	case r == '{':
		if tok, ok := l.scanBraceParam(start); ok {
			return tok, nil
		}
	}

	if tok, ok := l.scanMultiCharOp(start); ok {
		return tok, nil
	}

	l.advance()

	if strings.ContainsRune("+-*/%^=<>.,:;()[]{}|", r) {
		return l.token(tOp, start), nil
	}

	return l.token(tInvalid, start), nil
}

func (l *lexerState) pos() lexer.Position {
	return lexer.Position{
		Filename: l.filename,
		Offset:   l.offset,
		Line:     l.line,
		Column:   l.col,
	}
}

func (l *lexerState) eof() bool {
	return l.offset >= len(l.input)
}

func (l *lexerState) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])

	return r
}

// peekAt returns the rune n runes ahead of the current one.
func (l *lexerState) peekAt(n int) rune {
	off := l.offset

	for range n {
		if off >= len(l.input) {
			return 0
		}

		_, size := utf8.DecodeRuneInString(l.input[off:])
		off += size
	}

	if off >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[off:])

	return r
}

func (l *lexerState) advance() rune {
	if l.eof() {
		return 0
	}

	r, size := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func (l *lexerState) match(s string) bool {
	return strings.HasPrefix(l.input[l.offset:], s)
}

func (l *lexerState) token(typ lexer.TokenType, start lexer.Position) lexer.Token {
	return lexer.Token{
		Type:  typ,
		Value: l.input[start.Offset:l.offset],
		Pos:   start,
	}
}

func (l *lexerState) scanIdentChars() {
	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}
}

func (l *lexerState) scanBlockComment(start lexer.Position) lexer.Token {
	l.advance() // /
	l.advance() // *

	for !l.eof() {
		if l.match("*/") {
			l.advance()
			l.advance()

			return l.token(tBlockComment, start)
		}

		l.advance()
	}

	return l.token(tInvalid, start)
}

func (l *lexerState) scanString(start lexer.Position, quote rune) lexer.Token {
	l.advance() // opening quote

	for !l.eof() {
		ch := l.advance()
		if ch == '\\' {
			if l.eof() {
				break
			}

			l.advance()

			continue
		}

		if ch == quote {
			return l.token(tString, start)
		}
	}

	return l.token(tInvalid, start)
}

func (l *lexerState) scanQuotedIdent(start lexer.Position) lexer.Token {
	l.advance() // opening `

	for !l.eof() {
		if l.advance() == '`' {
			if l.peek() == '`' {
				l.advance()

				continue
			}

			return l.token(tQuotedIdent, start)
		}
	}

	return l.token(tInvalid, start)
}

func (l *lexerState) scanDollarParam(start lexer.Position) lexer.Token {
	l.advance() // $

	switch r := l.peek(); {
	case r == '`':
		if l.scanQuotedIdent(l.pos()).Type == tInvalid {
			return l.token(tInvalid, start)
		}
	case isIdentContinue(r):
		l.scanIdentChars()
	default:
		return l.token(tInvalid, start)
	}

	return l.token(tParam, start)
}

// scanBraceParam recognizes the legacy {name} parameter form. It only
// consumes input when the whole form is present.
func (l *lexerState) scanBraceParam(start lexer.Position) (lexer.Token, bool) {
	rest := l.input[l.offset+1:]
	i := 0

	for i < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[i:])
		if !isIdentContinue(r) {
			break
		}

		i += size
	}

	if i == 0 || i >= len(rest) || rest[i] != '}' {
		return lexer.Token{}, false
	}

	for l.offset < start.Offset+i+2 {
		l.advance()
	}

	return l.token(tParam, start), true
}

var multiCharOps = []string{"<>", "<=", ">=", "=~", "+=", "!=", ".."}

func (l *lexerState) scanMultiCharOp(start lexer.Position) (lexer.Token, bool) {
	for _, op := range multiCharOps {
		if l.match(op) {
			for range len(op) {
				l.advance()
			}

			return l.token(tOp, start), true
		}
	}

	return lexer.Token{}, false
}

func (l *lexerState) scanNumber(start lexer.Position) lexer.Token {
	typ := tInteger

	switch {
	case l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X'):
		l.advance() // 0
		l.advance() // x

		if !isHexDigit(l.peek()) {
			return l.invalidNumber(start)
		}

		for isHexDigit(l.peek()) {
			l.advance()
		}

	case l.peek() == '0' && (l.peekAt(1) == 'o' || l.peekAt(1) == 'O'):
		l.advance() // 0
		l.advance() // o

		if !isOctalDigit(l.peek()) {
			return l.invalidNumber(start)
		}

		for isOctalDigit(l.peek()) {
			l.advance()
		}

	default:
		for isDigit(l.peek()) {
			l.advance()
		}

		// A second dot means a range, as in 1..3.
		if l.peek() == '.' && isDigit(l.peekAt(1)) {
			typ = tFloat

			l.advance() // .

			for isDigit(l.peek()) {
				l.advance()
			}
		}

		if r := l.peek(); r == 'e' || r == 'E' {
			next := l.peekAt(1)
			if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
				typ = tFloat

				l.advance() // e

				if next == '+' || next == '-' {
					l.advance()
				}

				for isDigit(l.peek()) {
					l.advance()
				}
			}
		}
	}

	if isIdentContinue(l.peek()) {
		return l.invalidNumber(start)
	}

	return l.token(typ, start)
}

func (l *lexerState) invalidNumber(start lexer.Position) lexer.Token {
	l.scanIdentChars()

	return l.token(tInvalid, start)
}

// Character helpers.

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOctalDigit(r rune) bool {
	return r >= '0' && r <= '7'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// unquoteString removes the quotes from a string token and resolves escapes.
// Unknown escapes are kept verbatim.
func unquoteString(lit string) string {
	if len(lit) < 2 { //nolint:mnd // two quote characters
		return lit
	}

	body := lit[1 : len(lit)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var sb strings.Builder

	sb.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)

			continue
		}

		i++

		switch e := body[i]; e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'u', 'U':
			n := 4
			if e == 'U' {
				n = 8
			}

			if r, ok := decodeHex(body[i+1:], n); ok {
				sb.WriteRune(r)

				i += n
			} else {
				sb.WriteByte('\\')
				sb.WriteByte(e)
			}
		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}

	return sb.String()
}

func decodeHex(s string, n int) (rune, bool) {
	if len(s) < n {
		return 0, false
	}

	var r rune

	for i := range n {
		c := rune(s[i])

		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | (c - '0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | (c - 'a' + 10) //nolint:mnd // hex digit
		case c >= 'A' && c <= 'F':
			r = r<<4 | (c - 'A' + 10) //nolint:mnd // hex digit
		default:
			return 0, false
		}
	}

	return r, utf8.ValidRune(r)
}

// unquoteIdent removes backticks from a quoted identifier.
func unquoteIdent(lit string) string {
	if len(lit) < 2 || lit[0] != '`' { //nolint:mnd // two backticks
		return lit
	}

	return strings.ReplaceAll(lit[1:len(lit)-1], "``", "`")
}

// paramName extracts the name from $name, $`name` or {name}.
func paramName(lit string) string {
	if strings.HasPrefix(lit, "{") {
		return lit[1 : len(lit)-1]
	}

	return unquoteIdent(strings.TrimPrefix(lit, "$"))
}
