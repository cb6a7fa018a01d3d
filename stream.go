package cypherparse

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// tokenStream buffers significant tokens from the lazy lexer so the parser
// can look arbitrarily far ahead. Whitespace is dropped and comments are set
// aside for the result assembler.
type tokenStream struct {
	lex      *lexerState
	toks     []lexer.Token
	pos      int
	comments []lexer.Token
	last     lexer.Token
}

func newTokenStream(input string) *tokenStream {
	return &tokenStream{lex: newLexerState("", input)}
}

func (s *tokenStream) fill(n int) {
	for len(s.toks) <= n {
		if len(s.toks) > 0 && s.toks[len(s.toks)-1].EOF() {
			s.toks = append(s.toks, s.toks[len(s.toks)-1])

			continue
		}

		tok, _ := s.lex.Next()

		switch tok.Type {
		case tWhitespace:
			continue
		case tLineComment, tBlockComment:
			s.comments = append(s.comments, tok)

			continue
		}

		s.toks = append(s.toks, tok)
	}
}

// peek returns the current token without consuming it.
func (s *tokenStream) peek() lexer.Token {
	return s.peekAt(0)
}

// peekAt returns the token n positions ahead of the current one.
func (s *tokenStream) peekAt(n int) lexer.Token {
	s.fill(s.pos + n)

	return s.toks[s.pos+n]
}

// next consumes and returns the current token.
func (s *tokenStream) next() lexer.Token {
	tok := s.peek()
	if !tok.EOF() {
		s.pos++
	}

	s.last = tok

	return tok
}

// prevEnd returns the position just past the last consumed token.
func (s *tokenStream) prevEnd() lexer.Position {
	return tokenEnd(s.last)
}

// seek discards buffered lookahead and restarts lexing at the given
// position, which must lie at or after the current token.
func (s *tokenStream) seek(pos lexer.Position) {
	start := s.peek().Pos

	s.toks = s.toks[:s.pos]

	for len(s.comments) > 0 && s.comments[len(s.comments)-1].Pos.Offset >= start.Offset {
		s.comments = s.comments[:len(s.comments)-1]
	}

	s.lex.offset = start.Offset
	s.lex.line = start.Line
	s.lex.col = start.Column

	for s.lex.offset < pos.Offset && !s.lex.eof() {
		s.lex.advance()
	}

	s.last = lexer.Token{Pos: pos}
}

// input returns the full source text.
func (s *tokenStream) input() string {
	return s.lex.input
}

// tokenEnd computes the position just after tok.
func tokenEnd(tok lexer.Token) lexer.Position {
	end := tok.Pos
	end.Offset += len(tok.Value)

	if i := strings.LastIndexByte(tok.Value, '\n'); i >= 0 {
		end.Line += strings.Count(tok.Value, "\n")
		end.Column = 1 + utf8.RuneCountInString(tok.Value[i+1:])
	} else {
		end.Column += utf8.RuneCountInString(tok.Value)
	}

	return end
}
