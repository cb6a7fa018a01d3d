package cypherparse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// commandLexer tokenizes the text of a client command. Words run until
// whitespace, a quote or a semicolon.
var commandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`},
	{Name: "Word", Pattern: `[^\s"';]+`},
})

var commandParser = participle.MustBuild[commandLine](
	participle.Lexer(commandLexer),
	participle.Elide("Whitespace"),
)

type commandLine struct {
	Name *commandArg   `":" @@`
	Args []*commandArg `@@*`
}

type commandArg struct {
	Pos lexer.Position

	Word   *string `  @Word`
	String *string `| @String`
}

// raw returns the argument as written, including any quotes.
func (a *commandArg) raw() string {
	if a.String != nil {
		return *a.String
	}

	return *a.Word
}

func (a *commandArg) value() string {
	if a.String != nil {
		return unquoteString(*a.String)
	}

	return *a.Word
}

// commandText returns the client command text starting at offset, which ends
// at a newline or at a semicolon outside quotes.
func commandText(input string, offset int) string {
	var quote byte

	for i := offset; i < len(input); i++ {
		c := input[i]

		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '\n' || c == ';':
			return input[offset:i]
		}
	}

	return input[offset:]
}

// parseCommand parses a client command such as `:param name "value"`.
func (p *parser) parseCommand() *Command {
	colon := p.s.peek()
	text := commandText(p.s.input(), colon.Pos.Offset)

	line, err := commandParser.ParseString("", text)
	if err != nil {
		rel := lexer.Position{Offset: len(text), Line: 1, Column: len(text) + 1}

		var perr participle.Error
		if errors.As(err, &perr) {
			rel = perr.Position()
		}

		panic(&SyntaxError{Pos: relocate(colon.Pos, rel), Msg: commandError(text, rel.Offset)})
	}

	cmd := &Command{
		Name: p.commandString(colon.Pos, line.Name),
	}

	end := cmd.Name.Span().End

	for _, arg := range line.Args {
		s := p.commandString(colon.Pos, arg)
		cmd.Args = append(cmd.Args, s)
		end = s.Span().End
	}

	cmd.node = node{kind: KindCommand, span: Span{Start: colon.Pos, End: end}}

	p.s.seek(end)

	return cmd
}

// commandError phrases a failure at offset within command text like the
// other syntax errors, naming the token found there.
func commandError(text string, offset int) string {
	offset = min(max(offset, 1), len(text))

	expected := "a command argument"
	if strings.TrimSpace(text[1:offset]) == "" {
		expected = "a command name"
	}

	l := newLexerState("", text[offset:])

	tok, _ := l.Next()
	for tok.Type == tWhitespace {
		tok, _ = l.Next()
	}

	return fmt.Sprintf("unexpected %s, expected %s", describe(tok), expected)
}

func (p *parser) commandString(base lexer.Position, arg *commandArg) *String {
	start := relocate(base, arg.Pos)

	return &String{
		node: node{kind: KindString, span: Span{
			Start: start,
			End:   tokenEnd(lexer.Token{Pos: start, Value: arg.raw()}),
		}},
		Value: arg.value(),
	}
}

// relocate converts a position within command text starting at base into an
// absolute position. Command text never spans lines.
func relocate(base, rel lexer.Position) lexer.Position {
	return lexer.Position{
		Filename: base.Filename,
		Offset:   base.Offset + rel.Offset,
		Line:     base.Line,
		Column:   base.Column + rel.Column - 1,
	}
}
