package cypherparse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/alecthomas/participle/v2/lexer"
	"go.uber.org/zap"
)

// parser is a recursive descent parser over a tokenStream. Grammar
// violations are raised with fail, which panics with a *SyntaxError that
// parseDirective recovers.
type parser struct {
	s      *tokenStream
	cfg    *Config
	logger *zap.Logger
}

func newParser(input string, cfg *Config, logger *zap.Logger) *parser {
	return &parser{s: newTokenStream(input), cfg: cfg, logger: logger}
}

// parsed is the raw output of a parse before result assembly.
type parsed struct {
	roots      []Node
	directives []Directive
	errs       []*SyntaxError
}

// parseAll parses every directive in the input, recovering from errors at
// the next top-level semicolon.
func (p *parser) parseAll() parsed {
	var out parsed

	for {
		tok := p.s.peek()
		if tok.EOF() {
			break
		}

		if p.isOp(";") {
			p.s.next()

			continue
		}

		d, err := p.parseDirective()
		if err != nil {
			p.logger.Debug("directive failed",
				zap.Int("offset", err.Pos.Offset),
				zap.String("message", err.Msg))

			out.errs = append(out.errs, err)
			out.roots = append(out.roots, p.skipDirective(tok.Pos))

			continue
		}

		p.logger.Debug("parsed directive",
			zap.Stringer("kind", d.Kind()),
			zap.Int("offset", d.Span().Start.Offset))

		out.roots = append(out.roots, d)
		out.directives = append(out.directives, d)
	}

	out.roots = append(out.roots, p.topLevelComments(out.roots)...)
	sort.SliceStable(out.roots, func(i, j int) bool {
		return out.roots[i].Span().Start.Offset < out.roots[j].Span().Start.Offset
	})

	return out
}

// skipDirective skips to the end of the current directive and returns the
// skipped text as an error node.
func (p *parser) skipDirective(start lexer.Position) *ErrorNode {
	for {
		tok := p.s.peek()
		if tok.EOF() || (tok.Type == tOp && tok.Value == ";") {
			break
		}

		p.s.next()
	}

	end := p.s.prevEnd()
	if end.Offset < start.Offset {
		end = start
	}

	if p.isOp(";") {
		p.s.next()
	}

	return &ErrorNode{
		node:  node{kind: KindError, span: Span{Start: start, End: end}},
		Value: p.s.input()[start.Offset:end.Offset],
	}
}

// topLevelComments returns comment nodes for comments outside every root.
func (p *parser) topLevelComments(roots []Node) []Node {
	var out []Node

	for _, c := range p.s.comments {
		inside := false

		for _, r := range roots {
			sp := r.Span()
			if c.Pos.Offset >= sp.Start.Offset && c.Pos.Offset < sp.End.Offset {
				inside = true

				break
			}
		}

		if inside {
			continue
		}

		span := Span{Start: c.Pos, End: tokenEnd(c)}

		if c.Type == tLineComment {
			out = append(out, &LineComment{
				node:  node{kind: KindLineComment, span: span},
				Value: strings.TrimPrefix(c.Value, "//"),
			})
		} else {
			out = append(out, &BlockComment{
				node:  node{kind: KindBlockComment, span: span},
				Value: strings.TrimSuffix(strings.TrimPrefix(c.Value, "/*"), "*/"),
			})
		}
	}

	return out
}

// parseDirective parses one statement or command.
func (p *parser) parseDirective() (d Directive, err *SyntaxError) {
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}

			d, err = nil, se
		}
	}()

	if p.isOp(":") {
		if p.cfg.ParseOnlyStatements {
			p.fail(p.s.peek(), "unexpected ':', client commands are not allowed")
		}

		return p.parseCommand(), nil
	}

	return p.parseStatement(), nil
}

// -----------------------------------------------------------------------------
// Token helpers
// -----------------------------------------------------------------------------

// fail aborts the current directive with an error at tok.
func (p *parser) fail(tok lexer.Token, format string, args ...any) {
	panic(&SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)})
}

// unexpected aborts with "unexpected X, expected <what>".
func (p *parser) unexpected(what string) {
	tok := p.s.peek()
	msg := fmt.Sprintf("unexpected %s, expected %s", describe(tok), what)

	if tok.Type == tIdent {
		if s := suggest(tok.Value, suggestionKeywords); s != "" {
			msg += fmt.Sprintf(" (did you mean %s?)", s)
		}
	}

	panic(&SyntaxError{Pos: tok.Pos, Msg: msg})
}

func (p *parser) isOp(op string) bool {
	tok := p.s.peek()

	return tok.Type == tOp && tok.Value == op
}

func (p *parser) isOpAt(n int, op string) bool {
	tok := p.s.peekAt(n)

	return tok.Type == tOp && tok.Value == op
}

// isWord reports whether the current token is the given upper-case word,
// reserved or not.
func (p *parser) isWord(word string) bool {
	return p.isWordAt(0, word)
}

func (p *parser) isWordAt(n int, word string) bool {
	tok := p.s.peekAt(n)

	return (tok.Type == tKeyword || tok.Type == tIdent) && strings.EqualFold(tok.Value, word)
}

func (p *parser) acceptOp(op string) bool {
	if p.isOp(op) {
		p.s.next()

		return true
	}

	return false
}

func (p *parser) acceptWord(word string) bool {
	if p.isWord(word) {
		p.s.next()

		return true
	}

	return false
}

func (p *parser) expectOp(op string) lexer.Token {
	if !p.isOp(op) {
		p.unexpected("'" + op + "'")
	}

	return p.s.next()
}

func (p *parser) expectWord(word string) lexer.Token {
	if !p.isWord(word) {
		p.unexpected(word)
	}

	return p.s.next()
}

// span returns the span from start to the end of the last consumed token.
func (p *parser) span(start lexer.Position) Span {
	return Span{Start: start, End: p.s.prevEnd()}
}

func (p *parser) mk(kind Kind, start lexer.Position) node {
	return node{kind: kind, span: p.span(start)}
}

func (p *parser) start() lexer.Position {
	return p.s.peek().Pos
}

// atDirectiveEnd reports whether the current token ends a directive.
func (p *parser) atDirectiveEnd() bool {
	return p.s.peek().EOF() || p.isOp(";")
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (p *parser) parseStatement() *Statement {
	start := p.start()

	var options []StatementOption

	for {
		switch {
		case p.isWord("CYPHER"):
			options = append(options, p.parseCypherOption())

			continue
		case p.isWord("EXPLAIN"):
			s := p.start()
			p.s.next()
			options = append(options, &ExplainOption{node: p.mk(KindExplainOption, s)})

			continue
		case p.isWord("PROFILE"):
			s := p.start()
			p.s.next()
			options = append(options, &ProfileOption{node: p.mk(KindProfileOption, s)})

			continue
		}

		break
	}

	var body StatementBody

	if (p.isWord("CREATE") || p.isWord("DROP")) && (p.isWordAt(1, "INDEX") || p.isWordAt(1, "CONSTRAINT")) {
		body = p.parseSchemaCommand()

		if !p.atDirectiveEnd() {
			p.unexpected("';' or end of input")
		}
	} else {
		body = p.parseQuery()
	}

	return &Statement{node: p.mk(KindStatement, start), Options: options, Body: body}
}

func (p *parser) parseCypherOption() *CypherOption {
	start := p.start()
	p.s.next() // CYPHER

	opt := &CypherOption{}

	if tok := p.s.peek(); tok.Type == tInteger || tok.Type == tFloat {
		if _, err := semver.NewVersion(tok.Value); err != nil {
			p.fail(tok, "invalid Cypher version '%s'", tok.Value)
		}

		p.s.next()
		opt.Version = &String{node: p.mk(KindString, tok.Pos), Value: tok.Value}
	}

	for p.isName(p.s.peek()) && p.isOpAt(1, "=") {
		ps := p.start()
		name := p.s.next()
		nameNode := &String{node: p.mk(KindString, name.Pos), Value: name.Value}

		p.s.next() // =

		tok := p.s.peek()

		var value string

		switch {
		case tok.Type == tString:
			value = unquoteString(tok.Value)
		case p.isName(tok), tok.Type == tInteger, tok.Type == tFloat:
			value = tok.Value
		default:
			p.unexpected("an option value")
		}

		p.s.next()

		opt.Params = append(opt.Params, &CypherOptionParam{
			node:  p.mk(KindCypherOptionParam, ps),
			Name:  nameNode,
			Value: &String{node: p.mk(KindString, tok.Pos), Value: value},
		})
	}

	opt.node = p.mk(KindCypherOption, start)

	return opt
}

// -----------------------------------------------------------------------------
// Names
// -----------------------------------------------------------------------------

// isName reports whether tok can be used as a label, property key, function
// or other symbolic name. Reserved words are allowed.
func (p *parser) isName(tok lexer.Token) bool {
	return tok.Type == tIdent || tok.Type == tKeyword || tok.Type == tQuotedIdent
}

func (p *parser) parseSymbolicName(what string) (string, lexer.Token) {
	tok := p.s.peek()
	if !p.isName(tok) {
		p.unexpected(what)
	}

	p.s.next()

	if tok.Type == tQuotedIdent {
		return unquoteIdent(tok.Value), tok
	}

	return tok.Value, tok
}

func (p *parser) isIdentifier(tok lexer.Token) bool {
	return tok.Type == tIdent || tok.Type == tQuotedIdent
}

func (p *parser) parseIdentifier() *Identifier {
	tok := p.s.peek()
	if !p.isIdentifier(tok) {
		p.unexpected("an identifier")
	}

	p.s.next()

	return &Identifier{node: p.mk(KindIdentifier, tok.Pos), Name: unquoteIdent(tok.Value)}
}

func (p *parser) parseLabel() *Label {
	name, tok := p.parseSymbolicName("a label name")

	return &Label{node: p.mk(KindLabel, tok.Pos), Name: name}
}

// parseLabels parses one or more :Label suffixes.
func (p *parser) parseLabels() []*Label {
	var labels []*Label

	for p.acceptOp(":") {
		labels = append(labels, p.parseLabel())
	}

	return labels
}

func (p *parser) parseRelType() *RelType {
	name, tok := p.parseSymbolicName("a relationship type")

	return &RelType{node: p.mk(KindRelType, tok.Pos), Name: name}
}

func (p *parser) parsePropName() *PropName {
	name, tok := p.parseSymbolicName("a property name")

	return &PropName{node: p.mk(KindPropName, tok.Pos), Value: name}
}

// parseQualifiedName parses name(.name)* as used by functions and procedures.
func (p *parser) parseQualifiedName(what string) (string, lexer.Position) {
	name, tok := p.parseSymbolicName(what)

	for p.isOp(".") && p.isName(p.s.peekAt(1)) {
		p.s.next()

		part, _ := p.parseSymbolicName(what)
		name += "." + part
	}

	return name, tok.Pos
}

func (p *parser) parseInteger() *Integer {
	tok := p.s.peek()
	if tok.Type != tInteger {
		p.unexpected("an integer")
	}

	p.s.next()

	return &Integer{node: p.mk(KindInteger, tok.Pos), Value: p.integerValue(tok)}
}

func (p *parser) parseStringLiteral() *String {
	tok := p.s.peek()
	if tok.Type != tString {
		p.unexpected("a string")
	}

	p.s.next()

	return &String{node: p.mk(KindString, tok.Pos), Value: unquoteString(tok.Value)}
}
