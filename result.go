package cypherparse

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Outcome is the result of parsing a query text.
type Outcome struct {
	// AST is the rendered tree dump, set when dumping is enabled. It is
	// produced for failed parses too, covering whatever was recovered.
	AST string

	// Errors lists every diagnostic in source order.
	Errors []Error

	// Directives are the successfully parsed statements and commands.
	Directives []Directive

	// Roots are every top-level node in source order: directives, comments
	// outside any directive, and error nodes covering unparseable text.
	Roots []Node

	// NNodes is the number of nodes reachable from Roots.
	NNodes int

	// EOF reports whether the whole input was consumed.
	EOF bool

	// Raw is the JSON encoding of the outcome, set when raw JSON output is
	// enabled.
	Raw string
}

// OK reports whether the parse produced no errors.
func (o *Outcome) OK() bool {
	return len(o.Errors) == 0
}

// Parse parses query into top-level directives. When the input contains
// errors, the returned error is a *ParseError carrying the same outcome.
func Parse(query string, opts ...Option) (*Outcome, error) {
	o := newOptions(opts)
	cfg := o.cfg

	p := newParser(query, &cfg, o.logger)
	res := p.parseAll()

	out := &Outcome{
		Directives: res.directives,
		Roots:      res.roots,
		NNodes:     CountNodes(res.roots...),
		EOF:        true,
	}

	for _, se := range res.errs {
		out.Errors = append(out.Errors, diagnose(query, se, cfg.Width, cfg.Alignment))
	}

	if cfg.DumpAST {
		var sb strings.Builder

		if err := Dump(&sb, out.Roots, cfg.Width, cfg.Colorize); err != nil {
			return nil, fmt.Errorf("dumping ast: %w", err)
		}

		out.AST = sb.String()
	}

	if cfg.RawJSON {
		raw, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("encoding outcome: %w", err)
		}

		out.Raw = string(raw)
	}

	o.logger.Debug("parsed query",
		zap.Int("directives", len(out.Directives)),
		zap.Int("errors", len(out.Errors)),
		zap.Int("nnodes", out.NNodes))

	if len(out.Errors) > 0 {
		return out, &ParseError{Outcome: out}
	}

	return out, nil
}
