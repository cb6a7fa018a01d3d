package lint

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rlch/cypherparse"
)

// Env is the environment assertions are evaluated against. Assertions are
// expr-lang expressions that must yield a bool, for example:
//
//	len(Errors) == 0 && "match" in Kinds
//	NNodes < 500
type Env struct {
	File       string
	NNodes     int
	Errors     []cypherparse.Error
	Directives []cypherparse.Directive
	Roots      []cypherparse.Node
	Kinds      []string
}

func newEnv(file string, out *cypherparse.Outcome) Env {
	env := Env{
		File:       file,
		NNodes:     out.NNodes,
		Errors:     out.Errors,
		Directives: out.Directives,
		Roots:      out.Roots,
	}

	for _, root := range out.Roots {
		cypherparse.Walk(root, func(n cypherparse.Node) bool {
			env.Kinds = append(env.Kinds, n.Kind().String())

			return true
		})
	}

	return env
}

// assertion is a compiled assertion and its source text.
type assertion struct {
	source  string
	program *vm.Program
}

func compileAssertions(sources []string) ([]assertion, error) {
	out := make([]assertion, 0, len(sources))

	for _, src := range sources {
		program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidAssertion, src, err)
		}

		out = append(out, assertion{source: src, program: program})
	}

	return out, nil
}

// eval reports whether the assertion holds for env.
func (a assertion) eval(env Env) (bool, error) {
	v, err := expr.Run(a.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluating %q: %w", a.source, err)
	}

	ok, _ := v.(bool)

	return ok, nil
}
