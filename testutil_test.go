package cypherparse_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rlch/cypherparse"
)

// sexpr renders a tree as a compact s-expression of kind names, so tests can
// compare structure without positions. Leaf values and a few distinguishing
// attributes are included.
func sexpr(n cypherparse.Node) string {
	var sb strings.Builder

	writeSexpr(&sb, n)

	return sb.String()
}

func writeSexpr(sb *strings.Builder, n cypherparse.Node) {
	sb.WriteString("(")
	sb.WriteString(n.Kind().String())

	if a := sexprAttr(n); a != "" {
		sb.WriteString(" ")
		sb.WriteString(a)
	}

	for _, c := range cypherparse.Children(n) {
		sb.WriteString(" ")
		writeSexpr(sb, c)
	}

	sb.WriteString(")")
}

func sexprAttr(n cypherparse.Node) string {
	switch n := n.(type) {
	case *cypherparse.Identifier:
		return n.Name
	case *cypherparse.Parameter:
		return "$" + n.Name
	case *cypherparse.String:
		return fmt.Sprintf("%q", n.Value)
	case *cypherparse.Integer:
		return fmt.Sprint(n.Value)
	case *cypherparse.Float:
		return fmt.Sprint(n.Value)
	case *cypherparse.Label:
		return n.Name
	case *cypherparse.RelType:
		return n.Name
	case *cypherparse.PropName:
		return n.Value
	case *cypherparse.FunctionName:
		return n.Value
	case *cypherparse.ProcName:
		return n.Value
	case *cypherparse.IndexName:
		return n.Value
	case *cypherparse.UnaryOperator:
		return n.Op.Symbol
	case *cypherparse.BinaryOperator:
		return n.Op.Symbol
	case *cypherparse.Comparison:
		syms := make([]string, len(n.Ops))
		for i, op := range n.Ops {
			syms[i] = op.Symbol
		}

		return "[" + strings.Join(syms, " ") + "]"
	case *cypherparse.RelPattern:
		return n.Direction.String()
	case *cypherparse.Range:
		return rangeBound(n.Start) + ".." + rangeBound(n.End)
	case *cypherparse.Match:
		if n.Optional {
			return "optional"
		}
	case *cypherparse.Delete:
		if n.Detach {
			return "detach"
		}
	case *cypherparse.Return:
		return flags(n.Distinct, "distinct", n.IncludeExisting, "*")
	case *cypherparse.With:
		return flags(n.Distinct, "distinct", n.IncludeExisting, "*")
	case *cypherparse.SortItem:
		if !n.Ascending {
			return "desc"
		}
	case *cypherparse.Union:
		if n.All {
			return "all"
		}
	case *cypherparse.ShortestPath:
		if !n.Single {
			return "all"
		}
	case *cypherparse.CreateNodePropConstraint:
		return flags(n.Unique, "unique")
	case *cypherparse.CreateRelPropConstraint:
		return flags(n.Unique, "unique")
	case *cypherparse.LineComment:
		return fmt.Sprintf("%q", n.Value)
	case *cypherparse.BlockComment:
		return fmt.Sprintf("%q", n.Value)
	case *cypherparse.ErrorNode:
		return fmt.Sprintf("%q", n.Value)
	}

	return ""
}

func rangeBound(v *int) string {
	if v == nil {
		return ""
	}

	return fmt.Sprint(*v)
}

// flags takes (bool, name) pairs and joins the names of the true ones.
func flags(pairs ...any) string {
	var out []string

	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i].(bool) {
			out = append(out, pairs[i+1].(string))
		}
	}

	return strings.Join(out, " ")
}

// mustParse parses input and fails the test on any error.
func mustParse(t *testing.T, input string, opts ...cypherparse.Option) *cypherparse.Outcome {
	t.Helper()

	out, err := cypherparse.Parse(input, opts...)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", input, err)
	}

	return out
}

// firstClauses returns the clauses of the first directive, which must be a
// query statement.
func firstClauses(t *testing.T, out *cypherparse.Outcome) []cypherparse.Clause {
	t.Helper()

	if len(out.Directives) == 0 {
		t.Fatal("no directives")
	}

	stmt, ok := out.Directives[0].(*cypherparse.Statement)
	if !ok {
		t.Fatalf("directive is %T, want *Statement", out.Directives[0])
	}

	q, ok := stmt.Body.(*cypherparse.Query)
	if !ok {
		t.Fatalf("statement body is %T, want *Query", stmt.Body)
	}

	return q.Clauses
}

// returnExpr parses "RETURN <expr>" and returns the projected expression.
func returnExpr(t *testing.T, expr string) cypherparse.Expression {
	t.Helper()

	clauses := firstClauses(t, mustParse(t, "RETURN "+expr))

	ret, ok := clauses[0].(*cypherparse.Return)
	if !ok {
		t.Fatalf("clause is %T, want *Return", clauses[0])
	}

	return ret.Projections[0].Expression
}
