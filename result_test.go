package cypherparse_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cypherparse"
)

func TestParseMatchReturn(t *testing.T) {
	t.Parallel()

	out := mustParse(t, "MATCH (n:Label) RETURN n")

	assert.True(t, out.OK())
	assert.True(t, out.EOF)
	assert.Empty(t, out.Errors)
	require.Len(t, out.Roots, 1)
	require.Len(t, out.Directives, 1)
	assert.Same(t, out.Directives[0], out.Roots[0])

	clauses := firstClauses(t, out)
	require.Len(t, clauses, 2)
	assert.Equal(t, cypherparse.KindMatch, clauses[0].Kind())
	assert.Equal(t, cypherparse.KindReturn, clauses[1].Kind())

	assert.Equal(t, 11, out.NNodes)
	assert.Equal(t, cypherparse.CountNodes(out.Roots...), out.NNodes)
}

func TestParseMisspelledClause(t *testing.T) {
	t.Parallel()

	out, err := cypherparse.Parse("MATCH (n:Label) RETURNI n")
	require.Error(t, err)
	require.ErrorIs(t, err, cypherparse.ErrSyntax)

	var perr *cypherparse.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Same(t, out, perr.Outcome)

	require.Len(t, out.Errors, 1)

	e := out.Errors[0]
	assert.Contains(t, e.Message, "unexpected identifier 'RETURNI'")
	assert.Contains(t, e.Message, "expected a clause keyword")
	assert.Equal(t, cypherparse.Position{Line: 1, Column: 17, Offset: 16}, e.Position)
	assert.Equal(t, "MATCH (n:Label) RETURNI n", e.Context)
	assert.Equal(t, 16, e.ContextOffset)
	assert.False(t, out.OK())
}

func TestParseCreateIndex(t *testing.T) {
	t.Parallel()

	out := mustParse(t, "CREATE INDEX ON :Label(prop)")
	require.Len(t, out.Roots, 1)

	stmt, ok := out.Roots[0].(*cypherparse.Statement)
	require.True(t, ok, "root is %T", out.Roots[0])

	idx, ok := stmt.Body.(*cypherparse.CreateNodePropIndex)
	require.True(t, ok, "body is %T", stmt.Body)
	assert.Equal(t, cypherparse.KindCreateNodePropIndex, idx.Kind())
	assert.Equal(t, "Label", idx.Label.Name)
	assert.Equal(t, "prop", idx.PropName.Value)
}

func TestParseContextWindow(t *testing.T) {
	t.Parallel()

	// "?" sits at column 45 of a 60 character line.
	query := "RETURN " + strings.Repeat("a", 36) + " ? " + strings.Repeat("b", 14)
	require.Len(t, query, 60)

	tests := []struct {
		name       string
		opts       []cypherparse.Option
		wantCtx    string
		wantOffset int
	}{
		{
			name:       "unlimited",
			wantCtx:    query,
			wantOffset: 44,
		},
		{
			name:       "centered",
			opts:       []cypherparse.Option{cypherparse.WithWidth(20)},
			wantCtx:    strings.Repeat("a", 9) + " ? " + strings.Repeat("b", 8),
			wantOffset: 10,
		},
		{
			name: "start aligned",
			opts: []cypherparse.Option{
				cypherparse.WithWidth(20),
				cypherparse.WithContextAlignment(cypherparse.AlignStart),
			},
			wantCtx:    "aaa ? " + strings.Repeat("b", 14),
			wantOffset: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := cypherparse.Parse(query, tt.opts...)
			require.Error(t, err)
			require.Len(t, out.Errors, 1)

			e := out.Errors[0]
			assert.Equal(t, 45, e.Position.Column)
			assert.Equal(t, tt.wantCtx, e.Context)
			assert.Equal(t, tt.wantOffset, e.ContextOffset)
			assert.Equal(t, byte('?'), e.Context[e.ContextOffset])
		})
	}
}

func TestParseHelpCommand(t *testing.T) {
	t.Parallel()

	out := mustParse(t, ":help", cypherparse.WithParseOnlyStatements(false))
	require.Len(t, out.Roots, 1)

	cmd, ok := out.Roots[0].(*cypherparse.Command)
	require.True(t, ok, "root is %T", out.Roots[0])
	assert.Equal(t, cypherparse.KindCommand, cmd.Kind())
	assert.Equal(t, "help", cmd.Name.Value)
	assert.Empty(t, cmd.Args)
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   \n\t", ";", " ; ;"} {
		out := mustParse(t, input)
		assert.Empty(t, out.Roots, "input %q", input)
		assert.Empty(t, out.Directives, "input %q", input)
		assert.Zero(t, out.NNodes, "input %q", input)
		assert.True(t, out.EOF, "input %q", input)
	}
}

func TestParseNodeCountStable(t *testing.T) {
	t.Parallel()

	const query = "MATCH (a)-[r:R]->(b) WHERE a.x IN [1, 2, 3] RETURN a, count(*) AS c; :help"

	first := mustParse(t, query)
	second := mustParse(t, query)

	assert.Equal(t, first.NNodes, second.NNodes)
	assert.Equal(t, first.NNodes, cypherparse.CountNodes(first.Roots...))

	var walked int
	for _, r := range first.Roots {
		cypherparse.Walk(r, func(cypherparse.Node) bool {
			walked++

			return true
		})
	}

	assert.Equal(t, first.NNodes, walked)
}

func TestParseRawJSON(t *testing.T) {
	t.Parallel()

	out := mustParse(t, "RETURN 1 + 2 AS x", cypherparse.WithRawJSON(true))
	require.NotEmpty(t, out.Raw)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out.Raw), &got))

	for _, key := range []string{"eof", "roots", "directives", "nnodes", "errors"} {
		assert.Contains(t, got, key)
	}

	assert.NotContains(t, got, "ast")
	assert.Equal(t, true, got["eof"])
	assert.InDelta(t, float64(out.NNodes), got["nnodes"], 0)
	assert.Equal(t, []any{}, got["errors"])

	roots, ok := got["roots"].([]any)
	require.True(t, ok)
	require.Len(t, roots, 1)

	root, ok := roots[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "statement", root["type"])

	assert.Contains(t, out.Raw, `"op":"+"`)
	assert.Contains(t, out.Raw, `"type":"binary-operator"`)
}

func TestParseRawJSONErrors(t *testing.T) {
	t.Parallel()

	out, err := cypherparse.Parse("RETURN (", cypherparse.WithRawJSON(true), cypherparse.WithDumpAST(true))
	require.Error(t, err)
	require.NotEmpty(t, out.Raw)
	require.NotEmpty(t, out.AST)

	var got struct {
		Errors []cypherparse.Error `json:"errors"`
		AST    string              `json:"ast"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.Raw), &got))
	assert.Equal(t, out.Errors, got.Errors)
	assert.Equal(t, out.AST, got.AST)
}

func TestParseDumpAST(t *testing.T) {
	t.Parallel()

	out := mustParse(t, "RETURN 1")
	assert.Empty(t, out.AST)

	out = mustParse(t, "RETURN 1", cypherparse.WithDumpAST(true))

	lines := strings.Split(strings.TrimSuffix(out.AST, "\n"), "\n")
	require.Len(t, lines, out.NNodes)
	assert.Contains(t, lines[0], "statement")
	assert.Contains(t, lines[len(lines)-1], "integer")
}

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := cypherparse.Parse("RETURN (; RETURN ?")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "cypherparse: 1:"), err.Error())
	assert.Contains(t, err.Error(), "(and 1 more errors)")
}
