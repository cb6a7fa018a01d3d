package cypherparse_test

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cypherparse"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func dumpLines(t *testing.T, query string, width int, colorize bool) []string {
	t.Helper()

	out := mustParse(t, query)

	var sb strings.Builder
	require.NoError(t, cypherparse.Dump(&sb, out.Roots, width, colorize))

	return strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
}

func TestDump(t *testing.T) {
	t.Parallel()

	lines := dumpLines(t, "RETURN 1", 0, false)
	require.Len(t, lines, 5)

	assert.Equal(t, "@0 0..8  statement         body=@1", lines[0])
	assert.Equal(t, "@4 7..8  > > > > integer   value=1", lines[4])

	for i, l := range lines {
		assert.Equal(t, i, strings.Count(l, "> "), "depth of line %d: %q", i, l)
	}
}

func TestDumpFieldReferences(t *testing.T) {
	t.Parallel()

	lines := dumpLines(t, "RETURN {a: 1}, [x IN y | x] AS z", 0, false)
	text := strings.Join(lines, "\n")

	assert.Contains(t, text, "entries={@")
	assert.Contains(t, text, `value="a"`)
	assert.Contains(t, text, "projections=[@")
	assert.Regexp(t, `alias=@\d+`, text)
}

func TestDumpWidth(t *testing.T) {
	t.Parallel()

	lines := dumpLines(t, "MATCH (n:Person {name: 'x'}) RETURN n.name", 12, false)

	for _, l := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), 12, l)
	}

	assert.Equal(t, "@0   0..42", lines[0])
}

func TestDumpColorize(t *testing.T) {
	t.Parallel()

	const query = "MATCH (n) RETURN n"

	plain := dumpLines(t, query, 0, false)
	colored := dumpLines(t, query, 0, true)
	require.Len(t, colored, len(plain))

	assert.Contains(t, colored[0], "\x1b[")

	for i := range plain {
		assert.NotContains(t, plain[i], "\x1b[")
		assert.Equal(t, plain[i], ansiPattern.ReplaceAllString(colored[i], ""))
	}
}

func TestDumpEmpty(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, cypherparse.Dump(&sb, nil, 0, true))
	assert.Empty(t, sb.String())
}
