package cypherparse_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cypherparse"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".cypherparse.yaml"), `
width: 40
dump_ast: true
colorize: true
raw_json: true
parse_only_statements: true
context_align: start
`)

	nested := filepath.Join(root, "queries", "reports")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := cypherparse.FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".cypherparse.yaml"), path)

	cfg, err := cypherparse.LoadConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, &cypherparse.Config{
		Width:               40,
		DumpAST:             true,
		Colorize:            true,
		RawJSON:             true,
		ParseOnlyStatements: true,
		Alignment:           cypherparse.AlignStart,
	}, cfg)
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("negative width", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "negative.yml")
		writeFile(t, path, "width: -5\n")

		cfg, err := cypherparse.LoadConfigFile(path)
		require.NoError(t, err)
		assert.Zero(t, cfg.Width)
	})

	t.Run("invalid alignment", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "bad.yml")
		writeFile(t, path, "context_align: middle\n")

		_, err := cypherparse.LoadConfigFile(path)
		require.ErrorIs(t, err, cypherparse.ErrInvalidAlignment)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		_, err := cypherparse.LoadConfigFile(filepath.Join(dir, "missing.yml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFindConfigNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path, err := cypherparse.FindConfig(dir)
	if err == nil {
		// A config above the temp dir is outside the test's control.
		t.Skipf("found unrelated config at %s", path)
	}

	require.ErrorIs(t, err, cypherparse.ErrConfigNotFound)
}

func TestOptionsOverrideConfig(t *testing.T) {
	t.Parallel()

	cfg := &cypherparse.Config{Width: 5, ParseOnlyStatements: true}

	_, err := cypherparse.Parse(":help", cypherparse.WithConfig(cfg))
	require.ErrorIs(t, err, cypherparse.ErrSyntax)

	out, err := cypherparse.Parse(":help",
		cypherparse.WithConfig(cfg),
		cypherparse.WithParseOnlyStatements(false))
	require.NoError(t, err)
	require.Len(t, out.Directives, 1)

	out, err = cypherparse.Parse("RETURN 1 ?", cypherparse.WithConfig(cfg), cypherparse.WithWidth(-1))
	require.Error(t, err)
	assert.Equal(t, "RETURN 1 ?", out.Errors[0].Context)

	out, err = cypherparse.Parse("RETURN 1 ?", cypherparse.WithConfig(cfg))
	require.Error(t, err)
	assert.Len(t, out.Errors[0].Context, 5)
	assert.True(t, strings.HasSuffix(out.Errors[0].Context, "?"))
}
