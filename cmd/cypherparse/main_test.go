package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse"
)

func resolveWithArgs(t *testing.T, args ...string) *cypherparse.Config {
	t.Helper()

	var cfg *cypherparse.Config

	cmd := &cli.Command{
		Name:  "test",
		Flags: parseFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			var err error

			cfg, err = resolveConfig(cmd, zap.NewNop())

			return err
		},
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))

	return cfg
}

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cypherparse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 40\ndump_ast: true\ncontext_align: start\n"), 0o600))

	cfg := resolveWithArgs(t, "--config", path, "--color=false")
	assert.Equal(t, 40, cfg.Width)
	assert.True(t, cfg.DumpAST)
	assert.False(t, cfg.Colorize)
	assert.Equal(t, cypherparse.AlignStart, cfg.Alignment)

	cfg = resolveWithArgs(t, "--config", path, "--width", "12", "--dump-ast=false", "--align", "center", "--only-statements")
	assert.Equal(t, 12, cfg.Width)
	assert.False(t, cfg.DumpAST)
	assert.Equal(t, cypherparse.AlignCenter, cfg.Alignment)
	assert.True(t, cfg.ParseOnlyStatements)
}

func TestPrintOutcome(t *testing.T) {
	t.Parallel()

	cfg := &cypherparse.Config{DumpAST: true}

	out, _ := cypherparse.Parse("RETURN ?", cypherparse.WithConfig(cfg))

	var stdout, stderr bytes.Buffer

	err := printOutcome(&stdout, &stderr, out, cfg)
	require.ErrorIs(t, err, ErrParseFailed)
	assert.Equal(t, out.AST, stdout.String())
	assert.Equal(t, "1:8: "+out.Errors[0].Message+"\nRETURN ?\n       ^\n", stderr.String())

	cfg = &cypherparse.Config{RawJSON: true}
	out, err = cypherparse.Parse("RETURN 1", cypherparse.WithConfig(cfg))
	require.NoError(t, err)

	stdout.Reset()
	stderr.Reset()

	require.NoError(t, printOutcome(&stdout, &stderr, out, cfg))
	assert.JSONEq(t, out.Raw, stdout.String())
	assert.Empty(t, stderr.String())
}
