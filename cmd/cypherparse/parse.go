package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse"
)

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a query and print its syntax tree or errors",
		ArgsUsage: "[query]",
		Flags: append(parseFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the outcome as JSON",
			},
		),
		Action: runParse,
	}
}

func runParse(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return err
	}

	defer func() {
		_ = logger.Sync()
	}()

	query := strings.Join(cmd.Args().Slice(), " ")
	if cmd.Args().Len() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}

		query = string(data)
	}

	cfg, err := resolveConfig(cmd, logger)
	if err != nil {
		return err
	}

	if cmd.IsSet("json") {
		cfg.RawJSON = cmd.Bool("json")
	}

	logger.Debug("parsing query", zap.Int("bytes", len(query)), zap.Any("config", cfg))

	res := <-cypherparse.ParseAsync(ctx, query, cypherparse.WithConfig(cfg), cypherparse.WithLogger(logger))
	if res.Outcome == nil {
		return res.Err
	}

	return printOutcome(cmd.Writer, cmd.ErrWriter, res.Outcome, cfg)
}

// printOutcome writes the outcome and returns ErrParseFailed when it has
// errors.
func printOutcome(stdout, stderr io.Writer, out *cypherparse.Outcome, cfg *cypherparse.Config) error {
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	if cfg.RawJSON {
		if _, err := fmt.Fprintln(stdout, out.Raw); err != nil {
			return err
		}
	} else {
		if _, err := io.WriteString(stdout, out.AST); err != nil {
			return err
		}

		for _, e := range out.Errors {
			if _, err := fmt.Fprintf(stderr, "%s\n%s\n", e, e.Caret()); err != nil {
				return err
			}
		}
	}

	if !out.OK() {
		return ErrParseFailed
	}

	return nil
}
