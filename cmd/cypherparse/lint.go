package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/lint"
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Check query files for syntax errors",
		ArgsUsage: "[files or directories...]",
		Flags: append(parseFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: text, json or lsp",
				Value:   lint.FormatText,
			},
			&cli.StringSliceFlag{
				Name:    "expect",
				Aliases: []string{"e"},
				Usage:   "assertion every file must satisfy, e.g. 'NNodes < 500'",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "files parsed in parallel (default: GOMAXPROCS)",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "re-run when query files change",
			},
		),
		Action: runLint,
	}
}

func runLint(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return err
	}

	defer func() {
		_ = logger.Sync()
	}()

	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, err := resolveConfig(cmd, logger)
	if err != nil {
		return err
	}

	formatter, err := lint.NewFormatter(cmd.String("format"), os.Stdout, cfg.Colorize)
	if err != nil {
		return err
	}

	handler := lint.NewFormatHandler(formatter, os.Stderr)

	runner := lint.New(
		lint.WithParseOptions(cypherparse.WithConfig(cfg), cypherparse.WithLogger(logger)),
		lint.WithAssertions(cmd.StringSlice("expect")...),
		lint.WithConcurrency(cmd.Int("jobs")),
		lint.WithHandler(handler),
		lint.WithLogger(logger),
	)

	once := func(ctx context.Context) error {
		files, err := runner.Collect(paths)
		if err != nil {
			return err
		}

		result, err := runner.Run(ctx, files)
		if err != nil {
			return err
		}

		if err := handler.Summary(result); err != nil {
			return err
		}

		if !result.Ok() {
			return lint.ErrLintFailed
		}

		return nil
	}

	if !cmd.Bool("watch") {
		return once(ctx)
	}

	return runner.Watch(ctx, paths, func(ctx context.Context) error {
		err := once(ctx)
		if errors.Is(err, lint.ErrLintFailed) || errors.Is(err, lint.ErrNoFiles) {
			logger.Debug("lint run finished with failures", zap.Error(err))

			return nil
		}

		return err
	})
}
