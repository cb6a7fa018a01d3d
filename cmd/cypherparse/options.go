package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse"
)

// parseFlags are shared by every command that parses queries.
func parseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "width",
			Aliases: []string{"w"},
			Usage:   "maximum width of error contexts and dump lines (0 = unlimited)",
			Sources: cli.EnvVars("CYPHERPARSE_WIDTH"),
		},
		&cli.BoolFlag{
			Name:  "dump-ast",
			Usage: "print the parsed syntax tree",
		},
		&cli.BoolFlag{
			Name:  "color",
			Usage: "colorize output (default: when stdout is a terminal)",
		},
		&cli.BoolFlag{
			Name:  "only-statements",
			Usage: "reject client commands such as :help",
		},
		&cli.StringFlag{
			Name:  "align",
			Usage: "error context alignment: center or start",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "config file (default: nearest .cypherparse.yaml)",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
}

// resolveConfig merges flags over the config file over defaults.
func resolveConfig(cmd *cli.Command, logger *zap.Logger) (*cypherparse.Config, error) {
	cfg := &cypherparse.Config{Colorize: isatty.IsTerminal(os.Stdout.Fd())}

	var (
		loaded *cypherparse.Config
		err    error
	)

	if path := cmd.String("config"); path != "" {
		loaded, err = cypherparse.LoadConfigFile(path)
	} else {
		loaded, err = cypherparse.LoadConfig(".")
	}

	switch {
	case errors.Is(err, cypherparse.ErrConfigNotFound):
	case err != nil:
		return nil, fmt.Errorf("loading config: %w", err)
	default:
		logger.Debug("loaded config", zap.Any("config", loaded))

		colorize := cfg.Colorize || loaded.Colorize
		cfg = loaded
		cfg.Colorize = colorize
	}

	if cmd.IsSet("width") {
		cfg.Width = max(cmd.Int("width"), 0)
	}

	if cmd.IsSet("dump-ast") {
		cfg.DumpAST = cmd.Bool("dump-ast")
	}

	if cmd.IsSet("color") {
		cfg.Colorize = cmd.Bool("color")
	}

	if cmd.IsSet("only-statements") {
		cfg.ParseOnlyStatements = cmd.Bool("only-statements")
	}

	if cmd.IsSet("align") {
		if err := cfg.Alignment.UnmarshalText([]byte(cmd.String("align"))); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
