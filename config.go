package cypherparse

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config represents the .cypherparse.yaml configuration file.
type Config struct {
	// Width is the maximum width of rendered error contexts and dump lines.
	// Zero means unlimited.
	Width int `yaml:"width,omitempty"`

	DumpAST             bool `yaml:"dump_ast,omitempty"`
	Colorize            bool `yaml:"colorize,omitempty"`
	RawJSON             bool `yaml:"raw_json,omitempty"`
	ParseOnlyStatements bool `yaml:"parse_only_statements,omitempty"`

	// Alignment positions the context window around the error column.
	Alignment Alignment `yaml:"context_align,omitempty"`
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".cypherparse.yaml", ".cypherparse.yml", "cypherparse.yaml", "cypherparse.yml"}

// LoadConfig finds and loads the nearest .cypherparse.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Width < 0 {
		cfg.Width = 0
	}

	return &cfg, nil
}

// options holds the resolved settings for one parse.
type options struct {
	cfg    Config
	logger *zap.Logger
}

// Option configures a parse.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop()}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	return o
}

// WithConfig applies every setting of a loaded config. Options given after
// it override individual fields.
func WithConfig(c *Config) Option {
	return func(o *options) {
		if c != nil {
			o.cfg = *c
		}
	}
}

// WithWidth limits the width of rendered error contexts and dump lines.
// Zero or a negative width means unlimited.
func WithWidth(n int) Option {
	return func(o *options) {
		o.cfg.Width = max(n, 0)
	}
}

// WithDumpAST renders the parsed tree into Outcome.AST.
func WithDumpAST(enabled bool) Option {
	return func(o *options) {
		o.cfg.DumpAST = enabled
	}
}

// WithColorize adds ANSI colors to the rendered tree.
func WithColorize(enabled bool) Option {
	return func(o *options) {
		o.cfg.Colorize = enabled
	}
}

// WithRawJSON stores the JSON encoding of the outcome in Outcome.Raw.
func WithRawJSON(enabled bool) Option {
	return func(o *options) {
		o.cfg.RawJSON = enabled
	}
}

// WithParseOnlyStatements rejects client commands such as ":help".
func WithParseOnlyStatements(enabled bool) Option {
	return func(o *options) {
		o.cfg.ParseOnlyStatements = enabled
	}
}

// WithContextAlignment sets how error contexts are windowed.
func WithContextAlignment(a Alignment) Option {
	return func(o *options) {
		o.cfg.Alignment = a
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
