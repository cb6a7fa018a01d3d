package lint

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/boyter/gocodewalker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rlch/cypherparse"
)

// DefaultExtensions are the file extensions collected from directories.
var DefaultExtensions = []string{"cypher", "cql", "cyp"}

// Runner checks query files.
type Runner struct {
	parseOpts   []cypherparse.Option
	concurrency int
	extensions  []string
	assertions  []string
	handler     Handler
	logger      *zap.Logger

	errMu sync.Mutex
}

// Option configures a Runner.
type Option func(*Runner)

// WithParseOptions sets the options passed to every parse.
func WithParseOptions(opts ...cypherparse.Option) Option {
	return func(r *Runner) {
		r.parseOpts = append(r.parseOpts, opts...)
	}
}

// WithConcurrency bounds the number of files parsed at once.
// Zero or less uses GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithExtensions sets the extensions collected from directories, with or
// without the leading dot.
func WithExtensions(exts ...string) Option {
	return func(r *Runner) {
		r.extensions = r.extensions[:0]
		for _, ext := range exts {
			r.extensions = append(r.extensions, strings.TrimPrefix(ext, "."))
		}
	}
}

// WithAssertions adds expr-lang assertions evaluated against each file's
// Env. A file fails when any assertion is false.
func WithAssertions(exprs ...string) Option {
	return func(r *Runner) {
		r.assertions = append(r.assertions, exprs...)
	}
}

// WithHandler sets the event handler.
func WithHandler(h Handler) Option {
	return func(r *Runner) {
		r.handler = h
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// New creates a Runner with the given options.
func New(opts ...Option) *Runner {
	r := &Runner{
		extensions: slices.Clone(DefaultExtensions),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.concurrency <= 0 {
		r.concurrency = runtime.GOMAXPROCS(0)
	}

	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	return r
}

// Collect expands paths into a sorted, de-duplicated list of files.
// Files are taken as given; directories are walked for files with a known
// extension, respecting .gitignore.
func (r *Runner) Collect(paths []string) ([]string, error) {
	seen := make(map[string]struct{})

	var files []string

	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(path)

			continue
		}

		err = r.walkDir(path, r.extensions, add)
		if err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	slices.Sort(files)

	return files, nil
}

// walkDir walks a directory for files with the given extensions, or all
// files when there are none, respecting .gitignore. Entries the walker
// cannot read are reported to the handler and skipped.
func (r *Runner) walkDir(root string, extensions []string, callback func(path string)) error {
	fileListQueue := make(chan *gocodewalker.File, 100)

	fileWalker := gocodewalker.NewFileWalker(root, fileListQueue)
	fileWalker.AllowListExtensions = extensions

	var (
		mu      sync.Mutex
		walkErr error
	)

	fileWalker.SetErrorHandler(func(e error) bool {
		if err := r.warn(e); err != nil {
			mu.Lock()
			walkErr = err
			mu.Unlock()

			return false
		}

		return true
	})

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for f := range fileListQueue {
			callback(f.Location)
		}
	}()

	if err := fileWalker.Start(); err != nil {
		return err
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()

	return walkErr
}

// warn passes a problem that is not tied to a single file to the handler.
func (r *Runner) warn(err error) error {
	r.logger.Warn("lint warning", zap.Error(err))

	if r.handler == nil {
		return nil
	}

	r.errMu.Lock()
	defer r.errMu.Unlock()

	return r.handler.Err("warning: " + err.Error())
}

// Run checks every file and returns the accumulated result. Files are
// parsed concurrently; events are delivered in input order.
func (r *Runner) Run(ctx context.Context, files []string) (*Result, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	assertions, err := compileAssertions(r.assertions)
	if err != nil {
		return nil, err
	}

	events := make([]Event, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			events[i] = r.check(file, assertions)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := NewResult()

	handlers := []Handler{NewResultHandler()}
	if r.handler != nil {
		handlers = append(handlers, r.handler)
	}

	handler := NewMultiHandler(handlers...)

	for _, event := range events {
		if err := handler.Event(ctx, event, result); err != nil {
			return result, err
		}
	}

	result.Finish()

	r.logger.Debug("lint finished",
		zap.Int("files", result.Total),
		zap.Int("failed", result.Failed),
		zap.Int("errored", result.Errored),
		zap.Duration("elapsed", result.Elapsed()))

	return result, nil
}

func (r *Runner) check(file string, assertions []assertion) (event Event) {
	start := time.Now()

	event.File = file

	defer func() {
		event.Time = time.Now()
		event.Elapsed = time.Since(start)
	}()

	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		event.Action = ActionError
		event.Error = err

		return event
	}

	out, err := cypherparse.Parse(string(data), r.parseOpts...)

	var perr *cypherparse.ParseError
	if err != nil && !errors.As(err, &perr) {
		event.Action = ActionError
		event.Error = err

		return event
	}

	event.Outcome = out

	env := newEnv(file, out)

	for _, a := range assertions {
		ok, err := a.eval(env)
		if err != nil {
			event.Action = ActionError
			event.Error = err

			return event
		}

		if !ok {
			event.Failures = append(event.Failures, a.source)
		}
	}

	event.Action = ActionChecked
	if !out.OK() || len(event.Failures) > 0 {
		event.Action = ActionFailed
	}

	r.logger.Debug("checked file",
		zap.String("file", file),
		zap.String("action", string(event.Action)),
		zap.Int("errors", len(out.Errors)))

	return event
}
