package lint

import (
	"sync"
	"time"

	"github.com/rlch/cypherparse"
)

// Result accumulates lint results.
type Result struct {
	mu sync.RWMutex

	StartTime time.Time
	EndTime   time.Time

	Total   int
	Clean   int
	Failed  int
	Errored int

	// Files indexed by path.
	Files map[string]*FileResult

	// Order preserves insertion order for display
	Order []string
}

// NewResult creates an initialized Result.
func NewResult() *Result {
	return &Result{
		StartTime: time.Now(),
		Files:     make(map[string]*FileResult),
	}
}

// Add records an event in the result.
func (r *Result) Add(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fr := &FileResult{
		File:     event.File,
		Status:   event.Action,
		Elapsed:  event.Elapsed,
		Errors:   event.Errors(),
		Failures: event.Failures,
		Error:    event.Error,
	}

	if _, seen := r.Files[event.File]; !seen {
		r.Order = append(r.Order, event.File)
	}

	r.Files[event.File] = fr
	r.Total++

	switch event.Action {
	case ActionChecked:
		r.Clean++
	case ActionFailed:
		r.Failed++
	case ActionError:
		r.Errored++
	}
}

// Finish marks the result as complete.
func (r *Result) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.EndTime = time.Now()
}

// Elapsed returns the total lint time.
func (r *Result) Elapsed() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}

	return r.EndTime.Sub(r.StartTime)
}

// Ok returns true if every file was clean.
func (r *Result) Ok() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.Failed == 0 && r.Errored == 0
}

// FailedFiles returns the results of files that failed or errored, in
// input order.
func (r *Result) FailedFiles() []*FileResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var failed []*FileResult

	for _, path := range r.Order {
		fr := r.Files[path]
		if fr.Status != ActionChecked {
			failed = append(failed, fr)
		}
	}

	return failed
}

// FileResult holds the outcome of checking a single file.
type FileResult struct {
	File     string
	Status   Action
	Elapsed  time.Duration
	Errors   []cypherparse.Error
	Failures []string
	Error    error
}
