// Package lint checks Cypher query files for syntax errors and evaluates
// assertions over their parse outcomes.
package lint

import (
	"time"

	"github.com/rlch/cypherparse"
)

// Action represents the type of lint event.
type Action string

// Action constants for lint events.
const (
	ActionChecked Action = "checked"
	ActionFailed  Action = "failed"
	ActionError   Action = "error"
)

// Event is emitted once per checked file.
type Event struct {
	Time    time.Time     // When the check finished
	Action  Action        // What happened
	File    string        // Source file path
	Elapsed time.Duration // Time taken to read and parse
	Error   error         // Read or evaluation failure (ActionError)

	// Outcome is the parse result; nil when the file could not be read.
	Outcome *cypherparse.Outcome

	// Failures lists the assertions that evaluated to false.
	Failures []string
}

// Errors returns the parse errors of the checked file.
func (e Event) Errors() []cypherparse.Error {
	if e.Outcome == nil {
		return nil
	}

	return e.Outcome.Errors
}
