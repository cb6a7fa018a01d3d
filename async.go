package cypherparse

import "context"

// AsyncResult is delivered by ParseAsync.
type AsyncResult struct {
	Outcome *Outcome
	Err     error
}

// ParseAsync runs Parse on a separate goroutine. The returned channel
// receives exactly one result and is then closed. If ctx is done before the
// parse starts, the result carries ctx.Err(); a parse in progress runs to
// completion.
func ParseAsync(ctx context.Context, query string, opts ...Option) <-chan AsyncResult {
	ch := make(chan AsyncResult, 1)

	go func() {
		defer close(ch)

		if err := ctx.Err(); err != nil {
			ch <- AsyncResult{Err: err}

			return
		}

		out, err := Parse(query, opts...)
		ch <- AsyncResult{Outcome: out, Err: err}
	}()

	return ch
}
