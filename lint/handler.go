package lint

import "context"

// Handler receives lint events.
type Handler interface {
	// Event is called for each checked file in input order.
	Event(ctx context.Context, event Event, result *Result) error

	// Err is called for problems not tied to a single file.
	Err(text string) error
}

// MultiHandler fans out events to multiple handlers.
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a handler that dispatches to multiple handlers.
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Event dispatches to all handlers, stopping on first error.
func (m *MultiHandler) Event(ctx context.Context, event Event, result *Result) error {
	for _, h := range m.handlers {
		err := h.Event(ctx, event, result)
		if err != nil {
			return err
		}
	}

	return nil
}

// Err dispatches to all handlers.
func (m *MultiHandler) Err(text string) error {
	for _, h := range m.handlers {
		err := h.Err(text)
		if err != nil {
			return err
		}
	}

	return nil
}

// ResultHandler updates the Result accumulator from events.
type ResultHandler struct{}

// NewResultHandler creates a handler that accumulates results.
func NewResultHandler() *ResultHandler {
	return &ResultHandler{}
}

// Event updates the result accumulator.
func (h *ResultHandler) Event(_ context.Context, event Event, result *Result) error {
	result.Add(event)

	return nil
}

// Err is a no-op for ResultHandler.
func (h *ResultHandler) Err(_ string) error {
	return nil
}
