package events

import (
	"fmt"
	"log/slog"
	"sync"
)

// BeforeHandler runs ahead of an event's default action. Returning an
// error vetoes the action; the error is propagated to the caller that
// triggered the event.
type BeforeHandler func(data map[string]interface{}) error

// AfterHandler runs once an event's default action has completed. Its
// return value cannot undo the action, so errors are logged and
// swallowed rather than propagated.
type AfterHandler func(data map[string]interface{}) error

// Emitter is a named-event dispatcher with before/after interception,
// scoped to a single owning object (a node, a node space) rather than
// broadcast process-wide.
type Emitter struct {
	mu     sync.Mutex
	before map[string][]BeforeHandler
	after  map[string][]AfterHandler
	logger *slog.Logger
}

// New creates an emitter that logs swallowed after-handler errors with
// logger. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		before: make(map[string][]BeforeHandler),
		after:  make(map[string][]AfterHandler),
		logger: logger,
	}
}

// OnBefore registers handler to run before event fires.
func (e *Emitter) OnBefore(event string, handler BeforeHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.before[event] = append(e.before[event], handler)
}

// OnAfter registers handler to run after event fires.
func (e *Emitter) OnAfter(event string, handler AfterHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.after[event] = append(e.after[event], handler)
}

// Before runs every before-handler registered for event, in registration
// order, stopping at and returning the first error.
func (e *Emitter) Before(event string, data map[string]interface{}) error {
	e.mu.Lock()
	handlers := append([]BeforeHandler(nil), e.before[event]...)
	e.mu.Unlock()

	for _, h := range handlers {
		if err := h(data); err != nil {
			return fmt.Errorf("before_%s: %w", event, err)
		}
	}
	return nil
}

// After runs every after-handler registered for event, in registration
// order. Handler errors are logged and otherwise ignored.
func (e *Emitter) After(event string, data map[string]interface{}) {
	e.mu.Lock()
	handlers := append([]AfterHandler(nil), e.after[event]...)
	e.mu.Unlock()

	for _, h := range handlers {
		if err := h(data); err != nil {
			e.logger.Error("after handler failed", "event", event, "error", err)
		}
	}
}

// HasBefore reports whether any before-handler is registered for event.
func (e *Emitter) HasBefore(event string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.before[event]) > 0
}

// HasAfter reports whether any after-handler is registered for event.
func (e *Emitter) HasAfter(event string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.after[event]) > 0
}
