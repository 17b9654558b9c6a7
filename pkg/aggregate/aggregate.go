// Package aggregate provides the event-sourced aggregate root.
//
// A concrete aggregate keeps a Root as an unexported field, routes each
// event name it understands to a handler in its constructor, and changes
// its own state only through Apply. History loaded from a store is
// replayed with Initialize, which runs the same handlers without
// recording anything.
package aggregate

import "fmt"

// Handler mutates aggregate state from an event payload.
type Handler func(data any) error

// Root tracks the handlers and the uncommitted changes of one aggregate
// instance. The zero value is ready to use.
type Root struct {
	handlers map[string]Handler
	changes  []Event
	live     bool
}

// Route registers h for events named name.
// It panics if name is already routed on r.
func (r *Root) Route(name string, h Handler) {
	if r.handlers == nil {
		r.handlers = make(map[string]Handler)
	}
	if _, ok := r.handlers[name]; ok {
		panic(fmt.Errorf("%w: %q", ErrDuplicateRoute, name))
	}
	r.handlers[name] = h
}

// Route registers fn for events named name whose payload is an E.
func Route[E any](r *Root, name string, fn func(E)) {
	r.Route(name, func(data any) error {
		ev, ok := data.(E)
		if !ok {
			return fmt.Errorf("%w: %q carries %T, want %T", ErrUnexpectedPayload, name, data, ev)
		}
		fn(ev)
		return nil
	})
}

// Initialize rebuilds state by replaying events in order. Nothing is
// recorded. It may only be called once, on an instance that has neither
// replayed nor applied anything.
func (r *Root) Initialize(events []Event) error {
	if len(r.changes) > 0 {
		return fmt.Errorf("%w: cannot be called on an instance with changes", ErrInvalidRehydration)
	}
	if r.live {
		return fmt.Errorf("%w: instance is already initialized", ErrInvalidRehydration)
	}
	r.live = true
	for i, e := range events {
		if err := r.play(e); err != nil {
			return fmt.Errorf("initialize: event %d: %w", i, err)
		}
	}
	return nil
}

// Apply plays e against the aggregate state and records it as a change.
// If the handler fails, e is not recorded.
func (r *Root) Apply(e Event) error {
	if err := r.play(e); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	r.live = true
	r.changes = append(r.changes, e)
	return nil
}

// HasChanges reports whether any change is pending.
func (r *Root) HasChanges() bool {
	return len(r.changes) > 0
}

// Changes returns the pending changes in the order they were applied.
func (r *Root) Changes() []Event {
	out := make([]Event, len(r.changes))
	copy(out, r.changes)
	return out
}

// ClearChanges drops the pending changes, typically after they have been
// committed to a store.
func (r *Root) ClearChanges() {
	r.changes = r.changes[:0]
}

// Events without a route are skipped so that history written by newer
// code still replays.
func (r *Root) play(e Event) error {
	h, ok := r.handlers[e.Name]
	if !ok {
		return nil
	}
	return h(e.Data)
}
