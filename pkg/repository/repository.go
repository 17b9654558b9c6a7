// Package repository loads aggregates from an event stream and saves
// their pending changes back to it.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yreynhout/aggregatesource/internal/serde"
	"github.com/yreynhout/aggregatesource/internal/typereg"
	"github.com/yreynhout/aggregatesource/pkg/aggregate"
	"github.com/yreynhout/aggregatesource/pkg/codec"
	"github.com/yreynhout/aggregatesource/pkg/store"
)

// Aggregate is what the repository needs from an event-sourced entity.
type Aggregate interface {
	Initialize(events []aggregate.Event) error
	HasChanges() bool
	Changes() []aggregate.Event
	ClearChanges()
}

// EventStream appends and reads the encoded events of one aggregate type.
type EventStream interface {
	Save(ctx context.Context, aggrID string, msgs []store.Msg) ([]*store.StoredMsg, error)
	Load(ctx context.Context, aggrID string) ([]*store.StoredMsg, error)
}

type eventSerder interface {
	Serialize(aggregate.Event) ([]byte, error)
	Deserialize(name string, b []byte) (aggregate.Event, error)
}

type Repository[A Aggregate] struct {
	es           EventStream
	newAggregate func() A
	serder       eventSerder
}

// New returns a repository over es. newAggregate must return a fresh,
// uninitialized aggregate on every call.
func New[A Aggregate](es EventStream, newAggregate func() A, opts ...Option) *Repository[A] {
	o := options{codec: codec.JSON}
	for _, opt := range opts {
		opt(&o)
	}

	reg := typereg.New()
	for _, ev := range o.events {
		reg.Register(ev.name, ev.ctor)
	}

	return &Repository[A]{
		es:           es,
		newAggregate: newAggregate,
		serder:       serde.NewSerder(reg, o.codec),
	}
}

// Load rebuilds the aggregate stored under id. It fails with
// store.ErrNoAggregate if nothing was ever saved for id.
func (r *Repository[A]) Load(ctx context.Context, id string) (A, error) {
	var zero A

	msgs, err := r.es.Load(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", id, err)
	}

	history := make([]aggregate.Event, len(msgs))
	for i, msg := range msgs {
		ev, err := r.serder.Deserialize(msg.Kind, msg.Body)
		if err != nil {
			return zero, fmt.Errorf("load %s: %w", id, err)
		}
		history[i] = ev
	}

	aggr := r.newAggregate()
	if err := aggr.Initialize(history); err != nil {
		return zero, fmt.Errorf("load %s: %w", id, err)
	}
	slog.Debug("aggregate loaded", "aggregate_id", id, "events", len(history))
	return aggr, nil
}

// Save appends the pending changes of aggr to the stream of id and
// clears them. When the append fails the changes stay pending. Changes
// the stream already holds under the same message IDs are dropped by the
// stream and still cleared here.
func (r *Repository[A]) Save(ctx context.Context, id string, aggr A) error {
	if !aggr.HasChanges() {
		return nil
	}

	idempKey := idempotencyKeyFromCtxOrRandom(ctx)
	changes := aggr.Changes()
	msgs := make([]store.Msg, len(changes))
	for i, ev := range changes {
		b, err := r.serder.Serialize(ev)
		if err != nil {
			return fmt.Errorf("save %s: %w", id, err)
		}
		msgs[i] = store.Msg{
			ID:   messageID(id, idempKey, i),
			Kind: ev.Name,
			Body: b,
		}
	}

	stored, err := r.es.Save(ctx, id, msgs)
	if err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	aggr.ClearChanges()
	if len(stored) < len(msgs) {
		slog.Warn("changes already committed under idempotency key",
			"aggregate_id", id, "idempotency_key", idempKey, "events", len(msgs), "stored", len(stored))
	}
	slog.Info("changes committed", "aggregate_id", id, "events", len(msgs), "stored", len(stored))
	return nil
}

// Mutate loads the aggregate stored under id, runs modify on it and saves
// the result. When modify fails nothing is saved and its error is
// returned unchanged.
func (r *Repository[A]) Mutate(ctx context.Context, id string, modify func(aggr A) error) error {
	aggr, err := r.Load(ctx, id)
	if err != nil {
		return err
	}
	if err := modify(aggr); err != nil {
		var violation *aggregate.InvariantViolationError
		if errors.As(err, &violation) {
			slog.Warn("command rejected", "aggregate_id", id, "reason", violation.Error())
		}
		return err
	}
	return r.Save(ctx, id, aggr)
}

func messageID(aggrID, idempKey string, i int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "%s/%s/%d", aggrID, idempKey, i)).String()
}
