// Package memstore is an in-memory event stream.
package memstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yreynhout/aggregatesource/pkg/store"
)

// EventStream keeps every aggregate's messages in memory. Messages whose
// ID was already stored are ignored. It is safe for concurrent use.
type EventStream struct {
	mu      sync.RWMutex
	seq     uint64
	streams map[string][]*store.StoredMsg
	keys    map[string]struct{}
	now     func() time.Time
}

func NewEventStream() *EventStream {
	return &EventStream{
		streams: make(map[string][]*store.StoredMsg),
		keys:    make(map[string]struct{}),
		now:     time.Now,
	}
}

// Save appends msgs to the stream of aggrID and returns the messages
// that were stored.
func (m *EventStream) Save(ctx context.Context, aggrID string, msgs []store.Msg) ([]*store.StoredMsg, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var stored []*store.StoredMsg
	for _, msg := range msgs {
		if _, ok := m.keys[msg.ID]; ok {
			slog.Warn("duplicate event not stored", "kind", msg.Kind, "id", msg.ID, "aggregate_id", aggrID)
			continue
		}
		m.keys[msg.ID] = struct{}{}
		m.seq++
		body := make([]byte, len(msg.Body))
		copy(body, msg.Body)
		sm := &store.StoredMsg{
			Msg:       store.Msg{ID: msg.ID, Kind: msg.Kind, Body: body},
			Sequence:  m.seq,
			Timestamp: m.now(),
		}
		m.streams[aggrID] = append(m.streams[aggrID], sm)
		stored = append(stored, sm)
	}
	return stored, nil
}

// Load returns the messages of aggrID in append order.
func (m *EventStream) Load(ctx context.Context, aggrID string) ([]*store.StoredMsg, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs, ok := m.streams[aggrID]
	if !ok || len(msgs) == 0 {
		return nil, store.ErrNoAggregate
	}
	out := make([]*store.StoredMsg, len(msgs))
	copy(out, msgs)
	return out, nil
}
