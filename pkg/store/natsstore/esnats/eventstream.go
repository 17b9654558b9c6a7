// Package esnats stores aggregate events in a NATS JetStream stream, one
// subject per event: <stream>.<aggregate id>.<event name>.
package esnats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/synadia-io/orbit.go/jetstreamext"

	"github.com/yreynhout/aggregatesource/pkg/store"
)

var ErrInvalidToken = errors.New("invalid subject token")

type EventStream struct {
	name string
	EventStreamConfig
	js jetstream.JetStream
}

// NewEventStream creates or updates the stream called name and returns
// an event stream writing to it.
func NewEventStream(ctx context.Context, js jetstream.JetStream, name string, cfg EventStreamConfig) (*EventStream, error) {
	if err := checkToken(name); err != nil {
		return nil, fmt.Errorf("new event stream: %w", err)
	}
	if cfg.Deduplication == 0 {
		cfg.Deduplication = defaultDeduplication
	}
	stream := &EventStream{name: name, js: js, EventStreamConfig: cfg}

	_, err := stream.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Subjects:           []string{stream.allSubjects()},
		Name:               name,
		Storage:            jetstream.StorageType(cfg.StoreType),
		Duplicates:         cfg.Deduplication,
		AllowDirect:        true,
		AllowAtomicPublish: true,
	})
	if err != nil {
		return nil, fmt.Errorf("new event stream %s: %w", name, err)
	}

	return stream, nil
}

func checkToken(tok string) error {
	if tok == "" || strings.ContainsAny(tok, ".*> \t\r\n") {
		return fmt.Errorf("%w %q", ErrInvalidToken, tok)
	}
	return nil
}

func (s *EventStream) subjectNameForID(agrid string) string {
	return fmt.Sprintf("%s.%s", s.name, agrid)
}

func (s *EventStream) allSubjectsForID(agrid string) string {
	return fmt.Sprintf("%s.%s.>", s.name, agrid)
}

func (s *EventStream) allSubjects() string {
	return fmt.Sprintf("%s.>", s.name)
}

// Save publishes msgs to the subjects of aggrID. Several messages are
// published as one atomic batch.
func (s *EventStream) Save(ctx context.Context, aggrID string, msgs []store.Msg) ([]*store.StoredMsg, error) {
	if len(msgs) == 0 {
		return nil, nil
	}
	if err := checkToken(aggrID); err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}

	nmsgs := make([]*nats.Msg, len(msgs))
	for i, msg := range msgs {
		if err := checkToken(msg.Kind); err != nil {
			return nil, fmt.Errorf("save: %w", err)
		}
		nmsg := nats.NewMsg(fmt.Sprintf("%s.%s", s.subjectNameForID(aggrID), msg.Kind))
		nmsg.Data = msg.Body
		nmsg.Header.Add(jetstream.MsgIDHeader, msg.ID)
		nmsgs[i] = nmsg
	}

	if len(nmsgs) == 1 {
		ack, err := s.js.PublishMsg(ctx, nmsgs[0])
		if err != nil {
			return nil, fmt.Errorf("save: %w", err)
		}
		if ack.Duplicate {
			slog.Warn("duplicate event not stored", "kind", msgs[0].Kind, "subject", s.subjectNameForID(aggrID), "stream", s.name)
			return nil, nil
		}
		slog.Info("event stored", "kind", msgs[0].Kind, "subject", s.subjectNameForID(aggrID), "stream", s.name)
		return []*store.StoredMsg{{Msg: msgs[0], Sequence: ack.Sequence}}, nil
	}

	batchAck, err := jetstreamext.PublishMsgBatch(ctx, s.js, nmsgs, jetstreamext.BatchFlowControl{AckEvery: 1, AckTimeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	// The batch is stored contiguously and acknowledged with its last sequence.
	first := batchAck.Sequence - uint64(len(msgs)-1)
	outmsgs := make([]*store.StoredMsg, len(msgs))
	for i, msg := range msgs {
		outmsgs[i] = &store.StoredMsg{Msg: msg, Sequence: first + uint64(i)}
		slog.Info("event stored", "kind", msg.Kind, "subject", s.subjectNameForID(aggrID), "stream", s.name)
	}

	return outmsgs, nil
}

// Load returns every message stored for aggrID in stream order.
func (s *EventStream) Load(ctx context.Context, aggrID string) ([]*store.StoredMsg, error) {
	if err := checkToken(aggrID); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	msgs, err := jetstreamext.GetBatch(ctx,
		s.js, s.name, math.MaxInt, jetstreamext.GetBatchSubject(s.allSubjectsForID(aggrID)),
		jetstreamext.GetBatchSeq(1))
	if err != nil {
		if errors.Is(err, jetstreamext.ErrNoMessages) {
			return nil, store.ErrNoAggregate
		}
		return nil, fmt.Errorf("get events: %w", err)
	}

	var evts []*store.StoredMsg
	for msg, err := range msgs {
		if err != nil {
			if errors.Is(err, jetstreamext.ErrNoMessages) {
				break
			}
			return nil, fmt.Errorf("load %s: %w", aggrID, err)
		}
		event, err := storedMsgFrom(jsRawMsgAdapter{msg})
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", aggrID, err)
		}
		evts = append(evts, event)
	}
	if len(evts) == 0 {
		return nil, store.ErrNoAggregate
	}

	return evts, nil
}
