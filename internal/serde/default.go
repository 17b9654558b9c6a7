package serde

import (
	"errors"
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"

	"github.com/yreynhout/aggregatesource/internal/typereg"
	"github.com/yreynhout/aggregatesource/pkg/aggregate"
	"github.com/yreynhout/aggregatesource/pkg/codec"
)

type Registry interface {
	Create(name string) (any, error)
	NameFor(in any) (string, error)
}

func NewSerder(reg Registry, c codec.Codec) *serder {
	return &serder{
		codec: c,
		reg:   reg,
	}
}

type serder struct {
	codec codec.Codec
	reg   Registry
}

// Serialize encodes the payload of e. The payload type must be
// registered under the name of e.
func (s *serder) Serialize(e aggregate.Event) ([]byte, error) {
	kind, err := s.reg.NameFor(e.Data)
	if err != nil {
		return nil, fmt.Errorf("serialize %q: %w", e.Name, err)
	}
	if kind != e.Name {
		return nil, fmt.Errorf("serialize %q: payload %T is registered as %q", e.Name, e.Data, kind)
	}
	b, err := s.codec.Marshal(e.Data)
	if err != nil {
		return nil, fmt.Errorf("serialize %q: %w", e.Name, err)
	}
	return b, nil
}

// Deserialize decodes b into the payload type registered for name. A
// name nobody registered yields an event holding the raw bytes, which
// aggregates replay as an unrouted event.
func (s *serder) Deserialize(name string, b []byte) (aggregate.Event, error) {
	out, err := s.reg.Create(name)
	if err != nil {
		if errors.Is(err, typereg.ErrUnknownType) {
			if !s.codec.Valid(b) {
				return aggregate.Event{}, fmt.Errorf("deserialize %q: invalid payload", name)
			}
			raw := make(jsoniter.RawMessage, len(b))
			copy(raw, b)
			return aggregate.NewEvent(name, raw), nil
		}
		return aggregate.Event{}, fmt.Errorf("deserialize: %w", err)
	}
	if err := s.codec.Unmarshal(b, out); err != nil {
		return aggregate.Event{}, fmt.Errorf("deserialize %q: %w", name, err)
	}
	return aggregate.NewEvent(name, reflect.ValueOf(out).Elem().Interface()), nil
}
