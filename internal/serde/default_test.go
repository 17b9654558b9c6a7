package serde_test

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yreynhout/aggregatesource/internal/serde"
	"github.com/yreynhout/aggregatesource/internal/typereg"
	"github.com/yreynhout/aggregatesource/pkg/aggregate"
	"github.com/yreynhout/aggregatesource/pkg/codec"
)

type checkedIn struct {
	ID    int64 `json:"Id"`
	Count int   `json:"Count"`
}

func newSerder() interface {
	Serialize(aggregate.Event) ([]byte, error)
	Deserialize(string, []byte) (aggregate.Event, error)
} {
	reg := typereg.New()
	reg.Register("checked-in", func() any { return new(checkedIn) })
	return serde.NewSerder(reg, codec.JSON)
}

func TestSerder_RegisteredEventDecodesToItsPayloadValue(t *testing.T) {
	s := newSerder()

	b, err := s.Serialize(aggregate.NewEvent("checked-in", checkedIn{ID: 123, Count: 100}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Id":123,"Count":100}`, string(b))

	e, err := s.Deserialize("checked-in", b)
	require.NoError(t, err)
	assert.Equal(t, "checked-in", e.Name)
	assert.Equal(t, checkedIn{ID: 123, Count: 100}, e.Data)
}

func TestSerder_UnknownEventKeepsRawPayload(t *testing.T) {
	s := newSerder()
	b := []byte(`{"Id":123,"Colour":"red"}`)

	e, err := s.Deserialize("item-painted", b)
	require.NoError(t, err)

	assert.Equal(t, "item-painted", e.Name)
	assert.Equal(t, jsoniter.RawMessage(`{"Id":123,"Colour":"red"}`), e.Data)

	b[2] = 'X'
	assert.Equal(t, jsoniter.RawMessage(`{"Id":123,"Colour":"red"}`), e.Data)
}

func TestSerder_Errors(t *testing.T) {
	s := newSerder()

	_, err := s.Serialize(aggregate.NewEvent("checked-out", checkedIn{ID: 1, Count: 1}))
	assert.Error(t, err)

	_, err = s.Serialize(aggregate.NewEvent("checked-in", map[string]any{"Id": 1}))
	assert.Error(t, err)

	_, err = s.Deserialize("checked-in", []byte(`{"Count":"many"}`))
	assert.Error(t, err)

	_, err = s.Deserialize("item-painted", []byte(`{"Id":`))
	assert.Error(t, err)
}
