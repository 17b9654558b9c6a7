package esnats

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredMsgFrom(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	raw := &jetstream.RawStreamMsg{
		Subject:  "inventory-item.123.items-checked-into-inventory",
		Sequence: 42,
		Header:   nats.Header{jetstream.MsgIDHeader: []string{"msg-1"}},
		Data:     []byte(`{"Id":123,"Count":100}`),
		Time:     now,
	}

	msg, err := storedMsgFrom(jsRawMsgAdapter{raw})

	require.NoError(t, err)
	assert.Equal(t, "msg-1", msg.ID)
	assert.Equal(t, "items-checked-into-inventory", msg.Kind)
	assert.Equal(t, []byte(`{"Id":123,"Count":100}`), msg.Body)
	assert.Equal(t, uint64(42), msg.Sequence)
	assert.Equal(t, now, msg.Timestamp)
}

func TestStoredMsgFrom_UnexpectedSubject(t *testing.T) {
	_, err := storedMsgFrom(jsRawMsgAdapter{&jetstream.RawStreamMsg{Subject: "inventory-item.123"}})

	assert.Error(t, err)
}

func TestSubjects(t *testing.T) {
	s := &EventStream{name: "inventory-item"}

	assert.Equal(t, "inventory-item.>", s.allSubjects())
	assert.Equal(t, "inventory-item.123", s.subjectNameForID("123"))
	assert.Equal(t, "inventory-item.123.>", s.allSubjectsForID("123"))
}

func TestCheckToken(t *testing.T) {
	for _, ok := range []string{"123", "inventory-item-created", "inventory_item"} {
		assert.NoError(t, checkToken(ok), ok)
	}
	for _, bad := range []string{"", "a.b", "a*", "a>", "a b"} {
		assert.ErrorIs(t, checkToken(bad), ErrInvalidToken, bad)
	}
}
