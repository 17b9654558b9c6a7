package esnats

import (
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/yreynhout/aggregatesource/pkg/store"
)

type natsMessage interface {
	Headers() nats.Header
	Data() []byte
	Subject() string
	Seq() uint64
	Timestamp() time.Time
}

type jsRawMsgAdapter struct {
	*jetstream.RawStreamMsg
}

func (j jsRawMsgAdapter) Headers() nats.Header {
	return j.RawStreamMsg.Header
}

func (j jsRawMsgAdapter) Timestamp() time.Time {
	return j.RawStreamMsg.Time
}

func (j jsRawMsgAdapter) Data() []byte {
	return j.RawStreamMsg.Data
}

func (j jsRawMsgAdapter) Subject() string {
	return j.RawStreamMsg.Subject
}

func (j jsRawMsgAdapter) Seq() uint64 {
	return j.RawStreamMsg.Sequence
}

// storedMsgFrom reads the event kind from the last subject token,
// <stream>.<aggregate id>.<kind>.
func storedMsgFrom(msg natsMessage) (*store.StoredMsg, error) {
	subjectParts := strings.Split(msg.Subject(), ".")
	if len(subjectParts) != 3 {
		return nil, fmt.Errorf("unexpected subject %q", msg.Subject())
	}
	return &store.StoredMsg{
		Msg: store.Msg{
			ID:   msg.Headers().Get(jetstream.MsgIDHeader),
			Kind: subjectParts[2],
			Body: msg.Data(),
		},
		Sequence:  msg.Seq(),
		Timestamp: msg.Timestamp(),
	}, nil
}
