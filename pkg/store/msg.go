// Package store holds the records exchanged between the repository and
// event stream drivers.
package store

import "time"

// Msg is an encoded event ready to be appended to an aggregate's stream.
type Msg struct {
	ID   string
	Kind string
	Body []byte
}

// StoredMsg is a Msg as read back from a stream.
type StoredMsg struct {
	Msg
	Sequence  uint64
	Timestamp time.Time
}
