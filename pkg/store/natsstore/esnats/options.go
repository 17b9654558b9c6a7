package esnats

import (
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

type StoreType jetstream.StorageType

const (
	Disk StoreType = iota
	Memory
)

const defaultDeduplication time.Duration = time.Minute * 2

type EventStreamConfig struct {
	StoreType StoreType
	// Deduplication is the window in which a message ID is stored only once.
	Deduplication time.Duration
}
