// Package natsstore connects to NATS and opens a JetStream backed event
// stream.
package natsstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/yreynhout/aggregatesource/pkg/store/natsstore/esnats"
)

type Store struct {
	*esnats.EventStream
	nc *nats.Conn
}

// Open connects to url and creates or updates the stream called name.
func Open(ctx context.Context, url, name string, opts ...Option) (*Store, error) {
	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}

	nc, err := nats.Connect(url, cfg.natsOpts...)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	es, err := esnats.NewEventStream(ctx, js, name, cfg.esCfg)
	if err != nil {
		nc.Close()
		return nil, err
	}
	slog.Info("event stream ready", "stream", name, "url", url)
	return &Store{EventStream: es, nc: nc}, nil
}

// Close drains the connection.
func (s *Store) Close() error {
	return s.nc.Drain()
}
