package natsstore

import (
	"time"

	"github.com/nats-io/nats.go"

	"github.com/yreynhout/aggregatesource/pkg/store/natsstore/esnats"
)

type options struct {
	esCfg    esnats.EventStreamConfig
	natsOpts []nats.Option
}

type Option func(o *options)

func WithInMemory() Option {
	return func(o *options) {
		o.esCfg.StoreType = esnats.Memory
	}
}

func WithDeduplication(duration time.Duration) Option {
	return func(o *options) {
		o.esCfg.Deduplication = duration
	}
}

// WithNATSOptions passes opts to nats.Connect.
func WithNATSOptions(opts ...nats.Option) Option {
	return func(o *options) {
		o.natsOpts = append(o.natsOpts, opts...)
	}
}
