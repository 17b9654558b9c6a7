package main

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

const (
	storeMemory = "memory"
	storeNATS   = "nats"
)

type config struct {
	Store    string     `env:"ITEMDEMO_STORE"     envDefault:"memory"`
	NATSURL  string     `env:"ITEMDEMO_NATS_URL"  envDefault:"nats://127.0.0.1:4222"`
	Stream   string     `env:"ITEMDEMO_STREAM"    envDefault:"inventory-item"`
	LogLevel slog.Level `env:"ITEMDEMO_LOG_LEVEL" envDefault:"INFO"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Store {
	case storeMemory, storeNATS:
	default:
		return config{}, fmt.Errorf("unknown store %q, want %q or %q", cfg.Store, storeMemory, storeNATS)
	}
	return cfg, nil
}
