// Command itemdemo runs the inventory item through its whole lifecycle,
// prints every recorded change and round-trips the item through an event
// stream.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/yreynhout/aggregatesource/pkg/codec"
	"github.com/yreynhout/aggregatesource/pkg/inventory"
	"github.com/yreynhout/aggregatesource/pkg/repository"
	"github.com/yreynhout/aggregatesource/pkg/store/memstore"
	"github.com/yreynhout/aggregatesource/pkg/store/natsstore"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	es, closeStream, err := openStream(ctx, cfg)
	if err != nil {
		slog.Error("open event stream", "error", err)
		os.Exit(1)
	}
	defer closeStream()

	if err := run(ctx, es, os.Stdout); err != nil {
		slog.Error("itemdemo", "error", err)
		os.Exit(1)
	}
}

func openStream(ctx context.Context, cfg config) (repository.EventStream, func(), error) {
	if cfg.Store == storeNATS {
		st, err := natsstore.Open(ctx, cfg.NATSURL, cfg.Stream)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {
			if err := st.Close(); err != nil {
				slog.Warn("close nats", "error", err)
			}
		}, nil
	}
	return memstore.NewEventStream(), func() {}, nil
}

func run(ctx context.Context, es repository.EventStream, out io.Writer) error {
	item, err := inventory.CreateItem(123, "iPad")
	if err != nil {
		return err
	}
	if err := item.ChangeName("iPhone"); err != nil {
		return err
	}
	if err := item.CheckIn(100); err != nil {
		return err
	}
	if err := item.Remove(5); err != nil {
		return err
	}
	if err := item.Deactivate(); err != nil {
		return err
	}

	for _, change := range item.Changes() {
		data, err := codec.JSON.Marshal(change.Data)
		if err != nil {
			return fmt.Errorf("print %s: %w", change.Name, err)
		}
		fmt.Fprintf(out, "%s %s\n", change.Name, data)
	}

	repo := inventory.NewRepository(es)
	id := item.ID().String()
	ctx = repository.ContextWithIdempotencyKey(ctx, "itemdemo-"+id)
	if err := repo.Save(ctx, id, item); err != nil {
		return err
	}

	loaded, err := repo.Load(ctx, id)
	if err != nil {
		return err
	}
	slog.Info("item reloaded",
		"id", loaded.ID(),
		"name", loaded.Name(),
		"count", loaded.Count(),
		"deactivated", loaded.Deactivated(),
	)
	return nil
}
