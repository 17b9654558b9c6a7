package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yreynhout/aggregatesource/pkg/inventory"
	"github.com/yreynhout/aggregatesource/pkg/store/memstore"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	es := memstore.NewEventStream()
	var out bytes.Buffer

	require.NoError(t, run(ctx, es, &out))

	assert.Equal(t, `inventory-item-created {"Id":123,"Name":"iPad"}
inventory-item-renamed {"Id":123,"NewName":"iPhone"}
items-checked-into-inventory {"Id":123,"Count":100}
items-removed-from-inventory {"Id":123,"Count":5}
inventory-item-deactivated {"Id":123}
`, out.String())

	item, err := inventory.NewRepository(es).Load(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, 95, item.Count())
	assert.True(t, item.Deactivated())
}

func TestRun_IsIdempotentPerItem(t *testing.T) {
	ctx := context.Background()
	es := memstore.NewEventStream()

	require.NoError(t, run(ctx, es, &bytes.Buffer{}))
	require.NoError(t, run(ctx, es, &bytes.Buffer{}))

	msgs, err := es.Load(ctx, "123")
	require.NoError(t, err)
	assert.Len(t, msgs, 5)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig()

		require.NoError(t, err)
		assert.Equal(t, storeMemory, cfg.Store)
		assert.Equal(t, "inventory-item", cfg.Stream)
	})

	t.Run("nats", func(t *testing.T) {
		t.Setenv("ITEMDEMO_STORE", "nats")
		t.Setenv("ITEMDEMO_NATS_URL", "nats://nats:4222")
		t.Setenv("ITEMDEMO_LOG_LEVEL", "DEBUG")

		cfg, err := loadConfig()

		require.NoError(t, err)
		assert.Equal(t, storeNATS, cfg.Store)
		assert.Equal(t, "nats://nats:4222", cfg.NATSURL)
		assert.Equal(t, "DEBUG", cfg.LogLevel.String())
	})

	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("ITEMDEMO_STORE", "postgres")

		_, err := loadConfig()

		assert.Error(t, err)
	})
}
