package memstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yreynhout/aggregatesource/pkg/store"
	"github.com/yreynhout/aggregatesource/pkg/store/memstore"
)

func TestEventStream_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	es := memstore.NewEventStream()

	stored, err := es.Save(ctx, "123", []store.Msg{
		{ID: "a", Kind: "inventory-item-created", Body: []byte(`{"Id":123}`)},
		{ID: "b", Kind: "items-checked-into-inventory", Body: []byte(`{"Id":123,"Count":1}`)},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, uint64(1), stored[0].Sequence)
	assert.Equal(t, uint64(2), stored[1].Sequence)

	_, err = es.Save(ctx, "456", []store.Msg{{ID: "c", Kind: "inventory-item-created", Body: []byte(`{"Id":456}`)}})
	require.NoError(t, err)

	msgs, err := es.Load(ctx, "123")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "inventory-item-created", msgs[0].Kind)
	assert.Equal(t, "items-checked-into-inventory", msgs[1].Kind)
	assert.False(t, msgs[0].Timestamp.IsZero())
}

func TestEventStream_LoadUnknownAggregate(t *testing.T) {
	_, err := memstore.NewEventStream().Load(context.Background(), "missing")

	require.ErrorIs(t, err, store.ErrNoAggregate)
}

func TestEventStream_IgnoresDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	es := memstore.NewEventStream()
	msg := store.Msg{ID: "a", Kind: "inventory-item-created", Body: []byte(`{}`)}

	_, err := es.Save(ctx, "123", []store.Msg{msg})
	require.NoError(t, err)
	stored, err := es.Save(ctx, "123", []store.Msg{msg})
	require.NoError(t, err)

	assert.Empty(t, stored)
	msgs, err := es.Load(ctx, "123")
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestEventStream_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	es := memstore.NewEventStream()

	_, err := es.Save(ctx, "123", []store.Msg{{ID: "a"}})
	require.ErrorIs(t, err, context.Canceled)
	_, err = es.Load(ctx, "123")
	require.ErrorIs(t, err, context.Canceled)
}
