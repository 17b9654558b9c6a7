package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yreynhout/aggregatesource/pkg/codec"
)

type payload struct {
	ID    int64  `json:"Id"`
	Name  string `json:"Name"`
	Count int    `json:"Count,omitempty"`
}

func TestJSON_MarshalKeepsFieldOrderAndTags(t *testing.T) {
	b, err := codec.JSON.Marshal(payload{ID: 123, Name: "iPad"})

	require.NoError(t, err)
	assert.Equal(t, `{"Id":123,"Name":"iPad"}`, string(b))
}

func TestJSON_Unmarshal(t *testing.T) {
	var p payload
	err := codec.JSON.Unmarshal([]byte(`{"Id":7,"Name":"iPhone","Count":3}`), &p)

	require.NoError(t, err)
	assert.Equal(t, payload{ID: 7, Name: "iPhone", Count: 3}, p)
}

func TestJSON_Valid(t *testing.T) {
	assert.True(t, codec.JSON.Valid([]byte(`{"Id":1}`)))
	assert.False(t, codec.JSON.Valid([]byte(`{"Id":`)))
}
