package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mkaniukov/carwash-crm/internal/config"
)

func TestNewClient(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client, err := NewClient(context.Background(), config.RedisConfig{Address: s.Addr(), PoolSize: 2})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	value, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}

func TestNewClient_Unreachable(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	addr := s.Addr()
	s.Close()

	_, err = NewClient(context.Background(), config.RedisConfig{Address: addr})
	assert.Error(t, err)
}
