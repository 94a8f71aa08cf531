package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Connects(t *testing.T) {
	client := setupTestClient(t)
	ctx := context.Background()

	err := client.Ping(ctx).Err()
	require.NoError(t, err)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "not-a-redis-url")
	assert.ErrorContains(t, err, "failed to parse redis URL")
	assert.ErrorIs(t, err, ErrInvalidURL)
}
