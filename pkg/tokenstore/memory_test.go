package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRevoke(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	revoked, err := store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "tok", time.Minute))

	revoked, err = store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// A non-positive TTL means the token is already expired.
	require.NoError(t, store.Revoke(ctx, "expired", -time.Second))
	revoked, err := store.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "short", time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	revoked, err = store.IsRevoked(ctx, "short")
	require.NoError(t, err)
	assert.False(t, revoked, "expired entries read as not revoked")
}
