// Package tokenstore keeps a revocation list for issued JWTs so that logout
// actually invalidates the token server-side instead of relying on clients
// to discard it.
package tokenstore

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store is consulted by the auth middleware on every request and written by
// the logout endpoint.
type Store interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: client}
}

func (s *RedisStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to remember.
		return nil
	}
	return s.client.Set(ctx, "revoked:"+token, "1", ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, "revoked:"+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
