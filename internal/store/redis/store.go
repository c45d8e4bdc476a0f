package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Store implements the bookmark Storage Adapter on Redis.
//
// Each bookmark is a JSON document under bookmarks:bookmark:<id>. IDs come
// from INCR on bookmarks:seq, so they are never reused, and are indexed in the
// bookmarks:ids sorted set to give List a stable order.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}
