package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PruneIndex removes ids from the bookmarks:ids sorted set whose document no
// longer exists (e.g. keys deleted or expired outside the service).
// It returns the number of entries removed.
func (s *Store) PruneIndex(ctx context.Context) (int, error) {
	ids, err := s.client.ZRange(ctx, KeyBookmarkIDs, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get bookmark IDs: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	exists := make([]*redis.IntCmd, len(ids))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			exists[i] = pipe.Exists(ctx, KeyPrefixBookmark+id)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to check bookmark keys: %w", err)
	}

	dangling := make([]interface{}, 0)
	for i, cmd := range exists {
		if cmd.Val() == 0 {
			dangling = append(dangling, ids[i])
		}
	}
	if len(dangling) == 0 {
		return 0, nil
	}

	removed, err := s.client.ZRem(ctx, KeyBookmarkIDs, dangling...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to prune bookmark index: %w", err)
	}
	return int(removed), nil
}
