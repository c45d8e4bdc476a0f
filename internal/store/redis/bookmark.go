package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

// Insert assigns the next ID and stores the bookmark
func (s *Store) Insert(ctx context.Context, b domain.Bookmark) (domain.Bookmark, error) {
	id, err := s.client.Incr(ctx, KeyBookmarkSeq).Result()
	if err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to allocate bookmark id: %w", err)
	}
	b.ID = id

	data, err := json.Marshal(b)
	if err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	// Store bookmark data and index it atomically
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, BookmarkKey(id), data, 0)
		pipe.ZAdd(ctx, KeyBookmarkIDs, redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)})
		return nil
	})
	if err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to save bookmark: %w", err)
	}

	return b, nil
}

// Get retrieves a bookmark from Redis by ID
func (s *Store) Get(ctx context.Context, id int64) (domain.Bookmark, bool, error) {
	data, err := s.client.Get(ctx, BookmarkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Bookmark{}, false, nil
		}
		return domain.Bookmark{}, false, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var b domain.Bookmark
	if err := json.Unmarshal(data, &b); err != nil {
		return domain.Bookmark{}, false, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}
	return b, true, nil
}

// List retrieves all bookmarks ordered by ID
func (s *Store) List(ctx context.Context) ([]domain.Bookmark, error) {
	ids, err := s.client.ZRange(ctx, KeyBookmarkIDs, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark IDs: %w", err)
	}

	if len(ids) == 0 {
		return []domain.Bookmark{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, KeyPrefixBookmark+id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}

	list := make([]domain.Bookmark, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without data (removed between ZRANGE and MGET)
			continue
		}
		var b domain.Bookmark
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bookmark %s: %w", ids[i], err)
		}
		list = append(list, b)
	}

	return list, nil
}

// Delete removes a bookmark from Redis
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, BookmarkKey(id))
		pipe.ZRem(ctx, KeyBookmarkIDs, strconv.FormatInt(id, 10))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return del.Val(), nil
}

// Update overwrites an existing bookmark; missing keys are not created
func (s *Store) Update(ctx context.Context, b domain.Bookmark) (int64, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	ok, err := s.client.SetXX(ctx, BookmarkKey(b.ID), data, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to update bookmark: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return 1, nil
}
