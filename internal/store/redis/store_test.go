package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/bookmarks/internal/bookmarks"
	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/store/storetest"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewStore(client)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) bookmarks.Store {
		s, _ := newTestStore(t)
		return s
	})
}

func TestListSkipsDanglingIndexEntries(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	a, err := s.Insert(ctx, domain.Bookmark{Title: "a", URL: "https://a", Rating: 1})
	require.NoError(t, err)
	b, err := s.Insert(ctx, domain.Bookmark{Title: "b", URL: "https://b", Rating: 2})
	require.NoError(t, err)

	mr.Del(BookmarkKey(a.ID))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Bookmark{b}, list)
}

func TestInsertWritesIndexAndDocument(t *testing.T) {
	s, mr := newTestStore(t)

	created, err := s.Insert(context.Background(), domain.Bookmark{Title: "a", URL: "https://a", Rating: 4})
	require.NoError(t, err)

	assert.True(t, mr.Exists(BookmarkKey(created.ID)))
	members, err := mr.ZMembers(KeyBookmarkIDs)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, members)

	seq, err := mr.Get(KeyBookmarkSeq)
	require.NoError(t, err)
	assert.Equal(t, "1", seq)
}

func TestStorePingFailsWhenServerDown(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}

func TestPruneIndexRemovesDanglingIDs(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	a, err := s.Insert(ctx, domain.Bookmark{Title: "a", URL: "https://a", Rating: 1})
	require.NoError(t, err)
	_, err = s.Insert(ctx, domain.Bookmark{Title: "b", URL: "https://b", Rating: 2})
	require.NoError(t, err)

	n, err := s.PruneIndex(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	mr.Del(BookmarkKey(a.ID))

	n, err = s.PruneIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	members, err := mr.ZMembers(KeyBookmarkIDs)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, members)
}
