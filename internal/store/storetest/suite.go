// Package storetest holds the behaviour every Storage Adapter must share.
// Adapter packages call Run from their own tests with a factory returning an
// empty store.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/bookmarks/internal/bookmarks"
	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

// Factory returns a fresh, empty store. Cleanup is registered on t.
type Factory func(t *testing.T) bookmarks.Store

func fixtures() []domain.Bookmark {
	return []domain.Bookmark{
		{Title: "test", URL: "https://www.runningahead.com/maps", Description: "map routes", Rating: 5},
		{Title: "google", URL: "https://google.com", Description: "search engine", Rating: 2},
		{Title: "weather", URL: "https://weather.gov", Description: "", Rating: 2},
		{Title: "onthegomap", URL: "https://onthegomap.com/#/create", Description: "make map", Rating: 2.5},
	}
}

// Run executes the contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		s := newStore(t)
		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("insert assigns unique ids and lists in order", func(t *testing.T) {
		s := newStore(t)
		var inserted []domain.Bookmark
		seen := map[int64]bool{}
		for _, b := range fixtures() {
			got, err := s.Insert(ctx, b)
			require.NoError(t, err)
			require.NotZero(t, got.ID)
			require.False(t, seen[got.ID], "duplicate id %d", got.ID)
			seen[got.ID] = true

			b.ID = got.ID
			assert.Equal(t, b, got)
			inserted = append(inserted, got)
		}

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, inserted, list)
	})

	t.Run("get", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Insert(ctx, fixtures()[1])
		require.NoError(t, err)

		got, found, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, created, got)

		_, found, err = s.Get(ctx, created.ID+1000)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Insert(ctx, fixtures()[0])
		require.NoError(t, err)

		n, err := s.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		_, found, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, found)

		n, err = s.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		s := newStore(t)
		first, err := s.Insert(ctx, fixtures()[0])
		require.NoError(t, err)
		_, err = s.Delete(ctx, first.ID)
		require.NoError(t, err)

		second, err := s.Insert(ctx, fixtures()[1])
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("update", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Insert(ctx, fixtures()[2])
		require.NoError(t, err)

		changed := created
		changed.Title = "forecast"
		changed.Description = "noaa"
		changed.Rating = 4
		n, err := s.Update(ctx, changed)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		got, found, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, changed, got)

		missing := changed
		missing.ID = created.ID + 1000
		n, err = s.Update(ctx, missing)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)

		_, found, err = s.Get(ctx, missing.ID)
		require.NoError(t, err)
		assert.False(t, found, "update must not create rows")
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(ctx))
	})
}
