package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

// Store keeps bookmarks in process memory. Contents are lost on restart;
// it serves tests and BOOKMARKS_STORE=memory.
type Store struct {
	mu        sync.RWMutex
	bookmarks map[int64]domain.Bookmark // ID -> Bookmark
	lastID    int64                     // ids are never reused, even after delete
}

// NewStore creates an empty memory store
func NewStore() *Store {
	return &Store{
		bookmarks: make(map[int64]domain.Bookmark),
	}
}

// List returns all bookmarks ordered by id
func (s *Store) List(_ context.Context) ([]domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]domain.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Get retrieves a bookmark by ID
func (s *Store) Get(_ context.Context, id int64) (domain.Bookmark, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookmarks[id]
	return b, ok, nil
}

// Insert assigns the next id and stores the bookmark
func (s *Store) Insert(_ context.Context, b domain.Bookmark) (domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	b.ID = s.lastID
	s.bookmarks[b.ID] = b
	return b, nil
}

// Delete removes a bookmark
func (s *Store) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookmarks[id]; !ok {
		return 0, nil
	}
	delete(s.bookmarks, id)
	return 1, nil
}

// Update replaces an existing bookmark
func (s *Store) Update(_ context.Context, b domain.Bookmark) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookmarks[b.ID]; !ok {
		return 0, nil
	}
	s.bookmarks[b.ID] = b
	return 1, nil
}

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }
