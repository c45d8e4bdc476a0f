package bookmarks

import (
	"context"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// Service is the bookmark resource service. It validates input, decides
// existence semantics and computes partial updates; persistence goes through
// the Store on every call, nothing is cached between requests.
type Service struct {
	store  Store
	logger logger.Logger
}

// NewService creates a new bookmark service
func NewService(store Store, log logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

// ListAll returns every stored bookmark. An empty store yields an empty slice.
func (s *Service) ListAll(ctx context.Context) ([]domain.Bookmark, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "list", Err: err}
	}
	if list == nil {
		list = []domain.Bookmark{}
	}
	return list, nil
}

// GetByID resolves a textual id (as found in a URL path) to a bookmark.
func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Bookmark, error) {
	id, ok := domain.ParseID(rawID)
	if !ok {
		return domain.Bookmark{}, domain.ErrNotFound
	}
	return s.get(ctx, id)
}

// Create validates the fields, inserts the bookmark and returns the stored
// record including its store-assigned id.
func (s *Service) Create(ctx context.Context, in domain.Fields) (domain.Bookmark, error) {
	b, err := domain.ValidateNew(in)
	if err != nil {
		return domain.Bookmark{}, err
	}

	created, err := s.store.Insert(ctx, b)
	if err != nil {
		return domain.Bookmark{}, &domain.StorageError{Op: "insert", Err: err}
	}

	s.logger.Info("bookmark created",
		logger.Int64("id", created.ID))
	return created, nil
}

// Delete removes an existing bookmark. Deleting an unknown id is an error.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, ok := domain.ParseID(rawID)
	if !ok {
		return domain.ErrNotFound
	}
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return &domain.StorageError{Op: "delete", Err: err}
	}
	if n == 0 {
		// removed concurrently between lookup and delete
		return domain.ErrNotFound
	}

	s.logger.Info("bookmark deleted",
		logger.Int64("id", id))
	return nil
}

// Update applies a partial update. Validation runs before the existence
// check; the read-modify-write is not atomic against concurrent writers.
func (s *Service) Update(ctx context.Context, rawID string, in domain.Fields) error {
	if err := domain.ValidatePatch(in); err != nil {
		return err
	}

	id, ok := domain.ParseID(rawID)
	if !ok {
		return domain.ErrNotFound
	}
	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	merged, err := domain.Merge(current, in)
	if err != nil {
		return err
	}

	n, err := s.store.Update(ctx, merged)
	if err != nil {
		return &domain.StorageError{Op: "update", Err: err}
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	s.logger.Debug("bookmark updated",
		logger.Int64("id", id))
	return nil
}

// Ping reports whether the underlying store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return &domain.StorageError{Op: "ping", Err: err}
	}
	return nil
}

func (s *Service) get(ctx context.Context, id int64) (domain.Bookmark, error) {
	b, found, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Bookmark{}, &domain.StorageError{Op: "get", Err: err}
	}
	if !found {
		return domain.Bookmark{}, domain.ErrNotFound
	}
	return b, nil
}
