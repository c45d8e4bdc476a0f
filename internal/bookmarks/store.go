package bookmarks

import (
	"context"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

// Store is the Storage Adapter capability set. Implementations translate
// calls into store operations and carry no business rules.
type Store interface {
	// List returns every stored bookmark ordered by id.
	List(ctx context.Context) ([]domain.Bookmark, error)

	// Get returns the bookmark with the given id; found is false when absent.
	Get(ctx context.Context, id int64) (b domain.Bookmark, found bool, err error)

	// Insert stores b under a newly assigned id and returns the stored record.
	Insert(ctx context.Context, b domain.Bookmark) (domain.Bookmark, error)

	// Delete removes the bookmark and returns the number of removed rows.
	Delete(ctx context.Context, id int64) (int64, error)

	// Update overwrites every field of the bookmark with b.ID and returns the
	// number of affected rows.
	Update(ctx context.Context, b domain.Bookmark) (int64, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	Close() error
}
