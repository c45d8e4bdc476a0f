package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

// Store implements the bookmark Storage Adapter over postgres or sqlite.
// Queries are written with '?' placeholders and rebound per driver.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an existing connection. The schema is assumed to exist.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// bookmarkRow mirrors the bookmarks table; description is nullable.
type bookmarkRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	URL         string         `db:"url"`
	Description sql.NullString `db:"description"`
	Rating      float64        `db:"rating"`
}

func (r bookmarkRow) toDomain() domain.Bookmark {
	return domain.Bookmark{
		ID:          r.ID,
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description.String,
		Rating:      r.Rating,
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const columns = `id, title, url, description, rating`

// List returns all bookmarks ordered by id
func (s *Store) List(ctx context.Context) ([]domain.Bookmark, error) {
	var rows []bookmarkRow
	query := s.db.Rebind(`SELECT ` + columns + ` FROM bookmarks ORDER BY id`)
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	list := make([]domain.Bookmark, 0, len(rows))
	for _, r := range rows {
		list = append(list, r.toDomain())
	}
	return list, nil
}

// Get retrieves a bookmark by ID
func (s *Store) Get(ctx context.Context, id int64) (domain.Bookmark, bool, error) {
	var row bookmarkRow
	query := s.db.Rebind(`SELECT ` + columns + ` FROM bookmarks WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Bookmark{}, false, nil
		}
		return domain.Bookmark{}, false, fmt.Errorf("failed to get bookmark %d: %w", id, err)
	}
	return row.toDomain(), true, nil
}

// Insert stores a bookmark and returns it with the id assigned by the database
func (s *Store) Insert(ctx context.Context, b domain.Bookmark) (domain.Bookmark, error) {
	query := s.db.Rebind(`
		INSERT INTO bookmarks (title, url, description, rating)
		VALUES (?, ?, ?, ?)
		RETURNING ` + columns)

	var row bookmarkRow
	if err := s.db.QueryRowxContext(ctx, query, b.Title, b.URL, nullable(b.Description), b.Rating).StructScan(&row); err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return row.toDomain(), nil
}

// Delete removes a bookmark and returns the affected row count
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	query := s.db.Rebind(`DELETE FROM bookmarks WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookmark %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return rows, nil
}

// Update overwrites all columns of an existing bookmark
func (s *Store) Update(ctx context.Context, b domain.Bookmark) (int64, error) {
	query := s.db.Rebind(`
		UPDATE bookmarks
		SET title = ?, url = ?, description = ?, rating = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, b.Title, b.URL, nullable(b.Description), b.Rating, b.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update bookmark %d: %w", b.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return rows, nil
}

// Ping tests the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection pool
func (s *Store) Close() error {
	return s.db.Close()
}
