package bookmarks

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/store/memory"
)

func str(s string) *string { return &s }

func newService() *Service {
	return NewService(memory.NewStore(), logger.NewNop())
}

func idOf(b domain.Bookmark) string { return strconv.FormatInt(b.ID, 10) }

func TestCreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	tests := []struct {
		name string
		in   domain.Fields
		want domain.Bookmark
	}{
		{
			name: "with description",
			in:   domain.Fields{Title: str("Test new bookmark"), URL: str("http://test.com"), Description: str("content"), Rating: str("4")},
			want: domain.Bookmark{Title: "Test new bookmark", URL: "http://test.com", Description: "content", Rating: 4},
		},
		{
			name: "without description",
			in:   domain.Fields{Title: str("weather"), URL: str("https://weather.gov"), Rating: str("1")},
			want: domain.Bookmark{Title: "weather", URL: "https://weather.gov", Rating: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := svc.Create(ctx, tt.in)
			require.NoError(t, err)
			require.NotZero(t, created.ID)

			tt.want.ID = created.ID
			assert.Equal(t, tt.want, created)

			got, err := svc.GetByID(ctx, idOf(created))
			require.NoError(t, err)
			assert.Equal(t, created, got)
		})
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		in      domain.Fields
		wantMsg string
	}{
		{"missing title", domain.Fields{URL: str("u"), Rating: str("3")}, "Missing title in request."},
		{"missing url", domain.Fields{Title: str("t"), Rating: str("3")}, "Missing url in request."},
		{"missing rating", domain.Fields{Title: str("t"), URL: str("u")}, "Missing rating in request."},
		{"rating not a number", domain.Fields{Title: str("t"), URL: str("u"), Rating: str("abc")}, "Invalid rating in request."},
		{"rating zero", domain.Fields{Title: str("t"), URL: str("u"), Rating: str("0")}, "Invalid rating in request."},
		{"rating six", domain.Fields{Title: str("t"), URL: str("u"), Rating: str("6")}, "Invalid rating in request."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			svc := NewService(store, logger.NewNop())

			_, err := svc.Create(ctx, tt.in)
			require.True(t, domain.IsValidation(err))
			assert.EqualError(t, err, tt.wantMsg)
			store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestGetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	for _, raw := range []string{"1", "999", "abc", "-1", ""} {
		_, err := svc.GetByID(ctx, raw)
		assert.ErrorIs(t, err, domain.ErrNotFound, raw)
	}
}

func TestDeleteThenGet(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	created, err := svc.Create(ctx, domain.Fields{Title: str("t"), URL: str("u"), Rating: str("3")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, idOf(created)))

	_, err = svc.GetByID(ctx, idOf(created))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// deleting again is an error, not a silent success
	assert.ErrorIs(t, svc.Delete(ctx, idOf(created)), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "12345"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "not-an-id"), domain.ErrNotFound)
}

func TestDeleteIssuesExactlyOneDelete(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	stored := domain.Bookmark{ID: 4, Title: "t", URL: "u", Rating: 2}
	store.On("Get", ctx, int64(4)).Return(stored, true, nil).Once()
	store.On("Delete", ctx, int64(4)).Return(int64(1), nil).Once()

	svc := NewService(store, logger.NewNop())
	require.NoError(t, svc.Delete(ctx, "4"))
	store.AssertExpectations(t)
}

func TestUpdateMerge(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	created, err := svc.Create(ctx, domain.Fields{Title: str("A"), URL: str("B"), Description: str("C"), Rating: str("2")})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, idOf(created), domain.Fields{Title: str("Z")}))

	got, err := svc.GetByID(ctx, idOf(created))
	require.NoError(t, err)
	assert.Equal(t, domain.Bookmark{ID: created.ID, Title: "Z", URL: "B", Description: "C", Rating: 2}, got)

	require.NoError(t, svc.Update(ctx, idOf(created), domain.Fields{Rating: str("4.5"), Description: str("D")}))
	got, err = svc.GetByID(ctx, idOf(created))
	require.NoError(t, err)
	assert.Equal(t, domain.Bookmark{ID: created.ID, Title: "Z", URL: "B", Description: "D", Rating: 4.5}, got)
}

func TestUpdateWithoutRecognizedFields(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	created, err := svc.Create(ctx, domain.Fields{Title: str("A"), URL: str("B"), Description: str("C"), Rating: str("2")})
	require.NoError(t, err)

	for _, in := range []domain.Fields{{}, {Title: str(""), Rating: str("0")}} {
		err = svc.Update(ctx, idOf(created), in)
		require.True(t, domain.IsValidation(err))
		assert.EqualError(t, err, domain.EmptyUpdateMessage)
	}

	got, err := svc.GetByID(ctx, idOf(created))
	require.NoError(t, err)
	assert.Equal(t, created, got, "record must not change")
}

func TestUpdateChecksBodyBeforeExistence(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	err := svc.Update(ctx, "77", domain.Fields{})
	assert.True(t, domain.IsValidation(err))

	err = svc.Update(ctx, "77", domain.Fields{Title: str("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateRejectsInvalidRating(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	created, err := svc.Create(ctx, domain.Fields{Title: str("A"), URL: str("B"), Rating: str("2")})
	require.NoError(t, err)

	err = svc.Update(ctx, idOf(created), domain.Fields{Rating: str("11")})
	assert.EqualError(t, err, "Invalid rating in request.")

	got, err := svc.GetByID(ctx, idOf(created))
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Rating)
}

func TestListAllEmpty(t *testing.T) {
	list, err := newService().ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListAllNilFromStoreBecomesEmpty(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("List", ctx).Return(nil, nil).Once()

	list, err := NewService(store, logger.NewNop()).ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Bookmark{}, list)
}

func TestStorageErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	dbDown := errors.New("db down")
	stored := domain.Bookmark{ID: 1, Title: "t", URL: "u", Rating: 3}

	tests := []struct {
		name  string
		setup func(m *MockStore)
		call  func(s *Service) error
		op    string
	}{
		{
			name:  "list",
			setup: func(m *MockStore) { m.On("List", ctx).Return(nil, dbDown) },
			call:  func(s *Service) error { _, err := s.ListAll(ctx); return err },
			op:    "list",
		},
		{
			name:  "get",
			setup: func(m *MockStore) { m.On("Get", ctx, int64(1)).Return(domain.Bookmark{}, false, dbDown) },
			call:  func(s *Service) error { _, err := s.GetByID(ctx, "1"); return err },
			op:    "get",
		},
		{
			name:  "insert",
			setup: func(m *MockStore) { m.On("Insert", ctx, mock.Anything).Return(domain.Bookmark{}, dbDown) },
			call: func(s *Service) error {
				_, err := s.Create(ctx, domain.Fields{Title: str("t"), URL: str("u"), Rating: str("3")})
				return err
			},
			op: "insert",
		},
		{
			name: "delete",
			setup: func(m *MockStore) {
				m.On("Get", ctx, int64(1)).Return(stored, true, nil)
				m.On("Delete", ctx, int64(1)).Return(int64(0), dbDown)
			},
			call: func(s *Service) error { return s.Delete(ctx, "1") },
			op:   "delete",
		},
		{
			name: "update",
			setup: func(m *MockStore) {
				m.On("Get", ctx, int64(1)).Return(stored, true, nil)
				m.On("Update", ctx, mock.Anything).Return(int64(0), dbDown)
			},
			call: func(s *Service) error { return s.Update(ctx, "1", domain.Fields{Title: str("x")}) },
			op:   "update",
		},
		{
			name:  "ping",
			setup: func(m *MockStore) { m.On("Ping", ctx).Return(dbDown) },
			call:  func(s *Service) error { return s.Ping(ctx) },
			op:    "ping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			tt.setup(store)

			err := tt.call(NewService(store, logger.NewNop()))
			var se *domain.StorageError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.op, se.Op)
			assert.ErrorIs(t, err, dbDown)
			store.AssertExpectations(t)
		})
	}
}

func TestConcurrentRemovalReportsNotFound(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	stored := domain.Bookmark{ID: 9, Title: "t", URL: "u", Rating: 3}
	store.On("Get", ctx, int64(9)).Return(stored, true, nil)
	store.On("Delete", ctx, int64(9)).Return(int64(0), nil)
	store.On("Update", ctx, mock.Anything).Return(int64(0), nil)

	svc := NewService(store, logger.NewNop())
	assert.ErrorIs(t, svc.Delete(ctx, "9"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Update(ctx, "9", domain.Fields{URL: str("v")}), domain.ErrNotFound)
}
