package bookmarks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context) ([]domain.Bookmark, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Bookmark)
	return list, args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, id int64) (domain.Bookmark, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Bookmark), args.Bool(1), args.Error(2)
}

func (m *MockStore) Insert(ctx context.Context, b domain.Bookmark) (domain.Bookmark, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(domain.Bookmark), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, b domain.Bookmark) (int64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}
