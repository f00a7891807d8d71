package admin

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/newsletter-service/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListSubscribers(ctx context.Context, filter models.ListFilter, limit, offset int) ([]*models.Subscriber, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscriber), args.Error(1)
}

func (m *MockRepository) CountSubscribers(ctx context.Context, filter models.ListFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) RemoveByID(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) RemoveByIDs(ctx context.Context, ids []int) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListCountries(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if args.Bool(0) {
		*(result.(*[]string)) = []string{"CA", "US"}
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestService(repo *MockRepository, cache *MockCache) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(repo, cache, logger)
}

func TestList(t *testing.T) {
	subs := []*models.Subscriber{
		{ID: 2, Email: "b@y.com", Country: "CA"},
		{ID: 1, Email: "a@x.com", Country: "CA"},
	}

	tests := []struct {
		name           string
		page           int
		total          int
		wantOffset     int
		wantTotalPages int
	}{
		{name: "первая страница", page: 1, total: 25, wantOffset: 0, wantTotalPages: 3},
		{name: "третья страница", page: 3, total: 25, wantOffset: 20, wantTotalPages: 3},
		{name: "страница меньше единицы приводится к первой", page: 0, total: 5, wantOffset: 0, wantTotalPages: 1},
		{name: "пустая выборка", page: 1, total: 0, wantOffset: 0, wantTotalPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			cache := new(MockCache)
			filter := models.ListFilter{Country: "CA"}
			repo.On("ListSubscribers", mock.Anything, filter, PageSize, tt.wantOffset).Return(subs, nil)
			repo.On("CountSubscribers", mock.Anything, filter).Return(tt.total, nil)

			got, total, totalPages, err := newTestService(repo, cache).List(context.Background(), filter, tt.page)

			require.NoError(t, err)
			assert.Equal(t, subs, got)
			assert.Equal(t, tt.total, total)
			assert.Equal(t, tt.wantTotalPages, totalPages)
			repo.AssertExpectations(t)
		})
	}
}

func TestRemoveOne(t *testing.T) {
	t.Run("успешное удаление", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("RemoveByID", mock.Anything, 5).Return(1, nil)
		cache.On("Invalidate", countriesCacheKey).Return(nil)

		err := newTestService(repo, cache).RemoveOne(context.Background(), 5)

		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("RemoveByID", mock.Anything, 99).Return(0, nil)

		err := newTestService(repo, cache).RemoveOne(context.Background(), 99)

		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRemoveMany(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	// Часть ID не существует: они пропускаются, удаление частичное.
	repo.On("RemoveByIDs", mock.Anything, []int{1, 2, 99}).Return(2, nil)
	cache.On("Invalidate", countriesCacheKey).Return(nil)

	count, err := newTestService(repo, cache).RemoveMany(context.Background(), []int{1, 2, 99})

	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCountries(t *testing.T) {
	t.Run("кеш-попадание", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		cache.On("Get", countriesCacheKey, mock.Anything).Return(true, nil)

		countries, err := newTestService(repo, cache).Countries(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"CA", "US"}, countries)
		repo.AssertNotCalled(t, "ListCountries", mock.Anything)
	})

	t.Run("кеш-промах идёт в хранилище", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		cache.On("Get", countriesCacheKey, mock.Anything).Return(false, nil)
		repo.On("ListCountries", mock.Anything).Return([]string{"DE"}, nil)
		cache.On("Set", countriesCacheKey, []string{"DE"}, countriesCacheTTL).Return(nil)

		countries, err := newTestService(repo, cache).Countries(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"DE"}, countries)
		cache.AssertExpectations(t)
	})
}
