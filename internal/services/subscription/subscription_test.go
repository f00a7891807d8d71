package subscription

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/newsletter-service/internal/storage"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateSubscriber(ctx context.Context, email, country string) (int, error) {
	args := m.Called(ctx, email, country)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) RemoveByEmail(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestService(repo *MockRepository, cache *MockCache) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(repo, cache, logger)
}

func TestSubscribe(t *testing.T) {
	t.Run("успешная подписка", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, nil)
		repo.On("CreateSubscriber", mock.Anything, "a@x.com", "US").Return(7, nil)
		cache.On("Invalidate", countriesCacheKey).Return(nil)

		id, err := newTestService(repo, cache).Subscribe(context.Background(), "a@x.com", "US")

		require.NoError(t, err)
		assert.Equal(t, 7, id)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("email уже подписан", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("ExistsByEmail", mock.Anything, "a@x.com").Return(true, nil)

		_, err := newTestService(repo, cache).Subscribe(context.Background(), "a@x.com", "CA")

		require.ErrorIs(t, err, storage.ErrEmailExists)
		repo.AssertNotCalled(t, "CreateSubscriber", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("гонка: конфликт ловит уникальный индекс", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, nil)
		repo.On("CreateSubscriber", mock.Anything, "a@x.com", "US").Return(0, storage.ErrEmailExists)

		_, err := newTestService(repo, cache).Subscribe(context.Background(), "a@x.com", "US")

		require.ErrorIs(t, err, storage.ErrEmailExists)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, errors.New("db down"))

		_, err := newTestService(repo, cache).Subscribe(context.Background(), "a@x.com", "US")

		require.Error(t, err)
	})
}

func TestUnsubscribe(t *testing.T) {
	t.Run("успешная отписка", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("RemoveByEmail", mock.Anything, "a@x.com").Return(1, nil)
		cache.On("Invalidate", countriesCacheKey).Return(nil)

		count, err := newTestService(repo, cache).Unsubscribe(context.Background(), "a@x.com")

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("email не найден", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("RemoveByEmail", mock.Anything, "missing@x.com").Return(0, nil)

		_, err := newTestService(repo, cache).Unsubscribe(context.Background(), "missing@x.com")

		require.ErrorIs(t, err, ErrNotSubscribed)
	})
}
