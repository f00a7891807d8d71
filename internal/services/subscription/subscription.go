// Package subscription содержит бизнес-логику публичной подписки и отписки.
package subscription

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/newsletter-service/internal/storage"
)

// ErrNotSubscribed возвращается при отписке email, которого нет в базе.
var ErrNotSubscribed = errors.New("email is not subscribed")

// Ключ кеша со списком стран; сбрасывается при любой мутации таблицы.
const countriesCacheKey = "subscribers:countries"

// SubscriberRepository определяет методы хранилища, нужные публичному API.
type SubscriberRepository interface {
	// CreateSubscriber добавляет подписчика и возвращает его ID.
	CreateSubscriber(ctx context.Context, email, country string) (int, error)
	// ExistsByEmail сообщает, есть ли подписчик с данным email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// RemoveByEmail удаляет записи по email и возвращает их количество.
	RemoveByEmail(ctx context.Context, email string) (int, error)
}

// Cache описывает инвалидацию кеша.
type Cache interface {
	Invalidate(key string) error
}

// Service реализует операции подписки и отписки.
type Service struct {
	repo  SubscriberRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый Service.
func New(repo SubscriberRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Subscribe добавляет новый email в рассылку и возвращает ID записи.
//
// Предварительная проверка существования — оптимизация: при гонке двух
// одинаковых подписок конфликт решает уникальный индекс базы, и проигравший
// запрос также получает storage.ErrEmailExists.
func (s *Service) Subscribe(ctx context.Context, email, country string) (int, error) {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, storage.ErrEmailExists
	}

	id, err := s.repo.CreateSubscriber(ctx, email, country)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new subscriber", slog.Int("id", id))

	if err := s.cache.Invalidate(countriesCacheKey); err != nil {
		s.log.Warn("failed to invalidate countries cache", slog.Any("err", err))
	}

	return id, nil
}

// Unsubscribe удаляет все записи с данным email и возвращает их количество.
// Если таких записей не было, возвращает ErrNotSubscribed.
func (s *Service) Unsubscribe(ctx context.Context, email string) (int, error) {
	count, err := s.repo.RemoveByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrNotSubscribed
	}
	s.log.Info("removed subscriber", slog.String("email", email), slog.Int("count", count))

	if err := s.cache.Invalidate(countriesCacheKey); err != nil {
		s.log.Warn("failed to invalidate countries cache", slog.Any("err", err))
	}

	return count, nil
}
