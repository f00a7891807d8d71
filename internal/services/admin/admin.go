// Package admin содержит бизнес-логику админской панели: фильтрованный
// список подписчиков с пагинацией, одиночное и массовое удаление,
// а также кешируемый список стран для фильтров.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/newsletter-service/internal/models"
)

// ErrNotFound возвращается при удалении записи с несуществующим ID.
var ErrNotFound = errors.New("subscriber not found")

// PageSize задаёт размер страницы дашборда.
const PageSize = 10

const (
	countriesCacheKey = "subscribers:countries"
	countriesCacheTTL = time.Hour
)

// SubscriberRepository определяет методы хранилища, нужные админской панели.
type SubscriberRepository interface {
	ListSubscribers(ctx context.Context, filter models.ListFilter, limit, offset int) ([]*models.Subscriber, error)
	CountSubscribers(ctx context.Context, filter models.ListFilter) (int, error)
	RemoveByID(ctx context.Context, id int) (int, error)
	RemoveByIDs(ctx context.Context, ids []int) (int, error)
	ListCountries(ctx context.Context) ([]string, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции админской панели.
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

// List возвращает страницу подписчиков по фильтру вместе с общим числом
// совпадений и количеством страниц. Номера страниц начинаются с 1.
//
// Выборка и подсчёт не изолированы от параллельных удалений: страница,
// посчитанная по устаревшему счётчику, может оказаться короче заявленной.
func (s *Service) List(ctx context.Context, filter models.ListFilter, page int) ([]*models.Subscriber, int, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	entries, err := s.repo.ListSubscribers(ctx, filter, PageSize, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	total, err := s.repo.CountSubscribers(ctx, filter)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (total + PageSize - 1) / PageSize
	return entries, total, totalPages, nil
}

// RemoveOne удаляет подписчика по ID. Если записи не было, возвращает ErrNotFound.
func (s *Service) RemoveOne(ctx context.Context, id int) error {
	count, err := s.repo.RemoveByID(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	s.log.Info("removed subscriber", slog.Int("id", id))

	if err := s.cache.Invalidate(countriesCacheKey); err != nil {
		s.log.Warn("failed to invalidate countries cache", slog.Any("err", err))
	}
	return nil
}

// RemoveMany удаляет подписчиков по списку ID и возвращает число удалённых.
// Несуществующие ID молча пропускаются и ошибкой не считаются.
func (s *Service) RemoveMany(ctx context.Context, ids []int) (int, error) {
	count, err := s.repo.RemoveByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.log.Info("removed subscribers", slog.Int("requested", len(ids)), slog.Int("deleted", count))

	if err := s.cache.Invalidate(countriesCacheKey); err != nil {
		s.log.Warn("failed to invalidate countries cache", slog.Any("err", err))
	}
	return count, nil
}

// Countries возвращает список уникальных стран, используя кеш или хранилище.
func (s *Service) Countries(ctx context.Context) ([]string, error) {
	var countries []string
	found, err := s.cache.Get(countriesCacheKey, &countries)
	if err != nil {
		s.log.Warn("failed to read countries cache", slog.Any("err", err))
	}
	if found {
		return countries, nil
	}

	countries, err = s.repo.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(countriesCacheKey, countries, countriesCacheTTL); err != nil {
		s.log.Warn("failed to cache countries", slog.Any("err", err))
	}
	return countries, nil
}
