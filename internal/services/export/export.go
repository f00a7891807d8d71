// Package export материализует выборку подписчиков во временный файл
// одного из форматов: txt, csv или json. Файл отдаётся на скачивание
// обработчиком и удаляется сразу после ответа.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/newsletter-service/internal/models"
)

var (
	// ErrUnknownFormat возвращается для формата вне множества {txt, csv, json}.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrNothingToExport возвращается при пустой выборке.
	ErrNothingToExport = errors.New("nothing to export")
)

// SubscriberRepository определяет выборку подписчиков для экспорта.
type SubscriberRepository interface {
	ListForExport(ctx context.Context, country string) ([]*models.Subscriber, error)
}

// Service реализует экспорт подписчиков во временные файлы.
type Service struct {
	repo SubscriberRepository
	dir  string
	log  *slog.Logger
}

// New создает новый Service, пишущий файлы в каталог dir.
func New(repo SubscriberRepository, dir string, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		dir:  dir,
		log:  log,
	}
}

// Export выбирает подписчиков (опционально по стране), сериализует их
// в заданный формат и возвращает путь к временному файлу. Удаление файла
// после отдачи — обязанность вызывающего.
//
// Имя файла включает охват выборки, метку времени и короткий
// случайный суффикс, чтобы параллельные экспорты не пересекались.
func (s *Service) Export(ctx context.Context, format, country string) (string, error) {
	const op = "export.Export"

	if format == "" {
		format = "txt"
	}
	if format != "txt" && format != "csv" && format != "json" {
		return "", ErrUnknownFormat
	}

	subscribers, err := s.repo.ListForExport(ctx, country)
	if err != nil {
		return "", err
	}
	if len(subscribers) == 0 {
		return "", ErrNothingToExport
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	scope := country
	if scope == "" {
		scope = "all"
	}
	timestamp := strings.NewReplacer(":", "-", ".", "-").Replace(time.Now().UTC().Format(time.RFC3339))
	name := fmt.Sprintf("newsletter_emails_%s_%s_%s.%s", scope, timestamp, uuid.NewString()[:8], format)
	path := filepath.Join(s.dir, name)

	switch format {
	case "txt":
		err = writeTxt(path, subscribers)
	case "csv":
		err = writeCsv(path, subscribers)
	case "json":
		err = writeJSON(path, subscribers)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("export file created",
		slog.String("path", path),
		slog.Int("count", len(subscribers)))
	return path, nil
}

func writeTxt(path string, subscribers []*models.Subscriber) error {
	var b strings.Builder
	for _, sub := range subscribers {
		b.WriteString(sub.Email)
		b.WriteString(",")
		b.WriteString(sub.Country)
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeCsv(path string, subscribers []*models.Subscriber) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"EMAIL", "COUNTRY", "SUBSCRIPTION DATE"}); err != nil {
		return err
	}
	for _, sub := range subscribers {
		record := []string{sub.Email, sub.Country, sub.CreatedAt.UTC().Format(time.RFC3339)}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, subscribers []*models.Subscriber) error {
	data, err := json.MarshalIndent(subscribers, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
