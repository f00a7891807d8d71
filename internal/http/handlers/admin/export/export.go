// Package export реализует HTTP-обработчик выгрузки подписчиков в файл.
//
// Handler формирует файл выбранного формата через сервис экспорта, отдает
// его как вложение и удаляет временный файл после отправки ответа.
package export

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/newsletter-service/internal/http/response"
	"github.com/magabrotheeeer/newsletter-service/internal/lib/sl"
	exportsvc "github.com/magabrotheeeer/newsletter-service/internal/services/export"
)

var contentTypes = map[string]string{
	"txt":  "text/plain; charset=utf-8",
	"csv":  "text/csv; charset=utf-8",
	"json": "application/json",
}

// Handler управляет HTTP-запросами выгрузки подписчиков.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики экспорта подписчиков.
type Service interface {
	Export(ctx context.Context, format, country string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выгрузить подписчиков
// @Description Формирует файл со списком подписчиков в формате txt, csv или json и отдает его как вложение.
// @Tags Admin
// @Produce  octet-stream
// @Param format query string false "Формат файла: txt, csv или json (по умолчанию txt)"
// @Param country query string false "Фильтр по стране"
// @Success 200 {file} file "Файл с подписчиками"
// @Failure 400 {object} response.ErrorResponse "Неизвестный формат"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Нет подписчиков для выгрузки"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /export-emails [get]
// @Security CookieAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.export"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	format := r.URL.Query().Get("format")
	country := r.URL.Query().Get("country")

	path, err := h.service.Export(r.Context(), format, country)
	if err != nil {
		switch {
		case errors.Is(err, exportsvc.ErrUnknownFormat):
			log.Error("unknown export format", slog.String("format", format))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown export format, expected txt, csv or json"))
		case errors.Is(err, exportsvc.ErrNothingToExport):
			log.Info("nothing to export", slog.String("country", country))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no subscribers to export"))
		default:
			log.Error("failed to export subscribers", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to export subscribers"))
		}
		return
	}
	// Файл временный, удаляется после отправки ответа.
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Error("failed to remove export file", sl.Err(err))
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		log.Error("failed to open export file", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to export subscribers"))
		return
	}
	defer file.Close() //nolint:errcheck

	name := filepath.Base(path)
	contentType := "application/octet-stream"
	if ext := filepath.Ext(name); ext != "" {
		if ct, ok := contentTypes[ext[1:]]; ok {
			contentType = ct
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := io.Copy(w, file); err != nil {
		log.Error("failed to send export file", sl.Err(err))
		return
	}

	log.Info("export file served", slog.String("file", name))
}
