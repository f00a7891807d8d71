// Package exportform реализует HTTP-обработчик страницы выгрузки подписчиков.
//
// Handler отдает HTML-форму выбора формата и страны, которая запускает
// скачивание файла через GET /export-emails.
package exportform

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/newsletter-service/internal/http/response"
	"github.com/magabrotheeeer/newsletter-service/internal/lib/sl"
)

const exportPage = `<!DOCTYPE html>
<html>
<head><title>Export Subscribers</title></head>
<body>
<h1>Export Subscribers</h1>
<form action="/export-emails" method="get">
  <label>Format:
    <select name="format">
      <option value="txt">txt</option>
      <option value="csv">csv</option>
      <option value="json">json</option>
    </select>
  </label>
  <label>Country:
    <select name="country">
      <option value="">All countries</option>
      {{range .Countries}}<option value="{{.}}">{{.}}</option>
      {{end}}
    </select>
  </label>
  <button type="submit">Download</button>
</form>
<p><a href="/dashboard">Back to dashboard</a></p>
</body>
</html>`

// Handler управляет HTTP-запросами страницы выгрузки.
type Handler struct {
	log     *slog.Logger
	service Service
	tmpl    *template.Template
}

// Service описывает интерфейс получения списка стран подписчиков.
type Service interface {
	Countries(ctx context.Context) ([]string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tmpl:    template.Must(template.New("export").Parse(exportPage)),
	}
}

// ServeHTTP godoc
// @Summary Страница выгрузки подписчиков
// @Description Отдает HTML-форму выбора формата и страны для выгрузки.
// @Tags Admin
// @Produce  html
// @Success 200 "Форма выгрузки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /export [get]
// @Security CookieAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.exportform"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	countries, err := h.service.Countries(r.Context())
	if err != nil {
		log.Error("failed to list countries", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list countries"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, map[string]any{"Countries": countries}); err != nil {
		log.Error("failed to render export page", sl.Err(err))
	}
}
