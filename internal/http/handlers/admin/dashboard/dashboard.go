// Package dashboard реализует HTTP-обработчик админской панели подписчиков.
//
// Handler разбирает параметры поиска, фильтрации и пагинации из query string,
// запрашивает страницу подписчиков через сервис и возвращает JSON с записями,
// общим количеством и списком стран для фильтра.
//
// Фильтр по дате применяется только когда заданы обе границы диапазона.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/newsletter-service/internal/http/response"
	"github.com/magabrotheeeer/newsletter-service/internal/lib/sl"
	"github.com/magabrotheeeer/newsletter-service/internal/models"
)

const dateLayout = "2006-01-02"

// Handler управляет HTTP-запросами админской панели.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки подписчиков.
type Service interface {
	List(ctx context.Context, filter models.ListFilter, page int) ([]*models.Subscriber, int, int, error)
	Countries(ctx context.Context) ([]string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Панель подписчиков
// @Description Возвращает страницу подписчиков с поиском по email, фильтрами по стране и диапазону дат.
// @Tags Admin
// @Produce  json
// @Param search query string false "Подстрока email"
// @Param country query string false "Страна подписчика"
// @Param startDate query string false "Начало диапазона дат (YYYY-MM-DD)"
// @Param endDate query string false "Конец диапазона дат (YYYY-MM-DD)"
// @Param page query int false "Номер страницы, начиная с 1"
// @Success 200 {object} map[string]any "Страница подписчиков"
// @Failure 400 {object} response.ErrorResponse "Некорректный формат даты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /dashboard [get]
// @Security CookieAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query()

	filter := models.ListFilter{
		Search:  query.Get("search"),
		Country: query.Get("country"),
	}

	if startStr, endStr := query.Get("startDate"), query.Get("endDate"); startStr != "" && endStr != "" {
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			log.Error("invalid startDate format", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid startDate, expected YYYY-MM-DD"))
			return
		}
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			log.Error("invalid endDate format", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid endDate, expected YYYY-MM-DD"))
			return
		}
		// Верхняя граница включает весь день.
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.StartDate = &start
		filter.EndDate = &end
	}

	page := 1
	if pageStr := query.Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 1 {
			log.Error("invalid page number", slog.String("page", pageStr))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid page number"))
			return
		}
		page = parsed
	}

	subscribers, total, totalPages, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		log.Error("failed to list subscribers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscribers"))
		return
	}

	countries, err := h.service.Countries(r.Context())
	if err != nil {
		log.Error("failed to list countries", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list countries"))
		return
	}

	log.Info("dashboard page served",
		slog.Int("page", page),
		slog.Int("total", total))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscribers": subscribers,
		"total":       total,
		"page":        page,
		"total_pages": totalPages,
		"countries":   countries,
	}))
}
