// Package removebatch реализует HTTP-обработчик массового удаления подписчиков.
//
// Handler принимает JSON-запрос со списком ID и удаляет найденные записи.
// Неизвестные ID молча пропускаются, клиенту возвращается фактическое
// число удаленных записей.
package removebatch

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/newsletter-service/internal/http/response"
	"github.com/magabrotheeeer/newsletter-service/internal/lib/sl"
)

// Request — структура входных данных для массового удаления.
type Request struct {
	IDs []int `json:"ids" validate:"required,min=1"`
}

// Handler управляет HTTP-запросами на массовое удаление подписчиков.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики массового удаления.
type Service interface {
	RemoveMany(ctx context.Context, ids []int) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Удалить нескольких подписчиков
// @Description Удаляет подписчиков по списку ID. Неизвестные ID пропускаются.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Список ID подписчиков"
// @Success 200 {object} map[string]any "Число удаленных записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или пустой список"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /delete-multiple-emails [post]
// @Security CookieAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.removebatch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("ids list must not be empty"))
		return
	}

	deleted, err := h.service.RemoveMany(r.Context(), req.IDs)
	if err != nil {
		log.Error("failed to delete subscribers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete subscribers"))
		return
	}

	log.Info("success to delete subscribers",
		slog.Int("requested", len(req.IDs)),
		slog.Int("deleted", deleted))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted_count": deleted,
	}))
}
