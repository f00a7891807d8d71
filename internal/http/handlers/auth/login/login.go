// Package login реализует HTTP-обработчик входа администратора.
//
// Handler принимает JSON-запрос с паролем, делегирует проверку сервису
// аутентификации и при успехе устанавливает HTTP-only cookie с JWT.
// Токен также возвращается в теле ответа вместе с адресом перенаправления.
package login

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/newsletter-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/newsletter-service/internal/http/response"
	"github.com/magabrotheeeer/newsletter-service/internal/lib/sl"
	"github.com/magabrotheeeer/newsletter-service/internal/services/auth"
)

// Request — структура входных данных для входа администратора.
type Request struct {
	Password string `json:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы входа администратора.
type Handler struct {
	log          *slog.Logger
	service      Service
	validate     *validator.Validate
	tokenTTL     time.Duration // Время жизни cookie, совпадает с TTL токена
	secureCookie bool          // Secure-флаг cookie, включается в prod-окружении
}

// Service описывает интерфейс бизнес-логики аутентификации администратора.
type Service interface {
	Login(rawPassword string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service, tokenTTL time.Duration, secureCookie bool) *Handler {
	return &Handler{
		log:          log,
		service:      service,
		validate:     validator.New(),
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}
}

// ServeHTTP godoc
// @Summary Вход администратора
// @Description Проверяет пароль администратора. Возвращает JWT и устанавливает HTTP-only cookie.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Пароль администратора"
// @Success 200 {object} map[string]any "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Info("login failed: invalid credentials")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not log in"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("login success")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token":        token,
		"redirect_url": "/dashboard",
	}))
}
