// Package logout реализует HTTP-обработчик выхода администратора.
//
// Handler сбрасывает cookie с токеном и перенаправляет на страницу входа.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/newsletter-service/internal/http/middlewarectx"
)

// Handler обрабатывает HTTP-запросы выхода администратора.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выход администратора
// @Description Сбрасывает cookie с токеном и перенаправляет на /login.
// @Tags Auth
// @Success 303 "Перенаправление на страницу входа"
// @Router /logout [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	middlewarectx.ClearAuthCookie(w)
	log.Info("logout success")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
