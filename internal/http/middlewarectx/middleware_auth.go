// Package middlewarectx содержит HTTP middleware для проверки JWT токенов
// админского доступа.
//
// Токен извлекается из HTTP-only cookie или заголовка Authorization.
// Для страничных маршрутов неаутентифицированный запрос перенаправляется
// на /login, для JSON-маршрутов возвращается 401 Unauthorized.
// Невалидный или истёкший токен дополнительно сбрасывает cookie.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	libjwt "github.com/magabrotheeeer/newsletter-service/internal/lib/jwt"
	"github.com/magabrotheeeer/newsletter-service/internal/http/response"
	"github.com/magabrotheeeer/newsletter-service/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для имени пользователя в контексте
	User Key = "username"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// AuthCookieName — имя cookie с токеном админского доступа.
const AuthCookieName = "token"

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(token string) (*libjwt.CustomClaims, error)
}

// extractToken достаёт токен из cookie или заголовка Authorization.
// Пустая строка означает анонимный запрос.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// ClearAuthCookie сбрасывает cookie с токеном.
func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// JWTMiddleware возвращает middleware для JSON-маршрутов: без валидного
// токена запрос отклоняется с HTTP 401 Unauthorized.
func JWTMiddleware(service Service, log *slog.Logger) func(http.Handler) http.Handler {
	return authMiddleware(service, log, func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
	})
}

// JWTPageMiddleware возвращает middleware для страничных маршрутов:
// без валидного токена запрос перенаправляется на страницу входа.
func JWTPageMiddleware(service Service, log *slog.Logger) func(http.Handler) http.Handler {
	return authMiddleware(service, log, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
}

func authMiddleware(service Service, log *slog.Logger, reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.authMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := extractToken(r)
			if tokenStr == "" {
				log.Info("anonymous request to protected route", slog.String("path", r.URL.Path))
				reject(w, r)
				return
			}

			claims, err := service.ValidateToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				ClearAuthCookie(w)
				reject(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), User, claims.Username)
			ctx = context.WithValue(ctx, Role, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
