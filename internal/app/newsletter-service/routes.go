// Package newsletterservice предоставляет маршруты для приложения рассылки.
package newsletterservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/newsletter-service/internal/config"
	"github.com/magabrotheeeer/newsletter-service/internal/http/handlers/admin/dashboard"
	"github.com/magabrotheeeer/newsletter-service/internal/http/handlers/admin/export"
	"github.com/magabrotheeeer/newsletter-service/internal/http/handlers/admin/exportform"
	"github.com/magabrotheeeer/newsletter-service/internal/http/handlers/admin/remove"
	"github.com/magabrotheeeer/newsletter-service/internal/http/handlers/admin/removebatch"
	"github.com/magabrotheeeer/newsletter-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/newsletter-service/internal/http/handlers/auth/loginform"
	"github.com/magabrotheeeer/newsletter-service/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/newsletter-service/internal/http/handlers/newsletter/subscribe"
	"github.com/magabrotheeeer/newsletter-service/internal/http/handlers/newsletter/unsubscribe"
	"github.com/magabrotheeeer/newsletter-service/internal/http/middlewarectx"
	adminservice "github.com/magabrotheeeer/newsletter-service/internal/services/admin"
	authservice "github.com/magabrotheeeer/newsletter-service/internal/services/auth"
	exportservice "github.com/magabrotheeeer/newsletter-service/internal/services/export"
	subscriptionservice "github.com/magabrotheeeer/newsletter-service/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	subscriptionService *subscriptionservice.Service,
	adminService *adminservice.Service,
	authService *authservice.Service,
	exportService *exportservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Публичные конечные точки с ограничением частоты запросов
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/newsletter/subscribe", subscribe.New(logger, subscriptionService).ServeHTTP)
		r.Post("/newsletter/unsubscribe", unsubscribe.New(logger, subscriptionService).ServeHTTP)
	})

	secureCookie := cfg.Env == "prod"
	r.Get("/login", loginform.New(logger).ServeHTTP)
	r.Post("/login", login.New(logger, authService, cfg.TokenTTL, secureCookie).ServeHTTP)
	r.Get("/logout", logout.New(logger).ServeHTTP)

	// Страничные маршруты: без токена перенаправляются на /login
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTPageMiddleware(authService, logger))
		r.Get("/dashboard", dashboard.New(logger, adminService).ServeHTTP)
		r.Get("/export", exportform.New(logger, adminService).ServeHTTP)
		r.Get("/export-emails", export.New(logger, exportService).ServeHTTP)
	})

	// JSON-маршруты: без токена возвращают 401
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Post("/delete-email/{id}", remove.New(logger, adminService).ServeHTTP)
		r.Post("/delete-multiple-emails", removebatch.New(logger, adminService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
