// Package newsletterservice собирает приложение рассылки: подключение к базе,
// миграции, кэш, сервисы и HTTP-сервер с graceful shutdown.
package newsletterservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/newsletter-service/internal/cache"
	"github.com/magabrotheeeer/newsletter-service/internal/config"
	"github.com/magabrotheeeer/newsletter-service/internal/lib/jwt"
	"github.com/magabrotheeeer/newsletter-service/internal/migrations"
	adminservice "github.com/magabrotheeeer/newsletter-service/internal/services/admin"
	authservice "github.com/magabrotheeeer/newsletter-service/internal/services/auth"
	exportservice "github.com/magabrotheeeer/newsletter-service/internal/services/export"
	subscriptionservice "github.com/magabrotheeeer/newsletter-service/internal/services/subscription"
	"github.com/magabrotheeeer/newsletter-service/internal/storage"
)

// App объединяет HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

// New инициализирует приложение: базу данных, миграции, кэш, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	subscriptionService := subscriptionservice.New(db, cacheRedis, logger)
	adminService := adminservice.New(db, cacheRedis, logger)
	authService := authservice.New(cfg.AdminPasswordHash, jwtMaker)
	exportService := exportservice.New(db, cfg.ExportDir, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, cfg,
		subscriptionService, adminService, authService, exportService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
