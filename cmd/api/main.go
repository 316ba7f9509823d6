package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tourapi/internal/admin"
	"tourapi/internal/app"
	"tourapi/internal/config"
	"tourapi/internal/course"
	"tourapi/internal/httpx"
	"tourapi/internal/logger"
	"tourapi/internal/metrics"
	"tourapi/internal/tour"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	if cfg.Log.Format == "" {
		return logger.ForEnvironment(cfg.App.Env, cfg.Log.Level)
	}
	return logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: "stdout"})
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.TourAPI.ServiceKey == "" {
		log.Warn("TOUR_API_SERVICE_KEY is empty; upstream calls will return empty pages")
	}
	if cfg.HTTP.InternalSecret == "" && cfg.IsProduction() {
		log.Warn("INTERNAL_SECRET is empty; cache admin endpoints are unprotected")
	}

	a := app.New(cfg, log, metrics.New())

	httpServer := &http.Server{
		Addr:         cfg.App.Addr,
		Handler:      newRouter(ctx, a),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", cfg.App.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("upstream", cfg.TourAPI.BaseURL),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// newRouter registers every route of the service and wraps the mux in the
// middleware chain. ctx stops the rate limiter's background cleanup.
func newRouter(ctx context.Context, a *app.App) http.Handler {
	tourHandler := tour.NewHTTPHandler(a.Tours, a.Logger)
	courseHandler := course.NewHTTPHandler(a.Courses, a.Logger)
	adminHandler := admin.NewHTTPHandler(a.Config.HTTP.InternalSecret, a.Logger,
		a.Details, a.TourResults, a.CourseResults,
	)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("GET /metrics", a.Metrics.Handler())

	router.HandleFunc("GET /api/ping", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{"ok": true, "t": time.Now().UnixMilli()})
	})
	router.HandleFunc("GET /api/tour", tourHandler.Categories)
	router.HandleFunc("GET /api/tour/{type}", tourHandler.List)
	router.HandleFunc("GET /api/course", courseHandler.List)

	router.HandleFunc("GET /internal/cache", adminHandler.Stats)
	router.HandleFunc("DELETE /internal/cache", adminHandler.Clear)

	rateLimiter := httpx.NewRateLimitMiddleware(ctx, a.Config.HTTP.RateLimitRPS, a.Config.HTTP.RateLimitBurst)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware(a.Logger),
		httpx.AccessLogMiddleware(a.Logger),
		httpx.RecoveryMiddleware(a.Logger),
		httpx.CORSMiddleware(a.Config.HTTP.AllowedOrigins),
		httpx.SecurityHeadersMiddleware(a.Config.IsProduction()),
		rateLimiter.Middleware,
	)
}
