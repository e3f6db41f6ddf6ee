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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/wardrobe-assistant/wardrobe/internal/config"
	"github.com/wardrobe-assistant/wardrobe/internal/db"
	dbRedis "github.com/wardrobe-assistant/wardrobe/internal/db/redis"
	logpkg "github.com/wardrobe-assistant/wardrobe/internal/logger"
	"github.com/wardrobe-assistant/wardrobe/internal/metrics"
	catalogrepo "github.com/wardrobe-assistant/wardrobe/internal/repository/catalog"
	"github.com/wardrobe-assistant/wardrobe/internal/repository/encstate"
	chiTransport "github.com/wardrobe-assistant/wardrobe/internal/transport/chi"
	cataloguc "github.com/wardrobe-assistant/wardrobe/internal/usecase/catalog"
	healthuc "github.com/wardrobe-assistant/wardrobe/internal/usecase/health"
	recommenduc "github.com/wardrobe-assistant/wardrobe/internal/usecase/recommend"
	"github.com/wardrobe-assistant/wardrobe/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting wardrobe API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("catalog_paths", cfg.Catalog.Paths),
		zap.Int("neighbors", cfg.Recommend.Neighbors),
		zap.String("encoder_state_driver", cfg.EncoderState.Driver),
	)

	ctx := context.Background()

	// Optional encoder state store. Pass a nil interface, not a typed nil, when disabled.
	var (
		store      db.Store
		stateStore cataloguc.StateStore
		pinger     healthuc.StorePinger
	)
	if cfg.EncoderState.Enabled() {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.EncoderState.Addrs,
			Password: cfg.EncoderState.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create encoder state store", zap.Error(err))
		}
		defer store.Close()

		timeout := time.Duration(cfg.EncoderState.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, timeout); err != nil {
			logger.Fatal("Encoder state store not ready", zap.Error(err))
		}
		logger.Info("Connected to encoder state store", zap.Strings("addrs", cfg.EncoderState.Addrs))

		stateStore = encstate.New(store, cfg.EncoderState.Key)
		pinger = store
	}

	// Register metrics explicitly (no init())
	metrics.RegisterRecommendMetrics()

	// Startup build: any failure here means nothing can be served.
	loader := catalogrepo.NewLoader(cfg.Catalog.Paths, catalogrepo.Format(cfg.Catalog.Format), logger)
	catSvc := cataloguc.New(loader, stateStore, cfg.EncoderState.Pin, metrics.CatalogItems, logger)
	built, err := catSvc.Build(ctx)
	if err != nil {
		logger.Fatal("Failed to build catalog index", zap.Error(err))
	}

	recSvc := recommenduc.New(cfg.Recommend.Neighbors, cfg.Recommend.PlaceholderColor, recommenduc.Metrics{
		Requests: metrics.RecommendRequestsTotal,
		Duration: metrics.RecommendDuration,
		Results:  metrics.RecommendResults,
		Unseen:   metrics.UnseenValuesTotal,
	})
	if err := recSvc.Publish(recommenduc.Snapshot{Encoder: built.Encoder, Index: built.Index}); err != nil {
		logger.Fatal("Failed to publish catalog snapshot", zap.Error(err))
	}

	healthSvc := healthuc.New(recSvc, pinger)
	server := chiTransport.NewServer(recSvc, catSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r, chiTransport.RateLimit(cfg.HTTP.RateLimitPerMinute))

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
