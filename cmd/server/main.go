package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/nonflow/internal/api"
	"github.com/RMahshie/nonflow/internal/cache"
	"github.com/RMahshie/nonflow/internal/config"
	"github.com/RMahshie/nonflow/internal/metrics"
	"github.com/RMahshie/nonflow/internal/processing"
	"github.com/RMahshie/nonflow/internal/repository"
	"github.com/RMahshie/nonflow/internal/repository/postgres"
	"github.com/RMahshie/nonflow/internal/storage"
	"github.com/RMahshie/nonflow/pkg/models"
)

func main() {
	// Configure zerolog for structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	// Optional components: each stays nil when unconfigured
	var trajectoryCache cache.TrajectoryCache
	if cfg.Redis.URL != "" {
		rc, err := cache.New(cfg.Redis.URL, cache.WithTTL(cfg.Redis.TTL))
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid REDIS_URL")
		}
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis unreachable, trajectories will be computed on every request")
		}
		trajectoryCache = rc
	}

	var runRepo repository.RunRepository
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open database")
		}
		defer db.Close()
		pg := postgres.NewPostgresRunRepository(db)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
		runRepo = pg
	}

	var exportStore storage.ExportStore
	if cfg.AWS.S3Bucket != "" {
		exportStore, err = storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.AWS.S3Bucket,
			Endpoint:  cfg.AWS.S3Endpoint,
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure export storage")
		}
	}

	m := metrics.New()
	processingSvc := processing.NewProcessingService(processing.Settings{
		Fluid:     cfg.Process.DefaultFluid,
		Model:     cfg.Process.PropertyModel,
		SpanRatio: cfg.Process.SweepRatio,
	}, trajectoryCache, runRepo, exportStore, m)

	// Create Chi router
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Run-ID", "X-Cache"},
		MaxAge:         300,
	}))

	// Create Huma API
	humaConfig := huma.DefaultConfig("Nonflow API", "1.0.0")
	humaConfig.DocsPath = "/api/docs"
	humaAPI := humachi.New(router, humaConfig)

	// Register health endpoint
	huma.Register(humaAPI, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = "1.0.0"
		resp.Body.Time = time.Now()
		return resp, nil
	})

	api.RegisterRoutes(router, humaAPI, processingSvc, m.Registry)

	// Start server
	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", addr).Msg("Starting Nonflow API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologLogger returns a Chi middleware that logs HTTP requests using zerolog
func zerologLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("remote_ip", r.RemoteAddr).
					Int("status", ww.Status()).
					Dur("latency", time.Since(start)).
					Str("user_agent", r.UserAgent()).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
