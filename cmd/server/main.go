package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adilbekov/shopscout/config"
	"github.com/adilbekov/shopscout/internal/email"
	"github.com/adilbekov/shopscout/internal/genai"
	"github.com/adilbekov/shopscout/internal/health"
	"github.com/adilbekov/shopscout/internal/infrastructure/postgres"
	"github.com/adilbekov/shopscout/internal/janitor"
	ctxlog "github.com/adilbekov/shopscout/internal/log"
	"github.com/adilbekov/shopscout/internal/metrics"
	"github.com/adilbekov/shopscout/internal/reconcile"
	"github.com/adilbekov/shopscout/internal/scrape"
	"github.com/adilbekov/shopscout/internal/scrapecache"
	"github.com/adilbekov/shopscout/internal/session"
	httptransport "github.com/adilbekov/shopscout/internal/transport/http"
	"github.com/adilbekov/shopscout/internal/transport/http/handler"
	"github.com/adilbekov/shopscout/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	searchRepo := postgres.NewSearchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	compareRepo := postgres.NewCompareRepository(pool)

	scrapeTimeout := time.Duration(cfg.ScrapeTimeoutSec) * time.Second

	// External collaborators
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	gemini := genai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, scrapeTimeout)
	serp := scrape.NewSerpClient(cfg.SerpAPIKey, scrapeTimeout)
	ninja := scrape.NewNinjaClient(cfg.RapidAPIKey)
	scrapePool := scrape.NewPool(ninja, logger, cfg.ScrapeConcurrency, scrapeTimeout)

	cache, err := newCache(ctx, cfg)
	if err != nil {
		stop()
		log.Fatalf("scrape cache: %v", err)
	}

	reconciler := reconcile.New(gemini, logger)
	sessions := session.NewManager([]byte(cfg.JWTSecret), cfg.Env != "local")

	// Usecases
	userUsecase := usecase.NewUserUsecase(userRepo, emailSender, cfg.BaseURL, logger)
	searchUsecase := usecase.NewSearchUsecase(serp, reconciler, searchRepo, productRepo, logger)
	compareUsecase := usecase.NewCompareUsecase(scrapePool, reconciler, compareRepo, cache, logger)
	nestedUsecase := usecase.NewNestedUsecase(userRepo, searchRepo, productRepo, compareRepo)

	// Handlers
	userHandler := handler.NewUserHandler(userUsecase, sessions, logger)
	authHandler := handler.NewAuthHandler(nestedUsecase, logger)
	searchHandler := handler.NewSearchHandler(searchUsecase, logger)
	compareHandler := handler.NewCompareHandler(compareUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	tokenJanitor, err := janitor.New(userRepo, logger, cfg.TokenPurgeCron,
		time.Duration(cfg.TokenTTLMin)*time.Minute)
	if err != nil {
		stop()
		log.Fatalf("janitor: %v", err)
	}
	go tokenJanitor.Start(ctx)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, sessions,
			userHandler, authHandler, searchHandler, compareHandler),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newCache(ctx context.Context, cfg *config.Config) (scrapecache.Store, error) {
	if cfg.S3Bucket == "" {
		return scrapecache.NewFSStore(cfg.CacheDir), nil
	}
	return scrapecache.NewS3Store(ctx, scrapecache.S3Options{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
