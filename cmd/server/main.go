package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tutorial-scout/tutorial-scout-go/internal/config"
	"github.com/tutorial-scout/tutorial-scout-go/internal/handler"
	"github.com/tutorial-scout/tutorial-scout-go/internal/scraper"
	"github.com/tutorial-scout/tutorial-scout-go/internal/service"
	"github.com/tutorial-scout/tutorial-scout-go/internal/store"
	"github.com/tutorial-scout/tutorial-scout-go/internal/store/postgres"
	"github.com/tutorial-scout/tutorial-scout-go/internal/store/sqlite"
	"github.com/tutorial-scout/tutorial-scout-go/pkg/logger"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("failed to open tutorial store", zap.Error(err))
	}
	defer st.Close() //nolint:errcheck

	logger.Log.Info("tutorial store ready", zap.String("backend", cfg.Store.Backend))

	// The scraper is optional: without an API key the browsing surface still
	// works, only /api/v1/scrape is disabled.
	var ingestService *service.IngestService
	if cfg.YouTube.APIKey != "" {
		client, err := scraper.NewClient(cfg.YouTube.APIKey, logger.Log)
		if err != nil {
			logger.Log.Fatal("failed to initialize YouTube client", zap.Error(err))
		}
		localeFilter, err := scraper.NewLocaleFilter(cfg.Scraper.LocalePatterns)
		if err != nil {
			logger.Log.Fatal("invalid locale filter configuration", zap.Error(err))
		}
		pipeline := scraper.New(client, scraper.Options{
			MinDurationSeconds: cfg.Scraper.MinDurationSeconds,
			MaxResults:         cfg.Scraper.MaxResults,
			UploadDateFilter:   cfg.Scraper.UploadDateFilter,
			LocaleFilter:       localeFilter,
		}, logger.Log)
		ingestService = service.NewIngestService(pipeline, st, cfg.Scraper.Languages, cfg.Scraper.Subjects, logger.Log)
		logger.Log.Info("YouTube API client initialized, scraping is available")
	} else {
		logger.Log.Info("YouTube API key not configured (YOUTUBE_APIKEY), scraping is disabled")
	}

	router := buildRouter(cfg, st, ingestService)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Log.Fatal("server error", zap.Error(err))
	case sig := <-shutdown:
		logger.Log.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("failed to close server", zap.Error(err))
			}
			os.Exit(1)
		}

		logger.Log.Info("server stopped gracefully")
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.TutorialStore, error) {
	switch cfg.Store.Backend {
	case "postgres":
		return postgres.New(ctx, cfg.Store.Postgres)
	case "sqlite":
		return sqlite.New(cfg.Store.SQLite.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q (expected postgres or sqlite)", cfg.Store.Backend)
	}
}

func buildRouter(cfg *config.Config, st store.TutorialStore, ingestService *service.IngestService) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	tutorialHandler := handler.NewTutorialHandler(st)
	scrapeHandler := handler.NewScrapeHandler(ingestService, cfg.Scraper.Languages, cfg.Scraper.Subjects)
	healthHandler := handler.NewHealthHandler(st)

	api := router.Group("/api/v1")
	{
		api.POST("/scrape", scrapeHandler.HandleScrape)
		api.GET("/categories", scrapeHandler.Categories)

		api.GET("/tutorials", tutorialHandler.ListAll)
		api.GET("/tutorials/favorites", tutorialHandler.Favorites)
		api.GET("/tutorials/language/:language", tutorialHandler.ByLanguage)
		api.GET("/tutorials/subject/:subject", tutorialHandler.BySubject)
		api.GET("/tutorials/search", tutorialHandler.Search)
		api.GET("/summary", tutorialHandler.Summary)

		api.POST("/tutorials/:id/favorite", tutorialHandler.MarkFavorite)
		api.POST("/tutorials/:id/watched", tutorialHandler.MarkWatched)
		api.DELETE("/tutorials/:id", tutorialHandler.Delete)
	}

	router.GET("/health", healthHandler.LivenessProbe)
	router.GET("/ready", healthHandler.ReadinessProbe)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
