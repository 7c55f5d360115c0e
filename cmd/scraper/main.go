// Command scraper runs a scrape session from the terminal: one language, one
// subject, or a full sweep over every configured category.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tutorial-scout/tutorial-scout-go/internal/config"
	"github.com/tutorial-scout/tutorial-scout-go/internal/models"
	"github.com/tutorial-scout/tutorial-scout-go/internal/scraper"
	"github.com/tutorial-scout/tutorial-scout-go/internal/service"
	"github.com/tutorial-scout/tutorial-scout-go/internal/store"
	"github.com/tutorial-scout/tutorial-scout-go/internal/store/postgres"
	"github.com/tutorial-scout/tutorial-scout-go/internal/store/sqlite"
	"github.com/tutorial-scout/tutorial-scout-go/pkg/logger"
)

func main() {
	var (
		language string
		subject  string
		all      bool
	)

	flag.StringVar(&language, "language", "", "scrape one programming language")
	flag.StringVar(&subject, "subject", "", "scrape one subject")
	flag.BoolVar(&all, "all", false, "sweep every configured category")
	flag.Parse()

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

	req, err := buildRequest(language, subject, all)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("failed to open tutorial store", zap.Error(err))
	}
	defer st.Close() //nolint:errcheck

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

	svc := service.NewIngestService(pipeline, st, cfg.Scraper.Languages, cfg.Scraper.Subjects, logger.Log)

	progress := func(current, total int, message string) {
		fmt.Printf("[%d/%d] %s\n", current, total, message)
	}

	result, err := svc.Scrape(ctx, req, progress)
	if err != nil {
		logger.Log.Fatal("scrape failed", zap.Error(err))
	}

	fmt.Printf("\nSession %s: found %d, added %d, duplicates %d",
		result.SessionID, result.Found, result.Added, result.Duplicates)
	if result.Failed > 0 {
		fmt.Printf(", failed %d", result.Failed)
	}
	fmt.Println()
}

func buildRequest(language, subject string, all bool) (models.ScrapeRequestDTO, error) {
	switch {
	case all:
		return models.ScrapeRequestDTO{Type: models.ScrapeTypeAll}, nil
	case language != "":
		return models.ScrapeRequestDTO{Type: models.ScrapeTypeLanguage, Language: language}, nil
	case subject != "":
		return models.ScrapeRequestDTO{Type: models.ScrapeTypeSubject, Subject: subject}, nil
	default:
		return models.ScrapeRequestDTO{}, fmt.Errorf("one of -all, -language or -subject is required")
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
