// Package service ties the acquisition pipeline to the tutorial store.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorial-scout/tutorial-scout-go/internal/metrics"
	"github.com/tutorial-scout/tutorial-scout-go/internal/models"
	"github.com/tutorial-scout/tutorial-scout-go/internal/scraper"
	"github.com/tutorial-scout/tutorial-scout-go/internal/store"
)

// TutorialSearcher is the pipeline surface the ingest service consumes.
type TutorialSearcher interface {
	SearchTutorials(ctx context.Context, language, subject string, maxResults int64) []models.Tutorial
	ScrapeAllCategories(ctx context.Context, languages, subjects []string, progress scraper.ProgressFunc) []models.Tutorial
}

// IngestService runs scrape sessions: it selects the query scope, invokes the
// pipeline and hands every candidate to the store, counting genuine inserts
// and duplicate rejections separately.
type IngestService struct {
	searcher  TutorialSearcher
	store     store.TutorialStore
	languages []string
	subjects  []string
	log       *zap.Logger
}

// NewIngestService creates an IngestService. languages and subjects are the
// configured category lists used for full sweeps.
func NewIngestService(searcher TutorialSearcher, st store.TutorialStore, languages, subjects []string, log *zap.Logger) *IngestService {
	if log == nil {
		log = zap.NewNop()
	}
	return &IngestService{
		searcher:  searcher,
		store:     st,
		languages: languages,
		subjects:  subjects,
		log:       log,
	}
}

// Languages returns the configured language categories.
func (s *IngestService) Languages() []string { return s.languages }

// Subjects returns the configured subject categories.
func (s *IngestService) Subjects() []string { return s.subjects }

// Scrape executes one scrape session for the requested scope and persists the
// results. A duplicate insert is a normal outcome, not an error; true insert
// failures are logged and excluded from both counts.
func (s *IngestService) Scrape(ctx context.Context, req models.ScrapeRequestDTO, progress scraper.ProgressFunc) (*models.ScrapeResultDTO, error) {
	sessionID := uuid.New()
	startedAt := time.Now()

	var tutorials []models.Tutorial

	switch req.Type {
	case models.ScrapeTypeAll:
		tutorials = s.searcher.ScrapeAllCategories(ctx, s.languages, s.subjects, progress)
		metrics.QueriesTotal.WithLabelValues("language").Add(float64(len(s.languages)))
		metrics.QueriesTotal.WithLabelValues("subject").Add(float64(len(s.subjects)))
	case models.ScrapeTypeLanguage:
		if req.Language == "" {
			return nil, fmt.Errorf("scrape type %q requires a language", req.Type)
		}
		tutorials = s.searcher.SearchTutorials(ctx, req.Language, "", 0)
		metrics.QueriesTotal.WithLabelValues("language").Inc()
	case models.ScrapeTypeSubject:
		if req.Subject == "" {
			return nil, fmt.Errorf("scrape type %q requires a subject", req.Type)
		}
		tutorials = s.searcher.SearchTutorials(ctx, "", req.Subject, 0)
		metrics.QueriesTotal.WithLabelValues("subject").Inc()
	default:
		return nil, fmt.Errorf("unknown scrape type %q", req.Type)
	}

	result := &models.ScrapeResultDTO{
		SessionID: sessionID,
		Found:     len(tutorials),
		StartedAt: startedAt,
	}

	for i := range tutorials {
		added, err := s.store.AddTutorial(ctx, &tutorials[i])
		if err != nil {
			result.Failed++
			s.log.Error("failed to store tutorial",
				zap.String("session_id", sessionID.String()),
				zap.String("video_id", tutorials[i].VideoID),
				zap.Error(err),
			)
			continue
		}
		if added {
			result.Added++
			metrics.TutorialsAdded.Inc()
		} else {
			result.Duplicates++
			metrics.DuplicatesSkipped.Inc()
		}
	}

	result.FinishedAt = time.Now()
	metrics.SweepDuration.Observe(result.FinishedAt.Sub(startedAt).Seconds())

	s.log.Info("scrape session finished",
		zap.String("session_id", sessionID.String()),
		zap.String("type", string(req.Type)),
		zap.Int("found", result.Found),
		zap.Int("added", result.Added),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}
