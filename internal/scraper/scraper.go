// Package scraper implements the tutorial acquisition pipeline: it builds
// category-driven search queries against the YouTube Data API, enriches the
// hits with batched detail lookups, applies the content-quality filters and
// deduplicates across queries.
package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/youtube/v3"

	"github.com/tutorial-scout/tutorial-scout-go/internal/models"
)

// Default query bounds, overridable via Options.
const (
	DefaultMaxResults         = 25
	DefaultMinDurationSeconds = 120
)

// maximum description length kept on a stored record
const maxDescriptionLen = 500

// ProgressFunc is invoked after each query dispatch during a category sweep.
// It is advisory only and always called on the caller's goroutine.
type ProgressFunc func(current, total int, message string)

// Options configures the pipeline filters and query bounds.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Options struct {
	MinDurationSeconds int
	MaxResults         int64
	// UploadDateFilter is one of: any, hour, today, week, month, year.
	UploadDateFilter string
	LocaleFilter     *LocaleFilter
}

// Scraper runs search queries and turns raw API hits into clean tutorial
// candidates. It holds no mutable state between calls and performs no
// retries: a failed query degrades to an empty result for that query only.
type Scraper struct {
	api  videoSearchAPI
	opts Options
	log  *zap.Logger
	now  func() time.Time
}

// New creates a Scraper on top of the given API client.
func New(api videoSearchAPI, opts Options, log *zap.Logger) *Scraper {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.MinDurationSeconds <= 0 {
		opts.MinDurationSeconds = DefaultMinDurationSeconds
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scraper{
		api:  api,
		opts: opts,
		log:  log,
		now:  time.Now,
	}
}

// SearchTutorials runs one search query scoped by language and/or subject and
// returns the filtered candidates. Both scopes may be empty; the query always
// carries the literal term "tutorial". maxResults <= 0 selects the configured
// default. Request-level API failures are logged and yield an empty list so a
// single failed query never aborts a multi-query sweep.
func (s *Scraper) SearchTutorials(ctx context.Context, language, subject string, maxResults int64) []models.Tutorial {
	if maxResults <= 0 {
		maxResults = s.opts.MaxResults
	}

	query := buildQuery(language, subject)
	publishedAfter := publishedAfter(s.now().UTC(), s.opts.UploadDateFilter)

	hits, err := s.api.Search(ctx, query, publishedAfter, maxResults)
	if err != nil {
		s.log.Error("YouTube search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return []models.Tutorial{}
	}

	videoIDs := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.Id != nil && hit.Id.VideoId != "" {
			videoIDs = append(videoIDs, hit.Id.VideoId)
		}
	}

	details, err := s.api.VideoDetails(ctx, videoIDs)
	if err != nil {
		s.log.Error("video detail lookup failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return []models.Tutorial{}
	}

	tutorials := make([]models.Tutorial, 0, len(hits))
	for _, hit := range hits {
		if hit.Id == nil || hit.Id.VideoId == "" || hit.Snippet == nil {
			continue
		}
		videoID := hit.Id.VideoId
		snippet := hit.Snippet

		// Missing detail lookup (API omission) degrades to zero
		// counts/duration instead of failing the batch.
		detail := details[videoID]

		if detail.DurationSeconds < s.opts.MinDurationSeconds {
			continue
		}

		if s.opts.LocaleFilter.Matches(snippet.Title, snippet.Description, snippet.ChannelTitle) {
			continue
		}

		tutorials = append(tutorials, models.Tutorial{
			VideoID:             videoID,
			Title:               snippet.Title,
			Description:         truncate(snippet.Description, maxDescriptionLen),
			ChannelName:         snippet.ChannelTitle,
			ChannelID:           snippet.ChannelId,
			PublishedAt:         parsePublishedAt(snippet.PublishedAt),
			DurationSeconds:     detail.DurationSeconds,
			ViewCount:           detail.ViewCount,
			LikeCount:           detail.LikeCount,
			ThumbnailURL:        highThumbnail(snippet),
			VideoURL:            WatchURL(videoID),
			ProgrammingLanguage: language,
			Subject:             subject,
			CountryCode:         detail.CountryCode,
		})
	}

	return tutorials
}

// ScrapeAllCategories runs one language-scoped query per language and one
// subject-scoped query per subject, then deduplicates the combined results by
// video id keeping first-occurrence order. progress may be nil.
func (s *Scraper) ScrapeAllCategories(ctx context.Context, languages, subjects []string, progress ProgressFunc) []models.Tutorial {
	total := len(languages) + len(subjects)
	current := 0

	var all []models.Tutorial

	for _, lang := range languages {
		current++
		if progress != nil {
			progress(current, total, fmt.Sprintf("Searching %s tutorials...", lang))
		}
		all = append(all, s.SearchTutorials(ctx, lang, "", 0)...)
	}

	for _, subj := range subjects {
		current++
		if progress != nil {
			progress(current, total, fmt.Sprintf("Searching %s tutorials...", subj))
		}
		all = append(all, s.SearchTutorials(ctx, "", subj, 0)...)
	}

	return dedupeByVideoID(all)
}

// WatchURL constructs the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func buildQuery(language, subject string) string {
	var parts []string
	if language != "" {
		parts = append(parts, language+" programming")
	}
	if subject != "" {
		parts = append(parts, subject)
	}
	parts = append(parts, "tutorial")
	return strings.Join(parts, " ")
}

// publishedAfter derives the RFC 3339 UTC lower bound for upload recency.
// Unknown modes fall back to "any" (roughly ten years).
func publishedAfter(now time.Time, mode string) string {
	var delta time.Duration
	switch mode {
	case "hour":
		delta = time.Hour
	case "today":
		delta = 24 * time.Hour
	case "week":
		delta = 7 * 24 * time.Hour
	case "month":
		delta = 30 * 24 * time.Hour
	case "year":
		delta = 365 * 24 * time.Hour
	default:
		delta = 10 * 365 * 24 * time.Hour
	}
	return now.Add(-delta).Format("2006-01-02T15:04:05Z")
}

func dedupeByVideoID(tutorials []models.Tutorial) []models.Tutorial {
	seen := make(map[string]struct{}, len(tutorials))
	unique := make([]models.Tutorial, 0, len(tutorials))
	for _, t := range tutorials {
		if _, ok := seen[t.VideoID]; ok {
			continue
		}
		seen[t.VideoID] = struct{}{}
		unique = append(unique, t)
	}
	return unique
}

// truncate limits s to max characters without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func highThumbnail(snippet *youtube.SearchResultSnippet) string {
	if snippet.Thumbnails == nil || snippet.Thumbnails.High == nil {
		return ""
	}
	return snippet.Thumbnails.High.Url
}
