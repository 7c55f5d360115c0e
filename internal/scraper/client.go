package scraper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// detailBatchSize is the YouTube videos.list cap on ids per request.
const detailBatchSize = 50

// VideoDetails carries the enrichment fields resolved by the batched
// videos.list lookup.
type VideoDetails struct {
	DurationSeconds int
	ViewCount       int64
	LikeCount       int64
	CountryCode     string
}

// videoSearchAPI is the slice of the YouTube Data API the pipeline consumes.
type videoSearchAPI interface {
	Search(ctx context.Context, query string, publishedAfter string, maxResults int64) ([]*youtube.SearchResult, error)
	VideoDetails(ctx context.Context, videoIDs []string) (map[string]VideoDetails, error)
}

// Client wraps the YouTube Data API v3 service.
type Client struct {
	service *youtube.Service
	log     *zap.Logger
}

// NewClient creates a new YouTube API client.
func NewClient(apiKey string, log *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required: set YOUTUBE_APIKEY (or youtube.apikey in config) to a Data API v3 key")
	}
	if log == nil {
		log = zap.NewNop()
	}

	service, err := youtube.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service, log: log}, nil
}

// Search runs a single search.list query scoped to tutorial-shaped videos:
// video type only, medium duration class, English preferred, HD preferred,
// relevance ordering, safe search off.
func (c *Client) Search(ctx context.Context, query string, publishedAfter string, maxResults int64) ([]*youtube.SearchResult, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		VideoDuration("medium").
		RelevanceLanguage("en").
		MaxResults(maxResults).
		Order("relevance").
		PublishedAfter(publishedAfter).
		SafeSearch("none").
		VideoDefinition("high").
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	return response.Items, nil
}

// VideoDetails fetches contentDetails, statistics and snippet for the given
// ids, batching at the API cap of 50 ids per request. A failed batch is logged
// and skipped; its ids simply stay absent from the result map.
func (c *Client) VideoDetails(ctx context.Context, videoIDs []string) (map[string]VideoDetails, error) {
	details := make(map[string]VideoDetails, len(videoIDs))

	for _, batch := range batchVideoIDs(videoIDs, detailBatchSize) {
		call := c.service.Videos.List([]string{"contentDetails", "statistics", "snippet"}).
			Id(batch...).
			Context(ctx)

		response, err := call.Do()
		if err != nil {
			c.log.Error("failed to fetch video details",
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
			continue
		}

		for _, item := range response.Items {
			d := VideoDetails{}
			if item.ContentDetails != nil {
				d.DurationSeconds = ParseDuration(item.ContentDetails.Duration)
			}
			if item.Statistics != nil {
				d.ViewCount = int64(item.Statistics.ViewCount)
				d.LikeCount = int64(item.Statistics.LikeCount)
			}
			if item.Snippet != nil {
				d.CountryCode = item.Snippet.DefaultAudioLanguage
			}
			details[item.Id] = d
		}
	}

	return details, nil
}

// batchVideoIDs splits a list of video ids into batches of at most batchSize.
func batchVideoIDs(videoIDs []string, batchSize int) [][]string {
	if batchSize <= 0 || batchSize > detailBatchSize {
		batchSize = detailBatchSize
	}

	var batches [][]string
	for i := 0; i < len(videoIDs); i += batchSize {
		end := i + batchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		batches = append(batches, videoIDs[i:end])
	}

	return batches
}

// parsePublishedAt parses RFC3339 timestamps from the YouTube API. A malformed
// timestamp yields the zero time rather than dropping the record.
func parsePublishedAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
