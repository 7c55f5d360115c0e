// Package models contains the data models and DTOs for the tutorial scout service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Tutorial represents one YouTube video's metadata plus the user-assigned flags,
// keyed by the platform video identifier.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Tutorial struct {
	VideoID             string    `json:"video_id" gorm:"column:video_id;primaryKey"`
	Title               string    `json:"title" gorm:"column:title"`
	Description         string    `json:"description" gorm:"column:description"`
	ChannelName         string    `json:"channel_name" gorm:"column:channel_name"`
	ChannelID           string    `json:"channel_id" gorm:"column:channel_id"`
	PublishedAt         time.Time `json:"published_at" gorm:"column:published_at"`
	DurationSeconds     int       `json:"duration_seconds" gorm:"column:duration_seconds"`
	ViewCount           int64     `json:"view_count" gorm:"column:view_count"`
	LikeCount           int64     `json:"like_count" gorm:"column:like_count"`
	ThumbnailURL        string    `json:"thumbnail_url" gorm:"column:thumbnail_url"`
	VideoURL            string    `json:"video_url" gorm:"column:video_url"`
	ProgrammingLanguage string    `json:"programming_language,omitempty" gorm:"column:programming_language;index"`
	Subject             string    `json:"subject,omitempty" gorm:"column:subject;index"`
	CountryCode         string    `json:"country_code,omitempty" gorm:"column:country_code"`
	AddedAt             time.Time `json:"added_at" gorm:"column:added_at"`
	IsFavorite          bool      `json:"is_favorite" gorm:"column:is_favorite"`
	IsWatched           bool      `json:"is_watched" gorm:"column:is_watched"`
}

// CategorySummary aggregates stored tutorial counts per category.
type CategorySummary struct {
	Total      int            `json:"total"`
	ByLanguage map[string]int `json:"by_language"`
	BySubject  map[string]int `json:"by_subject"`
}

// ScrapeType selects the scope of a scrape request.
type ScrapeType string

// ScrapeType constants define the supported scrape scopes.
const (
	ScrapeTypeAll      ScrapeType = "all"
	ScrapeTypeLanguage ScrapeType = "language"
	ScrapeTypeSubject  ScrapeType = "subject"
)

// ScrapeRequestDTO represents a scrape request.
type ScrapeRequestDTO struct {
	Type     ScrapeType `json:"type" binding:"required,oneof=all language subject"`
	Language string     `json:"language" binding:"max=50"`
	Subject  string     `json:"subject" binding:"max=100"`
}

// ScrapeResultDTO represents the outcome of a scrape session.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ScrapeResultDTO struct {
	SessionID  uuid.UUID `json:"sessionId"`
	Found      int       `json:"found"`
	Added      int       `json:"added"`
	Duplicates int       `json:"duplicates"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// CategoriesDTO lists the configured search categories.
type CategoriesDTO struct {
	Languages []string `json:"languages"`
	Subjects  []string `json:"subjects"`
}

// ErrorResponse represents an error response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}
