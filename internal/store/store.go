// Package store defines the persistence contract for tutorial records.
// Backends are interchangeable: the rest of the system depends only on the
// TutorialStore interface.
package store

import (
	"context"
	"errors"

	"github.com/tutorial-scout/tutorial-scout-go/internal/models"
)

var (
	// ErrNotFound is returned when a requested record is not found.
	ErrNotFound = errors.New("tutorial not found")

	// ErrDuplicateKey is returned when an insert hits an existing video id.
	// AddTutorial maps it to a false return; it is not a failure.
	ErrDuplicateKey = errors.New("duplicate video id")
)

// TutorialStore is the persistence contract. video_id is the uniqueness key;
// added_at is assigned by the store at first insertion; is_favorite and
// is_watched are the only fields mutable after insertion.
type TutorialStore interface {
	// AddTutorial inserts the record if its video id is not already present.
	// It returns false with a nil error on duplicate.
	AddTutorial(ctx context.Context, tutorial *models.Tutorial) (bool, error)

	// GetAllTutorials returns all records, most recently ingested first.
	GetAllTutorials(ctx context.Context) ([]models.Tutorial, error)

	// GetTutorialsByLanguage returns records for one programming language,
	// ordered by view count descending.
	GetTutorialsByLanguage(ctx context.Context, language string) ([]models.Tutorial, error)

	// GetTutorialsBySubject returns records for one subject, ordered by view
	// count descending.
	GetTutorialsBySubject(ctx context.Context, subject string) ([]models.Tutorial, error)

	// SearchTutorials matches query case-insensitively against title or
	// description, ordered by view count descending.
	SearchTutorials(ctx context.Context, query string) ([]models.Tutorial, error)

	// GetFavorites returns favorited records, most recently ingested first.
	GetFavorites(ctx context.Context) ([]models.Tutorial, error)

	// GetCategoriesSummary returns per-category counts and the grand total.
	GetCategoriesSummary(ctx context.Context) (*models.CategorySummary, error)

	// MarkWatched flags a record as watched. Returns ErrNotFound on a missing
	// id.
	MarkWatched(ctx context.Context, videoID string) error

	// MarkFavorite sets the favorite flag. Returns ErrNotFound on a missing
	// id.
	MarkFavorite(ctx context.Context, videoID string, value bool) error

	// DeleteTutorial removes a record by id. Returns ErrNotFound on a missing
	// id.
	DeleteTutorial(ctx context.Context, videoID string) error

	// Ping verifies backend connectivity.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// IsNotFound returns true if the error is an ErrNotFound error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateKey returns true if the error is an ErrDuplicateKey error.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}
