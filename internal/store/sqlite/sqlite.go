// Package sqlite implements the TutorialStore contract on an embedded
// file-based SQLite database: a single table with a unique key on video_id
// and secondary indices on the category fields.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tutorial-scout/tutorial-scout-go/internal/models"
	"github.com/tutorial-scout/tutorial-scout-go/internal/store"
)

// Store is the SQLite-backed TutorialStore.
type Store struct {
	db *gorm.DB
}

var _ store.TutorialStore = (*Store)(nil)

// New opens (or creates) the database file and migrates the schema.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store is not configured: set store.sqlite.path (or APP_STORE_SQLITE_PATH) to a database file location")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&models.Tutorial{}); err != nil {
		return nil, fmt.Errorf("migrate tutorials table: %w", err)
	}

	return &Store{db: db}, nil
}

// AddTutorial inserts the record if the video id is new; added_at is assigned
// here, at first successful insertion.
func (s *Store) AddTutorial(ctx context.Context, tutorial *models.Tutorial) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Tutorial{}).
		Where("video_id = ?", tutorial.VideoID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check duplicate tutorial: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tutorial.AddedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Create(tutorial).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("add tutorial: %w", err)
	}

	return true, nil
}

func (s *Store) GetAllTutorials(ctx context.Context) ([]models.Tutorial, error) {
	var tutorials []models.Tutorial
	err := s.db.WithContext(ctx).
		Order("added_at DESC").
		Find(&tutorials).Error
	if err != nil {
		return nil, fmt.Errorf("get all tutorials: %w", err)
	}
	return tutorials, nil
}

func (s *Store) GetTutorialsByLanguage(ctx context.Context, language string) ([]models.Tutorial, error) {
	var tutorials []models.Tutorial
	err := s.db.WithContext(ctx).
		Where("programming_language = ?", language).
		Order("view_count DESC").
		Find(&tutorials).Error
	if err != nil {
		return nil, fmt.Errorf("get tutorials by language: %w", err)
	}
	return tutorials, nil
}

func (s *Store) GetTutorialsBySubject(ctx context.Context, subject string) ([]models.Tutorial, error) {
	var tutorials []models.Tutorial
	err := s.db.WithContext(ctx).
		Where("subject = ?", subject).
		Order("view_count DESC").
		Find(&tutorials).Error
	if err != nil {
		return nil, fmt.Errorf("get tutorials by subject: %w", err)
	}
	return tutorials, nil
}

func (s *Store) SearchTutorials(ctx context.Context, query string) ([]models.Tutorial, error) {
	// LIKE is case-insensitive for ASCII in SQLite; lower() both sides keeps
	// the behavior explicit.
	pattern := "%" + strings.ToLower(query) + "%"
	var tutorials []models.Tutorial
	err := s.db.WithContext(ctx).
		Where("lower(title) LIKE ? OR lower(description) LIKE ?", pattern, pattern).
		Order("view_count DESC").
		Find(&tutorials).Error
	if err != nil {
		return nil, fmt.Errorf("search tutorials: %w", err)
	}
	return tutorials, nil
}

func (s *Store) GetFavorites(ctx context.Context) ([]models.Tutorial, error) {
	var tutorials []models.Tutorial
	err := s.db.WithContext(ctx).
		Where("is_favorite = ?", true).
		Order("added_at DESC").
		Find(&tutorials).Error
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}
	return tutorials, nil
}

func (s *Store) GetCategoriesSummary(ctx context.Context) (*models.CategorySummary, error) {
	summary := &models.CategorySummary{
		ByLanguage: map[string]int{},
		BySubject:  map[string]int{},
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Tutorial{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count tutorials: %w", err)
	}
	summary.Total = int(total)

	if err := s.countByColumn(ctx, "programming_language", summary.ByLanguage); err != nil {
		return nil, err
	}
	if err := s.countByColumn(ctx, "subject", summary.BySubject); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *Store) MarkWatched(ctx context.Context, videoID string) error {
	return s.updateFlag(ctx, videoID, "is_watched", true)
}

func (s *Store) MarkFavorite(ctx context.Context, videoID string, value bool) error {
	return s.updateFlag(ctx, videoID, "is_favorite", value)
}

func (s *Store) DeleteTutorial(ctx context.Context, videoID string) error {
	result := s.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Delete(&models.Tutorial{})
	if result.Error != nil {
		return fmt.Errorf("delete tutorial: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) updateFlag(ctx context.Context, videoID, column string, value bool) error {
	// column is one of the two flag columns, never caller input.
	result := s.db.WithContext(ctx).
		Model(&models.Tutorial{}).
		Where("video_id = ?", videoID).
		Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("update %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) countByColumn(ctx context.Context, column string, out map[string]int) error {
	type row struct {
		Value string
		Count int
	}
	var rows []row
	// column is a fixed column name, never caller input.
	err := s.db.WithContext(ctx).
		Model(&models.Tutorial{}).
		Select(column+" AS value, COUNT(*) AS count").
		Where(column+" <> ''").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("count by %s: %w", column, err)
	}
	for _, r := range rows {
		out[r.Value] = r.Count
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
