// Package postgres implements the TutorialStore contract on PostgreSQL.
//
// The tutorials table is LIST-partitioned by programming_language, so the
// primary key must include the partition key and uniqueness of video_id alone
// cannot be a table constraint. Point operations given only a video id first
// resolve the partition key with a cross-partition lookup; that extra
// round-trip stays entirely inside this adapter.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorial-scout/tutorial-scout-go/internal/config"
	"github.com/tutorial-scout/tutorial-scout-go/internal/models"
	"github.com/tutorial-scout/tutorial-scout-go/internal/store"
)

const tutorialColumns = `video_id, title, description, channel_name, channel_id,
	published_at, duration_seconds, view_count, like_count, thumbnail_url,
	video_url, programming_language, subject, country_code, added_at,
	is_favorite, is_watched`

// Store is the PostgreSQL-backed TutorialStore.
type Store struct {
	pool *pgxpool.Pool
}

var _ store.TutorialStore = (*Store)(nil)

// New creates a connection pool from the given configuration and verifies
// connectivity. Missing credentials surface here, before any pipeline work.
func New(ctx context.Context, cfg config.PostgresConfig) (*Store, error) {
	if cfg.Host == "" || cfg.Name == "" {
		return nil, fmt.Errorf("postgres store is not configured: set store.postgres.host and store.postgres.name (or the APP_STORE_POSTGRES_* environment variables)")
	}

	connString := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool; used by tests.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// AddTutorial inserts the record unless its video id already exists in any
// partition. added_at is assigned by the database at insertion time. The
// pipeline runs single-threaded, so the lookup-then-insert sequence is not
// racing other writers; ON CONFLICT still backstops the same-partition case.
func (s *Store) AddTutorial(ctx context.Context, tutorial *models.Tutorial) (bool, error) {
	var existing string
	err := s.pool.QueryRow(ctx,
		`SELECT programming_language FROM tutorials WHERE video_id = $1 LIMIT 1`,
		tutorial.VideoID,
	).Scan(&existing)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, wrapError(err, "check duplicate tutorial")
	}

	query := `
		INSERT INTO tutorials (` + tutorialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), $15, $16)
		ON CONFLICT (programming_language, video_id) DO NOTHING
		RETURNING added_at
	`

	var addedAt time.Time
	err = s.pool.QueryRow(ctx, query,
		tutorial.VideoID,
		tutorial.Title,
		tutorial.Description,
		tutorial.ChannelName,
		tutorial.ChannelID,
		tutorial.PublishedAt,
		tutorial.DurationSeconds,
		tutorial.ViewCount,
		tutorial.LikeCount,
		tutorial.ThumbnailURL,
		tutorial.VideoURL,
		tutorial.ProgrammingLanguage,
		tutorial.Subject,
		tutorial.CountryCode,
		tutorial.IsFavorite,
		tutorial.IsWatched,
	).Scan(&addedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict within the same partition.
		return false, nil
	}
	if err != nil {
		if store.IsDuplicateKey(wrapError(err, "")) {
			return false, nil
		}
		return false, wrapError(err, "add tutorial")
	}

	tutorial.AddedAt = addedAt
	return true, nil
}

func (s *Store) GetAllTutorials(ctx context.Context) ([]models.Tutorial, error) {
	query := `SELECT ` + tutorialColumns + ` FROM tutorials ORDER BY added_at DESC`
	return s.queryTutorials(ctx, "get all tutorials", query)
}

// GetTutorialsByLanguage is a single-partition query: the filter field is the
// partition key.
func (s *Store) GetTutorialsByLanguage(ctx context.Context, language string) ([]models.Tutorial, error) {
	query := `
		SELECT ` + tutorialColumns + `
		FROM tutorials
		WHERE programming_language = $1
		ORDER BY view_count DESC
	`
	return s.queryTutorials(ctx, "get tutorials by language", query, language)
}

func (s *Store) GetTutorialsBySubject(ctx context.Context, subject string) ([]models.Tutorial, error) {
	query := `
		SELECT ` + tutorialColumns + `
		FROM tutorials
		WHERE subject = $1
		ORDER BY view_count DESC
	`
	return s.queryTutorials(ctx, "get tutorials by subject", query, subject)
}

func (s *Store) SearchTutorials(ctx context.Context, searchQuery string) ([]models.Tutorial, error) {
	query := `
		SELECT ` + tutorialColumns + `
		FROM tutorials
		WHERE title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY view_count DESC
	`
	return s.queryTutorials(ctx, "search tutorials", query, searchQuery)
}

func (s *Store) GetFavorites(ctx context.Context) ([]models.Tutorial, error) {
	query := `SELECT ` + tutorialColumns + ` FROM tutorials WHERE is_favorite ORDER BY added_at DESC`
	return s.queryTutorials(ctx, "get favorites", query)
}

func (s *Store) GetCategoriesSummary(ctx context.Context) (*models.CategorySummary, error) {
	summary := &models.CategorySummary{
		ByLanguage: map[string]int{},
		BySubject:  map[string]int{},
	}

	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tutorials`).Scan(&summary.Total); err != nil {
		return nil, wrapError(err, "count tutorials")
	}

	if err := s.countByField(ctx, "programming_language", summary.ByLanguage); err != nil {
		return nil, err
	}
	if err := s.countByField(ctx, "subject", summary.BySubject); err != nil {
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
	partitionKey, err := s.resolvePartitionKey(ctx, videoID)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM tutorials WHERE programming_language = $1 AND video_id = $2`,
		partitionKey, videoID,
	)
	if err != nil {
		return wrapError(err, "delete tutorial")
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// resolvePartitionKey finds the programming_language for a video id. This is
// the cross-partition lookup point operations need before they can address a
// single partition.
func (s *Store) resolvePartitionKey(ctx context.Context, videoID string) (string, error) {
	var partitionKey string
	err := s.pool.QueryRow(ctx,
		`SELECT programming_language FROM tutorials WHERE video_id = $1 LIMIT 1`,
		videoID,
	).Scan(&partitionKey)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", wrapError(err, "resolve partition key")
	}
	return partitionKey, nil
}

func (s *Store) updateFlag(ctx context.Context, videoID, column string, value bool) error {
	partitionKey, err := s.resolvePartitionKey(ctx, videoID)
	if err != nil {
		return err
	}

	// column is one of the two flag columns, never caller input.
	query := fmt.Sprintf(
		`UPDATE tutorials SET %s = $1 WHERE programming_language = $2 AND video_id = $3`,
		column,
	)
	tag, err := s.pool.Exec(ctx, query, value, partitionKey, videoID)
	if err != nil {
		return wrapError(err, "update "+column)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) countByField(ctx context.Context, field string, out map[string]int) error {
	// field is a fixed column name, never caller input.
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) FROM tutorials WHERE %s <> '' GROUP BY %s`,
		field, field, field,
	)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return wrapError(err, "count by "+field)
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		var count int
		if err := rows.Scan(&value, &count); err != nil {
			return fmt.Errorf("scan %s count: %w", field, err)
		}
		out[value] = count
	}
	return rows.Err()
}

func (s *Store) queryTutorials(ctx context.Context, operation, query string, args ...any) ([]models.Tutorial, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError(err, operation)
	}
	defer rows.Close()

	return scanTutorials(rows)
}

func scanTutorials(rows pgx.Rows) ([]models.Tutorial, error) {
	var tutorials []models.Tutorial

	for rows.Next() {
		var t models.Tutorial
		err := rows.Scan(
			&t.VideoID,
			&t.Title,
			&t.Description,
			&t.ChannelName,
			&t.ChannelID,
			&t.PublishedAt,
			&t.DurationSeconds,
			&t.ViewCount,
			&t.LikeCount,
			&t.ThumbnailURL,
			&t.VideoURL,
			&t.ProgrammingLanguage,
			&t.Subject,
			&t.CountryCode,
			&t.AddedAt,
			&t.IsFavorite,
			&t.IsWatched,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tutorial: %w", err)
		}
		tutorials = append(tutorials, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tutorials: %w", err)
	}

	return tutorials, nil
}

// wrapError maps pgx errors onto the store sentinels.
func wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, store.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w (constraint: %s)", operation, store.ErrDuplicateKey, pgErr.ConstraintName)
		default:
			return fmt.Errorf("%s: database error [%s]: %w", operation, pgErr.Code, err)
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
