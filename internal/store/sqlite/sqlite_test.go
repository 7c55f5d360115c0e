package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorial-scout/tutorial-scout-go/internal/models"
	"github.com/tutorial-scout/tutorial-scout-go/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "tutorials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleTutorial(videoID string) *models.Tutorial {
	return &models.Tutorial{
		VideoID:             videoID,
		Title:               "Python Decorators Explained",
		Description:         "A deep dive into decorators and closures.",
		ChannelName:         "CodeChannel",
		ChannelID:           "UC123",
		PublishedAt:         time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		DurationSeconds:     930,
		ViewCount:           15000,
		LikeCount:           800,
		ThumbnailURL:        "https://img.example/" + videoID + ".jpg",
		VideoURL:            "https://www.youtube.com/watch?v=" + videoID,
		ProgrammingLanguage: "Python",
		Subject:             "Web Development",
		CountryCode:         "en-US",
	}
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_STORE_SQLITE_PATH")
}

func TestAddTutorialRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := sampleTutorial("vid1")
	added, err := s.AddTutorial(ctx, in)
	require.NoError(t, err)
	assert.True(t, added)
	assert.False(t, in.AddedAt.IsZero(), "added_at must be assigned at insertion")

	all, err := s.GetAllTutorials(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, "vid1", got.VideoID)
	assert.Equal(t, "Python Decorators Explained", got.Title)
	assert.Equal(t, "CodeChannel", got.ChannelName)
	assert.Equal(t, 930, got.DurationSeconds)
	assert.Equal(t, int64(15000), got.ViewCount)
	assert.Equal(t, int64(800), got.LikeCount)
	assert.Equal(t, "Python", got.ProgrammingLanguage)
	assert.Equal(t, "Web Development", got.Subject)
	assert.Equal(t, "en-US", got.CountryCode)
	assert.False(t, got.IsFavorite)
	assert.False(t, got.IsWatched)
}

func TestAddTutorialDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddTutorial(ctx, sampleTutorial("vid1"))
	require.NoError(t, err)
	assert.True(t, added)

	again := sampleTutorial("vid1")
	again.Title = "Different Title Same Video"
	added, err = s.AddTutorial(ctx, again)
	require.NoError(t, err)
	assert.False(t, added, "duplicate insert must report false without error")

	all, err := s.GetAllTutorials(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Python Decorators Explained", all[0].Title, "first record wins")
}

func TestGetTutorialsByLanguageOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	views := map[string]int64{"low": 10, "high": 500, "mid": 100}
	for id, count := range views {
		tut := sampleTutorial(id)
		tut.ViewCount = count
		_, err := s.AddTutorial(ctx, tut)
		require.NoError(t, err)
	}
	other := sampleTutorial("go1")
	other.ProgrammingLanguage = "Go"
	_, err := s.AddTutorial(ctx, other)
	require.NoError(t, err)

	got, err := s.GetTutorialsByLanguage(ctx, "Python")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "high", got[0].VideoID)
	assert.Equal(t, "mid", got[1].VideoID)
	assert.Equal(t, "low", got[2].VideoID)
}

func TestGetTutorialsBySubject(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddTutorial(ctx, sampleTutorial("vid1"))
	require.NoError(t, err)
	ml := sampleTutorial("vid2")
	ml.Subject = "Machine Learning"
	_, err = s.AddTutorial(ctx, ml)
	require.NoError(t, err)

	got, err := s.GetTutorialsBySubject(ctx, "Machine Learning")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "vid2", got[0].VideoID)
}

func TestSearchTutorialsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	byTitle := sampleTutorial("vid1")
	byTitle.Title = "Mastering DOCKER Compose"
	byTitle.Description = "container orchestration basics"
	_, err := s.AddTutorial(ctx, byTitle)
	require.NoError(t, err)

	byDescription := sampleTutorial("vid2")
	byDescription.Title = "DevOps Fundamentals"
	byDescription.Description = "We cover docker, kubernetes and CI."
	_, err = s.AddTutorial(ctx, byDescription)
	require.NoError(t, err)

	unrelated := sampleTutorial("vid3")
	unrelated.Title = "Intro to SQL"
	unrelated.Description = "joins and indexes"
	_, err = s.AddTutorial(ctx, unrelated)
	require.NoError(t, err)

	got, err := s.SearchTutorials(ctx, "dOcKeR")
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = s.SearchTutorials(ctx, "no such thing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFavorites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"vid1", "vid2"} {
		_, err := s.AddTutorial(ctx, sampleTutorial(id))
		require.NoError(t, err)
	}

	require.NoError(t, s.MarkFavorite(ctx, "vid2", true))

	favs, err := s.GetFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "vid2", favs[0].VideoID)
	assert.True(t, favs[0].IsFavorite)

	require.NoError(t, s.MarkFavorite(ctx, "vid2", false))
	favs, err = s.GetFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestMarkWatched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddTutorial(ctx, sampleTutorial("vid1"))
	require.NoError(t, err)

	require.NoError(t, s.MarkWatched(ctx, "vid1"))

	all, err := s.GetAllTutorials(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsWatched)
}

func TestMutationsOnMissingID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.MarkWatched(ctx, "ghost"), store.ErrNotFound)
	assert.ErrorIs(t, s.MarkFavorite(ctx, "ghost", true), store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteTutorial(ctx, "ghost"), store.ErrNotFound)
}

func TestDeleteTutorial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddTutorial(ctx, sampleTutorial("vid1"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteTutorial(ctx, "vid1"))

	all, err := s.GetAllTutorials(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, s.DeleteTutorial(ctx, "vid1"), store.ErrNotFound)
}

func TestGetCategoriesSummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	summary, err := s.GetCategoriesSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, summary.ByLanguage)
	assert.Empty(t, summary.BySubject)

	records := []struct {
		id, language, subject string
	}{
		{"vid1", "Python", "Web Development"},
		{"vid2", "Python", "Machine Learning"},
		{"vid3", "Go", ""},
	}
	for _, r := range records {
		tut := sampleTutorial(r.id)
		tut.ProgrammingLanguage = r.language
		tut.Subject = r.subject
		_, err := s.AddTutorial(ctx, tut)
		require.NoError(t, err)
	}

	summary, err = s.GetCategoriesSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, map[string]int{"Python": 2, "Go": 1}, summary.ByLanguage)
	assert.Equal(t, map[string]int{"Web Development": 1, "Machine Learning": 1}, summary.BySubject)
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
