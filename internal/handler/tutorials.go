// Package handler provides HTTP request handlers for the application.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tutorial-scout/tutorial-scout-go/internal/models"
	"github.com/tutorial-scout/tutorial-scout-go/internal/store"
	"github.com/tutorial-scout/tutorial-scout-go/pkg/logger"
)

// TutorialHandler serves the stored tutorial collection.
type TutorialHandler struct {
	store store.TutorialStore
}

// NewTutorialHandler creates a new TutorialHandler instance.
func NewTutorialHandler(st store.TutorialStore) *TutorialHandler {
	return &TutorialHandler{store: st}
}

// ListAll returns all tutorials, most recently ingested first.
func (h *TutorialHandler) ListAll(c *gin.Context) {
	tutorials, err := h.store.GetAllTutorials(c.Request.Context())
	h.respondList(c, tutorials, err, "list tutorials")
}

// ByLanguage returns tutorials for one programming language.
func (h *TutorialHandler) ByLanguage(c *gin.Context) {
	tutorials, err := h.store.GetTutorialsByLanguage(c.Request.Context(), c.Param("language"))
	h.respondList(c, tutorials, err, "list tutorials by language")
}

// BySubject returns tutorials for one subject.
func (h *TutorialHandler) BySubject(c *gin.Context) {
	tutorials, err := h.store.GetTutorialsBySubject(c.Request.Context(), c.Param("subject"))
	h.respondList(c, tutorials, err, "list tutorials by subject")
}

// Search matches the q parameter against titles and descriptions.
func (h *TutorialHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   "query parameter 'q' is required",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	tutorials, err := h.store.SearchTutorials(c.Request.Context(), query)
	h.respondList(c, tutorials, err, "search tutorials")
}

// Favorites returns favorited tutorials.
func (h *TutorialHandler) Favorites(c *gin.Context) {
	tutorials, err := h.store.GetFavorites(c.Request.Context())
	h.respondList(c, tutorials, err, "list favorites")
}

// Summary returns per-category counts. A backend failure degrades to the
// zero-value summary so browsing surfaces never break on transient storage
// issues.
func (h *TutorialHandler) Summary(c *gin.Context) {
	summary, err := h.store.GetCategoriesSummary(c.Request.Context())
	if err != nil {
		logger.Log.Error("failed to build categories summary", zap.Error(err))
		summary = &models.CategorySummary{
			ByLanguage: map[string]int{},
			BySubject:  map[string]int{},
		}
	}
	c.JSON(http.StatusOK, summary)
}

// FavoriteRequestDTO is the optional body of a favorite mutation; the flag
// defaults to true.
type FavoriteRequestDTO struct {
	Value *bool `json:"value"`
}

// MarkFavorite sets or clears the favorite flag. A missing id is a logged
// no-op, not an error.
func (h *TutorialHandler) MarkFavorite(c *gin.Context) {
	videoID := c.Param("id")

	value := true
	var req FavoriteRequestDTO
	if err := c.ShouldBindJSON(&req); err == nil && req.Value != nil {
		value = *req.Value
	}

	err := h.store.MarkFavorite(c.Request.Context(), videoID, value)
	h.respondMutation(c, videoID, err, "mark favorite")
}

// MarkWatched flags a tutorial as watched. A missing id is a logged no-op.
func (h *TutorialHandler) MarkWatched(c *gin.Context) {
	videoID := c.Param("id")
	err := h.store.MarkWatched(c.Request.Context(), videoID)
	h.respondMutation(c, videoID, err, "mark watched")
}

// Delete removes a tutorial. A missing id is a logged no-op.
func (h *TutorialHandler) Delete(c *gin.Context) {
	videoID := c.Param("id")
	err := h.store.DeleteTutorial(c.Request.Context(), videoID)
	h.respondMutation(c, videoID, err, "delete tutorial")
}

func (h *TutorialHandler) respondList(c *gin.Context, tutorials []models.Tutorial, err error, operation string) {
	if err != nil {
		// Read failures degrade to an empty collection.
		logger.Log.Error("failed to "+operation, zap.Error(err))
		tutorials = nil
	}
	if tutorials == nil {
		tutorials = []models.Tutorial{}
	}
	c.JSON(http.StatusOK, gin.H{
		"tutorials": tutorials,
		"count":     len(tutorials),
	})
}

func (h *TutorialHandler) respondMutation(c *gin.Context, videoID string, err error, operation string) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "found": true})
	case store.IsNotFound(err):
		logger.Log.Warn("tutorial not found",
			zap.String("operation", operation),
			zap.String("video_id", videoID),
		)
		c.JSON(http.StatusOK, gin.H{"success": true, "found": false})
	default:
		logger.Log.Error("failed to "+operation,
			zap.String("video_id", videoID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:    http.StatusInternalServerError,
			Error:     "Internal Server Error",
			Message:   "failed to " + operation,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	}
}
