package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tutorial-scout/tutorial-scout-go/internal/models"
	"github.com/tutorial-scout/tutorial-scout-go/internal/service"
	"github.com/tutorial-scout/tutorial-scout-go/pkg/logger"
)

// ScrapeHandler triggers scrape sessions and exposes the configured
// categories. svc is nil when no YouTube API key is configured; scraping is
// then unavailable but browsing still works.
type ScrapeHandler struct {
	svc       *service.IngestService
	languages []string
	subjects  []string
}

// NewScrapeHandler creates a new ScrapeHandler instance. The category lists
// are served even when scraping itself is unavailable.
func NewScrapeHandler(svc *service.IngestService, languages, subjects []string) *ScrapeHandler {
	return &ScrapeHandler{svc: svc, languages: languages, subjects: subjects}
}

// HandleScrape runs one synchronous scrape session for the requested scope.
func (h *ScrapeHandler) HandleScrape(c *gin.Context) {
	if h.svc == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   "YouTube API key not configured. Set the YOUTUBE_APIKEY environment variable.",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	var req models.ScrapeRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   "Invalid request payload: " + err.Error(),
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	logger.Log.Info("scrape requested",
		zap.String("type", string(req.Type)),
		zap.String("language", req.Language),
		zap.String("subject", req.Subject),
	)

	result, err := h.svc.Scrape(c.Request.Context(), req, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Categories lists the configured language and subject categories for UI
// collaborators.
func (h *ScrapeHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, models.CategoriesDTO{
		Languages: h.languages,
		Subjects:  h.subjects,
	})
}
