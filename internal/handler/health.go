package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutorial-scout/tutorial-scout-go/internal/store"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store store.TutorialStore
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(st store.TutorialStore) *HealthHandler {
	return &HealthHandler{store: st}
}

// LivenessProbe checks if the application is running.
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	})
}

// ReadinessProbe checks if the application is ready to serve traffic.
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"store":  "unhealthy",
			"error":  err.Error(),
			"time":   time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"store":  "healthy",
		"time":   time.Now(),
	})
}
