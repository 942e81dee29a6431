package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/pharmreg_api/internal/utils"
)

var startTime = time.Now()

// Pinger is anything whose connectivity can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler provides health endpoint.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a new HealthHandler. A nil cache reports "disabled".
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// GetHealth responds with database and cache status.
// GET /health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "healthy", http.StatusOK
	dbStatus := "connected"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "disconnected"
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "connected"
		if err := h.cache.Ping(ctx); err != nil {
			// The service runs without the cache.
			cacheStatus = "disconnected"
		}
	}

	utils.Success(c, code, gin.H{
		"status":   status,
		"uptime":   int(time.Since(startTime).Seconds()),
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
