package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

type healthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(db *pgxpool.Pool, redis *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Readyz reports readiness. Redis being down degrades performance but
// not correctness, so it is reported yet does not fail readiness; the
// database is required.
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]healthCheck{
		"database": h.checkDatabase(ctx),
		"redis":    h.checkRedis(ctx),
	}

	status := http.StatusOK
	overall := "up"
	if checks["database"].Status != "up" {
		status = http.StatusServiceUnavailable
		overall = "down"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"checks":    checks,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) healthCheck {
	if err := h.db.Ping(ctx); err != nil {
		return healthCheck{Status: "down", Message: err.Error()}
	}
	return healthCheck{Status: "up", Message: "connected"}
}

func (h *HealthHandler) checkRedis(ctx context.Context) healthCheck {
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return healthCheck{Status: "down", Message: err.Error()}
	}
	return healthCheck{Status: "up", Message: "connected"}
}
