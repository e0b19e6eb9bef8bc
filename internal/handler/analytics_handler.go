package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linklytics/linklytics/internal/domain"
	"github.com/linklytics/linklytics/internal/logger"
	"github.com/linklytics/linklytics/internal/middleware"
	"github.com/linklytics/linklytics/pkg/response"
)

type AnalyticsService interface {
	LinkAnalytics(ctx context.Context, slug string) (json.RawMessage, error)
	TopicAnalytics(ctx context.Context, topic domain.Topic) (json.RawMessage, error)
	OverallAnalytics(ctx context.Context, userID int64) (json.RawMessage, error)
}

type AnalyticsHandler struct {
	service AnalyticsService
}

func NewAnalyticsHandler(service AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) GetLinkAnalytics(c *gin.Context) {
	slug := c.Param("shortId")

	payload, err := h.service.LinkAnalytics(c.Request.Context(), slug)
	h.respond(c, payload, err, "URL not found")
}

func (h *AnalyticsHandler) GetTopicAnalytics(c *gin.Context) {
	topic := domain.Topic(c.Param("topic"))

	payload, err := h.service.TopicAnalytics(c.Request.Context(), topic)
	h.respond(c, payload, err, "No URLs found for the specified topic")
}

func (h *AnalyticsHandler) GetOverallAnalytics(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == 0 {
		response.Unauthorized(c, "authentication required")
		return
	}

	payload, err := h.service.OverallAnalytics(c.Request.Context(), userID)
	h.respond(c, payload, err, "No URLs found for this user")
}

// respond writes the memoized payload as-is so cached and freshly
// computed reports are byte-identical on the wire.
func (h *AnalyticsHandler) respond(c *gin.Context, payload json.RawMessage, err error, notFoundMsg string) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": notFoundMsg})
			return
		}
		logger.FromContext(c.Request.Context()).Error("analytics request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
