package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linklytics/linklytics/internal/domain"
	"github.com/linklytics/linklytics/internal/logger"
	"github.com/linklytics/linklytics/internal/middleware"
	"github.com/linklytics/linklytics/internal/service"
	"github.com/linklytics/linklytics/pkg/detector"
	"github.com/linklytics/linklytics/pkg/response"
	"github.com/linklytics/linklytics/pkg/validator"
)

type ResolverService interface {
	Shorten(ctx context.Context, userID int64, req *domain.CreateLinkRequest) (*domain.Link, error)
	Resolve(ctx context.Context, slug string, visitor service.Visitor) (string, error)
}

type ShortenerHandler struct {
	service ResolverService
	baseURL string
}

func NewShortenerHandler(service ResolverService, baseURL string) *ShortenerHandler {
	return &ShortenerHandler{service: service, baseURL: baseURL}
}

func (h *ShortenerHandler) ShortenURL(c *gin.Context) {
	var req domain.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	if validationErrors := validator.Validate(&req); len(validationErrors) > 0 {
		response.ValidationErrors(c, validationErrors)
		return
	}

	userID := middleware.UserID(c)
	if userID == 0 {
		response.Unauthorized(c, "authentication required")
		return
	}

	link, err := h.service.Shorten(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAliasTaken):
			response.Conflict(c, "custom alias already in use")
		case errors.Is(err, domain.ErrUnauthenticated):
			response.Unauthorized(c, "authentication required")
		default:
			logger.FromContext(c.Request.Context()).Error("failed to shorten url", "error", err)
			response.InternalServerError(c, "Internal Server Error")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"shortURL":  service.ShortURL(h.baseURL, link.Slug()),
		"shortCode": link.ShortCode,
		"topic":     link.Topic,
		"createdAt": link.CreatedAt,
	})
}

func (h *ShortenerHandler) Redirect(c *gin.Context) {
	slug := c.Param("shortId")

	visitor := service.Visitor{
		UserAgent: c.Request.UserAgent(),
		IPAddress: detector.ClientIP(
			c.Request.RemoteAddr,
			c.GetHeader("X-Forwarded-For"),
			c.GetHeader("X-Real-IP"),
		),
	}

	destination, err := h.service.Resolve(c.Request.Context(), slug, visitor)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("URL not found: %s", slug)})
			return
		}
		logger.FromContext(c.Request.Context()).Error("redirect failed", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.Redirect(http.StatusFound, destination)
}
