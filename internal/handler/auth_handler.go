package handler

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linklytics/linklytics/internal/logger"
	"github.com/linklytics/linklytics/internal/service"
)

const stateCookie = "oauthstate"

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login starts the Google OAuth flow. The CSRF state is mirrored in a
// short-lived cookie checked by the callback.
func (h *AuthHandler) Login(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("failed to generate oauth state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)

	c.Redirect(http.StatusTemporaryRedirect, h.service.LoginURL(state))
}

func (h *AuthHandler) Callback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	token, user, err := h.service.HandleCallback(c.Request.Context(), code)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("oauth callback failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"displayName": user.DisplayName,
			"email":       user.Email,
			"avatarUrl":   user.AvatarURL,
		},
	})
}

func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
