package validator

import (
	"testing"

	"github.com/linklytics/linklytics/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsReservedKeyword(t *testing.T) {
	// Route segments an alias must not shadow.
	for _, word := range []string{"api", "auth", "shorten", "analytics", "overall", "topic", "healthz", "readyz"} {
		assert.True(t, IsReservedKeyword(word), word)
	}
	assert.True(t, IsReservedKeyword("Overall"), "reserved check is case-insensitive")
	assert.False(t, IsReservedKeyword("spring-sale"))
}

func TestValidate_ReservedAliasRejected(t *testing.T) {
	req := &domain.CreateLinkRequest{
		URL:         "https://example.com",
		CustomAlias: "overall",
	}

	errs := Validate(req)

	assert.NotEmpty(t, errs, "route-shadowing aliases must be rejected")
}

func TestValidate_ValidRequest(t *testing.T) {
	req := &domain.CreateLinkRequest{
		URL:         "https://example.com",
		CustomAlias: "spring-sale",
		Topic:       domain.TopicRetention,
	}

	assert.Empty(t, Validate(req))
}

func TestValidate_BadAliasCharacters(t *testing.T) {
	req := &domain.CreateLinkRequest{
		URL:         "https://example.com",
		CustomAlias: "no spaces!",
	}

	assert.NotEmpty(t, Validate(req))
}
