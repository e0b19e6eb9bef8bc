package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linklytics/linklytics/internal/config"
	"github.com/linklytics/linklytics/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type UserRepository interface {
	UpsertByGoogleID(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Claims is the session token payload. Subject carries the user id.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type googleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// AuthService runs the Google login flow and turns the resulting
// profile into a persisted user plus a signed session token.
type AuthService struct {
	users     UserRepository
	oauth     *oauth2.Config
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(users UserRepository, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		users: users,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.TokenTTL,
	}
}

// LoginURL returns the Google consent page URL for the given CSRF state.
func (s *AuthService) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code, upserts the user and
// returns a signed session token.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (string, *domain.User, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("code exchange failed: %w", err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		GoogleID:    profile.ID,
		DisplayName: profile.Name,
		Email:       profile.Email,
		AvatarURL:   profile.Picture,
	}
	if err := s.users.UpsertByGoogleID(ctx, user); err != nil {
		return "", nil, fmt.Errorf("failed to persist user: %w", err)
	}

	signed, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	return signed, user, nil
}

func (s *AuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	client := s.oauth.Client(ctx, token)

	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &profile, nil
}

// IssueToken signs a session token for the user.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()

	claims := Claims{
		Name:  user.DisplayName,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ParseToken validates a session token and returns the user id.
func ParseToken(tokenString string, secret []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, domain.ErrUnauthenticated
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed subject claim: %w", err)
	}

	return userID, nil
}
