// Package session issues and validates the signed token carried in the
// accessToken cookie. Tokens are stateless: logout clears the cookie but a
// captured token stays valid until its natural expiry.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "accessToken"
	TTL        = 72 * time.Hour
)

type Manager struct {
	key    []byte
	secure bool
}

// NewManager creates a session manager. secure controls the cookie's
// Secure/SameSite attributes and should be false only for local dev.
func NewManager(key []byte, secure bool) *Manager {
	return &Manager{key: key, secure: secure}
}

// Issue signs a session token embedding the sanitized user record. The
// password never enters the claims: domain.User excludes it from JSON.
func (m *Manager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user": user,
		"iat":  now.Unix(),
		"exp":  now.Add(TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token and returns the embedded
// user claim. Any signature, structure, or expiry problem yields
// ErrUnauthorized.
func (m *Manager) Verify(rawToken string) (map[string]any, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.key, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	user, ok := claims["user"].(map[string]any)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// SetCookie writes the session cookie on the response.
func (m *Manager) SetCookie(c *gin.Context, token string) {
	if m.secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(CookieName, token, int(TTL.Seconds()), "/", "", m.secure, true)
}

// ClearCookie expires the session cookie immediately.
func (m *Manager) ClearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}
