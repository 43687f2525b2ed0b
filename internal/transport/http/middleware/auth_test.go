package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/adilbekov/shopscout/internal/session"
	"github.com/adilbekov/shopscout/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine builds a minimal gin engine with the Auth middleware protecting
// GET /protected. The handler echoes the userID from context so we can
// assert it was set.
func newEngine(sessions *session.Manager) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(sessions, slog.New(slog.NewTextHandler(io.Discard, nil))), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.String(http.StatusOK, "%v", userID)
	})
	return r
}

func newManager() *session.Manager {
	return session.NewManager([]byte(testKey), false)
}

func request(cookie string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}
	return req
}

func TestAuth_MissingCookie_Returns401(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine(newManager()).ServeHTTP(w, request(""))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_GarbageToken_Returns401(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine(newManager()).ServeHTTP(w, request("not.a.jwt"))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_WrongSigningKey_Returns401(t *testing.T) {
	other := session.NewManager([]byte("a-completely-different-key-here!!"), false)
	token, err := other.Issue(&domain.User{ID: "user-1", Email: "test@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	newEngine(newManager()).ServeHTTP(w, request(token))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	claims := jwt.MapClaims{
		"user": map[string]any{"id": "user-1"},
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	w := httptest.NewRecorder()
	newEngine(newManager()).ServeHTTP(w, request(expired))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_TokenWithoutUserID_Returns401(t *testing.T) {
	claims := jwt.MapClaims{
		"user": map[string]any{"email": "test@example.com"},
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	w := httptest.NewRecorder()
	newEngine(newManager()).ServeHTTP(w, request(token))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ValidCookie_PassesAndSetsUserID(t *testing.T) {
	sessions := newManager()
	token, err := sessions.Issue(&domain.User{ID: "user-abc", Email: "test@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	newEngine(sessions).ServeHTTP(w, request(token))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "user-abc" {
		t.Errorf("body = %q, want %q", got, "user-abc")
	}
}
