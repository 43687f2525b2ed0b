package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/adilbekov/shopscout/internal/session"
	"github.com/adilbekov/shopscout/internal/transport/http/handler"
	"github.com/adilbekov/shopscout/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSessionKey = "handler-test-secret-32-chars!!!!!"

// fakeUserUsecase implements the unexported userUsecaser interface via
// method matching.
type fakeUserUsecase struct {
	signup func(ctx context.Context, input usecase.SignupInput) (*domain.User, bool, error)
	login  func(ctx context.Context, email, password string) (*domain.User, error)
	verify func(ctx context.Context, userID, token string) (*domain.User, error)
}

func (f *fakeUserUsecase) Signup(ctx context.Context, input usecase.SignupInput) (*domain.User, bool, error) {
	return f.signup(ctx, input)
}

func (f *fakeUserUsecase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return f.login(ctx, email, password)
}

func (f *fakeUserUsecase) Verify(ctx context.Context, userID, token string) (*domain.User, error) {
	return f.verify(ctx, userID, token)
}

func newTestEngine(uc *fakeUserUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager([]byte(testSessionKey), false)
	h := handler.NewUserHandler(uc, sessions, logger)

	r := gin.New()
	r.POST("/user/create", h.Create)
	r.POST("/user/login", h.Login)
	r.POST("/user/logout", h.Logout)
	r.GET("/user/:userId/verify/:token", h.Verify)
	return r
}

func postJSON(t *testing.T, engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

// ---- Create ----

func TestCreate_MissingFields_Returns400(t *testing.T) {
	w := postJSON(t, newTestEngine(&fakeUserUsecase{}), "/user/create",
		`{"user":{"email":"test@example.com"}}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreate_NewUser_Returns201AndSetsCookie(t *testing.T) {
	uc := &fakeUserUsecase{
		signup: func(_ context.Context, input usecase.SignupInput) (*domain.User, bool, error) {
			return &domain.User{ID: "user-1", Name: input.Name, Email: input.Email}, false, nil
		},
	}
	w := postJSON(t, newTestEngine(uc), "/user/create",
		`{"user":{"email":"test@example.com","name":"Test","password":"hunter22"}}`)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("no session cookie set")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie is not httpOnly")
	}
	if !strings.Contains(w.Body.String(), "verification email sent") {
		t.Errorf("body = %s, want verification message", w.Body.String())
	}
}

func TestCreate_ExistingUser_Returns200WithoutCookie(t *testing.T) {
	uc := &fakeUserUsecase{
		signup: func(_ context.Context, _ usecase.SignupInput) (*domain.User, bool, error) {
			return &domain.User{ID: "user-1", Email: "test@example.com", Verified: true}, true, nil
		},
	}
	w := postJSON(t, newTestEngine(uc), "/user/create",
		`{"user":{"email":"test@example.com","name":"Test"}}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if sessionCookie(w) != nil {
		t.Error("session cookie set for an already-registered email")
	}
	if !strings.Contains(w.Body.String(), "User already exists") {
		t.Errorf("body = %s, want already-exists message", w.Body.String())
	}
}

// ---- Login ----

func TestLogin_InvalidCredentials_Returns400(t *testing.T) {
	uc := &fakeUserUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	w := postJSON(t, newTestEngine(uc), "/user/login",
		`{"user":{"email":"test@example.com","password":"wrong"}}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if sessionCookie(w) != nil {
		t.Error("session cookie set on failed login")
	}
}

func TestLogin_Unverified_Returns401(t *testing.T) {
	uc := &fakeUserUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotVerified
		},
	}
	w := postJSON(t, newTestEngine(uc), "/user/login",
		`{"user":{"email":"test@example.com","password":"hunter22"}}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestLogin_Success_SetsCookie(t *testing.T) {
	uc := &fakeUserUsecase{
		login: func(_ context.Context, email, _ string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email, Verified: true}, nil
		},
	}
	w := postJSON(t, newTestEngine(uc), "/user/login",
		`{"user":{"email":"test@example.com","password":"hunter22"}}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("no session cookie set")
	}
	// The cookie value must be a token our session manager accepts.
	sessions := session.NewManager([]byte(testSessionKey), false)
	claims, err := sessions.Verify(cookie.Value)
	if err != nil {
		t.Fatalf("cookie token rejected: %v", err)
	}
	if claims["email"] != "test@example.com" {
		t.Errorf("email claim = %v, want test@example.com", claims["email"])
	}
}

// ---- Logout ----

func TestLogout_ExpiresCookie(t *testing.T) {
	w := postJSON(t, newTestEngine(&fakeUserUsecase{}), "/user/logout", `{}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("no expiring cookie in response")
	}
	if cookie.MaxAge >= 0 {
		t.Errorf("cookie MaxAge = %d, want negative (expired)", cookie.MaxAge)
	}
}

// ---- Verify ----

func TestVerify_TokenNotFound_Returns400(t *testing.T) {
	uc := &fakeUserUsecase{
		verify: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrTokenNotFound
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/user-1/verify/bad-token", nil)
	newTestEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestVerify_UnknownUser_Returns400WithUserMessage(t *testing.T) {
	uc := &fakeUserUsecase{
		verify: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/ghost/verify/tok", nil)
	newTestEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "user not found") {
		t.Errorf("body = %s, want user-not-found message", w.Body.String())
	}
}

func TestVerify_Success_SetsCookie(t *testing.T) {
	uc := &fakeUserUsecase{
		verify: func(_ context.Context, userID, _ string) (*domain.User, error) {
			return &domain.User{ID: userID, Email: "test@example.com", Verified: true}, nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/user-1/verify/tok-abc", nil)
	newTestEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if sessionCookie(w) == nil {
		t.Error("no session cookie set after verification")
	}
}
