package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/adilbekov/shopscout/internal/session"
	"github.com/adilbekov/shopscout/internal/usecase"
	"github.com/gin-gonic/gin"
)

// userUsecaser is the subset of UserUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type userUsecaser interface {
	Signup(ctx context.Context, input usecase.SignupInput) (*domain.User, bool, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Verify(ctx context.Context, userID, token string) (*domain.User, error)
}

type UserHandler struct {
	users    userUsecaser
	sessions *session.Manager
	logger   *slog.Logger
}

func NewUserHandler(users userUsecaser, sessions *session.Manager, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:    users,
		sessions: sessions,
		logger:   logger.With("component", "user_handler"),
	}
}

type signupRequest struct {
	Type string `json:"type"`
	User struct {
		Email    string  `json:"email"    binding:"required,email"`
		Name     string  `json:"name"     binding:"required"`
		Password *string `json:"password"`
		ImageURL *string `json:"imageUrl"`
	} `json:"user" binding:"required"`
}

// POST /user/create
func (h *UserHandler) Create(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	user, existed, err := h.users.Signup(c.Request.Context(), usecase.SignupInput{
		Type:     req.Type,
		Name:     req.User.Name,
		Email:    req.User.Email,
		Password: req.User.Password,
		ImageURL: req.User.ImageURL,
	})
	if err != nil {
		h.logger.Error("signup", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	if existed {
		c.JSON(http.StatusOK, gin.H{
			"message":  "User already exists",
			"user":     user,
			"verified": user.Verified,
		})
		return
	}

	h.issueSession(c, user)

	message := "User created, verification email sent."
	if user.Verified {
		message = "User created with Google login."
	}
	c.JSON(http.StatusCreated, gin.H{"message": message, "user": user})
}

type loginRequest struct {
	Type string `json:"type"`
	User struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password"`
	} `json:"user" binding:"required"`
}

// POST /user/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.User.Email, req.User.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidCredentials})
		case errors.Is(err, domain.ErrUserNotVerified):
			c.JSON(http.StatusUnauthorized, gin.H{"message": errNotVerified})
		default:
			h.logger.Error("login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	h.issueSession(c, user)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user})
}

// POST /user/logout
// Clears the cookie only: the token itself stays valid until expiry.
func (h *UserHandler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GET /user/:userId/verify/:token
func (h *UserHandler) Verify(c *gin.Context) {
	userID := c.Param("userId")
	token := c.Param("token")

	user, err := h.users.Verify(c.Request.Context(), userID, token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrTokenNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": errTokenNotFound})
		default:
			h.logger.Error("verify user", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	h.issueSession(c, user)
	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

func (h *UserHandler) issueSession(c *gin.Context, user *domain.User) {
	token, err := h.sessions.Issue(user)
	if err != nil {
		// The account operation already succeeded; a failed cookie just
		// means the client has to log in.
		h.logger.Error("issue session token", "user_id", user.ID, "error", err)
		return
	}
	h.sessions.SetCookie(c, token)
}
