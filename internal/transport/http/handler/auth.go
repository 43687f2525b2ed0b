package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/gin-gonic/gin"
)

type nestedUsecaser interface {
	Get(ctx context.Context, userID string) (*domain.NestedUser, error)
}

type AuthHandler struct {
	nested nestedUsecaser
	logger *slog.Logger
}

func NewAuthHandler(nested nestedUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{nested: nested, logger: logger.With("component", "auth_handler")}
}

// POST /auth/verify
// Runs behind the cookie middleware, so reaching here means the session is
// valid. With ?nested=true the response additionally carries the user's
// full search/compare history.
func (h *AuthHandler) Verify(c *gin.Context) {
	user, _ := c.Get("user")

	if c.Query("nested") != "true" {
		c.JSON(http.StatusOK, gin.H{"message": "Authenticated", "user": user})
		return
	}

	userID := c.GetString("userID")
	nested, err := h.nested.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.Error("nested user data", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Authenticated", "user": nested})
}
