package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/gin-gonic/gin"
)

type compareUsecaser interface {
	Run(ctx context.Context, userID string, queries []string) (*domain.CompareWithProducts, error)
}

type CompareHandler struct {
	compare compareUsecaser
	logger  *slog.Logger
}

func NewCompareHandler(compare compareUsecaser, logger *slog.Logger) *CompareHandler {
	return &CompareHandler{compare: compare, logger: logger.With("component", "compare_handler")}
}

type compareRequest struct {
	Queries []string `json:"queries" binding:"required,min=1"`
	UserID  string   `json:"userId"  binding:"required"`
}

// POST /compare/product
func (h *CompareHandler) Create(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing product input"})
		return
	}

	result, err := h.compare.Run(c.Request.Context(), req.UserID, req.Queries)
	if err != nil {
		if errors.Is(err, domain.ErrNoProductData) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": errNoProductData})
			return
		}
		h.logger.Error("compare products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comparison": result,
		"products":   result.Products,
	})
}
