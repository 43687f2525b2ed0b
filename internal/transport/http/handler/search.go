package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/adilbekov/shopscout/internal/reconcile"
	"github.com/adilbekov/shopscout/internal/usecase"
	"github.com/gin-gonic/gin"
)

type searchUsecaser interface {
	Run(ctx context.Context, userID, query string, filters *usecase.SearchFilters) (*domain.SearchWithProducts, error)
	GenerateForm(ctx context.Context, query string) ([]map[string]any, error)
}

type SearchHandler struct {
	search searchUsecaser
	logger *slog.Logger
}

func NewSearchHandler(search searchUsecaser, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{search: search, logger: logger.With("component", "search_handler")}
}

type searchRequest struct {
	Query   string                 `json:"query" binding:"required"`
	Filters *usecase.SearchFilters `json:"filters"`
}

// POST /search/create (session required)
func (h *SearchHandler) Create(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	userID := c.GetString("userID")
	result, err := h.search.Run(c.Request.Context(), userID, req.Query, req.Filters)
	if err != nil {
		if errors.Is(err, reconcile.ErrAttemptsExhausted) {
			h.logger.Warn("search results unstructurable", "query", req.Query)
		} else {
			h.logger.Error("search", "query", req.Query, "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to perform search"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    result.Query,
		"search":   result,
		"products": result.Products,
	})
}

type generateFormRequest struct {
	Query string `json:"query" binding:"required"`
}

// POST /search/generate-form
func (h *SearchHandler) GenerateForm(c *gin.Context) {
	var req generateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	fields, err := h.search.GenerateForm(c.Request.Context(), req.Query)
	if err != nil {
		h.logger.Error("generate form", "query", req.Query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fields": fields})
}
