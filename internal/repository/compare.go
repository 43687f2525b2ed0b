package repository

import (
	"context"

	"github.com/adilbekov/shopscout/internal/domain"
)

type CreateCompareInput struct {
	UserID      string
	Title       string
	ProductURLs []string
	Summary     string
	Insights    *domain.Insights
}

type CompareRepository interface {
	// CreateWithProducts inserts the comparison, its products, and the join
	// rows in a single transaction: either all rows land or none do.
	CreateWithProducts(ctx context.Context, input CreateCompareInput, products []*domain.Product) (*domain.Compare, []*domain.Product, error)

	ListByUser(ctx context.Context, userID string) ([]*domain.Compare, error)
	ListLinksByCompareIDs(ctx context.Context, compareIDs []string) ([]*domain.CompareProductLink, error)
}
