package repository

import (
	"context"

	"github.com/adilbekov/shopscout/internal/domain"
)

type ProductRepository interface {
	CreateForSearch(ctx context.Context, searchID string, products []*domain.Product) ([]*domain.Product, error)

	// ListBySearchIDs fetches the products of many searches in one query —
	// the aggregation path must not issue one query per search.
	ListBySearchIDs(ctx context.Context, searchIDs []string) ([]*domain.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
}
