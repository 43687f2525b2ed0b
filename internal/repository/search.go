package repository

import (
	"context"

	"github.com/adilbekov/shopscout/internal/domain"
)

type SearchRepository interface {
	Create(ctx context.Context, userID, query string) (*domain.Search, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Search, error)
}
