package postgres

import (
	"context"
	"fmt"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SearchRepository struct {
	pool *pgxpool.Pool
}

func NewSearchRepository(pool *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{pool: pool}
}

func (r *SearchRepository) Create(ctx context.Context, userID, query string) (*domain.Search, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO searches (user_id, query)
		VALUES ($1, $2)
		RETURNING id, user_id, query, is_favorite, created_at`,
		userID, query)
	return scanSearch(row)
}

func (r *SearchRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Search, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, query, is_favorite, created_at
		FROM searches
		WHERE user_id = $1
		ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	defer rows.Close()

	var searches []*domain.Search
	for rows.Next() {
		s, err := scanSearch(rows)
		if err != nil {
			return nil, err
		}
		searches = append(searches, s)
	}
	return searches, rows.Err()
}

func scanSearch(row rowScanner) (*domain.Search, error) {
	var s domain.Search
	if err := row.Scan(&s.ID, &s.UserID, &s.Query, &s.IsFavorite, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan search: %w", err)
	}
	return &s, nil
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}
