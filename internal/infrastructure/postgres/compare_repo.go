package postgres

import (
	"context"
	"fmt"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/adilbekov/shopscout/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CompareRepository struct {
	pool *pgxpool.Pool
}

func NewCompareRepository(pool *pgxpool.Pool) *CompareRepository {
	return &CompareRepository{pool: pool}
}

const compareColumns = `id, user_id, title, product_url, summary, insights, created_at`

// CreateWithProducts writes the comparison, its products, and the join rows
// in one transaction. A failure at any step rolls back every row, so a
// half-written comparison can never be observed.
func (r *CompareRepository) CreateWithProducts(ctx context.Context, input repository.CreateCompareInput, products []*domain.Product) (*domain.Compare, []*domain.Product, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO compares (user_id, title, product_url, summary, insights)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+compareColumns,
		input.UserID, input.Title, input.ProductURLs, input.Summary, input.Insights)

	compare, err := scanCompare(row)
	if err != nil {
		return nil, nil, err
	}

	created := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		inserted, err := insertProduct(ctx, tx, p)
		if err != nil {
			return nil, nil, err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO compare_products (compare_id, product_id) VALUES ($1, $2)`,
			compare.ID, inserted.ID); err != nil {
			return nil, nil, fmt.Errorf("insert compare link: %w", err)
		}
		created = append(created, inserted)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit: %w", err)
	}
	return compare, created, nil
}

func (r *CompareRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Compare, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+compareColumns+`
		FROM compares
		WHERE user_id = $1
		ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list compares: %w", err)
	}
	defer rows.Close()

	var compares []*domain.Compare
	for rows.Next() {
		c, err := scanCompare(rows)
		if err != nil {
			return nil, err
		}
		compares = append(compares, c)
	}
	return compares, rows.Err()
}

func (r *CompareRepository) ListLinksByCompareIDs(ctx context.Context, compareIDs []string) ([]*domain.CompareProductLink, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, compare_id, product_id
		FROM compare_products
		WHERE compare_id = ANY($1)
		ORDER BY id`,
		compareIDs)
	if err != nil {
		return nil, fmt.Errorf("list compare links: %w", err)
	}
	defer rows.Close()

	var links []*domain.CompareProductLink
	for rows.Next() {
		var l domain.CompareProductLink
		if err := rows.Scan(&l.ID, &l.CompareID, &l.ProductID); err != nil {
			return nil, fmt.Errorf("scan compare link: %w", err)
		}
		links = append(links, &l)
	}
	return links, rows.Err()
}

func scanCompare(row rowScanner) (*domain.Compare, error) {
	var c domain.Compare
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.ProductURLs, &c.Summary,
		&c.Insights, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan compare: %w", err)
	}
	return &c, nil
}
