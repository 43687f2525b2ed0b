package postgres

import (
	"context"
	"fmt"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, search_id, compare_id, product_name, brand, model,
	price, original_price, savings, image, images, rating, reviews,
	product_url, store, asin, category, description, product_info,
	feature_bullets, pros, cons, created_at`

// querier is implemented by *pgxpool.Pool and pgx.Tx, so product inserts
// can run either standalone or inside the comparison transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *ProductRepository) CreateForSearch(ctx context.Context, searchID string, products []*domain.Product) ([]*domain.Product, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		p.SearchID = &searchID
		inserted, err := insertProduct(ctx, tx, p)
		if err != nil {
			return nil, err
		}
		created = append(created, inserted)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

func (r *ProductRepository) ListBySearchIDs(ctx context.Context, searchIDs []string) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE search_id = ANY($1)
		ORDER BY created_at`,
		searchIDs)
	if err != nil {
		return nil, fmt.Errorf("list products by search ids: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *ProductRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ANY($1)
		ORDER BY created_at`,
		ids)
	if err != nil {
		return nil, fmt.Errorf("list products by ids: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func insertProduct(ctx context.Context, q querier, p *domain.Product) (*domain.Product, error) {
	row := q.QueryRow(ctx, `
		INSERT INTO products (
			search_id, compare_id, product_name, brand, model,
			price, original_price, savings, image, images, rating, reviews,
			product_url, store, asin, category, description, product_info,
			feature_bullets, pros, cons
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		          $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING `+productColumns,
		p.SearchID, p.CompareID, p.ProductName, p.Brand, p.Model,
		p.Price, p.OriginalPrice, p.Savings, p.Image, p.Images, p.Rating, p.Reviews,
		p.ProductURL, p.Store, p.ASIN, p.Category, p.Description, p.ProductInfo,
		p.FeatureBullets, p.Pros, p.Cons)
	return scanProduct(row)
}

func collectProducts(rows pgx.Rows) ([]*domain.Product, error) {
	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.SearchID, &p.CompareID, &p.ProductName, &p.Brand, &p.Model,
		&p.Price, &p.OriginalPrice, &p.Savings, &p.Image, &p.Images, &p.Rating, &p.Reviews,
		&p.ProductURL, &p.Store, &p.ASIN, &p.Category, &p.Description, &p.ProductInfo,
		&p.FeatureBullets, &p.Pros, &p.Cons, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}
