package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/adilbekov/shopscout/internal/reconcile"
	"github.com/adilbekov/shopscout/internal/repository"
	"github.com/adilbekov/shopscout/internal/scrape"
)

type SearchFilters struct {
	Category string `json:"category"`
	Budget   struct {
		Max float64 `json:"max"`
	} `json:"budget"`
}

type SearchUsecase struct {
	searcher   scrape.Searcher
	reconciler *reconcile.Reconciler
	searches   repository.SearchRepository
	products   repository.ProductRepository
	logger     *slog.Logger
}

func NewSearchUsecase(
	searcher scrape.Searcher,
	reconciler *reconcile.Reconciler,
	searches repository.SearchRepository,
	products repository.ProductRepository,
	logger *slog.Logger,
) *SearchUsecase {
	return &SearchUsecase{
		searcher:   searcher,
		reconciler: reconciler,
		searches:   searches,
		products:   products,
		logger:     logger.With("component", "search_usecase"),
	}
}

// BuildQuery folds the optional filters into the search string.
func BuildQuery(query string, filters *SearchFilters) string {
	if filters == nil {
		return query
	}
	if filters.Category != "" {
		query += " in " + filters.Category
	}
	if filters.Budget.Max > 0 {
		query += fmt.Sprintf(" under $%g", filters.Budget.Max)
	}
	return query
}

// Run performs the search, structures every result through one batched
// generation pass, and persists the search with its products. A reconcile
// failure is terminal: nothing is persisted.
func (u *SearchUsecase) Run(ctx context.Context, userID, query string, filters *SearchFilters) (*domain.SearchWithProducts, error) {
	q := BuildQuery(query, filters)

	results, err := u.searcher.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	rawItems := make([]map[string]any, 0, len(results))
	for _, r := range results {
		rawItems = append(rawItems, map[string]any{
			"title":   r.Title,
			"link":    r.Link,
			"snippet": r.Snippet,
			"store":   scrape.StoreFromURL(r.Link),
		})
	}

	items, err := u.reconciler.Array(ctx, reconcile.ProductsPrompt(q, rawItems))
	if err != nil {
		return nil, fmt.Errorf("structure search results: %w", err)
	}
	products := reconcile.ToProducts(items)

	search, err := u.searches.Create(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("create search: %w", err)
	}

	created, err := u.products.CreateForSearch(ctx, search.ID, products)
	if err != nil {
		return nil, fmt.Errorf("persist products: %w", err)
	}

	return &domain.SearchWithProducts{Search: *search, Products: created}, nil
}

// GenerateForm produces filter form fields suited to the query. The
// descriptors are returned as-is and never persisted.
func (u *SearchUsecase) GenerateForm(ctx context.Context, query string) ([]map[string]any, error) {
	fields, err := u.reconciler.Array(ctx, reconcile.FormFieldsPrompt(query))
	if err != nil {
		return nil, fmt.Errorf("generate form fields: %w", err)
	}
	return fields, nil
}
