package usecase

import (
	"context"
	"fmt"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/adilbekov/shopscout/internal/repository"
)

// NestedUsecase reconstructs a user's full history: profile, searches with
// their products, and comparisons with the products behind their join
// rows. Every relation is fetched in one query keyed by the parent id set —
// never one query per parent row.
type NestedUsecase struct {
	users    repository.UserRepository
	searches repository.SearchRepository
	products repository.ProductRepository
	compares repository.CompareRepository
}

func NewNestedUsecase(
	users repository.UserRepository,
	searches repository.SearchRepository,
	products repository.ProductRepository,
	compares repository.CompareRepository,
) *NestedUsecase {
	return &NestedUsecase{
		users:    users,
		searches: searches,
		products: products,
		compares: compares,
	}
}

func (u *NestedUsecase) Get(ctx context.Context, userID string) (*domain.NestedUser, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	searches, err := u.nestedSearches(ctx, userID)
	if err != nil {
		return nil, err
	}

	compares, err := u.nestedCompares(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.NestedUser{User: *user, Searches: searches, Compares: compares}, nil
}

func (u *NestedUsecase) nestedSearches(ctx context.Context, userID string) ([]*domain.SearchWithProducts, error) {
	searches, err := u.searches.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}

	nested := make([]*domain.SearchWithProducts, 0, len(searches))
	byID := make(map[string]*domain.SearchWithProducts, len(searches))
	for _, s := range searches {
		sw := &domain.SearchWithProducts{Search: *s, Products: []*domain.Product{}}
		nested = append(nested, sw)
		byID[s.ID] = sw
	}

	if len(searches) == 0 {
		return nested, nil
	}

	searchIDs := make([]string, 0, len(searches))
	for _, s := range searches {
		searchIDs = append(searchIDs, s.ID)
	}

	products, err := u.products.ListBySearchIDs(ctx, searchIDs)
	if err != nil {
		return nil, fmt.Errorf("list search products: %w", err)
	}

	// Group by parent, keeping storage order within each search.
	for _, p := range products {
		if p.SearchID == nil {
			continue
		}
		if sw, ok := byID[*p.SearchID]; ok {
			sw.Products = append(sw.Products, p)
		}
	}
	return nested, nil
}

func (u *NestedUsecase) nestedCompares(ctx context.Context, userID string) ([]*domain.CompareWithProducts, error) {
	compares, err := u.compares.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list compares: %w", err)
	}

	nested := make([]*domain.CompareWithProducts, 0, len(compares))
	byID := make(map[string]*domain.CompareWithProducts, len(compares))
	for _, c := range compares {
		cw := &domain.CompareWithProducts{Compare: *c, Products: []*domain.Product{}}
		nested = append(nested, cw)
		byID[c.ID] = cw
	}

	if len(compares) == 0 {
		return nested, nil
	}

	compareIDs := make([]string, 0, len(compares))
	for _, c := range compares {
		compareIDs = append(compareIDs, c.ID)
	}

	links, err := u.compares.ListLinksByCompareIDs(ctx, compareIDs)
	if err != nil {
		return nil, fmt.Errorf("list compare links: %w", err)
	}
	if len(links) == 0 {
		return nested, nil
	}

	productIDs := make([]string, 0, len(links))
	for _, l := range links {
		productIDs = append(productIDs, l.ProductID)
	}

	products, err := u.products.ListByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list compare products: %w", err)
	}
	productByID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	// A link whose product is gone (already deleted) is skipped, not an
	// error.
	for _, l := range links {
		p, ok := productByID[l.ProductID]
		if !ok {
			continue
		}
		if cw, ok := byID[l.CompareID]; ok {
			cw.Products = append(cw.Products, p)
		}
	}
	return nested, nil
}
