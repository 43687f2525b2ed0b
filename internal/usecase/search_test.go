package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/adilbekov/shopscout/internal/reconcile"
	"github.com/adilbekov/shopscout/internal/scrape"
	"github.com/adilbekov/shopscout/internal/usecase"
)

// ---- fakes ----

type fakeGenerator struct {
	generate func(ctx context.Context, prompt string) (string, error)
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt)
}

type fakeSearcher struct {
	search func(ctx context.Context, query string) ([]scrape.OrganicResult, error)
}

func (s *fakeSearcher) Search(ctx context.Context, query string) ([]scrape.OrganicResult, error) {
	return s.search(ctx, query)
}

// ---- BuildQuery ----

func TestBuildQuery(t *testing.T) {
	filters := &usecase.SearchFilters{Category: "Electronics"}
	filters.Budget.Max = 100

	cases := []struct {
		name    string
		query   string
		filters *usecase.SearchFilters
		want    string
	}{
		{"no filters", "headphones", nil, "headphones"},
		{"category and budget", "headphones", filters, "headphones in Electronics under $100"},
		{"category only", "headphones", &usecase.SearchFilters{Category: "Audio"}, "headphones in Audio"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := usecase.BuildQuery(tc.query, tc.filters); got != tc.want {
				t.Errorf("BuildQuery = %q, want %q", got, tc.want)
			}
		})
	}
}

// ---- Run ----

func TestSearchRun_PersistsStructuredResults(t *testing.T) {
	searcher := &fakeSearcher{
		search: func(_ context.Context, query string) ([]scrape.OrganicResult, error) {
			if query != "headphones in Electronics" {
				t.Errorf("search query = %q, want filters folded in", query)
			}
			return []scrape.OrganicResult{
				{Title: "Sony WH-CH520", Link: "https://www.amazon.com/dp/B0BS1Q5FJS", Snippet: "$59.99"},
			}, nil
		},
	}
	gen := &fakeGenerator{
		generate: func(_ context.Context, _ string) (string, error) {
			return `[{"product_name": "Sony WH-CH520", "price": "$59.99", "store": "Amazon"}]`, nil
		},
	}

	var createdQuery string
	searches := &fakeSearchRepo{
		create: func(_ context.Context, _, query string) (*domain.Search, error) {
			createdQuery = query
			return &domain.Search{ID: "s1", Query: query}, nil
		},
	}
	var persisted []*domain.Product
	products := &fakeProductRepo{
		createForSearch: func(_ context.Context, searchID string, ps []*domain.Product) ([]*domain.Product, error) {
			if searchID != "s1" {
				t.Errorf("products persisted under search %q, want s1", searchID)
			}
			persisted = ps
			return ps, nil
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := usecase.NewSearchUsecase(searcher, reconcile.New(gen, logger), searches, products, logger)

	result, err := uc.Run(context.Background(), "user-1", "headphones",
		&usecase.SearchFilters{Category: "Electronics"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if createdQuery != "headphones in Electronics" {
		t.Errorf("stored query = %q, want the effective query", createdQuery)
	}
	if len(persisted) != 1 {
		t.Fatalf("persisted %d products, want 1", len(persisted))
	}
	if persisted[0].ProductName == nil || *persisted[0].ProductName != "Sony WH-CH520" {
		t.Errorf("persisted product name = %v", persisted[0].ProductName)
	}
	if len(result.Products) != 1 {
		t.Errorf("result has %d products, want 1", len(result.Products))
	}
}

func TestSearchRun_ReconcileExhaustion_PersistsNothing(t *testing.T) {
	searcher := &fakeSearcher{
		search: func(_ context.Context, _ string) ([]scrape.OrganicResult, error) {
			return []scrape.OrganicResult{{Title: "x", Link: "https://x.example"}}, nil
		},
	}
	gen := &fakeGenerator{
		generate: func(_ context.Context, _ string) (string, error) {
			return "never valid json", nil
		},
	}
	searches := &fakeSearchRepo{
		create: func(_ context.Context, _, _ string) (*domain.Search, error) {
			t.Fatal("search persisted despite reconcile failure")
			return nil, nil
		},
	}
	products := &fakeProductRepo{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := usecase.NewSearchUsecase(searcher, reconcile.New(gen, logger), searches, products, logger)

	_, err := uc.Run(context.Background(), "user-1", "headphones", nil)
	if !errors.Is(err, reconcile.ErrAttemptsExhausted) {
		t.Errorf("want ErrAttemptsExhausted, got %v", err)
	}
}

func TestSearchRun_SearcherError_Propagates(t *testing.T) {
	searchErr := errors.New("serpapi 429")
	searcher := &fakeSearcher{
		search: func(_ context.Context, _ string) ([]scrape.OrganicResult, error) {
			return nil, searchErr
		},
	}
	gen := &fakeGenerator{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := usecase.NewSearchUsecase(searcher, reconcile.New(gen, logger), &fakeSearchRepo{}, &fakeProductRepo{}, logger)

	_, err := uc.Run(context.Background(), "user-1", "headphones", nil)
	if !errors.Is(err, searchErr) {
		t.Errorf("want wrapped search error, got %v", err)
	}
}

// ---- GenerateForm ----

func TestGenerateForm_ReturnsFieldDescriptors(t *testing.T) {
	gen := &fakeGenerator{
		generate: func(_ context.Context, _ string) (string, error) {
			return `[{"name": "budget", "type": "number", "label": "Max budget"}]`, nil
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := usecase.NewSearchUsecase(&fakeSearcher{}, reconcile.New(gen, logger), &fakeSearchRepo{}, &fakeProductRepo{}, logger)

	fields, err := uc.GenerateForm(context.Background(), "gaming laptop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 1 || fields[0]["name"] != "budget" {
		t.Errorf("fields = %v", fields)
	}
}
