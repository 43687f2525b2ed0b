package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/adilbekov/shopscout/internal/reconcile"
	"github.com/adilbekov/shopscout/internal/repository"
	"github.com/adilbekov/shopscout/internal/scrape"
	"github.com/adilbekov/shopscout/internal/scrapecache"
)

type CompareUsecase struct {
	pool       *scrape.Pool
	reconciler *reconcile.Reconciler
	compares   repository.CompareRepository
	cache      scrapecache.Store
	logger     *slog.Logger
}

func NewCompareUsecase(
	pool *scrape.Pool,
	reconciler *reconcile.Reconciler,
	compares repository.CompareRepository,
	cache scrapecache.Store,
	logger *slog.Logger,
) *CompareUsecase {
	return &CompareUsecase{
		pool:       pool,
		reconciler: reconciler,
		compares:   compares,
		cache:      cache,
		logger:     logger.With("component", "compare_usecase"),
	}
}

// Run scrapes every product URL, structures each page through its own
// generation call, asks for a comparison verdict over the survivors, and
// persists everything atomically. A single page failing — scrape or
// structure — is logged with its URL and skipped; only all pages failing
// aborts the request.
func (u *CompareUsecase) Run(ctx context.Context, userID string, queries []string) (*domain.CompareWithProducts, error) {
	urls := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if !isValidURL(q) {
			u.logger.Warn("skipping non-URL input", "input", q)
			continue
		}
		urls = append(urls, q)
	}
	if len(urls) == 0 {
		return nil, domain.ErrNoProductData
	}

	fetched := u.pool.FetchAll(ctx, urls)

	var products []*domain.Product
	var productURLs []string
	for _, res := range fetched {
		if res.Err != nil {
			continue // already logged by the pool
		}

		itemID := scrapecache.NewItemID()
		u.cachePut(ctx, scrapecache.RawKey(itemID), []byte(res.HTML))

		fields, err := scrape.ExtractFields(res.HTML, res.URL)
		if err != nil {
			u.logger.Warn("extract fields", "url", res.URL, "error", err)
			continue
		}

		obj, err := u.reconciler.Object(ctx, reconcile.ProductPrompt(fields))
		if err != nil {
			u.logger.Warn("discarding unstructurable item", "url", res.URL, "error", err)
			continue
		}

		p := reconcile.ToProduct(obj)
		if p.ProductURL == nil {
			p.ProductURL = &res.URL
		}
		if p.Store == nil {
			store := scrape.StoreFromURL(res.URL)
			p.Store = &store
		}

		if structured, err := json.Marshal(obj); err == nil {
			u.cachePut(ctx, scrapecache.StructuredKey(itemID), structured)
		}

		products = append(products, p)
		productURLs = append(productURLs, res.URL)
	}

	if len(products) == 0 {
		return nil, domain.ErrNoProductData
	}

	verdict, err := u.reconciler.Object(ctx, reconcile.ComparePrompt(products))
	if err != nil {
		return nil, fmt.Errorf("compare verdict: %w", err)
	}

	title := reconcile.StringField(verdict, "title")
	if title == "" {
		title = "Product comparison"
	}

	compare, created, err := u.compares.CreateWithProducts(ctx, repository.CreateCompareInput{
		UserID:      userID,
		Title:       title,
		ProductURLs: productURLs,
		Summary:     reconcile.StringField(verdict, "summary"),
		Insights:    reconcile.ToInsights(verdict),
	}, products)
	if err != nil {
		return nil, fmt.Errorf("persist comparison: %w", err)
	}

	return &domain.CompareWithProducts{Compare: *compare, Products: created}, nil
}

func (u *CompareUsecase) cachePut(ctx context.Context, key string, data []byte) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Put(ctx, key, data); err != nil {
		u.logger.Warn("scrape cache write failed", "key", key, "error", err)
	}
}

func isValidURL(s string) bool {
	parsed, err := url.Parse(s)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
