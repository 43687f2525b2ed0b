package scrape

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/adilbekov/shopscout/internal/metrics"
)

// FetchResult is the outcome of one page fetch. A failed fetch carries its
// error; siblings in the same batch are unaffected.
type FetchResult struct {
	URL  string
	HTML string
	Err  error
}

// Pool fetches a batch of URLs with bounded parallelism and a per-call
// timeout, replacing the serial fetch-sleep-fetch loop this service grew
// out of.
type Pool struct {
	fetcher     Fetcher
	logger      *slog.Logger
	concurrency int
	timeout     time.Duration
	sem         chan struct{}
}

func NewPool(fetcher Fetcher, logger *slog.Logger, concurrency int, timeout time.Duration) *Pool {
	return &Pool{
		fetcher:     fetcher,
		logger:      logger.With("component", "scrape_pool"),
		concurrency: concurrency,
		timeout:     timeout,
		sem:         make(chan struct{}, concurrency),
	}
}

// FetchAll fetches every URL and returns results in input order. One URL
// failing never aborts the others.
func (p *Pool) FetchAll(ctx context.Context, urls []string) []FetchResult {
	results := make([]FetchResult, len(urls))
	var wg sync.WaitGroup

	for i, u := range urls {
		wg.Add(1)
		p.sem <- struct{}{}
		go func(i int, u string) {
			defer wg.Done()
			defer func() { <-p.sem }()
			results[i] = p.fetchOne(ctx, u)
		}(i, u)
	}

	wg.Wait()
	return results
}

func (p *Pool) fetchOne(ctx context.Context, url string) FetchResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	html, err := p.fetcher.Fetch(ctx, url)
	metrics.ScrapeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ScrapesTotal.WithLabelValues("error").Inc()
		p.logger.Warn("scrape failed", "url", url, "error", err)
		return FetchResult{URL: url, Err: err}
	}
	metrics.ScrapesTotal.WithLabelValues("ok").Inc()
	return FetchResult{URL: url, HTML: html}
}
