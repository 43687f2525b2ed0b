// Package scrapecache archives the raw HTML and the structured JSON
// produced for each scraped item, keyed per item. Writes are best-effort:
// callers log failures and move on, a dead cache never fails a request.
package scrapecache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Store interface {
	Put(ctx context.Context, key string, data []byte) error
}

// RawKey and StructuredKey name the two artifacts kept per scraped item.
func RawKey(id string) string        { return fmt.Sprintf("raw/raw-%s.html", id) }
func StructuredKey(id string) string { return fmt.Sprintf("product-%s.json", id) }

// NewItemID returns a fresh cache id for one scraped item.
func NewItemID() string { return uuid.NewString() }
