package domain

import (
	"errors"
	"time"
)

// ErrNoProductData means every item in a scrape batch failed: there is
// nothing to persist or return.
var ErrNoProductData = errors.New("no valid product data extracted")

// Insights is the small verdict record a comparison carries: which item
// won, under what title, and why.
type Insights struct {
	BestIndex *int     `json:"best_index"`
	Title     *string  `json:"title"`
	Reasons   []string `json:"reasons"`
}

type Compare struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	ProductURLs []string  `json:"productUrls"`
	Summary     string    `json:"summary"`
	Insights    *Insights `json:"insights"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CompareProductLink is the join row associating a comparison with a
// product (many-to-many).
type CompareProductLink struct {
	ID        string
	CompareID string
	ProductID string
}

// CompareWithProducts is the nested view of a comparison and the products
// reached through its join rows. Products is never nil.
type CompareWithProducts struct {
	Compare
	Products []*Product `json:"products"`
}

// NestedUser is the aggregation document: the user's profile with every
// search and comparison, each carrying its products.
type NestedUser struct {
	User
	Searches []*SearchWithProducts  `json:"searches"`
	Compares []*CompareWithProducts `json:"comparisons"`
}
