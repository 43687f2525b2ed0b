package domain

import "time"

// Product is the canonical structured listing record. Every field the
// extractor fills is optional: the generative service routinely omits or
// nulls fields and downstream consumers tolerate that (schema-on-read).
type Product struct {
	ID            string            `json:"id"`
	SearchID      *string           `json:"searchId,omitempty"`
	CompareID     *string           `json:"compareId,omitempty"`
	ProductName   *string           `json:"product_name"`
	Brand         *string           `json:"brand"`
	Model         *string           `json:"model"`
	Price         *string           `json:"price"`
	OriginalPrice *string           `json:"original_price"`
	Savings       *string           `json:"savings"`
	Image         *string           `json:"image"`
	Images        []string          `json:"images"`
	Rating        *float64          `json:"rating"`
	Reviews       *int              `json:"reviews"`
	ProductURL    *string           `json:"product_url"`
	Store         *string           `json:"store"`
	ASIN          *string           `json:"asin"`
	Category      *string           `json:"category"`
	Description   *string           `json:"description"`
	ProductInfo   map[string]string `json:"product_info"`
	FeatureBullets []string         `json:"feature_bullets"`
	Pros          []string          `json:"pros"`
	Cons          []string          `json:"cons"`
	CreatedAt     time.Time         `json:"createdAt"`
}
