package reconcile

import (
	"strconv"
	"strings"

	"github.com/adilbekov/shopscout/internal/domain"
)

// ToProduct maps one reconciled object onto the product record. Coercion
// is deliberately lenient: a missing or mistyped field becomes nil rather
// than an error, matching what the storage layer accepts (schema-on-read).
func ToProduct(m map[string]any) *domain.Product {
	p := &domain.Product{
		ProductName:    asString(m, "product_name", "name", "title"),
		Brand:          asString(m, "brand"),
		Model:          asString(m, "model"),
		Price:          asString(m, "price"),
		OriginalPrice:  asString(m, "original_price", "originalPrice"),
		Savings:        asString(m, "savings"),
		Image:          asString(m, "image"),
		Images:         asStringSlice(m, "images"),
		Rating:         asFloat(m, "rating"),
		Reviews:        asInt(m, "reviews"),
		ProductURL:     asString(m, "product_url", "productUrl", "link"),
		Store:          asString(m, "store"),
		ASIN:           asString(m, "asin"),
		Category:       asString(m, "category"),
		Description:    asString(m, "description"),
		ProductInfo:    asStringMap(m, "product_info"),
		FeatureBullets: asStringSlice(m, "feature_bullets"),
		Pros:           asStringSlice(m, "pros"),
		Cons:           asStringSlice(m, "cons"),
	}
	return p
}

func ToProducts(items []map[string]any) []*domain.Product {
	products := make([]*domain.Product, 0, len(items))
	for _, m := range items {
		products = append(products, ToProduct(m))
	}
	return products
}

// ToInsights pulls the comparison verdict out of a reconciled object.
func ToInsights(m map[string]any) *domain.Insights {
	raw, ok := m["insights"].(map[string]any)
	if !ok {
		return nil
	}
	return &domain.Insights{
		BestIndex: asInt(raw, "best_index"),
		Title:     asString(raw, "title"),
		Reasons:   asStringSlice(raw, "reasons"),
	}
}

// StringField returns the string at key, or "" when absent or mistyped.
func StringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func asString(m map[string]any, keys ...string) *string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return &v
			}
		case float64:
			s := strconv.FormatFloat(v, 'f', -1, 64)
			return &s
		}
	}
	return nil
}

func asFloat(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case string:
		// "4.5 out of 5 stars" and plain "4.5" both show up.
		fields := strings.Fields(v)
		if len(fields) > 0 {
			if f, err := strconv.ParseFloat(fields[0], 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func asInt(m map[string]any, key string) *int {
	switch v := m[key].(type) {
	case float64:
		i := int(v)
		return &i
	case string:
		cleaned := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, v)
		if i, err := strconv.Atoi(cleaned); err == nil {
			return &i
		}
	}
	return nil
}

func asStringSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asStringMap(m map[string]any, key string) map[string]string {
	raw, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
