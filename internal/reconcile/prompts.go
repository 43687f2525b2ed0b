package reconcile

import (
	"encoding/json"
	"fmt"
)

const productSchema = `{
  "product_name": string,
  "brand": string,
  "model": string,
  "price": string,
  "original_price": string,
  "savings": string,
  "image": string (URL),
  "images": [string],
  "rating": number,
  "reviews": number,
  "product_url": string (URL),
  "store": string (e.g. Amazon, Flipkart),
  "asin": string,
  "category": string,
  "description": string,
  "product_info": {string: string},
  "feature_bullets": [string],
  "pros": [string],
  "cons": [string]
}`

// ProductPrompt asks for a single product object extracted from one
// scraped page's fields.
func ProductPrompt(raw any) string {
	return fmt.Sprintf(`You are an AI that extracts product information from a web page.

From the following raw product page content, extract only these fields in strict JSON format:

%s

Fields you cannot determine must be null. Respond only with valid JSON, no explanations or markdown.

---START OF CONTENT---
%s
---END OF CONTENT---`, productSchema, marshalRaw(raw))
}

// ProductsPrompt asks for an array of product objects, one per search
// result item, for the given query.
func ProductsPrompt(query string, items any) string {
	return fmt.Sprintf(`You are an AI that structures product search results.

The user searched for: %q

From the following search result items, produce a JSON array where each element has this shape:

%s

Fields you cannot determine must be null. Respond only with a valid JSON array, no explanations or markdown.

---START OF CONTENT---
%s
---END OF CONTENT---`, query, productSchema, marshalRaw(items))
}

// ComparePrompt asks for a verdict over an already-structured product set.
func ComparePrompt(products any) string {
	return fmt.Sprintf(`You are an AI that compares products for a shopper.

Given the following products, respond in strict JSON with this shape:

{
  "title": string (a short title for this comparison),
  "summary": string (2-3 sentences comparing the products),
  "insights": {
    "best_index": number (0-based index of the best product),
    "title": string (name of the best product),
    "reasons": [string]
  }
}

Respond only with valid JSON, no explanations or markdown.

---START OF CONTENT---
%s
---END OF CONTENT---`, marshalRaw(products))
}

// FormFieldsPrompt asks for search filter form fields suited to a query.
func FormFieldsPrompt(query string) string {
	return fmt.Sprintf(`You are an AI that designs search filter forms.

For a shopper searching for %q, produce a JSON array of form fields. Each element has this shape:

{
  "name": string (snake_case identifier),
  "label": string,
  "type": string (one of "text", "number", "select", "range", "checkbox"),
  "options": [string] (only for "select", otherwise null)
}

Respond only with a valid JSON array, no explanations or markdown.`, query)
}

func marshalRaw(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
