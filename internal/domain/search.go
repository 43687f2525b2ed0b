package domain

import "time"

type Search struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Query      string    `json:"query"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SearchWithProducts is the nested view of a search and the products it
// owns directly. Products is never nil, even when empty.
type SearchWithProducts struct {
	Search
	Products []*Product `json:"products"`
}
