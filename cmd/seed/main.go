// seed inserts a verified dev user with a couple of searches and one
// comparison into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/adilbekov/shopscout/internal/domain"
	"github.com/adilbekov/shopscout/internal/infrastructure/postgres"
	"github.com/adilbekov/shopscout/internal/repository"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "password123"
)

func strp(s string) *string { return &s }

func seedProduct(name, price, store, url string) *domain.Product {
	return &domain.Product{
		ProductName: strp(name),
		Price:       strp(price),
		Store:       strp(store),
		ProductURL:  strp(url),
		Images:      []string{},
	}
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert so re-runs don't fail on the unique email
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password, verified)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		"Seed User", seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	searches := postgres.NewSearchRepository(pool)
	products := postgres.NewProductRepository(pool)
	compares := postgres.NewCompareRepository(pool)

	queries := []struct {
		query string
		items []*domain.Product
	}{
		{
			query: "wireless headphones under $100",
			items: []*domain.Product{
				seedProduct("Sony WH-CH520", "$59.99", "Amazon", "https://www.amazon.com/dp/B0BS1Q5FJS"),
				seedProduct("JBL Tune 510BT", "$49.95", "Amazon", "https://www.amazon.com/dp/B08WM1V5P1"),
				seedProduct("Anker Soundcore Life Q20", "$79.99", "Amazon", "https://www.amazon.com/dp/B07NM3RSRQ"),
			},
		},
		{
			query: "mechanical keyboard in Electronics",
			items: []*domain.Product{
				seedProduct("Keychron K2", "$89.99", "Amazon", "https://www.amazon.com/dp/B07QBPRWJV"),
				seedProduct("Royal Kludge RK84", "$69.99", "Amazon", "https://www.amazon.com/dp/B08GSDGV8F"),
			},
		},
	}

	var searchCount, productCount int
	for _, q := range queries {
		search, err := searches.Create(ctx, userID, q.query)
		if err != nil {
			log.Fatalf("insert search: %v", err)
		}
		created, err := products.CreateForSearch(ctx, search.ID, q.items)
		if err != nil {
			log.Fatalf("insert products for %q: %v", q.query, err)
		}
		searchCount++
		productCount += len(created)
	}

	best := 0
	compareInput := repository.CreateCompareInput{
		UserID: userID,
		Title:  "Sony WH-CH520 vs JBL Tune 510BT",
		ProductURLs: []string{
			"https://www.amazon.com/dp/B0BS1Q5FJS",
			"https://www.amazon.com/dp/B08WM1V5P1",
		},
		Summary: "Both are solid budget wireless headphones; the Sony edges out on battery life.",
		Insights: &domain.Insights{
			BestIndex: &best,
			Title:     strp("Sony WH-CH520"),
			Reasons:   []string{"50h battery vs 40h", "multipoint pairing"},
		},
	}
	compareProducts := []*domain.Product{
		seedProduct("Sony WH-CH520", "$59.99", "Amazon", "https://www.amazon.com/dp/B0BS1Q5FJS"),
		seedProduct("JBL Tune 510BT", "$49.95", "Amazon", "https://www.amazon.com/dp/B08WM1V5P1"),
	}
	compare, linked, err := compares.CreateWithProducts(ctx, compareInput, compareProducts)
	if err != nil {
		log.Fatalf("insert comparison: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:       %s  (password: %s)\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:    %s\n", userID)
	fmt.Printf("  Searches:   %d  (%d products)\n", searchCount, productCount)
	fmt.Printf("  Comparison: %s  (%d linked products)\n", compare.ID, len(linked))
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in (sets the accessToken cookie):")
	fmt.Println()
	fmt.Printf("    curl -s -c cookies.txt -X POST http://localhost:8080/user/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — fetch the nested user document:")
	fmt.Println()
	fmt.Println("    curl -s -b cookies.txt 'http://localhost:8080/auth/verify?nested=true'")
}
