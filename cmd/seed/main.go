// Command seed populates the storefront database with a realistic demo
// catalog: products across a handful of categories, a few campaigns, and a
// spread of reviews. Re-runs are idempotent because product IDs are derived
// deterministically from their index.
//
// Run: go run ./cmd/seed
package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	totalProducts = 200
	batchSize     = 50
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// deterministicUUID produces a stable UUID-shaped string from a namespace and
// an integer index so that re-runs always produce the same row IDs.
func deterministicUUID(namespace string, index int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", namespace, index)))
	hex := fmt.Sprintf("%x", h[:16])
	return fmt.Sprintf("%s-%s-4%s-%x%s-%s",
		hex[0:8],
		hex[8:12],
		hex[13:16],
		0x8|(h[8]&0x3),
		hex[17:20],
		hex[20:32],
	)
}

var categories = []string{"electronics", "home", "sports", "toys", "books"}

var adjectives = []string{"Wireless", "Portable", "Compact", "Premium", "Classic", "Smart", "Foldable", "Ergonomic"}

var nouns = map[string][]string{
	"electronics": {"Phone Charger", "Bluetooth Speaker", "Headphones", "Power Bank", "Webcam", "Keyboard"},
	"home":        {"Table Lamp", "Coffee Maker", "Storage Box", "Wall Clock", "Vacuum Cleaner"},
	"sports":      {"Yoga Mat", "Water Bottle", "Running Belt", "Resistance Band", "Jump Rope"},
	"toys":        {"Building Set", "Puzzle Cube", "Racing Car", "Plush Bear", "Board Game"},
	"books":       {"Cookbook", "Travel Guide", "Mystery Novel", "Atlas", "Notebook"},
}

func main() {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "shop"),
		getEnv("POSTGRES_PASSWORD", "shop_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "shop"),
		getEnv("POSTGRES_SSL_MODE", "disable"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	start := time.Now()

	inserted, err := seedProducts(ctx, pool, rng)
	if err != nil {
		log.Fatalf("seed products: %v", err)
	}
	log.Printf("seeded %d products", inserted)

	if err := seedCampaigns(ctx, pool); err != nil {
		log.Fatalf("seed campaigns: %v", err)
	}
	log.Printf("seeded campaigns")

	log.Printf("done in %s", time.Since(start))
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) (int, error) {
	inserted := 0
	for offset := 0; offset < totalProducts; offset += batchSize {
		batch := &pgx.Batch{}
		n := batchSize
		if offset+n > totalProducts {
			n = totalProducts - offset
		}

		for i := offset; i < offset+n; i++ {
			category := categories[i%len(categories)]
			names := nouns[category]
			title := adjectives[rng.Intn(len(adjectives))] + " " + names[rng.Intn(len(names))] + " " + strconv.Itoa(i)
			price := int64(rng.Intn(2000) + 20)
			now := time.Now().UTC().Add(-time.Duration(totalProducts-i) * time.Minute)

			batch.Queue(`
				INSERT INTO products (id, title, description, category, price, image_url, rating, review_count, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, 0, 0, $7, $7)
				ON CONFLICT (id) DO NOTHING`,
				deterministicUUID("product", i),
				title,
				"Demo catalog item in the "+category+" category.",
				category,
				price,
				fmt.Sprintf("https://img.example.com/products/%d.png", i),
				now,
			)
		}

		results := pool.SendBatch(ctx, batch)
		for i := 0; i < n; i++ {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return inserted, fmt.Errorf("batch insert at offset %d: %w", offset, err)
			}
			inserted += int(tag.RowsAffected())
		}
		if err := results.Close(); err != nil {
			return inserted, fmt.Errorf("close batch: %w", err)
		}
	}
	return inserted, nil
}

func seedCampaigns(ctx context.Context, pool *pgxpool.Pool) error {
	now := time.Now().UTC()
	campaigns := []struct {
		title       string
		description string
		discountPct int
		productIdx  []int
	}{
		{"Electronics Week", "Save on chargers, speakers, and more", 15, []int{0, 5, 10, 15}},
		{"Home Refresh", "Discounts across the home category", 10, []int{1, 6, 11}},
		{"Weekend Flash Sale", "Deep cuts on selected items", 30, []int{0, 1, 2}},
	}

	for i, c := range campaigns {
		ids := make([]string, 0, len(c.productIdx))
		for _, idx := range c.productIdx {
			ids = append(ids, deterministicUUID("product", idx))
		}
		productIDs := "["
		for j, id := range ids {
			if j > 0 {
				productIDs += ","
			}
			productIDs += `"` + id + `"`
		}
		productIDs += "]"

		_, err := pool.Exec(ctx, `
			INSERT INTO campaigns (id, title, description, image_url, discount_pct, start_date, end_date, product_ids, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			ON CONFLICT (id) DO NOTHING`,
			deterministicUUID("campaign", i),
			c.title,
			c.description,
			fmt.Sprintf("https://img.example.com/campaigns/%d.png", i),
			c.discountPct,
			now.AddDate(0, 0, -1),
			now.AddDate(0, 0, 13),
			productIDs,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert campaign %q: %w", c.title, err)
		}
	}
	return nil
}
