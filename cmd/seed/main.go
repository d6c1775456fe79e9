// Package main implements a standalone seed script that populates the
// storefront database with realistic test data: the category tree, a
// catalogue of pet products with BGN prices in stotinki, a featured
// selection, and an admin account.
//
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// --------------------------------------------------------------------------
// Configuration helpers
// --------------------------------------------------------------------------

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func databaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "zoobutik"),
	)
}

// --------------------------------------------------------------------------
// Seed data
// --------------------------------------------------------------------------

type seedCategory struct {
	name      string
	slug      string
	parent    string // parent slug, empty for top level
	sortOrder int
	icon      string
}

var seedCategories = []seedCategory{
	{name: "Кучета", slug: "kucheta", sortOrder: 1, icon: "dog"},
	{name: "Котки", slug: "kotki", sortOrder: 2, icon: "cat"},
	{name: "Птици", slug: "ptitsi", sortOrder: 3, icon: "bird"},
	{name: "Гризачи", slug: "grizachi", sortOrder: 4, icon: "rodent"},
	{name: "Акваристика", slug: "akvaristika", sortOrder: 5, icon: "fish"},
	{name: "Храна за кучета", slug: "hrana-za-kucheta", parent: "kucheta", sortOrder: 1},
	{name: "Лакомства за кучета", slug: "lakomstva-za-kucheta", parent: "kucheta", sortOrder: 2},
	{name: "Аксесоари за кучета", slug: "aksesoari-za-kucheta", parent: "kucheta", sortOrder: 3},
	{name: "Храна за котки", slug: "hrana-za-kotki", parent: "kotki", sortOrder: 1},
	{name: "Котешка тоалетна", slug: "koteshka-toaletna", parent: "kotki", sortOrder: 2},
	{name: "Играчки за котки", slug: "igrachki-za-kotki", parent: "kotki", sortOrder: 3},
}

type seedProduct struct {
	name          string
	brand         string
	category      string // category slug
	price         int64  // stotinki
	originalPrice int64  // 0 when not on sale
	badge         string
	badgeColor    string
}

var seedProducts = []seedProduct{
	{name: "Суха храна за кучета с агнешко 12 кг", brand: "Royal Canin", category: "hrana-za-kucheta", price: 8999, originalPrice: 10499, badge: "Промо", badgeColor: "red"},
	{name: "Суха храна за кученца Puppy 3 кг", brand: "Royal Canin", category: "hrana-za-kucheta", price: 4250},
	{name: "Консерва за кучета с телешко 800 г", brand: "Pedigree", category: "hrana-za-kucheta", price: 389},
	{name: "Гранули за едри породи 15 кг", brand: "Acana", category: "hrana-za-kucheta", price: 15990, badge: "Ново", badgeColor: "green"},
	{name: "Дентални лакомства за кучета", brand: "Pedigree", category: "lakomstva-za-kucheta", price: 699},
	{name: "Сушени свински уши 10 бр", brand: "Trixie", category: "lakomstva-za-kucheta", price: 1250},
	{name: "Нашийник с каишка размер M", brand: "Trixie", category: "aksesoari-za-kucheta", price: 2490},
	{name: "Легло за куче 80 см", brand: "Trixie", category: "aksesoari-za-kucheta", price: 5990, originalPrice: 7490, badge: "Промо", badgeColor: "red"},
	{name: "Суха храна за кастрирани котки 2 кг", brand: "Royal Canin", category: "hrana-za-kotki", price: 3899},
	{name: "Паучове за котки микс 12x85 г", brand: "Whiskas", category: "hrana-za-kotki", price: 1099},
	{name: "Суха храна за котки със сьомга 7 кг", brand: "Acana", category: "hrana-za-kotki", price: 11490, badge: "Хит", badgeColor: "orange"},
	{name: "Бентонитова котешка тоалетна 10 л", brand: "Catsan", category: "koteshka-toaletna", price: 1590},
	{name: "Силиконова котешка тоалетна 3.8 л", brand: "Catsan", category: "koteshka-toaletna", price: 1890},
	{name: "Интерактивна играчка с пера", brand: "Trixie", category: "igrachki-za-kotki", price: 990},
	{name: "Катерушка за котки 120 см", brand: "Trixie", category: "igrachki-za-kotki", price: 12900, originalPrice: 14900, badge: "Промо", badgeColor: "red"},
	{name: "Храна за вълнисти папагали 1 кг", brand: "Vitakraft", category: "ptitsi", price: 750},
	{name: "Клетка за папагали 60 см", brand: "Ferplast", category: "ptitsi", price: 8490},
	{name: "Храна за хамстери 800 г", brand: "Vitakraft", category: "grizachi", price: 590},
	{name: "Клетка за хамстер с тунели", brand: "Ferplast", category: "grizachi", price: 6990},
	{name: "Храна за тропически рибки 250 мл", brand: "Tetra", category: "akvaristika", price: 1190},
	{name: "Вътрешен филтър за аквариум до 60 л", brand: "Tetra", category: "akvaristika", price: 3490},
}

// featuredSlots lists indices into seedProducts shown on the home page.
var featuredSlots = []int{0, 3, 10, 14}

// --------------------------------------------------------------------------
// Seeding
// --------------------------------------------------------------------------

func seedCategoryTree(ctx context.Context, pool *pgxpool.Pool) (map[string]int64, error) {
	ids := make(map[string]int64, len(seedCategories))

	for _, c := range seedCategories {
		var parentID *int64
		if c.parent != "" {
			id, ok := ids[c.parent]
			if !ok {
				return nil, fmt.Errorf("category %q references unknown parent %q", c.slug, c.parent)
			}
			parentID = &id
		}

		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO categories (name, slug, parent_id, visible, sort_order, href, icon, created_at, updated_at)
			VALUES ($1, $2, $3, TRUE, $4, $5, $6, now(), now())
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, sort_order = EXCLUDED.sort_order
			RETURNING id`,
			c.name, c.slug, parentID, c.sortOrder, "/categories/"+c.slug, c.icon,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert category %q: %w", c.slug, err)
		}
		ids[c.slug] = id
	}

	return ids, nil
}

func seedCatalogue(ctx context.Context, pool *pgxpool.Pool, categoryIDs map[string]int64) ([]int64, error) {
	rng := rand.New(rand.NewSource(42))
	productIDs := make([]int64, 0, len(seedProducts))

	for _, p := range seedProducts {
		categoryID, ok := categoryIDs[p.category]
		if !ok {
			return nil, fmt.Errorf("product %q references unknown category %q", p.name, p.category)
		}

		var originalPrice *int64
		if p.originalPrice > 0 {
			originalPrice = &p.originalPrice
		}

		rating := 3.5 + rng.Float64()*1.5
		reviewCount := rng.Intn(200)
		stock := 5 + rng.Intn(120)

		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO products (name, brand, description, price, original_price, image_url, images,
				rating, review_count, category_id, features, in_stock, stock_quantity,
				badge, badge_color, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE, $12, $13, $14, now(), now())
			RETURNING id`,
			p.name, p.brand, "Качествен продукт от "+p.brand+" за вашия домашен любимец.",
			p.price, originalPrice, "/images/products/placeholder.jpg", []string{},
			rating, reviewCount, categoryID, []string{"Безплатна доставка над 49 лв"},
			stock, p.badge, p.badgeColor,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert product %q: %w", p.name, err)
		}
		productIDs = append(productIDs, id)
	}

	return productIDs, nil
}

func seedFeatured(ctx context.Context, pool *pgxpool.Pool, productIDs []int64) error {
	if _, err := pool.Exec(ctx, `DELETE FROM featured_products`); err != nil {
		return fmt.Errorf("clear featured products: %w", err)
	}

	for pos, idx := range featuredSlots {
		if idx >= len(productIDs) {
			continue
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO featured_products (product_id, position) VALUES ($1, $2)`,
			productIDs[idx], pos,
		)
		if err != nil {
			return fmt.Errorf("insert featured product: %w", err)
		}
	}

	return nil
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	password := getEnv("SEED_ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (email, password_hash, full_name, phone, address, city, postal_code, role, created_at, updated_at)
		VALUES ($1, $2, $3, '', '', '', '', 'admin', now(), now())
		ON CONFLICT (email) DO NOTHING`,
		getEnv("SEED_ADMIN_EMAIL", "admin@zoobutik.bg"), string(hash), "Администратор",
	)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	return nil
}

// --------------------------------------------------------------------------
// Main
// --------------------------------------------------------------------------

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL())
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	categoryIDs, err := seedCategoryTree(ctx, pool)
	if err != nil {
		log.Fatalf("seed categories: %v", err)
	}
	log.Printf("seeded %d categories", len(categoryIDs))

	productIDs, err := seedCatalogue(ctx, pool, categoryIDs)
	if err != nil {
		log.Fatalf("seed products: %v", err)
	}
	log.Printf("seeded %d products", len(productIDs))

	if err := seedFeatured(ctx, pool, productIDs); err != nil {
		log.Fatalf("seed featured products: %v", err)
	}
	log.Printf("seeded %d featured slots", len(featuredSlots))

	if err := seedAdmin(ctx, pool); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}
	log.Println("seeded admin user")

	log.Println("done")
}
