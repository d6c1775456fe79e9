package domain

import "time"

// Product represents a catalog product. Prices are denominated in stotinki
// (1 lev = 100 stotinki) to avoid floating-point money arithmetic.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"original_price,omitempty"`
	ImageURL      string    `json:"image_url"`
	Images        []string  `json:"images,omitempty"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	CategoryID    int64     `json:"category_id"`
	Features      []string  `json:"features,omitempty"`
	InStock       bool      `json:"in_stock"`
	StockQuantity int       `json:"stock_quantity"`
	Badge         string    `json:"badge,omitempty"`
	BadgeColor    string    `json:"badge_color,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Available reports whether the product can actually be purchased. The
// in_stock flag and stock_quantity are set independently by administrators
// and can disagree; checkout trusts neither alone.
func (p *Product) Available() bool {
	return p.InStock && p.StockQuantity > 0
}

// OnSale reports whether the product carries a discounted price.
func (p *Product) OnSale() bool {
	return p.OriginalPrice > 0 && p.OriginalPrice > p.Price
}

// ProductSnapshot is the subset of product fields captured when a product is
// placed in a cart or wishlist. Snapshots are decoupled from later changes to
// the canonical product record.
type ProductSnapshot struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Snapshot captures the display fields of the product at this moment.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
	}
}
