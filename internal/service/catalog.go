package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/repository"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
)

// ProductInput holds the fields for creating or updating a product. Prices
// are in stotinki.
type ProductInput struct {
	Name          string   `json:"name" validate:"required,min=2,max=200"`
	Brand         string   `json:"brand" validate:"max=100"`
	Description   string   `json:"description"`
	Price         int64    `json:"price" validate:"required,gt=0"`
	OriginalPrice int64    `json:"original_price" validate:"gte=0"`
	ImageURL      string   `json:"image_url"`
	Images        []string `json:"images"`
	CategoryID    int64    `json:"category_id" validate:"required,gt=0"`
	Features      []string `json:"features"`
	InStock       bool     `json:"in_stock"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
	Badge         string   `json:"badge" validate:"max=40"`
	BadgeColor    string   `json:"badge_color" validate:"max=40"`
}

// BrowseQuery holds the storefront's filter criteria as received from the
// query string. CategoryID expands to its category group before filtering.
type BrowseQuery struct {
	CategoryID int64
	Brand      string
	PriceMin   int64
	PriceMax   int64
	Search     string
	Sort       string
}

// CatalogService implements product browsing and the admin product CRUD.
// Browsing fetches the full collection and runs the in-memory filter/sort
// pipeline, mirroring how the storefront presents products.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	logger     *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// Browse returns the filtered, sorted product view for the storefront.
func (s *CatalogService) Browse(ctx context.Context, q BrowseQuery) ([]domain.Product, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("browse products: %w", err)
	}

	filter := domain.ProductFilter{
		Brand:    q.Brand,
		PriceMin: q.PriceMin,
		PriceMax: q.PriceMax,
		Search:   q.Search,
		Sort:     q.Sort,
	}

	if q.CategoryID > 0 {
		categories, err := s.categories.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("load categories for filter: %w", err)
		}
		filter.CategoryIDs = domain.CategoryGroup(categories, q.CategoryID)
	}

	return domain.FilterProducts(products, filter), nil
}

// GetProduct retrieves a single product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListBrands returns the distinct brands in the catalog for the filter UI.
func (s *CatalogService) ListBrands(ctx context.Context) ([]string, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return domain.Brands(products), nil
}

// ListFeatured returns the featured products in display order.
func (s *CatalogService) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListFeatured(ctx)
}

// SetFeatured replaces the featured product list. Every id must reference an
// existing product.
func (s *CatalogService) SetFeatured(ctx context.Context, productIDs []int64) error {
	for _, id := range productIDs {
		if _, err := s.products.GetByID(ctx, id); err != nil {
			return fmt.Errorf("validate featured product %d: %w", id, err)
		}
	}

	if err := s.products.SetFeatured(ctx, productIDs); err != nil {
		return fmt.Errorf("set featured products: %w", err)
	}

	s.logger.InfoContext(ctx, "featured products updated",
		slog.Int("count", len(productIDs)),
	)

	return nil
}

// ListProducts returns the paginated admin product list.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	return s.products.List(ctx, filter)
}

// CreateProduct creates a new product.
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.OriginalPrice > 0 && input.OriginalPrice < input.Price {
		return nil, apperrors.InvalidInput("original price must not be below the current price")
	}

	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		return nil, fmt.Errorf("validate category: %w", err)
	}

	now := time.Now().UTC()
	p := &domain.Product{
		Name:          input.Name,
		Brand:         input.Brand,
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		ImageURL:      input.ImageURL,
		Images:        input.Images,
		CategoryID:    input.CategoryID,
		Features:      input.Features,
		InStock:       input.InStock,
		StockQuantity: input.StockQuantity,
		Badge:         input.Badge,
		BadgeColor:    input.BadgeColor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", p.ID),
		slog.String("name", p.Name),
	)

	return p, nil
}

// UpdateProduct updates an existing product. The in_stock flag and
// stock_quantity are taken as given, independently; the storefront derives
// actual availability from both.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	if input.OriginalPrice > 0 && input.OriginalPrice < input.Price {
		return nil, apperrors.InvalidInput("original price must not be below the current price")
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != p.CategoryID {
		if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
			return nil, fmt.Errorf("validate category: %w", err)
		}
	}

	p.Name = input.Name
	p.Brand = input.Brand
	p.Description = input.Description
	p.Price = input.Price
	p.OriginalPrice = input.OriginalPrice
	p.ImageURL = input.ImageURL
	p.Images = input.Images
	p.CategoryID = input.CategoryID
	p.Features = input.Features
	p.InStock = input.InStock
	p.StockQuantity = input.StockQuantity
	p.Badge = input.Badge
	p.BadgeColor = input.BadgeColor

	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.Int64("product_id", p.ID),
	)

	return p, nil
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.Int64("product_id", id),
	)

	return nil
}
