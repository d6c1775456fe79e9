package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/repository"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
)

const productColumns = `id, name, brand, description, price, original_price, image_url, images,
	rating, review_count, category_id, features, in_stock, stock_quantity,
	badge, badge_color, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool DB
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool DB) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product and assigns its generated id.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (name, brand, description, price, original_price, image_url, images,
			rating, review_count, category_id, features, in_stock, stock_quantity,
			badge, badge_color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		p.Name,
		p.Brand,
		p.Description,
		p.Price,
		p.OriginalPrice,
		p.ImageURL,
		p.Images,
		p.Rating,
		p.ReviewCount,
		p.CategoryID,
		p.Features,
		p.InStock,
		p.StockQuantity,
		p.Badge,
		p.BadgeColor,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", fmt.Sprint(id))
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

// ListAll returns every product for the in-memory filter/sort pipeline.
func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY id`, productColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// List returns products matching the given filter with the total count.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}

	if filter.Brand != nil {
		conditions = append(conditions, fmt.Sprintf("brand = $%d", argIndex))
		args = append(args, *filter.Brand)
		argIndex++
	}

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	if filter.InStock != nil {
		conditions = append(conditions, fmt.Sprintf("in_stock = $%d", argIndex))
		args = append(args, *filter.InStock)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// count(*) OVER() returns the total count in a single query.
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   = []domain.Product{}
		totalCount int
	)

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Brand, &p.Description, &p.Price, &p.OriginalPrice,
			&p.ImageURL, &p.Images, &p.Rating, &p.ReviewCount, &p.CategoryID,
			&p.Features, &p.InStock, &p.StockQuantity, &p.Badge, &p.BadgeColor,
			&p.CreatedAt, &p.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, totalCount, nil
}

// ListFeatured returns featured products in their configured display order.
func (r *ProductRepository) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN featured_products f ON f.product_id = p.id
		ORDER BY f.position`,
		prefixColumns("p", productColumns),
	)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan featured product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate featured product rows: %w", err)
	}

	return products, nil
}

// SetFeatured replaces the featured product list with the given ids, in order.
func (r *ProductRepository) SetFeatured(ctx context.Context, productIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin featured tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM featured_products`); err != nil {
		return fmt.Errorf("clear featured products: %w", err)
	}

	for i, id := range productIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO featured_products (product_id, position) VALUES ($1, $2)`,
			id, i,
		); err != nil {
			return fmt.Errorf("insert featured product %d: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit featured tx: %w", err)
	}

	return nil
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = $1, brand = $2, description = $3, price = $4, original_price = $5,
		    image_url = $6, images = $7, rating = $8, review_count = $9, category_id = $10,
		    features = $11, in_stock = $12, stock_quantity = $13, badge = $14, badge_color = $15,
		    updated_at = $16
		WHERE id = $17`

	ct, err := r.pool.Exec(ctx, query,
		p.Name, p.Brand, p.Description, p.Price, p.OriginalPrice,
		p.ImageURL, p.Images, p.Rating, p.ReviewCount, p.CategoryID,
		p.Features, p.InStock, p.StockQuantity, p.Badge, p.BadgeColor,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", fmt.Sprint(p.ID))
	}

	return nil
}

// Delete removes a product by its ID.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", fmt.Sprint(id))
	}

	return nil
}

// scanProduct scans one product row, from either pgx.Row or pgx.Rows.
func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Description, &p.Price, &p.OriginalPrice,
		&p.ImageURL, &p.Images, &p.Rating, &p.ReviewCount, &p.CategoryID,
		&p.Features, &p.InStock, &p.StockQuantity, &p.Badge, &p.BadgeColor,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// prefixColumns qualifies each column in a comma-separated list with a table
// alias, for joined queries.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
