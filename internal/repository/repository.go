package repository

import (
	"context"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
)

// ProductFilter defines filter criteria for listing products from the store.
// The storefront fetches whole collections and filters in memory, so this is
// used by the admin list endpoint only.
type ProductFilter struct {
	CategoryID *int64
	Brand      *string
	Search     *string
	InStock    *bool
	Page       int
	PerPage    int
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product and assigns its generated id.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// ListAll returns every product, for the storefront's in-memory
	// filter/sort pipeline.
	ListAll(ctx context.Context) ([]domain.Product, error)

	// List returns products matching the given filter along with the total count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)

	// ListFeatured returns the products currently marked as featured,
	// in their configured display order.
	ListFeatured(ctx context.Context) ([]domain.Product, error)

	// SetFeatured replaces the featured product list with the given ids.
	SetFeatured(ctx context.Context, productIDs []int64) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by its identifier.
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// ListAll returns every category, visible or not, for the tree builder
	// and the admin back-office.
	ListAll(ctx context.Context) ([]domain.Category, error)

	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

// OrderFilter defines filter criteria for listing orders.
type OrderFilter struct {
	Status  *domain.OrderStatus
	UserID  *int64
	Email   *string
	Page    int
	PerPage int
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
}

// NewsletterRepository defines the interface for newsletter persistence.
type NewsletterRepository interface {
	// Subscribe inserts a subscriber; returns ErrAlreadyExists if the email
	// is already subscribed.
	Subscribe(ctx context.Context, sub *domain.Subscriber) error

	GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
	List(ctx context.Context, page, perPage int) ([]domain.Subscriber, int, error)
	Unsubscribe(ctx context.Context, email string) error

	// CreateDiscountCode stores a newly issued discount code.
	CreateDiscountCode(ctx context.Context, code *domain.DiscountCode) error

	// GetDiscountCode retrieves a discount code by its code string.
	GetDiscountCode(ctx context.Context, code string) (*domain.DiscountCode, error)

	// MarkDiscountCodeUsed records the code as redeemed.
	MarkDiscountCodeUsed(ctx context.Context, code string) error
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// CartRepository defines the persistence port for session carts. Snapshots
// must round-trip exactly; a snapshot that fails to parse surfaces as
// ErrSnapshotCorrupt so the service can reset to empty.
type CartRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// WishlistRepository defines the persistence port for session wishlists.
type WishlistRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.Wishlist, error)
	Save(ctx context.Context, wishlist *domain.Wishlist) error
	Delete(ctx context.Context, sessionID string) error
}
