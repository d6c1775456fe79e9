package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/repository"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerLine is the maximum quantity allowed for a single cart line.
	MaxQuantityPerLine = 100
	// MaxLinesPerCart is the maximum number of distinct lines allowed in a cart.
	MaxLinesPerCart = 50
)

// RestoreStatus reports how a persisted snapshot was loaded.
type RestoreStatus int

const (
	// RestoreOK means a snapshot was found and parsed.
	RestoreOK RestoreStatus = iota
	// RestoreEmpty means no snapshot existed; the store starts empty.
	RestoreEmpty
	// RestoreCorrupt means the snapshot failed to parse and was discarded;
	// the store recovered to empty.
	RestoreCorrupt
)

// AddItemInput holds the parameters for adding a product to the cart. The
// product fields are snapshotted into the line at add time.
type AddItemInput struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required"`
	Brand     string `json:"brand"`
	Price     int64  `json:"price" validate:"gte=0"`
	ImageURL  string `json:"image_url"`
	Quantity  int    `json:"quantity"`
}

// CartService implements the business logic for session cart operations.
// Persistence failures are swallowed and logged; callers always get the
// updated in-memory cart back.
type CartService struct {
	repo       repository.CartRepository
	logger     *slog.Logger
	sessionTTL time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, logger *slog.Logger, sessionTTL time.Duration) *CartService {
	return &CartService{
		repo:       repo,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

// GetCart retrieves the cart for a session. A missing snapshot yields an
// empty cart; a corrupt snapshot is discarded and also yields an empty cart,
// with the recovery reported in the RestoreStatus.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, RestoreStatus, error) {
	if sessionID == "" {
		return nil, RestoreEmpty, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return s.newEmptyCart(sessionID), RestoreEmpty, nil
		case errors.Is(err, apperrors.ErrSnapshotCorrupt):
			s.logger.WarnContext(ctx, "corrupt cart snapshot discarded",
				slog.String("session_id", sessionID),
			)
			return s.newEmptyCart(sessionID), RestoreCorrupt, nil
		default:
			return nil, RestoreEmpty, fmt.Errorf("get cart: %w", err)
		}
	}

	return cart, RestoreOK, nil
}

// AddItem adds a product to the session's cart. If a line for the product
// already exists, its quantity is increased; the original snapshot is kept.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.ProductID <= 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.InvalidQuantity("quantity must be greater than 0")
	}
	if input.Quantity > MaxQuantityPerLine {
		return nil, apperrors.InvalidQuantity(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	cart, _, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindLineIndex(input.ProductID); idx >= 0 {
		newQty := cart.Items[idx].Quantity + input.Quantity
		if newQty > MaxQuantityPerLine {
			return nil, apperrors.InvalidQuantity(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerLine))
		}
		cart.Items[idx].Quantity = newQty
	} else {
		if len(cart.Items) >= MaxLinesPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d lines", MaxLinesPerCart))
		}
		cart.Items = append(cart.Items, domain.CartLine{
			ProductSnapshot: domain.ProductSnapshot{
				ProductID: input.ProductID,
				Name:      input.Name,
				Brand:     input.Brand,
				Price:     input.Price,
				ImageURL:  input.ImageURL,
			},
			Quantity: input.Quantity,
		})
	}

	s.persist(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or less
// removes the line. An unknown product id is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if quantity > MaxQuantityPerLine {
		return nil, apperrors.InvalidQuantity(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}

	cart, _, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return cart, nil
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	s.persist(ctx, cart)

	s.logger.InfoContext(ctx, "cart line quantity updated",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem deletes a cart line. An unknown product id is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, _, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	s.persist(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", productID),
	)

	return cart, nil
}

// ClearCart removes all lines and deletes the persisted snapshot. Clearing an
// already-empty cart is a no-op.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete cart snapshot",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

// persist saves the cart snapshot best-effort. Failures are logged, never
// surfaced: the caller keeps working with the in-memory cart.
func (s *CartService) persist(ctx context.Context, cart *domain.Cart) {
	cart.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist cart snapshot",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CartService) newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Items:     []domain.CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
