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

// MaxWishlistEntries is the maximum number of products a wishlist may hold.
const MaxWishlistEntries = 200

// AddWishlistInput holds the product snapshot fields saved to the wishlist.
type AddWishlistInput struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required"`
	Brand     string `json:"brand"`
	Price     int64  `json:"price" validate:"gte=0"`
	ImageURL  string `json:"image_url"`
}

// WishlistService implements the business logic for session wishlists.
// The wishlist has set semantics: a product id appears at most once.
type WishlistService struct {
	repo   repository.WishlistRepository
	logger *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.WishlistRepository, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:   repo,
		logger: logger,
	}
}

// GetWishlist retrieves the wishlist for a session. A missing snapshot yields
// an empty wishlist; a corrupt snapshot is discarded and also yields an empty
// wishlist, with the recovery reported in the RestoreStatus.
func (s *WishlistService) GetWishlist(ctx context.Context, sessionID string) (*domain.Wishlist, RestoreStatus, error) {
	if sessionID == "" {
		return nil, RestoreEmpty, apperrors.InvalidInput("session id is required")
	}

	wishlist, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return s.newEmptyWishlist(sessionID), RestoreEmpty, nil
		case errors.Is(err, apperrors.ErrSnapshotCorrupt):
			s.logger.WarnContext(ctx, "corrupt wishlist snapshot discarded",
				slog.String("session_id", sessionID),
			)
			return s.newEmptyWishlist(sessionID), RestoreCorrupt, nil
		default:
			return nil, RestoreEmpty, fmt.Errorf("get wishlist: %w", err)
		}
	}

	return wishlist, RestoreOK, nil
}

// AddItem saves a product to the wishlist. Adding a product that is already
// present is a no-op.
func (s *WishlistService) AddItem(ctx context.Context, sessionID string, input AddWishlistInput) (*domain.Wishlist, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.ProductID <= 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}

	wishlist, _, err := s.GetWishlist(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if wishlist.Contains(input.ProductID) {
		return wishlist, nil
	}

	if len(wishlist.Items) >= MaxWishlistEntries {
		return nil, apperrors.InvalidInput(fmt.Sprintf("wishlist must not contain more than %d products", MaxWishlistEntries))
	}

	wishlist.Items = append(wishlist.Items, domain.ProductSnapshot{
		ProductID: input.ProductID,
		Name:      input.Name,
		Brand:     input.Brand,
		Price:     input.Price,
		ImageURL:  input.ImageURL,
	})

	s.persist(ctx, wishlist)

	s.logger.InfoContext(ctx, "product added to wishlist",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", input.ProductID),
	)

	return wishlist, nil
}

// RemoveItem removes a product from the wishlist. An unknown product id is a
// no-op.
func (s *WishlistService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.Wishlist, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	wishlist, _, err := s.GetWishlist(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := wishlist.FindIndex(productID)
	if idx < 0 {
		return wishlist, nil
	}

	wishlist.Items = append(wishlist.Items[:idx], wishlist.Items[idx+1:]...)

	s.persist(ctx, wishlist)

	s.logger.InfoContext(ctx, "product removed from wishlist",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", productID),
	)

	return wishlist, nil
}

// Clear empties the wishlist and deletes the persisted snapshot.
func (s *WishlistService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete wishlist snapshot",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	s.logger.InfoContext(ctx, "wishlist cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

func (s *WishlistService) persist(ctx context.Context, wishlist *domain.Wishlist) {
	wishlist.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, wishlist); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist wishlist snapshot",
			slog.String("session_id", wishlist.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *WishlistService) newEmptyWishlist(sessionID string) *domain.Wishlist {
	now := time.Now().UTC()
	return &domain.Wishlist{
		SessionID: sessionID,
		Items:     []domain.ProductSnapshot{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
