package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/event"
	"github.com/zoobutik/zoobutik.bg/internal/repository"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
)

// Accepted payment method tags.
const (
	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentCardOnDelivery = "card_on_delivery"
	PaymentBankTransfer   = "bank_transfer"
)

// CheckoutInput holds the customer and delivery details for placing an order.
type CheckoutInput struct {
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=6,max=30"`
	Address       string `json:"address" validate:"required,max=250"`
	City          string `json:"city" validate:"required,max=100"`
	PostalCode    string `json:"postal_code" validate:"required,max=10"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash_on_delivery card_on_delivery bank_transfer"`
	DiscountCode  string `json:"discount_code"`
	Notes         string `json:"notes" validate:"max=500"`
}

// CheckoutService turns a session cart into an order. The order total is
// recomputed from current product prices, availability is checked against the
// live catalog, and the cart is cleared on success.
type CheckoutService struct {
	cart       *CartService
	products   repository.ProductRepository
	orders     repository.OrderRepository
	newsletter repository.NewsletterRepository
	producer   *event.Producer
	logger     *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cart *CartService,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	newsletter repository.NewsletterRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		cart:       cart,
		products:   products,
		orders:     orders,
		newsletter: newsletter,
		producer:   producer,
		logger:     logger,
	}
}

// PlaceOrder creates an order from the session's cart.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, userID *int64, input CheckoutInput) (*domain.Order, error) {
	cart, _, err := s.cart.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	// Re-price and availability-check each line against the live catalog.
	// Cart snapshots may be stale.
	items := make([]domain.OrderItem, 0, len(cart.Items))
	var total int64
	for _, line := range cart.Items {
		p, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.InvalidInput(fmt.Sprintf("product %d is no longer available", line.ProductID))
			}
			return nil, fmt.Errorf("load product %d: %w", line.ProductID, err)
		}
		if !p.Available() || p.StockQuantity < line.Quantity {
			return nil, apperrors.Conflict(fmt.Sprintf("product %q is out of stock", p.Name))
		}

		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Brand:     p.Brand,
			Price:     p.Price,
			Quantity:  line.Quantity,
		})
		total += p.Price * int64(line.Quantity)
	}

	appliedCode := ""
	if input.DiscountCode != "" {
		discounted, err := s.applyDiscount(ctx, input.DiscountCode, total)
		if err != nil {
			return nil, err
		}
		total = discounted
		appliedCode = input.DiscountCode
	}

	now := time.Now().UTC()
	order := &domain.Order{
		UserID:        userID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Address:       input.Address,
		City:          input.City,
		PostalCode:    input.PostalCode,
		Items:         items,
		Total:         total,
		DiscountCode:  appliedCode,
		Status:        domain.OrderStatusPending,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if appliedCode != "" {
		if err := s.newsletter.MarkDiscountCodeUsed(ctx, appliedCode); err != nil {
			s.logger.ErrorContext(ctx, "failed to mark discount code used",
				slog.String("code", appliedCode),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.cart.ClearCart(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.Int64("order_id", order.ID),
		slog.Int64("total", order.Total),
		slog.String("payment_method", order.PaymentMethod),
	)

	return order, nil
}

// applyDiscount validates the code and returns the discounted total.
func (s *CheckoutService) applyDiscount(ctx context.Context, code string, total int64) (int64, error) {
	dc, err := s.newsletter.GetDiscountCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.InvalidInput("unknown discount code")
		}
		return 0, fmt.Errorf("load discount code: %w", err)
	}

	if !dc.Redeemable(time.Now().UTC()) {
		return 0, apperrors.InvalidInput("discount code is expired or already used")
	}

	return dc.Apply(total), nil
}
