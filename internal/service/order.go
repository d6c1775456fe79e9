package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/event"
	"github.com/zoobutik/zoobutik.bg/internal/repository"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
)

// OrderService implements the admin order back-office: listing, lookup, and
// status transitions.
type OrderService struct {
	repo     repository.OrderRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetOrder retrieves an order by id.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders returns the paginated order list.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	return s.repo.List(ctx, filter)
}

// ListOrdersForUser returns a customer's own orders.
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID int64, page, perPage int) ([]domain.Order, int, error) {
	return s.repo.List(ctx, repository.OrderFilter{
		UserID:  &userID,
		Page:    page,
		PerPage: perPage,
	})
}

// UpdateStatus transitions an order to a new status, enforcing the lifecycle
// transition table.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, newStatus domain.OrderStatus) (*domain.Order, error) {
	if !newStatus.IsValid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown order status %q", newStatus))
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if oldStatus == newStatus {
		return order, nil
	}
	if !oldStatus.CanTransitionTo(newStatus) {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot transition order from %s to %s", oldStatus, newStatus))
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = newStatus

	if err := s.producer.PublishOrderStatusChanged(ctx, order, oldStatus); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.Int64("order_id", order.ID),
		slog.String("old_status", string(oldStatus)),
		slog.String("new_status", string(newStatus)),
	)

	return order, nil
}
