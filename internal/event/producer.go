package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	pkgkafka "github.com/zoobutik/zoobutik.bg/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicOrderCreated         = "zoobutik.order.created"
	TopicOrderStatusChanged   = "zoobutik.order.status_changed"
	TopicNewsletterSubscribed = "zoobutik.newsletter.subscribed"
	TopicUserRegistered       = "zoobutik.user.registered"
)

// Aggregate type constants.
const (
	AggregateTypeOrder      = "order"
	AggregateTypeSubscriber = "subscriber"
	AggregateTypeUser       = "user"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "zoobutik-storefront"

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	OrderID       int64              `json:"order_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	Items         []domain.OrderItem `json:"items"`
	Total         int64              `json:"total"`
	PaymentMethod string             `json:"payment_method"`
}

// OrderStatusChangedData is the payload for an order.status_changed event.
type OrderStatusChangedData struct {
	OrderID       int64              `json:"order_id"`
	CustomerEmail string             `json:"customer_email"`
	OldStatus     domain.OrderStatus `json:"old_status"`
	NewStatus     domain.OrderStatus `json:"new_status"`
}

// NewsletterSubscribedData is the payload for a newsletter.subscribed event.
type NewsletterSubscribedData struct {
	Email           string    `json:"email"`
	DiscountCode    string    `json:"discount_code"`
	DiscountPercent int       `json:"discount_percent"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	data := OrderCreatedData{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Items:         order.Items,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, fmt.Sprint(order.ID), AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.Int64("order_id", order.ID),
		slog.Int64("total", order.Total),
	)

	return nil
}

// PublishOrderStatusChanged publishes an order.status_changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, order *domain.Order, oldStatus domain.OrderStatus) error {
	data := OrderStatusChangedData{
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		OldStatus:     oldStatus,
		NewStatus:     order.Status,
	}

	event, err := pkgkafka.NewEvent(TopicOrderStatusChanged, fmt.Sprint(order.ID), AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.status_changed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderStatusChanged, event); err != nil {
		return fmt.Errorf("publish order.status_changed event: %w", err)
	}

	return nil
}

// PublishNewsletterSubscribed publishes a newsletter.subscribed event.
func (p *Producer) PublishNewsletterSubscribed(ctx context.Context, sub *domain.Subscriber, code *domain.DiscountCode) error {
	data := NewsletterSubscribedData{
		Email:           sub.Email,
		DiscountCode:    code.Code,
		DiscountPercent: code.Percent,
		ExpiresAt:       code.ExpiresAt,
	}

	event, err := pkgkafka.NewEvent(TopicNewsletterSubscribed, sub.Email, AggregateTypeSubscriber, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create newsletter.subscribed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicNewsletterSubscribed, event); err != nil {
		return fmt.Errorf("publish newsletter.subscribed event: %w", err)
	}

	return nil
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, fmt.Sprint(user.ID), AggregateTypeUser, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	return nil
}
