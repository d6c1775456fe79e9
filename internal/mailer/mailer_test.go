package mailer

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/event"
	pkgkafka "github.com/zoobutik/zoobutik.bg/pkg/kafka"
)

type captureSender struct {
	sent []Message
}

func (s *captureSender) Send(_ context.Context, msg Message) error {
	s.sent = append(s.sent, msg)
	return nil
}

func newTestMailer() (*Mailer, *captureSender) {
	sender := &captureSender{}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(sender, "Зообутик <noreply@zoobutik.bg>", logger), sender
}

func mustEvent(t *testing.T, eventType string, data any) *pkgkafka.Event {
	t.Helper()
	evt, err := pkgkafka.NewEvent(eventType, "1", "test", "test", data)
	require.NoError(t, err)
	return evt
}

func TestHandleNewsletterSubscribed_SendsWelcomeEmail(t *testing.T) {
	m, sender := newTestMailer()

	evt := mustEvent(t, event.TopicNewsletterSubscribed, event.NewsletterSubscribedData{
		Email:           "ivan@example.com",
		DiscountCode:    "WELCOME10-A1B2C3",
		DiscountPercent: 10,
		ExpiresAt:       time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, m.HandleNewsletterSubscribed(context.Background(), evt))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "ivan@example.com", msg.To)
	assert.Contains(t, msg.Body, "WELCOME10-A1B2C3")
	assert.Contains(t, msg.Body, "10%")
	assert.Contains(t, msg.Body, "01.10.2026")
}

func TestHandleUserRegistered_GreetsByName(t *testing.T) {
	m, sender := newTestMailer()

	evt := mustEvent(t, event.TopicUserRegistered, event.UserRegisteredData{
		UserID:   7,
		Email:    "ivan@example.com",
		FullName: "Иван Петров",
	})

	require.NoError(t, m.HandleUserRegistered(context.Background(), evt))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "Добре дошли в Зообутик", msg.Subject)
	assert.Contains(t, msg.Body, "Иван Петров")
}

func TestHandleOrderCreated_ItemizedDualCurrencyTotals(t *testing.T) {
	m, sender := newTestMailer()

	evt := mustEvent(t, event.TopicOrderCreated, event.OrderCreatedData{
		OrderID:       42,
		CustomerName:  "Иван Петров",
		CustomerEmail: "ivan@example.com",
		Items: []domain.OrderItem{
			{ProductID: 1, Name: "Суха храна за кучета", Price: 8999, Quantity: 1},
		},
		Total:         8999,
		PaymentMethod: "cash_on_delivery",
	})

	require.NoError(t, m.HandleOrderCreated(context.Background(), evt))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "Поръчка №42 е приета", msg.Subject)
	assert.Contains(t, msg.Body, "89.99 лв (46.01 €)")
	assert.Contains(t, msg.Body, "Наложен платеж")
}

func TestHandleOrderStatusChanged_ShippedNotifies(t *testing.T) {
	m, sender := newTestMailer()

	evt := mustEvent(t, event.TopicOrderStatusChanged, event.OrderStatusChangedData{
		OrderID:       42,
		CustomerEmail: "ivan@example.com",
		OldStatus:     domain.OrderStatusProcessing,
		NewStatus:     domain.OrderStatusShipped,
	})

	require.NoError(t, m.HandleOrderStatusChanged(context.Background(), evt))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Поръчка №42 е изпратена", sender.sent[0].Subject)
}

func TestHandleOrderStatusChanged_InternalTransitionSkipped(t *testing.T) {
	m, sender := newTestMailer()

	evt := mustEvent(t, event.TopicOrderStatusChanged, event.OrderStatusChangedData{
		OrderID:       42,
		CustomerEmail: "ivan@example.com",
		OldStatus:     domain.OrderStatusPending,
		NewStatus:     domain.OrderStatusProcessing,
	})

	require.NoError(t, m.HandleOrderStatusChanged(context.Background(), evt))
	assert.Empty(t, sender.sent)
}
