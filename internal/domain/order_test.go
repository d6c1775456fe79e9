package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())
	assert.False(t, OrderStatus("unknown").IsValid())
}

func TestOrderStatus_Transitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusProcessing))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusShipped))
	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusDelivered))

	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusProcessing))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusDelivered))
}

func TestOrder_Subtotal(t *testing.T) {
	o := &Order{
		Items: []OrderItem{
			{Price: 8999, Quantity: 2},
			{Price: 1550, Quantity: 1},
		},
	}
	assert.Equal(t, int64(19548), o.Subtotal())
}

func TestProduct_Available(t *testing.T) {
	assert.True(t, (&Product{InStock: true, StockQuantity: 3}).Available())
	assert.False(t, (&Product{InStock: true, StockQuantity: 0}).Available())
	assert.False(t, (&Product{InStock: false, StockQuantity: 5}).Available())
}

func TestProduct_OnSale(t *testing.T) {
	assert.True(t, (&Product{Price: 8999, OriginalPrice: 10999}).OnSale())
	assert.False(t, (&Product{Price: 8999}).OnSale())
	assert.False(t, (&Product{Price: 8999, OriginalPrice: 8999}).OnSale())
}
