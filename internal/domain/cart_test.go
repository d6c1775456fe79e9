package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Cart.Subtotal Tests
// ============================================================================

func TestSubtotal_SingleLine(t *testing.T) {
	c := &Cart{
		Items: []CartLine{
			{ProductSnapshot: ProductSnapshot{Price: 1999}, Quantity: 2},
		},
	}
	assert.Equal(t, int64(3998), c.Subtotal())
}

func TestSubtotal_MultipleLines(t *testing.T) {
	c := &Cart{
		Items: []CartLine{
			{ProductSnapshot: ProductSnapshot{Price: 1000}, Quantity: 2},
			{ProductSnapshot: ProductSnapshot{Price: 500}, Quantity: 3},
			{ProductSnapshot: ProductSnapshot{Price: 2500}, Quantity: 1},
		},
	}
	// 2000 + 1500 + 2500 = 6000
	assert.Equal(t, int64(6000), c.Subtotal())
}

func TestSubtotal_EmptyCart(t *testing.T) {
	c := &Cart{Items: []CartLine{}}
	assert.Equal(t, int64(0), c.Subtotal())
}

func TestSubtotal_NilItems(t *testing.T) {
	c := &Cart{}
	assert.Equal(t, int64(0), c.Subtotal())
}

// ============================================================================
// Cart.ItemCount Tests
// ============================================================================

func TestItemCount_MultipleLines(t *testing.T) {
	c := &Cart{
		Items: []CartLine{
			{Quantity: 2},
			{Quantity: 3},
			{Quantity: 1},
		},
	}
	assert.Equal(t, 6, c.ItemCount())
}

func TestItemCount_EmptyCart(t *testing.T) {
	c := &Cart{Items: []CartLine{}}
	assert.Equal(t, 0, c.ItemCount())
}

// ============================================================================
// Cart.FindLineIndex Tests
// ============================================================================

func TestFindLineIndex_Found(t *testing.T) {
	c := &Cart{
		Items: []CartLine{
			{ProductSnapshot: ProductSnapshot{ProductID: 1}},
			{ProductSnapshot: ProductSnapshot{ProductID: 2}},
		},
	}
	assert.Equal(t, 0, c.FindLineIndex(1))
	assert.Equal(t, 1, c.FindLineIndex(2))
}

func TestFindLineIndex_NotFound(t *testing.T) {
	c := &Cart{
		Items: []CartLine{
			{ProductSnapshot: ProductSnapshot{ProductID: 1}},
		},
	}
	assert.Equal(t, -1, c.FindLineIndex(999))
}

func TestFindLineIndex_EmptyCart(t *testing.T) {
	c := &Cart{Items: []CartLine{}}
	assert.Equal(t, -1, c.FindLineIndex(1))
}
