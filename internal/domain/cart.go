package domain

import "time"

// Cart represents a session-scoped shopping cart. Totals are derived from the
// line list on every read, never cached.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartLine `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartLine pairs a product snapshot with a positive quantity. The snapshot is
// captured at add-time and does not track later product changes.
type CartLine struct {
	ProductSnapshot
	Quantity int `json:"quantity"`
}

// Subtotal returns the cart total in stotinki: sum of quantity times price
// over all lines.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, line := range c.Items {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// ItemCount returns the sum of all line quantities.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Items {
		count += line.Quantity
	}
	return count
}

// FindLineIndex returns the index of the line for the given product id, or -1.
func (c *Cart) FindLineIndex(productID int64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
