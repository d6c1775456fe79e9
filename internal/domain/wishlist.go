package domain

import "time"

// Wishlist is a session-scoped set of saved products. A product id appears at
// most once.
type Wishlist struct {
	SessionID string            `json:"session_id"`
	Items     []ProductSnapshot `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Contains reports whether the wishlist holds the given product.
func (w *Wishlist) Contains(productID int64) bool {
	return w.FindIndex(productID) >= 0
}

// FindIndex returns the index of the entry for the given product id, or -1.
func (w *Wishlist) FindIndex(productID int64) int {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
