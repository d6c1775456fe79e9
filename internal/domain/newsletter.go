package domain

import "time"

// Subscriber represents a newsletter subscription.
type Subscriber struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	DiscountCode string    `json:"discount_code,omitempty"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// Welcome discount issued to new subscribers.
const (
	// WelcomeDiscountPercent is the percentage off granted by a welcome code.
	WelcomeDiscountPercent = 10
	// WelcomeDiscountValidity is how long a welcome code stays redeemable.
	WelcomeDiscountValidity = 30 * 24 * time.Hour
)

// DiscountCode is a percentage-off code with an expiry and single-use flag.
type DiscountCode struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Percent   int        `json:"percent"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Redeemable reports whether the code can still be applied at the given time.
func (d *DiscountCode) Redeemable(now time.Time) bool {
	return d.UsedAt == nil && now.Before(d.ExpiresAt)
}

// Apply returns the total after deducting the code's percentage, rounded down
// to whole stotinki.
func (d *DiscountCode) Apply(total int64) int64 {
	return total - total*int64(d.Percent)/100
}
