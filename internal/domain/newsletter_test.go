package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscountCode_Redeemable(t *testing.T) {
	now := time.Now().UTC()

	valid := &DiscountCode{Percent: 10, ExpiresAt: now.Add(time.Hour)}
	assert.True(t, valid.Redeemable(now))

	expired := &DiscountCode{Percent: 10, ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, expired.Redeemable(now))

	usedAt := now.Add(-time.Minute)
	used := &DiscountCode{Percent: 10, ExpiresAt: now.Add(time.Hour), UsedAt: &usedAt}
	assert.False(t, used.Redeemable(now))
}

func TestDiscountCode_Apply(t *testing.T) {
	code := &DiscountCode{Percent: 10}

	assert.Equal(t, int64(9000), code.Apply(10000))
	// Remainders round in the customer's favor.
	assert.Equal(t, int64(90), code.Apply(99))
	assert.Equal(t, int64(0), code.Apply(0))
}
