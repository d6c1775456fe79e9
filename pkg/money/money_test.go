package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToEUR(t *testing.T) {
	tests := []struct {
		stotinki int64
		eurCents int64
	}{
		{0, 0},
		{195583, 100000},      // exactly 1955.83 лв = 1000.00 €
		{196, 100},            // 1.96 лв ≈ 1.00 € (1.0021, rounds down)
		{8999, 4601},          // 89.99 лв → 46.0112… → 46.01 €
		{10000, 5113},         // 100.00 лв → 51.1292… → 51.13 €
		{1, 1},                // 0.01 лв → 0.0051… rounds half away from zero
		{-8999, -4601},        // negative amounts mirror positive rounding
	}
	for _, tt := range tests {
		assert.Equal(t, tt.eurCents, ToEUR(tt.stotinki), "stotinki %d", tt.stotinki)
	}
}

func TestDivRound_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, int64(1), divRound(1, 2))   // 0.5 → 1
	assert.Equal(t, int64(-1), divRound(-1, 2)) // -0.5 → -1
	assert.Equal(t, int64(0), divRound(49, 100))
	assert.Equal(t, int64(1), divRound(50, 100))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "89.99 лв", FormatBGN(8999))
	assert.Equal(t, "46.01 €", FormatEUR(8999))
	assert.Equal(t, "0.05 лв", FormatBGN(5))
	assert.Equal(t, "-12.30 лв", FormatBGN(-1230))
}

func TestFormatDual(t *testing.T) {
	assert.Equal(t, "89.99 лв (46.01 €)", FormatDual(8999))
	assert.Equal(t, "0.00 лв (0.00 €)", FormatDual(0))
}

func TestDual(t *testing.T) {
	d := Dual(8999)
	assert.Equal(t, int64(8999), d.BGN)
	assert.Equal(t, int64(4601), d.EUR)
	assert.Equal(t, "89.99 лв", d.BGNFormatted)
	assert.Equal(t, "46.01 €", d.EURFormatted)
}
