// Package money handles dual-currency (BGN/EUR) amounts. All amounts are
// stored and computed as int64 stotinki (hundredths of a lev) so display
// rounding never goes through binary floats.
package money

import "fmt"

// The fixed peg 1 EUR = 1.95583 BGN, held as an integer ratio so conversion
// stays in integer arithmetic.
const (
	eurRateNum = 195583
	eurRateDen = 100000
)

// Currency unit labels.
const (
	LabelBGN = "лв"
	LabelEUR = "€"
)

// ToEUR converts an amount in stotinki to euro cents at the fixed rate,
// rounding half away from zero.
func ToEUR(stotinki int64) int64 {
	return divRound(stotinki*eurRateDen, eurRateNum)
}

// divRound divides a by b rounding half away from zero. b must be positive.
func divRound(a, b int64) int64 {
	if a >= 0 {
		return (a + b/2) / b
	}
	return -((-a + b/2) / b)
}

// Format renders an amount of minor units (stotinki or euro cents) with two
// decimal places and the given unit label, e.g. Format(8999, LabelBGN) →
// "89.99 лв".
func Format(minor int64, label string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, minor/100, minor%100, label)
}

// FormatBGN renders an amount of stotinki as levа, e.g. "89.99 лв".
func FormatBGN(stotinki int64) string {
	return Format(stotinki, LabelBGN)
}

// FormatEUR converts stotinki to euro at the fixed rate and renders the
// result, e.g. "46.01 €".
func FormatEUR(stotinki int64) string {
	return Format(ToEUR(stotinki), LabelEUR)
}

// FormatDual renders the primary BGN amount followed by the derived EUR
// amount, e.g. "89.99 лв (46.01 €)".
func FormatDual(stotinki int64) string {
	return fmt.Sprintf("%s (%s)", FormatBGN(stotinki), FormatEUR(stotinki))
}

// DualAmount is the JSON shape for a price rendered in both currencies.
type DualAmount struct {
	BGN          int64  `json:"bgn"`
	EUR          int64  `json:"eur"`
	BGNFormatted string `json:"bgn_formatted"`
	EURFormatted string `json:"eur_formatted"`
}

// Dual returns the amount in both currencies with display strings.
func Dual(stotinki int64) DualAmount {
	return DualAmount{
		BGN:          stotinki,
		EUR:          ToEUR(stotinki),
		BGNFormatted: FormatBGN(stotinki),
		EURFormatted: FormatEUR(stotinki),
	}
}
