package common

import "github.com/shopspring/decimal"

// AmountScale is the number of minor-unit digits of BRL.
const AmountScale = 2

// RoundToCents rounds half away from zero at the currency scale.
func RoundToCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}

// FormatAmount renders a decimal with exactly two fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountScale)
}
