// Package money provides integer minor-unit (centavo) currency arithmetic
// and the parsing/formatting utilities used at the application boundary.
// Amounts are always whole centavos; fractional peso math goes through
// decimal arithmetic and is rounded exactly once, at conversion.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in centavos. Domain amounts (bids, prices, settlement
// components) are non-negative; negative values appear only as intermediate
// subtraction results that callers must treat as exceptional.
type Money int64

const currencySymbol = "₱"

var oneHundred = decimal.NewFromInt(100)

// PesosToCentavos converts a peso amount to centavos, rounding half-up.
func PesosToCentavos(pesos float64) Money {
	return Money(decimal.NewFromFloat(pesos).Mul(oneHundred).Round(0).IntPart())
}

// CentavosToPesos converts centavos back to a peso-denominated decimal.
func CentavosToPesos(amount Money) decimal.Decimal {
	return decimal.NewFromInt(int64(amount)).Div(oneHundred)
}

// Format renders an amount as a currency string with the peso sign,
// thousands separators, and two decimal places, e.g. "₱12,345.67".
func Format(amount Money) string {
	pesos := CentavosToPesos(amount).StringFixed(2)

	neg := strings.HasPrefix(pesos, "-")
	if neg {
		pesos = pesos[1:]
	}

	intPart, fracPart, _ := strings.Cut(pesos, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(currencySymbol)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// Parse converts a currency string to centavos. Currency symbols, thousands
// separators, and whitespace are stripped before parsing; the remaining text
// must be a plain decimal number.
func Parse(text string) (Money, error) {
	cleaned := strings.NewReplacer(
		currencySymbol, "",
		"PHP", "",
		",", "",
		" ", "",
	).Replace(strings.TrimSpace(text))

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid money format %q: %w", text, err)
	}
	return Money(d.Mul(oneHundred).Round(0).IntPart()), nil
}

// IsValidAmount reports whether a decimal value is usable as a stored
// domain amount: a non-negative whole number of centavos.
func IsValidAmount(amount decimal.Decimal) bool {
	return !amount.IsNegative() && amount.IsInteger()
}

// Add sums amounts.
func Add(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}

// Subtract deducts each subtrahend from the minuend. The result may be
// negative; callers decide whether that is acceptable.
func Subtract(minuend Money, subtrahends ...Money) Money {
	total := minuend
	for _, s := range subtrahends {
		total -= s
	}
	return total
}
