// Package format renders amounts and counts the way the console shows them
// (ru-RU grouping, rouble sign).
package format

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RoubleSign is appended to every formatted amount.
const RoubleSign = "₽"

// moneyPrecision is the number of fractional digits kept for non-integer amounts.
const moneyPrecision = 2

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.Russian)

// FormatNumber formats an integer with ru-RU thousand separators.
// Example: FormatNumber(225000) returns "225 000" (with a no-break space).
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatAmount formats an amount with grouping and, when it has a fractional
// part, a comma and two decimals. Example: 12345.5 returns "12 345,50".
func FormatAmount(d decimal.Decimal) string {
	rounded := d.Round(moneyPrecision)
	whole := rounded.IntPart()
	frac := rounded.Sub(decimal.NewFromInt(whole)).Abs()

	sign := ""
	if rounded.IsNegative() && whole == 0 {
		sign = "-"
	}

	out := sign + FormatNumber(whole)
	if frac.IsZero() {
		return out
	}
	cents := frac.Shift(moneyPrecision).IntPart()
	return fmt.Sprintf("%s,%02d", out, cents)
}

// FormatMoney formats an amount followed by the rouble sign.
// Example: FormatMoney(225000) returns "225 000 ₽".
func FormatMoney(d decimal.Decimal) string {
	return FormatAmount(d) + " " + RoubleSign
}

// Russian plural forms repeat every hundred, with 11-14 always taking the many form.
const (
	pluralBase    = 10
	pluralTeens   = 100
	pluralFewHigh = 4
)

// Plural picks the Russian word form for n: one (1, 21), few (2-4, 22-24)
// or many (0, 5-20, 25).
func Plural(n int64, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	if teen := n % pluralTeens; teen >= 11 && teen <= 14 {
		return many
	}
	switch last := n % pluralBase; {
	case last == 1:
		return one
	case last >= 2 && last <= pluralFewHigh:
		return few
	default:
		return many
	}
}

// Count renders n with its noun, e.g. "8 пачек".
func Count(n int, one, few, many string) string {
	return FormatNumber(int64(n)) + " " + Plural(int64(n), one, few, many)
}
