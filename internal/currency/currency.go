// Package currency converts and formats amounts using a fixed rate table
// relative to the base currency (USD). Rates are static; nothing here
// reaches out to a rate provider.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/avaforge-creator/subdrip/internal/cache"
)

// Base is the currency subscription prices are stored in.
const Base = "USD"

type unit struct {
	rate   decimal.Decimal // units per 1 USD
	symbol string
	locale language.Tag
	suffix bool // symbol goes after the number in localized output
}

// codes keeps display order; units holds the fixed table.
var codes = []string{"USD", "EUR", "GBP", "AED", "CAD", "AUD", "JPY", "INR", "CNY"}

var units = map[string]unit{
	"USD": {rate: decimal.NewFromInt(1), symbol: "$", locale: language.AmericanEnglish},
	"EUR": {rate: decimal.RequireFromString("0.92"), symbol: "€", locale: language.German, suffix: true},
	"GBP": {rate: decimal.RequireFromString("0.79"), symbol: "£", locale: language.BritishEnglish},
	"AED": {rate: decimal.RequireFromString("3.67"), symbol: "AED ", locale: language.MustParse("en-AE")},
	"CAD": {rate: decimal.RequireFromString("1.36"), symbol: "CA$", locale: language.MustParse("en-CA")},
	"AUD": {rate: decimal.RequireFromString("1.53"), symbol: "A$", locale: language.MustParse("en-AU")},
	"JPY": {rate: decimal.RequireFromString("149.50"), symbol: "¥", locale: language.Japanese},
	"INR": {rate: decimal.RequireFromString("83.12"), symbol: "₹", locale: language.MustParse("en-IN")},
	"CNY": {rate: decimal.RequireFromString("7.24"), symbol: "¥", locale: language.Chinese},
}

const fallbackSymbol = "$"

var locales = cache.NewLRUCache[*locale](len(codes) + 1)

// maxExactWhole bounds the amounts whose whole part fits an int64.
var maxExactWhole = decimal.New(1, 18)

// Codes returns the supported currency codes in display order.
func Codes() []string {
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// IsSupported reports whether code is in the rate table. Codes are
// case-sensitive ISO 4217 strings.
func IsSupported(code string) bool {
	_, ok := units[code]
	return ok
}

// Rate returns how many units of code buy one USD.
func Rate(code string) (decimal.Decimal, bool) {
	u, ok := units[code]
	return u.rate, ok
}

// Convert moves amount from one currency to another through USD. When
// either code is unknown the amount is returned unchanged.
func Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	f, okFrom := units[from]
	t, okTo := units[to]
	if !okFrom || !okTo || from == to {
		return amount
	}
	return amount.Div(f.rate).Mul(t.rate)
}

// Symbol returns the display prefix for code, "$" when unknown.
func Symbol(code string) string {
	if u, ok := units[code]; ok {
		return u.symbol
	}
	return fallbackSymbol
}

// Format renders symbol followed by the amount with exactly two decimals,
// e.g. "€13.79". No grouping separators.
func Format(amount decimal.Decimal, code string) string {
	return Symbol(code) + amount.StringFixed(2)
}

// Display converts a base-currency amount into code and formats it.
func Display(amountUSD decimal.Decimal, code string) string {
	return Format(Convert(amountUSD, Base, code), code)
}

// locale is a cached printer plus the locale's decimal mark.
type locale struct {
	printer *message.Printer
	decimal string
}

func localeFor(tag language.Tag) *locale {
	return cache.GetOrCreate[*locale](locales, tag.String(), func() *locale {
		p := message.NewPrinter(tag)
		mark := "."
		// 1.5 printed in the locale shows its decimal mark
		if sample := []rune(p.Sprint(number.Decimal(1.5, number.MinFractionDigits(1)))); len(sample) == 3 {
			mark = string(sample[1])
		}
		return &locale{printer: p, decimal: mark}
	})
}

// FormatLocalized renders the amount with the grouping and decimal marks of
// the currency's home locale, e.g. "$1,234.50" or "1.234,50 €".
// Unknown codes format like USD. The whole part is grouped by the locale
// printer and the cents are copied from the decimal, so no digits pass
// through a float.
func FormatLocalized(amount decimal.Decimal, code string) string {
	u, ok := units[code]
	if !ok {
		u = units[Base]
		u.symbol = fallbackSymbol
	}
	loc := localeFor(u.locale)

	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	fixed := rounded.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	var grouped string
	if rounded.LessThan(maxExactWhole) {
		grouped = loc.printer.Sprint(number.Decimal(rounded.IntPart()))
	} else {
		grouped = whole
	}
	formatted := sign + grouped + loc.decimal + cents

	if u.suffix {
		return formatted + " " + strings.TrimSpace(u.symbol)
	}
	return u.symbol + formatted
}
