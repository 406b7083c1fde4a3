// Package core provides money parsing and handling utilities.
//
// This file contains the parser the presentation layer runs on raw price
// input before a Subscription is constructed.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a decimal string to a positive price with two
// fractional digits.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place.
// Returns ErrInvalidPrice for invalid formats, signed values, or zero amounts.
//
// Examples:
//
//	ParsePrice("12.34")  -> 12.34, nil
//	ParsePrice("12,34")  -> 12.34, nil
//	ParsePrice("12.345") -> 12.35, nil (rounds up)
//	ParsePrice("12.344") -> 12.34, nil (rounds down)
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidPrice
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return decimal.Zero, ErrInvalidPrice
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return decimal.Zero, ErrInvalidPrice
	}

	literal := intPart
	if fracPart != "" {
		literal += "." + fracPart
	}
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
