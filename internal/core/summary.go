package core

import "github.com/shopspring/decimal"

// CategoryAmount represents a monthly amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   decimal.Decimal
}

// Summary is a compact spending overview in the base currency.
type Summary struct {
	Count        int
	MonthlyTotal decimal.Decimal
	YearlyTotal  decimal.Decimal
	ByCategory   []CategoryAmount // sorted by amount, largest first
}
