// Package report builds presentation-neutral view models from a store:
// display-currency totals, per-subscription cards, the category breakdown
// and a month calendar. Amounts come in as USD and leave formatted in the
// currency the caller passes.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avaforge-creator/subdrip/internal/core"
	"github.com/avaforge-creator/subdrip/internal/currency"
)

// Source is the read side of the subscription store.
type Source interface {
	All() []core.Subscription
	TotalMonthlySpending() decimal.Decimal
	TotalYearlySpending() decimal.Decimal
	SortedByNextPayment(now time.Time) []core.Subscription
	ForDate(date core.Date, now time.Time) []core.Subscription
	SpendingByCategory() map[core.Category]decimal.Decimal
	MostExpensive() (core.Subscription, bool)
}

// NextPaymentLabel renders a day count as "Today", "Tomorrow" or "N days".
func NextPaymentLabel(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// Card is one subscription ready for display.
type Card struct {
	Subscription core.Subscription
	NextPayment  core.Date
	DaysUntil    int
	DueLabel     string
	Price        string // per billing cycle
	Monthly      string
	Yearly       string
}

func NewCard(sub core.Subscription, now time.Time, code string) Card {
	days := sub.DaysUntilNextPayment(now)
	return Card{
		Subscription: sub,
		NextPayment:  sub.NextPaymentDate(now),
		DaysUntil:    days,
		DueLabel:     NextPaymentLabel(days),
		Price:        currency.Display(sub.Price, code),
		Monthly:      currency.Display(sub.MonthlyPrice(), code),
		Yearly:       currency.Display(sub.YearlyPrice(), code),
	}
}

func Cards(subs []core.Subscription, now time.Time, code string) []Card {
	out := make([]Card, len(subs))
	for i, s := range subs {
		out[i] = NewCard(s, now, code)
	}
	return out
}

// Dashboard is the home screen: totals plus upcoming payments. Totals are
// formatted with the display currency's locale marks.
type Dashboard struct {
	Currency      string
	Count         int
	MonthlyAmount decimal.Decimal
	YearlyAmount  decimal.Decimal
	Monthly       string
	Yearly        string
	Upcoming      []Card
}

func NewDashboard(src Source, now time.Time, code string) Dashboard {
	monthly := currency.Convert(src.TotalMonthlySpending(), currency.Base, code)
	yearly := currency.Convert(src.TotalYearlySpending(), currency.Base, code)
	upcoming := Cards(src.SortedByNextPayment(now), now, code)
	return Dashboard{
		Currency:      code,
		Count:         len(upcoming),
		MonthlyAmount: monthly,
		YearlyAmount:  yearly,
		Monthly:       currency.FormatLocalized(monthly, code),
		Yearly:        currency.FormatLocalized(yearly, code),
		Upcoming:      upcoming,
	}
}

// CategoryRow is one slice of the spending breakdown.
type CategoryRow struct {
	Category core.Category
	Icon     string
	Color    string
	Amount   decimal.Decimal // monthly, in the display currency
	Display  string // locale formatted
	Share    decimal.Decimal // percent of the monthly total, two decimals
}

// CategoryBreakdown lists categories with spending, largest first. Equal
// amounts keep the category display order.
func CategoryBreakdown(src Source, code string) []CategoryRow {
	byCat := src.SpendingByCategory()
	total := decimal.Zero
	for _, v := range byCat {
		total = total.Add(v)
	}

	rows := make([]CategoryRow, 0, len(byCat))
	for _, c := range core.AllCategories() {
		usd, ok := byCat[c]
		if !ok {
			continue
		}
		amount := currency.Convert(usd, currency.Base, code)
		share := decimal.Zero
		if total.IsPositive() {
			share = usd.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		rows = append(rows, CategoryRow{
			Category: c,
			Icon:     c.IconName(),
			Color:    c.ColorHex(),
			Amount:   amount,
			Display:  currency.FormatLocalized(amount, code),
			Share:    share,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})
	return rows
}

// TopSubscription is the most expensive subscription by monthly cost.
type TopSubscription struct {
	Card
	found bool
}

func (t TopSubscription) Found() bool {
	return t.found
}

func MostExpensive(src Source, now time.Time, code string) TopSubscription {
	sub, ok := src.MostExpensive()
	if !ok {
		return TopSubscription{}
	}
	return TopSubscription{Card: NewCard(sub, now, code), found: true}
}
