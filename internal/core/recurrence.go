package core

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	weeksPerMonth = decimal.RequireFromString("4.33")
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
)

// MonthlyPrice normalizes the price to a monthly cost.
// Weekly uses a fixed 4.33 weeks per month.
func (s Subscription) MonthlyPrice() decimal.Decimal {
	switch s.BillingCycle {
	case Weekly:
		return s.Price.Mul(weeksPerMonth)
	case Yearly:
		return s.Price.Div(monthsPerYear)
	default:
		return s.Price
	}
}

// YearlyPrice normalizes the price to a yearly cost.
// Weekly uses 52 weeks per year, not MonthlyPrice × 12.
func (s Subscription) YearlyPrice() decimal.Decimal {
	switch s.BillingCycle {
	case Weekly:
		return s.Price.Mul(weeksPerYear)
	case Monthly:
		return s.Price.Mul(monthsPerYear)
	default:
		return s.Price
	}
}

// NextPaymentDate returns the first payment on or after the calendar day
// of now, stepping forward from the start date one cycle at a time.
func (s Subscription) NextPaymentDate(now time.Time) Date {
	return NextPaymentDate(s, now)
}

// DaysUntilNextPayment returns how many calendar days remain until the
// next payment. Zero means the payment is due today.
func (s Subscription) DaysUntilNextPayment(now time.Time) int {
	return DaysUntilNextPayment(s, now)
}

func NextPaymentDate(s Subscription, now time.Time) Date {
	today := DateOf(now)
	next := s.StartDate
	for next.Before(today.Time) {
		stepped := AddCycle(next, s.BillingCycle)
		if !stepped.After(next.Time) {
			// unknown cycle, stepping would never terminate
			return next
		}
		next = stepped
	}
	return next
}

func DaysUntilNextPayment(s Subscription, now time.Time) int {
	return DateOf(now).DaysUntil(NextPaymentDate(s, now))
}

// AddCycle advances d by one billing cycle. Months and years follow the
// calendar: when the target month is shorter, the day is clamped to its
// last day (Jan 31 + 1 month = Feb 28 or 29).
func AddCycle(d Date, c BillingCycle) Date {
	switch c {
	case Weekly:
		return Date{Time: d.Time.AddDate(0, 0, 7)}
	case Monthly:
		return addMonths(d, 1)
	case Yearly:
		return addMonths(d, 12)
	default:
		return d
	}
}

func addMonths(d Date, n int) Date {
	year, month, day := d.Time.Date()
	target := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)

	lastDayOfMonth := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDayOfMonth {
		day = lastDayOfMonth
	}
	return NewDate(target.Year(), int(target.Month()), day)
}
