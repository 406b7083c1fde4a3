package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sub(cycle BillingCycle, price string, start Date) Subscription {
	s := validSubscription()
	s.BillingCycle = cycle
	s.Price = decimal.RequireFromString(price)
	s.StartDate = start
	return s
}

func TestMonthlyAndYearlyPrice(t *testing.T) {
	tests := []struct {
		name    string
		cycle   BillingCycle
		price   string
		monthly string
		yearly  string
	}{
		{"weekly", Weekly, "10", "43.3", "520"},
		{"monthly", Monthly, "15.99", "15.99", "191.88"},
		{"yearly", Yearly, "120", "10", "120"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sub(tt.cycle, tt.price, NewDate(2024, 1, 1))
			if got := s.MonthlyPrice(); !got.Equal(decimal.RequireFromString(tt.monthly)) {
				t.Errorf("MonthlyPrice() = %s, want %s", got, tt.monthly)
			}
			if got := s.YearlyPrice(); !got.Equal(decimal.RequireFromString(tt.yearly)) {
				t.Errorf("YearlyPrice() = %s, want %s", got, tt.yearly)
			}
		})
	}
}

func TestWeeklyYearlyIsNotTwelveMonths(t *testing.T) {
	s := sub(Weekly, "10", NewDate(2024, 1, 1))
	if s.YearlyPrice().Equal(s.MonthlyPrice().Mul(decimal.NewFromInt(12))) {
		t.Fatalf("weekly yearly price must use 52 weeks")
	}
}

func TestNextPaymentDate(t *testing.T) {
	tests := []struct {
		name  string
		cycle BillingCycle
		start Date
		now   time.Time
		want  Date
		days  int
	}{
		{
			name:  "monthly rolls forward to next month",
			cycle: Monthly,
			start: NewDate(2024, 1, 1),
			now:   time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
			want:  NewDate(2024, 4, 1),
			days:  17,
		},
		{
			name:  "start today - due today",
			cycle: Monthly,
			start: NewDate(2024, 3, 15),
			now:   time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC),
			want:  NewDate(2024, 3, 15),
			days:  0,
		},
		{
			name:  "payment later the same day is still today",
			cycle: Monthly,
			start: NewDate(2024, 1, 1),
			now:   time.Date(2024, 4, 1, 23, 59, 0, 0, time.UTC),
			want:  NewDate(2024, 4, 1),
			days:  0,
		},
		{
			name:  "future start is returned unchanged",
			cycle: Yearly,
			start: NewDate(2025, 6, 1),
			now:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			want:  NewDate(2025, 6, 1),
			days:  443,
		},
		{
			name:  "weekly",
			cycle: Weekly,
			start: NewDate(2024, 1, 1),
			now:   time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
			want:  NewDate(2024, 1, 15),
			days:  5,
		},
		{
			name:  "month end clamps and carries forward",
			cycle: Monthly,
			start: NewDate(2024, 1, 31),
			now:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			want:  NewDate(2024, 3, 29),
			days:  14,
		},
		{
			name:  "leap day yearly clamps to Feb 28",
			cycle: Yearly,
			start: NewDate(2020, 2, 29),
			now:   time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC),
			want:  NewDate(2021, 2, 28),
			days:  49,
		},
		{
			name:  "start centuries ahead counts every calendar day",
			cycle: Yearly,
			start: NewDate(2400, 1, 1),
			now:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			want:  NewDate(2400, 1, 1),
			days:  137331,
		},
		{
			name:  "yearly past anniversary",
			cycle: Yearly,
			start: NewDate(2020, 2, 29),
			now:   time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
			want:  NewDate(2022, 2, 28),
			days:  364,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sub(tt.cycle, "9.99", tt.start)
			if got := s.NextPaymentDate(tt.now); !got.SameDay(tt.want) {
				t.Errorf("NextPaymentDate() = %s, want %s", got, tt.want)
			}
			if got := s.DaysUntilNextPayment(tt.now); got != tt.days {
				t.Errorf("DaysUntilNextPayment() = %d, want %d", got, tt.days)
			}
		})
	}
}

func TestNextPaymentDateUsesCallerLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	s := sub(Monthly, "5", NewDate(2024, 1, 15))
	// still the 14th in UTC but already the 15th in Tokyo
	now := time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC)
	if got := s.DaysUntilNextPayment(now); got != 1 {
		t.Fatalf("UTC: days = %d, want 1", got)
	}
	if got := s.DaysUntilNextPayment(now.In(tokyo)); got != 0 {
		t.Fatalf("JST: days = %d, want 0", got)
	}
}

func TestNextPaymentDateIsFirstReachableStep(t *testing.T) {
	starts := []Date{
		NewDate(2023, 1, 31),
		NewDate(2023, 8, 30),
		NewDate(2024, 2, 29),
		NewDate(2024, 12, 31),
	}
	for _, cycle := range AllBillingCycles() {
		for _, start := range starts {
			s := sub(cycle, "1", start)
			for offset := 0; offset < 800; offset += 13 {
				now := start.AddDate(0, 0, offset)
				today := DateOf(now)
				next := s.NextPaymentDate(now)
				if next.Before(today.Time) {
					t.Fatalf("%s from %s at %s: next %s is in the past", cycle, start, today, next)
				}

				// walk from the start and confirm next is the first step on or after today
				d := start
				for d.Before(today.Time) {
					d = AddCycle(d, cycle)
				}
				if !d.SameDay(next) {
					t.Fatalf("%s from %s at %s: got %s, walk gives %s", cycle, start, today, next, d)
				}
				if s.DaysUntilNextPayment(now) < 0 {
					t.Fatalf("negative days until payment")
				}
			}
		}
	}
}

func TestAddCycle(t *testing.T) {
	tests := []struct {
		in    Date
		cycle BillingCycle
		want  Date
	}{
		{NewDate(2024, 1, 31), Monthly, NewDate(2024, 2, 29)},
		{NewDate(2023, 1, 31), Monthly, NewDate(2023, 2, 28)},
		{NewDate(2024, 12, 15), Monthly, NewDate(2025, 1, 15)},
		{NewDate(2024, 2, 29), Yearly, NewDate(2025, 2, 28)},
		{NewDate(2024, 12, 28), Weekly, NewDate(2025, 1, 4)},
	}
	for _, tt := range tests {
		if got := AddCycle(tt.in, tt.cycle); !got.SameDay(tt.want) {
			t.Errorf("AddCycle(%s, %s) = %s, want %s", tt.in, tt.cycle, got, tt.want)
		}
	}
}
