package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Weekly  BillingCycle = "Weekly"
	Monthly BillingCycle = "Monthly"
	Yearly  BillingCycle = "Yearly"
)

const (
	Entertainment Category = "Entertainment"
	Software      Category = "Software"
	Health        Category = "Health"
	Utilities     Category = "Utilities"
	Shopping      Category = "Shopping"
	Other         Category = "Other"
)

const maxNameLength = 200

type (
	// BillingCycle is the recurrence period of a subscription payment.
	// The string value is the label written to persisted data.
	BillingCycle string

	// Category groups subscriptions for analytics. Each category has a
	// fixed icon and color.
	Category string

	Date struct {
		time.Time
	}

	// Subscription is one recurring payment obligation. Price is held in
	// the base currency (USD). Monthly/yearly cost and the next payment
	// date are derived on demand and never stored.
	Subscription struct {
		ID           uuid.UUID
		Name         string
		Price        decimal.Decimal
		BillingCycle BillingCycle
		Category     Category
		IconName     string
		StartDate    Date
		ColorHex     string
		Notes        string
	}

	// SubscriptionParams carries the caller-supplied fields for NewSubscription.
	// IconName and ColorHex default to the category's values when empty.
	SubscriptionParams struct {
		Name         string
		Price        decimal.Decimal
		BillingCycle BillingCycle
		Category     Category
		StartDate    Date
		Notes        string
		IconName     string
		ColorHex     string
	}
)

var (
	ErrNilID               = errors.New("subscription id is empty")
	ErrEmptyName           = errors.New("empty name")
	ErrNameTooLong         = errors.New("name too long (max 200 characters)")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidDate         = errors.New("invalid date")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day t falls on in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string. A full RFC 3339 timestamp is also
// accepted and reduced to its calendar day.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return Date{}, ErrInvalidDate
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// SameDay reports whether both dates name the same calendar day.
func (d Date) SameDay(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month() && d.Day() == o.Day()
}

const secondsPerDay = 24 * 60 * 60

// DaysUntil returns the number of whole calendar days from d to o. Both
// dates are UTC midnights, so the difference in Unix seconds divides
// exactly. time.Duration would saturate after about 292 years.
func (d Date) DaysUntil(o Date) int {
	return int((o.Unix() - d.Unix()) / secondsPerDay)
}

// MarshalText and the JSON pair below shadow the time.Time methods so a
// Date always encodes as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidDate
	}
	return d.UnmarshalText([]byte(s[1 : len(s)-1]))
}

// NewSubscription assigns a fresh id, fills icon and color from the
// category and validates the result.
func NewSubscription(p SubscriptionParams) (Subscription, error) {
	icon := strings.TrimSpace(p.IconName)
	if icon == "" {
		icon = p.Category.IconName()
	}
	color := strings.TrimSpace(p.ColorHex)
	if color == "" {
		color = p.Category.ColorHex()
	}

	s := Subscription{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(p.Name),
		Price:        p.Price,
		BillingCycle: p.BillingCycle,
		Category:     p.Category,
		IconName:     icon,
		StartDate:    p.StartDate,
		ColorHex:     color,
		Notes:        p.Notes,
	}
	if err := s.Validate(); err != nil {
		return Subscription{}, err
	}
	return s, nil
}

func (s Subscription) Validate() error {
	if s.ID == uuid.Nil {
		return ErrNilID
	}
	if len(strings.TrimSpace(s.Name)) == 0 {
		return ErrEmptyName
	}
	if len(s.Name) > maxNameLength {
		return ErrNameTooLong
	}
	if !s.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if !s.BillingCycle.Valid() {
		return ErrInvalidBillingCycle
	}
	if !s.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := s.StartDate.Validate(); err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	return nil
}

// Equal compares field by field. Prices compare by value, so 9.9 and
// 9.90 are equal.
func (s Subscription) Equal(o Subscription) bool {
	return s.ID == o.ID &&
		s.Name == o.Name &&
		s.Price.Equal(o.Price) &&
		s.BillingCycle == o.BillingCycle &&
		s.Category == o.Category &&
		s.IconName == o.IconName &&
		s.StartDate.Equal(o.StartDate.Time) &&
		s.ColorHex == o.ColorHex &&
		s.Notes == o.Notes
}
