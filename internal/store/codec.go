package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avaforge-creator/subdrip/internal/core"
)

// record is the persisted shape of a subscription. Enum fields are written
// as their raw labels and the price as a bare JSON number.
type record struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Price        json.Number       `json:"price"`
	BillingCycle core.BillingCycle `json:"billingCycle"`
	Category     core.Category     `json:"category"`
	IconName     string            `json:"iconName"`
	StartDate    core.Date         `json:"startDate"`
	ColorHex     string            `json:"colorHex"`
	Notes        string            `json:"notes"`
}

// Encode serializes the collection as one JSON array, preserving order.
func Encode(subs []core.Subscription) ([]byte, error) {
	records := make([]record, len(subs))
	for i, s := range subs {
		records[i] = record{
			ID:           s.ID,
			Name:         s.Name,
			Price:        json.Number(s.Price.String()),
			BillingCycle: s.BillingCycle,
			Category:     s.Category,
			IconName:     s.IconName,
			StartDate:    s.StartDate,
			ColorHex:     s.ColorHex,
			Notes:        s.Notes,
		}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode subscriptions: %w", err)
	}
	return b, nil
}

// Decode parses a blob written by Encode. Any malformed or invalid record
// fails the whole decode.
func Decode(data []byte) ([]core.Subscription, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode subscriptions: %w", err)
	}

	subs := make([]core.Subscription, 0, len(records))
	for i, r := range records {
		price, err := decimal.NewFromString(r.Price.String())
		if err != nil {
			return nil, fmt.Errorf("decode subscription %d: price %q: %w", i, r.Price, core.ErrInvalidPrice)
		}
		s := core.Subscription{
			ID:           r.ID,
			Name:         r.Name,
			Price:        price,
			BillingCycle: r.BillingCycle,
			Category:     r.Category,
			IconName:     r.IconName,
			StartDate:    r.StartDate,
			ColorHex:     r.ColorHex,
			Notes:        r.Notes,
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("decode subscription %d: %w", i, err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}
