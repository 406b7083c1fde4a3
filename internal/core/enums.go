package core

import "strings"

type cycleAttrs struct {
	short      string
	approxDays int
}

type categoryAttrs struct {
	icon  string
	color string
}

var cycleTable = map[BillingCycle]cycleAttrs{
	Weekly:  {short: "wk", approxDays: 7},
	Monthly: {short: "mo", approxDays: 30},
	Yearly:  {short: "yr", approxDays: 365},
}

var categoryTable = map[Category]categoryAttrs{
	Entertainment: {icon: "tv.fill", color: "#FF453A"},
	Software:      {icon: "laptopcomputer", color: "#007AFF"},
	Health:        {icon: "heart.fill", color: "#30D158"},
	Utilities:     {icon: "bolt.fill", color: "#FFD60A"},
	Shopping:      {icon: "cart.fill", color: "#BF5AF2"},
	Other:         {icon: "square.grid.2x2.fill", color: "#8E8E93"},
}

// AllBillingCycles returns the cycles in display order.
func AllBillingCycles() []BillingCycle {
	return []BillingCycle{Weekly, Monthly, Yearly}
}

// AllCategories returns the categories in display order.
func AllCategories() []Category {
	return []Category{Entertainment, Software, Health, Utilities, Shopping, Other}
}

func (c BillingCycle) Valid() bool {
	_, ok := cycleTable[c]
	return ok
}

// ShortName is the compact label shown after a price, e.g. "/mo".
func (c BillingCycle) ShortName() string {
	return cycleTable[c].short
}

// ApproxDays is a rough cycle length for display. Date projection uses
// calendar arithmetic instead.
func (c BillingCycle) ApproxDays() int {
	return cycleTable[c].approxDays
}

func (c BillingCycle) String() string {
	return string(c)
}

func (c BillingCycle) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, ErrInvalidBillingCycle
	}
	return []byte(c), nil
}

func (c *BillingCycle) UnmarshalText(b []byte) error {
	v := BillingCycle(b)
	if !v.Valid() {
		return ErrInvalidBillingCycle
	}
	*c = v
	return nil
}

// ParseBillingCycle matches a label case-insensitively.
func ParseBillingCycle(s string) (BillingCycle, error) {
	s = strings.TrimSpace(s)
	for _, c := range AllBillingCycles() {
		if strings.EqualFold(string(c), s) || strings.EqualFold(c.ShortName(), s) {
			return c, nil
		}
	}
	return "", ErrInvalidBillingCycle
}

func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

func (c Category) IconName() string {
	return categoryTable[c].icon
}

func (c Category) ColorHex() string {
	return categoryTable[c].color
}

func (c Category) String() string {
	return string(c)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, ErrInvalidCategory
	}
	return []byte(c), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v := Category(b)
	if !v.Valid() {
		return ErrInvalidCategory
	}
	*c = v
	return nil
}

// ParseCategory matches a label case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range AllCategories() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}
