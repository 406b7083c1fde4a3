package report

import (
	"fmt"
	"time"

	"github.com/avaforge-creator/subdrip/internal/core"
)

// Weekdays heads the calendar columns; weeks start on Sunday.
var Weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Day is one calendar cell. Blank cells pad the first and last week.
type Day struct {
	Date       core.Date
	Blank      bool
	IsToday    bool
	HasPayment bool
	Payments   []core.Subscription
}

type Calendar struct {
	Year  int
	Month time.Month
	Title string // e.g. "March 2024"
	Weeks [][7]Day
}

// MonthGrid returns the month's days padded with blanks so that index 0 is
// a Sunday and the length is a multiple of seven.
func MonthGrid(year int, month time.Month) []Day {
	first := core.NewDate(year, int(month), 1)
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]Day, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, Day{Blank: true})
	}
	for d := 1; d <= lastDay; d++ {
		cells = append(cells, Day{Date: core.NewDate(year, int(month), d)})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Day{Blank: true})
	}
	return cells
}

// NewCalendar marks today and the days with a projected payment. Payments
// are projected from now, so only each subscription's next payment shows.
func NewCalendar(src Source, year int, month time.Month, now time.Time) Calendar {
	today := core.DateOf(now)
	cells := MonthGrid(year, month)
	for i := range cells {
		if cells[i].Blank {
			continue
		}
		cells[i].IsToday = cells[i].Date.SameDay(today)
		cells[i].Payments = src.ForDate(cells[i].Date, now)
		cells[i].HasPayment = len(cells[i].Payments) > 0
	}

	weeks := make([][7]Day, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		var w [7]Day
		copy(w[:], cells[i:i+7])
		weeks = append(weeks, w)
	}

	return Calendar{
		Year:  year,
		Month: month,
		Title: fmt.Sprintf("%s %d", month, year),
		Weeks: weeks,
	}
}
