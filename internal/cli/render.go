package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/avaforge-creator/subdrip/internal/core"
	"github.com/avaforge-creator/subdrip/internal/report"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

// RenderDashboard prints the totals box followed by the subscriptions
// ordered by next payment. positions maps ids to their place in the store,
// which is what delete --index expects.
func RenderDashboard(w io.Writer, d report.Dashboard, positions map[uuid.UUID]int, th Theme) {
	totals := fmt.Sprintf("%s\n%s %s\n%s %s",
		th.Title.Render("Monthly spending"),
		th.Accent.Render(d.Monthly),
		th.Subtle.Render("/month"),
		th.Subtle.Render("Yearly:"),
		d.Yearly,
	)
	fmt.Fprintln(w, th.Box.Render(totals))

	if len(d.Upcoming) == 0 {
		fmt.Fprintln(w, th.Subtle.Render("No subscriptions yet. Add one with 'subdrip add'."))
		return
	}
	RenderCards(w, d.Upcoming, positions, th)
}

// RenderCards prints one row per subscription.
func RenderCards(w io.Writer, cards []report.Card, positions map[uuid.UUID]int, th Theme) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "ID", "Name", "Category", "Price", "Monthly", "Next payment", "Due"})
	for _, c := range cards {
		pos := ""
		if p, ok := positions[c.Subscription.ID]; ok {
			pos = strconv.Itoa(p)
		}
		t.AppendRow(table.Row{
			pos,
			ShortID(c.Subscription.ID),
			c.Subscription.Name,
			th.Category(c.Subscription.Category),
			c.Price + " / " + c.Subscription.BillingCycle.ShortName(),
			c.Monthly,
			c.NextPayment.String(),
			th.Due(c.DaysUntil, c.DueLabel),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()
}

// RenderDetail prints every field of one subscription.
func RenderDetail(w io.Writer, c report.Card, th Theme) {
	s := c.Subscription
	t := newTable(w)
	t.SetTitle("%s", th.Title.Render(s.Name))
	t.AppendRows([]table.Row{
		{"ID", s.ID.String()},
		{"Category", th.Category(s.Category) + " (" + s.IconName + ", " + s.ColorHex + ")"},
		{"Price", c.Price + " / " + s.BillingCycle.ShortName()},
		{"Monthly", c.Monthly},
		{"Yearly", c.Yearly},
		{"Started", s.StartDate.String()},
		{"Next payment", c.NextPayment.String() + " (" + c.DueLabel + ")"},
	})
	if s.Notes != "" {
		t.AppendRow(table.Row{"Notes", s.Notes})
	}
	t.Render()
}

// RenderBreakdown prints spending per category and the most expensive
// subscription.
func RenderBreakdown(w io.Writer, rows []report.CategoryRow, top report.TopSubscription, monthlyTotal string, th Theme) {
	fmt.Fprintln(w, th.Title.Render("Spending by Category"))
	if len(rows) == 0 {
		fmt.Fprintln(w, th.Subtle.Render("No data yet"))
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Category", "Monthly", "Share"})
	for _, r := range rows {
		t.AppendRow(table.Row{th.Category(r.Category), r.Display, r.Share.StringFixed(1) + "%"})
	}
	t.AppendFooter(table.Row{"Total", monthlyTotal, ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()

	if top.Found() {
		fmt.Fprintf(w, "%s %s %s\n",
			th.Subtle.Render("Most expensive:"),
			th.Accent.Render(top.Subscription.Name),
			top.Monthly+"/mo")
	}
}

// RenderCategories lists the fixed categories with their icon and color.
func RenderCategories(w io.Writer, th Theme) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Category", "Icon", "Color"})
	for _, c := range core.AllCategories() {
		t.AppendRow(table.Row{th.Category(c), c.IconName(), c.ColorHex()})
	}
	t.Render()
}

// RenderCalendar prints the month grid; days with a payment are starred
// and today is bracketed.
func RenderCalendar(w io.Writer, cal report.Calendar, th Theme) {
	t := newTable(w)
	t.SetTitle("%s", th.Title.Render(cal.Title))
	header := make(table.Row, len(report.Weekdays))
	for i, d := range report.Weekdays {
		header[i] = d
	}
	t.AppendHeader(header)

	for _, week := range cal.Weeks {
		row := make(table.Row, len(week))
		for i, day := range week {
			row[i] = calendarCell(day, th)
		}
		t.AppendRow(row)
	}
	t.Render()

	var lines []string
	for _, week := range cal.Weeks {
		for _, day := range week {
			if !day.HasPayment {
				continue
			}
			names := make([]string, len(day.Payments))
			for i, p := range day.Payments {
				names[i] = p.Name
			}
			lines = append(lines, fmt.Sprintf("%s  %s", day.Date.String(), strings.Join(names, ", ")))
		}
	}
	if len(lines) == 0 {
		fmt.Fprintln(w, th.Subtle.Render("No payments this month"))
		return
	}
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func calendarCell(d report.Day, th Theme) string {
	if d.Blank {
		return ""
	}
	label := strconv.Itoa(d.Date.Day())
	if d.HasPayment {
		label += "*"
	}
	switch {
	case d.IsToday:
		return th.Today.Render("[" + label + "]")
	case d.HasPayment:
		return th.Payment.Render(label)
	default:
		return label
	}
}
