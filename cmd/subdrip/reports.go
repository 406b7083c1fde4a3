package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avaforge-creator/subdrip/internal/cli"
	"github.com/avaforge-creator/subdrip/internal/report"
)

func summaryCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals, upcoming payments and spending by category",
		RunE: func(_ *cobra.Command, _ []string) error {
			app := s.app
			now := app.Clock.Now()
			code := app.Prefs.CurrencyCode

			dash := report.NewDashboard(app.Store, now, code)
			cli.RenderDashboard(s.out, dash, positions(app.Store.All()), app.Theme)
			fmt.Fprintln(s.out)
			cli.RenderBreakdown(s.out,
				report.CategoryBreakdown(app.Store, code),
				report.MostExpensive(app.Store, now, code),
				dash.Monthly,
				app.Theme)
			return nil
		},
	}
}

func calendarCmd(s *session) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month with upcoming payment days marked",
		Long: `Show a month grid. Days marked with * have a payment due; each
subscription shows only its next payment from today.`,
		Example: `  subdrip calendar
  subdrip calendar --month 2024-03`,
		RunE: func(_ *cobra.Command, _ []string) error {
			app := s.app
			now := app.Clock.Now()

			year, m := now.Year(), now.Month()
			if month != "" {
				t, err := time.Parse("2006-01", strings.TrimSpace(month))
				if err != nil {
					return fmt.Errorf("invalid month %q: use YYYY-MM", month)
				}
				year, m = t.Year(), t.Month()
			}

			cli.RenderCalendar(s.out, report.NewCalendar(app.Store, year, m, now), app.Theme)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show, YYYY-MM (default: this month)")
	return cmd
}

func categoriesCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:         "categories",
		Short:       "List the available categories",
		Annotations: map[string]string{skipBootstrap: "true"},
		Run: func(_ *cobra.Command, _ []string) {
			cli.RenderCategories(s.out, cli.NewTheme(true))
		},
	}
}
