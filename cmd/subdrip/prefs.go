package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/avaforge-creator/subdrip/internal/currency"
)

func prefsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
		RunE: func(_ *cobra.Command, _ []string) error {
			p := s.app.Prefs
			t := table.NewWriter()
			t.SetOutputMirror(s.out)
			t.SetStyle(table.StyleRounded)
			t.AppendRows([]table.Row{
				{"Currency", p.CurrencyCode + " (" + currency.Symbol(p.CurrencyCode) + ")"},
				{"Dark mode", onOff(p.DarkMode)},
				{"Notifications", onOff(p.NotificationsEnabled)},
				{"File", s.app.Config.PreferencesPath},
			})
			t.Render()
			return nil
		},
	}
	cmd.AddCommand(prefsSetCmd(s))
	return cmd
}

func prefsSetCmd(s *session) *cobra.Command {
	var (
		code          string
		dark          bool
		notifications bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		Example: `  subdrip prefs set --currency EUR
  subdrip prefs set --dark-mode=false --notifications=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("currency") && !flags.Changed("dark-mode") && !flags.Changed("notifications") {
				return errNoChanges
			}

			p := s.app.Prefs
			if flags.Changed("currency") {
				p.CurrencyCode = strings.ToUpper(strings.TrimSpace(code))
			}
			if flags.Changed("dark-mode") {
				p.DarkMode = dark
			}
			if flags.Changed("notifications") {
				p.NotificationsEnabled = notifications
			}
			if err := s.app.SavePreferences(p); err != nil {
				return err
			}
			fmt.Fprintln(s.out, s.app.Theme.Success.Render("Preferences saved"))
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "currency", "", "display currency, one of "+strings.Join(currency.Codes(), ", "))
	cmd.Flags().BoolVar(&dark, "dark-mode", true, "use the dark palette")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "show payments due soon in list")
	return cmd
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
