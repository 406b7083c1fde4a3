package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/avaforge-creator/subdrip/internal/cli"
	"github.com/avaforge-creator/subdrip/internal/core"
	"github.com/avaforge-creator/subdrip/internal/currency"
	"github.com/avaforge-creator/subdrip/internal/report"
)

// reminderDays is how far ahead list looks when notifications are on.
const reminderDays = 3

type subscriptionFlags struct {
	name     string
	price    string
	cycle    string
	category string
	start    string
	notes    string
	icon     string
	color    string
	currency string
}

func (f *subscriptionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "subscription name")
	cmd.Flags().StringVar(&f.price, "price", "", "price per billing cycle, e.g. 15.99")
	cmd.Flags().StringVar(&f.cycle, "cycle", core.Monthly.String(), "billing cycle (weekly, monthly, yearly)")
	cmd.Flags().StringVar(&f.category, "category", core.Other.String(), "category")
	cmd.Flags().StringVar(&f.start, "start", "", "first payment date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&f.icon, "icon", "", "icon name (default: the category icon)")
	cmd.Flags().StringVar(&f.color, "color", "", "color hex (default: the category color)")
	cmd.Flags().StringVar(&f.currency, "currency", currency.Base, "currency the price is given in; stored converted to "+currency.Base)
}

// parsePrice reads the price flag and converts it to the base currency.
func (f *subscriptionFlags) parsePrice() (decimal.Decimal, error) {
	price, err := core.ParsePrice(f.price)
	if err != nil {
		return decimal.Zero, err
	}
	code := strings.ToUpper(strings.TrimSpace(f.currency))
	if !currency.IsSupported(code) {
		return decimal.Zero, fmt.Errorf("unsupported currency %q: must be one of %v", f.currency, currency.Codes())
	}
	usd := currency.Convert(price, code, currency.Base).Round(2)
	if !usd.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s %s is less than one cent", core.ErrInvalidPrice, price, code)
	}
	return usd, nil
}

func addCmd(s *session) *cobra.Command {
	var f subscriptionFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subscription",
		Example: `  subdrip add --name Netflix --price 15.99 --category entertainment
  subdrip add --name Gym --price 10 --cycle weekly --start 2024-01-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := s.app
			price, err := f.parsePrice()
			if err != nil {
				return err
			}
			cycle, err := core.ParseBillingCycle(f.cycle)
			if err != nil {
				return err
			}
			category, err := core.ParseCategory(f.category)
			if err != nil {
				return err
			}
			start := core.DateOf(app.Clock.Now())
			if f.start != "" {
				if start, err = core.ParseDate(f.start); err != nil {
					return err
				}
			}

			sub, err := core.NewSubscription(core.SubscriptionParams{
				Name:         f.name,
				Price:        price,
				BillingCycle: cycle,
				Category:     category,
				IconName:     f.icon,
				StartDate:    start,
				ColorHex:     f.color,
				Notes:        f.notes,
			})
			if err != nil {
				return err
			}
			if err := app.Store.Add(cmd.Context(), sub); err != nil {
				return err
			}

			card := report.NewCard(sub, app.Clock.Now(), app.Prefs.CurrencyCode)
			fmt.Fprintf(s.out, "%s %s (%s), next payment %s\n",
				app.Theme.Success.Render("Added"), sub.Name, cli.ShortID(sub.ID), card.NextPayment)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func listCmd(s *session) *cobra.Command {
	var order string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		Long: `List subscriptions with their next payment date.

The # column is the position used by 'subdrip delete --index'.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			app := s.app
			now := app.Clock.Now()
			code := app.Prefs.CurrencyCode

			var subs []core.Subscription
			switch order {
			case "next":
				subs = app.Store.SortedByNextPayment(now)
			case "added":
				subs = app.Store.All()
			default:
				return fmt.Errorf("invalid sort %q: must be next or added", order)
			}

			if len(subs) == 0 {
				fmt.Fprintln(s.out, app.Theme.Subtle.Render("No subscriptions yet. Add one with 'subdrip add'."))
				return nil
			}
			cards := report.Cards(subs, now, code)
			cli.RenderCards(s.out, cards, positions(app.Store.All()), app.Theme)

			if app.Prefs.NotificationsEnabled {
				printReminder(s, cards)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&order, "sort", "next", "order: next (by next payment) or added")
	return cmd
}

func printReminder(s *session, cards []report.Card) {
	var due []string
	for _, c := range cards {
		if c.DaysUntil <= reminderDays {
			due = append(due, c.Subscription.Name+" ("+strings.ToLower(c.DueLabel)+")")
		}
	}
	if len(due) == 0 {
		return
	}
	fmt.Fprintf(s.out, "%s %s\n", s.app.Theme.Warning.Render("Due soon:"), strings.Join(due, ", "))
}

func showCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			app := s.app
			sub, err := cli.ResolveID(app.Store.All(), args[0])
			if err != nil {
				return err
			}
			cli.RenderDetail(s.out, report.NewCard(sub, app.Clock.Now(), app.Prefs.CurrencyCode), app.Theme)
			return nil
		},
	}
}

func updateCmd(s *session) *cobra.Command {
	var f subscriptionFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a subscription",
		Long: `Change fields of a subscription. Only the flags you pass are changed.
Changing the category also resets the icon and color unless you pass them.`,
		Example: `  subdrip update 3f2a --price 17.99
  subdrip update 3f2a --category software --notes "work account"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := s.app
			sub, err := cli.ResolveID(app.Store.All(), args[0])
			if err != nil {
				return err
			}

			changed, err := applyFlags(cmd, &f, &sub)
			if err != nil {
				return err
			}
			if !changed {
				return errNoChanges
			}
			if err := app.Store.Update(cmd.Context(), sub); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "%s %s (%s)\n", app.Theme.Success.Render("Updated"), sub.Name, cli.ShortID(sub.ID))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

// applyFlags copies the flags the user set onto sub and reports whether
// anything was set.
func applyFlags(cmd *cobra.Command, f *subscriptionFlags, sub *core.Subscription) (bool, error) {
	flags := cmd.Flags()
	changed := false

	if flags.Changed("name") {
		sub.Name = strings.TrimSpace(f.name)
		changed = true
	}
	if flags.Changed("price") {
		price, err := f.parsePrice()
		if err != nil {
			return false, err
		}
		sub.Price = price
		changed = true
	} else if flags.Changed("currency") {
		return false, fmt.Errorf("--currency only applies together with --price")
	}
	if flags.Changed("cycle") {
		cycle, err := core.ParseBillingCycle(f.cycle)
		if err != nil {
			return false, err
		}
		sub.BillingCycle = cycle
		changed = true
	}
	if flags.Changed("category") {
		category, err := core.ParseCategory(f.category)
		if err != nil {
			return false, err
		}
		if category != sub.Category {
			sub.Category = category
			sub.IconName = category.IconName()
			sub.ColorHex = category.ColorHex()
		}
		changed = true
	}
	if flags.Changed("start") {
		start, err := core.ParseDate(f.start)
		if err != nil {
			return false, err
		}
		sub.StartDate = start
		changed = true
	}
	if flags.Changed("notes") {
		sub.Notes = f.notes
		changed = true
	}
	if flags.Changed("icon") {
		sub.IconName = strings.TrimSpace(f.icon)
		changed = true
	}
	if flags.Changed("color") {
		sub.ColorHex = strings.TrimSpace(f.color)
		changed = true
	}
	return changed, nil
}

func deleteCmd(s *session) *cobra.Command {
	var indexes []int
	cmd := &cobra.Command{
		Use:   "delete [id...]",
		Short: "Delete subscriptions",
		Long: `Delete subscriptions by id (or id prefix), or by their # position
from 'subdrip list' with --index.`,
		Example: `  subdrip delete 3f2a
  subdrip delete --index 0,2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := s.app
			if len(indexes) > 0 && len(args) > 0 {
				return fmt.Errorf("pass ids or --index, not both")
			}

			if len(indexes) > 0 {
				n := app.Store.DeleteAt(cmd.Context(), indexes...)
				fmt.Fprintf(s.out, "%s %d subscription(s)\n", app.Theme.Success.Render("Deleted"), n)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("pass at least one id or --index")
			}

			all := app.Store.All()
			ids := make([]uuid.UUID, 0, len(args))
			for _, ref := range args {
				sub, err := cli.ResolveID(all, ref)
				if err != nil {
					return err
				}
				ids = append(ids, sub.ID)
			}
			n := 0
			for _, id := range ids {
				if app.Store.Delete(cmd.Context(), id) {
					n++
				}
			}
			fmt.Fprintf(s.out, "%s %d subscription(s)\n", app.Theme.Success.Render("Deleted"), n)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&indexes, "index", nil, "positions from 'subdrip list' (comma separated)")
	return cmd
}

// positions maps each id to its place in insertion order.
func positions(subs []core.Subscription) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(subs))
	for i, sub := range subs {
		if _, seen := out[sub.ID]; !seen {
			out[sub.ID] = i
		}
	}
	return out
}
