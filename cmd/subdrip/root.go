package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/avaforge-creator/subdrip/internal/cli"
	"github.com/avaforge-creator/subdrip/internal/clock"
	"github.com/avaforge-creator/subdrip/internal/log"
	"github.com/avaforge-creator/subdrip/internal/store"
)

// session carries the bootstrapped app from the root pre-run hook to the
// subcommands.
type session struct {
	out   io.Writer
	app   *cli.App
	clock clock.Clock // overrides the wall clock when set
}

func newRootCmd(out io.Writer) *cobra.Command {
	return newRoot(&session{out: out})
}

func newRoot(s *session) *cobra.Command {
	out := s.out

	root := &cobra.Command{
		Use:   "subdrip",
		Short: "Track recurring subscriptions and what they cost you",
		Long: `subdrip keeps a list of your subscriptions, projects their next payment
dates and shows what they add up to per month and per year.`,
		SilenceUsage:       true,
		PersistentPreRunE:  s.open,
		PersistentPostRunE: s.close,
	}
	root.SetOut(out)

	root.AddCommand(
		addCmd(s),
		listCmd(s),
		showCmd(s),
		updateCmd(s),
		deleteCmd(s),
		summaryCmd(s),
		calendarCmd(s),
		categoriesCmd(s),
		prefsCmd(s),
		versionCmd(s),
	)
	return root
}

func (s *session) open(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}
	cli.LoadEnvFile()

	app, err := cli.Bootstrap(cmd.Context(), s.out)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	if s.clock != nil {
		app.Clock = s.clock
	}
	s.app = app

	logger := app.Logger.WithComponent(log.ComponentStore)
	app.Store.Subscribe(func(ev store.Event) {
		logger.Debug("Subscriptions changed", log.FieldOperation, string(ev.Op), log.FieldCount, len(ev.IDs))
	})
	return nil
}

func (s *session) close(_ *cobra.Command, _ []string) error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	if err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}

const skipBootstrap = "skip-bootstrap"

var errNoChanges = errors.New("nothing to update, pass at least one flag")

func versionCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{skipBootstrap: "true"},
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(s.out, "subdrip %s\n", version)
		},
	}
}
