package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nfrund/golfjourneys/cmd/gjviews/internal/output"
	"github.com/nfrund/golfjourneys/internal/app"
	"github.com/nfrund/golfjourneys/internal/config"
	"github.com/nfrund/golfjourneys/internal/logging"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	format string
	locale string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "gjviews",
		Short: "Golf Journeys view module CLI",
		Long: `gjviews inspects the Golf Journeys view module: the views it can resolve,
the resource bundle it ships with and the events its services publish.

Available commands:
  views     List view classes and show view snapshots
  bundle    Inspect the resource bundle
  events    List the declared change events

Use "gjviews [command] --help" for more information about a command.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !output.Valid(opts.format) {
				return fmt.Errorf("invalid --format %q: valid formats are table, json", opts.format)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", output.FormatTable, "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&opts.locale, "locale", "", "Preferred locale for strings (default $APP_LOCALE)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newViewsCmd(opts),
		newBundleCmd(opts),
		newEventsCmd(opts),
	)
	return rootCmd
}

// Execute executes the root command
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadApp builds and boots the application for one command run. The returned
// function shuts it down again.
func loadApp(cmd *cobra.Command, opts *globalOptions) (*app.App, func(), error) {
	cfg := config.New()
	logging.New(cfg.LogFormat, cfg.LogLevel)
	if opts.locale != "" {
		cfg.Locale = opts.locale
	}

	a, err := app.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := a.Boot(cmd.Context()); err != nil {
		_ = a.Shutdown(context.Background())
		return nil, nil, err
	}

	return a, func() { _ = a.Shutdown(context.Background()) }, nil
}
