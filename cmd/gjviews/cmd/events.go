package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nfrund/golfjourneys/cmd/gjviews/internal/output"
	"github.com/nfrund/golfjourneys/internal/pubsub"
)

func newEventsCmd(opts *globalOptions) *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "List the declared change events",
	}

	eventsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every typed event the services publish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events := pubsub.Events()

			if opts.format == output.FormatJSON {
				return output.JSON(cmd.OutOrStdout(), struct {
					Events []pubsub.EventInfo `json:"events"`
					Count  int                `json:"count"`
				}{events, len(events)})
			}

			rows := make([][]string, len(events))
			for i, e := range events {
				rows[i] = []string{e.Name, e.Module, output.Truncate(e.Description, 50)}
			}
			return output.Table(cmd.OutOrStdout(), []string{"NAME", "MODULE", "DESCRIPTION"}, rows, "No events found")
		},
	})
	return eventsCmd
}
