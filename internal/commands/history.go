package commands

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/osapilot/internal/output"
	"github.com/dotcommander/osapilot/internal/store"
)

func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent telemetry events from past invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			var events []store.EventRow
			if err := withDB(func(db *DB) error {
				var err error
				events, err = store.RecentEvents(db, limit)
				return err
			}); err != nil {
				return err
			}

			type resp struct {
				Events []store.EventRow `json:"events"`
				Count  int              `json:"count"`
			}
			return output.PrintSuccess(resp{Events: events, Count: len(events)})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of events to show")

	return cmd
}
