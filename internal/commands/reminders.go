package commands

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/osapilot/internal/apps"
	"github.com/dotcommander/osapilot/internal/output"
)

func NewRemindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Automate the Reminders application",
	}

	cmd.AddCommand(newRemindersListCmd())
	cmd.AddCommand(newRemindersAddCmd())
	return cmd
}

func newRemindersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminders in the default list",
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := policyFromCmd(cmd)
			if err != nil {
				return cmdErr(err)
			}
			runner, em, cleanup, err := runnerFromCmd(cmd)
			if err != nil {
				return cmdErr(err)
			}
			defer cleanup()

			reminders, err := apps.ListReminders(cmd.Context(), runner, policy, em)
			if err != nil {
				return cmdErr(err)
			}

			type resp struct {
				Reminders []apps.Reminder `json:"reminders"`
				Count     int             `json:"count"`
			}
			return output.PrintSuccess(resp{Reminders: reminders, Count: len(reminders)})
		},
	}
}

func newRemindersAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a reminder to the default list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := policyFromCmd(cmd)
			if err != nil {
				return cmdErr(err)
			}
			runner, em, cleanup, err := runnerFromCmd(cmd)
			if err != nil {
				return cmdErr(err)
			}
			defer cleanup()

			if err := apps.AddReminder(cmd.Context(), runner, policy, em, args[0]); err != nil {
				return cmdErr(err)
			}

			type resp struct {
				Name string `json:"name"`
			}
			return output.PrintSuccess(resp{Name: args[0]})
		},
	}
}
