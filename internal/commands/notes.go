package commands

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/osapilot/internal/apps"
	"github.com/dotcommander/osapilot/internal/output"
)

func NewNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Automate the Notes application",
	}

	cmd.AddCommand(newNotesListCmd())
	cmd.AddCommand(newNotesCreateCmd())
	return cmd
}

func newNotesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notes",
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

			notes, err := apps.ListNotes(cmd.Context(), runner, policy, em)
			if err != nil {
				return cmdErr(err)
			}

			type resp struct {
				Notes []apps.Note `json:"notes"`
				Count int         `json:"count"`
			}
			return output.PrintSuccess(resp{Notes: notes, Count: len(notes)})
		},
	}
}

func newNotesCreateCmd() *cobra.Command {
	var (
		folder string
		body   string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a note",
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

			if err := apps.CreateNote(cmd.Context(), runner, policy, em, folder, args[0], body); err != nil {
				return cmdErr(err)
			}

			type resp struct {
				Name   string `json:"name"`
				Folder string `json:"folder"`
			}
			if folder == "" {
				folder = "Notes"
			}
			return output.PrintSuccess(resp{Name: args[0], Folder: folder})
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Target folder (default: Notes)")
	cmd.Flags().StringVar(&body, "body", "", "Note body text")

	return cmd
}
