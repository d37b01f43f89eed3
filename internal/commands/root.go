package commands

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/dotcommander/osapilot/internal/app"
	"github.com/dotcommander/osapilot/internal/output"
)

// Execute runs the CLI application.
func Execute(version string) error {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevel(),
	})))

	root := &cobra.Command{
		Use:           "osapilot",
		Short:         "Run AppleScript automation through osascript with classified errors and retry",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				type resp struct {
					Version string `json:"version"`
				}
				return output.PrintSuccess(resp{Version: version})
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.EnsureConfigDir(); err != nil {
				return err
			}
			if dbPath, err := cmd.Flags().GetString("db-path"); err == nil && dbPath != "" {
				app.SetDBPathOverride(dbPath)
			}
			return nil
		},
	}

	root.PersistentFlags().String("db-path", "", "Override history database path")
	root.PersistentFlags().IntP("timeout", "t", 0, "osascript timeout in seconds (default: config, then 30)")
	root.PersistentFlags().Int("retries", 0, "Max attempts for timeout failures (default: config, then 3)")
	root.PersistentFlags().String("backoff", "", "Backoff strategy: exponential or linear (default: exponential)")
	root.PersistentFlags().Bool("no-history", false, "Do not persist telemetry events to the history database")
	root.Flags().BoolP("version", "v", false, "version for osapilot")

	root.AddCommand(NewRunCmd())
	root.AddCommand(NewNotesCmd())
	root.AddCommand(NewRemindersCmd())
	root.AddCommand(NewHistoryCmd())
	root.AddCommand(NewDoctorCmd())

	return root.Execute()
}

func logLevel() slog.Level {
	switch os.Getenv("OSAPILOT_LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}
