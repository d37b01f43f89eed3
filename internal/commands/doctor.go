package commands

import (
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dotcommander/osapilot/internal/app"
	"github.com/dotcommander/osapilot/internal/apps"
	"github.com/dotcommander/osapilot/internal/osa"
	"github.com/dotcommander/osapilot/internal/output"
	"github.com/dotcommander/osapilot/internal/remedy"
	"github.com/dotcommander/osapilot/internal/store"
	"github.com/dotcommander/osapilot/internal/telemetry"
)

func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check platform, osascript availability, automation access, and the history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			type resp struct {
				Platform     string          `json:"platform"`
				PlatformOK   bool            `json:"platform_ok"`
				OsascriptOK  bool            `json:"osascript_ok"`
				AutomationOK *bool           `json:"automation_ok,omitempty"`
				Automation   *output.Failure `json:"automation_failure,omitempty"`
				DBPath       string          `json:"db_path,omitempty"`
				DBOK         bool            `json:"db_ok"`
				DBErr        string          `json:"db_error,omitempty"`
				Hint         string          `json:"hint,omitempty"`
			}

			r := resp{
				Platform:   runtime.GOOS,
				PlatformOK: runtime.GOOS == "darwin",
			}
			if !r.PlatformOK {
				r.Hint = "osapilot drives osascript, which only exists on macOS."
			}

			if _, err := exec.LookPath("osascript"); err == nil {
				r.OsascriptOK = true
			}

			// Automation probe only makes sense where a runner can exist.
			if r.PlatformOK && r.OsascriptOK {
				runner, err := runnerForDoctor(cmd)
				if err == nil {
					if probeErr := apps.CheckAutomationAccess(cmd.Context(), runner); probeErr != nil {
						ok := false
						r.AutomationOK = &ok
						failure := output.ScriptFailure(probeErr).Failure
						r.Automation = failure
						r.Hint = remedy.Render(probeErr)
					} else {
						ok := true
						r.AutomationOK = &ok
					}
				}
			}

			if dbPath, err := app.GetDBPath(); err == nil {
				r.DBPath = dbPath
				db, err := store.InitDBWithPath(dbPath)
				if err != nil {
					r.DBErr = err.Error()
				} else {
					var one int
					if err := db.QueryRow("SELECT 1").Scan(&one); err != nil {
						r.DBErr = err.Error()
					} else {
						r.DBOK = true
					}
					_ = db.Close()
				}
			} else {
				r.DBErr = err.Error()
			}
			if !r.DBOK && r.Hint == "" {
				r.Hint = "Set db_path to a writable location or use --db-path."
			}

			return output.PrintSuccess(r)
		},
	}
}

// runnerForDoctor probes without touching history: the probe's events go
// only to the log sink.
func runnerForDoctor(cmd *cobra.Command) (apps.ScriptRunner, error) {
	return osa.New(timeoutFromCmd(cmd), telemetry.Slog(slog.Default()))
}
