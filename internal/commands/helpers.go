package commands

import (
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dotcommander/osapilot/internal/app"
	"github.com/dotcommander/osapilot/internal/models"
	"github.com/dotcommander/osapilot/internal/osa"
	"github.com/dotcommander/osapilot/internal/output"
	"github.com/dotcommander/osapilot/internal/store"
	"github.com/dotcommander/osapilot/internal/telemetry"
)

// DB is an alias so command code doesn't need to import database/sql.
type DB = sql.DB

type printedError struct {
	err error
}

func (e printedError) Error() string {
	// Intentionally hide the original error: the JSON response is the output.
	return "error already printed"
}

func openDB() (*DB, func(), error) {
	db, err := store.InitDB()
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

func withDB(fn func(db *DB) error) error {
	db, closeDB, err := openDB()
	if err != nil {
		return cmdErr(err)
	}
	defer closeDB()

	if err := fn(db); err != nil {
		return cmdErr(err)
	}
	return nil
}

func cmdErr(err error) error {
	if err == nil {
		return nil
	}
	// Classified failures get the structured JSON payload with remediation;
	// everything else gets the plain error envelope.
	var scriptErr *models.ScriptError
	if errors.As(err, &scriptErr) {
		_ = output.PrintScriptFailure(scriptErr)
		return printedError{err: err}
	}
	slog.Error("command error", "error", err.Error())
	_ = output.PrintError(err)
	return printedError{err: err}
}

// policyFromCmd builds the retry policy from flags, falling back to config.
func policyFromCmd(cmd *cobra.Command) (models.RetryPolicy, error) {
	policy := models.DefaultRetryPolicy()

	settings, err := app.LoadSettings()
	if err != nil {
		return policy, err
	}
	if settings.MaxAttempts > 0 {
		policy.MaxAttempts = settings.MaxAttempts
	}
	if settings.Backoff != "" {
		b, err := models.ParseBackoff(settings.Backoff)
		if err != nil {
			return policy, err
		}
		policy.Backoff = b
	}

	if retries, err := cmd.Flags().GetInt("retries"); err == nil && retries > 0 {
		policy.MaxAttempts = retries
	}
	if raw, err := cmd.Flags().GetString("backoff"); err == nil && raw != "" {
		b, err := models.ParseBackoff(raw)
		if err != nil {
			return policy, err
		}
		policy.Backoff = b
	}
	return policy, nil
}

// timeoutFromCmd resolves the per-invocation osascript timeout.
func timeoutFromCmd(cmd *cobra.Command) time.Duration {
	if secs, err := cmd.Flags().GetInt("timeout"); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	settings, err := app.LoadSettings()
	if err != nil {
		return app.DefaultTimeoutSec * time.Second
	}
	return time.Duration(settings.EffectiveTimeoutSec()) * time.Second
}

// emitterFromCmd wires the telemetry chain: always the slog sink, plus the
// history database unless disabled by flag or config. The returned cleanup
// closes the database.
func emitterFromCmd(cmd *cobra.Command) (telemetry.Emitter, func(), error) {
	logEmitter := telemetry.Slog(slog.Default())

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory {
		settings, err := app.LoadSettings()
		if err != nil {
			return nil, nil, err
		}
		noHistory = !settings.HistoryEnabled()
	}
	if noHistory {
		return logEmitter, func() {}, nil
	}

	db, closeDB, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return telemetry.Multi(logEmitter, &store.EventSink{DB: db}), closeDB, nil
}

// runnerFromCmd constructs the osascript runner with the resolved timeout
// and telemetry chain.
func runnerFromCmd(cmd *cobra.Command) (*osa.Runner, telemetry.Emitter, func(), error) {
	em, cleanup, err := emitterFromCmd(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	runner, err := osa.New(timeoutFromCmd(cmd), em)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return runner, em, cleanup, nil
}
