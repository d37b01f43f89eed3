package apps

import (
	"context"
	"errors"

	"github.com/dotcommander/osapilot/internal/models"
)

// probeScript is a minimal System Events query. It fails with a
// permission_denied classification until the user grants automation access,
// which makes it a cheap probe for the doctor command.
const probeScript = `tell application "System Events" to get name of first process`

// CheckAutomationAccess probes System Events scripting. Returns nil when
// automation is permitted, otherwise the classified failure. Probing is a
// single attempt: a permission prompt should surface once, not three times.
func CheckAutomationAccess(ctx context.Context, r ScriptRunner) *models.ScriptError {
	_, err := r.Run(ctx, probeScript)
	if err == nil {
		return nil
	}
	var scriptErr *models.ScriptError
	if errors.As(err, &scriptErr) {
		return scriptErr
	}
	return models.NewExecutionError(err.Error(), nil)
}
