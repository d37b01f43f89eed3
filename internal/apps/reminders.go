package apps

import (
	"context"

	"github.com/dotcommander/osapilot/internal/models"
	"github.com/dotcommander/osapilot/internal/osa"
	"github.com/dotcommander/osapilot/internal/retry"
	"github.com/dotcommander/osapilot/internal/telemetry"
)

// Reminder is one record from the Reminders application.
type Reminder struct {
	Name      string `json:"name"`
	Due       string `json:"due,omitempty"`
	Completed bool   `json:"completed"`
}

const listRemindersScript = `tell application "Reminders"
	set out to ""
	repeat with r in reminders of default list
		set dueText to ""
		if due date of r is not missing value then set dueText to (due date of r as string)
		set out to out & (name of r) & "|~|" & dueText & "|~|" & (completed of r as string) & linefeed
	end repeat
	return out
end tell`

const addReminderScript = `tell application "Reminders"
	make new reminder in default list with properties {name:"${NAME}"}
end tell`

// ListReminders fetches the default list, retrying timeouts per policy.
func ListReminders(ctx context.Context, r ScriptRunner, policy models.RetryPolicy, em telemetry.Emitter) ([]Reminder, error) {
	res, err := retry.Do(ctx, policy, em, func() (osa.Result, error) {
		return r.Run(ctx, listRemindersScript)
	})
	if err != nil {
		return nil, err
	}
	var reminders []Reminder
	for _, rec := range parseRecords(res.Output, 3) {
		reminders = append(reminders, Reminder{
			Name:      rec[0],
			Due:       rec[1],
			Completed: rec[2] == "true",
		})
	}
	return reminders, nil
}

// AddReminder creates a reminder in the default list.
func AddReminder(ctx context.Context, r ScriptRunner, policy models.RetryPolicy, em telemetry.Emitter, name string) error {
	script := osa.Expand(addReminderScript, map[string]string{"NAME": name})
	_, err := retry.Do(ctx, policy, em, func() (osa.Result, error) {
		return r.Run(ctx, script)
	})
	return err
}
