package apps

import (
	"context"

	"github.com/dotcommander/osapilot/internal/models"
	"github.com/dotcommander/osapilot/internal/osa"
	"github.com/dotcommander/osapilot/internal/retry"
	"github.com/dotcommander/osapilot/internal/telemetry"
)

// Note is one record from the Notes application.
type Note struct {
	Name     string `json:"name"`
	Folder   string `json:"folder"`
	Modified string `json:"modified"`
}

const listNotesScript = `tell application "Notes"
	set out to ""
	repeat with n in notes
		set out to out & (name of n) & "|~|" & (name of container of n) & "|~|" & (modification date of n as string) & linefeed
	end repeat
	return out
end tell`

const createNoteScript = `tell application "Notes"
	tell folder "${FOLDER}"
		make new note with properties {name:"${NAME}", body:"${BODY}"}
	end tell
end tell`

// ListNotes fetches every note, retrying timeouts per policy.
func ListNotes(ctx context.Context, r ScriptRunner, policy models.RetryPolicy, em telemetry.Emitter) ([]Note, error) {
	res, err := retry.Do(ctx, policy, em, func() (osa.Result, error) {
		return r.Run(ctx, listNotesScript)
	})
	if err != nil {
		return nil, err
	}
	var notes []Note
	for _, rec := range parseRecords(res.Output, 3) {
		notes = append(notes, Note{Name: rec[0], Folder: rec[1], Modified: rec[2]})
	}
	return notes, nil
}

// CreateNote makes a new note in the given folder ("Notes" when empty).
// Name and body are substituted into the script with string-literal escaping.
func CreateNote(ctx context.Context, r ScriptRunner, policy models.RetryPolicy, em telemetry.Emitter, folder, name, body string) error {
	if folder == "" {
		folder = "Notes"
	}
	script := osa.Expand(createNoteScript, map[string]string{
		"FOLDER": folder,
		"NAME":   name,
		"BODY":   body,
	})
	_, err := retry.Do(ctx, policy, em, func() (osa.Result, error) {
		return r.Run(ctx, script)
	})
	return err
}
