// Package apps contains the per-application automation modules. Each module
// builds an AppleScript body, runs it through the invocation boundary with
// timeout retry, and parses the delimiter-separated output back into records.
package apps

import (
	"context"
	"strings"

	"github.com/dotcommander/osapilot/internal/osa"
)

// ScriptRunner abstracts the osascript invocation boundary so modules can
// be tested without a Mac.
type ScriptRunner interface {
	Run(ctx context.Context, script string) (osa.Result, error)
}

// fieldSep separates fields within one output record. Chosen to be
// vanishingly unlikely in note titles or reminder names; records are one
// per line.
const fieldSep = "|~|"

// parseRecords splits delimiter-separated osascript output into records of
// exactly want fields. Blank lines and malformed records are skipped rather
// than failed: an empty result set comes back as an empty string.
func parseRecords(out string, want int) [][]string {
	var records [][]string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, fieldSep)
		if len(fields) != want {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		records = append(records, fields)
	}
	return records
}
