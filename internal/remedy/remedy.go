// Package remedy maps classified failures to ordered, user-facing
// remediation steps. Lookup is pure and total: unknown detail keys are
// skipped, never errors.
package remedy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dotcommander/osapilot/internal/models"
)

// Steps returns remediation guidance for a classified failure, most useful
// step first. Returns nil for a nil error. Detail-specific lines (the app
// name for not_found, the doubled timeout for timeout) appear only when the
// corresponding detail key is present and well-formed.
func Steps(err *models.ScriptError) []string {
	if err == nil {
		return nil
	}
	switch err.ErrorKind() {
	case models.KindSyntaxError:
		return []string{
			"Check the script for unbalanced quotes, parentheses, or tell blocks.",
			"Paste the script into Script Editor and compile it to see the failing token highlighted.",
		}
	case models.KindPermissionDenied:
		return []string{
			"Open System Settings > Privacy & Security > Automation.",
			"Enable access for the terminal application running osapilot, then re-run the command.",
		}
	case models.KindNotFound:
		steps := []string{
			"Verify the application is installed and its name matches what appears in /Applications.",
		}
		if app, ok := err.Detail(models.DetailApp); ok {
			steps = append(steps, fmt.Sprintf("Open %q manually once so macOS registers it with Launch Services.", app))
		}
		return steps
	case models.KindTimeout:
		steps := []string{
			"Re-run the command; the target application may have been busy or still launching.",
		}
		if v, ok := err.Detail(models.DetailTimeout); ok {
			if secs, parseErr := strconv.Atoi(v); parseErr == nil && secs > 0 {
				steps = append(steps, fmt.Sprintf("Raise the timeout from %ds to %ds with --timeout.", secs, secs*2))
			}
		}
		return steps
	case models.KindUnsupportedPlatform:
		return []string{
			"osapilot drives osascript, which only exists on macOS. Run it on a Mac.",
		}
	case models.KindExecutionError:
		return []string{
			"Review the script against the target application's dictionary (File > Open Dictionary in Script Editor).",
		}
	}
	return nil
}

// headlines are the kind-specific display templates; %s is the error message.
var headlines = map[models.ErrorKind]string{
	models.KindSyntaxError:         "Script has a syntax error: %s",
	models.KindExecutionError:      "Script failed to execute: %s",
	models.KindTimeout:             "Script timed out: %s",
	models.KindNotFound:            "Application not found: %s",
	models.KindPermissionDenied:    "Automation access denied: %s",
	models.KindUnsupportedPlatform: "Unsupported platform: %s",
}

// Render formats a failure for display: the kind-specific headline followed
// by each remediation step on its own line.
func Render(err *models.ScriptError) string {
	if err == nil {
		return ""
	}
	headline, ok := headlines[err.ErrorKind()]
	if !ok {
		headline = "Error: %s"
	}
	var b strings.Builder
	fmt.Fprintf(&b, headline, err.Error())
	for _, step := range Steps(err) {
		b.WriteByte('\n')
		b.WriteString(step)
	}
	return b.String()
}
