// Package classify turns raw osascript diagnostics (stderr text plus exit
// status) into typed ScriptError values. Classification is a first-match-wins
// rule table so the priority order is data, not control flow: timeout beats
// syntax_error beats permission_denied beats not_found beats execution_error,
// with an unknown-error fallback that matches everything.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dotcommander/osapilot/internal/models"
)

// TimeoutExitCode follows the coreutils timeout(1) convention. The runner
// maps a context deadline to this status before classifying, and some
// wrappers around osascript report it directly.
const TimeoutExitCode = 124

const (
	syntaxPrefix    = "syntax error:"
	executionPrefix = "execution error:"
)

var (
	// errorCodeRE matches AppleScript's trailing parenthesized error codes,
	// e.g. `... (-1728)`. The last occurrence wins.
	errorCodeRE = regexp.MustCompile(`\((-?\d+)\)`)

	// trailingCodeRE strips a single trailing error-code parenthetical from
	// an extracted message body.
	trailingCodeRE = regexp.MustCompile(`\s*\(-?\d+\)\s*$`)

	// appNameRE captures the quoted application name from messages like
	// `The application "Notes" isn't running.`
	appNameRE = regexp.MustCompile(`[Tt]he application "([^"]+)"`)
)

// rule pairs a predicate with a builder. Rules are evaluated in order
// against the trimmed diagnostic text; the first match wins.
type rule struct {
	kind  models.ErrorKind
	match func(text string, exitCode int) bool
	build func(text string, exitCode int) *models.ScriptError
}

// rules is the classification priority order. The final rule matches
// unconditionally, which is what makes Classify total.
var rules = []rule{
	{
		kind: models.KindTimeout,
		match: func(text string, exitCode int) bool {
			return exitCode == TimeoutExitCode || strings.Contains(strings.ToLower(text), "timeout")
		},
		build: func(text string, exitCode int) *models.ScriptError {
			return models.NewTimeoutError(text, baseDetails(text, exitCode))
		},
	},
	{
		kind: models.KindSyntaxError,
		match: func(text string, _ int) bool {
			return strings.HasPrefix(text, syntaxPrefix)
		},
		build: func(text string, exitCode int) *models.ScriptError {
			return models.NewSyntaxError(messageBody(text, syntaxPrefix), baseDetails(text, exitCode))
		},
	},
	{
		kind: models.KindPermissionDenied,
		match: func(text string, _ int) bool {
			// osascript capitalizes sentence-initial "Not authorized ...";
			// match case-insensitively so both spellings classify the same.
			lower := strings.ToLower(text)
			return strings.Contains(lower, "not allowed") || strings.Contains(lower, "not authorized")
		},
		build: func(text string, exitCode int) *models.ScriptError {
			return models.NewPermissionDeniedError(messageBody(text, executionPrefix), baseDetails(text, exitCode))
		},
	},
	{
		kind: models.KindNotFound,
		match: func(text string, _ int) bool {
			return strings.Contains(strings.ToLower(text), "could not be found") || appNameRE.MatchString(text)
		},
		build: func(text string, exitCode int) *models.ScriptError {
			details := baseDetails(text, exitCode)
			if m := appNameRE.FindStringSubmatch(text); m != nil {
				details[models.DetailApp] = m[1]
			}
			return models.NewNotFoundError(messageBody(text, executionPrefix), details)
		},
	},
	{
		kind: models.KindExecutionError,
		match: func(text string, _ int) bool {
			return strings.HasPrefix(text, executionPrefix)
		},
		build: func(text string, exitCode int) *models.ScriptError {
			return models.NewExecutionError(messageBody(text, executionPrefix), baseDetails(text, exitCode))
		},
	},
	{
		kind:  models.KindExecutionError,
		match: func(string, int) bool { return true },
		build: func(text string, exitCode int) *models.ScriptError {
			return models.NewExecutionError("An unknown error occurred: "+text, baseDetails(text, exitCode))
		},
	},
}

// Classify maps osascript diagnostics to a typed error. It is pure, never
// panics, and always succeeds: unrecognized text falls through to an
// execution_error with the original text preserved.
func Classify(stderr string, exitCode int) *models.ScriptError {
	text := strings.TrimSpace(stderr)
	for _, r := range rules {
		if r.match(text, exitCode) {
			return r.build(text, exitCode)
		}
	}
	// Unreachable: the fallback rule matches everything.
	return models.NewExecutionError("An unknown error occurred: "+text, baseDetails(text, exitCode))
}

// baseDetails carries the raw evidence on every classified error, plus the
// AppleScript error code when one is present.
func baseDetails(text string, exitCode int) map[string]string {
	details := map[string]string{
		models.DetailExitCode: strconv.Itoa(exitCode),
		models.DetailStderr:   text,
	}
	if code, ok := lastErrorCode(text); ok {
		details[models.DetailErrorCode] = code
	}
	return details
}

// lastErrorCode returns the last parenthesized signed integer in the text.
func lastErrorCode(text string) (string, bool) {
	matches := errorCodeRE.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	return matches[len(matches)-1][1], true
}

// messageBody extracts a clean message: the first line carrying the given
// prefix, with the prefix and any trailing error-code parenthetical
// stripped. When no line carries the prefix, the whole trimmed text is used
// (minus a trailing code), so multi-line and prefix-less diagnostics still
// yield something readable.
func messageBody(text, prefix string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, prefix) {
			body := strings.TrimSpace(strings.TrimPrefix(line, prefix))
			return strings.TrimSpace(trailingCodeRE.ReplaceAllString(body, ""))
		}
	}
	return strings.TrimSpace(trailingCodeRE.ReplaceAllString(strings.TrimSpace(text), ""))
}
