package output

import (
	"encoding/json"
	"os"

	"github.com/dotcommander/osapilot/internal/models"
	"github.com/dotcommander/osapilot/internal/remedy"
)

// Response represents a standard JSON response
type Response struct {
	SchemaVersion string      `json:"schema_version"`
	Success       bool        `json:"success"`
	Data          interface{} `json:"data,omitempty"`
	Error         string      `json:"error,omitempty"`
	Failure       *Failure    `json:"failure,omitempty"`
}

// Failure is the structured payload for a classified script error: the kind,
// the detail map, and the remediation steps in display order.
type Failure struct {
	Kind        string            `json:"kind"`
	Message     string            `json:"message"`
	Details     map[string]string `json:"details,omitempty"`
	Remediation []string          `json:"remediation,omitempty"`
	Rendered    string            `json:"rendered"`
}

// Success wraps a successful response with data
func Success(data interface{}) Response {
	return Response{
		SchemaVersion: "v1",
		Success:       true,
		Data:          data,
	}
}

// Error wraps an error in a response
func Error(err error) Response {
	return Response{
		SchemaVersion: "v1",
		Success:       false,
		Error:         err.Error(),
	}
}

// ScriptFailure wraps a classified failure with its remediation steps.
func ScriptFailure(err *models.ScriptError) Response {
	return Response{
		SchemaVersion: "v1",
		Success:       false,
		Error:         err.Error(),
		Failure: &Failure{
			Kind:        string(err.ErrorKind()),
			Message:     err.Error(),
			Details:     err.Details(),
			Remediation: remedy.Steps(err),
			Rendered:    remedy.Render(err),
		},
	}
}

// Print prints a value as JSON to stdout
func Print(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	// Default to compact JSON for machine consumption.
	// Enable pretty JSON for humans via env var: OSAPILOT_PRETTY_JSON=1.
	if os.Getenv("OSAPILOT_PRETTY_JSON") == "1" || os.Getenv("OSAPILOT_PRETTY_JSON") == "true" {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// PrintSuccess prints a success response
func PrintSuccess(data interface{}) error {
	return Print(Success(data))
}

// PrintError prints an error response
func PrintError(err error) error {
	return Print(Error(err))
}

// PrintScriptFailure prints a classified failure with remediation.
func PrintScriptFailure(err *models.ScriptError) error {
	return Print(ScriptFailure(err))
}
