package models

// ErrorKind is the closed classification taxonomy for osascript failures.
// The classify package is the only producer besides the typed constructors
// below; downstream code (retry eligibility, remediation lookup, display)
// switches on these values and must handle all six.
type ErrorKind string

// Taxonomy members. Do not add kinds at call sites; extend here so every
// consumer switch stays exhaustive.
const (
	KindSyntaxError         ErrorKind = "syntax_error"
	KindExecutionError      ErrorKind = "execution_error"
	KindTimeout             ErrorKind = "timeout"
	KindNotFound            ErrorKind = "not_found"
	KindPermissionDenied    ErrorKind = "permission_denied"
	KindUnsupportedPlatform ErrorKind = "unsupported_platform"
)

// Kinds returns all taxonomy members in a stable order.
func Kinds() []ErrorKind {
	return []ErrorKind{
		KindSyntaxError,
		KindExecutionError,
		KindTimeout,
		KindNotFound,
		KindPermissionDenied,
		KindUnsupportedPlatform,
	}
}

// Well-known detail keys. Values vary by kind; absent keys are legal.
const (
	DetailExitCode  = "exit_code"
	DetailErrorCode = "error_code"
	DetailStderr    = "stderr"
	DetailApp       = "app"
	DetailTimeout   = "timeout"
	DetailPlatform  = "platform"
)

// defaultMessages keep the non-empty-message invariant when a constructor
// is handed blank diagnostic text (e.g. a killed process with silent stderr).
var defaultMessages = map[ErrorKind]string{
	KindSyntaxError:         "script failed to compile",
	KindExecutionError:      "script execution failed",
	KindTimeout:             "script did not finish before the timeout",
	KindNotFound:            "target application could not be found",
	KindPermissionDenied:    "automation access is not allowed",
	KindUnsupportedPlatform: "osascript is not available on this platform",
}

// ScriptError is an immutable classified failure from an osascript
// invocation: a kind, a human-readable message, and an open string-keyed
// detail map. Construct via the New*Error functions or classify.Classify;
// the fields are unexported so a constructed value cannot be mutated.
type ScriptError struct {
	kind    ErrorKind
	message string
	details map[string]string
}

func newScriptError(kind ErrorKind, message string, details map[string]string) *ScriptError {
	if message == "" {
		message = defaultMessages[kind]
	}
	copied := make(map[string]string, len(details))
	for k, v := range details {
		copied[k] = v
	}
	return &ScriptError{kind: kind, message: message, details: copied}
}

// NewSyntaxError reports a script that osascript refused to compile.
func NewSyntaxError(message string, details map[string]string) *ScriptError {
	return newScriptError(KindSyntaxError, message, details)
}

// NewExecutionError reports a script that compiled but failed while running.
func NewExecutionError(message string, details map[string]string) *ScriptError {
	return newScriptError(KindExecutionError, message, details)
}

// NewTimeoutError reports an invocation that exceeded its deadline. This is
// the only kind the retry orchestrator treats as retryable.
func NewTimeoutError(message string, details map[string]string) *ScriptError {
	return newScriptError(KindTimeout, message, details)
}

// NewNotFoundError reports a target application missing from the system.
func NewNotFoundError(message string, details map[string]string) *ScriptError {
	return newScriptError(KindNotFound, message, details)
}

// NewPermissionDeniedError reports denied automation access.
func NewPermissionDeniedError(message string, details map[string]string) *ScriptError {
	return newScriptError(KindPermissionDenied, message, details)
}

// NewUnsupportedPlatformError reports a host that cannot run osascript.
func NewUnsupportedPlatformError(message string, details map[string]string) *ScriptError {
	return newScriptError(KindUnsupportedPlatform, message, details)
}

// Error returns the human-readable message. Never empty.
func (e *ScriptError) Error() string { return e.message }

// ErrorKind returns the taxonomy member this failure was classified as.
func (e *ScriptError) ErrorKind() ErrorKind { return e.kind }

// Detail looks up one context key.
func (e *ScriptError) Detail(key string) (string, bool) {
	v, ok := e.details[key]
	return v, ok
}

// Details returns a copy of the context map, so callers cannot mutate the
// error after construction.
func (e *ScriptError) Details() map[string]string {
	copied := make(map[string]string, len(e.details))
	for k, v := range e.details {
		copied[k] = v
	}
	return copied
}

// WithDetail returns a new error with one extra detail key; the receiver is
// unchanged. Used by the invocation boundary to attach context the
// classifier cannot know, like the configured timeout.
func (e *ScriptError) WithDetail(key, value string) *ScriptError {
	details := e.Details()
	details[key] = value
	return newScriptError(e.kind, e.message, details)
}
