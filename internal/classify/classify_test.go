package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/osapilot/internal/models"
)

func TestClassify_SyntaxError(t *testing.T) {
	err := Classify(`syntax error: Expected end of line but found identifier. (-2741)`, 1)
	require.Equal(t, models.KindSyntaxError, err.ErrorKind())
	assert.Equal(t, "Expected end of line but found identifier.", err.Error())

	code, ok := err.Detail(models.DetailErrorCode)
	require.True(t, ok)
	assert.Equal(t, "-2741", code)
}

func TestClassify_SyntaxErrorPrefixAlwaysWins(t *testing.T) {
	cases := []string{
		"syntax error: unexpected token",
		"syntax error: A identifier can't go after this identifier. (-2740)",
		"syntax error:",
	}
	for _, text := range cases {
		err := Classify(text, 1)
		assert.Equal(t, models.KindSyntaxError, err.ErrorKind(), "text: %q", text)
		assert.NotEmpty(t, err.Error())
	}
}

func TestClassify_ExitCode124IsAlwaysTimeout(t *testing.T) {
	cases := []string{
		"",
		"signal: killed",
		`syntax error: Expected end of line. (-2741)`,
		"not allowed to send Apple events",
	}
	for _, text := range cases {
		err := Classify(text, 124)
		assert.Equal(t, models.KindTimeout, err.ErrorKind(), "text: %q", text)
	}
}

func TestClassify_TimeoutSubstring(t *testing.T) {
	err := Classify("execution error: operation timeout while talking to Finder", 1)
	require.Equal(t, models.KindTimeout, err.ErrorKind())
}

func TestClassify_PermissionDenied(t *testing.T) {
	cases := []string{
		"execution error: Not authorized to send Apple events to System Events. (-1743)",
		"osascript is not allowed assistive access",
	}
	for _, text := range cases {
		err := Classify(text, 1)
		assert.Equal(t, models.KindPermissionDenied, err.ErrorKind(), "text: %q", text)
	}
}

// Permission matching takes priority over not_found and execution_error even
// when the same text would match those rules too.
func TestClassify_PermissionBeatsNotFound(t *testing.T) {
	text := `execution error: Not allowed: the application "Notes" could not be found. (-1743)`
	err := Classify(text, 1)
	require.Equal(t, models.KindPermissionDenied, err.ErrorKind())
}

func TestClassify_NotFoundWithAppAndCode(t *testing.T) {
	err := Classify(`execution error: The application "Foo" could not be found. (-1728)`, 1)
	require.Equal(t, models.KindNotFound, err.ErrorKind())

	app, ok := err.Detail(models.DetailApp)
	require.True(t, ok)
	assert.Equal(t, "Foo", app)

	code, ok := err.Detail(models.DetailErrorCode)
	require.True(t, ok)
	assert.Equal(t, "-1728", code)

	assert.Equal(t, `The application "Foo" could not be found.`, err.Error())
}

func TestClassify_NotFoundByAppPatternAlone(t *testing.T) {
	err := Classify(`the application "Safari" is not running`, 1)
	require.Equal(t, models.KindNotFound, err.ErrorKind())

	app, ok := err.Detail(models.DetailApp)
	require.True(t, ok)
	assert.Equal(t, "Safari", app)
}

func TestClassify_ExecutionError(t *testing.T) {
	err := Classify(`execution error: Finder got an error: AppleEvent timed out.. (-1712)`, 1)
	// "timed out" does not contain "timeout"; this classifies as execution_error.
	require.Equal(t, models.KindExecutionError, err.ErrorKind())
	assert.Equal(t, "Finder got an error: AppleEvent timed out..", err.Error())

	code, ok := err.Detail(models.DetailErrorCode)
	require.True(t, ok)
	assert.Equal(t, "-1712", code)
}

func TestClassify_FallbackUnknown(t *testing.T) {
	err := Classify("something nobody has seen before", 7)
	require.Equal(t, models.KindExecutionError, err.ErrorKind())
	assert.Equal(t, "An unknown error occurred: something nobody has seen before", err.Error())
}

func TestClassify_EmptyTextDoesNotPanic(t *testing.T) {
	err := Classify("", 1)
	require.Equal(t, models.KindExecutionError, err.ErrorKind())
	assert.Equal(t, "An unknown error occurred: ", err.Error())

	exitCode, ok := err.Detail(models.DetailExitCode)
	require.True(t, ok)
	assert.Equal(t, "1", exitCode)
}

func TestClassify_AlwaysCarriesEvidence(t *testing.T) {
	err := Classify("  syntax error: bad token  ", 2)

	exitCode, ok := err.Detail(models.DetailExitCode)
	require.True(t, ok)
	assert.Equal(t, "2", exitCode)

	stderr, ok := err.Detail(models.DetailStderr)
	require.True(t, ok)
	assert.Equal(t, "syntax error: bad token", stderr, "stderr detail is the trimmed original")
}

func TestClassify_MultiLineExtractsPrefixedLine(t *testing.T) {
	text := "execution error: Notes got an error. (-10000)\nsome trailing stack context\nanother line"
	err := Classify(text, 1)
	require.Equal(t, models.KindExecutionError, err.ErrorKind())
	assert.Equal(t, "Notes got an error.", err.Error())
}

func TestClassify_LastErrorCodeWins(t *testing.T) {
	err := Classify(`execution error: item (3) of list got an error. (-1728)`, 1)
	code, ok := err.Detail(models.DetailErrorCode)
	require.True(t, ok)
	assert.Equal(t, "-1728", code)
}

func TestClassify_NonASCII(t *testing.T) {
	err := Classify("execution error: アプリケーションが応答しません (-609)", 1)
	require.Equal(t, models.KindExecutionError, err.ErrorKind())
	assert.Equal(t, "アプリケーションが応答しません", err.Error())
}

func TestClassify_NeverReturnsNilForAnyInput(t *testing.T) {
	inputs := []struct {
		text string
		code int
	}{
		{"", 0},
		{"\n\n\n", -1},
		{"(((((", 255},
		{"timeout", 0},
		{string([]byte{0xff, 0xfe}), 1},
	}
	for _, in := range inputs {
		err := Classify(in.text, in.code)
		require.NotNil(t, err)
		require.Contains(t, models.Kinds(), err.ErrorKind())
		require.NotEmpty(t, err.Error())
	}
}
