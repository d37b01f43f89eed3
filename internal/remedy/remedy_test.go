package remedy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/osapilot/internal/classify"
	"github.com/dotcommander/osapilot/internal/models"
)

func TestSteps_EveryKindHasGuidance(t *testing.T) {
	for _, kind := range models.Kinds() {
		var err *models.ScriptError
		switch kind {
		case models.KindSyntaxError:
			err = models.NewSyntaxError("bad token", nil)
		case models.KindExecutionError:
			err = models.NewExecutionError("app error", nil)
		case models.KindTimeout:
			err = models.NewTimeoutError("slow", nil)
		case models.KindNotFound:
			err = models.NewNotFoundError("missing", nil)
		case models.KindPermissionDenied:
			err = models.NewPermissionDeniedError("denied", nil)
		case models.KindUnsupportedPlatform:
			err = models.NewUnsupportedPlatformError("linux", nil)
		}
		assert.NotEmpty(t, Steps(err), "kind %s", kind)
	}
}

func TestSteps_NotFoundNamesTheApp(t *testing.T) {
	withApp := models.NewNotFoundError("missing", map[string]string{models.DetailApp: "Foo"})
	steps := Steps(withApp)
	require.Len(t, steps, 2)
	assert.Contains(t, steps[1], `"Foo"`)

	withoutApp := models.NewNotFoundError("missing", nil)
	assert.Len(t, Steps(withoutApp), 1, "app-specific line is skipped when the detail is absent")
}

func TestSteps_TimeoutSuggestsDoubling(t *testing.T) {
	withTimeout := models.NewTimeoutError("slow", map[string]string{models.DetailTimeout: "30"})
	steps := Steps(withTimeout)
	require.Len(t, steps, 2)
	assert.Contains(t, steps[1], "30s")
	assert.Contains(t, steps[1], "60s")

	withoutTimeout := models.NewTimeoutError("slow", nil)
	assert.Len(t, Steps(withoutTimeout), 1)
}

func TestSteps_MalformedTimeoutDetailIsSkipped(t *testing.T) {
	err := models.NewTimeoutError("slow", map[string]string{models.DetailTimeout: "soon"})
	assert.Len(t, Steps(err), 1)

	err = models.NewTimeoutError("slow", map[string]string{models.DetailTimeout: "-5"})
	assert.Len(t, Steps(err), 1)
}

func TestSteps_NilErrorReturnsNil(t *testing.T) {
	assert.Nil(t, Steps(nil))
}

// Remediation lookup over classifier output must never panic, whatever the
// diagnostic text looked like.
func TestSteps_TotalOverClassifierOutput(t *testing.T) {
	inputs := []struct {
		text string
		code int
	}{
		{"", 0},
		{"", 124},
		{"syntax error:", 1},
		{"not allowed", 1},
		{`the application "日本語" could not be found`, 1},
		{"line one\nline two\nline three", 2},
		{strings.Repeat("x", 10_000), 1},
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_ = Steps(classify.Classify(in.text, in.code))
		}, "text %q", in.text)
	}
}

func TestRender_HeadlineThenStepsPerLine(t *testing.T) {
	err := models.NewPermissionDeniedError("Not authorized to send Apple events", nil)
	rendered := Render(err)

	lines := strings.Split(rendered, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "Automation access denied")
	assert.Contains(t, lines[0], "Not authorized to send Apple events")
	assert.Equal(t, Steps(err), lines[1:])
}

func TestRender_NilErrorIsEmpty(t *testing.T) {
	assert.Empty(t, Render(nil))
}
