package output

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/osapilot/internal/models"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	original := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = original }()

	fn()

	require.NoError(t, w.Close())

	b, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	return string(b)
}

func TestSuccessAndError(t *testing.T) {
	s := Success(map[string]string{"k": "v"})
	require.Equal(t, "v1", s.SchemaVersion)
	require.True(t, s.Success)
	require.NotNil(t, s.Data)
	require.Empty(t, s.Error)

	e := Error(errors.New("boom"))
	require.Equal(t, "v1", e.SchemaVersion)
	require.False(t, e.Success)
	require.Nil(t, e.Data)
	require.Equal(t, "boom", e.Error)
	require.Nil(t, e.Failure)
}

func TestScriptFailure_CarriesKindDetailsAndRemediation(t *testing.T) {
	scriptErr := models.NewTimeoutError("took too long", map[string]string{
		models.DetailTimeout:  "30",
		models.DetailExitCode: "124",
	})

	resp := ScriptFailure(scriptErr)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Failure)
	assert.Equal(t, "timeout", resp.Failure.Kind)
	assert.Equal(t, "took too long", resp.Failure.Message)
	assert.Equal(t, "30", resp.Failure.Details[models.DetailTimeout])
	assert.NotEmpty(t, resp.Failure.Remediation)
	assert.Contains(t, resp.Failure.Rendered, "took too long")
}

func TestPrintSuccess_EmitsValidJSON(t *testing.T) {
	out := captureStdout(t, func() {
		require.NoError(t, PrintSuccess(map[string]int{"n": 1}))
	})

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
}

func TestPrintScriptFailure_EmitsValidJSON(t *testing.T) {
	out := captureStdout(t, func() {
		require.NoError(t, PrintScriptFailure(models.NewNotFoundError("missing", map[string]string{models.DetailApp: "Foo"})))
	})

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Failure)
	assert.Equal(t, "not_found", resp.Failure.Kind)
	assert.Equal(t, "Foo", resp.Failure.Details[models.DetailApp])
}
