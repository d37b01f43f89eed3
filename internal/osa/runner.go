// Package osa is the invocation boundary: it spawns the osascript CLI,
// captures output, exit status, and duration, and turns failures into
// classified ScriptError values. It emits exec.start, then exec.stop on
// success or exec.exception on failure, mirroring the retry.* event pairing.
package osa

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dotcommander/osapilot/internal/classify"
	"github.com/dotcommander/osapilot/internal/models"
	"github.com/dotcommander/osapilot/internal/telemetry"
)

const (
	osascriptCommand = "osascript"

	// maxStderrBytes caps captured diagnostics. osascript errors are short;
	// anything longer is a runaway script writing to stderr.
	maxStderrBytes = 4096

	// scriptPreviewLen bounds the script excerpt attached to telemetry.
	scriptPreviewLen = 120
)

// Result is the successful outcome of one invocation.
type Result struct {
	Output   string        `json:"output"`
	Duration time.Duration `json:"duration"`
}

// Runner executes AppleScript through osascript. Each Run call is
// independent; a Runner holds no mutable state and is safe for concurrent
// use. Construct with New.
type Runner struct {
	command string
	args    func(script string) []string
	timeout time.Duration
	emitter telemetry.Emitter
	goos    string
}

// New returns a Runner bound to osascript with a per-invocation timeout
// (zero disables the deadline). Fails fast with a classified error when the
// platform cannot run osascript at all or the binary is missing from PATH.
func New(timeout time.Duration, em telemetry.Emitter) (*Runner, error) {
	r := newRunner(osascriptCommand, func(script string) []string {
		return []string{"-e", script}
	}, timeout, em, runtime.GOOS)

	if r.goos != "darwin" {
		return nil, models.NewUnsupportedPlatformError(
			fmt.Sprintf("osascript is not available on %s", r.goos),
			map[string]string{models.DetailPlatform: r.goos},
		)
	}
	if _, err := exec.LookPath(r.command); err != nil {
		return nil, models.NewNotFoundError(
			fmt.Sprintf("%s could not be found in PATH", r.command),
			map[string]string{models.DetailApp: r.command},
		)
	}
	return r, nil
}

// newRunner is the test seam: tests substitute a shell for osascript.
func newRunner(command string, args func(string) []string, timeout time.Duration, em telemetry.Emitter, goos string) *Runner {
	if em == nil {
		em = telemetry.Nop()
	}
	return &Runner{command: command, args: args, timeout: timeout, emitter: em, goos: goos}
}

// Run executes one script and returns its trimmed stdout. Every failure is
// returned as *models.ScriptError so callers can always inspect the kind;
// Run itself never wraps or reclassifies.
func (r *Runner) Run(ctx context.Context, script string) (Result, error) {
	runID := uuid.NewString()

	r.emitter.Emit(telemetry.Event{
		Name:         telemetry.ExecStart,
		Measurements: map[string]float64{"script_length": float64(len(script))},
		Metadata: map[string]string{
			"run_id":         runID,
			"command":        r.command,
			"script_preview": preview(script),
			"timeout":        r.timeout.String(),
		},
	})

	if r.goos != "darwin" {
		scriptErr := models.NewUnsupportedPlatformError(
			fmt.Sprintf("osascript is not available on %s", r.goos),
			map[string]string{models.DetailPlatform: r.goos},
		)
		r.emitException(runID, 0, scriptErr)
		return Result{}, scriptErr
	}

	runCtx := ctx
	cancel := func() {}
	if r.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
	}
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.command, r.args(script)...) //nolint:gosec // G204: fixed binary, script is the payload by design of this tool
	var stdout bytes.Buffer
	stderr := &limitedWriter{maxBytes: maxStderrBytes}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	if runErr != nil {
		text := stderr.String()
		if text == "" {
			// Spawn failures and killed processes can leave stderr empty;
			// classify on the exec error text instead.
			text = runErr.Error()
		}
		scriptErr := classify.Classify(text, r.exitStatus(runCtx, runErr))
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) && r.timeout > 0 {
			scriptErr = scriptErr.WithDetail(models.DetailTimeout, strconv.Itoa(int(r.timeout.Seconds())))
		}
		r.emitException(runID, duration, scriptErr)
		return Result{}, scriptErr
	}

	out := strings.TrimSpace(stdout.String())
	r.emitter.Emit(telemetry.Event{
		Name: telemetry.ExecStop,
		Measurements: map[string]float64{
			"duration":      duration.Seconds(),
			"output_length": float64(len(out)),
		},
		Metadata: map[string]string{
			"run_id":      runID,
			"result_type": "text",
		},
	})
	return Result{Output: out, Duration: duration}, nil
}

// exitStatus extracts the process exit code, mapping a context deadline to
// the timeout(1) convention the classifier recognizes. -1 means the process
// never produced a status (spawn failure or signal).
func (r *Runner) exitStatus(ctx context.Context, runErr error) int {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return classify.TimeoutExitCode
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func (r *Runner) emitException(runID string, duration time.Duration, err error) {
	r.emitter.Emit(telemetry.Event{
		Name:         telemetry.ExecException,
		Measurements: map[string]float64{"duration": duration.Seconds()},
		Metadata: map[string]string{
			"run_id": runID,
			"error":  err.Error(),
		},
	})
}

// preview returns a single-line excerpt of the script for telemetry metadata.
func preview(script string) string {
	flat := strings.Join(strings.Fields(script), " ")
	if len(flat) > scriptPreviewLen {
		return flat[:scriptPreviewLen] + "..."
	}
	return flat
}

// limitedWriter caps writes at maxBytes, silently discarding overflow, so a
// runaway script cannot balloon memory through stderr.
type limitedWriter struct {
	buf      bytes.Buffer
	maxBytes int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	originalLen := len(p)
	remaining := w.maxBytes - w.buf.Len()
	if remaining <= 0 {
		return originalLen, nil // discard but report success
	}
	if len(p) > remaining {
		p = p[:remaining]
	}
	w.buf.Write(p)
	return originalLen, nil // always report original len to avoid short write errors
}

// String returns the captured text, flagging truncation.
func (w *limitedWriter) String() string {
	s := w.buf.String()
	if w.buf.Len() >= w.maxBytes {
		s += " (truncated)"
	}
	return s
}
