// Package telemetry defines the synchronous event contract shared by the
// retry orchestrator and the osascript invocation boundary. Events are
// delivered on the emitting call stack, so observers see one total order
// per retry loop or invocation; ordering across concurrent loops is not
// defined and consumers correlate by the run_id metadata instead.
package telemetry

import "log/slog"

// Retry lifecycle event names. Per with_retry call the order is always:
// start, then attempt once per invocation, sleep strictly between two
// attempts, and exactly one of stop or error.
const (
	RetryStart   = "retry.start"
	RetryAttempt = "retry.attempt"
	RetrySleep   = "retry.sleep"
	RetryStop    = "retry.stop"
	RetryError   = "retry.error"
)

// Invocation boundary event names: start, then stop on success or
// exception on failure.
const (
	ExecStart     = "exec.start"
	ExecStop      = "exec.stop"
	ExecException = "exec.exception"
)

// Event is a named point-in-time signal carrying numeric measurements and
// string metadata. Emitters must treat both maps as read-only.
type Event struct {
	Name         string
	Measurements map[string]float64
	Metadata     map[string]string
}

// Emitter receives events synchronously. Implementations must be safe for
// concurrent use; independent retry loops may emit from separate goroutines.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(Event)

// Emit calls f.
func (f EmitterFunc) Emit(ev Event) { f(ev) }

// Nop returns an emitter that discards everything.
func Nop() Emitter {
	return EmitterFunc(func(Event) {})
}

// Multi fans each event out to every emitter, in argument order.
func Multi(emitters ...Emitter) Emitter {
	return EmitterFunc(func(ev Event) {
		for _, em := range emitters {
			em.Emit(ev)
		}
	})
}

// Slog returns an emitter that logs each event at debug level with the
// measurements and metadata flattened into attributes.
func Slog(logger *slog.Logger) Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return EmitterFunc(func(ev Event) {
		attrs := make([]any, 0, 2*(len(ev.Measurements)+len(ev.Metadata)))
		for k, v := range ev.Measurements {
			attrs = append(attrs, k, v)
		}
		for k, v := range ev.Metadata {
			attrs = append(attrs, k, v)
		}
		logger.Debug(ev.Name, attrs...)
	})
}
