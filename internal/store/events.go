package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dotcommander/osapilot/internal/telemetry"
)

// EventRow is one persisted telemetry event.
type EventRow struct {
	ID           int64              `json:"id"`
	RunID        string             `json:"run_id,omitempty"`
	Name         string             `json:"name"`
	Measurements map[string]float64 `json:"measurements,omitempty"`
	Metadata     map[string]string  `json:"metadata,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// AppendEvent persists one telemetry event, retrying transient lock errors.
// The run_id metadata key, when present, is also lifted into its own column
// so history can be filtered per invocation.
func AppendEvent(db *sql.DB, ev telemetry.Event) error {
	measJSON, err := json.Marshal(ev.Measurements)
	if err != nil {
		return fmt.Errorf("marshal measurements: %w", err)
	}
	metaJSON, err := json.Marshal(ev.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	runID := ev.Metadata["run_id"]

	return RetryWithBackoff(func() error {
		_, err := db.Exec(
			`INSERT INTO events (run_id, name, measurements, metadata) VALUES (?, ?, ?, ?)`,
			runID, ev.Name, string(measJSON), string(metaJSON),
		)
		return err
	})
}

// RecentEvents returns the newest events first, up to limit (default 50).
func RecentEvents(db *sql.DB, limit int) ([]EventRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT id, run_id, name, measurements, metadata, created_at
		 FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []EventRow
	for rows.Next() {
		var (
			row      EventRow
			measJSON string
			metaJSON string
			created  string
		)
		if err := rows.Scan(&row.ID, &row.RunID, &row.Name, &measJSON, &metaJSON, &created); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		if err := json.Unmarshal([]byte(measJSON), &row.Measurements); err != nil {
			return nil, fmt.Errorf("decode measurements for event %d: %w", row.ID, err)
		}
		if err := json.Unmarshal([]byte(metaJSON), &row.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata for event %d: %w", row.ID, err)
		}
		row.CreatedAt = parseDBTime(created)
		events = append(events, row)
	}
	return events, rows.Err()
}

// parseDBTime handles the datetime('now') format; a zero time is better
// than a failed history listing.
func parseDBTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// EventSink adapts the events table to telemetry.Emitter. Persistence
// failures are logged and dropped: history must never break an invocation.
type EventSink struct {
	DB *sql.DB
}

// Emit persists the event.
func (s *EventSink) Emit(ev telemetry.Event) {
	if err := AppendEvent(s.DB, ev); err != nil {
		slog.Warn("failed to persist telemetry event", "name", ev.Name, "error", err)
	}
}
