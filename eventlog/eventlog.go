// Package eventlog persists alert events to an append-only tabular
// store. The store is the system of record; writes are best-effort
// telemetry from the caller's point of view and callers log-and-continue
// on failure rather than failing the staff-facing flow.
package eventlog

import (
	"context"

	"github.com/shelfwatch/shelfwatch/models"
)

// Store appends and reads alert events.
type Store interface {
	// Append writes one event row.
	Append(ctx context.Context, event *models.AlertEvent) error

	// Recent returns up to limit most-recently-appended events,
	// newest first.
	Recent(ctx context.Context, limit int) ([]models.AlertEvent, error)
}

// Disabled is a no-op store used when no backend is configured. Appends
// are dropped and reads return nothing; the degradation is announced
// once at startup, not per call.
type Disabled struct{}

func (Disabled) Append(ctx context.Context, event *models.AlertEvent) error {
	return nil
}

func (Disabled) Recent(ctx context.Context, limit int) ([]models.AlertEvent, error) {
	return nil, nil
}
