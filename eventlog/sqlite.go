package eventlog

import (
	"context"
	"database/sql"
	"time"

	"github.com/shelfwatch/shelfwatch/models"
)

// SQLiteStore is the local event log used when no spreadsheet backend
// is configured, so manager views keep working in development and
// single-host deployments.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store over an initialized database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Append inserts a new event row.
func (s *SQLiteStore) Append(ctx context.Context, event *models.AlertEvent) error {
	query := `
		INSERT INTO alert_events (timestamp, item, status, location, ip_address, user_agent)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		event.Timestamp.UTC().Format(time.RFC3339),
		event.Item,
		event.Status,
		event.Location,
		event.IP,
		event.UserAgent,
	)

	return err
}

// Recent returns up to limit events, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]models.AlertEvent, error) {
	query := `
		SELECT timestamp, item, status, location, ip_address, user_agent
		FROM alert_events
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.AlertEvent
	for rows.Next() {
		var event models.AlertEvent
		var ts string
		if err := rows.Scan(&ts, &event.Item, &event.Status, &event.Location, &event.IP, &event.UserAgent); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			event.Timestamp = t
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
