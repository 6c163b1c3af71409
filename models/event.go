package models

import "time"

// AlertEvent represents a single reported inventory condition.
// Rows are append-only: the timestamp is assigned server-side at write
// time and events are never updated or deleted.
type AlertEvent struct {
	Timestamp time.Time
	Item      string
	Status    string
	Location  string
	IP        string
	UserAgent string
}

// SameDayUTC reports whether the event was recorded on the given UTC
// calendar day.
func (e AlertEvent) SameDayUTC(day time.Time) bool {
	y1, m1, d1 := e.Timestamp.UTC().Date()
	y2, m2, d2 := day.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// FormatTimestamp formats an event timestamp for display and CSV output.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
