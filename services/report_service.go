package services

import (
	"context"
	"strings"
	"time"

	"github.com/shelfwatch/shelfwatch/display"
	"github.com/shelfwatch/shelfwatch/eventlog"
	"github.com/shelfwatch/shelfwatch/models"
)

// Range selects which slice of the event log a manager view shows.
type Range string

const (
	// RangeToday filters to the current UTC calendar day.
	RangeToday Range = "today"
	// RangeAll shows the whole recent fetch window.
	RangeAll Range = "all"
)

// ParseRange maps the range query parameter to a Range, defaulting to
// today.
func ParseRange(s string) Range {
	if s == string(RangeAll) {
		return RangeAll
	}
	return RangeToday
}

// csvHeader is the manager export header row.
var csvHeader = []string{"Time", "Item", "Status", "Location", "IP", "User Agent"}

// ReportService produces the manager-facing views over the event log.
type ReportService interface {
	// Events returns logged events for the range, newest first.
	Events(ctx context.Context, rng Range) ([]models.AlertEvent, error)

	// Checklist returns today's low/out events deduplicated by
	// (item, location), keeping the newest entry per pair.
	Checklist(ctx context.Context) ([]models.AlertEvent, error)

	// CSV renders the range as a CSV document.
	CSV(ctx context.Context, rng Range) ([]byte, error)
}

type reportService struct {
	store eventlog.Store
	limit int
	now   nowFunc
}

// NewReportService creates the reporting service. limit caps how many
// rows are fetched from the log per view.
func NewReportService(store eventlog.Store, limit int) ReportService {
	return &reportService{
		store: store,
		limit: limit,
		now:   time.Now,
	}
}

func (s *reportService) Events(ctx context.Context, rng Range) ([]models.AlertEvent, error) {
	events, err := s.store.Recent(ctx, s.limit)
	if err != nil {
		return nil, err
	}

	if rng == RangeAll {
		return events, nil
	}

	today := s.now()
	filtered := make([]models.AlertEvent, 0, len(events))
	for _, event := range events {
		if event.SameDayUTC(today) {
			filtered = append(filtered, event)
		}
	}
	return filtered, nil
}

func (s *reportService) Checklist(ctx context.Context) ([]models.AlertEvent, error) {
	events, err := s.Events(ctx, RangeToday)
	if err != nil {
		return nil, err
	}

	// Events come newest first, so the first match per pair wins.
	seen := make(map[string]bool)
	var checklist []models.AlertEvent
	for _, event := range events {
		if display.Classify(event.Status) == display.SeverityNormal {
			continue
		}
		key := event.Item + "|" + event.Location
		if seen[key] {
			continue
		}
		seen[key] = true
		checklist = append(checklist, event)
	}

	return checklist, nil
}

func (s *reportService) CSV(ctx context.Context, rng Range) ([]byte, error) {
	events, err := s.Events(ctx, rng)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteString("\r\n")
	for _, event := range events {
		writeCSVRow(&b, []string{
			models.FormatTimestamp(event.Timestamp),
			event.Item,
			event.Status,
			event.Location,
			event.IP,
			event.UserAgent,
		})
	}

	return []byte(b.String()), nil
}

// writeCSVRow writes one CRLF-terminated row with every field quoted
// and inner quotes doubled. encoding/csv only quotes fields that need
// it, so the fixed export format is written by hand.
func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}
