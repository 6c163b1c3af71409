package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwatch/shelfwatch/models"
)

func reportServiceWith(events []models.AlertEvent, now time.Time) *reportService {
	svc := NewReportService(&fakeStore{events: events}, 200).(*reportService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestEventsTodayFiltersToCurrentUTCDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	events := []models.AlertEvent{
		{Timestamp: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), Item: "Milk"},
		{Timestamp: time.Date(2026, 3, 14, 0, 0, 1, 0, time.UTC), Item: "Eggs"},
		{Timestamp: time.Date(2026, 3, 13, 23, 59, 59, 0, time.UTC), Item: "Bread"},
	}

	svc := reportServiceWith(events, now)

	today, err := svc.Events(context.Background(), RangeToday)
	require.NoError(t, err)
	require.Len(t, today, 2)
	assert.Equal(t, "Milk", today[0].Item)
	assert.Equal(t, "Eggs", today[1].Item)

	all, err := svc.Events(context.Background(), RangeAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEventsRespectsFetchLimit(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	var events []models.AlertEvent
	for i := 0; i < 10; i++ {
		events = append(events, models.AlertEvent{Timestamp: now, Item: "Milk"})
	}

	svc := NewReportService(&fakeStore{events: events}, 5).(*reportService)
	svc.now = func() time.Time { return now }

	all, err := svc.Events(context.Background(), RangeAll)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestEventsPropagatesStoreError(t *testing.T) {
	svc := NewReportService(&fakeStore{recentErr: errors.New("unreachable")}, 200)

	_, err := svc.Events(context.Background(), RangeAll)
	assert.Error(t, err)
}

func TestChecklistFiltersAndDeduplicates(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	// Newest first, as the store returns them.
	events := []models.AlertEvent{
		{Timestamp: now.Add(-5 * time.Minute), Item: "Whole Milk", Status: "Out", Location: "Back Room"},
		{Timestamp: now.Add(-10 * time.Minute), Item: "Whole Milk", Status: "Running Low", Location: "Back Room"},
		{Timestamp: now.Add(-15 * time.Minute), Item: "Eggs", Status: "Plenty", Location: ""},
		{Timestamp: now.Add(-20 * time.Minute), Item: "Whole Milk", Status: "Running Low", Location: "Front"},
		{Timestamp: now.Add(-25 * time.Hour), Item: "Bread", Status: "Out", Location: ""},
	}

	svc := reportServiceWith(events, now)

	checklist, err := svc.Checklist(context.Background())
	require.NoError(t, err)
	require.Len(t, checklist, 2)

	// The duplicate (Whole Milk, Back Room) keeps the newest entry;
	// normal-severity and yesterday's rows are dropped.
	assert.Equal(t, "Whole Milk", checklist[0].Item)
	assert.Equal(t, "Back Room", checklist[0].Location)
	assert.Equal(t, "Out", checklist[0].Status)
	assert.Equal(t, "Front", checklist[1].Location)
}

func TestParseRange(t *testing.T) {
	assert.Equal(t, RangeAll, ParseRange("all"))
	assert.Equal(t, RangeToday, ParseRange("today"))
	assert.Equal(t, RangeToday, ParseRange(""))
	assert.Equal(t, RangeToday, ParseRange("bogus"))
}

func TestCSVQuotingAndLineEndings(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	events := []models.AlertEvent{
		{Timestamp: now, Item: `Bob"s Jam`, Status: "Low", Location: "Aisle 3", IP: "10.0.0.1", UserAgent: "agent"},
	}

	svc := reportServiceWith(events, now)

	out, err := svc.CSV(context.Background(), RangeAll)
	require.NoError(t, err)

	lines := strings.Split(string(out), "\r\n")
	require.Len(t, lines, 3) // header, row, trailing empty
	assert.Equal(t, `Time,Item,Status,Location,IP,User Agent`, lines[0])
	assert.Equal(t, `"2026-03-14T09:30:00Z","Bob""s Jam","Low","Aisle 3","10.0.0.1","agent"`, lines[1])
	assert.Empty(t, lines[2])
}

func TestCSVEmptyLogStillHasHeader(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	svc := reportServiceWith(nil, now)

	out, err := svc.CSV(context.Background(), RangeToday)
	require.NoError(t, err)
	assert.Equal(t, "Time,Item,Status,Location,IP,User Agent\r\n", string(out))
}
