package eventlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/jwt"

	"github.com/shelfwatch/shelfwatch/models"
)

const (
	sheetsBaseURL   = "https://sheets.googleapis.com"
	sheetsScope     = "https://www.googleapis.com/auth/spreadsheets"
	googleTokenURL  = "https://oauth2.googleapis.com/token"
	sheetsEventCols = "A:F"
)

// SheetsConfig holds the spreadsheet identity and the service account
// used to reach it.
type SheetsConfig struct {
	SpreadsheetID       string
	SheetName           string
	ServiceAccountEmail string
	ServiceAccountKey   string
}

// SheetsStore persists events to a Google Sheets spreadsheet through its
// REST API, authenticated as a service account.
type SheetsStore struct {
	spreadsheetID string
	sheetName     string
	baseURL       string
	client        *http.Client
}

// NewSheetsStore creates a store for the given spreadsheet. The private
// key may carry literal "\n" sequences (as it does when passed through a
// single-line environment variable); they are converted back to
// newlines before use.
func NewSheetsStore(cfg SheetsConfig) *SheetsStore {
	tokenConf := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.ServiceAccountKey, `\n`, "\n")),
		Scopes:     []string{sheetsScope},
		TokenURL:   googleTokenURL,
	}

	sheetName := cfg.SheetName
	if sheetName == "" {
		sheetName = "Alerts"
	}

	return &SheetsStore{
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
		baseURL:       sheetsBaseURL,
		client:        tokenConf.Client(context.Background()),
	}
}

type appendRequest struct {
	Values [][]string `json:"values"`
}

type valuesResponse struct {
	Values [][]string `json:"values"`
}

// Append writes one event as a row at the bottom of the sheet.
func (s *SheetsStore) Append(ctx context.Context, event *models.AlertEvent) error {
	endpoint := fmt.Sprintf(
		"%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		s.baseURL,
		url.PathEscape(s.spreadsheetID),
		url.PathEscape(s.sheetName),
	)

	body, err := json.Marshal(appendRequest{Values: [][]string{{
		models.FormatTimestamp(event.Timestamp),
		event.Item,
		event.Status,
		event.Location,
		event.IP,
		event.UserAgent,
	}}})
	if err != nil {
		return fmt.Errorf("marshal append request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sheets API error: %s", resp.Status)
	}

	return nil
}

// Recent reads the event columns and returns up to limit rows, newest
// first. Rows whose first cell is not a timestamp (the header row,
// hand-edited junk) are skipped.
func (s *SheetsStore) Recent(ctx context.Context, limit int) ([]models.AlertEvent, error) {
	endpoint := fmt.Sprintf(
		"%s/v4/spreadsheets/%s/values/%s",
		s.baseURL,
		url.PathEscape(s.spreadsheetID),
		url.PathEscape(s.sheetName+"!"+sheetsEventCols),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build read request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("sheets API error: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sheet response: %w", err)
	}

	var parsed valuesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode sheet response: %w", err)
	}

	var events []models.AlertEvent
	for _, row := range parsed.Values {
		event, ok := rowToEvent(row)
		if !ok {
			continue
		}
		events = append(events, event)
	}

	// The sheet appends at the bottom; newest rows come last.
	reverse(events)
	if len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}

func rowToEvent(row []string) (models.AlertEvent, bool) {
	var event models.AlertEvent
	if len(row) == 0 {
		return event, false
	}

	t, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return event, false
	}

	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	event.Timestamp = t
	event.Item = cell(1)
	event.Status = cell(2)
	event.Location = cell(3)
	event.IP = cell(4)
	event.UserAgent = cell(5)
	return event, true
}

func reverse(events []models.AlertEvent) {
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
}
