// Package push sends notifications to subscribed devices through the
// OneSignal REST API. Delivery is best-effort: callers treat a failed
// send as a logged degradation, never as a fatal error for the
// staff-facing flow.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultBaseURL = "https://onesignal.com/api/v1"

// Client dispatches a push notification. Implementations make exactly
// one attempt per call; there are no retries.
type Client interface {
	Send(ctx context.Context, title, body, targetURL string) error
}

// OneSignalClient talks to the OneSignal notifications endpoint.
type OneSignalClient struct {
	appID   string
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOneSignalClient creates a client for the given OneSignal app.
func NewOneSignalClient(appID, apiKey string) *OneSignalClient {
	return &OneSignalClient{
		appID:   appID,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
	}
}

// notificationRequest is the payload for the OneSignal create
// notification API.
type notificationRequest struct {
	AppID            string            `json:"app_id"`
	IncludedSegments []string          `json:"included_segments"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	URL              string            `json:"url,omitempty"`
}

// Send pushes one notification to all subscribed devices. A non-2xx
// response from the API is returned as an error.
func (c *OneSignalClient) Send(ctx context.Context, title, body, targetURL string) error {
	reqBody := notificationRequest{
		AppID:            c.appID,
		IncludedSegments: []string{"Subscribed Users"},
		Headings:         map[string]string{"en": title},
		Contents:         map[string]string{"en": body},
		URL:              targetURL,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notifications", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push API error: %s", resp.Status)
	}

	return nil
}
