package anomaly

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches anomaly records from the upstream detection API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given API base URL
// (e.g. http://localhost:8000).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves the full anomaly list from GET {baseURL}/anomalies.
// Non-2xx responses and malformed payloads are returned as errors.
func (c *Client) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/anomalies", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("anomaly API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode anomaly payload: %w", err)
	}
	return records, nil
}

// FetchOrFallback retrieves records, substituting the fixed demonstration
// dataset when the API is unreachable so downstream views never go blank.
// degraded reports whether the fallback was served; err carries the original
// failure for logging.
func (c *Client) FetchOrFallback(ctx context.Context, now time.Time) (records []Record, degraded bool, err error) {
	records, err = c.Fetch(ctx)
	if err != nil {
		return FallbackRecords(now), true, err
	}
	return records, false, nil
}

// FallbackRecords is the two-record demonstration dataset shown when the
// upstream API is unavailable.
func FallbackRecords(now time.Time) []Record {
	return []Record{
		{
			ID:         "1",
			UserID:     "user_001",
			LoginTime:  now.Format(time.RFC3339),
			IPAddress:  "192.168.1.100",
			Action:     "login",
			Location:   "Sao Paulo, BR",
			Device:     "Chrome/Windows",
			Score:      0.85,
			TopFeature: "unusual_location",
			Message:    "Anomaly detected",
		},
		{
			ID:         "2",
			UserID:     "user_002",
			LoginTime:  now.Add(-time.Hour).Format(time.RFC3339),
			IPAddress:  "10.0.0.50",
			Action:     "login",
			Location:   "Rio de Janeiro, BR",
			Device:     "Safari/iOS",
			Score:      0.35,
			TopFeature: "normal_pattern",
			Message:    "Normal login",
		},
	}
}
