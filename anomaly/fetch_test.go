package anomaly

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anomalies", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","user_id":"user_001","login_time":"2025-06-10T12:00:00Z","score":0.85,"top_feature":"unusual_location","message":"Anomaly detected"},
			{"id":"2","user_id":"user_002","login_time":"2025-06-10T11:00:00Z","score":0.35,"top_feature":"normal_pattern","message":"Normal login","is_anomaly":false}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	records, err := client.Fetch(context.Background())
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "user_001", records[0].UserID)
	assert.Nil(t, records[0].IsAnomaly)
	if assert.NotNil(t, records[1].IsAnomaly) {
		assert.False(t, *records[1].IsAnomaly)
	}
}

func TestClientFetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Fetch(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClientFetchMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchOrFallbackSubstitutesDemoData(t *testing.T) {
	// Point at a closed server to force a network error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	now := time.Now()
	client := NewClient(srv.URL)
	records, degraded, err := client.FetchOrFallback(context.Background(), now)
	assert.Error(t, err)
	assert.True(t, degraded)
	assert.Len(t, records, 2)
	assert.Equal(t, 0.85, records[0].Score)
	assert.Equal(t, 0.35, records[1].Score)
}

func TestFetchOrFallbackPassesThroughSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	records, degraded, err := client.FetchOrFallback(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.False(t, degraded)
	assert.Len(t, records, 0)
}

func TestFallbackRecordsAreWellFormed(t *testing.T) {
	now := time.Now()
	records := FallbackRecords(now)
	assert.Len(t, records, 2)
	for _, r := range records {
		_, ok := r.Time()
		assert.True(t, ok, "fallback timestamps must parse")
		assert.NotEmpty(t, r.Location)
	}
}
