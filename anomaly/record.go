package anomaly

import (
	"strings"
	"time"
)

// Record represents one detected security event as returned by the upstream
// anomaly API. Optional fields are empty strings when absent; IsAnomaly is a
// tri-state flag independent of the score-derived risk bucket, and the two
// may disagree. Records without an ID are identified by (UserID, LoginTime).
type Record struct {
	ID         string  `json:"id,omitempty"`
	UserID     string  `json:"user_id"`
	LoginTime  string  `json:"login_time"`
	IPAddress  string  `json:"ip_address,omitempty"`
	Action     string  `json:"action,omitempty"`
	Location   string  `json:"location,omitempty"`
	Device     string  `json:"device,omitempty"`
	Score      float64 `json:"score"`
	TopFeature string  `json:"top_feature"`
	Message    string  `json:"message"`
	IsAnomaly  *bool   `json:"is_anomaly,omitempty"`
}

// Time parses the record's login time. ok is false when the timestamp is
// missing or malformed; callers treat such records as non-matching for date
// filters and lowest-order for sorting.
func (r Record) Time() (time.Time, bool) {
	return parseTimestamp(r.LoginTime)
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilterSpec narrows a record list. Zero-valued fields are no-ops.
type FilterSpec struct {
	UserID    string
	Location  string
	StartDate string
	EndDate   string
	Status    string // "anomaly", "success" or "all"
}

// Stats is the derived dashboard summary. It is recomputed on every data
// change and never persisted.
type Stats struct {
	Total     int `json:"total"`
	Recent    int `json:"recent"`
	HighRisk  int `json:"high_risk"`
	Locations int `json:"locations"`
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
