package anomaly

import (
	"sort"
	"time"
)

// Report is the ranged analytics view: per-location and per-device tallies,
// the low/medium/high risk distribution and the average score of all records
// inside the selected time range.
type Report struct {
	Range            string         `json:"range"`
	Total            int            `json:"total"`
	Locations        int            `json:"locations"`
	TopLocation      string         `json:"top_location"`
	TopLocationCount int            `json:"top_location_count"`
	LocationCounts   map[string]int `json:"location_counts"`
	DeviceCounts     map[string]int `json:"device_counts"`
	RiskDistribution RiskCounts     `json:"risk_distribution"`
	AverageScore     float64        `json:"average_score"`
}

// RiskCounts tallies records per risk bucket.
type RiskCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// rangeDurations maps the analytics page's range selector to durations.
var rangeDurations = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

// Analyze builds the ranged report. Unknown range values fall back to 7d.
// Records with malformed timestamps are excluded from the range.
func Analyze(records []Record, now time.Time, rangeKey string, thresholds RiskThresholds) Report {
	dur, ok := rangeDurations[rangeKey]
	if !ok {
		rangeKey, dur = "7d", rangeDurations["7d"]
	}
	cutoff := now.Add(-dur)

	report := Report{
		Range:          rangeKey,
		TopLocation:    "N/A",
		LocationCounts: make(map[string]int),
		DeviceCounts:   make(map[string]int),
	}

	var scoreSum float64
	for _, r := range records {
		ts, ok := r.Time()
		if !ok || !ts.After(cutoff) {
			continue
		}
		report.Total++
		scoreSum += r.Score
		if r.Location != "" {
			report.LocationCounts[r.Location]++
		}
		if r.Device != "" {
			report.DeviceCounts[r.Device]++
		}
		switch thresholds.Classify(r.Score) {
		case RiskHigh:
			report.RiskDistribution.High++
		case RiskMedium:
			report.RiskDistribution.Medium++
		default:
			report.RiskDistribution.Low++
		}
	}

	report.Locations = len(report.LocationCounts)
	if report.Total > 0 {
		report.AverageScore = scoreSum / float64(report.Total)
	}

	// Deterministic top location: highest count, ties broken alphabetically.
	locations := make([]string, 0, len(report.LocationCounts))
	for loc := range report.LocationCounts {
		locations = append(locations, loc)
	}
	sort.Strings(locations)
	for _, loc := range locations {
		if report.LocationCounts[loc] > report.TopLocationCount {
			report.TopLocation = loc
			report.TopLocationCount = report.LocationCounts[loc]
		}
	}
	return report
}
