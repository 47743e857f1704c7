package anomaly

import "time"

// Summarize computes the dashboard summary over records. The caller decides
// which record set is authoritative (pre- or post-filter); Summarize itself
// is a pure function of its input.
func Summarize(records []Record, now time.Time, thresholds RiskThresholds) Stats {
	stats := Stats{Total: len(records)}
	dayAgo := now.Add(-24 * time.Hour)
	locations := make(map[string]struct{})

	for _, r := range records {
		if ts, ok := r.Time(); ok && !ts.Before(dayAgo) {
			stats.Recent++
		}
		if r.Score > thresholds.High {
			stats.HighRisk++
		}
		// Distinctness is case-sensitive; absent locations are excluded.
		if r.Location != "" {
			locations[r.Location] = struct{}{}
		}
	}
	stats.Locations = len(locations)
	return stats
}
