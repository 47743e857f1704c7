package anomaly

import "time"

// Bucket is one fixed-width hourly window of the 24-hour timeline chart.
type Bucket struct {
	Label    string    `json:"label"`
	Start    time.Time `json:"start"`
	Total    int       `json:"total"`
	HighRisk int       `json:"high_risk"`
}

// HourlyBuckets groups records into exactly 24 one-hour buckets ending at
// now's wall-clock hour, oldest first. A record lands in the bucket whose
// truncated hour matches its login time; records outside the window are
// silently dropped. The result depends only on records and now.
func HourlyBuckets(records []Record, now time.Time, thresholds RiskThresholds) []Bucket {
	start := now.Truncate(time.Hour).Add(-23 * time.Hour)

	buckets := make([]Bucket, 24)
	for i := range buckets {
		bucketStart := start.Add(time.Duration(i) * time.Hour)
		buckets[i] = Bucket{
			Label: bucketStart.Format("15:04"),
			Start: bucketStart,
		}
	}

	for _, r := range records {
		ts, ok := r.Time()
		if !ok {
			continue
		}
		idx := int(ts.Truncate(time.Hour).Sub(start) / time.Hour)
		if idx < 0 || idx >= len(buckets) {
			continue
		}
		buckets[idx].Total++
		if r.Score > thresholds.High {
			buckets[idx].HighRisk++
		}
	}
	return buckets
}
