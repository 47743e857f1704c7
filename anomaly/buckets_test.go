package anomaly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHourlyBucketsOneRecordPerHour(t *testing.T) {
	now, _ := time.Parse(time.RFC3339, "2025-06-10T12:30:00Z")
	start := now.Truncate(time.Hour).Add(-23 * time.Hour)

	var records []Record
	for i := 0; i < 24; i++ {
		records = append(records, Record{
			UserID:    "u",
			LoginTime: start.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
			Score:     0.1,
		})
	}

	buckets := HourlyBuckets(records, now, TableThresholds)
	assert.Len(t, buckets, 24)
	for i, b := range buckets {
		assert.Equal(t, 1, b.Total, "bucket %d", i)
		assert.Equal(t, 0, b.HighRisk, "bucket %d", i)
	}
}

func TestHourlyBucketsOrderAndLabels(t *testing.T) {
	now, _ := time.Parse(time.RFC3339, "2025-06-10T12:30:00Z")

	buckets := HourlyBuckets(nil, now, TableThresholds)
	assert.Len(t, buckets, 24)
	assert.Equal(t, "13:00", buckets[0].Label) // 23 hours before 12:00
	assert.Equal(t, "12:00", buckets[23].Label)
	for i := 1; i < len(buckets); i++ {
		assert.Equal(t, time.Hour, buckets[i].Start.Sub(buckets[i-1].Start))
	}
}

func TestHourlyBucketsCoverage(t *testing.T) {
	now, _ := time.Parse(time.RFC3339, "2025-06-10T12:30:00Z")
	records := []Record{
		{UserID: "in1", LoginTime: "2025-06-10T12:15:00Z", Score: 0.9},
		{UserID: "in2", LoginTime: "2025-06-10T00:05:00Z", Score: 0.2},
		{UserID: "old", LoginTime: "2025-06-08T12:00:00Z", Score: 0.9},
		{UserID: "future", LoginTime: "2025-06-10T14:00:00Z", Score: 0.9},
		{UserID: "bad", LoginTime: "garbage", Score: 0.9},
	}

	buckets := HourlyBuckets(records, now, TableThresholds)
	total := 0
	highRisk := 0
	for _, b := range buckets {
		total += b.Total
		highRisk += b.HighRisk
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, highRisk)
}

func TestHourlyBucketsHighRiskThreshold(t *testing.T) {
	now, _ := time.Parse(time.RFC3339, "2025-06-10T12:30:00Z")
	records := []Record{
		{UserID: "a", LoginTime: "2025-06-10T12:01:00Z", Score: 0.71},
		{UserID: "b", LoginTime: "2025-06-10T12:02:00Z", Score: 0.7},
	}

	buckets := HourlyBuckets(records, now, TableThresholds)
	last := buckets[23]
	assert.Equal(t, 2, last.Total)
	assert.Equal(t, 1, last.HighRisk)
}

func TestHourlyBucketsIdempotent(t *testing.T) {
	now, _ := time.Parse(time.RFC3339, "2025-06-10T12:30:00Z")
	records := sampleRecords()

	first := HourlyBuckets(records, now, TableThresholds)
	second := HourlyBuckets(records, now, TableThresholds)
	assert.Equal(t, first, second)
}
