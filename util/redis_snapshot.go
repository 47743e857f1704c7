package util

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ariebrainware/percepta/anomaly"
	"github.com/ariebrainware/percepta/config"
	"github.com/redis/go-redis/v9"
)

const snapshotKey = "percepta:snapshot"

// snapshotEnvelope is the redis representation of the last good dataset.
type snapshotEnvelope struct {
	Records   []anomaly.Record `json:"records"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// SaveSnapshot persists the last successfully fetched dataset to Redis so a
// restarted instance can serve data before its first poll completes.
// Best-effort: a nil client is a no-op. Degraded (fallback) datasets are not
// worth persisting and should not be passed here.
func SaveSnapshot(records []anomaly.Record, fetchedAt time.Time) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(snapshotEnvelope{Records: records, FetchedAt: fetchedAt})
	if err != nil {
		return err
	}
	ctx := context.Background()
	// Keep for 24h; anything older is stale enough that the fallback dataset
	// is more honest.
	return rdb.Set(ctx, snapshotKey, b, 24*time.Hour).Err()
}

// LoadSnapshot returns the persisted dataset, or ok=false when none exists
// or Redis is unavailable.
func LoadSnapshot() (records []anomaly.Record, fetchedAt time.Time, ok bool) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil, time.Time{}, false
	}
	ctx := context.Background()
	b, err := rdb.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, time.Time{}, false
	}
	if err != nil {
		return nil, time.Time{}, false
	}
	var env snapshotEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, time.Time{}, false
	}
	return env.Records, env.FetchedAt, true
}

// DropSnapshot removes the persisted dataset.
func DropSnapshot() error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Del(context.Background(), snapshotKey).Err()
}
