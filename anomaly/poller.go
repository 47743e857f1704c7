package anomaly

import (
	"context"
	"time"
)

// Poller periodically refreshes the store from the upstream API. All fetch
// paths (initial load, timer, manual refresh) funnel through Refresh, so the
// store's generation guard applies uniformly.
type Poller struct {
	client   *Client
	store    *Store
	interval time.Duration

	// Enrich, when set, may mutate the freshly fetched records in place.
	// It runs between fetch and commit; once committed the slice is shared
	// with concurrent readers and must never change.
	Enrich func(records []Record) int

	// OnResult, when set, observes every completed refresh: the outcome of
	// the fetch and whether the commit was applied or discarded as stale.
	OnResult func(records []Record, degraded bool, applied bool, err error)
}

// NewPoller builds a poller refreshing every interval. Intervals below one
// minute are raised to the 5 minute default.
func NewPoller(client *Client, store *Store, interval time.Duration) *Poller {
	if interval < time.Minute {
		interval = 5 * time.Minute
	}
	return &Poller{client: client, store: store, interval: interval}
}

// Refresh performs one fetch-and-commit cycle. The demonstration dataset is
// committed on fetch failure so the dashboard stays populated; the returned
// error is the fetch failure, if any.
func (p *Poller) Refresh(ctx context.Context) error {
	gen := p.store.Begin()
	records, degraded, err := p.client.FetchOrFallback(ctx, time.Now())
	if p.Enrich != nil {
		_ = p.Enrich(records)
	}
	applied := p.store.Commit(gen, records, degraded, time.Now())
	if p.OnResult != nil {
		p.OnResult(records, degraded, applied, err)
	}
	return err
}

// Run refreshes immediately, then on every tick until ctx is cancelled.
// Cancelling ctx releases the ticker so no recurring task outlives the
// caller.
func (p *Poller) Run(ctx context.Context) {
	_ = p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = p.Refresh(ctx)
		}
	}
}
