package usage

import (
	"context"
	"fmt"
	"time"
)

// Tracker records billable operations and reports aggregate spend.
type Tracker struct {
	repo  Repository
	cache *QueryCache
	now   func() time.Time
}

// NewTracker constructs a usage tracker. The cache may be nil when Redis
// is unavailable; summaries then report zero hits.
func NewTracker(repo Repository, cache *QueryCache) *Tracker {
	return &Tracker{repo: repo, cache: cache, now: time.Now}
}

// Track records one operation and returns its cost. Operations marked
// saved were avoided by caching or deduplication and count as savings
// rather than spend.
func (t *Tracker) Track(ctx context.Context, op Operation, resourceID, userID string, saved bool) (float64, error) {
	cost, ok := Cost(op)
	if !ok {
		return 0, fmt.Errorf("usage: unknown operation %q", op)
	}
	record := Record{
		Operation:  op,
		ResourceID: resourceID,
		UserID:     userID,
		Cost:       cost,
		Saved:      saved,
		OccurredAt: t.now().UTC(),
	}
	if err := t.repo.Insert(ctx, record); err != nil {
		return 0, err
	}
	return cost, nil
}

type cachedQuery struct {
	Query string `json:"query"`
}

// TrackQuery records a search query, consulting the cache to decide
// whether the vendor round trip was avoided. A repeat of the same query
// within the cache TTL is billed as savings instead of spend. Returns the
// unit cost and whether the cache answered.
func (t *Tracker) TrackQuery(ctx context.Context, query, resourceID, userID string) (float64, bool, error) {
	var cached cachedQuery
	hit, err := t.cache.FetchJSON(ctx, query, &cached, func(context.Context) (any, error) {
		return cachedQuery{Query: query}, nil
	})
	if err != nil {
		return 0, false, err
	}
	cost, err := t.Track(ctx, OpSearchQuery, resourceID, userID, hit)
	return cost, hit, err
}

// Summarize aggregates spend over the trailing window.
func (t *Tracker) Summarize(ctx context.Context, window time.Duration) (Summary, error) {
	to := t.now().UTC()
	from := to.Add(-window)
	summary, err := t.repo.Summarize(ctx, from, to)
	if err != nil {
		return Summary{}, err
	}
	hits, err := t.cache.Hits(ctx)
	if err != nil {
		return Summary{}, err
	}
	summary.CacheHits = hits
	summary.FormattedNet = FormatUSD(summary.TotalCost)
	return summary, nil
}

// RollupDaily folds the previous day's raw records into the daily
// aggregate table. Safe to run more than once for the same day.
func (t *Tracker) RollupDaily(ctx context.Context) error {
	day := t.now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	return t.repo.RollupDaily(ctx, day)
}
