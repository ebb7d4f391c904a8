package analysis

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/danielpatrickdp/rps-oracle/internal/trace"
)

// #region report-cache

// ReportCache memoizes reports over immutable log snapshots. The log
// is append-only, so (length, last round id) uniquely identifies a
// snapshot and stale entries simply age out of the LRU.
type ReportCache struct {
	cache *lru.Cache[string, Report]
}

// NewReportCache creates a cache holding up to size reports.
func NewReportCache(size int) (*ReportCache, error) {
	cache, err := lru.New[string, Report](size)
	if err != nil {
		return nil, fmt.Errorf("report cache: %w", err)
	}
	return &ReportCache{cache: cache}, nil
}

// Get returns the report for the snapshot, building it on a miss.
func (c *ReportCache) Get(log []trace.RoundLog) Report {
	key := snapshotKey(log)
	if report, ok := c.cache.Get(key); ok {
		return report
	}
	report := BuildReport(log)
	c.cache.Add(key, report)
	return report
}

func snapshotKey(log []trace.RoundLog) string {
	if len(log) == 0 {
		return "empty"
	}
	return fmt.Sprintf("%d|%s", len(log), log[len(log)-1].RoundID)
}

// #endregion report-cache
