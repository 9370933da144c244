package derive

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/mahendraputra/idx-radar/internal/models"
)

// Criteria is one set of view filters. Categories combine with AND;
// the slice-valued categories are multi-selects combining with OR
// inside the category. Zero values leave a category inactive.
type Criteria struct {
	Date            *time.Time
	Week            string
	Stocks          []string
	Sectors         []string
	Signals         []string
	ForeignFlows    []string
	UnusualOnly     bool
	MinScore        *int
	MinVolumeFactor *float64
}

// Matches reports whether a record passes every active category.
func (c *Criteria) Matches(r models.EnrichedRecord) bool {
	if c.Date != nil && !r.Date.Equal(*c.Date) {
		return false
	}
	if c.Week != "" && r.Week != c.Week {
		return false
	}
	if len(c.Stocks) > 0 && !lo.Contains(c.Stocks, r.StockCode) {
		return false
	}
	if len(c.Sectors) > 0 && !lo.Contains(c.Sectors, r.DisplaySector()) {
		return false
	}
	if len(c.Signals) > 0 && !lo.Contains(c.Signals, r.Signal) {
		return false
	}
	if len(c.ForeignFlows) > 0 && !lo.Contains(c.ForeignFlows, r.ForeignFlow) {
		return false
	}
	if c.UnusualOnly && !r.UnusualVolume {
		return false
	}
	if c.MinScore != nil && r.Score < *c.MinScore {
		return false
	}
	if c.MinVolumeFactor != nil && r.VolumeFactor < *c.MinVolumeFactor {
		return false
	}
	return true
}

// FilterByCriteria returns the subsequence of records passing the
// criteria, preserving input order. Empty input yields empty output.
func FilterByCriteria(records []models.EnrichedRecord, c Criteria) []models.EnrichedRecord {
	return lo.Filter(records, func(r models.EnrichedRecord, _ int) bool {
		return c.Matches(r)
	})
}

// LatestPerStock selects, per stock, the record with the maximum trading
// date. When two records of a stock share the maximum date, the one seen
// later in the input wins.
func LatestPerStock(records []models.EnrichedRecord) []models.EnrichedRecord {
	latest := make(map[string]models.EnrichedRecord, 64)
	for _, r := range records {
		cur, ok := latest[r.StockCode]
		if !ok || !r.Date.Before(cur.Date) {
			latest[r.StockCode] = r
		}
	}

	codes := lo.Keys(latest)
	sort.Strings(codes)

	out := make([]models.EnrichedRecord, 0, len(codes))
	for _, code := range codes {
		out = append(out, latest[code])
	}
	return out
}

// RankTopN sorts descending by the metric, breaking ties by volume
// factor descending and then stock code ascending, and truncates to n.
// It returns fewer than n rows when fewer exist and never errors for
// n beyond the row count; n <= 0 yields an empty sequence.
func RankTopN(records []models.EnrichedRecord, metric models.RankMetric, n int) []models.Ranking {
	if n <= 0 || len(records) == 0 {
		return []models.Ranking{}
	}

	ranked := make([]models.EnrichedRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := metric.MetricValue(&ranked[i]), metric.MetricValue(&ranked[j])
		if vi != vj {
			return vi > vj
		}
		if ranked[i].VolumeFactor != ranked[j].VolumeFactor {
			return ranked[i].VolumeFactor > ranked[j].VolumeFactor
		}
		return ranked[i].StockCode < ranked[j].StockCode
	})

	if n > len(ranked) {
		n = len(ranked)
	}

	out := make([]models.Ranking, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Ranking{
			Rank:   i + 1,
			Value:  metric.MetricValue(&ranked[i]),
			Record: ranked[i],
		})
	}
	return out
}

// SectorCounts buckets records by display sector, for the sector view.
// With no mapping loaded every row lands in the single uncategorized
// bucket instead of erroring.
func SectorCounts(records []models.EnrichedRecord) map[string]int {
	return lo.CountValuesBy(records, func(r models.EnrichedRecord) string {
		return r.DisplaySector()
	})
}
