package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahendraputra/idx-radar/internal/models"
)

func enriched(code string, d time.Time, score int, factor float64) models.EnrichedRecord {
	return models.EnrichedRecord{
		TradingRecord: models.TradingRecord{StockCode: code, Date: d},
		Score:         score,
		VolumeFactor:  factor,
	}
}

func TestCriteria_CategoriesCombineWithAnd(t *testing.T) {
	rec := models.EnrichedRecord{
		TradingRecord: models.TradingRecord{
			StockCode:   "BBCA",
			Date:        day(3),
			Signal:      models.SignalAccumulation,
			ForeignFlow: models.FlowInflow,
			Sector:      "Finance",
		},
		Score: 60,
	}

	both := Criteria{Signals: []string{"Akumulasi"}, Sectors: []string{"Finance"}}
	assert.True(t, both.Matches(rec))

	// One failing category fails the whole criteria.
	wrongSector := Criteria{Signals: []string{"Akumulasi"}, Sectors: []string{"Energy"}}
	assert.False(t, wrongSector.Matches(rec))
}

func TestCriteria_MultiSelectIsOr(t *testing.T) {
	rec := models.EnrichedRecord{
		TradingRecord: models.TradingRecord{StockCode: "ANTM", Sector: "Mining"},
	}

	c := Criteria{Sectors: []string{"Finance", "Mining", "Energy"}}
	assert.True(t, c.Matches(rec))

	c = Criteria{Stocks: []string{"BBCA", "BBRI"}}
	assert.False(t, c.Matches(rec))
}

func TestCriteria_Thresholds(t *testing.T) {
	rec := enriched("AAA", day(0), 50, 2.0)

	minScore := 50
	assert.True(t, (&Criteria{MinScore: &minScore}).Matches(rec))
	minScore = 51
	assert.False(t, (&Criteria{MinScore: &minScore}).Matches(rec))

	minFactor := 2.0
	assert.True(t, (&Criteria{MinVolumeFactor: &minFactor}).Matches(rec))
	minFactor = 2.5
	assert.False(t, (&Criteria{MinVolumeFactor: &minFactor}).Matches(rec))
}

func TestCriteria_UnusualOnly(t *testing.T) {
	usual := models.EnrichedRecord{TradingRecord: models.TradingRecord{StockCode: "AAA"}}
	unusual := usual
	unusual.UnusualVolume = true

	c := Criteria{UnusualOnly: true}
	assert.False(t, c.Matches(usual))
	assert.True(t, c.Matches(unusual))
}

func TestCriteria_UncategorizedSectorFilter(t *testing.T) {
	rec := models.EnrichedRecord{TradingRecord: models.TradingRecord{StockCode: "ZZZZ"}}

	c := Criteria{Sectors: []string{models.SectorUncategorized}}
	assert.True(t, c.Matches(rec))
}

func TestFilterByCriteria_PreservesOrder(t *testing.T) {
	records := []models.EnrichedRecord{
		enriched("CCC", day(0), 10, 1),
		enriched("AAA", day(0), 80, 1),
		enriched("BBB", day(0), 90, 1),
	}

	minScore := 50
	got := FilterByCriteria(records, Criteria{MinScore: &minScore})
	require.Len(t, got, 2)
	assert.Equal(t, "AAA", got[0].StockCode)
	assert.Equal(t, "BBB", got[1].StockCode)

	// Empty input stays empty, not nil-panicky.
	assert.Empty(t, FilterByCriteria(nil, Criteria{}))
}

func TestLatestPerStock(t *testing.T) {
	records := []models.EnrichedRecord{
		enriched("BBB", day(1), 1, 1),
		enriched("AAA", day(2), 2, 1),
		enriched("AAA", day(5), 3, 1),
		enriched("BBB", day(4), 4, 1),
		enriched("AAA", day(3), 5, 1),
	}

	got := LatestPerStock(records)
	require.Len(t, got, 2)

	// Sorted by code, each carrying its max date.
	assert.Equal(t, "AAA", got[0].StockCode)
	assert.True(t, got[0].Date.Equal(day(5)))
	assert.Equal(t, "BBB", got[1].StockCode)
	assert.True(t, got[1].Date.Equal(day(4)))
}

func TestLatestPerStock_TieTakesLastSeen(t *testing.T) {
	records := []models.EnrichedRecord{
		enriched("AAA", day(5), 10, 1),
		enriched("AAA", day(5), 20, 1),
	}

	got := LatestPerStock(records)
	require.Len(t, got, 1)
	assert.Equal(t, 20, got[0].Score)
}

func TestRankTopN_OrderingAndTieBreaks(t *testing.T) {
	records := []models.EnrichedRecord{
		enriched("DDDD", day(0), 50, 1.0),
		enriched("BBBB", day(0), 80, 2.0),
		enriched("CCCC", day(0), 80, 3.0),
		enriched("AAAA", day(0), 80, 2.0),
	}

	got := RankTopN(records, models.MetricScore, 10)
	require.Len(t, got, 4)

	// Score desc, then volume factor desc, then code asc.
	codes := []string{"CCCC", "AAAA", "BBBB", "DDDD"}
	for i, r := range got {
		assert.Equal(t, codes[i], r.Record.StockCode, "rank %d", i+1)
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, 80.0, got[0].Value)
}

func TestRankTopN_Truncation(t *testing.T) {
	records := []models.EnrichedRecord{
		enriched("AAA", day(0), 10, 1),
		enriched("BBB", day(0), 20, 1),
		enriched("CCC", day(0), 30, 1),
	}

	assert.Len(t, RankTopN(records, models.MetricScore, 2), 2)
	// n beyond the row count returns what exists.
	assert.Len(t, RankTopN(records, models.MetricScore, 100), 3)
	assert.Empty(t, RankTopN(records, models.MetricScore, 0))
	assert.Empty(t, RankTopN(records, models.MetricScore, -3))
	assert.Empty(t, RankTopN(nil, models.MetricScore, 5))
}

func TestRankTopN_DoesNotMutateInput(t *testing.T) {
	records := []models.EnrichedRecord{
		enriched("AAA", day(0), 10, 1),
		enriched("BBB", day(0), 20, 1),
	}

	RankTopN(records, models.MetricScore, 2)
	assert.Equal(t, "AAA", records[0].StockCode)
	assert.Equal(t, "BBB", records[1].StockCode)
}

func TestSectorCounts(t *testing.T) {
	records := []models.EnrichedRecord{
		{TradingRecord: models.TradingRecord{StockCode: "BBCA", Sector: "Finance"}},
		{TradingRecord: models.TradingRecord{StockCode: "BBRI", Sector: "Finance"}},
		{TradingRecord: models.TradingRecord{StockCode: "ANTM", Sector: "Mining"}},
		{TradingRecord: models.TradingRecord{StockCode: "ZZZZ"}},
	}

	counts := SectorCounts(records)
	assert.Equal(t, 2, counts["Finance"])
	assert.Equal(t, 1, counts["Mining"])
	assert.Equal(t, 1, counts[models.SectorUncategorized])
}
