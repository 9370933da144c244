package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahendraputra/idx-radar/internal/models"
)

func TestScoreRecord_AllSignalsFire(t *testing.T) {
	d := NewDeriver(testScoreConfig())

	rec := &models.EnrichedRecord{
		TradingRecord: models.TradingRecord{
			Signal:        models.SignalAccumulation,
			ForeignFlow:   models.FlowInflow,
			Close:         110,
			VWAP:          100,
			Volume:        2000,
			UnusualVolume: true,
		},
		VolumeFactor: 3.0,
	}

	// 30 + 25 + 20 + 15 + 10 + 10.
	assert.Equal(t, 110, d.scoreRecord(rec, 1000, true))
}

func TestScoreRecord_NoSignals(t *testing.T) {
	d := NewDeriver(testScoreConfig())

	rec := &models.EnrichedRecord{
		TradingRecord: models.TradingRecord{Close: 100, Volume: 1000},
		VolumeFactor:  1.0,
	}

	assert.Zero(t, d.scoreRecord(rec, 1000, true))
}

func TestScoreRecord_VolumeFactorTiers(t *testing.T) {
	d := NewDeriver(testScoreConfig())

	cases := []struct {
		name   string
		factor float64
		want   int
	}{
		{"below mid", 1.49, 0},
		{"mid boundary", 1.5, 10},
		{"between tiers", 2.49, 10},
		{"high boundary", 2.5, 20},
		{"above high", 4.0, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &models.EnrichedRecord{VolumeFactor: tc.factor}
			assert.Equal(t, tc.want, d.scoreRecord(rec, 0, false))
		})
	}
}

func TestScoreRecord_VWAPZeroNeverScores(t *testing.T) {
	d := NewDeriver(testScoreConfig())

	// Close above a zero VWAP means the VWAP column was absent, not a
	// genuine breakout.
	rec := &models.EnrichedRecord{
		TradingRecord: models.TradingRecord{Close: 100, VWAP: 0},
	}
	assert.Zero(t, d.scoreRecord(rec, 0, false))
}

func TestScoreRecord_FirstRowHasNoVolumeComparison(t *testing.T) {
	d := NewDeriver(testScoreConfig())

	rec := &models.EnrichedRecord{
		TradingRecord: models.TradingRecord{Volume: 5000},
	}
	assert.Zero(t, d.scoreRecord(rec, 0, false))
	assert.Equal(t, 10, d.scoreRecord(rec, 4000, true))
	// Equal volume is not an increase.
	assert.Zero(t, d.scoreRecord(rec, 5000, true))
}

func TestDeriveAll_ScoreWiredIntoRows(t *testing.T) {
	d := NewDeriver(testScoreConfig())

	records := []models.TradingRecord{
		{StockCode: "AAA", Date: day(0), Close: 100, Volume: 1000, Value: 100000},
		{
			StockCode:   "AAA",
			Date:        day(1),
			Close:       110,
			Previous:    100,
			Change:      10,
			Volume:      5000,
			Value:       550000,
			Signal:      models.SignalAccumulation,
			ForeignFlow: models.FlowInflow,
			VWAP:        105,
		},
	}

	enriched := d.DeriveAll(records, nil)
	require.Len(t, enriched, 2)

	// Day 2 volume factor: 5000 / ((1000+5000)/2) = 1.667, the mid tier.
	// Accumulation 30 + inflow 25 + mid factor 10 + above VWAP 15 +
	// volume up 10 = 90.
	assert.Equal(t, 90, enriched[1].Score)
}
