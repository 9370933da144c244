package derive

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/mahendraputra/idx-radar/internal/config"
	"github.com/mahendraputra/idx-radar/internal/models"
	"github.com/mahendraputra/idx-radar/pkg/indicator"
	"github.com/mahendraputra/idx-radar/pkg/logger"
)

// Deriver turns raw trading records into fully enriched records. All
// derivation is a pure function of the input multiset: re-deriving from
// records that still carry the raw columns reproduces the derived
// columns bit-for-bit.
type Deriver struct {
	score config.ScoreConfig
}

// NewDeriver creates a deriver with the given score weights.
func NewDeriver(score config.ScoreConfig) *Deriver {
	return &Deriver{score: score}
}

// DeriveAll computes every derived column for every record. Records are
// grouped per stock and each group is evaluated in ascending date order;
// rolling windows computed in any other order would be silently wrong.
// Output is flattened sorted by stock code then date, with input order
// preserved for equal dates.
func (d *Deriver) DeriveAll(records []models.TradingRecord, sectors map[string]string) []models.EnrichedRecord {
	if len(records) == 0 {
		return []models.EnrichedRecord{}
	}

	start := time.Now()

	groups := lo.GroupBy(records, func(r models.TradingRecord) string {
		return r.StockCode
	})

	codes := lo.Keys(groups)
	sort.Strings(codes)

	enriched := make([]models.EnrichedRecord, 0, len(records))
	for _, code := range codes {
		enriched = append(enriched, d.deriveStock(groups[code], sectors)...)
	}

	logger.DeriveDuration.Observe(time.Since(start).Seconds())
	return enriched
}

// deriveStock enriches one stock's records in chronological order.
func (d *Deriver) deriveStock(group []models.TradingRecord, sectors map[string]string) []models.EnrichedRecord {
	// Stable: equal dates keep their input order so the documented
	// last-seen-wins tie break in LatestPerStock holds.
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Date.Before(group[j].Date)
	})

	volMA3, _ := indicator.NewSMAWithMinPeriods(3, 1)
	volMA5, _ := indicator.NewSMAWithMinPeriods(5, 1)
	volMA20, _ := indicator.NewSMAWithMinPeriods(20, 1)
	valMA3, _ := indicator.NewSMAWithMinPeriods(3, 1)
	valMA5, _ := indicator.NewSMAWithMinPeriods(5, 1)
	valMA20, _ := indicator.NewSMAWithMinPeriods(20, 1)

	sma20, _ := indicator.NewSMA(20)
	sma50, _ := indicator.NewSMA(50)
	bb, _ := indicator.NewBollinger(20, 2)
	macd, _ := indicator.NewMACD(12, 26, 9)
	rsi, _ := indicator.NewRSI(14)

	out := make([]models.EnrichedRecord, 0, len(group))
	var prevVolume int64
	for i, raw := range group {
		rec := models.EnrichedRecord{TradingRecord: raw}
		rec.Sector = sectors[strings.ToUpper(raw.StockCode)]

		rec.LocalVolume = raw.Volume - (raw.ForeignBuy + raw.ForeignSell)
		if raw.Previous != 0 {
			rec.ChangePct = raw.Change / raw.Previous * 100
		}

		rec.VolumeMA3 = mustValue(volMA3.Update(float64(raw.Volume)))
		rec.VolumeMA5 = mustValue(volMA5.Update(float64(raw.Volume)))
		rec.VolumeMA20 = mustValue(volMA20.Update(float64(raw.Volume)))
		rec.ValueMA3 = mustValue(valMA3.Update(raw.Value))
		rec.ValueMA5 = mustValue(valMA5.Update(raw.Value))
		rec.ValueMA20 = mustValue(valMA20.Update(raw.Value))

		if rec.VolumeMA20 != 0 {
			rec.VolumeFactor = float64(raw.Volume) / rec.VolumeMA20
		}

		rec.SMA20 = optional(sma20.Update(raw.Close))
		rec.SMA50 = optional(sma50.Update(raw.Close))
		if bands, ok := bb.Update(raw.Close); ok {
			rec.BBMiddle = &bands.Middle
			rec.BBUpper = &bands.Upper
			rec.BBLower = &bands.Lower
		}
		if mv, ok := macd.Update(raw.Close); ok {
			rec.MACD = &mv.Line
			rec.MACDSignal = &mv.Signal
		}
		rec.RSI14 = optional(rsi.Update(raw.Close))

		rec.Score = d.scoreRecord(&rec, prevVolume, i > 0)

		prevVolume = raw.Volume
		out = append(out, rec)
	}

	return out
}

// mustValue collapses an undefined rolling value to 0. The volume/value
// averages use minimum periods of 1 so they are always defined, but the
// fallback keeps the formula contract explicit.
func mustValue(v float64, ok bool) float64 {
	if !ok {
		return 0
	}
	return v
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
