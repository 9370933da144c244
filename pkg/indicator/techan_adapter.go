package indicator

import (
	"math"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// TechanCalculator wraps a techan indicator behind the Calculator
// interface. The daily feed carries closing data only, so candles are
// built with open = high = low = close; range-based techan indicators
// then degrade to close-to-close measures, which is the intended
// reading for these supplementary overlays.
type TechanCalculator struct {
	name      string
	warmup    int
	build     func(*techan.TimeSeries) techan.Indicator
	series    *techan.TimeSeries
	indicator techan.Indicator
	day       time.Time
	ready     bool
	last      float64
}

// NewTechanCalculator creates a calculator around a techan indicator.
// The build callback receives the series the candles will be appended
// to, so the indicator is always bound to the live series.
func NewTechanCalculator(name string, warmup int, build func(*techan.TimeSeries) techan.Indicator) *TechanCalculator {
	t := &TechanCalculator{
		name:   name,
		warmup: warmup,
		build:  build,
	}
	t.Reset()
	return t
}

// Name returns the indicator name
func (t *TechanCalculator) Name() string {
	return t.name
}

// Update appends the value as a degenerate daily candle and recalculates.
func (t *TechanCalculator) Update(value float64) (float64, bool) {
	candle := techan.NewCandle(techan.NewTimePeriod(t.day, 24*time.Hour))
	t.day = t.day.Add(24 * time.Hour)

	price := big.NewDecimal(value)
	candle.OpenPrice = price
	candle.MaxPrice = price
	candle.MinPrice = price
	candle.ClosePrice = price

	t.series.AddCandle(candle)

	lastIndex := t.series.LastIndex()
	if lastIndex+1 <= t.warmup {
		return 0, false
	}

	v := t.indicator.Calculate(lastIndex).Float()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	t.last = v
	t.ready = true
	return v, true
}

// Value returns the most recent defined value.
func (t *TechanCalculator) Value() (float64, bool) {
	return t.last, t.ready
}

// Reset rebuilds the series and rebinds the indicator to it.
func (t *TechanCalculator) Reset() {
	t.series = techan.NewTimeSeries()
	t.indicator = t.build(t.series)
	t.day = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	t.ready = false
	t.last = 0
}

// IsReady returns true once a defined value has been produced.
func (t *TechanCalculator) IsReady() bool {
	return t.ready
}
