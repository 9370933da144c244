package indicator

import (
	"fmt"
)

// EMA calculates the Exponential Moving Average.
// EMA = (Value - Previous EMA) * Multiplier + Previous EMA
// Multiplier = 2 / (Period + 1)
// The series is seeded with the first observation and carries no bias
// correction, so the EMA is defined from the very first value.
type EMA struct {
	period     int
	name       string
	multiplier float64
	value      float64
	seeded     bool
	processed  int
}

// NewEMA creates a new EMA calculator with the specified period
func NewEMA(period int) (*EMA, error) {
	if period < 1 {
		return nil, fmt.Errorf("EMA period must be at least 1, got %d", period)
	}

	return &EMA{
		period:     period,
		name:       fmt.Sprintf("ema_%d", period),
		multiplier: 2.0 / float64(period+1),
	}, nil
}

// Name returns the indicator name
func (e *EMA) Name() string {
	return e.name
}

// Update feeds the next value and returns the new EMA.
func (e *EMA) Update(value float64) (float64, bool) {
	e.processed++

	if !e.seeded {
		e.value = value
		e.seeded = true
		return e.value, true
	}

	e.value = (value-e.value)*e.multiplier + e.value
	return e.value, true
}

// Value returns the current EMA.
func (e *EMA) Value() (float64, bool) {
	return e.value, e.seeded
}

// Reset clears the EMA state
func (e *EMA) Reset() {
	e.value = 0
	e.seeded = false
	e.processed = 0
}

// IsReady returns true once the EMA has been seeded.
func (e *EMA) IsReady() bool {
	return e.seeded
}
