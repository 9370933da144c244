package indicator

import (
	"fmt"
)

// RSI calculates the Relative Strength Index.
// RSI = 100 - (100 / (1 + RS)) where RS is the plain rolling mean of
// gains over the rolling mean of losses, both over the period. This is
// the rolling-mean variant, not Wilder's smoothing.
//
// Undefined until the period has a full window of day-over-day deltas.
// With zero average loss and positive average gain the RSI is 100
// (guarded division); with both averages zero RS is 0/0 and the RSI
// stays undefined rather than being clamped.
type RSI struct {
	period    int
	name      string
	gains     []float64
	losses    []float64
	prevValue float64
	hasPrev   bool
	processed int
}

// NewRSI creates a new RSI calculator with the specified period (typically 14)
func NewRSI(period int) (*RSI, error) {
	if period < 2 {
		return nil, fmt.Errorf("RSI period must be at least 2, got %d", period)
	}

	return &RSI{
		period: period,
		name:   fmt.Sprintf("rsi_%d", period),
		gains:  make([]float64, 0, period),
		losses: make([]float64, 0, period),
	}, nil
}

// Name returns the indicator name
func (r *RSI) Name() string {
	return r.name
}

// Update feeds the next value and returns the new RSI.
func (r *RSI) Update(value float64) (float64, bool) {
	r.processed++

	if !r.hasPrev {
		r.prevValue = value
		r.hasPrev = true
		return 0, false
	}

	delta := value - r.prevValue
	r.prevValue = value

	var gain, loss float64
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}

	r.gains = append(r.gains, gain)
	r.losses = append(r.losses, loss)
	if len(r.gains) > r.period {
		copy(r.gains, r.gains[1:])
		r.gains = r.gains[:len(r.gains)-1]
		copy(r.losses, r.losses[1:])
		r.losses = r.losses[:len(r.losses)-1]
	}

	return r.Value()
}

// Value returns the current RSI.
func (r *RSI) Value() (float64, bool) {
	if len(r.gains) < r.period {
		return 0, false
	}

	var sumGain, sumLoss float64
	for i := range r.gains {
		sumGain += r.gains[i]
		sumLoss += r.losses[i]
	}
	avgGain := sumGain / float64(r.period)
	avgLoss := sumLoss / float64(r.period)

	if avgLoss == 0 {
		if avgGain == 0 {
			// Flat series: RS is 0/0, leave the RSI undefined.
			return 0, false
		}
		return 100, true
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), true
}

// Reset clears the RSI state
func (r *RSI) Reset() {
	r.gains = r.gains[:0]
	r.losses = r.losses[:0]
	r.prevValue = 0
	r.hasPrev = false
	r.processed = 0
}

// IsReady returns true once a full window of deltas is available.
func (r *RSI) IsReady() bool {
	return len(r.gains) >= r.period
}

// WindowSize returns the number of values required (period + 1 for the first delta).
func (r *RSI) WindowSize() int {
	return r.period + 1
}

// Processed returns the number of values fed.
func (r *RSI) Processed() int {
	return r.processed
}
