package indicator

import (
	"fmt"
)

// SMA calculates the Simple Moving Average over a trailing window.
// With minPeriods below the window size it averages whatever observations
// are available instead of staying undefined, which is how the rolling
// volume/value averages behave on short histories.
type SMA struct {
	period     int
	minPeriods int
	name       string
	window     []float64
	processed  int
}

// NewSMA creates an SMA that is undefined until a full window is available.
func NewSMA(period int) (*SMA, error) {
	return NewSMAWithMinPeriods(period, period)
}

// NewSMAWithMinPeriods creates an SMA that becomes defined once minPeriods
// observations have been fed.
func NewSMAWithMinPeriods(period, minPeriods int) (*SMA, error) {
	if period < 1 {
		return nil, fmt.Errorf("SMA period must be at least 1, got %d", period)
	}
	if minPeriods < 1 || minPeriods > period {
		return nil, fmt.Errorf("SMA min periods must be in [1, %d], got %d", period, minPeriods)
	}

	return &SMA{
		period:     period,
		minPeriods: minPeriods,
		name:       fmt.Sprintf("sma_%d", period),
		window:     make([]float64, 0, period),
	}, nil
}

// Name returns the indicator name
func (s *SMA) Name() string {
	return s.name
}

// Update feeds the next value and returns the average over the window.
func (s *SMA) Update(value float64) (float64, bool) {
	s.window = append(s.window, value)
	s.processed++

	if len(s.window) > s.period {
		copy(s.window, s.window[1:])
		s.window = s.window[:len(s.window)-1]
	}

	return s.Value()
}

// Value returns the current average.
func (s *SMA) Value() (float64, bool) {
	if len(s.window) < s.minPeriods {
		return 0, false
	}

	var sum float64
	for _, v := range s.window {
		sum += v
	}
	return sum / float64(len(s.window)), true
}

// Reset clears the SMA state
func (s *SMA) Reset() {
	s.window = s.window[:0]
	s.processed = 0
}

// IsReady returns true once enough observations have been fed.
func (s *SMA) IsReady() bool {
	return len(s.window) >= s.minPeriods
}

// WindowSize returns the window length.
func (s *SMA) WindowSize() int {
	return s.period
}

// Processed returns the number of observations fed.
func (s *SMA) Processed() int {
	return s.processed
}
