package indicator

import (
	"fmt"
	"math"
)

// RollingStd calculates the sample standard deviation over a trailing
// window. Undefined until the window is full.
type RollingStd struct {
	period    int
	name      string
	window    []float64
	processed int
}

// NewRollingStd creates a rolling standard deviation calculator.
func NewRollingStd(period int) (*RollingStd, error) {
	if period < 2 {
		return nil, fmt.Errorf("rolling stdev period must be at least 2, got %d", period)
	}

	return &RollingStd{
		period: period,
		name:   fmt.Sprintf("std_%d", period),
		window: make([]float64, 0, period),
	}, nil
}

// Name returns the indicator name
func (r *RollingStd) Name() string {
	return r.name
}

// Update feeds the next value and returns the window's sample stdev.
func (r *RollingStd) Update(value float64) (float64, bool) {
	r.window = append(r.window, value)
	r.processed++

	if len(r.window) > r.period {
		copy(r.window, r.window[1:])
		r.window = r.window[:len(r.window)-1]
	}

	return r.Value()
}

// Value returns the current sample standard deviation.
func (r *RollingStd) Value() (float64, bool) {
	if len(r.window) < r.period {
		return 0, false
	}

	var sum float64
	for _, v := range r.window {
		sum += v
	}
	mean := sum / float64(len(r.window))

	var sq float64
	for _, v := range r.window {
		d := v - mean
		sq += d * d
	}
	// Sample variance (n-1 denominator), matching the band formula upstream.
	return math.Sqrt(sq / float64(len(r.window)-1)), true
}

// Reset clears the state.
func (r *RollingStd) Reset() {
	r.window = r.window[:0]
	r.processed = 0
}

// IsReady returns true once the window is full.
func (r *RollingStd) IsReady() bool {
	return len(r.window) >= r.period
}

// WindowSize returns the window length.
func (r *RollingStd) WindowSize() int {
	return r.period
}

// Processed returns the number of observations fed.
func (r *RollingStd) Processed() int {
	return r.processed
}
