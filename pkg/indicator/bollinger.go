package indicator

import (
	"fmt"
)

// BollingerValue holds the three band values for one observation.
type BollingerValue struct {
	Middle float64
	Upper  float64
	Lower  float64
}

// Bollinger calculates Bollinger Bands: middle = SMA(period),
// upper/lower = middle ± k * rolling sample stdev(period).
// Undefined until the full window is available.
type Bollinger struct {
	name string
	k    float64
	sma  *SMA
	std  *RollingStd
}

// NewBollinger creates a Bollinger Bands calculator.
func NewBollinger(period int, k float64) (*Bollinger, error) {
	if k <= 0 {
		return nil, fmt.Errorf("bollinger band width must be positive, got %f", k)
	}

	sma, err := NewSMA(period)
	if err != nil {
		return nil, err
	}
	std, err := NewRollingStd(period)
	if err != nil {
		return nil, err
	}

	return &Bollinger{
		name: fmt.Sprintf("bb_%d_%.1f", period, k),
		k:    k,
		sma:  sma,
		std:  std,
	}, nil
}

// Name returns the indicator name
func (b *Bollinger) Name() string {
	return b.name
}

// Update feeds the next value and returns the bands.
func (b *Bollinger) Update(value float64) (BollingerValue, bool) {
	mid, midOK := b.sma.Update(value)
	dev, devOK := b.std.Update(value)

	if !midOK || !devOK {
		return BollingerValue{}, false
	}

	return BollingerValue{
		Middle: mid,
		Upper:  mid + b.k*dev,
		Lower:  mid - b.k*dev,
	}, true
}

// Value returns the current bands.
func (b *Bollinger) Value() (BollingerValue, bool) {
	mid, midOK := b.sma.Value()
	dev, devOK := b.std.Value()
	if !midOK || !devOK {
		return BollingerValue{}, false
	}
	return BollingerValue{
		Middle: mid,
		Upper:  mid + b.k*dev,
		Lower:  mid - b.k*dev,
	}, true
}

// Reset clears the state.
func (b *Bollinger) Reset() {
	b.sma.Reset()
	b.std.Reset()
}

// IsReady returns true once the window is full.
func (b *Bollinger) IsReady() bool {
	return b.sma.IsReady() && b.std.IsReady()
}
