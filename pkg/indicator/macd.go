package indicator

import (
	"fmt"
)

// MACDValue holds the MACD line and its signal line for one observation.
type MACDValue struct {
	Line   float64
	Signal float64
}

// MACD calculates Moving Average Convergence Divergence:
// line = EMA(fast) − EMA(slow), signal = EMA(signalPeriod) of the line.
// All three EMAs are seeded from their first input, so both outputs are
// defined from the first observation.
type MACD struct {
	name   string
	fast   *EMA
	slow   *EMA
	signal *EMA
}

// NewMACD creates a MACD calculator with the given periods (typically 12, 26, 9).
func NewMACD(fastPeriod, slowPeriod, signalPeriod int) (*MACD, error) {
	if fastPeriod >= slowPeriod {
		return nil, fmt.Errorf("MACD fast period %d must be below slow period %d", fastPeriod, slowPeriod)
	}

	fast, err := NewEMA(fastPeriod)
	if err != nil {
		return nil, err
	}
	slow, err := NewEMA(slowPeriod)
	if err != nil {
		return nil, err
	}
	sig, err := NewEMA(signalPeriod)
	if err != nil {
		return nil, err
	}

	return &MACD{
		name:   fmt.Sprintf("macd_%d_%d_%d", fastPeriod, slowPeriod, signalPeriod),
		fast:   fast,
		slow:   slow,
		signal: sig,
	}, nil
}

// Name returns the indicator name
func (m *MACD) Name() string {
	return m.name
}

// Update feeds the next value and returns the MACD line and signal.
func (m *MACD) Update(value float64) (MACDValue, bool) {
	f, _ := m.fast.Update(value)
	s, _ := m.slow.Update(value)

	line := f - s
	sig, _ := m.signal.Update(line)

	return MACDValue{Line: line, Signal: sig}, true
}

// Value returns the current MACD line and signal.
func (m *MACD) Value() (MACDValue, bool) {
	f, fOK := m.fast.Value()
	s, sOK := m.slow.Value()
	sig, sigOK := m.signal.Value()
	if !fOK || !sOK || !sigOK {
		return MACDValue{}, false
	}
	return MACDValue{Line: f - s, Signal: sig}, true
}

// Reset clears the state.
func (m *MACD) Reset() {
	m.fast.Reset()
	m.slow.Reset()
	m.signal.Reset()
}

// IsReady returns true once the EMAs are seeded.
func (m *MACD) IsReady() bool {
	return m.fast.IsReady() && m.slow.IsReady() && m.signal.IsReady()
}
